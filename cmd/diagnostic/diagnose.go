package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/sales-diagnostic/internal/diagnosis"
	"github.com/jonathan/sales-diagnostic/internal/intake"
	"github.com/jonathan/sales-diagnostic/internal/observability"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnose a questionnaire answer file",
	Long: "Run the scoring, projection and recommendation pipeline on a JSON answer file " +
		"(an object keyed by question id) and print the report.",
	RunE: runDiagnose,
}

type diagnoseOptions struct {
	answersFile string
	top         int
	narrative   bool
	json        bool
}

var diagnoseOpts diagnoseOptions

func init() {
	diagnoseCmd.Flags().StringVarP(&diagnoseOpts.answersFile, "answers", "a", "", "Path to the JSON answer file, or - for stdin (required)")
	diagnoseCmd.Flags().IntVar(&diagnoseOpts.top, "top", 0, "Number of recommendations (default from config)")
	diagnoseCmd.Flags().BoolVar(&diagnoseOpts.narrative, "narrative", false, "Also generate the written analysis")
	diagnoseCmd.Flags().BoolVar(&diagnoseOpts.json, "json", false, "Print the report as JSON")

	_ = diagnoseCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	return diagnose(cmd.Context(), rt, cmd.InOrStdin(), cmd.OutOrStdout(), diagnoseOpts)
}

func diagnose(ctx context.Context, rt *runtime, stdin io.Reader, out io.Writer, opts diagnoseOptions) error {
	data, err := readAnswers(opts.answersFile, stdin)
	if err != nil {
		return err
	}

	answers, err := intake.Decode(data)
	if err != nil {
		return err
	}

	top := opts.top
	if top <= 0 {
		top = rt.cfg.Top
	}
	if top > 7 {
		return fmt.Errorf("--top must be between 1 and 7, got %d", top)
	}
	if opts.narrative && !rt.service.HasNarrator() {
		rt.logger.Warn("no narrative tier configured, skipping the analysis")
	}

	report, err := rt.service.Diagnose(ctx, answers, diagnosis.Options{Top: top, Narrative: opts.narrative})
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	observability.NewPrinter(out).PrintReport(report)
	return nil
}

func readAnswers(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read answers from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	return data, nil
}
