package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/sales-diagnostic/internal/observability"
	"github.com/jonathan/sales-diagnostic/internal/questionnaire"
)

var questionsJSON bool

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the questionnaire",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printQuestions(cmd.OutOrStdout(), questionsJSON)
	},
}

func init() {
	questionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(questionsCmd)
}

func printQuestions(out io.Writer, asJSON bool) error {
	if !asJSON {
		observability.NewPrinter(out).PrintQuestions()
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Sections  []questionnaire.Section            `json:"sections"`
		Questions []questionnaire.QuestionDefinition `json:"questions"`
	}{
		Sections:  questionnaire.Sections(),
		Questions: questionnaire.Questions(),
	})
}
