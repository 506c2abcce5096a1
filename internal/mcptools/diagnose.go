package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jonathan/sales-diagnostic/internal/diagnosis"
	"github.com/jonathan/sales-diagnostic/internal/intake"
	"github.com/jonathan/sales-diagnostic/internal/observability"
	"github.com/jonathan/sales-diagnostic/internal/questionnaire"
	"github.com/jonathan/sales-diagnostic/internal/recommend"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

// DiagnoseTool handles the sales_diagnose MCP tool.
type DiagnoseTool struct {
	service *diagnosis.Service
}

// NewDiagnoseTool creates a DiagnoseTool backed by svc.
func NewDiagnoseTool(svc *diagnosis.Service) *DiagnoseTool {
	if svc == nil {
		svc = diagnosis.NewService()
	}
	return &DiagnoseTool{service: svc}
}

// Definition returns the MCP tool definition for sales_diagnose. There is one
// parameter per questionnaire entry, typed after the question.
func (t *DiagnoseTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Score a B2B sales organisation's maturity from its questionnaire answers. " +
				"Returns the pillar scores, a revenue projection and ranked recommendations. " +
				"Missing answers count as the most conservative value.",
		),
	}

	for _, q := range questionnaire.Questions() {
		opts = append(opts, questionParam(q))
	}

	opts = append(opts,
		mcp.WithNumber("top",
			mcp.Description(fmt.Sprintf("Number of recommendations to return (default %d)", recommend.DefaultTop)),
		),
		mcp.WithBoolean("narrative",
			mcp.Description("Also generate the written analysis (default false)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum("text", "json"),
			mcp.DefaultString("text"),
		),
	)

	return mcp.NewTool("sales_diagnose", opts...)
}

func questionParam(q questionnaire.QuestionDefinition) mcp.ToolOption {
	desc := q.Label
	if q.Unit != "" {
		desc += " (" + q.Unit + ")"
	}

	switch q.Type {
	case questionnaire.InputBoolean:
		return mcp.WithBoolean(q.ID, mcp.Description(desc))
	case questionnaire.InputSelect:
		values := make([]string, len(q.Options))
		for i, o := range q.Options {
			values[i] = o.Value
		}
		return mcp.WithString(q.ID, mcp.Description(desc), mcp.Enum(values...))
	default:
		return mcp.WithNumber(q.ID, mcp.Description(desc))
	}
}

// Handle processes the sales_diagnose tool call.
func (t *DiagnoseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw := make(map[string]any, len(args))
	for _, q := range questionnaire.Questions() {
		if v, ok := args[q.ID]; ok {
			raw[q.ID] = v
		}
	}

	answers, err := intake.DecodeMap(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid answers: %v", err)), nil
	}

	top := intArg(req, "top", recommend.DefaultTop)
	if top < 0 || top > 7 {
		return mcp.NewToolResultError("top must be between 0 and 7"), nil
	}

	report, err := t.service.Diagnose(ctx, answers, diagnosis.Options{
		Top:       top,
		Narrative: boolArg(req, "narrative", false),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diagnosis failed: %v", err)), nil
	}

	// top=0 asks for no recommendations, not the default
	if top == 0 {
		report.Recommendations = []types.Recommendation{}
	}
	report.MissingRequired = questionnaire.Missing(raw)

	if req.GetString("format", "text") == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	var sb strings.Builder
	observability.NewPrinter(&sb).PrintReport(report)
	return mcp.NewToolResultText(sb.String()), nil
}
