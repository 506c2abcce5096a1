package mcptools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jonathan/sales-diagnostic/internal/observability"
)

// QuestionsTool handles the sales_questions MCP tool.
type QuestionsTool struct{}

// NewQuestionsTool creates a QuestionsTool.
func NewQuestionsTool() *QuestionsTool {
	return &QuestionsTool{}
}

// Definition returns the MCP tool definition for sales_questions.
func (t *QuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("sales_questions",
		mcp.WithDescription(
			"List the sales maturity questionnaire: sections, question ids, answer types and options. "+
				"Use the ids as sales_diagnose parameters.",
		),
	)
}

// Handle processes the sales_questions tool call.
func (t *QuestionsTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	observability.NewPrinter(&sb).PrintQuestions()
	return mcp.NewToolResultText(sb.String()), nil
}
