// Package mcptools exposes the diagnostic as MCP tools served over stdio.
//
// Each tool is a struct with its dependencies injected by constructor, a
// Definition returning the mcp.Tool schema and a Handle processing the call.
package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jonathan/sales-diagnostic/internal/diagnosis"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer registers every diagnostic tool on a fresh MCP server.
func NewServer(svc *diagnosis.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"sales-diagnostic",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	diagnose := NewDiagnoseTool(svc)
	s.AddTool(diagnose.Definition(), diagnose.Handle)

	questions := NewQuestionsTool()
	s.AddTool(questions.Definition(), questions.Handle)

	return s
}

// intArg extracts an integer argument, returning defaultVal if the key is missing or
// not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}
