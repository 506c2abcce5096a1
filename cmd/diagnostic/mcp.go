package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/jonathan/sales-diagnostic/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the diagnostic as MCP tools over stdio",
	Long:  "Serve sales_diagnose and sales_questions over stdio. Logs go to stderr so stdout stays a clean protocol stream.",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.logger.Info("serving MCP over stdio")
	return server.ServeStdio(mcptools.NewServer(rt.service))
}
