package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/sales-diagnostic/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing the analyze endpoint and the deterministic diagnostic API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	if servePort > 0 {
		rt.cfg.Server.Port = servePort
	}
	if rt.analyzer == nil {
		rt.logger.Warn("no model API key configured, /api/analyze will answer 500")
	}
	rt.logger.Info("configuration loaded",
		zap.Int("port", rt.cfg.Server.Port),
		zap.Bool("narrator", rt.service.HasNarrator()),
		zap.Bool("rate_limit", rt.cfg.RateLimit.Enabled))

	srv := server.New(rt.cfg, server.Deps{
		Service:  rt.service,
		Analyzer: rt.analyzer,
		Metrics:  rt.metrics,
		Logger:   rt.logger,
	})
	return srv.Start(cmd.Context())
}
