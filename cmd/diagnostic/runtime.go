package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/sales-diagnostic/internal/config"
	"github.com/jonathan/sales-diagnostic/internal/diagnosis"
	"github.com/jonathan/sales-diagnostic/internal/llm"
	"github.com/jonathan/sales-diagnostic/internal/narrative"
	"github.com/jonathan/sales-diagnostic/internal/observability"
	"github.com/jonathan/sales-diagnostic/internal/prompts"
)

// runtime is everything a command needs, built once from the configuration.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *observability.Metrics
	service *diagnosis.Service
	// analyzer backs /api/analyze; nil without an API key.
	analyzer narrative.Tier
	client   llm.Client
}

func loadRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return newRuntime(ctx, cfg)
}

func newRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:     cfg,
		logger:  logger,
		metrics: observability.NewMetrics(),
	}

	if cfg.HasAPIKey() {
		llmCfg := llm.DefaultConfig().WithModel(llm.TierStandard, cfg.Narrative.Model)
		rt.client, err = llm.NewClient(ctx, llmCfg, cfg.Narrative.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
		rt.analyzer = narrative.NewModelTier(rt.client, prompts.KeyServerAnalysis)
	}

	opts := []diagnosis.Option{
		diagnosis.WithLogger(logger),
		diagnosis.WithMetrics(rt.metrics),
	}
	if chain := rt.narrator(); len(chain.Sources()) > 0 {
		opts = append(opts, diagnosis.WithNarrator(chain))
	}
	rt.service = diagnosis.NewService(opts...)

	return rt, nil
}

// narrator assembles the fallback chain from whichever tiers are configured.
func (rt *runtime) narrator() *narrative.Chain {
	var static narrative.Tier
	if rt.cfg.Narrative.Static {
		static = narrative.StaticTier{}
	}

	chain := narrative.NewChain(rt.logger,
		narrative.NewRemoteTier(rt.cfg.Narrative.AnalyzeURL, rt.cfg.Narrative.Timeout),
		narrative.NewModelTier(rt.client, prompts.KeyDirectAnalysis),
		static,
	)

	sources := make([]string, 0, 3)
	for _, s := range chain.Sources() {
		sources = append(sources, string(s))
	}
	rt.logger.Debug("narrative chain configured", zap.Strings("tiers", sources))
	return chain
}

func (rt *runtime) Close() {
	if rt.client != nil {
		if err := rt.client.Close(); err != nil {
			rt.logger.Warn("closing model client", zap.Error(err))
		}
	}
	_ = rt.logger.Sync()
}
