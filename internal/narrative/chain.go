package narrative

import (
	"context"
	"errors"
	"reflect"

	"go.uber.org/zap"

	"github.com/jonathan/sales-diagnostic/internal/types"
)

// Narrator produces a narrative for a set of answers.
type Narrator interface {
	Generate(ctx context.Context, a types.AnswerRecord) (types.NarrativeResult, error)
}

// Chain tries each tier once, in order, and returns the first success.
type Chain struct {
	tiers  []Tier
	logger *zap.Logger
}

// NewChain builds a chain from the configured tiers. Nil tiers are skipped so callers
// can pass constructors that return nil when unconfigured.
func NewChain(logger *zap.Logger, tiers ...Tier) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Chain{logger: logger}
	for _, t := range tiers {
		if isNil(t) {
			continue
		}
		c.tiers = append(c.tiers, t)
	}
	return c
}

// Sources lists the configured tiers in fallback order.
func (c *Chain) Sources() []types.NarrativeSource {
	out := make([]types.NarrativeSource, len(c.tiers))
	for i, t := range c.tiers {
		out[i] = t.Source()
	}
	return out
}

// Generate runs the chain. It fails only when every tier fails; the returned error
// joins each TierError.
func (c *Chain) Generate(ctx context.Context, a types.AnswerRecord) (types.NarrativeResult, error) {
	if len(c.tiers) == 0 {
		return types.NarrativeResult{}, ErrNoTier
	}

	var errs []error
	for _, t := range c.tiers {
		text, err := t.Generate(ctx, a)
		if err == nil {
			if len(errs) > 0 {
				c.logger.Info("narrative produced by fallback tier",
					zap.String("source", string(t.Source())),
					zap.Int("failed_tiers", len(errs)))
			}
			return types.NarrativeResult{Text: text, Source: t.Source()}, nil
		}

		c.logger.Warn("narrative tier failed",
			zap.String("source", string(t.Source())),
			zap.Error(err))
		errs = append(errs, &TierError{Source: t.Source(), Cause: err})
	}

	err := errors.Join(errs...)
	return types.NarrativeResult{Error: err.Error()}, err
}

func isNil(t Tier) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
