// Package diagnosis assembles the full report: score, projection, recommendations
// and, when requested, the narrative.
package diagnosis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/sales-diagnostic/internal/narrative"
	"github.com/jonathan/sales-diagnostic/internal/observability"
	"github.com/jonathan/sales-diagnostic/internal/projection"
	"github.com/jonathan/sales-diagnostic/internal/recommend"
	"github.com/jonathan/sales-diagnostic/internal/scoring"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

// Options tunes a single diagnosis.
type Options struct {
	// Top caps the ranked recommendations; zero means recommend.DefaultTop.
	Top int
	// Narrative requests a narrative from the configured narrator.
	Narrative bool
}

// Service runs the diagnostic pipeline.
type Service struct {
	narrator narrative.Narrator
	metrics  *observability.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNarrator sets the narrator used when Options.Narrative is true.
func WithNarrator(n narrative.Narrator) Option {
	return func(s *Service) { s.narrator = n }
}

// WithMetrics records diagnoses and narratives on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		m.InitRules(recommend.RuleIDs()...)
		s.metrics = m
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasNarrator reports whether narratives can be produced.
func (s *Service) HasNarrator() bool {
	return s.narrator != nil
}

// Diagnose builds the report for a. A narrative failure, including a cancelled
// context, is reported in Report.Narrative.Error and never fails the diagnosis.
func (s *Service) Diagnose(ctx context.Context, a types.AnswerRecord, opts Options) (*types.Report, error) {
	top := opts.Top
	if top <= 0 {
		top = recommend.DefaultTop
	}

	report := &types.Report{
		ID:          uuid.New(),
		GeneratedAt: s.now().UTC(),
		Answers:     a,
	}

	g, gctx := errgroup.WithContext(ctx)

	if opts.Narrative && s.narrator != nil {
		g.Go(func() error {
			report.Narrative = s.narrate(gctx, a)
			return nil
		})
	}

	g.Go(func() error {
		all := recommend.Recommend(a)
		report.Score = scoring.Score(a)
		report.Level = scoring.Level(report.Score.Total)
		report.Projection = projection.Project(a)
		report.Recommendations = recommend.Top(all, top)
		report.QuickWins = recommend.SelectQuickWins(all, recommend.DefaultTop)
		report.Weaknesses = scoring.Weaknesses(a)

		ids := make([]string, len(all))
		for i, r := range all {
			ids[i] = r.ID
		}
		s.metrics.RecordDiagnosis(report.Score.Total, ids)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil && opts.Narrative {
		if report.Narrative == nil {
			report.Narrative = &types.NarrativeResult{}
		}
		if report.Narrative.Text == "" && report.Narrative.Error == "" {
			report.Narrative.Error = err.Error()
		}
	}

	s.logger.Debug("diagnosis complete",
		zap.String("report_id", report.ID.String()),
		zap.Int("score", report.Score.Total),
		zap.Int("recommendations", len(report.Recommendations)))
	return report, nil
}

func (s *Service) narrate(ctx context.Context, a types.AnswerRecord) *types.NarrativeResult {
	start := time.Now()
	result, err := s.narrator.Generate(ctx, a)
	s.metrics.RecordNarrative(string(result.Source), time.Since(start))
	if err != nil {
		s.logger.Warn("narrative unavailable", zap.Error(err))
		if result.Error == "" {
			result.Error = err.Error()
		}
	}
	return &result
}
