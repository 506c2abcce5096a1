package narrative

import (
	"context"
	"sync"

	"github.com/jonathan/sales-diagnostic/internal/llm"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

type fakeClient struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (f *fakeClient) GenerateText(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeClient) Close() error { return nil }

type stubTier struct {
	source types.NarrativeSource
	text   string
	err    error
	calls  int
}

func (s *stubTier) Source() types.NarrativeSource { return s.source }

func (s *stubTier) Generate(context.Context, types.AnswerRecord) (string, error) {
	s.calls++
	return s.text, s.err
}

func sampleAnswers() types.AnswerRecord {
	return types.AnswerRecord{
		LeadsVolume:    150,
		QualifiedRate:  40,
		ShowUpRate:     70,
		ClosingRate:    25,
		AverageDeal:    5000,
		SalesReps:      3,
		CRMUsage:       types.CRMSometimes,
		FollowUpSystem: types.Bool(true),
		Playbook:       types.Bool(false),
	}
}
