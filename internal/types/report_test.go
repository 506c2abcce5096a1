package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AnalyzeRequest
		wantErr bool
	}{
		{
			name: "answers field",
			req:  AnalyzeRequest{Answers: map[string]any{"leads_volume": 10}},
		},
		{
			name: "legacy formData field",
			req:  AnalyzeRequest{FormData: map[string]any{"leads_volume": 10}},
		},
		{
			name:    "neither field",
			req:     AnalyzeRequest{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyzeRequest_RawAnswersPrefersAnswers(t *testing.T) {
	req := AnalyzeRequest{
		Answers:  map[string]any{"source": "answers"},
		FormData: map[string]any{"source": "formData"},
	}
	assert.Equal(t, "answers", req.RawAnswers()["source"])

	req.Answers = nil
	assert.Equal(t, "formData", req.RawAnswers()["source"])
}

func TestDiagnosisRequest_Validate(t *testing.T) {
	valid := DiagnosisRequest{Answers: map[string]any{}, Top: 3}
	assert.NoError(t, valid.Validate())

	missing := DiagnosisRequest{Top: 3}
	assert.Error(t, missing.Validate())

	tooMany := DiagnosisRequest{Answers: map[string]any{}, Top: 8}
	assert.Error(t, tooMany.Validate())

	negative := DiagnosisRequest{Answers: map[string]any{}, Top: -1}
	assert.Error(t, negative.Validate())
}
