package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NarrativeSource identifies which fallback tier produced the narrative.
type NarrativeSource string

// Narrative sources, in fallback order.
const (
	NarrativeRemote NarrativeSource = "remote"
	NarrativeDirect NarrativeSource = "direct"
	NarrativeStatic NarrativeSource = "static"
)

// NarrativeResult carries the free-text feedback or the error state shown instead.
type NarrativeResult struct {
	Text   string          `json:"text,omitempty"`
	Source NarrativeSource `json:"source,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Report is the deterministic diagnosis, optionally accompanied by a narrative.
type Report struct {
	ID              uuid.UUID         `json:"id"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Answers         AnswerRecord      `json:"answers"`
	Score           MaturityScore     `json:"score"`
	Level           string            `json:"level"`
	Projection      RevenueProjection `json:"projection"`
	Recommendations []Recommendation  `json:"recommendations"`
	QuickWins       []Recommendation  `json:"quick_wins"`
	Weaknesses      []string          `json:"weaknesses"`
	Narrative       *NarrativeResult  `json:"narrative,omitempty"`
	// MissingRequired lists required question ids the caller left unanswered.
	MissingRequired []string `json:"missing_required,omitempty"`
}

// AnalyzeRequest is the narrative endpoint payload. Older clients send the answers
// under "formData"; both carry the same flat mapping.
type AnalyzeRequest struct {
	Answers  map[string]any `json:"answers,omitempty" validate:"required_without=FormData"`
	FormData map[string]any `json:"formData,omitempty" validate:"required_without=Answers"`
}

// RawAnswers returns whichever answer mapping was supplied.
func (r *AnalyzeRequest) RawAnswers() map[string]any {
	if r.Answers != nil {
		return r.Answers
	}
	return r.FormData
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// DiagnosisRequest is the payload for the deterministic diagnosis endpoint.
type DiagnosisRequest struct {
	Answers map[string]any `json:"answers" validate:"required"`
	Top     int            `json:"top,omitempty" validate:"gte=0,lte=7"`
}

// Validate validates the DiagnosisRequest using the validator.
func (r *DiagnosisRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
