package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jonathan/sales-diagnostic/internal/diagnosis"
	"github.com/jonathan/sales-diagnostic/internal/intake"
	"github.com/jonathan/sales-diagnostic/internal/projection"
	"github.com/jonathan/sales-diagnostic/internal/questionnaire"
	"github.com/jonathan/sales-diagnostic/internal/recommend"
	"github.com/jonathan/sales-diagnostic/internal/scoring"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

const maxBodyBytes = 1 << 20

// AnalyzeResponse is the narrative endpoint's success body.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}

// ScoreResponse is returned by POST /api/score.
type ScoreResponse struct {
	Score           types.MaturityScore `json:"score"`
	Level           string              `json:"level"`
	Weaknesses      []string            `json:"weaknesses"`
	MissingRequired []string            `json:"missing_required,omitempty"`
}

// RecommendationsResponse is returned by POST /api/recommendations.
type RecommendationsResponse struct {
	Recommendations []types.Recommendation `json:"recommendations"`
	QuickWins       []types.Recommendation `json:"quick_wins"`
}

// QuestionsResponse is returned by GET /api/questions.
type QuestionsResponse struct {
	Sections   []questionnaire.Section            `json:"sections"`
	Questions  []questionnaire.QuestionDefinition `json:"questions"`
	Benchmarks map[string]float64                 `json:"benchmarks"`
}

// handleAnalyze returns the model's free-text feedback for a questionnaire.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		s.logger.Error("analyze called without a model API key")
		s.errorResponse(w, http.StatusInternalServerError, msgMissingAPIKey)
		return
	}

	var req types.AnalyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, validationError(err))
		return
	}
	answers, err := intake.DecodeMap(req.RawAnswers())
	if err != nil {
		s.failure(w, err)
		return
	}

	start := time.Now()
	text, err := s.analyzer.Generate(r.Context(), answers)
	if err != nil {
		s.logger.Error("analysis failed", zap.String("source", string(s.analyzer.Source())), zap.Error(err))
		s.metrics.RecordNarrative("", time.Since(start))
		s.errorResponse(w, http.StatusInternalServerError, msgAnalysisFailed)
		return
	}
	s.metrics.RecordNarrative(string(s.analyzer.Source()), time.Since(start))
	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{Analysis: text})
}

// handleDiagnosis returns the full report. ?narrative=true adds the narrative.
func (s *Server) handleDiagnosis(w http.ResponseWriter, r *http.Request) {
	in, err := s.readAnswers(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	withNarrative := false
	if raw := r.URL.Query().Get("narrative"); raw != "" {
		withNarrative, err = strconv.ParseBool(raw)
		if err != nil {
			s.failure(w, &ErrValidation{Field: "narrative", Message: "must be a boolean"})
			return
		}
	}

	report, err := s.service.Diagnose(r.Context(), in.answers, diagnosis.Options{Top: in.top, Narrative: withNarrative})
	if err != nil {
		s.failure(w, err)
		return
	}
	report.MissingRequired = in.missing
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	in, err := s.readAnswers(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	score := scoring.Score(in.answers)
	s.jsonResponse(w, http.StatusOK, ScoreResponse{
		Score:           score,
		Level:           scoring.Level(score.Total),
		Weaknesses:      scoring.Weaknesses(in.answers),
		MissingRequired: in.missing,
	})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	in, err := s.readAnswers(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, projection.Project(in.answers))
}

// handleRecommendations ranks the triggered rules. The query's top overrides the body's.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	in, err := s.readAnswers(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}
	top := in.top
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 0 {
			s.failure(w, &ErrValidation{Field: "top", Message: "must be a non-negative integer"})
			return
		}
		top = n
	}

	all := recommend.Recommend(in.answers)
	s.jsonResponse(w, http.StatusOK, RecommendationsResponse{
		Recommendations: recommend.Top(all, top),
		QuickWins:       recommend.SelectQuickWins(all, recommend.DefaultTop),
	})
}

func (s *Server) handleQuestions(w http.ResponseWriter, _ *http.Request) {
	b := questionnaire.Benchmarks
	s.jsonResponse(w, http.StatusOK, QuestionsResponse{
		Sections:  questionnaire.Sections(),
		Questions: questionnaire.Questions(),
		Benchmarks: map[string]float64{
			"qualified_rate":         b.QualifiedRate,
			"show_up_rate":           b.ShowUpRate,
			"closing_rate":           b.ClosingRate,
			"optimal_cac_multiplier": b.OptimalCACMultiplier,
		},
	})
}

// handleQuestion returns a single question definition.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	q, ok := questionnaire.ByID(chi.URLParam(r, "id"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown question")
		return
	}
	s.jsonResponse(w, http.StatusOK, q)
}

type answerInput struct {
	answers types.AnswerRecord
	top     int
	missing []string
}

// readAnswers decodes a {answers, top} envelope. A missing top falls back to the
// configured default.
func (s *Server) readAnswers(w http.ResponseWriter, r *http.Request) (answerInput, error) {
	var req types.DiagnosisRequest
	if err := decodeBody(w, r, &req); err != nil {
		return answerInput{}, err
	}
	if err := req.Validate(); err != nil {
		return answerInput{}, validationError(err)
	}

	answers, err := intake.DecodeMap(req.Answers)
	if err != nil {
		return answerInput{}, err
	}

	in := answerInput{
		answers: answers,
		top:     req.Top,
		missing: questionnaire.Missing(req.Answers),
	}
	if in.top == 0 {
		in.top = s.defaultTop
	}
	return in, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}
