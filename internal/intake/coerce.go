// Package intake converts raw questionnaire payloads into typed answer records.
// Conversion is permissive: malformed or missing values fall back to the most
// conservative default instead of failing.
package intake

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/jonathan/sales-diagnostic/internal/questionnaire"
	"github.com/jonathan/sales-diagnostic/internal/schemas"
	"github.com/jonathan/sales-diagnostic/internal/types"
	"github.com/spf13/cast"
)

// Decode validates a JSON answer document and coerces it into an AnswerRecord.
// Only a document that is not an object of scalar values is rejected.
func Decode(data []byte) (types.AnswerRecord, error) {
	if err := schemas.ValidateAnswers(data); err != nil {
		return types.AnswerRecord{}, &DecodeError{Message: "payload does not match answer schema", Cause: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return types.AnswerRecord{}, &DecodeError{Message: "invalid JSON", Cause: err}
	}

	return Coerce(raw), nil
}

// DecodeMap is Decode for a mapping already extracted from a request envelope.
func DecodeMap(raw map[string]any) (types.AnswerRecord, error) {
	if raw == nil {
		return types.AnswerRecord{}, &DecodeError{Message: "answers are required"}
	}
	if err := schemas.ValidateAnswerMap(raw); err != nil {
		return types.AnswerRecord{}, &DecodeError{Message: "payload does not match answer schema", Cause: err}
	}
	return Coerce(raw), nil
}

// Coerce builds an AnswerRecord from a flat key/value mapping keyed by question id.
func Coerce(raw map[string]any) types.AnswerRecord {
	a := types.AnswerRecord{
		LeadsVolume:    count(raw[questionnaire.LeadsVolume]),
		QualifiedRate:  percentage(raw[questionnaire.QualifiedRate]),
		OutboundVolume: count(raw[questionnaire.OutboundVolume]),
		ResponseRate:   percentage(raw[questionnaire.ResponseRate]),
		FollowUpSystem: flag(raw[questionnaire.FollowUpSystem]),
		ShowUpRate:     percentage(raw[questionnaire.ShowUpRate]),
		ClosingRate:    percentage(raw[questionnaire.ClosingRate]),
		AverageDeal:    count(raw[questionnaire.AverageDeal]),
		SalesReps:      count(raw[questionnaire.SalesReps]),
		CRMUsage:       types.ParseCRMUsage(cast.ToString(raw[questionnaire.CRMUsage])),
		Playbook:       flag(raw[questionnaire.Playbook]),
		Dashboards:     flag(raw[questionnaire.Dashboards]),
	}

	if cac := count(raw[questionnaire.CAC]); cac > 0 {
		a.CAC = types.Float(cac)
	}

	return a
}

// Number parses a numeric answer. Strings may carry surrounding spaces, thousands
// separators written as spaces, a decimal comma, or a trailing unit (% or €).
// Anything unparseable, negative, or non-finite yields 0.
func Number(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case json.Number:
		v = x.String()
	case bool:
		return 0
	}

	if s, ok := v.(string); ok {
		v = normalizeNumeric(s)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func count(v any) float64 {
	return Number(v)
}

func percentage(v any) float64 {
	return math.Min(Number(v), 100)
}

func normalizeNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSuffix(s, "€")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, ",", ".")
	return s
}

// flag parses a tri-state boolean answer. Unrecognized values stay unanswered.
func flag(v any) *bool {
	switch x := v.(type) {
	case nil:
		return nil
	case bool:
		return types.Bool(x)
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "oui", "yes", "y", "o":
			return types.Bool(true)
		case "non", "no", "n":
			return types.Bool(false)
		case "":
			return nil
		}
	case json.Number:
		v = x.String()
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil
	}
	return types.Bool(b)
}
