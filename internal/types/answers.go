// Package types provides type definitions for structured data used throughout the sales diagnostic.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// CRMUsage is the declared level of CRM discipline in the sales team.
type CRMUsage string

// CRM usage levels offered by the questionnaire, from most to least disciplined.
const (
	CRMSystematic CRMUsage = "systematic"
	CRMSometimes  CRMUsage = "sometimes"
	CRMRarely     CRMUsage = "no"
	CRMNone       CRMUsage = "no-crm"
)

// Valid reports whether the value is one of the catalog options.
func (c CRMUsage) Valid() bool {
	switch c {
	case CRMSystematic, CRMSometimes, CRMRarely, CRMNone:
		return true
	}
	return false
}

// ParseCRMUsage normalizes a raw option tag. Unknown tags map to the empty value,
// which scores as the lowest tier.
func ParseCRMUsage(raw string) CRMUsage {
	c := CRMUsage(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return ""
	}
	return c
}

// AnswerRecord is the complete set of questionnaire answers handed to the scoring
// pipeline. Absent numeric answers are zero; tri-state booleans are nil when unanswered.
type AnswerRecord struct {
	// Acquisition
	LeadsVolume   float64  `json:"leads_volume"`
	QualifiedRate float64  `json:"qualified_rate"`
	CAC           *float64 `json:"cac,omitempty"`

	// Prospection
	OutboundVolume float64 `json:"outbound_volume"`
	ResponseRate   float64 `json:"response_rate"`
	FollowUpSystem *bool   `json:"follow_up_system,omitempty"`

	// Conversion
	ShowUpRate  float64 `json:"show_up_rate"`
	ClosingRate float64 `json:"closing_rate"`
	AverageDeal float64 `json:"average_deal"`
	SalesReps   float64 `json:"sales_reps"`

	// Structure
	CRMUsage   CRMUsage `json:"crm_usage,omitempty"`
	Playbook   *bool    `json:"playbook,omitempty"`
	Dashboards *bool    `json:"dashboards,omitempty"`
}

// HasCAC reports whether an acquisition cost was provided.
func (a AnswerRecord) HasCAC() bool {
	return a.CAC != nil && *a.CAC > 0
}

// HasFollowUpSystem reports a "yes" answer; unanswered counts as no.
func (a AnswerRecord) HasFollowUpSystem() bool {
	return isTrue(a.FollowUpSystem)
}

// HasPlaybook reports a "yes" answer; unanswered counts as no.
func (a AnswerRecord) HasPlaybook() bool {
	return isTrue(a.Playbook)
}

// HasDashboards reports a "yes" answer; unanswered counts as no.
func (a AnswerRecord) HasDashboards() bool {
	return isTrue(a.Dashboards)
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

// Bool returns a pointer to v, for building records in code and tests.
func Bool(v bool) *bool {
	return &v
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
