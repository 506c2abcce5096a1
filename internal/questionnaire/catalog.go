// Package questionnaire holds the static question catalog consumed by the UI and the
// scoring pipeline. The catalog is built once and never mutated.
package questionnaire

import (
	"github.com/jonathan/sales-diagnostic/internal/types"
)

// InputType is the semantic type of a question's answer.
type InputType string

// Input types used by the catalog.
const (
	InputNumber     InputType = "number"
	InputPercentage InputType = "percentage"
	InputCurrency   InputType = "currency"
	InputBoolean    InputType = "boolean"
	InputSelect     InputType = "select"
)

// Question ids. They double as the JSON keys of an answer payload.
const (
	LeadsVolume    = "leads_volume"
	QualifiedRate  = "qualified_rate"
	CAC            = "cac"
	OutboundVolume = "outbound_volume"
	ResponseRate   = "response_rate"
	FollowUpSystem = "follow_up_system"
	ShowUpRate     = "show_up_rate"
	ClosingRate    = "closing_rate"
	AverageDeal    = "average_deal"
	SalesReps      = "sales_reps"
	CRMUsage       = "crm_usage"
	Playbook       = "playbook"
	Dashboards     = "dashboards"
)

// Section groups questions under a scoring pillar.
type Section struct {
	ID          types.Pillar `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
}

// Option is one choice of a select question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// QuestionDefinition describes a single questionnaire entry.
type QuestionDefinition struct {
	ID          string       `json:"id"`
	Section     types.Pillar `json:"section"`
	Type        InputType    `json:"type"`
	Label       string       `json:"label"`
	Unit        string       `json:"unit,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Helper      string       `json:"helper,omitempty"`
	Required    bool         `json:"required"`
	Options     []Option     `json:"options,omitempty"`
}

// Benchmarks are B2B SMB reference values shown next to the answers.
var Benchmarks = struct {
	QualifiedRate        float64
	ShowUpRate           float64
	ClosingRate          float64
	OptimalCACMultiplier float64
}{
	QualifiedRate:        50,
	ShowUpRate:           75,
	ClosingRate:          25,
	OptimalCACMultiplier: 3,
}

var sections = []Section{
	{ID: types.PillarAcquisition, Title: "Acquisition", Description: "Vos flux de prospects entrants"},
	{ID: types.PillarProspection, Title: "Prospection", Description: "Votre démarche sortante (Outbound)"},
	{ID: types.PillarConversion, Title: "Conversion", Description: "Votre performance commerciale"},
	{ID: types.PillarStructure, Title: "Structure", Description: "Votre organisation interne"},
}

var questions = []QuestionDefinition{
	{
		ID:          LeadsVolume,
		Section:     types.PillarAcquisition,
		Type:        InputNumber,
		Label:       "Combien de prospects avez-vous en appel par mois ?",
		Unit:        "prospects/mois",
		Placeholder: "150",
		Helper:      "Tous canaux confondus",
		Required:    true,
	},
	{
		ID:          QualifiedRate,
		Section:     types.PillarAcquisition,
		Type:        InputPercentage,
		Label:       "Quel % de vos prospects sont réellement qualifiés ?",
		Unit:        "%",
		Placeholder: "40",
		Helper:      "Prospects correspondant à votre client idéal",
		Required:    true,
	},
	{
		ID:          CAC,
		Section:     types.PillarAcquisition,
		Type:        InputCurrency,
		Label:       "Quel est votre coût d'acquisition client (CAC) ?",
		Unit:        "€",
		Placeholder: "500",
		Helper:      "(Optionnel) Si inconnu, laisser vide.",
	},
	{
		ID:          OutboundVolume,
		Section:     types.PillarProspection,
		Type:        InputNumber,
		Label:       "Combien de nouveaux contacts approchez-vous par semaine ?",
		Unit:        "contacts/semaine",
		Placeholder: "50",
		Helper:      "LinkedIn, Email, Téléphone...",
		Required:    true,
	},
	{
		ID:          ResponseRate,
		Section:     types.PillarProspection,
		Type:        InputPercentage,
		Label:       "Quel est votre taux de réponse moyen ?",
		Unit:        "%",
		Placeholder: "5",
		Helper:      "Estimation",
		Required:    true,
	},
	{
		ID:       FollowUpSystem,
		Section:  types.PillarProspection,
		Type:     InputBoolean,
		Label:    "Avez-vous un système pour tracker quelles accroches marchent le mieux ?",
		Helper:   "Tests A/B, reporting des messages",
		Required: true,
	},
	{
		ID:          ShowUpRate,
		Section:     types.PillarConversion,
		Type:        InputPercentage,
		Label:       "Quel % de vos prospects se présentent aux RDV ?",
		Unit:        "%",
		Placeholder: "70",
		Helper:      "Taux de présence aux rendez-vous programmés",
		Required:    true,
	},
	{
		ID:          ClosingRate,
		Section:     types.PillarConversion,
		Type:        InputPercentage,
		Label:       "Quel est votre taux de closing ?",
		Unit:        "%",
		Placeholder: "25",
		Helper:      "Pourcentage de prospects qui deviennent clients",
		Required:    true,
	},
	{
		ID:          AverageDeal,
		Section:     types.PillarConversion,
		Type:        InputCurrency,
		Label:       "Quel est votre panier moyen ?",
		Unit:        "€",
		Placeholder: "5000",
		Helper:      "Valeur moyenne d'un client",
		Required:    true,
	},
	{
		ID:          SalesReps,
		Section:     types.PillarConversion,
		Type:        InputNumber,
		Label:       "Combien de commerciaux actifs avez-vous ?",
		Unit:        "commerciaux",
		Placeholder: "3",
		Required:    true,
	},
	{
		ID:      CRMUsage,
		Section: types.PillarStructure,
		Type:    InputSelect,
		Label:   "Comment utilisez-vous votre CRM ?",
		Options: []Option{
			{Value: string(types.CRMSystematic), Label: "Usage systématique et rigoureux"},
			{Value: string(types.CRMSometimes), Label: "Usage occasionnel"},
			{Value: string(types.CRMRarely), Label: "Rarement utilisé"},
			{Value: string(types.CRMNone), Label: "Nous n'avons pas de CRM"},
		},
		Required: true,
	},
	{
		ID:      Playbook,
		Section: types.PillarStructure,
		Type:    InputBoolean,
		Label:   "Utilisez-vous des techniques de vente structurées ?",
		Helper:  "Méthodologie claire et enseignée à l'équipe",
	},
	{
		ID:      Dashboards,
		Section: types.PillarStructure,
		Type:    InputBoolean,
		Label:   "Votre équipe peut-elle suivre ses performances facilement ?",
		Helper:  "Accès simple aux chiffres clés",
	},
}

var byID = indexByID(questions)

func indexByID(qs []QuestionDefinition) map[string]QuestionDefinition {
	m := make(map[string]QuestionDefinition, len(qs))
	for _, q := range qs {
		m[q.ID] = q
	}
	return m
}

// Sections returns the questionnaire sections in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Questions returns every question in display order.
func Questions() []QuestionDefinition {
	out := make([]QuestionDefinition, len(questions))
	for i, q := range questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// ByID looks up a question by its id.
func ByID(id string) (QuestionDefinition, bool) {
	q, ok := byID[id]
	if !ok {
		return QuestionDefinition{}, false
	}
	return cloneQuestion(q), true
}

// BySection returns the questions belonging to a section, in display order.
func BySection(section types.Pillar) []QuestionDefinition {
	var out []QuestionDefinition
	for _, q := range questions {
		if q.Section == section {
			out = append(out, cloneQuestion(q))
		}
	}
	return out
}

// RequiredIDs returns the ids of all required questions.
func RequiredIDs() []string {
	var ids []string
	for _, q := range questions {
		if q.Required {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// Missing returns the required question ids that have no usable answer in raw.
// Empty strings and nulls count as unanswered; false and 0 are answers.
func Missing(raw map[string]any) []string {
	var missing []string
	for _, id := range RequiredIDs() {
		v, ok := raw[id]
		if !ok || v == nil {
			missing = append(missing, id)
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			missing = append(missing, id)
		}
	}
	return missing
}

func cloneQuestion(q QuestionDefinition) QuestionDefinition {
	if q.Options != nil {
		opts := make([]Option, len(q.Options))
		copy(opts, q.Options)
		q.Options = opts
	}
	return q
}
