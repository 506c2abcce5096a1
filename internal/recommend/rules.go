package recommend

import (
	"fmt"
	"math"

	"github.com/jonathan/sales-diagnostic/internal/types"
)

// rule is a catalog entry: a trigger over the answers and the copy shown when it fires.
type rule struct {
	id       string
	priority int
	category types.Pillar
	impact   types.Impact
	fraction float64 // share of the annual gain attributed to this fix
	quickWin bool

	trigger func(a types.AnswerRecord) bool
	title   func(a types.AnswerRecord, p types.RevenueProjection) string

	description string
	timeframe   string
	difficulty  string
	actions     []string
}

// catalog order is the tie-breaker when priority and impact are equal.
var catalog = []rule{
	{
		id:       "crm_discipline",
		priority: 1,
		category: types.PillarStructure,
		impact:   types.ImpactCritical,
		fraction: 0.30,
		quickWin: true,
		trigger:  func(a types.AnswerRecord) bool { return a.CRMUsage != types.CRMSystematic },
		title: func(types.AnswerRecord, types.RevenueProjection) string {
			return "Imposez l'utilisation rigoureuse du CRM"
		},
		description: "Sans CRM, impossible d'avoir de la visibilité et d'optimiser vos process",
		timeframe:   "1-2 semaines",
		difficulty:  "low",
		actions: []string{
			"Définir le process de saisie obligatoire",
			"Former l'équipe aux bonnes pratiques",
			"Installer des contrôles qualité hebdomadaires",
			"Créer des dashboards de suivi en temps réel",
		},
	},
	{
		id:       "show_up",
		priority: 1,
		category: types.PillarConversion,
		impact:   types.ImpactHigh,
		fraction: 0.25,
		quickWin: true,
		trigger:  func(a types.AnswerRecord) bool { return a.ShowUpRate < 70 },
		title: func(a types.AnswerRecord, p types.RevenueProjection) string {
			return fmt.Sprintf("Améliorez votre taux de présence (%s%% → %s%%)",
				whole(a.ShowUpRate), whole(p.Optimized.ShowUpRate))
		},
		description: "Chaque RDV fantôme = temps commercial perdu + opportunité manquée",
		timeframe:   "1-2 semaines",
		difficulty:  "low",
		actions: []string{
			"Rappels automatiques 24h et 2h avant",
			"Qualifier l'engagement avant de booker",
			"Réduire le délai entre prise de RDV et RDV",
			"Demander d'ajouter au calendrier",
		},
	},
	{
		id:       "closing",
		priority: 1,
		category: types.PillarConversion,
		impact:   types.ImpactHigh,
		fraction: 0.40,
		trigger:  func(a types.AnswerRecord) bool { return a.ClosingRate < 25 },
		title: func(a types.AnswerRecord, p types.RevenueProjection) string {
			return fmt.Sprintf("Optimisez votre closing (%s%% → %s%%)",
				whole(a.ClosingRate), whole(p.Optimized.ClosingRate))
		},
		description: "Un closing faible révèle un problème de qualification ou de pitch",
		timeframe:   "4-8 semaines",
		difficulty:  "high",
		actions: []string{
			"Analyser les raisons de perte systématiquement",
			"Créer un Book de Vente structuré",
			"Former l'équipe aux objections",
			"Tester des ajustements de pricing/offre",
		},
	},
	{
		id:       "qualification",
		priority: 2,
		category: types.PillarAcquisition,
		impact:   types.ImpactMedium,
		fraction: 0.25,
		trigger:  func(a types.AnswerRecord) bool { return a.QualifiedRate < 40 },
		title: func(a types.AnswerRecord, _ types.RevenueProjection) string {
			return fmt.Sprintf("Améliorez la qualification (%s%% → 60%%)", whole(a.QualifiedRate))
		},
		description: "Trop de leads non qualifiés saturent votre équipe et baissent le closing",
		timeframe:   "2-4 semaines",
		difficulty:  "medium",
		actions: []string{
			"Définir votre ICP (Ideal Customer Profile)",
			"Mettre en place un lead scoring",
			"Former le marketing à la qualification",
			"Créer des filtres sur les formulaires",
		},
	},
	{
		id:       "outbound",
		priority: 2,
		category: types.PillarProspection,
		impact:   types.ImpactHigh,
		fraction: 0.35,
		trigger:  func(a types.AnswerRecord) bool { return a.OutboundVolume < 30 },
		title: func(a types.AnswerRecord, _ types.RevenueProjection) string {
			return fmt.Sprintf("Intensifiez la prospection outbound (%s → 50+/semaine)", whole(a.OutboundVolume))
		},
		description: "Ne dépendez pas que de l'inbound, prenez les devants",
		timeframe:   "2-4 semaines",
		difficulty:  "medium",
		actions: []string{
			"Définir une cible de contacts hebdomadaire",
			"Créer des séquences de prospection automatisées",
			"Tester différents canaux (LinkedIn, Email, Phone)",
			"Mesurer le taux de réponse par canal",
		},
	},
	{
		id:       "playbook",
		priority: 3,
		category: types.PillarStructure,
		impact:   types.ImpactMedium,
		fraction: 0.18,
		trigger:  func(a types.AnswerRecord) bool { return !a.HasPlaybook() },
		title: func(types.AnswerRecord, types.RevenueProjection) string {
			return "Créez un Book de Vente documenté"
		},
		description: "Standardisez vos approches gagnantes pour ne plus dépendre du talent individuel",
		timeframe:   "3-4 semaines",
		difficulty:  "medium",
		actions: []string{
			"Documenter le pitch gagnant",
			"Lister les objections et réponses",
			"Définir le processus étape par étape",
			"Créer des templates (emails, propositions)",
		},
	},
	{
		id:       "dashboards",
		priority: 3,
		category: types.PillarStructure,
		impact:   types.ImpactMedium,
		fraction: 0.12,
		quickWin: true,
		trigger:  func(a types.AnswerRecord) bool { return !a.HasDashboards() },
		title: func(types.AnswerRecord, types.RevenueProjection) string {
			return "Implémentez des dashboards en temps réel"
		},
		description: "Donnez de la visibilité à votre équipe sur le pipeline",
		timeframe:   "1-2 semaines",
		difficulty:  "low",
		actions: []string{
			"Identifier les KPIs critiques à tracker",
			"Configurer les dashboards dans le CRM",
			"Former l'équipe à la lecture des métriques",
			"Installer des rituels de review hebdomadaires",
		},
	},
}

// RuleIDs lists every rule id in catalog order.
func RuleIDs() []string {
	ids := make([]string, len(catalog))
	for i, r := range catalog {
		ids[i] = r.id
	}
	return ids
}

func (r rule) build(a types.AnswerRecord, p types.RevenueProjection) types.Recommendation {
	return types.Recommendation{
		ID:            r.id,
		Priority:      r.priority,
		Category:      r.category,
		Title:         r.title(a, p),
		Description:   r.description,
		Impact:        r.impact,
		EstimatedGain: p.AnnualGain * r.fraction,
		Timeframe:     r.timeframe,
		Difficulty:    r.difficulty,
		QuickWin:      r.quickWin,
		Actions:       append([]string(nil), r.actions...),
	}
}

// whole rounds a rate or a count for display in a title.
func whole(v float64) string {
	return fmt.Sprintf("%d", int(math.Round(v)))
}
