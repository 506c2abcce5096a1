package recommend

import (
	"testing"

	"github.com/jonathan/sales-diagnostic/internal/projection"
	"github.com/jonathan/sales-diagnostic/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceAnswers() types.AnswerRecord {
	return types.AnswerRecord{
		LeadsVolume:    150,
		QualifiedRate:  40,
		FollowUpSystem: types.Bool(false),
		ShowUpRate:     70,
		ClosingRate:    25,
		AverageDeal:    5000,
		SalesReps:      3,
		CRMUsage:       types.CRMSometimes,
		Playbook:       types.Bool(false),
		Dashboards:     types.Bool(false),
	}
}

// healthyAnswers trips no rule.
func healthyAnswers() types.AnswerRecord {
	return types.AnswerRecord{
		LeadsVolume:    100,
		QualifiedRate:  60,
		OutboundVolume: 60,
		ResponseRate:   20,
		ShowUpRate:     80,
		ClosingRate:    40,
		AverageDeal:    3000,
		SalesReps:      2,
		CRMUsage:       types.CRMSystematic,
		Playbook:       types.Bool(true),
		Dashboards:     types.Bool(true),
	}
}

func ids(recs []types.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestRecommend_ReferenceAnswers(t *testing.T) {
	recs := Recommend(referenceAnswers())

	assert.Equal(t, []string{"crm_discipline", "outbound", "playbook", "dashboards"}, ids(recs))

	gains := map[string]float64{}
	for _, r := range recs {
		gains[r.ID] = r.EstimatedGain
	}
	assert.InDelta(t, 413437.5, gains["crm_discipline"], 1e-6)
	assert.InDelta(t, 482343.75, gains["outbound"], 1e-6)
	assert.InDelta(t, 248062.5, gains["playbook"], 1e-6)
	assert.InDelta(t, 165375.0, gains["dashboards"], 1e-6)
}

func TestRecommend_AllRulesOrdered(t *testing.T) {
	recs := Recommend(types.AnswerRecord{LeadsVolume: 100, ShowUpRate: 50, ClosingRate: 10, AverageDeal: 1000})

	assert.Equal(t, []string{
		"crm_discipline",
		"show_up",
		"closing",
		"outbound",
		"qualification",
		"playbook",
		"dashboards",
	}, ids(recs))

	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		if prev.Priority == cur.Priority {
			assert.LessOrEqual(t, prev.Impact.Rank(), cur.Impact.Rank())
		} else {
			assert.Less(t, prev.Priority, cur.Priority)
		}
	}
}

func TestRecommend_NoRuleTriggered(t *testing.T) {
	recs := Recommend(healthyAnswers())

	require.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.Empty(t, Top(recs, DefaultTop))
	assert.Empty(t, SelectQuickWins(recs, DefaultTop))
}

func TestRecommend_TriggerBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *types.AnswerRecord)
		wantID  string
		trigger bool
	}{
		{"show-up 69.9", func(a *types.AnswerRecord) { a.ShowUpRate = 69.9 }, "show_up", true},
		{"show-up 70", func(a *types.AnswerRecord) { a.ShowUpRate = 70 }, "show_up", false},
		{"closing 24", func(a *types.AnswerRecord) { a.ClosingRate = 24 }, "closing", true},
		{"closing 25", func(a *types.AnswerRecord) { a.ClosingRate = 25 }, "closing", false},
		{"qualification 39", func(a *types.AnswerRecord) { a.QualifiedRate = 39 }, "qualification", true},
		{"qualification 40", func(a *types.AnswerRecord) { a.QualifiedRate = 40 }, "qualification", false},
		{"outbound 29", func(a *types.AnswerRecord) { a.OutboundVolume = 29 }, "outbound", true},
		{"outbound 30", func(a *types.AnswerRecord) { a.OutboundVolume = 30 }, "outbound", false},
		{"crm sometimes", func(a *types.AnswerRecord) { a.CRMUsage = types.CRMSometimes }, "crm_discipline", true},
		{"crm unanswered", func(a *types.AnswerRecord) { a.CRMUsage = "" }, "crm_discipline", true},
		{"playbook unanswered", func(a *types.AnswerRecord) { a.Playbook = nil }, "playbook", true},
		{"dashboards no", func(a *types.AnswerRecord) { a.Dashboards = types.Bool(false) }, "dashboards", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := healthyAnswers()
			tt.mutate(&a)
			got := ids(Recommend(a))
			if tt.trigger {
				assert.Equal(t, []string{tt.wantID}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestRecommend_GainIsFractionOfAnnualGain(t *testing.T) {
	a := types.AnswerRecord{LeadsVolume: 80, ShowUpRate: 60, ClosingRate: 20, AverageDeal: 2500}
	annual := projection.Project(a).AnnualGain

	fractions := map[string]float64{
		"crm_discipline": 0.30,
		"show_up":        0.25,
		"closing":        0.40,
		"qualification":  0.25,
		"outbound":       0.35,
		"playbook":       0.18,
		"dashboards":     0.12,
	}
	for _, r := range Recommend(a) {
		assert.InDelta(t, annual*fractions[r.ID], r.EstimatedGain, 1e-6, r.ID)
	}
}

func TestRecommend_Titles(t *testing.T) {
	recs := Recommend(types.AnswerRecord{LeadsVolume: 100, ShowUpRate: 50, ClosingRate: 10, QualifiedRate: 20, OutboundVolume: 12, AverageDeal: 1000})

	titles := map[string]string{}
	for _, r := range recs {
		titles[r.ID] = r.Title
	}
	assert.Equal(t, "Améliorez votre taux de présence (50% → 65%)", titles["show_up"])
	assert.Equal(t, "Optimisez votre closing (10% → 20%)", titles["closing"])
	assert.Equal(t, "Améliorez la qualification (20% → 60%)", titles["qualification"])
	assert.Equal(t, "Intensifiez la prospection outbound (12 → 50+/semaine)", titles["outbound"])
}

func TestRecommend_ActionsAreCopies(t *testing.T) {
	first := Recommend(referenceAnswers())
	first[0].Actions[0] = "mutated"

	second := Recommend(referenceAnswers())
	assert.NotEqual(t, "mutated", second[0].Actions[0])
}

func TestTop(t *testing.T) {
	all := Recommend(referenceAnswers())

	assert.Equal(t, []string{"crm_discipline", "outbound", "playbook"}, ids(Top(all, DefaultTop)))
	assert.Len(t, Top(all, 10), 4)
	assert.Empty(t, Top(all, 0))
	assert.Empty(t, Top(all, -1))
	assert.Equal(t, all[:2], Top(all, 2))
}

func TestSelectQuickWins(t *testing.T) {
	all := Recommend(referenceAnswers())

	wins := SelectQuickWins(all, DefaultTop)
	assert.Equal(t, []string{"crm_discipline", "dashboards"}, ids(wins))
	for _, w := range wins {
		assert.True(t, w.QuickWin)
	}
	assert.Len(t, SelectQuickWins(all, 1), 1)
}

func TestRecommend_OutboundTitleRoundsWeeklyVolume(t *testing.T) {
	a := referenceAnswers()
	a.OutboundVolume = 12.6

	var title string
	for _, r := range Recommend(a) {
		if r.ID == "outbound" {
			title = r.Title
		}
	}
	assert.Equal(t, "Intensifiez la prospection outbound (13 → 50+/semaine)", title)
}

func TestRuleIDs(t *testing.T) {
	assert.Equal(t, []string{
		"crm_discipline", "show_up", "closing", "qualification", "outbound", "playbook", "dashboards",
	}, RuleIDs())
}
