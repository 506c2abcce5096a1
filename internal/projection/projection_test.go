package projection

import (
	"math/rand"
	"testing"

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

func TestProject_ReferenceAnswers(t *testing.T) {
	p := Project(referenceAnswers())

	assert.InDelta(t, 131250.0, p.CurrentMonthly, 1e-6)
	assert.Equal(t, types.OptimizedFunnel{LeadsVolume: 187.5, ShowUpRate: 75, ClosingRate: 35}, p.Optimized)
	assert.InDelta(t, 246093.75, p.OptimizedMonthly, 1e-6)
	// 246093.75 / 131250 is exactly 1.875
	assert.Equal(t, 88, p.PercentageGain)
	assert.InDelta(t, 1378125.0, p.AnnualGain, 1e-6)
	assert.Equal(t, 26, p.MaturityScore)
}

func TestProject_ZeroCurrentRevenue(t *testing.T) {
	a := referenceAnswers()
	a.LeadsVolume = 0

	var p types.RevenueProjection
	require.NotPanics(t, func() { p = Project(a) })

	assert.Zero(t, p.CurrentMonthly)
	assert.Zero(t, p.OptimizedMonthly)
	assert.Zero(t, p.PercentageGain)
	assert.Zero(t, p.AnnualGain)
}

func TestProject_ZeroRateStillOptimizes(t *testing.T) {
	a := referenceAnswers()
	a.ClosingRate = 0

	p := Project(a)

	assert.Zero(t, p.CurrentMonthly)
	assert.Equal(t, 10.0, p.Optimized.ClosingRate)
	assert.Greater(t, p.OptimizedMonthly, 0.0)
	assert.Zero(t, p.PercentageGain)
}

func TestProject_FloorAppliesToMatureFunnel(t *testing.T) {
	a := types.AnswerRecord{
		LeadsVolume:    100,
		OutboundVolume: 200,
		ResponseRate:   40,
		ShowUpRate:     90,
		ClosingRate:    60,
		AverageDeal:    1000,
	}

	p := Project(a)

	assert.Equal(t, 90.0, p.Optimized.ShowUpRate)
	assert.Equal(t, 60.0, p.Optimized.ClosingRate)
	assert.InDelta(t, 105.0, p.Optimized.LeadsVolume, 1e-9)
	assert.InDelta(t, p.CurrentMonthly*MinimumUplift, p.OptimizedMonthly, 1e-6)
	assert.Equal(t, 5, p.PercentageGain)
}

func TestImprovedShowUp(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{0, 15},
		{50, 65},
		{60, 75},
		{70, 75},
		{74.9, 75},
		{75, 80},
		{82, 85},
		{84, 85},
		{85, 85},
		{95, 95},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.out, improvedShowUp(tt.in), 1e-9, "show-up %v", tt.in)
	}
}

func TestImprovedClosing(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{0, 10},
		{25, 35},
		{29, 35},
		{30, 35},
		{38, 43},
		{40, 43},
		{49, 52},
		{50, 50},
		{70, 70},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.out, improvedClosing(tt.in), 1e-9, "closing %v", tt.in)
	}
}

func TestImprovedLeads(t *testing.T) {
	tests := []struct {
		name     string
		outbound float64
		response float64
		factor   float64
	}{
		{"low outbound", 10, 50, 1.25},
		{"low response", 200, 10, 1.25},
		{"mid outbound", 60, 50, 1.15},
		{"mid response", 200, 25, 1.15},
		{"strong both", 100, 30, 1.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := types.AnswerRecord{LeadsVolume: 100, OutboundVolume: tt.outbound, ResponseRate: tt.response}
			assert.InDelta(t, 100*tt.factor, improvedLeads(a), 1e-9)
		})
	}
}

func TestProject_OptimizedNeverBelowFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		a := types.AnswerRecord{
			LeadsVolume:    rng.Float64() * 500,
			OutboundVolume: rng.Float64() * 300,
			ResponseRate:   rng.Float64() * 100,
			ShowUpRate:     rng.Float64() * 100,
			ClosingRate:    rng.Float64() * 100,
			AverageDeal:    rng.Float64() * 20000,
		}
		p := Project(a)

		assert.GreaterOrEqual(t, p.OptimizedMonthly, p.CurrentMonthly*MinimumUplift-1e-9)
		assert.GreaterOrEqual(t, p.AnnualGain, -1e-9)
		assert.GreaterOrEqual(t, p.Optimized.ShowUpRate, a.ShowUpRate)
		assert.GreaterOrEqual(t, p.Optimized.ClosingRate, a.ClosingRate)
		if p.CurrentMonthly > 0 {
			assert.GreaterOrEqual(t, p.PercentageGain, 5)
		}
	}
}

func TestProject_StructureUpgradesNeverRaiseGain(t *testing.T) {
	// Each step keeps the funnel fixed and improves one structural answer.
	steps := []struct {
		name  string
		apply func(*types.AnswerRecord)
	}{
		{name: "crm none", apply: func(a *types.AnswerRecord) { a.CRMUsage = types.CRMNone }},
		{name: "crm sometimes", apply: func(a *types.AnswerRecord) { a.CRMUsage = types.CRMSometimes }},
		{name: "crm systematic", apply: func(a *types.AnswerRecord) { a.CRMUsage = types.CRMSystematic }},
		{name: "playbook", apply: func(a *types.AnswerRecord) { a.Playbook = types.Bool(true) }},
		{name: "dashboards", apply: func(a *types.AnswerRecord) { a.Dashboards = types.Bool(true) }},
	}

	a := referenceAnswers()
	steps[0].apply(&a)
	prev := Project(a)

	for _, step := range steps[1:] {
		t.Run(step.name, func(t *testing.T) {
			step.apply(&a)
			p := Project(a)

			assert.LessOrEqual(t, p.PercentageGain, prev.PercentageGain)
			assert.Greater(t, p.MaturityScore, prev.MaturityScore)
			assert.Equal(t, prev.CurrentMonthly, p.CurrentMonthly)
			prev = p
		})
	}
}
