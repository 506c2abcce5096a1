// Package projection models current and optimized monthly revenue from the sales funnel.
package projection

import (
	"math"

	"github.com/jonathan/sales-diagnostic/internal/scoring"
	"github.com/jonathan/sales-diagnostic/internal/types"
)

// MinimumUplift is the floor applied to the optimized revenue relative to current.
const MinimumUplift = 1.05

// Project computes the revenue projection for an answer record.
func Project(a types.AnswerRecord) types.RevenueProjection {
	current := Monthly(a.LeadsVolume, a.ShowUpRate, a.ClosingRate, a.AverageDeal)

	funnel := Optimize(a)
	optimized := Monthly(funnel.LeadsVolume, funnel.ShowUpRate, funnel.ClosingRate, a.AverageDeal)
	optimized = math.Max(optimized, current*MinimumUplift)

	pct := 0
	if current > 0 {
		pct = int(math.Round((optimized/current - 1) * 100))
	}

	return types.RevenueProjection{
		CurrentMonthly:   current,
		OptimizedMonthly: optimized,
		PercentageGain:   pct,
		AnnualGain:       (optimized - current) * 12,
		MaturityScore:    scoring.Score(a).Total,
		Optimized:        funnel,
	}
}

// Monthly is the revenue produced by a funnel: leads × show-up × closing × deal.
// Rates are percentages.
func Monthly(leads, showUp, closing, deal float64) float64 {
	return leads * (showUp / 100) * (closing / 100) * deal
}

// Optimize returns the improved funnel inputs. The average deal is left unchanged.
func Optimize(a types.AnswerRecord) types.OptimizedFunnel {
	return types.OptimizedFunnel{
		LeadsVolume: improvedLeads(a),
		ShowUpRate:  improvedShowUp(a.ShowUpRate),
		ClosingRate: improvedClosing(a.ClosingRate),
	}
}

func improvedShowUp(v float64) float64 {
	switch {
	case v < 75:
		return math.Min(75, v+15)
	case v < 85:
		return math.Min(85, v+5)
	default:
		return v
	}
}

func improvedClosing(v float64) float64 {
	switch {
	case v < 30:
		return math.Min(35, v+10)
	case v < 40:
		return math.Min(45, v+5)
	case v < 50:
		return math.Min(55, v+3)
	default:
		return v
	}
}

func improvedLeads(a types.AnswerRecord) float64 {
	switch {
	case a.OutboundVolume < 50 || a.ResponseRate < 20:
		return a.LeadsVolume * 1.25
	case a.OutboundVolume < 100 || a.ResponseRate < 30:
		return a.LeadsVolume * 1.15
	default:
		return a.LeadsVolume * 1.05
	}
}
