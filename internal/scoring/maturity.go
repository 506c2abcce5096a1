// Package scoring computes the sales maturity score from questionnaire answers.
package scoring

import (
	"github.com/jonathan/sales-diagnostic/internal/types"
)

// Pillar caps.
const (
	MaxAcquisition = 30
	MaxProspection = 30
	MaxConversion  = 40
	MaxStructure   = 30
	MaxTotal       = 100
)

// Flat awards for yes/no signals.
const (
	cacPoints        = 5
	outboundPoints   = 5
	followUpPoints   = 10
	playbookPoints   = 10
	dashboardsPoints = 10
)

var (
	qualificationLadder = atLeast(rung{70, 15}, rung{50, 8}, rung{30, 3})
	leadVolumeLadder    = above(rung{50, 5}, rung{30, 3}, rung{10, 1})

	outboundVolumeLadder = above(rung{100, 10}, rung{50, 5}, rung{20, 2})
	responseRateLadder   = atLeast(rung{20, 10}, rung{10, 5}, rung{5, 2})

	closingRateLadder = atLeast(rung{40, 15}, rung{30, 10}, rung{20, 5}, rung{10, 2})
	showUpRateLadder  = atLeast(rung{85, 15}, rung{75, 10}, rung{65, 5}, rung{50, 2})
	salesRepsLadder   = atLeast(rung{3, 5}, rung{2, 3})
	averageDealLadder = above(rung{5000, 5})
)

// Score maps an answer record to its maturity score. It is total: absent answers
// simply earn no points.
func Score(a types.AnswerRecord) types.MaturityScore {
	pillars := types.Pillars{
		Acquisition: acquisition(a),
		Prospection: prospection(a),
		Conversion:  conversion(a),
		Structure:   structure(a),
	}

	return types.MaturityScore{
		Total:   clamp(pillars.Sum(), 0, MaxTotal),
		Pillars: pillars,
	}
}

func acquisition(a types.AnswerRecord) int {
	pts := qualificationLadder.points(a.QualifiedRate)
	pts += leadVolumeLadder.points(a.LeadsVolume)
	if a.HasCAC() {
		pts += cacPoints
	}
	if a.OutboundVolume > 0 {
		pts += outboundPoints
	}
	return clamp(pts, 0, MaxAcquisition)
}

func prospection(a types.AnswerRecord) int {
	pts := outboundVolumeLadder.points(a.OutboundVolume)
	pts += responseRateLadder.points(a.ResponseRate)
	if a.HasFollowUpSystem() {
		pts += followUpPoints
	}
	return clamp(pts, 0, MaxProspection)
}

func conversion(a types.AnswerRecord) int {
	pts := closingRateLadder.points(a.ClosingRate)
	pts += showUpRateLadder.points(a.ShowUpRate)
	pts += salesRepsLadder.points(a.SalesReps)
	pts += averageDealLadder.points(a.AverageDeal)
	return clamp(pts, 0, MaxConversion)
}

func structure(a types.AnswerRecord) int {
	pts := crmPoints(a.CRMUsage)
	if a.HasPlaybook() {
		pts += playbookPoints
	}
	if a.HasDashboards() {
		pts += dashboardsPoints
	}
	return clamp(pts, 0, MaxStructure)
}

func crmPoints(c types.CRMUsage) int {
	switch c {
	case types.CRMSystematic:
		return 10
	case types.CRMSometimes:
		return 3
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
