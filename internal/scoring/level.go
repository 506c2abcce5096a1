package scoring

import "github.com/jonathan/sales-diagnostic/internal/types"

// Maturity bands used when presenting a total score.
const (
	LevelLow      = "low"
	LevelAverage  = "average"
	LevelStrong   = "strong"
	LevelAdvanced = "advanced"
)

// Level returns the presentation band for a total score.
func Level(total int) string {
	switch {
	case total >= 80:
		return LevelAdvanced
	case total >= 60:
		return LevelStrong
	case total >= 40:
		return LevelAverage
	default:
		return LevelLow
	}
}

// Weaknesses lists the headline gaps shown next to the score.
func Weaknesses(a types.AnswerRecord) []string {
	weaknesses := []string{}
	if a.CRMUsage != types.CRMSystematic {
		weaknesses = append(weaknesses, "Manque de rigueur CRM")
	}
	if !a.HasPlaybook() {
		weaknesses = append(weaknesses, "Absence de Book de Vente")
	}
	if a.ClosingRate < 20 {
		weaknesses = append(weaknesses, "Taux de closing faible")
	}
	if a.ShowUpRate < 70 {
		weaknesses = append(weaknesses, "Taux de présence faible")
	}
	return weaknesses
}
