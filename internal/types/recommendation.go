package types

// Impact is the severity of the gap a recommendation addresses.
type Impact string

// Impact levels, most severe first.
const (
	ImpactCritical Impact = "critical"
	ImpactHigh     Impact = "high"
	ImpactMedium   Impact = "medium"
	ImpactLow      Impact = "low"
)

// Rank orders impacts for sorting: critical < high < medium < low.
// Unknown values sort last.
func (i Impact) Rank() int {
	switch i {
	case ImpactCritical:
		return 0
	case ImpactHigh:
		return 1
	case ImpactMedium:
		return 2
	case ImpactLow:
		return 3
	}
	return 4
}

// Recommendation is one triggered improvement action.
type Recommendation struct {
	ID            string   `json:"id"`
	Priority      int      `json:"priority"`
	Category      Pillar   `json:"category"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Impact        Impact   `json:"impact"`
	EstimatedGain float64  `json:"estimated_gain"`
	Timeframe     string   `json:"timeframe"`
	Difficulty    string   `json:"difficulty"`
	QuickWin      bool     `json:"quick_win"`
	Actions       []string `json:"actions"`
}
