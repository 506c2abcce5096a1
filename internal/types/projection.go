package types

// OptimizedFunnel holds the improved funnel inputs used for the optimized projection.
type OptimizedFunnel struct {
	LeadsVolume float64 `json:"leads_volume"`
	ShowUpRate  float64 `json:"show_up_rate"`
	ClosingRate float64 `json:"closing_rate"`
}

// RevenueProjection compares current monthly revenue with the optimized funnel.
// Money values are unrounded; rounding is left to presentation.
type RevenueProjection struct {
	CurrentMonthly   float64         `json:"current_monthly"`
	OptimizedMonthly float64         `json:"optimized_monthly"`
	PercentageGain   int             `json:"percentage_gain"`
	AnnualGain       float64         `json:"annual_gain"`
	MaturityScore    int             `json:"maturity_score"`
	Optimized        OptimizedFunnel `json:"optimized_funnel"`
}
