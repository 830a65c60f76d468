package model

// View is everything the page shows, derived from a Snapshot.
type View struct {
	Metadata         Metadata      `json:"metadata"`
	Cards            []MetricCard  `json:"cards"`
	SeniorsTrend     []TrendPoint  `json:"seniors_trend"`
	Diseases         []Comparison  `json:"diseases"`
	GeriatricRisk    []Comparison  `json:"geriatric_risk"`
	TargetGroups     []TargetGroup `json:"target_groups"`
	SeniorsGrowthPct string        `json:"seniors_growth_pct"`
	VeryOldGrowthPct string        `json:"very_old_growth_pct"`
}

type TrendPoint struct {
	Year          string `json:"year"`
	Seniors65Plus int64  `json:"seniors65plus"`
	Over85        int64  `json:"over85"`
}

type Comparison struct {
	Name  string `json:"name"`
	Y2025 int64  `json:"y2025"`
	Y2050 int64  `json:"y2050"`
}

type TargetGroup struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

type MetricCard struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Note   string `json:"note"`
	Growth bool   `json:"growth"`
}
