package domain

import "time"

// GoalSet is one appended row of the goal settings log. The current goal is
// always the most recently appended entry; overwriting happens by appending.
type GoalSet struct {
	SetAt                time.Time `json:"set_at"`
	Target24hViews       int64     `json:"target_24h_views"`
	TargetDailyViews     int64     `json:"target_daily_views"`
	TargetMonthlyRevenue int64     `json:"target_monthly_revenue"`
	TargetDailyRevenue   int64     `json:"target_daily_revenue"`
	TargetLikeRate       float64   `json:"target_like_rate"`
}

// IsZero reports whether no goal is configured. An all-zero row is treated
// as "no goal", not as a goal of zero.
func (g GoalSet) IsZero() bool {
	return g.Target24hViews == 0 &&
		g.TargetDailyViews == 0 &&
		g.TargetMonthlyRevenue == 0 &&
		g.TargetDailyRevenue == 0 &&
		g.TargetLikeRate == 0
}

// GoalSuggestion is the output of the goal suggestion engine.
type GoalSuggestion struct {
	WindowDays     int     `json:"window_days"`
	WindowCount    int     `json:"window_count"`
	AvgViews       float64 `json:"avg_views"`
	MaxViews       int64   `json:"max_views"`
	Recommended24h int64   `json:"recommended_24h"`
	// DailyEstimate approximates aggregate daily channel views from
	// per-video averages; the Data API exposes no true daily totals.
	DailyEstimate    float64 `json:"daily_estimate"`
	RecommendedDaily int64   `json:"recommended_daily"`
	Trend            Trend   `json:"trend"`
	TrendComment     string  `json:"trend_comment"`
}

// Trend is the coarse direction classification of recent performance.
type Trend string

const (
	TrendRising           Trend = "rising"
	TrendFalling          Trend = "falling"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

func (t Trend) String() string {
	return string(t)
}
