package domain

import "time"

// DailySnapshot is one appended row of the daily channel metrics log.
// Fields the current data source cannot supply default to 0. The log is
// append-only and may hold multiple rows for one date; readers take the
// last-written row as current.
type DailySnapshot struct {
	Date              time.Time `json:"date"`
	Subscribers       int64     `json:"subscribers"`
	TotalViews        int64     `json:"total_views"`
	VideoCount        int64     `json:"video_count"`
	Revenue           float64   `json:"revenue"`
	CPM               float64   `json:"cpm"`
	RPM               float64   `json:"rpm"`
	NewSubscribers    int64     `json:"new_subscribers"`
	ImpressionsCTR    float64   `json:"impressions_ctr"`
	AvgViewDuration   float64   `json:"avg_view_duration"`
	AvgViewPercentage float64   `json:"avg_view_percentage"`
}
