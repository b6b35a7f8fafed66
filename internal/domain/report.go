package domain

import "time"

// ReportSettings fully determines the content of one generated daily report.
// The caller assembles it just before generation; the composer itself holds
// no state between calls.
type ReportSettings struct {
	IncludeNewVideo     bool `json:"include_new_video"`
	IncludeRevenue      bool `json:"include_revenue"`
	IncludeChannelStats bool `json:"include_channel_stats"`
	IncludeTopVideos    bool `json:"include_top_videos"`

	// ManualLikeRate is the operator-entered 24h like rate in percent.
	// The Data API does not expose it, so it is never computed from data;
	// 0 means "not entered".
	ManualLikeRate float64 `json:"manual_like_rate"`

	SelectedVideo       *VideoRecord `json:"selected_video,omitempty"`
	SelectedRevenueDate *time.Time   `json:"selected_revenue_date,omitempty"`
}
