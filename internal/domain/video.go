package domain

import "time"

// VideoRecord is one public video row as returned by the YouTube Data API.
// Records are value objects: the filter engine and report composer derive new
// collections and never mutate a record in place.
type VideoRecord struct {
	ID           string    `json:"video_id"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"published_at"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Comments     int64     `json:"comments"`
	DurationISO  string    `json:"duration"`
	ThumbnailURL string    `json:"thumbnail_url"`

	// ViewsKnown is false when the stored row carried a non-numeric view
	// count. Such records stay in channel totals but are excluded from
	// view-count rankings.
	ViewsKnown bool `json:"views_known"`
}

// ChannelStats holds the channel-level counters from channels.list.
type ChannelStats struct {
	Name        string `json:"channel_name"`
	Subscribers int64  `json:"subscribers"`
	TotalViews  int64  `json:"total_views"`
	VideoCount  int64  `json:"video_count"`
}

// DashboardSummary is the aggregate row shown above the video table.
type DashboardSummary struct {
	VideoCount  int     `json:"video_count"`
	AvgViews    float64 `json:"avg_views"`
	AvgLikes    float64 `json:"avg_likes"`
	AvgLikeRate float64 `json:"avg_like_rate"`

	// HasViews / HasLikeRate distinguish "0" from "not computable".
	HasViews    bool `json:"has_views"`
	HasLikeRate bool `json:"has_like_rate"`
}

// DailyUploadCount is one bar of the uploads-per-day chart data.
type DailyUploadCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}
