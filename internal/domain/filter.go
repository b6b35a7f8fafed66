package domain

import "time"

// Period selects the publish-time window applied before aggregation.
type Period string

const (
	PeriodAll        Period = "all"
	PeriodLast7Days  Period = "7d"
	PeriodLast30Days Period = "30d"
	PeriodLast90Days Period = "90d"
	PeriodCustom     Period = "custom"
)

// SortKey selects the ordering of a filtered video collection.
type SortKey string

const (
	SortPublishDateDesc SortKey = "published_desc"
	SortPublishDateAsc  SortKey = "published_asc"
	SortViewsDesc       SortKey = "views_desc"
	SortViewsAsc        SortKey = "views_asc"
	SortLikesDesc       SortKey = "likes_desc"
)

// FilterSettings describes one filtering pass over the video table. Settings
// are transient: they are supplied per call and never persisted.
type FilterSettings struct {
	Period     Period    `json:"period"`
	CustomFrom time.Time `json:"custom_from,omitempty"`
	CustomTo   time.Time `json:"custom_to,omitempty"`
	SearchText string    `json:"search_text"`
	SortKey    SortKey   `json:"sort_key"`
}
