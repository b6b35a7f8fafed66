package analytics

import (
	"sort"

	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/internal/util"
)

// Summarize computes the aggregate row shown above the filtered video table.
// The average like rate only considers records with at least one view; a
// record with zero views has no rate, not a zero rate.
func Summarize(records []domain.VideoRecord) domain.DashboardSummary {
	summary := domain.DashboardSummary{VideoCount: len(records)}

	if avg, ok := Average(records, func(r domain.VideoRecord) float64 { return float64(r.Views) }); ok {
		summary.AvgViews = avg
		summary.HasViews = true
	}
	if avg, ok := Average(records, func(r domain.VideoRecord) float64 { return float64(r.Likes) }); ok {
		summary.AvgLikes = avg
	}

	rates := make([]float64, 0, len(records))
	for _, r := range records {
		if rate, ok := LikeRate(r.Views, r.Likes); ok {
			rates = append(rates, rate)
		}
	}
	if avg, ok := Mean(rates); ok {
		summary.AvgLikeRate = avg
		summary.HasLikeRate = true
	}

	return summary
}

// UploadCounts aggregates records into uploads per publish day, ordered by
// date. This feeds the upload-cadence chart data.
func UploadCounts(records []domain.VideoRecord) []domain.DailyUploadCount {
	byDay := make(map[int64]domain.DailyUploadCount)
	for _, r := range records {
		day := util.DateOf(r.PublishedAt)
		key := day.Unix()
		entry := byDay[key]
		entry.Date = day
		entry.Count++
		byDay[key] = entry
	}

	out := make([]domain.DailyUploadCount, 0, len(byDay))
	for _, entry := range byDay {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// TopByViews returns the n records with the highest view counts, ties keeping
// input order. Records whose stored view count was not numeric are excluded
// from the ranking entirely rather than ranked as zero.
func TopByViews(records []domain.VideoRecord, n int) []domain.VideoRecord {
	ranked := make([]domain.VideoRecord, 0, len(records))
	for _, r := range records {
		if r.ViewsKnown {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// MostRecent returns the record with the latest publish time, or nil for an
// empty collection.
func MostRecent(records []domain.VideoRecord) *domain.VideoRecord {
	var latest *domain.VideoRecord
	for i := range records {
		if latest == nil || records[i].PublishedAt.After(latest.PublishedAt) {
			latest = &records[i]
		}
	}
	if latest == nil {
		return nil
	}
	copied := *latest
	return &copied
}
