package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/internal/util"
	"github.com/kapu/channel-dashboard-go/pkg/errors"
)

// Filter applies a filter pass to a video collection: period window, then
// title search, then sort, in that order. The input is never mutated; the
// result is a fresh slice. Applying the same settings to its own output
// yields an identical collection.
//
// Period comparisons happen in the stored timestamps' own reference frame.
// No timezone conversion is performed here; converting would shift records
// across day boundaries.
func Filter(records []domain.VideoRecord, settings domain.FilterSettings, now time.Time) ([]domain.VideoRecord, error) {
	filtered, err := applyPeriod(records, settings, now)
	if err != nil {
		return nil, err
	}

	filtered = applySearch(filtered, settings.SearchText)
	applySort(filtered, settings.SortKey)

	return filtered, nil
}

func applyPeriod(records []domain.VideoRecord, settings domain.FilterSettings, now time.Time) ([]domain.VideoRecord, error) {
	out := make([]domain.VideoRecord, 0, len(records))

	switch settings.Period {
	case domain.PeriodAll, "":
		out = append(out, records...)

	case domain.PeriodLast7Days, domain.PeriodLast30Days, domain.PeriodLast90Days:
		cutoff := now.Add(-time.Duration(periodDays(settings.Period)) * 24 * time.Hour)
		for _, r := range records {
			if !r.PublishedAt.Before(cutoff) {
				out = append(out, r)
			}
		}

	case domain.PeriodCustom:
		if settings.CustomFrom.IsZero() || settings.CustomTo.IsZero() {
			return nil, errors.NewValidationError("custom period requires both start and end dates", "period", settings.Period)
		}
		// The end date is inclusive of its full calendar day.
		start := util.DateOf(settings.CustomFrom)
		end := util.DateOf(settings.CustomTo).Add(24 * time.Hour)
		for _, r := range records {
			if !r.PublishedAt.Before(start) && r.PublishedAt.Before(end) {
				out = append(out, r)
			}
		}

	default:
		return nil, errors.NewValidationError("unknown period", "period", settings.Period)
	}

	return out, nil
}

func periodDays(p domain.Period) int {
	switch p {
	case domain.PeriodLast7Days:
		return 7
	case domain.PeriodLast30Days:
		return 30
	case domain.PeriodLast90Days:
		return 90
	default:
		return 0
	}
}

func applySearch(records []domain.VideoRecord, search string) []domain.VideoRecord {
	search = strings.TrimSpace(search)
	if search == "" {
		return records
	}

	out := make([]domain.VideoRecord, 0, len(records))
	for _, r := range records {
		if r.Title == "" {
			continue
		}
		if util.ContainsFold(r.Title, search) {
			out = append(out, r)
		}
	}
	return out
}

// applySort sorts in place with a stable order so ties preserve the pre-sort
// relative order. An unrecognized key leaves the collection untouched rather
// than failing.
func applySort(records []domain.VideoRecord, key domain.SortKey) {
	switch key {
	case domain.SortPublishDateDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].PublishedAt.After(records[j].PublishedAt)
		})
	case domain.SortPublishDateAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].PublishedAt.Before(records[j].PublishedAt)
		})
	case domain.SortViewsDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Views > records[j].Views
		})
	case domain.SortViewsAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Views < records[j].Views
		})
	case domain.SortLikesDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Likes > records[j].Likes
		})
	}
}
