package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/pkg/errors"
)

const (
	suggestionWindowDays = 30

	// Recommended 24h views sit 20% above the window average; the daily
	// goal sits 15% above the estimated daily total.
	recommended24hFactor   = 1.2
	recommendedDailyUplift = 1.15
)

// SuggestGoals derives recommended targets from the trailing 30-day window of
// video records. Revenue targets are never suggested; revenue data is not
// available from the Data API.
func SuggestGoals(records []domain.VideoRecord, now time.Time) (*domain.GoalSuggestion, error) {
	cutoff := now.Add(-suggestionWindowDays * 24 * time.Hour)

	window := make([]domain.VideoRecord, 0, len(records))
	for _, r := range records {
		if !r.PublishedAt.Before(cutoff) {
			window = append(window, r)
		}
	}

	if len(window) == 0 {
		return nil, errors.NewInsufficientDataError("no videos published in the trailing 30 days", 1, 0)
	}

	avgViews, _ := Average(window, func(r domain.VideoRecord) float64 { return float64(r.Views) })
	maxViews := window[0].Views
	for _, r := range window[1:] {
		if r.Views > maxViews {
			maxViews = r.Views
		}
	}

	// The Data API exposes no true per-day aggregate views, so the daily
	// figure is estimated from per-video averages and upload cadence. It
	// is a heuristic, not a measurement.
	dailyEstimate := avgViews * (float64(len(window)) / float64(suggestionWindowDays)) * 10

	trend := windowTrend(window)

	return &domain.GoalSuggestion{
		WindowDays:       suggestionWindowDays,
		WindowCount:      len(window),
		AvgViews:         avgViews,
		MaxViews:         maxViews,
		Recommended24h:   int64(math.Floor(avgViews * recommended24hFactor)),
		DailyEstimate:    dailyEstimate,
		RecommendedDaily: int64(math.Floor(dailyEstimate * recommendedDailyUplift)),
		Trend:            trend,
		TrendComment:     trendComment(trend),
	}, nil
}

// windowTrend compares the five most recently published records against the
// five earliest ones in the window. Below ten records the two subsets
// overlap; that matches the original behavior and is kept as-is rather than
// silently deduplicated.
func windowTrend(window []domain.VideoRecord) domain.Trend {
	if len(window) < TrendWindowSize {
		return domain.TrendInsufficientData
	}

	byDate := make([]domain.VideoRecord, len(window))
	copy(byDate, window)
	sort.SliceStable(byDate, func(i, j int) bool {
		return byDate[i].PublishedAt.After(byDate[j].PublishedAt)
	})

	recent := make([]float64, 0, TrendWindowSize)
	for _, r := range byDate[:TrendWindowSize] {
		recent = append(recent, float64(r.Views))
	}

	earlier := make([]float64, 0, TrendWindowSize)
	for _, r := range byDate[len(byDate)-TrendWindowSize:] {
		earlier = append(earlier, float64(r.Views))
	}

	return ClassifyTrend(recent, earlier)
}

func trendComment(t domain.Trend) string {
	switch t {
	case domain.TrendRising:
		return "直近の動画は好調です。平均再生回数が上昇傾向にあります。"
	case domain.TrendFalling:
		return "直近の動画は伸び悩んでいます。平均再生回数が下降傾向にあります。"
	case domain.TrendStable:
		return "再生回数は安定して推移しています。"
	default:
		return "データが不足しているため、傾向を判定できません。"
	}
}

// CurrentGoal returns the most recently appended goal from an append-only
// log, or a zero GoalSet when the log is empty.
func CurrentGoal(goals []domain.GoalSet) domain.GoalSet {
	if len(goals) == 0 {
		return domain.GoalSet{}
	}
	return goals[len(goals)-1]
}
