package analytics

import "github.com/kapu/channel-dashboard-go/internal/domain"

// Trend thresholds: recent mean must move more than 10% against the earlier
// mean before the classification leaves Stable.
const (
	trendRisingRatio  = 1.1
	trendFallingRatio = 0.9

	// TrendWindowSize is the number of records in each comparison window.
	TrendWindowSize = 5
)

// Achievement is the goal-vs-actual classification used in report lines.
type Achievement string

const (
	AchievementAchieved    Achievement = "achieved"
	AchievementNotAchieved Achievement = "not_achieved"
	AchievementUnset       Achievement = "unset"
)

// LikeRate returns likes/views as a percentage. The second return value is
// false when views is zero; callers must treat that as "not computable",
// never as a zero rate.
func LikeRate(views, likes int64) (float64, bool) {
	if views <= 0 {
		return 0, false
	}
	return float64(likes) / float64(views) * 100, true
}

// Mean returns the arithmetic mean of values, false for empty input.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Average applies sel to each record and returns the mean, false for empty
// input.
func Average(records []domain.VideoRecord, sel func(domain.VideoRecord) float64) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}
	values := make([]float64, 0, len(records))
	for _, r := range records {
		values = append(values, sel(r))
	}
	return Mean(values)
}

// ClassifyTrend compares the mean of a recent window against an earlier one.
// Both windows need TrendWindowSize values for the comparison to mean
// anything; otherwise the result is TrendInsufficientData, never a guess.
func ClassifyTrend(recent, earlier []float64) domain.Trend {
	if len(recent) < TrendWindowSize || len(earlier) < TrendWindowSize {
		return domain.TrendInsufficientData
	}

	recentMean, _ := Mean(recent)
	earlierMean, _ := Mean(earlier)

	switch {
	case recentMean > earlierMean*trendRisingRatio:
		return domain.TrendRising
	case recentMean < earlierMean*trendFallingRatio:
		return domain.TrendFalling
	default:
		return domain.TrendStable
	}
}

// Achieve classifies an integer actual against its goal. A goal of zero (or
// below) means no goal is configured.
func Achieve(actual, goal int64) Achievement {
	if goal <= 0 {
		return AchievementUnset
	}
	if actual >= goal {
		return AchievementAchieved
	}
	return AchievementNotAchieved
}

// AchieveRate classifies a percentage actual against its goal, same rules as
// Achieve.
func AchieveRate(actual, goal float64) Achievement {
	if goal <= 0 {
		return AchievementUnset
	}
	if actual >= goal {
		return AchievementAchieved
	}
	return AchievementNotAchieved
}
