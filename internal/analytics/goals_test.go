package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kapu/channel-dashboard-go/internal/domain"
	derrors "github.com/kapu/channel-dashboard-go/pkg/errors"
)

var goalsNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestSuggestGoalsRecommendedValues(t *testing.T) {
	records := []domain.VideoRecord{
		video("a", "t1", goalsNow.Add(-1*24*time.Hour), 100),
		video("b", "t2", goalsNow.Add(-2*24*time.Hour), 200),
		video("c", "t3", goalsNow.Add(-3*24*time.Hour), 300),
	}

	s, err := SuggestGoals(records, goalsNow)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if s.WindowDays != 30 || s.WindowCount != 3 {
		t.Fatalf("expected 3 records in a 30-day window, got %d in %d", s.WindowCount, s.WindowDays)
	}
	if s.AvgViews != 200 {
		t.Fatalf("expected average 200, got %f", s.AvgViews)
	}
	if s.MaxViews != 300 {
		t.Fatalf("expected max 300, got %d", s.MaxViews)
	}
	if s.Recommended24h != 240 {
		t.Fatalf("expected floor(200*1.2)=240, got %d", s.Recommended24h)
	}

	// 200 avg * (3 uploads / 30 days) * 10 = 200
	if math.Abs(s.DailyEstimate-200) > 1e-9 {
		t.Fatalf("expected daily estimate 200, got %f", s.DailyEstimate)
	}
	if s.RecommendedDaily != 229 {
		t.Fatalf("expected floor(200*1.15)=229, got %d", s.RecommendedDaily)
	}
}

func TestSuggestGoalsWindowExcludesOldVideos(t *testing.T) {
	records := []domain.VideoRecord{
		video("recent", "t1", goalsNow.Add(-5*24*time.Hour), 100),
		video("ancient", "t2", goalsNow.Add(-31*24*time.Hour), 1_000_000),
	}

	s, err := SuggestGoals(records, goalsNow)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.WindowCount != 1 {
		t.Fatalf("videos older than 30 days must be excluded, got %d", s.WindowCount)
	}
	if s.MaxViews != 100 {
		t.Fatalf("expected max from window only, got %d", s.MaxViews)
	}
}

func TestSuggestGoalsEmptyWindow(t *testing.T) {
	records := []domain.VideoRecord{
		video("old", "t1", goalsNow.Add(-60*24*time.Hour), 100),
	}

	_, err := SuggestGoals(records, goalsNow)

	var insufficient *derrors.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
}

func TestSuggestGoalsTrendFewerThanFiveRecords(t *testing.T) {
	records := []domain.VideoRecord{
		video("a", "t1", goalsNow.Add(-1*24*time.Hour), 100),
		video("b", "t2", goalsNow.Add(-2*24*time.Hour), 100),
	}

	s, err := SuggestGoals(records, goalsNow)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Trend != domain.TrendInsufficientData {
		t.Fatalf("fewer than five records must not classify a trend, got %s", s.Trend)
	}
}

func TestSuggestGoalsTrendOverlappingWindows(t *testing.T) {
	// Seven records: the recent-5 and earliest-5 windows share three
	// entries, which dampens the comparison but still classifies.
	views := []int64{900, 900, 900, 900, 100, 100, 100}
	records := make([]domain.VideoRecord, 0, len(views))
	for i, v := range views {
		records = append(records, video("v", "t", goalsNow.Add(-time.Duration(i+1)*24*time.Hour), v))
	}

	s, err := SuggestGoals(records, goalsNow)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// recent mean 740 vs earlier mean 420: rising.
	if s.Trend != domain.TrendRising {
		t.Fatalf("expected rising, got %s", s.Trend)
	}
	if s.TrendComment == "" {
		t.Fatalf("trend comment must accompany the classification")
	}
}

func TestCurrentGoal(t *testing.T) {
	if !CurrentGoal(nil).IsZero() {
		t.Fatalf("empty log must yield a zero goal")
	}

	goals := []domain.GoalSet{
		{Target24hViews: 1000},
		{Target24hViews: 2000},
	}
	if got := CurrentGoal(goals); got.Target24hViews != 2000 {
		t.Fatalf("expected the last appended goal, got %d", got.Target24hViews)
	}
}
