package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kapu/channel-dashboard-go/internal/domain"
)

// Sheet row layouts. Cells arrive as strings (or blanks) from the values
// API; parsing is tolerant: blank or malformed numeric cells default to 0,
// except a video's view count, where a non-numeric cell is remembered so the
// record can be excluded from rankings without losing it from totals.

const (
	dateOnlyLayout = "2006-01-02"
)

func videoToRow(v domain.VideoRecord) []interface{} {
	return []interface{}{
		v.ID,
		v.Title,
		v.PublishedAt.UTC().Format(time.RFC3339),
		strconv.FormatInt(v.Views, 10),
		strconv.FormatInt(v.Likes, 10),
		strconv.FormatInt(v.Comments, 10),
		v.DurationISO,
		v.ThumbnailURL,
	}
}

func videoFromRow(row []interface{}) (domain.VideoRecord, error) {
	if len(row) < 3 {
		return domain.VideoRecord{}, fmt.Errorf("video row has %d cells, want at least 3", len(row))
	}

	publishedAt, err := time.Parse(time.RFC3339, cellString(row, 2))
	if err != nil {
		return domain.VideoRecord{}, fmt.Errorf("bad publish timestamp %q: %w", cellString(row, 2), err)
	}

	views, viewsOK := cellInt(row, 3)

	return domain.VideoRecord{
		ID:           cellString(row, 0),
		Title:        cellString(row, 1),
		PublishedAt:  publishedAt,
		Views:        views,
		ViewsKnown:   viewsOK,
		Likes:        cellIntDefault(row, 4),
		Comments:     cellIntDefault(row, 5),
		DurationISO:  cellString(row, 6),
		ThumbnailURL: cellString(row, 7),
	}, nil
}

func snapshotToRow(s domain.DailySnapshot) []interface{} {
	return []interface{}{
		s.Date.Format(dateOnlyLayout),
		strconv.FormatInt(s.Subscribers, 10),
		strconv.FormatInt(s.TotalViews, 10),
		strconv.FormatInt(s.VideoCount, 10),
		strconv.FormatFloat(s.Revenue, 'f', -1, 64),
		strconv.FormatFloat(s.CPM, 'f', -1, 64),
		strconv.FormatFloat(s.RPM, 'f', -1, 64),
		strconv.FormatInt(s.NewSubscribers, 10),
		strconv.FormatFloat(s.ImpressionsCTR, 'f', -1, 64),
		strconv.FormatFloat(s.AvgViewDuration, 'f', -1, 64),
		strconv.FormatFloat(s.AvgViewPercentage, 'f', -1, 64),
	}
}

func snapshotFromRow(row []interface{}) (domain.DailySnapshot, error) {
	if len(row) < 1 {
		return domain.DailySnapshot{}, fmt.Errorf("empty snapshot row")
	}

	date, err := time.Parse(dateOnlyLayout, cellString(row, 0))
	if err != nil {
		return domain.DailySnapshot{}, fmt.Errorf("bad snapshot date %q: %w", cellString(row, 0), err)
	}

	return domain.DailySnapshot{
		Date:              date,
		Subscribers:       cellIntDefault(row, 1),
		TotalViews:        cellIntDefault(row, 2),
		VideoCount:        cellIntDefault(row, 3),
		Revenue:           cellFloatDefault(row, 4),
		CPM:               cellFloatDefault(row, 5),
		RPM:               cellFloatDefault(row, 6),
		NewSubscribers:    cellIntDefault(row, 7),
		ImpressionsCTR:    cellFloatDefault(row, 8),
		AvgViewDuration:   cellFloatDefault(row, 9),
		AvgViewPercentage: cellFloatDefault(row, 10),
	}, nil
}

func goalToRow(g domain.GoalSet) []interface{} {
	return []interface{}{
		g.SetAt.UTC().Format(time.RFC3339),
		strconv.FormatInt(g.Target24hViews, 10),
		strconv.FormatInt(g.TargetDailyViews, 10),
		strconv.FormatInt(g.TargetMonthlyRevenue, 10),
		strconv.FormatInt(g.TargetDailyRevenue, 10),
		strconv.FormatFloat(g.TargetLikeRate, 'f', -1, 64),
	}
}

func goalFromRow(row []interface{}) (domain.GoalSet, error) {
	if len(row) < 1 {
		return domain.GoalSet{}, fmt.Errorf("empty goal row")
	}

	setAt, err := time.Parse(time.RFC3339, cellString(row, 0))
	if err != nil {
		return domain.GoalSet{}, fmt.Errorf("bad goal timestamp %q: %w", cellString(row, 0), err)
	}

	return domain.GoalSet{
		SetAt:                setAt,
		Target24hViews:       cellIntDefault(row, 1),
		TargetDailyViews:     cellIntDefault(row, 2),
		TargetMonthlyRevenue: cellIntDefault(row, 3),
		TargetDailyRevenue:   cellIntDefault(row, 4),
		TargetLikeRate:       cellFloatDefault(row, 5),
	}, nil
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[idx]))
}

func cellInt(row []interface{}, idx int) (int64, bool) {
	s := strings.ReplaceAll(cellString(row, idx), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func cellIntDefault(row []interface{}, idx int) int64 {
	v, _ := cellInt(row, idx)
	return v
}

func cellFloatDefault(row []interface{}, idx int) float64 {
	s := strings.ReplaceAll(cellString(row, idx), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
