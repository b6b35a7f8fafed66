package sheets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/pkg/errors"
)

// Store persists dashboard data into one spreadsheet with three sheets:
// daily snapshots, per-video rows and goal settings. All three are
// append-only logs; goal changes overwrite by appending a new row. Sheet
// provisioning is assumed done; the store only reads and appends values.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	dailySheet    string
	videoSheet    string
	goalSheet     string
	logger        *zap.Logger
}

type Config struct {
	SpreadsheetID string
	DailySheet    string
	VideoSheet    string
	GoalSheet     string
}

func NewStore(ctx context.Context, client *http.Client, cfg Config, logger *zap.Logger) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("authorized HTTP client is required")
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	logger.Info("Sheets store initialized",
		zap.String("spreadsheet_id", cfg.SpreadsheetID))

	return &Store{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		dailySheet:    cfg.DailySheet,
		videoSheet:    cfg.VideoSheet,
		goalSheet:     cfg.GoalSheet,
		logger:        logger,
	}, nil
}

func (s *Store) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, sheet+"!A:Z", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (s *Store) readRows(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, sheet+"!A:Z").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// AppendDailySnapshot appends one snapshot row. Multiple rows per date are
// allowed; readers treat the last-written row as current.
func (s *Store) AppendDailySnapshot(ctx context.Context, snapshot domain.DailySnapshot) error {
	if err := s.appendRow(ctx, s.dailySheet, snapshotToRow(snapshot)); err != nil {
		return errors.NewPersistenceError("failed to append daily snapshot", "append", s.dailySheet, err)
	}
	return nil
}

// ReadDailySnapshots returns snapshot rows, optionally bounded by [from, to]
// (zero values mean unbounded). Malformed rows are skipped with a warning.
func (s *Store) ReadDailySnapshots(ctx context.Context, from, to time.Time) ([]domain.DailySnapshot, error) {
	rows, err := s.readRows(ctx, s.dailySheet)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to read daily snapshots", "read", s.dailySheet, err)
	}

	out := make([]domain.DailySnapshot, 0, len(rows))
	for i, row := range rows {
		snapshot, err := snapshotFromRow(row)
		if err != nil {
			s.logger.Warn("Skipping malformed snapshot row",
				zap.Int("row", i+1), zap.Error(err))
			continue
		}
		if !from.IsZero() && snapshot.Date.Before(from) {
			continue
		}
		if !to.IsZero() && snapshot.Date.After(to) {
			continue
		}
		out = append(out, snapshot)
	}
	return out, nil
}

// AppendVideoRecord appends a single video row.
func (s *Store) AppendVideoRecord(ctx context.Context, video domain.VideoRecord) error {
	if err := s.appendRow(ctx, s.videoSheet, videoToRow(video)); err != nil {
		return errors.NewPersistenceError(
			fmt.Sprintf("failed to append video %s", video.ID), "append", s.videoSheet, err)
	}
	return nil
}

// SaveVideoRecords appends a batch of video rows one by one. A failing row
// does not abort the batch; the caller gets counts of saved and failed rows
// and the first error encountered for context.
func (s *Store) SaveVideoRecords(ctx context.Context, videos []domain.VideoRecord) (saved, failed int, err error) {
	var firstErr error
	for _, video := range videos {
		if appendErr := s.AppendVideoRecord(ctx, video); appendErr != nil {
			failed++
			if firstErr == nil {
				firstErr = appendErr
			}
			s.logger.Error("Failed to save video record",
				zap.String("video_id", video.ID), zap.Error(appendErr))
			continue
		}
		saved++
	}

	s.logger.Info("Video records saved",
		zap.Int("saved", saved), zap.Int("failed", failed))
	return saved, failed, firstErr
}

// ReadVideoRecords returns the stored video rows, optionally restricted to
// the given ids. Malformed rows are skipped with a warning.
func (s *Store) ReadVideoRecords(ctx context.Context, ids ...string) ([]domain.VideoRecord, error) {
	rows, err := s.readRows(ctx, s.videoSheet)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to read video records", "read", s.videoSheet, err)
	}

	var idFilter map[string]struct{}
	if len(ids) > 0 {
		idFilter = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			idFilter[id] = struct{}{}
		}
	}

	out := make([]domain.VideoRecord, 0, len(rows))
	for i, row := range rows {
		video, err := videoFromRow(row)
		if err != nil {
			s.logger.Warn("Skipping malformed video row",
				zap.Int("row", i+1), zap.Error(err))
			continue
		}
		if idFilter != nil {
			if _, ok := idFilter[video.ID]; !ok {
				continue
			}
		}
		out = append(out, video)
	}
	return out, nil
}

// AppendGoalSet appends a goal row; the newest row is the current goal.
func (s *Store) AppendGoalSet(ctx context.Context, goal domain.GoalSet) error {
	if err := s.appendRow(ctx, s.goalSheet, goalToRow(goal)); err != nil {
		return errors.NewPersistenceError("failed to append goal set", "append", s.goalSheet, err)
	}
	return nil
}

// ReadGoalSets returns every appended goal row in sheet order.
func (s *Store) ReadGoalSets(ctx context.Context) ([]domain.GoalSet, error) {
	rows, err := s.readRows(ctx, s.goalSheet)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to read goal sets", "read", s.goalSheet, err)
	}

	out := make([]domain.GoalSet, 0, len(rows))
	for i, row := range rows {
		goal, err := goalFromRow(row)
		if err != nil {
			s.logger.Warn("Skipping malformed goal row",
				zap.Int("row", i+1), zap.Error(err))
			continue
		}
		out = append(out, goal)
	}
	return out, nil
}
