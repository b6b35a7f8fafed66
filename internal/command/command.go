package command

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/adapter"
	"github.com/kapu/channel-dashboard-go/internal/domain"
)

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error
}

// VideoProvider is the remote metrics collaborator. Implemented by the
// YouTube service; faked in tests.
type VideoProvider interface {
	FetchChannelStats(ctx context.Context) (*domain.ChannelStats, error)
	FetchRecentVideos(ctx context.Context, maxResults int64) ([]domain.VideoRecord, error)
}

// RecordStore is the durable tabular store. Implemented by the Sheets store;
// faked in tests.
type RecordStore interface {
	AppendDailySnapshot(ctx context.Context, snapshot domain.DailySnapshot) error
	ReadDailySnapshots(ctx context.Context, from, to time.Time) ([]domain.DailySnapshot, error)
	SaveVideoRecords(ctx context.Context, videos []domain.VideoRecord) (saved, failed int, err error)
	ReadVideoRecords(ctx context.Context, ids ...string) ([]domain.VideoRecord, error)
	AppendGoalSet(ctx context.Context, goal domain.GoalSet) error
	ReadGoalSets(ctx context.Context) ([]domain.GoalSet, error)
}

// SnapshotArchive is the optional local mirror of persisted rows. Its read
// side serves the snapshot-history view without spending a Sheets call.
type SnapshotArchive interface {
	AppendDailySnapshot(ctx context.Context, snapshot domain.DailySnapshot) error
	AppendVideoRecord(ctx context.Context, video domain.VideoRecord) error
	AppendGoalSet(ctx context.Context, goal domain.GoalSet) error
	ReadLatestSnapshots(ctx context.Context, limit int) ([]domain.DailySnapshot, error)
}

// GoalAdviser adds optional commentary to a goal suggestion.
type GoalAdviser interface {
	Advise(ctx context.Context, suggestion *domain.GoalSuggestion) (string, error)
}

type Dependencies struct {
	Provider   VideoProvider
	Store      RecordStore
	Archive    SnapshotArchive
	Adviser    GoalAdviser
	Composer   *adapter.ReportComposer
	Formatter  *adapter.ResultFormatter
	MaxResults int64

	Print      func(message string) error
	PrintError func(message string) error

	Logger *zap.Logger
}
