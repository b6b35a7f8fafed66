package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/adapter"
	"github.com/kapu/channel-dashboard-go/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeProvider struct {
	stats    *domain.ChannelStats
	videos   []domain.VideoRecord
	statsErr error
	videoErr error

	statsCalls int
	videoCalls int
}

func (f *fakeProvider) FetchChannelStats(_ context.Context) (*domain.ChannelStats, error) {
	f.statsCalls++
	return f.stats, f.statsErr
}

func (f *fakeProvider) FetchRecentVideos(_ context.Context, _ int64) ([]domain.VideoRecord, error) {
	f.videoCalls++
	return f.videos, f.videoErr
}

type fakeStore struct {
	videos    []domain.VideoRecord
	goals     []domain.GoalSet
	snapshots []domain.DailySnapshot

	savedVideos    []domain.VideoRecord
	appendedGoals  []domain.GoalSet
	appendedDays   []domain.DailySnapshot
	readVideosErr  error
	readGoalsErr   error
	appendGoalErr  error
	appendDailyErr error
}

func (f *fakeStore) AppendDailySnapshot(_ context.Context, snapshot domain.DailySnapshot) error {
	if f.appendDailyErr != nil {
		return f.appendDailyErr
	}
	f.appendedDays = append(f.appendedDays, snapshot)
	return nil
}

func (f *fakeStore) ReadDailySnapshots(_ context.Context, _, _ time.Time) ([]domain.DailySnapshot, error) {
	return f.snapshots, nil
}

func (f *fakeStore) SaveVideoRecords(_ context.Context, videos []domain.VideoRecord) (int, int, error) {
	f.savedVideos = append(f.savedVideos, videos...)
	return len(videos), 0, nil
}

func (f *fakeStore) ReadVideoRecords(_ context.Context, _ ...string) ([]domain.VideoRecord, error) {
	return f.videos, f.readVideosErr
}

func (f *fakeStore) AppendGoalSet(_ context.Context, goal domain.GoalSet) error {
	if f.appendGoalErr != nil {
		return f.appendGoalErr
	}
	f.appendedGoals = append(f.appendedGoals, goal)
	return nil
}

func (f *fakeStore) ReadGoalSets(_ context.Context) ([]domain.GoalSet, error) {
	return f.goals, f.readGoalsErr
}

type fakeArchive struct {
	snapshots []domain.DailySnapshot
	readCalls int
}

func (f *fakeArchive) AppendDailySnapshot(_ context.Context, snapshot domain.DailySnapshot) error {
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func (f *fakeArchive) AppendVideoRecord(_ context.Context, _ domain.VideoRecord) error {
	return nil
}

func (f *fakeArchive) AppendGoalSet(_ context.Context, _ domain.GoalSet) error {
	return nil
}

func (f *fakeArchive) ReadLatestSnapshots(_ context.Context, limit int) ([]domain.DailySnapshot, error) {
	f.readCalls++
	if limit > len(f.snapshots) {
		limit = len(f.snapshots)
	}
	return f.snapshots[:limit], nil
}

type fakeAdviser struct {
	advice string
	err    error
	calls  int
}

func (f *fakeAdviser) Advise(_ context.Context, _ *domain.GoalSuggestion) (string, error) {
	f.calls++
	return f.advice, f.err
}

type output struct {
	messages []string
	errors   []string
}

func testDeps(provider *fakeProvider, store *fakeStore, out *output) *Dependencies {
	return &Dependencies{
		Provider:   provider,
		Store:      store,
		Composer:   adapter.NewReportComposer(9 * time.Hour),
		Formatter:  adapter.NewResultFormatter(),
		MaxResults: 50,
		Print: func(message string) error {
			out.messages = append(out.messages, message)
			return nil
		},
		PrintError: func(message string) error {
			out.errors = append(out.errors, message)
			return nil
		},
		Logger: zap.NewNop(),
	}
}

func testCmdCtx() *domain.CommandContext {
	cmdCtx := domain.NewCommandContext("tester")
	cmdCtx.Timestamp = testNow
	return cmdCtx
}

func testVideo(id, title string, age time.Duration, views, likes int64) domain.VideoRecord {
	return domain.VideoRecord{
		ID:          id,
		Title:       title,
		PublishedAt: testNow.Add(-age),
		Views:       views,
		Likes:       likes,
		ViewsKnown:  true,
	}
}

func TestFetchCommandPersistsSnapshotAndVideos(t *testing.T) {
	provider := &fakeProvider{
		stats: &domain.ChannelStats{Name: "テストch", Subscribers: 1000, TotalViews: 50000, VideoCount: 42},
		videos: []domain.VideoRecord{
			testVideo("a", "動画A", 24*time.Hour, 6000, 500),
		},
	}
	store := &fakeStore{}
	out := &output{}

	cmd := NewFetchCommand(testDeps(provider, store, out))
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(store.appendedDays) != 1 {
		t.Fatalf("expected one snapshot appended, got %d", len(store.appendedDays))
	}
	if store.appendedDays[0].Subscribers != 1000 {
		t.Fatalf("snapshot must carry the fetched counters, got %+v", store.appendedDays[0])
	}
	if len(store.savedVideos) != 1 {
		t.Fatalf("expected one video saved, got %d", len(store.savedVideos))
	}
	if len(out.messages) != 2 {
		t.Fatalf("expected stats and save-result output, got %v", out.messages)
	}
	if !strings.Contains(out.messages[1], "1件") {
		t.Fatalf("expected save count in output, got %q", out.messages[1])
	}
}

func TestFetchCommandReportsProviderFailure(t *testing.T) {
	provider := &fakeProvider{statsErr: fmt.Errorf("quota exceeded")}
	store := &fakeStore{}
	out := &output{}

	cmd := NewFetchCommand(testDeps(provider, store, out))
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{}); err != nil {
		t.Fatalf("expected PrintError path, got %v", err)
	}

	if len(out.errors) != 1 || !strings.Contains(out.errors[0], "quota exceeded") {
		t.Fatalf("expected propagated provider error, got %v", out.errors)
	}
	if len(store.appendedDays) != 0 || len(store.savedVideos) != 0 {
		t.Fatalf("nothing must be persisted after a failed fetch")
	}
}

func TestDashboardCommandAppliesSearchParam(t *testing.T) {
	store := &fakeStore{
		videos: []domain.VideoRecord{
			testVideo("a", "Minecraft 建築", 24*time.Hour, 5000, 400),
			testVideo("b", "雑談", 48*time.Hour, 3000, 200),
		},
	}
	out := &output{}

	cmd := NewDashboardCommand(testDeps(&fakeProvider{}, store, out))
	err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{"search": "minecraft"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.messages) != 2 {
		t.Fatalf("expected summary and table output, got %d messages", len(out.messages))
	}
	if !strings.Contains(out.messages[1], "Minecraft 建築") {
		t.Fatalf("expected matching video in table, got %q", out.messages[1])
	}
	if strings.Contains(out.messages[1], "雑談") {
		t.Fatalf("non-matching video must be filtered out, got %q", out.messages[1])
	}
}

func TestDashboardCommandCustomPeriodBoundsInRecordFrame(t *testing.T) {
	// Publish timestamps are stored in UTC; the date params must be
	// interpreted in the same frame, with the end date covering its
	// whole day.
	lastSecond := domain.VideoRecord{
		ID: "in", Title: "締め切り直前",
		PublishedAt: time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC),
		Views:       100, ViewsKnown: true,
	}
	nextDay := domain.VideoRecord{
		ID: "out", Title: "翌日",
		PublishedAt: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Views:       200, ViewsKnown: true,
	}
	store := &fakeStore{videos: []domain.VideoRecord{lastSecond, nextDay}}
	out := &output{}

	cmd := NewDashboardCommand(testDeps(&fakeProvider{}, store, out))
	err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{
		"period": "custom",
		"from":   "2025-06-01",
		"to":     "2025-06-10",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.messages) != 2 {
		t.Fatalf("expected summary and table output, got %v", out.messages)
	}
	if !strings.Contains(out.messages[1], "締め切り直前") {
		t.Fatalf("a record at 23:59:59 on the end date must be included, got %q", out.messages[1])
	}
	if strings.Contains(out.messages[1], "翌日") {
		t.Fatalf("a record on the day after the end date must be excluded, got %q", out.messages[1])
	}
}

func TestDashboardCommandHistoryFromStore(t *testing.T) {
	store := &fakeStore{
		snapshots: []domain.DailySnapshot{
			{Date: time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC), Subscribers: 900},
			{Date: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), Subscribers: 1000},
		},
	}
	out := &output{}

	cmd := NewDashboardCommand(testDeps(&fakeProvider{}, store, out))
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{"history": int64(1)}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.messages) != 1 {
		t.Fatalf("expected only the history output, got %v", out.messages)
	}
	if !strings.Contains(out.messages[0], "2025-06-14") {
		t.Fatalf("expected the newest snapshot, got %q", out.messages[0])
	}
	if strings.Contains(out.messages[0], "2025-06-13") {
		t.Fatalf("limit must trim older snapshots, got %q", out.messages[0])
	}
}

func TestDashboardCommandHistoryPrefersArchive(t *testing.T) {
	store := &fakeStore{}
	archive := &fakeArchive{
		snapshots: []domain.DailySnapshot{
			{Date: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), Subscribers: 1000},
		},
	}
	out := &output{}

	deps := testDeps(&fakeProvider{}, store, out)
	deps.Archive = archive

	cmd := NewDashboardCommand(deps)
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{"history": int64(5)}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if archive.readCalls != 1 {
		t.Fatalf("expected the archive to answer the history read, got %d calls", archive.readCalls)
	}
	if len(out.messages) != 1 || !strings.Contains(out.messages[0], "2025-06-14") {
		t.Fatalf("expected archive snapshots in output, got %v", out.messages)
	}
}

func TestDashboardCommandRejectsBadPeriod(t *testing.T) {
	store := &fakeStore{}
	out := &output{}

	cmd := NewDashboardCommand(testDeps(&fakeProvider{}, store, out))
	err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{"period": "yesterday"})
	if err != nil {
		t.Fatalf("expected PrintError path, got %v", err)
	}
	if len(out.errors) != 1 {
		t.Fatalf("expected a validation message, got %v", out.errors)
	}
}

func TestGoalsCommandPrintsSuggestion(t *testing.T) {
	store := &fakeStore{
		videos: []domain.VideoRecord{
			testVideo("a", "t1", 1*24*time.Hour, 100, 10),
			testVideo("b", "t2", 2*24*time.Hour, 200, 20),
			testVideo("c", "t3", 3*24*time.Hour, 300, 30),
		},
	}
	out := &output{}

	cmd := NewGoalsCommand(testDeps(&fakeProvider{}, store, out))
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.messages) != 1 {
		t.Fatalf("expected one suggestion message, got %v", out.messages)
	}
	if !strings.Contains(out.messages[0], "240回") {
		t.Fatalf("expected recommended 24h views 240, got %q", out.messages[0])
	}
	if len(store.appendedGoals) != 0 {
		t.Fatalf("goals must not be saved without the save param")
	}
}

func TestGoalsCommandSaveParamAppendsGoal(t *testing.T) {
	store := &fakeStore{
		videos: []domain.VideoRecord{
			testVideo("a", "t1", 24*time.Hour, 100, 10),
			testVideo("b", "t2", 48*time.Hour, 300, 30),
		},
	}
	out := &output{}

	cmd := NewGoalsCommand(testDeps(&fakeProvider{}, store, out))
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{"save": true}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(store.appendedGoals) != 1 {
		t.Fatalf("expected one goal appended, got %d", len(store.appendedGoals))
	}
	if store.appendedGoals[0].Target24hViews != 240 {
		t.Fatalf("expected saved goal 240, got %d", store.appendedGoals[0].Target24hViews)
	}
}

func TestGoalsCommandInsufficientData(t *testing.T) {
	store := &fakeStore{
		videos: []domain.VideoRecord{
			testVideo("old", "t1", 60*24*time.Hour, 100, 10),
		},
	}
	out := &output{}

	cmd := NewGoalsCommand(testDeps(&fakeProvider{}, store, out))
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{}); err != nil {
		t.Fatalf("expected PrintError path, got %v", err)
	}
	if len(out.errors) != 1 || !strings.Contains(out.errors[0], "30日間") {
		t.Fatalf("expected insufficient-data message, got %v", out.errors)
	}
}

func TestGoalsCommandAdviserFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{
		videos: []domain.VideoRecord{testVideo("a", "t1", 24*time.Hour, 100, 10)},
	}
	out := &output{}
	adviser := &fakeAdviser{err: fmt.Errorf("all providers down")}

	deps := testDeps(&fakeProvider{}, store, out)
	deps.Adviser = adviser

	cmd := NewGoalsCommand(deps)
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if adviser.calls != 1 {
		t.Fatalf("expected adviser to be consulted once, got %d", adviser.calls)
	}
	if len(out.messages) != 1 || strings.Contains(out.messages[0], "💡") {
		t.Fatalf("failed advice must not appear in output, got %v", out.messages)
	}
}

func TestReportCommandUsesLatestGoal(t *testing.T) {
	store := &fakeStore{
		videos: []domain.VideoRecord{
			testVideo("a", "動画A", 24*time.Hour, 6000, 500),
		},
		goals: []domain.GoalSet{
			{Target24hViews: 100},
			{Target24hViews: 5000},
		},
	}
	out := &output{}

	cmd := NewReportCommand(testDeps(&fakeProvider{}, store, out))
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.messages) != 1 {
		t.Fatalf("expected one report message, got %v", out.messages)
	}
	report := out.messages[0]
	if !strings.Contains(report, "日報をお送りいたします") {
		t.Fatalf("expected report greeting, got:\n%s", report)
	}
	if !strings.Contains(report, "　　目標：5,000回　結果：6,000回（達成）") {
		t.Fatalf("expected the latest goal in the report, got:\n%s", report)
	}
}

func TestReportCommandRejectsBadLikeRate(t *testing.T) {
	store := &fakeStore{}
	out := &output{}

	cmd := NewReportCommand(testDeps(&fakeProvider{}, store, out))
	err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{"like_rate": float64(150)})
	if err != nil {
		t.Fatalf("expected PrintError path, got %v", err)
	}
	if len(out.errors) != 1 {
		t.Fatalf("expected a validation message, got %v", out.errors)
	}
}

func TestExportCommandWritesFile(t *testing.T) {
	store := &fakeStore{
		videos: []domain.VideoRecord{
			testVideo("a", "動画A", 24*time.Hour, 6000, 500),
		},
	}
	out := &output{}
	path := filepath.Join(t.TempDir(), "export.csv")

	cmd := NewExportCommand(testDeps(&fakeProvider{}, store, out))
	if err := cmd.Execute(context.Background(), testCmdCtx(), map[string]any{"output": path}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected export file, got %v", err)
	}
	if len(data) < 3 || data[0] != 0xEF {
		t.Fatalf("export file must start with a BOM")
	}
	if !strings.Contains(string(data), "動画A") {
		t.Fatalf("export file must contain the video row")
	}
	if len(out.messages) != 1 || !strings.Contains(out.messages[0], "1件") {
		t.Fatalf("expected export confirmation, got %v", out.messages)
	}
}

func TestRegistryUnknownCommand(t *testing.T) {
	registry := NewRegistry()
	err := registry.Execute(context.Background(), testCmdCtx(), "missing", nil)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestDispatcherRunsEventsInOrder(t *testing.T) {
	store := &fakeStore{
		videos: []domain.VideoRecord{
			testVideo("a", "動画A", 24*time.Hour, 6000, 500),
		},
	}
	out := &output{}
	deps := testDeps(&fakeProvider{}, store, out)

	registry := NewRegistry()
	registry.Register(NewDashboardCommand(deps))
	registry.Register(NewGoalsCommand(deps))
	dispatcher := NewSequentialDispatcher(registry)

	executed, err := dispatcher.Publish(context.Background(), testCmdCtx(),
		CommandEvent{Type: domain.CommandDashboard},
		CommandEvent{Type: domain.CommandGoals},
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if executed != 2 {
		t.Fatalf("expected both events executed, got %d", executed)
	}
	if len(out.messages) != 3 {
		t.Fatalf("expected dashboard (2) plus goals (1) output, got %d", len(out.messages))
	}
}

func TestDispatcherSkipsUnknownEvents(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewSequentialDispatcher(registry)

	executed, err := dispatcher.Publish(context.Background(), testCmdCtx(),
		CommandEvent{Type: domain.CommandUnknown},
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if executed != 0 {
		t.Fatalf("unknown events must not execute, got %d", executed)
	}
}
