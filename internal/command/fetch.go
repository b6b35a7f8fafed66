package command

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/domain"
)

// FetchCommand pulls current channel and video metrics from the provider and
// appends them to the store. There is no retry; a provider failure is
// reported and the operation ends.
type FetchCommand struct {
	deps *Dependencies
}

func NewFetchCommand(deps *Dependencies) *FetchCommand {
	return &FetchCommand{deps: deps}
}

func (c *FetchCommand) Name() string {
	return domain.CommandFetch.String()
}

func (c *FetchCommand) Description() string {
	return "チャンネル統計と動画データを取得して保存"
}

func (c *FetchCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c.deps == nil || c.deps.Provider == nil || c.deps.Store == nil {
		return fmt.Errorf("fetch dependencies not configured")
	}

	stats, err := c.deps.Provider.FetchChannelStats(ctx)
	if err != nil {
		c.deps.Logger.Error("Channel stats fetch failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("チャンネル統計の取得に失敗しました: %v", err))
	}

	// Analytics-only fields stay zero; the current data source does not
	// supply them.
	snapshot := domain.DailySnapshot{
		Date:        cmdCtx.Now(),
		Subscribers: stats.Subscribers,
		TotalViews:  stats.TotalViews,
		VideoCount:  stats.VideoCount,
	}

	if err := c.deps.Store.AppendDailySnapshot(ctx, snapshot); err != nil {
		c.deps.Logger.Error("Snapshot persist failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("日次データの保存に失敗しました: %v", err))
	}
	c.archiveSnapshot(ctx, snapshot)

	maxResults := c.deps.MaxResults
	if n, ok := params["max_results"].(int64); ok && n > 0 {
		maxResults = n
	}

	videos, err := c.deps.Provider.FetchRecentVideos(ctx, maxResults)
	if err != nil {
		c.deps.Logger.Error("Video fetch failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("動画一覧の取得に失敗しました: %v", err))
	}

	saved, failed, err := c.deps.Store.SaveVideoRecords(ctx, videos)
	if err != nil {
		c.deps.Logger.Warn("Some video records failed to persist",
			zap.Int("saved", saved),
			zap.Int("failed", failed),
			zap.Error(err))
	}
	c.archiveVideos(ctx, videos)

	if err := c.deps.Print(c.deps.Formatter.FormatChannelStats(stats)); err != nil {
		return err
	}
	return c.deps.Print(c.deps.Formatter.FormatSaveResult(saved, failed))
}

// Archive failures never fail the fetch; the sheet remains the source of
// truth.
func (c *FetchCommand) archiveSnapshot(ctx context.Context, snapshot domain.DailySnapshot) {
	if c.deps.Archive == nil {
		return
	}
	if err := c.deps.Archive.AppendDailySnapshot(ctx, snapshot); err != nil {
		c.deps.Logger.Warn("Snapshot archive failed", zap.Error(err))
	}
}

func (c *FetchCommand) archiveVideos(ctx context.Context, videos []domain.VideoRecord) {
	if c.deps.Archive == nil {
		return
	}
	for _, video := range videos {
		if err := c.deps.Archive.AppendVideoRecord(ctx, video); err != nil {
			c.deps.Logger.Warn("Video archive failed",
				zap.String("video_id", video.ID), zap.Error(err))
		}
	}
}
