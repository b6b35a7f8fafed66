package command

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/analytics"
	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/internal/util"
)

// ReportCommand composes the Chatwork daily report from the stored video
// table and the current goal, then prints it verbatim for copy and paste.
type ReportCommand struct {
	deps *Dependencies
}

func NewReportCommand(deps *Dependencies) *ReportCommand {
	return &ReportCommand{deps: deps}
}

func (c *ReportCommand) Name() string {
	return domain.CommandReport.String()
}

func (c *ReportCommand) Description() string {
	return "Chatwork向け日報テキストを生成"
}

func (c *ReportCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c.deps == nil || c.deps.Store == nil || c.deps.Composer == nil {
		return fmt.Errorf("report dependencies not configured")
	}

	records, err := c.deps.Store.ReadVideoRecords(ctx)
	if err != nil {
		c.deps.Logger.Error("Video record read failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("動画データの読み込みに失敗しました: %v", err))
	}

	goals, err := c.deps.Store.ReadGoalSets(ctx)
	if err != nil {
		c.deps.Logger.Error("Goal read failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("目標設定の読み込みに失敗しました: %v", err))
	}
	goal := analytics.CurrentGoal(goals)

	settings := reportSettings(cmdCtx, records, params)
	report, err := c.deps.Composer.Compose(settings, records, goal, cmdCtx.Now())
	if err != nil {
		return c.deps.PrintError(fmt.Sprintf("日報の生成に失敗しました: %v", err))
	}
	return c.deps.Print(report)
}

// reportSettings starts from the context's settings and applies per-call
// parameter overrides. All sections default to enabled.
func reportSettings(cmdCtx *domain.CommandContext, records []domain.VideoRecord, params map[string]any) domain.ReportSettings {
	settings := cmdCtx.Report
	if !settings.IncludeNewVideo && !settings.IncludeRevenue &&
		!settings.IncludeChannelStats && !settings.IncludeTopVideos {
		settings.IncludeNewVideo = true
		settings.IncludeRevenue = true
		settings.IncludeChannelStats = true
		settings.IncludeTopVideos = true
	}

	if v, ok := params["new_video"].(bool); ok {
		settings.IncludeNewVideo = v
	}
	if v, ok := params["revenue"].(bool); ok {
		settings.IncludeRevenue = v
	}
	if v, ok := params["channel_stats"].(bool); ok {
		settings.IncludeChannelStats = v
	}
	if v, ok := params["top_videos"].(bool); ok {
		settings.IncludeTopVideos = v
	}
	switch v := params["like_rate"].(type) {
	case float64:
		settings.ManualLikeRate = v
	case int64:
		settings.ManualLikeRate = float64(v)
	}
	if id, ok := params["video_id"].(string); ok && id != "" {
		for i := range records {
			if records[i].ID == id {
				selected := records[i]
				settings.SelectedVideo = &selected
				break
			}
		}
	}
	if v, ok := params["revenue_date"].(string); ok && v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, util.DisplayLocation()); err == nil {
			settings.SelectedRevenueDate = &t
		}
	}
	return settings
}
