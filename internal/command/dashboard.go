package command

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/analytics"
	"github.com/kapu/channel-dashboard-go/internal/domain"
)

// DashboardCommand reads the stored video table, applies the invocation's
// filter settings and prints the aggregate summary followed by the filtered
// rows.
type DashboardCommand struct {
	deps *Dependencies
}

func NewDashboardCommand(deps *Dependencies) *DashboardCommand {
	return &DashboardCommand{deps: deps}
}

func (c *DashboardCommand) Name() string {
	return domain.CommandDashboard.String()
}

func (c *DashboardCommand) Description() string {
	return "保存済み動画データの集計と一覧を表示"
}

func (c *DashboardCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c.deps == nil || c.deps.Store == nil {
		return fmt.Errorf("dashboard dependencies not configured")
	}

	if n, ok := params["history"].(int64); ok && n > 0 {
		return c.showHistory(ctx, int(n))
	}

	records, err := c.deps.Store.ReadVideoRecords(ctx)
	if err != nil {
		c.deps.Logger.Error("Video record read failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("動画データの読み込みに失敗しました: %v", err))
	}

	settings := filterSettings(cmdCtx, params)
	filtered, err := analytics.Filter(records, settings, cmdCtx.Now())
	if err != nil {
		return c.deps.PrintError(fmt.Sprintf("フィルタ条件が不正です: %v", err))
	}

	summary := analytics.Summarize(filtered)
	if err := c.deps.Print(c.deps.Formatter.FormatSummary(summary)); err != nil {
		return err
	}
	return c.deps.Print(c.deps.Formatter.FormatVideoTable(filtered))
}

// showHistory prints the trailing daily snapshots, newest first. The local
// archive answers when available; otherwise the sheet log is read.
func (c *DashboardCommand) showHistory(ctx context.Context, limit int) error {
	var (
		snapshots []domain.DailySnapshot
		err       error
	)
	if c.deps.Archive != nil {
		snapshots, err = c.deps.Archive.ReadLatestSnapshots(ctx, limit)
	} else {
		snapshots, err = c.deps.Store.ReadDailySnapshots(ctx, time.Time{}, time.Time{})
		if err == nil {
			// Sheet rows are in append order; take the newest and
			// flip to newest-first to match the archive.
			if len(snapshots) > limit {
				snapshots = snapshots[len(snapshots)-limit:]
			}
			for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
				snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
			}
		}
	}
	if err != nil {
		c.deps.Logger.Error("Snapshot history read failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("日次データの読み込みに失敗しました: %v", err))
	}

	return c.deps.Print(c.deps.Formatter.FormatSnapshotHistory(snapshots))
}

// filterSettings starts from the context's settings and lets params override
// individual fields for a single invocation.
func filterSettings(cmdCtx *domain.CommandContext, params map[string]any) domain.FilterSettings {
	settings := cmdCtx.Filter
	if settings.Period == "" {
		settings.Period = domain.PeriodAll
	}
	if settings.SortKey == "" {
		settings.SortKey = domain.SortPublishDateDesc
	}

	if v, ok := params["period"].(string); ok && v != "" {
		settings.Period = domain.Period(v)
	}
	if v, ok := params["search"].(string); ok {
		settings.SearchText = v
	}
	if v, ok := params["sort"].(string); ok && v != "" {
		settings.SortKey = domain.SortKey(v)
	}
	// Custom bounds are parsed in UTC, the frame the stored publish
	// timestamps use. Parsing in display time would shift the window
	// across a day boundary.
	if v, ok := params["from"].(string); ok && v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			settings.CustomFrom = t
		}
	}
	if v, ok := params["to"].(string); ok && v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			settings.CustomTo = t
		}
	}
	return settings
}
