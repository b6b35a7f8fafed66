package command

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/adapter"
	"github.com/kapu/channel-dashboard-go/internal/analytics"
	"github.com/kapu/channel-dashboard-go/internal/domain"
)

const defaultExportPath = "video_data.csv"

// ExportCommand writes the filtered video table as a BOM-prefixed CSV file.
// The export always reflects the same filter pass the dashboard shows.
type ExportCommand struct {
	deps *Dependencies
}

func NewExportCommand(deps *Dependencies) *ExportCommand {
	return &ExportCommand{deps: deps}
}

func (c *ExportCommand) Name() string {
	return domain.CommandExport.String()
}

func (c *ExportCommand) Description() string {
	return "フィルタ適用後の動画データをCSV出力"
}

func (c *ExportCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c.deps == nil || c.deps.Store == nil {
		return fmt.Errorf("export dependencies not configured")
	}

	records, err := c.deps.Store.ReadVideoRecords(ctx)
	if err != nil {
		c.deps.Logger.Error("Video record read failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("動画データの読み込みに失敗しました: %v", err))
	}

	filtered, err := analytics.Filter(records, filterSettings(cmdCtx, params), cmdCtx.Now())
	if err != nil {
		return c.deps.PrintError(fmt.Sprintf("フィルタ条件が不正です: %v", err))
	}

	data, err := adapter.ExportCSV(filtered)
	if err != nil {
		return c.deps.PrintError(fmt.Sprintf("CSVの生成に失敗しました: %v", err))
	}

	path := defaultExportPath
	if v, ok := params["output"].(string); ok && v != "" {
		path = v
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.deps.Logger.Error("CSV write failed", zap.String("path", path), zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("ファイルの書き込みに失敗しました: %v", err))
	}

	return c.deps.Print(fmt.Sprintf("✅ %d件を %s に出力しました", len(filtered), path))
}
