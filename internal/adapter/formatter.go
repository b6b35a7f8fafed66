package adapter

import (
	"fmt"
	"strings"

	"github.com/kapu/channel-dashboard-go/internal/analytics"
	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/internal/util"
)

const titleDisplayLimit = 30

// ResultFormatter renders command results for the terminal. The daily report
// has its own composer with a byte-stable contract; everything here is
// informational output and follows the dashboard's Japanese labels.
type ResultFormatter struct{}

func NewResultFormatter() *ResultFormatter {
	return &ResultFormatter{}
}

// FormatSummary renders the aggregate row above the video table.
func (f *ResultFormatter) FormatSummary(summary domain.DashboardSummary) string {
	var sb strings.Builder
	sb.WriteString("📈 サマリー\n")
	sb.WriteString(fmt.Sprintf("動画数: %s本\n", util.FormatComma(int64(summary.VideoCount))))

	if summary.HasViews {
		sb.WriteString(fmt.Sprintf("平均再生回数: %s回\n", util.FormatComma(int64(summary.AvgViews))))
		sb.WriteString(fmt.Sprintf("平均高評価数: %s\n", util.FormatComma(int64(summary.AvgLikes))))
	} else {
		sb.WriteString("平均再生回数: N/A\n")
		sb.WriteString("平均高評価数: N/A\n")
	}

	if summary.HasLikeRate {
		sb.WriteString(fmt.Sprintf("平均高評価率: %.2f%%", summary.AvgLikeRate))
	} else {
		sb.WriteString("平均高評価率: N/A")
	}
	return sb.String()
}

// FormatVideoTable renders the filtered video rows.
func (f *ResultFormatter) FormatVideoTable(records []domain.VideoRecord) string {
	if len(records) == 0 {
		return "表示するデータがありません"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎬 動画パフォーマンス (%d件)\n", len(records)))

	for i, r := range records {
		title := util.TruncateString(r.Title, titleDisplayLimit)
		sb.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("   公開: %s\n", util.FormatJST(r.PublishedAt, "2006/01/02 15:04")))
		sb.WriteString(fmt.Sprintf("   再生: %s回  高評価: %s件  コメント: %s件",
			util.FormatComma(r.Views), util.FormatComma(r.Likes), util.FormatComma(r.Comments)))
		if rate, ok := analytics.LikeRate(r.Views, r.Likes); ok {
			sb.WriteString(fmt.Sprintf("  高評価率: %.2f%%", rate))
		}
	}
	return sb.String()
}

// FormatChannelStats renders the channel counters from the provider.
func (f *ResultFormatter) FormatChannelStats(stats *domain.ChannelStats) string {
	if stats == nil {
		return "チャンネル情報を取得できませんでした"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📺 %s\n", stats.Name))
	sb.WriteString(fmt.Sprintf("登録者数: %s人\n", util.FormatComma(stats.Subscribers)))
	sb.WriteString(fmt.Sprintf("総再生回数: %s回\n", util.FormatComma(stats.TotalViews)))
	sb.WriteString(fmt.Sprintf("動画数: %s本", util.FormatComma(stats.VideoCount)))
	return sb.String()
}

// FormatGoalSuggestion renders the suggestion engine output, with the
// optional advisor commentary appended when present.
func (f *ResultFormatter) FormatGoalSuggestion(s *domain.GoalSuggestion, advice string) string {
	var sb strings.Builder
	sb.WriteString("🎯 目標提案\n")
	sb.WriteString(fmt.Sprintf("対象: 直近%d日間の動画%d本\n", s.WindowDays, s.WindowCount))
	sb.WriteString(fmt.Sprintf("平均再生回数: %s回  最高: %s回\n",
		util.FormatComma(int64(s.AvgViews)), util.FormatComma(s.MaxViews)))
	sb.WriteString(fmt.Sprintf("推奨24時間視聴回数: %s回\n", util.FormatComma(s.Recommended24h)))
	sb.WriteString(fmt.Sprintf("推奨日次視聴回数: %s回 ※推定値\n", util.FormatComma(s.RecommendedDaily)))
	sb.WriteString(s.TrendComment)

	if advice != "" {
		sb.WriteString("\n\n💡 ")
		sb.WriteString(advice)
	}
	return sb.String()
}

// FormatSnapshotHistory renders daily snapshot rows, newest first.
func (f *ResultFormatter) FormatSnapshotHistory(snapshots []domain.DailySnapshot) string {
	if len(snapshots) == 0 {
		return "日次データがありません"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 日次データ (%d件)\n", len(snapshots)))
	for _, s := range snapshots {
		sb.WriteString(fmt.Sprintf("\n%s  登録者: %s人  総再生: %s回  動画: %s本",
			s.Date.Format("2006-01-02"),
			util.FormatComma(s.Subscribers),
			util.FormatComma(s.TotalViews),
			util.FormatComma(s.VideoCount)))
	}
	return sb.String()
}

// FormatSaveResult renders a batch persistence outcome.
func (f *ResultFormatter) FormatSaveResult(saved, failed int) string {
	if failed == 0 {
		return fmt.Sprintf("✅ %d件の動画データを保存しました", saved)
	}
	return fmt.Sprintf("⚠️ %d件保存、%d件失敗しました", saved, failed)
}

// FormatError renders an error message.
func (f *ResultFormatter) FormatError(message string) string {
	return fmt.Sprintf("❌ %s", message)
}
