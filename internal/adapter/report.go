package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/kapu/channel-dashboard-go/internal/analytics"
	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/internal/util"
	"github.com/kapu/channel-dashboard-go/pkg/errors"
)

const (
	analyticsPendingLine = "※YouTube Analytics API実装後に取得可能"
	manualEntryLine      = "※YouTube Studioで確認して入力してください"
	noVideoDataLine      = "※動画データがありません"

	// The original operator's like-rate goal when none is configured.
	defaultLikeRateGoal = 90.0

	topVideoCount = 5
)

// ReportComposer assembles the plain-text daily report pasted into Chatwork.
// Composition is a pure function of its inputs and the supplied "now";
// identical inputs produce byte-identical text. Spacing, full-width
// punctuation and thousands separators are part of the contract: the output
// is copied verbatim into chat.
type ReportComposer struct {
	// displayOffset shifts stored UTC timestamps into the operator's
	// local time for display only. Stored data stays in UTC.
	displayOffset time.Duration
}

func NewReportComposer(displayOffset time.Duration) *ReportComposer {
	if displayOffset == 0 {
		displayOffset = util.DefaultDisplayOffset
	}
	return &ReportComposer{displayOffset: displayOffset}
}

// Compose renders the report. A failure returns an error and no text; a
// partially assembled report is never emitted.
func (rc *ReportComposer) Compose(settings domain.ReportSettings, records []domain.VideoRecord, goal domain.GoalSet, now time.Time) (string, error) {
	if settings.ManualLikeRate < 0 || settings.ManualLikeRate > 100 {
		return "", errors.NewValidationError("manual like rate must be between 0 and 100", "manual_like_rate", settings.ManualLikeRate)
	}

	local := now.Add(rc.displayOffset)

	var lines []string
	lines = append(lines,
		fmt.Sprintf("%d年%d月%d日", local.Year(), int(local.Month()), local.Day()),
		"日報をお送りいたします",
		"")

	if settings.IncludeNewVideo {
		lines = append(lines, rc.newVideoSection(settings, records, goal)...)
	}
	if settings.IncludeRevenue {
		lines = append(lines, rc.revenueSection(settings, goal, local)...)
	}
	if settings.IncludeChannelStats {
		lines = append(lines, rc.channelStatsSection(records)...)
	}
	if settings.IncludeTopVideos {
		lines = append(lines, rc.topVideosSection(records)...)
	}

	return strings.Join(lines, "\n"), nil
}

// newVideoSection reports on one video: the explicitly selected one, or the
// most recently published as fallback.
func (rc *ReportComposer) newVideoSection(settings domain.ReportSettings, records []domain.VideoRecord, goal domain.GoalSet) []string {
	lines := []string{"■新規投稿動画について"}

	video := settings.SelectedVideo
	if video == nil {
		video = analytics.MostRecent(records)
	}

	if video == nil || video.PublishedAt.IsZero() {
		lines = append(lines, "不明")
	} else {
		pub := video.PublishedAt.Add(rc.displayOffset)
		lines = append(lines, fmt.Sprintf("%d月%d日分　%d時公開", int(pub.Month()), pub.Day(), pub.Hour()))
	}

	var views int64
	if video != nil {
		views = video.Views
	}

	lines = append(lines, "　◇24時間視聴回数")
	switch analytics.Achieve(views, goal.Target24hViews) {
	case analytics.AchievementAchieved:
		lines = append(lines, fmt.Sprintf("　　目標：%s回　結果：%s回（達成）", util.FormatComma(goal.Target24hViews), util.FormatComma(views)))
	case analytics.AchievementNotAchieved:
		lines = append(lines, fmt.Sprintf("　　目標：%s回　結果：%s回（未達）", util.FormatComma(goal.Target24hViews), util.FormatComma(views)))
	default:
		lines = append(lines, fmt.Sprintf("　　結果：%s回", util.FormatComma(views)))
	}
	lines = append(lines, "")

	// The like rate is always the operator-entered value; the Data API
	// does not expose it. Zero means "not entered yet".
	likeRateGoal := goal.TargetLikeRate
	if likeRateGoal == 0 {
		likeRateGoal = defaultLikeRateGoal
	}

	lines = append(lines, "　◇24時間高評価率")
	if settings.ManualLikeRate > 0 {
		mark := "未達"
		if analytics.AchieveRate(settings.ManualLikeRate, likeRateGoal) == analytics.AchievementAchieved {
			mark = "達成"
		}
		lines = append(lines, fmt.Sprintf("　　目標：%.0f％　結果：%.1f%%（%s）", likeRateGoal, settings.ManualLikeRate, mark))
	} else {
		lines = append(lines, "　　"+manualEntryLine)
	}
	lines = append(lines, "")

	lines = append(lines,
		"　◇投稿後1時間のインプレッションのクリック率",
		"　　"+analyticsPendingLine,
		"",
		"　◇チャンネル登録者の視聴回数",
		"　　"+analyticsPendingLine,
		"",
		"　◇24時間チャンネル登録者数",
		"　　"+analyticsPendingLine,
		"",
		"")

	return lines
}

// revenueSection always renders placeholders: revenue is unavailable from
// the current data source and is stubbed, never estimated.
func (rc *ReportComposer) revenueSection(settings domain.ReportSettings, goal domain.GoalSet, local time.Time) []string {
	lines := []string{"■収益について"}

	revenueDate := local.AddDate(0, 0, -1)
	if settings.SelectedRevenueDate != nil {
		revenueDate = *settings.SelectedRevenueDate
	}

	lines = append(lines,
		fmt.Sprintf("%d月%d日分", int(revenueDate.Month()), revenueDate.Day()),
		analyticsPendingLine,
		"")

	if goal.TargetMonthlyRevenue > 0 {
		lines = append(lines, fmt.Sprintf("%d月合計（目標利益：%s円）", int(local.Month()), util.FormatComma(goal.TargetMonthlyRevenue)))
	} else {
		lines = append(lines, fmt.Sprintf("%d月合計", int(local.Month())))
	}
	lines = append(lines, analyticsPendingLine, "")

	return lines
}

// channelStatsSection sums over every record currently available, unfiltered
// by period.
func (rc *ReportComposer) channelStatsSection(records []domain.VideoRecord) []string {
	lines := []string{"■チャンネル統計"}

	if len(records) == 0 {
		return append(lines, noVideoDataLine, "")
	}

	var totalViews, totalLikes int64
	for _, r := range records {
		totalViews += r.Views
		totalLikes += r.Likes
	}

	lines = append(lines,
		fmt.Sprintf("・総再生回数: %s回", util.FormatComma(totalViews)),
		fmt.Sprintf("・総高評価数: %s件", util.FormatComma(totalLikes)),
		fmt.Sprintf("・動画数: %d本", len(records)),
		"")

	return lines
}

func (rc *ReportComposer) topVideosSection(records []domain.VideoRecord) []string {
	lines := []string{"■再生回数トップ5"}

	top := analytics.TopByViews(records, topVideoCount)
	if len(top) == 0 {
		return append(lines, noVideoDataLine, "")
	}

	for i, video := range top {
		lines = append(lines, fmt.Sprintf("%d. %s: %s回", i+1, video.Title, util.FormatComma(video.Views)))
	}
	lines = append(lines, "")

	return lines
}
