package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/domain"
)

// GoalAdvisor turns a computed goal suggestion into a short commentary for
// the operator. The numbers themselves always come from the deterministic
// suggestion engine; the advisor only adds wording and is skipped entirely
// when no provider is configured.
type GoalAdvisor struct {
	primary  TextProvider
	fallback TextProvider
	logger   *zap.Logger
}

func NewGoalAdvisor(primary, fallback TextProvider, logger *zap.Logger) *GoalAdvisor {
	return &GoalAdvisor{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Advise generates a commentary on the suggestion. Failures of the primary
// provider fall back once; failures of both return the error so the caller
// can print the suggestion without commentary.
func (a *GoalAdvisor) Advise(ctx context.Context, suggestion *domain.GoalSuggestion) (string, error) {
	if a == nil || a.primary == nil {
		return "", fmt.Errorf("advice provider not configured")
	}

	prompt := buildAdvicePrompt(suggestion)

	text, err := a.primary.Generate(ctx, prompt)
	if err == nil {
		return strings.TrimSpace(text), nil
	}

	if a.fallback != nil {
		a.logger.Warn("Primary advice provider failed, trying fallback",
			zap.String("primary", a.primary.Name()),
			zap.Error(err))
		text, fbErr := a.fallback.Generate(ctx, prompt)
		if fbErr == nil {
			return strings.TrimSpace(text), nil
		}
		return "", fmt.Errorf("advice generation failed (%s and %s): %w", a.primary.Name(), a.fallback.Name(), fbErr)
	}

	return "", fmt.Errorf("advice generation failed (%s): %w", a.primary.Name(), err)
}

func buildAdvicePrompt(s *domain.GoalSuggestion) string {
	var b strings.Builder
	b.WriteString("あなたはYouTubeチャンネル運営のアドバイザーです。以下の直近30日間の実績と推奨目標をもとに、")
	b.WriteString("運営者向けの短いコメント（3文以内、日本語）を書いてください。数値は変更しないでください。\n\n")
	fmt.Fprintf(&b, "- 対象期間: 直近%d日間（動画%d本）\n", s.WindowDays, s.WindowCount)
	fmt.Fprintf(&b, "- 平均再生回数: %.0f回\n", s.AvgViews)
	fmt.Fprintf(&b, "- 最高再生回数: %d回\n", s.MaxViews)
	fmt.Fprintf(&b, "- 推奨24時間視聴回数目標: %d回\n", s.Recommended24h)
	fmt.Fprintf(&b, "- 推奨日次視聴回数目標: %d回\n", s.RecommendedDaily)
	fmt.Fprintf(&b, "- 傾向: %s\n", s.TrendComment)
	return b.String()
}
