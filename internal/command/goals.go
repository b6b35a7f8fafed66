package command

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/analytics"
	"github.com/kapu/channel-dashboard-go/internal/domain"
	derrors "github.com/kapu/channel-dashboard-go/pkg/errors"
)

// GoalsCommand runs the goal suggestion engine over the stored video table
// and optionally appends the suggested values as the new current goal.
type GoalsCommand struct {
	deps *Dependencies
}

func NewGoalsCommand(deps *Dependencies) *GoalsCommand {
	return &GoalsCommand{deps: deps}
}

func (c *GoalsCommand) Name() string {
	return domain.CommandGoals.String()
}

func (c *GoalsCommand) Description() string {
	return "直近30日の実績から目標値を提案"
}

func (c *GoalsCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	if c.deps == nil || c.deps.Store == nil {
		return fmt.Errorf("goals dependencies not configured")
	}

	records, err := c.deps.Store.ReadVideoRecords(ctx)
	if err != nil {
		c.deps.Logger.Error("Video record read failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("動画データの読み込みに失敗しました: %v", err))
	}

	suggestion, err := analytics.SuggestGoals(records, cmdCtx.Now())
	if err != nil {
		var insufficient *derrors.InsufficientDataError
		if errors.As(err, &insufficient) {
			return c.deps.PrintError("直近30日間に公開された動画がないため、目標を提案できません")
		}
		return c.deps.PrintError(fmt.Sprintf("目標の算出に失敗しました: %v", err))
	}

	advice := c.advise(ctx, suggestion)
	if err := c.deps.Print(c.deps.Formatter.FormatGoalSuggestion(suggestion, advice)); err != nil {
		return err
	}

	if save, _ := params["save"].(bool); save {
		return c.saveGoal(ctx, cmdCtx, suggestion)
	}
	return nil
}

// advise is best effort. A failed or absent adviser never blocks the
// suggestion output.
func (c *GoalsCommand) advise(ctx context.Context, suggestion *domain.GoalSuggestion) string {
	if c.deps.Adviser == nil {
		return ""
	}
	advice, err := c.deps.Adviser.Advise(ctx, suggestion)
	if err != nil {
		c.deps.Logger.Warn("Goal advice unavailable", zap.Error(err))
		return ""
	}
	return advice
}

func (c *GoalsCommand) saveGoal(ctx context.Context, cmdCtx *domain.CommandContext, suggestion *domain.GoalSuggestion) error {
	goal := domain.GoalSet{
		SetAt:            cmdCtx.Now(),
		Target24hViews:   suggestion.Recommended24h,
		TargetDailyViews: suggestion.RecommendedDaily,
	}

	if err := c.deps.Store.AppendGoalSet(ctx, goal); err != nil {
		c.deps.Logger.Error("Goal persist failed", zap.Error(err))
		return c.deps.PrintError(fmt.Sprintf("目標の保存に失敗しました: %v", err))
	}
	if c.deps.Archive != nil {
		if err := c.deps.Archive.AppendGoalSet(ctx, goal); err != nil {
			c.deps.Logger.Warn("Goal archive failed", zap.Error(err))
		}
	}
	return c.deps.Print("✅ 提案された目標を保存しました")
}
