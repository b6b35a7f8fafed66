package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kapu/channel-dashboard-go/internal/domain"
)

// HelpCommand lists every registered command with its description.
type HelpCommand struct {
	deps     *Dependencies
	registry *Registry
}

func NewHelpCommand(deps *Dependencies, registry *Registry) *HelpCommand {
	return &HelpCommand{deps: deps, registry: registry}
}

func (c *HelpCommand) Name() string {
	return domain.CommandHelp.String()
}

func (c *HelpCommand) Description() string {
	return "コマンド一覧を表示"
}

func (c *HelpCommand) Execute(ctx context.Context, cmdCtx *domain.CommandContext, params map[string]any) error {
	handlers := c.registry.Handlers()
	sort.Slice(handlers, func(i, j int) bool {
		return handlers[i].Name() < handlers[j].Name()
	})

	var sb strings.Builder
	sb.WriteString("📋 コマンド一覧\n")
	for _, handler := range handlers {
		sb.WriteString(fmt.Sprintf("\n%-10s %s", handler.Name(), handler.Description()))
	}
	return c.deps.Print(sb.String())
}
