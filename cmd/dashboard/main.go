package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/app"
	"github.com/kapu/channel-dashboard-go/internal/command"
	"github.com/kapu/channel-dashboard-go/internal/config"
	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Channel dashboard starting...",
		zap.String("version", "1.0.0-go"),
		zap.String("channel_id", cfg.Channel.ID),
	)

	cmdType, params := parseArgs(os.Args[1:])
	if cmdType == domain.CommandUnknown {
		fmt.Fprintf(os.Stderr, "Usage: dashboard <fetch|dashboard|goals|report|export|help> [key=value ...]\n")
		os.Exit(2)
	}

	print := func(message string) error {
		_, err := fmt.Fprintln(os.Stdout, message)
		return err
	}
	printError := func(message string) error {
		_, err := fmt.Fprintln(os.Stderr, message)
		return err
	}

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger, print, printError)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmdCtx := domain.NewCommandContext(operatorName())
	_, err = container.Dispatcher.Publish(ctx, cmdCtx, command.CommandEvent{
		Type:   cmdType,
		Params: params,
	})
	if err != nil {
		logger.Error("Command failed", zap.String("command", cmdType.String()), zap.Error(err))
		os.Exit(1)
	}
}

// parseArgs splits the CLI arguments into the command name and key=value
// parameters. Values parse as integer, then float, then bool, then fall
// back to string.
func parseArgs(args []string) (domain.CommandType, map[string]any) {
	if len(args) == 0 {
		return domain.CommandUnknown, nil
	}

	cmdType := domain.CommandType(strings.ToLower(args[0]))
	if !cmdType.IsValid() {
		return domain.CommandUnknown, nil
	}

	params := make(map[string]any)
	for _, arg := range args[1:] {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			continue
		}
		params[key] = parseValue(value)
	}
	return cmdType, params
}

// Numeric parses run before bool so "1" stays a count, not a flag.
func parseValue(value string) any {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func operatorName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "operator"
}
