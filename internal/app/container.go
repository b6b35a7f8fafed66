package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/kapu/channel-dashboard-go/internal/adapter"
	"github.com/kapu/channel-dashboard-go/internal/command"
	"github.com/kapu/channel-dashboard-go/internal/config"
	"github.com/kapu/channel-dashboard-go/internal/service/ai"
	"github.com/kapu/channel-dashboard-go/internal/service/cache"
	"github.com/kapu/channel-dashboard-go/internal/service/database"
	"github.com/kapu/channel-dashboard-go/internal/service/gauth"
	"github.com/kapu/channel-dashboard-go/internal/service/sheets"
	"github.com/kapu/channel-dashboard-go/internal/service/youtube"
)

const sheetsScope = "https://www.googleapis.com/auth/spreadsheets"

// Container bundles assembled services for constructing the command runtime.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Registry   *command.Registry
	Dispatcher command.Dispatcher

	closers []func()
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles all infrastructure services and the command registry. All
// heavy-weight initialization (auth, cache, DB, AI) happens here so command
// handlers stay focused on orchestration logic.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, print, printError func(string) error) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Cache is optional; a disabled or unreachable Redis degrades to
	// direct API calls.
	var cacheSvc *cache.Service
	if cfg.Redis.Enable {
		cacheSvc, err = cache.NewService(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("Cache unavailable, continuing without it", zap.Error(err))
			cacheSvc = nil
			err = nil
		} else {
			closers = append(closers, func() {
				_ = cacheSvc.Close()
			})
		}
	}

	// Google OAuth covers Sheets and, when no API key is set, YouTube.
	scopes := []string{sheetsScope}
	if cfg.YouTube.APIKey == "" {
		scopes = append(scopes, youtubeapi.YoutubeReadonlyScope)
	}
	oauthClient, err := gauth.NewOAuthClient(cfg.YouTube.CredentialsFile, cfg.YouTube.TokenFile, logger, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth client: %w", err)
	}
	if !oauthClient.IsAuthorized() {
		if err = oauthClient.Authorize(ctx); err != nil {
			return nil, fmt.Errorf("google authorization failed: %w", err)
		}
	}
	httpClient := oauthClient.HTTPClient(ctx)

	var provider *youtube.Service
	if cfg.YouTube.APIKey != "" {
		provider, err = youtube.NewService(ctx, cfg.YouTube.APIKey, cfg.Channel.ID, cacheSvc, logger)
	} else {
		provider, err = youtube.NewServiceWithClient(ctx, httpClient, cfg.Channel.ID, cacheSvc, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	store, err := sheets.NewStore(ctx, httpClient, sheets.Config{
		SpreadsheetID: cfg.Sheets.SpreadsheetID,
		DailySheet:    cfg.Sheets.DailySheet,
		VideoSheet:    cfg.Sheets.VideoSheet,
		GoalSheet:     cfg.Sheets.GoalSheet,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets store: %w", err)
	}

	// Postgres mirrors appended rows for local querying; optional.
	var archive command.SnapshotArchive
	if cfg.Postgres.Enable {
		postgresSvc, perr := database.NewPostgresService(database.Config{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if perr != nil {
			logger.Warn("Postgres unavailable, continuing without archive", zap.Error(perr))
		} else {
			closers = append(closers, func() {
				_ = postgresSvc.Close()
			})
			archive = postgresSvc
		}
	}

	adviser := buildAdviser(ctx, cfg, logger)

	formatter := adapter.NewResultFormatter()
	deps := &command.Dependencies{
		Provider:   provider,
		Store:      store,
		Archive:    archive,
		Adviser:    adviser,
		Composer:   adapter.NewReportComposer(cfg.Report.DisplayOffset),
		Formatter:  formatter,
		MaxResults: cfg.Channel.MaxResults,
		Print:      print,
		PrintError: func(message string) error {
			return printError(formatter.FormatError(message))
		},
		Logger:     logger,
	}

	registry := command.NewRegistry()
	registry.Register(command.NewFetchCommand(deps))
	registry.Register(command.NewDashboardCommand(deps))
	registry.Register(command.NewGoalsCommand(deps))
	registry.Register(command.NewReportCommand(deps))
	registry.Register(command.NewExportCommand(deps))
	registry.Register(command.NewHelpCommand(deps, registry))

	logger.Info("Container built",
		zap.Int("commands", registry.Count()),
		zap.Bool("cache", cacheSvc != nil),
		zap.Bool("archive", archive != nil),
		zap.Bool("adviser", adviser != nil))

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry,
		Dispatcher: command.NewSequentialDispatcher(registry),
		closers:    closers,
	}, nil
}

// buildAdviser wires the optional text providers. Gemini is primary; OpenAI
// steps in on failure when fallback is enabled. No keys means no adviser.
func buildAdviser(ctx context.Context, cfg *config.Config, logger *zap.Logger) command.GoalAdviser {
	var primary, fallback ai.TextProvider

	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			logger.Warn("Gemini provider unavailable", zap.Error(err))
		} else {
			primary = gemini
		}
	}
	if cfg.OpenAI.EnableFallback {
		if openai := ai.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger); openai != nil {
			fallback = openai
		}
	}

	if primary == nil {
		if fallback == nil {
			return nil
		}
		primary, fallback = fallback, nil
	}
	return ai.NewGoalAdvisor(primary, fallback, logger)
}
