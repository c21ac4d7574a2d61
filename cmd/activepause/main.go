package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/activepause/activepause/adapter/cli"
	cliAchievement "github.com/activepause/activepause/adapter/cli/achievement"
	cliExercise "github.com/activepause/activepause/adapter/cli/exercise"
	cliSettings "github.com/activepause/activepause/adapter/cli/settings"
	"github.com/activepause/activepause/internal/app"
	"github.com/activepause/activepause/pkg/config"
	"github.com/activepause/activepause/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development"}
	}

	// Setup logger
	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	if cfg.LogLevel != "" {
		logCfg.Level = observability.LogLevel(cfg.LogLevel)
	}
	if cfg.IsDevelopment() {
		logCfg.Level = observability.LogLevelDebug
	}
	logger := observability.NewLogger(logCfg)
	if err != nil {
		logger.Warn("failed to load config, using development defaults", "error", err)
	}
	cli.SetLogger(logger)

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			// In development, allow CLI to run without database
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		cliApp = &cli.App{
			CurrentUserID:        container.UserID,
			BreakDurationMinutes: cfg.BreakDurationMinutes,

			RecordSessionHandler:    container.RecordSessionHandler,
			ListAchievementsHandler: container.ListAchievementsHandler,

			SessionRepo:  container.SessionRepo,
			ExerciseRepo: container.ExerciseRepo,

			Scheduler:  container.Scheduler,
			Suppressor: container.Suppressor,
		}
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register command groups
	cli.AddCommand(cliAchievement.Cmd)
	cli.AddCommand(cliExercise.Cmd)
	cli.AddCommand(cliSettings.Cmd)

	// Execute CLI
	cli.Execute(ctx)
}
