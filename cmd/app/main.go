package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/FitQuest_Go/internal/activity"
	"github.com/osse101/FitQuest_Go/internal/bootstrap"
	"github.com/osse101/FitQuest_Go/internal/character"
	"github.com/osse101/FitQuest_Go/internal/config"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
	"github.com/osse101/FitQuest_Go/internal/logger"
	"github.com/osse101/FitQuest_Go/internal/progress"
	"github.com/osse101/FitQuest_Go/internal/quest"
	"github.com/osse101/FitQuest_Go/internal/scheduler"
	"github.com/osse101/FitQuest_Go/internal/server"
	"github.com/osse101/FitQuest_Go/internal/worker"
)

const shutdownTimeout = 15 * time.Second

// Retention job names, as they appear in worker logs
const (
	JobActivityCleanup = "activity_cleanup"
	JobEventLogCleanup = "event_log_cleanup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("FitQuest exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Config errors are reported before the configured logger exists.
	logger.InitLogger(logger.DefaultConfig())

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	initLogger(cfg)

	slog.Info(bootstrap.LogMsgStartingFitQuest,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage", cfg.Storage,
		"port", cfg.Port)

	if warnings, err := config.ValidateEnvWithWarnings(); err == nil {
		for _, w := range warnings {
			slog.Warn(bootstrap.LogMsgConfigWarning, "warning", w)
		}
	} else {
		slog.Debug(bootstrap.LogMsgConfigWarning, "error", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		store.Close()
		return err
	}

	events := eventlog.NewService(store.EventLog())
	if err := bootstrap.RegisterEventHandlers(publisher, events); err != nil {
		store.Close()
		return err
	}

	questPool, err := bootstrap.LoadQuestPool(cfg.QuestPoolPath)
	if err != nil {
		store.Close()
		return err
	}

	characters := character.NewService(store.Characters(), cfg.CacheSize, cfg.CacheTTL)
	quests := quest.NewService(store.Quests(), questPool)
	activities := activity.NewService(store.Activities(), publisher, loc)
	prog := progress.NewService(characters, quests, activities, publisher, progress.XPRates{
		Meal:          cfg.MealXP,
		Workout:       cfg.WorkoutXP,
		WaterPerGlass: cfg.WaterXPPerGlass,
	})

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerCount*4, 0)
	pool.Start()
	sched := scheduler.New(pool)
	if cfg.ActivityRetentionDays > 0 {
		sched.Schedule(cfg.CleanupInterval, worker.NewRetentionJob(JobActivityCleanup, cfg.ActivityRetentionDays, activities.CleanupOldActivities), true)
	}
	if cfg.EventRetentionDays > 0 {
		sched.Schedule(cfg.CleanupInterval, worker.NewRetentionJob(JobEventLogCleanup, cfg.EventRetentionDays, events.CleanupOldEvents), true)
	}
	slog.Info(bootstrap.LogMsgJobsScheduled,
		"interval", cfg.CleanupInterval,
		"activity_retention_days", cfg.ActivityRetentionDays,
		"event_retention_days", cfg.EventRetentionDays)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		Location:       loc,
	}, server.Services{
		Store:      store,
		Characters: characters,
		Quests:     quests,
		Activities: activities,
		Progress:   prog,
		Events:     events,
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: publisher,
		Store:              store,
	})

	return err
}
