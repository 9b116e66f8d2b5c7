package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/repository"
	"github.com/osse101/FitQuest_Go/internal/scheduler"
	"github.com/osse101/FitQuest_Go/internal/server"
	"github.com/osse101/FitQuest_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Store              repository.Store
}

// GracefulShutdown stops the HTTP server first so no new actions arrive,
// then the background jobs, then flushes pending event retries, and finally
// closes storage. Errors are logged and the sequence continues.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgStoppingJobs)
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Store != nil {
		c.Store.Close()
	}

	slog.Info(LogMsgServerStopped)
}
