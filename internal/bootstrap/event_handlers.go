package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
	"github.com/osse101/FitQuest_Go/internal/metrics"
)

// RegisterEventHandlers attaches the metrics collector and the audit logger
func RegisterEventHandlers(bus event.Bus, events eventlog.Service) error {
	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsRegistered)

	if err := events.Subscribe(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerAttached)

	return nil
}
