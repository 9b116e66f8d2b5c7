package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/FitQuest_Go/internal/activity"
	"github.com/osse101/FitQuest_Go/internal/bootstrap"
	"github.com/osse101/FitQuest_Go/internal/event"
	"github.com/osse101/FitQuest_Go/internal/eventlog"
	"github.com/osse101/FitQuest_Go/internal/worker"
)

func newCleanupCmd() *cobra.Command {
	var activityDays, eventDays int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Run the retention purges once, outside the server's schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("activity-days") {
				activityDays = cfg.ActivityRetentionDays
			}
			if !cmd.Flags().Changed("event-days") {
				eventDays = cfg.EventRetentionDays
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := bootstrap.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			activities := activity.NewService(store.Activities(), event.NewMemoryBus(), loc)
			events := eventlog.NewService(store.EventLog())

			purges := []struct {
				name  string
				days  int
				purge worker.PurgeFunc
			}{
				{name: "activities", days: activityDays, purge: activities.CleanupOldActivities},
				{name: "events", days: eventDays, purge: events.CleanupOldEvents},
			}
			for _, p := range purges {
				var deleted int64
				counted := func(ctx context.Context, days int) (int64, error) {
					n, err := p.purge(ctx, days)
					deleted = n
					return n, err
				}
				if err := worker.NewRetentionJob(p.name, p.days, counted).Process(ctx); err != nil {
					return fmt.Errorf("purge %s: %w", p.name, err)
				}
				if p.days <= 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: retention disabled\n", p.name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: removed %d older than %d days\n", p.name, deleted, p.days)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&activityDays, "activity-days", 0, "activity retention window (default from ACTIVITY_RETENTION_DAYS)")
	cmd.Flags().IntVar(&eventDays, "event-days", 0, "event log retention window (default from EVENT_RETENTION_DAYS)")
	return cmd
}
