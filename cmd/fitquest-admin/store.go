package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/FitQuest_Go/internal/bootstrap"
	"github.com/osse101/FitQuest_Go/internal/config"
)

const (
	defaultCheckTimeout  = 30 * time.Second
	defaultCheckInterval = 2 * time.Second
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations for the configured storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage == config.StorageMemory {
				fmt.Fprintln(cmd.OutOrStdout(), "memory storage has no schema")
				return nil
			}

			store, err := bootstrap.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			store.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", cfg.Storage)
			return nil
		},
	}
}

func newCheckDBCmd() *cobra.Command {
	var timeout, interval time.Duration

	cmd := &cobra.Command{
		Use:   "check-db",
		Short: "Wait until the configured storage accepts connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			for attempt := 1; ; attempt++ {
				err = pingStore(ctx, cfg)
				if err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s storage is ready\n", cfg.Storage)
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "storage not ready (attempt %d): %v\n", attempt, err)

				select {
				case <-ctx.Done():
					return fmt.Errorf("storage not ready after %s: %w", timeout, err)
				case <-time.After(interval):
				}
			}
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", defaultCheckTimeout, "give up after this long")
	cmd.Flags().DurationVar(&interval, "interval", defaultCheckInterval, "delay between attempts")
	return cmd
}

func pingStore(ctx context.Context, cfg *config.Config) error {
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Ping(ctx)
}
