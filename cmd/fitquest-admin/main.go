// Command fitquest-admin runs operator tasks against a FitQuest deployment:
// schema migration, readiness checks, retention purges and inspection of
// the event dead-letter log.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/FitQuest_Go/internal/config"
	"github.com/osse101/FitQuest_Go/internal/logger"
)

const adminServiceName = "fitquest-admin"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           adminServiceName,
		Short:         "Operator tasks for FitQuest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := logger.LogLevelWarn
			if verbose {
				level = logger.LogLevelDebug
			}
			logger.InitLoggerWithWriter(
				logger.NewConfig(level, logger.LogFormatText, adminServiceName, logger.DefaultVersion, logger.EnvironmentProduction),
				cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newMigrateCmd(),
		newCheckDBCmd(),
		newCleanupCmd(),
		newDeadLetterCmd(),
		newQuestPoolCmd(),
	)
	return root
}

// loadConfig reads the same environment the server does
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
