package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/FitQuest_Go/internal/event"
)

func newDeadLetterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadletter",
		Short: "Inspect events the publisher gave up on",
	}
	cmd.AddCommand(newDeadLetterListCmd())
	return cmd
}

func newDeadLetterListCmd() *cobra.Command {
	var (
		path    string
		asJSON  bool
		evtType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the entries of the dead-letter log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.EventDeadLetterPath
			}

			entries, skipped, err := event.ReadDeadLetters(path)
			if err != nil {
				return err
			}
			if evtType != "" {
				entries = filterDeadLetters(entries, event.Type(evtType))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				for _, e := range entries {
					if err := enc.Encode(e); err != nil {
						return err
					}
				}
			} else {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "TIMESTAMP\tTYPE\tATTEMPTS\tLAST ERROR")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Timestamp.Format(time.RFC3339), e.Event.Type, e.Attempts, e.LastError)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d unreadable lines skipped in %s\n", skipped, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "dead-letter file (default from EVENT_DEAD_LETTER_PATH)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON entry per line")
	cmd.Flags().StringVar(&evtType, "type", "", "only show events of this type")
	return cmd
}

func filterDeadLetters(entries []event.DeadLetterEntry, t event.Type) []event.DeadLetterEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.Event.Type == t {
			kept = append(kept, e)
		}
	}
	return kept
}
