package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/osse101/FitQuest_Go/internal/domain"
	"github.com/osse101/FitQuest_Go/internal/quest"
)

func newQuestPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest-pool",
		Short: "Work with the quest template pool",
	}
	cmd.AddCommand(newQuestPoolValidateCmd())
	return cmd
}

func newQuestPoolValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every template in the pool file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.QuestPoolPath
			}

			pool, err := quest.LoadQuestPool(path)
			if err != nil {
				return err
			}

			byType := make(map[domain.QuestType]int)
			daily := 0
			for _, tmpl := range pool {
				byType[tmpl.Type]++
				if tmpl.Daily {
					daily++
				}
			}
			types := make([]string, 0, len(byType))
			for t := range byType {
				types = append(types, string(t))
			}
			sort.Strings(types)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d templates, %d daily\n", path, len(pool), daily)
			for _, t := range types {
				fmt.Fprintf(out, "  %-10s %d\n", t, byType[domain.QuestType(t)])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "quest pool file (default from QUEST_POOL_PATH)")
	return cmd
}
