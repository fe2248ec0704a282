package main

import (
	"context"
	"fmt"

	"aibot/internal/service"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print registry statistics without connecting to Telegram",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, level := newLogger()
			defer logger.Sync()

			cfg := loadConfig(logger, level)
			migrations, _ := cmd.Flags().GetString("migrations")

			repo, closeRepo, err := openRepository(cfg, migrations, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			registry := service.NewRegistry(context.Background(), repo, logger)
			stats := registry.AggregateStats()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Users:            %d\n", stats.TotalUsers)
			fmt.Fprintf(out, "Messages:         %d\n", stats.TotalMessages)
			fmt.Fprintf(out, "Average per user: %.2f\n", stats.AvgMessagesPerUser)
			return nil
		},
	}
}
