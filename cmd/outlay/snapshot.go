package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/outlay-app/outlay/internal/cli"
	"github.com/outlay-app/outlay/internal/config"
	"github.com/outlay-app/outlay/internal/snapshot"
)

func snapshotCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Publish the widget snapshot file",
		Long:  `Write a small JSON summary (this month's spending and the configured currency) to a well-known path for external consumers to read.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to load entries: %w", err)
			}

			path := outputPath
			if path == "" {
				if path, err = config.SnapshotPath(); err != nil {
					return err
				}
			}

			publisher, err := snapshot.NewPublisher(path)
			if err != nil {
				return err
			}

			snap, err := publisher.Publish(entries, config.Currency(), time.Now())
			if err != nil {
				return fmt.Errorf("failed to publish snapshot: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Published ") + path)
			fmt.Printf("Spent this month: %s\n",
				cli.FormatAmount(snap.TotalExpensesThisMonth, snap.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "", "snapshot file path (default from config)")

	return cmd
}
