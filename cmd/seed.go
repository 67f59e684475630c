package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vrajamarii/database"
	"vrajamarii/internal/seed"
)

func newSeedCommand(envFile *string) *cobra.Command {
	var (
		entries int
		cleanup bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the waitlist with dummy entries for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.ConnectDatabase(cfg.Database, log)
			if err != nil {
				return err
			}
			seeder := seed.NewSeeder(db, log, nil)
			ctx := cmd.Context()

			if cleanup {
				deleted, err := seeder.Cleanup(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d seeded entries\n", deleted)
				return nil
			}

			if err := seeder.SeedWaitlist(ctx, entries); err != nil {
				return err
			}
			count, err := seeder.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d seeded entries in the waitlist\n", count)
			return nil
		},
	}
	cmd.Flags().IntVar(&entries, "entries", seed.DefaultNumEntries, "number of waitlist entries to create")
	cmd.Flags().BoolVar(&cleanup, "clear", false, "delete previously seeded entries instead of creating new ones")
	return cmd
}
