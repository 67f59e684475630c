package main

import (
	"github.com/spf13/cobra"

	"vrajamarii/database"
)

func newMigrateCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
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
			return database.MigrateDatabase(db, log)
		},
	}
}
