package cli

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/ecotrack-backend/internal/app"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := app.NewLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg := app.LoadConfig(log)
			database, err := app.OpenDatabase(log, cfg)
			if err != nil {
				return err
			}
			defer database.Close()
			log.Info("Schema migrated", "driver", database.Driver())
			return nil
		},
	}
}
