package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/trickcandle/commissionqueue/internal/config"
	"github.com/trickcandle/commissionqueue/internal/db"
	"github.com/trickcandle/commissionqueue/internal/wire"
)

// DbCmd returns the db command
func DbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}
	cmd.AddCommand(dbInitCmd())
	return cmd
}

// dbInitCmd creates or migrates the database. It deliberately bypasses the
// wire singletons, whose schema version guard refuses an uninitialized store.
func dbInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the commission database or migrate it to the current schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(wire.ConfigPath())
			if err != nil {
				return err
			}

			conn, err := db.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Migrate(conn); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			if err := db.CheckVersion(conn); err != nil {
				return err
			}

			color.Green("Database ready at %s (schema v%d)", cfg.DatabasePath, db.SchemaVersion)
			return nil
		},
	}
}
