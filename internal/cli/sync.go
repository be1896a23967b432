package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/trickcandle/commissionqueue/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the submission sheets and admit new commissions",
		Long: `Fetch every configured sheet source, skip rows whose commission already
exists, and admit the rest: each new commission is stored, assigned from its
artist choice, and rendered into its queue channel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := wire.IngestService().Sync(cmd.Context())
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			color.Green("Sync complete")
			fmt.Printf("  Fetched:  %d\n", report.Fetched)
			fmt.Printf("  Admitted: %d\n", report.Admitted)
			fmt.Printf("  Skipped:  %d\n", report.Skipped)
			return nil
		},
	}
}
