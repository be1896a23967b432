package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/trickcandle/commissionqueue/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the commission queue status page",
		Long: `Render the status page from store state: every unfinished commission in
lifecycle order with its assignment, plus the finished tally. With --push the
persistent status page message is rebuilt as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := wire.MaintenanceService().StatusPageText(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to render status page: %w", err)
			}
			fmt.Println(color.WhiteString(text))

			if push {
				if err := wire.MaintenanceService().RefreshStatusPage(cmd.Context()); err != nil {
					return fmt.Errorf("failed to refresh status page: %w", err)
				}
				color.Green("Status page refreshed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "also rebuild the persistent status page message")
	return cmd
}
