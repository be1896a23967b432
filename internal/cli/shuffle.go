package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/trickcandle/commissionqueue/internal/wire"
)

// ShuffleCmd returns the shuffle command
func ShuffleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle CHANNEL",
		Short: "Re-send one channel's commissions in randomized order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel := args[0]
			if err := wire.MaintenanceService().CleanupAndResend(cmd.Context(), channel, true); err != nil {
				return fmt.Errorf("shuffle failed: %w", err)
			}
			color.Green("Shuffled #%s", channel)
			return nil
		},
	}
}
