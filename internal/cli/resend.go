package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/trickcandle/commissionqueue/internal/wire"
)

// ResendCmd returns the resend command
func ResendCmd() *cobra.Command {
	var channel string
	var noShuffle bool

	cmd := &cobra.Command{
		Use:   "resend",
		Short: "Delete all bot messages and re-send stored commissions",
		Long: `Sweep the managed channels (or one channel with --channel), deleting every
bot-authored message, then re-send each stored commission from store state.
Counters are preserved; cards keep their numbers.

This is the recovery path when store and channels have drifted apart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.MaintenanceService().CleanupAndResend(cmd.Context(), channel, !noShuffle); err != nil {
				return fmt.Errorf("resend failed: %w", err)
			}
			if channel != "" {
				color.Green("Resent #%s", channel)
			} else {
				color.Green("Resent all managed channels")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "only rebuild this channel")
	cmd.Flags().BoolVar(&noShuffle, "no-shuffle", false, "keep stored order instead of randomizing")
	return cmd
}
