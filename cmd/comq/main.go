package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trickcandle/commissionqueue/internal/cli"
	"github.com/trickcandle/commissionqueue/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "comq",
		Short:   "comq - art commission queue tracker",
		Version: version.String(),
		Long: `comq tracks art commissions from form submission to finished piece.
It ingests submission sheets, routes each commission card to the right queue
channel, and walks commissions through claim, billing and completion.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.SyncCmd())
	rootCmd.AddCommand(cli.ResendCmd())
	rootCmd.AddCommand(cli.ShuffleCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.ActCmd())
	rootCmd.AddCommand(cli.DbCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
