package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/trickcandle/commissionqueue/internal/ports/primary"
	"github.com/trickcandle/commissionqueue/internal/wire"
)

// ActCmd returns the act command
func ActCmd() *cobra.Command {
	var memberID string
	var displayName string

	cmd := &cobra.Command{
		Use:   "act ACTION MESSAGE_ID",
		Short: "Run one commission action as a member",
		Long: `Dispatch one interactive action against the commission rendered by
MESSAGE_ID, exactly as if the member had pressed the card's control.

Actions: accept, reject, claim, show, hide, invoiced, paid, done.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := parseAction(args[0])
			if err != nil {
				return err
			}
			if displayName == "" {
				displayName = memberID
			}
			actor := primary.Actor{MemberID: memberID, DisplayName: displayName}

			result, err := wire.CommissionActions().HandleAction(cmd.Context(), action, actor, args[1])
			if err != nil {
				if rej, ok := primary.AsRejection(err); ok {
					color.Yellow("Not allowed: %s", rej.Reply)
					return nil
				}
				return err
			}

			color.Green("%s %s applied to commission #%d", action.Emoji(), action, result.ID)
			if result.ChannelName != "" {
				fmt.Printf("  Now in #%s as %s\n", result.ChannelName, result.MessageID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&memberID, "member", "", "acting member id")
	cmd.Flags().StringVar(&displayName, "name", "", "acting member display name")
	_ = cmd.MarkFlagRequired("member")
	return cmd
}

func parseAction(name string) (primary.Action, error) {
	for _, action := range primary.Actions {
		if strings.EqualFold(action.String(), name) {
			return action, nil
		}
	}
	// Aliases matching the flag names rather than the labels.
	switch strings.ToLower(name) {
	case "invoice":
		return primary.ActionInvoice, nil
	case "pay":
		return primary.ActionPay, nil
	case "finish":
		return primary.ActionFinish, nil
	}
	return 0, fmt.Errorf("unknown action %q", name)
}
