package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/toolkit"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
)

var balanceCmd = &cobra.Command{
	Use:     "balance [address]",
	Short:   "Show the ether balance of an address (default: the signer)",
	Args:    cobra.MaximumNArgs(1),
	GroupID: "accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		address := optional(args, 0, "")
		return withToolkit(cmd, func(ctx context.Context, tk *toolkit.Toolkit) error {
			bal, err := tk.Balance(ctx, address)
			if err != nil {
				return err
			}
			if jsonOut {
				return ui.WriteJSON(cmd.OutOrStdout(), map[string]string{"network": tk.Network(), "balance": bal})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Val(bal))
			return nil
		})
	},
}

var accountsCmd = &cobra.Command{
	Use:     "accounts",
	Short:   "List signing accounts and their balances",
	Args:    cobra.NoArgs,
	GroupID: "accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withToolkit(cmd, func(ctx context.Context, tk *toolkit.Toolkit) error {
			accounts, err := tk.Accounts(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				if accounts == nil {
					accounts = []toolkit.Account{}
				}
				return ui.WriteJSON(out, accounts)
			}
			if len(accounts) == 0 {
				fmt.Fprintln(out, ui.Warn("no signing account on "+tk.Network()))
				return nil
			}
			fmt.Fprint(out, ui.AccountsTable(accounts))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd, accountsCmd)
}
