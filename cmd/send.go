package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/toolkit"
	"github.com/Mohsinsiddi/easyeth/internal/txn"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
)

var sendCmd = &cobra.Command{
	Use:   "send <value> <address>",
	Short: "Send ether to an address",
	Long: `Send <value> ether from the signing account to <address>.

Example:
  easyeth send 0.5 0x70997970C51812dc3A010C7d01b50e0d17dc79C8 --network bnb_test`,
	Args:    cobra.ExactArgs(2),
	GroupID: "accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		value, address := args[0], args[1]

		return withToolkit(cmd, func(ctx context.Context, tk *toolkit.Toolkit) error {
			res, err := pending(cmd, "Sending "+value+"…", func() (*txn.TransactionResult, error) {
				return tk.Transfer(ctx, address, value)
			})
			if err != nil {
				return err
			}
			if jsonOut {
				return ui.WriteJSON(cmd.OutOrStdout(), ui.NewTxView(res))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.TxBlock("Sent", res))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
