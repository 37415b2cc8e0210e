package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/toolkit"
	"github.com/Mohsinsiddi/easyeth/internal/txn"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
)

var executeCmd = &cobra.Command{
	Use:     "execute <contract> <method> [value] [params]",
	Aliases: []string{"exec", "call"},
	Short:   "Call a method on a deployed contract",
	Long: `Call <method> on the cached deployment of <contract>. View and pure
methods return their values without sending a transaction; anything else is
signed, sent and waited for.

Overloaded methods are named by signature, e.g. "store(uint8)".

Examples:
  easyeth execute Token balanceOf 0 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266
  easyeth execute Token transfer 0 "0x70997970C51812dc3A010C7d01b50e0d17dc79C8,100"
  easyeth execute Vault deposit 2.5`,
	Args:    cobra.RangeArgs(2, 4),
	GroupID: "contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, method := args[0], args[1]
		value := optional(args, 2, "0")
		params := splitParams(args, 3)

		return withToolkit(cmd, func(ctx context.Context, tk *toolkit.Toolkit) error {
			res, err := pending(cmd, "Calling "+name+"."+method+"…", func() (txn.Result, error) {
				return tk.Execute(ctx, name, method, params, value)
			})
			if err != nil {
				return err
			}
			return printResult(cmd, name+"."+method, res)
		})
	},
}

func printResult(cmd *cobra.Command, title string, res txn.Result) error {
	out := cmd.OutOrStdout()
	switch r := res.(type) {
	case txn.ReadResult:
		if jsonOut {
			return ui.WriteJSON(out, ui.ReadView(r.Values))
		}
		fmt.Fprintln(out, ui.ReadBlock(title, r.Values))
	case txn.WriteResult:
		if jsonOut {
			return ui.WriteJSON(out, ui.NewTxView(r.Tx))
		}
		fmt.Fprintln(out, ui.TxBlock(title, r.Tx))
	default:
		return fmt.Errorf("unexpected result %T", res)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(executeCmd)
}
