package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/toolkit"
	"github.com/Mohsinsiddi/easyeth/internal/txn"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
)

var deployCmd = &cobra.Command{
	Use:   "deploy <contract> [value] [params]",
	Short: "Deploy a compiled contract and remember its address",
	Long: `Deploy the contract called <contract> from the project's compiled
artifacts. [value] is paid to the constructor in ether (default 0) and
[params] is a comma-separated list of constructor arguments.

Examples:
  easyeth deploy Token 0 "My Token,MTK,1000000"
  easyeth deploy Vault 1.5
  easyeth deploy Registry 0 "[0x5FbDB2315678afecb367f032d93F642f64180aa3,0x70997970C51812dc3A010C7d01b50e0d17dc79C8]"`,
	Args:    cobra.RangeArgs(1, 3),
	GroupID: "contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		value := optional(args, 1, "0")
		params := splitParams(args, 2)

		return withToolkit(cmd, func(ctx context.Context, tk *toolkit.Toolkit) error {
			res, err := pending(cmd, "Deploying "+name+"…", func() (*txn.TransactionResult, error) {
				return tk.Deploy(ctx, name, params, value)
			})
			if err != nil {
				return err
			}
			if jsonOut {
				return ui.WriteJSON(cmd.OutOrStdout(), ui.NewTxView(res))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.TxBlock("Deployed "+name, res))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%s recorded on %s", name, tk.Network())))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)
}
