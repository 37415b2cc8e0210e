package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/toolkit"
	"github.com/Mohsinsiddi/easyeth/internal/txn"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
)

var estimateAddress string

var estimateCmd = &cobra.Command{
	Use:     "estimate",
	Short:   "Predict gas and fees without sending anything",
	GroupID: "contracts",
}

var estimateDeployCmd = &cobra.Command{
	Use:   "deploy <contract> [value] [params]",
	Short: "Estimate deploying a contract",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		value := optional(args, 1, "0")
		params := splitParams(args, 2)

		return withToolkit(cmd, func(ctx context.Context, tk *toolkit.Toolkit) error {
			est, err := tk.Estimate(name).Deploy(ctx, value, params)
			if err != nil {
				return err
			}
			return printEstimate(cmd, "Deploy "+name, est)
		})
	},
}

var estimateExecuteCmd = &cobra.Command{
	Use:   "execute <contract> <method> [value] [params]",
	Short: "Estimate calling a contract method",
	Long: `Estimate calling <method> on <contract>. The cached address is used
unless --address is given.`,
	Args: cobra.RangeArgs(2, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, method := args[0], args[1]
		value := optional(args, 2, "0")
		params := splitParams(args, 3)

		return withToolkit(cmd, func(ctx context.Context, tk *toolkit.Toolkit) error {
			est, err := tk.Estimate(name).Execute(ctx, estimateAddress, method, value, params)
			if err != nil {
				return err
			}
			return printEstimate(cmd, name+"."+method, est)
		})
	},
}

func printEstimate(cmd *cobra.Command, title string, est *txn.Estimate) error {
	if jsonOut {
		return ui.WriteJSON(cmd.OutOrStdout(), ui.NewEstimateView(est))
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.EstimateBlock(title, est))
	return nil
}

func init() {
	estimateExecuteCmd.Flags().StringVar(&estimateAddress, "address", "", "contract address (default: cached)")
	estimateCmd.AddCommand(estimateDeployCmd, estimateExecuteCmd)
	rootCmd.AddCommand(estimateCmd)
}
