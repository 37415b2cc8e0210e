package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/contract"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
)

var selectorCmd = &cobra.Command{
	Use:   "selector <signature>",
	Short: "Compute the 4-byte selector of a function signature",
	Long: `Compute the 4-byte selector of a function signature. Parameter names
are ignored.

Examples:
  easyeth selector "transfer(address,uint256)"          # 0xa9059cbb
  easyeth selector "balanceOf(address account)"         # 0x70a08231`,
	Args:    cobra.ExactArgs(1),
	GroupID: "contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		sig := contract.NormalizeSignature(args[0])
		hash := contract.Keccak([]byte(sig))
		selector := "0x" + hex.EncodeToString(hash[:4])

		if jsonOut {
			return ui.WriteJSON(cmd.OutOrStdout(), map[string]string{
				"signature": sig,
				"selector":  selector,
				"hash":      "0x" + hex.EncodeToString(hash),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Function Selector", [][2]string{
			{"Signature", sig},
			{"Selector", ui.Val(selector)},
			{"Full Hash", "0x" + hex.EncodeToString(hash)},
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectorCmd)
}
