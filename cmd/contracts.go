package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/toolkit"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
)

var contractsCmd = &cobra.Command{
	Use:   "contracts [contract] [address]",
	Short: "Show or record cached contract addresses",
	Long: `With no arguments, list every cached address on the network. With a
contract name, print its address. With an address as well, record it; the
contract must have a compiled artifact.`,
	Args:    cobra.MaximumNArgs(2),
	GroupID: "contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := optional(args, 0, "")
		address := optional(args, 1, "")

		return withToolkit(cmd, func(_ context.Context, tk *toolkit.Toolkit) error {
			if address != "" {
				if err := tk.CacheSet(name, address); err != nil {
					return err
				}
			}
			got, ok := tk.CacheGet(name)
			if !ok {
				return fmt.Errorf("%w: %s on %s", toolkit.ErrAddressNotFound, name, tk.Network())
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				return ui.WriteJSON(out, got)
			}
			switch v := got.(type) {
			case map[string]string:
				if len(v) == 0 {
					fmt.Fprintln(out, ui.Meta("no contracts cached on "+tk.Network()))
					return nil
				}
				fmt.Fprintln(out, ui.CacheTable(v))
			case string:
				fmt.Fprintln(out, ui.Addr(v))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(contractsCmd)
}
