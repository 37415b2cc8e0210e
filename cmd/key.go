package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/ui"
	"github.com/Mohsinsiddi/easyeth/internal/wallet"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage signing keys stored in the OS keychain",
	Long: `Store a private key for a network profile in the OS keychain. The key is
used when that network is selected with --network and its environment
variable is unset.`,
	GroupID: "setup",
}

var keySetCmd = &cobra.Command{
	Use:   "set <network> [private-key]",
	Short: "Store the signing key for a network (reads stdin when omitted)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		network := args[0]
		if _, ok := cfg.Profile(network); !ok {
			return fmt.Errorf("unknown network %q", network)
		}

		hexKey := optional(args, 1, "")
		if hexKey == "" {
			fmt.Fprint(cmd.ErrOrStderr(), "private key: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no key given")
			}
			hexKey = strings.TrimSpace(line)
		}

		signer, err := wallet.FromHex(hexKey)
		if err != nil {
			return err
		}
		if _, err := openKeystore().Store(network, hexKey); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("key for "+network+" stored: "+signer.Address().Hex()))
		return nil
	},
}

var keyRmCmd = &cobra.Command{
	Use:   "rm <network>",
	Short: "Remove the stored key for a network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openKeystore().Delete(wallet.Ref(args[0])); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("key for "+args[0]+" removed"))
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyRmCmd)
	rootCmd.AddCommand(keyCmd)
}
