package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/easyeth/internal/config"
	"github.com/Mohsinsiddi/easyeth/internal/rpc"
	"github.com/Mohsinsiddi/easyeth/internal/ui"
)

var networksTimeout = config.ListProbeTimeout

var networksCmd = &cobra.Command{
	Use:     "networks",
	Short:   "List network profiles and probe their endpoints",
	Args:    cobra.NoArgs,
	GroupID: "setup",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		statuses := rpc.ProbeAll(ctx, cfg.Profiles, networksTimeout)

		active := ""
		if p, err := resolveProfile(ctx); err == nil {
			active = p.Name
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return ui.WriteJSON(out, lo.Map(statuses, func(s rpc.Status, _ int) map[string]any {
				return map[string]any{
					"name":      s.Profile.Name,
					"chainId":   s.Profile.ChainID,
					"url":       s.Profile.URL,
					"simulated": s.Profile.Simulated,
					"healthy":   s.Endpoint.Healthy,
					"block":     s.Endpoint.BlockNumber,
					"active":    s.Profile.Name == active,
				}
			}))
		}
		fmt.Fprint(out, ui.NetworksTable(statuses, active))

		missing := lo.Filter(cfg.Profiles, func(p config.Profile, _ int) bool {
			return p.RequiresCredential() && p.Credential == ""
		})
		if len(missing) > 0 {
			names := lo.Map(missing, func(p config.Profile, _ int) string { return p.Name })
			fmt.Fprintln(out, ui.Meta(fmt.Sprintf("%d profiles need a key: %v", len(names), names)))
		}
		return nil
	},
}

func init() {
	networksCmd.Flags().DurationVar(&networksTimeout, "timeout", networksTimeout, "per-endpoint probe timeout")
	rootCmd.AddCommand(networksCmd)
}
