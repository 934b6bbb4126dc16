package cli

import (
	"github.com/omamori-labs/omamori/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from omamori.toml",
		Long: `List all networks configured in the [networks] section of omamori.toml.

This command shows all available networks and fetches the chain ID of those
that don't declare one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
