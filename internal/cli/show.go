package cli

import (
	"github.com/omamori-labs/omamori/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var yamlOut bool

	cmd := &cobra.Command{
		Use:   "show [profile]",
		Short: "Show the deployment record of a profile",
		Example: `  omamori show
  omamori show minimal --yaml`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			format, err := render.ParseOutputFormat(app.Config.JSON, yamlOut)
			if err != nil {
				return err
			}

			profile := ""
			if len(args) > 0 {
				profile = args[0]
			}

			result, err := app.ShowDeployment.Run(cmd.Context(), profile)
			if err != nil {
				return err
			}

			return render.NewDeploymentRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	cmd.Flags().BoolVar(&yamlOut, "yaml", false, "Output as YAML")

	return cmd
}
