package cli

import (
	"github.com/omamori-labs/omamori/internal/cli/render"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy [profile]",
		Short: "Deploy the charm NFT and the savings vault",
		Long: `Deploy OmamoriNFT and OmamoriVault, optionally hand NFT ownership to the
vault, and write the deployment record. The record file is replaced on every run.

Profiles are configured in omamori.toml [profiles]. Built in:
  default   writes deployments.json, transfers ownership, verifies code
  minimal   writes deployment.json only

Without PRIVATE_KEY, or with --simulate, addresses are derived locally and no
transaction is sent.

Examples:
  omamori deploy
  omamori deploy minimal --network sepolia
  omamori deploy --simulate --json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			profile, err := profileArg(cmd, app, args)
			if err != nil {
				return err
			}

			result, err := app.DeployContracts.Run(cmd.Context(), usecase.DeployContractsParams{
				Profile: profile,
			})
			if err != nil {
				return err
			}

			format := render.OutputTable
			if app.Config.JSON {
				format = render.OutputJSON
			}
			return render.NewDeploymentRenderer(cmd.OutOrStdout(), format).RenderDeployResult(result)
		},
	}

	cmd.Flags().Bool("simulate", false, "Derive addresses locally without sending transactions")

	return cmd
}
