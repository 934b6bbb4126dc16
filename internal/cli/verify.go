package cli

import (
	"encoding/json"
	"fmt"

	"github.com/omamori-labs/omamori/internal/cli/render"
	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [profile]",
		Short: "Check that recorded contracts have code on-chain",
		Long: `Read a profile's deployment record and check that every recorded address
carries code on the record's network. Exits non-zero when any is missing.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProfiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			profile := ""
			if len(args) > 0 {
				profile = args[0]
			}

			result, err := app.VerifyDeployment.Run(cmd.Context(), profile)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else if err := render.NewVerifyRenderer(cmd.OutOrStdout()).Render(result); err != nil {
				return err
			}

			if !result.Simulated && !result.AllVerified() {
				return fmt.Errorf("%w: %s", domain.ErrVerificationFailed, result.Path)
			}
			return nil
		},
	}

	return cmd
}
