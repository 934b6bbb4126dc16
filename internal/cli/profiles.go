package cli

import (
	"github.com/omamori-labs/omamori/internal/app"
	"github.com/omamori-labs/omamori/internal/config"
	"github.com/spf13/cobra"
)

// profileArg returns the profile named on the command line. Without one, an
// interactive run asks; otherwise the default profile is used.
func profileArg(cmd *cobra.Command, app *app.App, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	cfg := app.Config
	if cfg.NonInteractive || cfg.JSON {
		return "", nil
	}

	names := config.ProfileNames(cfg.OmamoriConfig)
	if len(names) <= 1 {
		return "", nil
	}
	return app.Selector.SelectProfile(cmd.Context(), names)
}

// completeProfiles offers profile names for shell completion
func completeProfiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	omamoriConfig, _, err := config.LoadOmamoriConfig(config.FindProjectRoot())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return config.ProfileNames(omamoriConfig), cobra.ShellCompDirectiveNoFileComp
}
