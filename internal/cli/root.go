package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/omamori-labs/omamori/internal/adapters/progress"
	"github.com/omamori-labs/omamori/internal/app"
	"github.com/omamori-labs/omamori/internal/config"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// commands that run without loading the project
var standalone = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"intro":      true,
}

// long-running commands are not bound by --timeout
var unbounded = map[string]bool{
	"serve": true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "omamori",
		Short: "OMAMORI savings charm: deploy contracts and run the mock KYC/QR API",
		Long: `OMAMORI is a token-gated savings goal app. This tool deploys the charm NFT
and the savings vault, serves the mock KYC and wallet connection endpoints
used by the LINE bot, and tracks savings goals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if standalone[cmd.Name()] {
				return nil
			}

			projectRoot := config.FindProjectRoot()
			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(cmd, v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 && !unbounded[cmd.Name()] {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., localhost, sepolia)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort after this long (default 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "app",
		Title: "App Commands",
	})

	for _, cmd := range []*cobra.Command{NewDeployCmd(), NewShowCmd(), NewVerifyCmd(), NewNetworksCmd()} {
		cmd.GroupID = "deployment"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewServeCmd(), NewGoalCmd(), NewIntroCmd()} {
		cmd.GroupID = "app"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newProgressSink shows a spinner on an interactive terminal and stays quiet for --json
func newProgressSink(cmd *cobra.Command, v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("json") {
		return progress.NewNopSink()
	}
	interactive := !v.GetBool("non_interactive") && !color.NoColor
	return progress.NewSpinnerSink(cmd.ErrOrStderr(), interactive)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
