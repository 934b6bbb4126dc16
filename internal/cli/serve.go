package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the KYC, wallet connection and goals HTTP API",
		Long: `Serve the HTTP API used by the LINE bot:

  POST /api/kyc                    mock identity verification
  GET  /api/kyc?lineUserId=        verification status
  POST /api/qr                     record a wallet connection
  GET  /api/qr?userId=             last wallet connection
  GET  /api/goals/{userId}         savings goal progress
  POST /api/goals/{userId}/deposits
  GET  /api/health

Stops gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app.Log.Info("starting api", "addr", app.Server.Addr(), "config", app.Config.ConfigSource)
			err = app.Server.Run(ctx)
			app.Notifier.Wait()
			return err
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from omamori.toml, :8080)")

	return cmd
}
