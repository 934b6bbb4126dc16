//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/omamori-labs/omamori/internal/adapters"
	"github.com/omamori-labs/omamori/internal/config"
	"github.com/omamori-labs/omamori/internal/logging"
	"github.com/omamori-labs/omamori/internal/server"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		usecase.NewSystemClock,
		usecase.NewNotifier,
		wire.Bind(new(usecase.Clock), new(usecase.SystemClock)),

		// Use cases
		usecase.NewDeployContracts,
		usecase.NewShowDeployment,
		usecase.NewVerifyDeployment,
		usecase.NewListNetworks,
		usecase.NewSubmitKYC,
		usecase.NewGetKYC,
		usecase.NewConnectWallet,
		usecase.NewGetConnection,
		usecase.NewSavingsGoals,

		// HTTP API
		server.NewServer,

		// App
		NewApp,
	)
	return nil, nil
}
