package app

import (
	"log/slog"

	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/server"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector usecase.ProfileSelector

	// Use cases
	DeployContracts  *usecase.DeployContracts
	ShowDeployment   *usecase.ShowDeployment
	VerifyDeployment *usecase.VerifyDeployment
	ListNetworks     *usecase.ListNetworks
	SavingsGoals     *usecase.SavingsGoals

	// Background chat notifications
	Notifier *usecase.Notifier

	// HTTP API
	Server *server.Server
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector usecase.ProfileSelector,
	deployContracts *usecase.DeployContracts,
	showDeployment *usecase.ShowDeployment,
	verifyDeployment *usecase.VerifyDeployment,
	listNetworks *usecase.ListNetworks,
	savingsGoals *usecase.SavingsGoals,
	notifier *usecase.Notifier,
	srv *server.Server,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		Selector:         selector,
		DeployContracts:  deployContracts,
		ShowDeployment:   showDeployment,
		VerifyDeployment: verifyDeployment,
		ListNetworks:     listNetworks,
		SavingsGoals:     savingsGoals,
		Notifier:         notifier,
		Server:           srv,
	}, nil
}
