package adapters

import (
	"log/slog"

	"github.com/google/wire"
	"github.com/omamori-labs/omamori/internal/adapters/blockchain"
	"github.com/omamori-labs/omamori/internal/adapters/cache"
	"github.com/omamori-labs/omamori/internal/adapters/contracts"
	"github.com/omamori-labs/omamori/internal/adapters/fs"
	"github.com/omamori-labs/omamori/internal/adapters/interactive"
	"github.com/omamori-labs/omamori/internal/adapters/messaging"
	internalconfig "github.com/omamori-labs/omamori/internal/config"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// ProvideContractDeployer picks the simulated deployer unless a private key
// is configured, a network is selected and --simulate is off
func ProvideContractDeployer(cfg *config.RuntimeConfig, artifacts *contracts.ArtifactLoaderAdapter, log *slog.Logger) (usecase.ContractDeployer, error) {
	if cfg.Simulate || cfg.PrivateKey == "" || cfg.Network == nil {
		return blockchain.NewSimulatedDeployer(cfg, log)
	}
	return blockchain.NewRPCDeployer(cfg, artifacts, log)
}

// ProvideMessenger returns the LINE messenger, or a no-op one without a channel token
func ProvideMessenger(cfg *config.RuntimeConfig, log *slog.Logger) usecase.Messenger {
	if cfg.OmamoriConfig.Line.ChannelAccessToken == "" {
		return messaging.NewNopMessenger(log)
	}
	return messaging.NewLineMessenger(cfg.OmamoriConfig.Line, log)
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRecordStoreAdapter,
	wire.Bind(new(usecase.DeploymentRecordStore), new(*fs.RecordStoreAdapter)),

	fs.NewGoalStoreAdapter,
	wire.Bind(new(usecase.GoalStore), new(*fs.GoalStoreAdapter)),
)

// CacheSet provides in-memory stores for the HTTP API
var CacheSet = wire.NewSet(
	cache.NewStoreAdapter,
	wire.Bind(new(usecase.KYCStore), new(*cache.StoreAdapter)),
	wire.Bind(new(usecase.ConnectionStore), new(*cache.StoreAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ProfileSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.CheckerAdapter)),

	contracts.NewArtifactLoaderAdapter,
	wire.Bind(new(usecase.ArtifactLoader), new(*contracts.ArtifactLoaderAdapter)),

	ProvideContractDeployer,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideMessenger,

	FSSet,
	CacheSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
