package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// SimulatedDeployer derives contract addresses the way CREATE would,
// without touching a chain
type SimulatedDeployer struct {
	from common.Address
	log  *slog.Logger

	mu    sync.Mutex
	nonce uint64
}

// NewSimulatedDeployer creates a simulated deployer. The deployer account is
// the configured private key, or an ephemeral one when none is set.
func NewSimulatedDeployer(cfg *config.RuntimeConfig, log *slog.Logger) (*SimulatedDeployer, error) {
	if cfg.PrivateKey != "" {
		key, err := ParsePrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		return NewSimulatedDeployerFrom(crypto.PubkeyToAddress(key.PublicKey), 0, log), nil
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	return NewSimulatedDeployerFrom(crypto.PubkeyToAddress(key.PublicKey), 0, log), nil
}

// NewSimulatedDeployerFrom creates a simulated deployer for a fixed account and starting nonce
func NewSimulatedDeployerFrom(from common.Address, nonce uint64, log *slog.Logger) *SimulatedDeployer {
	return &SimulatedDeployer{
		from:  from,
		nonce: nonce,
		log:   log,
	}
}

// Deploy returns the CREATE address of the next nonce
func (d *SimulatedDeployer) Deploy(ctx context.Context, spec models.ContractSpec) (*models.DeployedContract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	addr := crypto.CreateAddress(d.from, d.nonce)
	d.nonce++
	d.mu.Unlock()

	d.log.Debug("simulated deploy", "contract", spec.Name, "address", addr.Hex())
	return &models.DeployedContract{
		Name:    spec.Name,
		Address: addr.Hex(),
	}, nil
}

// Transact consumes a nonce and returns no transaction hash
func (d *SimulatedDeployer) Transact(ctx context.Context, contract string, to common.Address, method string, args ...any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.mu.Lock()
	d.nonce++
	d.mu.Unlock()

	d.log.Debug("simulated call", "contract", contract, "to", to.Hex(), "method", method)
	return "", nil
}

// Deployer returns the simulated deployer account
func (d *SimulatedDeployer) Deployer() common.Address {
	return d.from
}

// Simulated always returns true
// Close is a no-op; the simulated deployer holds no connection
func (d *SimulatedDeployer) Close() {}

func (d *SimulatedDeployer) Simulated() bool {
	return true
}

var _ usecase.ContractDeployer = (*SimulatedDeployer)(nil)
