package blockchain

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// first account of the default anvil mnemonic
const anvilKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var anvilAccount = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSimulatedDeployer_CreateAddresses(t *testing.T) {
	d, err := NewSimulatedDeployer(&config.RuntimeConfig{PrivateKey: anvilKey}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, anvilAccount, d.Deployer())
	assert.True(t, d.Simulated())

	ctx := context.Background()
	nft, err := d.Deploy(ctx, models.ContractSpec{Name: models.ContractNFT})
	require.NoError(t, err)
	vault, err := d.Deploy(ctx, models.ContractSpec{Name: models.ContractVault})
	require.NoError(t, err)

	// the addresses anvil assigns to the first deployments of this account
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", nft.Address)
	assert.Equal(t, "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512", vault.Address)
	assert.Empty(t, nft.TxHash)

	hash, err := d.Transact(ctx, models.ContractNFT, common.HexToAddress(nft.Address), "transferOwnership", common.HexToAddress(vault.Address))
	require.NoError(t, err)
	assert.Empty(t, hash)

	next, err := d.Deploy(ctx, models.ContractSpec{Name: "Other"})
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(anvilAccount, 3).Hex(), next.Address)
}

func TestSimulatedDeployer_EphemeralKey(t *testing.T) {
	a, err := NewSimulatedDeployer(&config.RuntimeConfig{}, quietLogger())
	require.NoError(t, err)
	b, err := NewSimulatedDeployer(&config.RuntimeConfig{}, quietLogger())
	require.NoError(t, err)
	assert.NotEqual(t, a.Deployer(), b.Deployer())
}

func TestSimulatedDeployer_InvalidKey(t *testing.T) {
	_, err := NewSimulatedDeployer(&config.RuntimeConfig{PrivateKey: "0x1234"}, quietLogger())
	assert.ErrorContains(t, err, "invalid private key")
}

func TestSimulatedDeployer_CancelledContext(t *testing.T) {
	d := NewSimulatedDeployerFrom(anvilAccount, 0, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Deploy(ctx, models.ContractSpec{Name: models.ContractNFT})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRPCDeployer_Requirements(t *testing.T) {
	_, err := NewRPCDeployer(&config.RuntimeConfig{PrivateKey: anvilKey}, nil, quietLogger())
	assert.Error(t, err)

	_, err = NewRPCDeployer(&config.RuntimeConfig{Network: &config.Network{Name: "localhost"}}, nil, quietLogger())
	assert.ErrorContains(t, err, "PRIVATE_KEY")

	d, err := NewRPCDeployer(&config.RuntimeConfig{
		Network:    &config.Network{Name: "localhost", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
		PrivateKey: anvilKey,
	}, nil, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, anvilAccount, d.Deployer())
	assert.False(t, d.Simulated())
}
