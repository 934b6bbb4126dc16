package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/omamori-labs/omamori/internal/domain"
	domainconfig "github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifyDeployment(t *testing.T) {
	ctx := context.Background()

	record := &models.DeploymentRecord{
		Network: "sepolia",
		ChainID: 11155111,
		Contracts: map[string]string{
			models.ContractNFT:   nftAddr.Hex(),
			models.ContractVault: vaultAddr.Hex(),
		},
		Timestamp: time.Now(),
	}

	t.Run("checks every contract", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Network = nil

		store := new(MockRecordStore)
		store.On("LoadRecord", mock.Anything, filepath.Join(cfg.ProjectRoot, "deployments.json")).Return(record, nil)

		networks := new(MockNetworkResolver)
		networks.On("Resolve", mock.Anything, "sepolia").Return(&domainconfig.Network{
			Name: "sepolia", ChainID: 11155111, RPCURL: "https://rpc.sepolia.example",
		}, nil)

		checker := new(MockChecker)
		checker.On("Connect", mock.Anything, "https://rpc.sepolia.example", uint64(11155111)).Return(nil)
		checker.On("CheckDeploymentExists", mock.Anything, nftAddr.Hex()).Return(true, "", nil)
		checker.On("CheckDeploymentExists", mock.Anything, vaultAddr.Hex()).Return(false, "no code at address", nil)

		sink := &MockProgressSink{}
		uc := usecase.NewVerifyDeployment(cfg, usecase.NewShowDeployment(cfg, store), networks, checker, sink)
		result, err := uc.Run(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 1, checker.closed)
		assert.Equal(t, 1, sink.stopped)

		require.Len(t, result.Checks, 2)
		assert.Equal(t, models.ContractNFT, result.Checks[0].Name)
		assert.True(t, result.Checks[0].Exists)
		assert.Equal(t, models.ContractVault, result.Checks[1].Name)
		assert.False(t, result.Checks[1].Exists)
		assert.Equal(t, "no code at address", result.Checks[1].Reason)
		assert.False(t, result.AllVerified())
	})

	t.Run("chain mismatch", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.Network = &domainconfig.Network{Name: "sepolia", ChainID: 1, RPCURL: "http://x"}

		store := new(MockRecordStore)
		store.On("LoadRecord", mock.Anything, mock.Anything).Return(record, nil)

		uc := usecase.NewVerifyDeployment(cfg, usecase.NewShowDeployment(cfg, store), new(MockNetworkResolver), new(MockChecker), &MockProgressSink{})
		_, err := uc.Run(ctx, "")
		assert.ErrorContains(t, err, "chain 11155111")
	})

	t.Run("simulated record is not checked", func(t *testing.T) {
		cfg := newTestConfig(t)
		simulated := *record
		simulated.Simulated = true

		store := new(MockRecordStore)
		store.On("LoadRecord", mock.Anything, mock.Anything).Return(&simulated, nil)
		checker := new(MockChecker)

		uc := usecase.NewVerifyDeployment(cfg, usecase.NewShowDeployment(cfg, store), new(MockNetworkResolver), checker, &MockProgressSink{})
		result, err := uc.Run(ctx, "")
		require.NoError(t, err)
		assert.True(t, result.Simulated)
		assert.False(t, result.AllVerified())
		checker.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing record", func(t *testing.T) {
		cfg := newTestConfig(t)
		store := new(MockRecordStore)
		store.On("LoadRecord", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		uc := usecase.NewVerifyDeployment(cfg, usecase.NewShowDeployment(cfg, store), new(MockNetworkResolver), new(MockChecker), &MockProgressSink{})
		_, err := uc.Run(ctx, "minimal")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListNetworks(t *testing.T) {
	networks := new(MockNetworkResolver)
	networks.On("Names").Return([]string{"localhost", "sepolia"})
	networks.On("Resolve", mock.Anything, "localhost").Return(&domainconfig.Network{Name: "localhost", ChainID: 31337}, nil)
	networks.On("Resolve", mock.Anything, "sepolia").Return(nil, assert.AnError)

	result, err := usecase.NewListNetworks(networks).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Networks, 2)
	assert.Equal(t, uint64(31337), result.Networks[0].ChainID)
	assert.NoError(t, result.Networks[0].Error)
	assert.Error(t, result.Networks[1].Error)
}
