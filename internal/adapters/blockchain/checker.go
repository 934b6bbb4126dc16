package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/usecase"
)

// CheckerAdapter implements the BlockchainChecker interface using ethclient
type CheckerAdapter struct {
	client *ethclient.Client
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{}
}

// Connect establishes connection to the blockchain
func (c *CheckerAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// 0 accepts whatever the endpoint reports
	if chainID != 0 && networkChainID.Uint64() != chainID {
		client.Close()
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrInvalidChainID, chainID, networkChainID.Uint64())
	}

	c.client = client
	return nil
}

// CheckDeploymentExists checks if a contract exists at the given address
func (c *CheckerAdapter) CheckDeploymentExists(ctx context.Context, address string) (exists bool, reason string, err error) {
	if c.client == nil {
		return false, "", fmt.Errorf("not connected to blockchain")
	}
	if !common.IsHexAddress(address) {
		return false, "", fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := c.client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}

	if len(code) == 0 {
		return false, "no code at address", nil
	}

	return true, "", nil
}

// Close releases the RPC connection
func (c *CheckerAdapter) Close() {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

var _ usecase.BlockchainChecker = (*CheckerAdapter)(nil)
