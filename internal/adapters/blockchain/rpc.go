package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/domain/models"
	"github.com/omamori-labs/omamori/internal/usecase"
)

const (
	defaultReceiptTimeout = 2 * time.Minute
	receiptPollInterval   = time.Second
)

// RPCDeployer signs and sends legacy transactions through an RPC endpoint
type RPCDeployer struct {
	network   *config.Network
	key       *ecdsa.PrivateKey
	from      common.Address
	artifacts usecase.ArtifactLoader
	timeout   time.Duration
	log       *slog.Logger

	mu     sync.Mutex
	client *ethclient.Client
	nonce  *uint64
}

// NewRPCDeployer creates a deployer for the selected network
func NewRPCDeployer(cfg *config.RuntimeConfig, artifacts usecase.ArtifactLoader, log *slog.Logger) (*RPCDeployer, error) {
	if cfg.Network == nil {
		return nil, domain.ErrNoNetwork
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("PRIVATE_KEY is required to broadcast transactions")
	}

	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultReceiptTimeout
	}

	return &RPCDeployer{
		network:   cfg.Network,
		key:       key,
		from:      crypto.PubkeyToAddress(key.PublicKey),
		artifacts: artifacts,
		timeout:   timeout,
		log:       log,
	}, nil
}

// Deploy sends the creation transaction of a contract and waits for its receipt
func (d *RPCDeployer) Deploy(ctx context.Context, spec models.ContractSpec) (*models.DeployedContract, error) {
	artifact, err := d.artifacts.Load(ctx, spec.Name)
	if err != nil {
		return nil, err
	}

	args, err := artifact.ABI.Pack("", spec.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor args: %w", err)
	}
	data := append(append([]byte{}, artifact.Bytecode...), args...)

	receipt, err := d.send(ctx, nil, data)
	if err != nil {
		return nil, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return nil, fmt.Errorf("%w: receipt of %s has no contract address", domain.ErrDeploymentFailed, receipt.TxHash.Hex())
	}

	return &models.DeployedContract{
		Name:    spec.Name,
		Address: receipt.ContractAddress.Hex(),
		TxHash:  receipt.TxHash.Hex(),
	}, nil
}

// Transact calls method on a deployed contract and waits for the receipt
func (d *RPCDeployer) Transact(ctx context.Context, contract string, to common.Address, method string, args ...any) (string, error) {
	artifact, err := d.artifacts.Load(ctx, contract)
	if err != nil {
		return "", err
	}

	data, err := artifact.ABI.Pack(method, args...)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s.%s: %w", contract, method, err)
	}

	receipt, err := d.send(ctx, &to, data)
	if err != nil {
		return "", err
	}
	return receipt.TxHash.Hex(), nil
}

// Deployer returns the signing account
func (d *RPCDeployer) Deployer() common.Address {
	return d.from
}

// Simulated always returns false
func (d *RPCDeployer) Simulated() bool {
	return false
}

// Close releases the RPC connection
func (d *RPCDeployer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.client != nil {
		d.client.Close()
		d.client = nil
	}
}

func (d *RPCDeployer) connect(ctx context.Context) (*ethclient.Client, error) {
	if d.client != nil {
		return d.client, nil
	}

	client, err := ethclient.DialContext(ctx, d.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if d.network.ChainID != 0 && chainID.Uint64() != d.network.ChainID {
		client.Close()
		return nil, fmt.Errorf("%w: expected %d, got %d", domain.ErrInvalidChainID, d.network.ChainID, chainID.Uint64())
	}

	d.client = client
	return client, nil
}

func (d *RPCDeployer) send(ctx context.Context, to *common.Address, data []byte) (*types.Receipt, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	client, err := d.connect(ctx)
	if err != nil {
		return nil, err
	}

	if d.nonce == nil {
		n, err := client.PendingNonceAt(ctx, d.from)
		if err != nil {
			return nil, fmt.Errorf("failed to get nonce: %w", err)
		}
		d.nonce = &n
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From: d.from,
		To:   to,
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gas += gas / 5

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    *d.nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       to,
		Value:    big.NewInt(0),
		Data:     data,
	})

	signer := types.LatestSignerForChainID(new(big.Int).SetUint64(d.network.ChainID))
	signed, err := types.SignTx(tx, signer, d.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	*d.nonce++
	d.log.Debug("sent transaction", "hash", signed.Hash().Hex(), "nonce", signed.Nonce(), "gas", gas)

	return d.waitReceipt(ctx, client, signed.Hash())
}

func (d *RPCDeployer) waitReceipt(ctx context.Context, client *ethclient.Client, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return nil, fmt.Errorf("%w: transaction %s reverted", domain.ErrDeploymentFailed, hash.Hex())
			}
			return receipt, nil
		case !errors.Is(err, ethereum.NotFound):
			return nil, fmt.Errorf("failed to get receipt for %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for receipt of %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

var _ usecase.ContractDeployer = (*RPCDeployer)(nil)
