package config

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/omamori-labs/omamori/internal/domain/config"
)

// ChainIDFetcher looks up the chain ID served by an RPC endpoint
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	networks map[string]config.NetworkConfig
	fetch    ChainIDFetcher
	mu       sync.RWMutex
	cache    map[string]uint64 // rpcURL -> chainID
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(networks map[string]config.NetworkConfig) *NetworkResolver {
	return &NetworkResolver{
		networks: networks,
		fetch:    FetchChainID,
		cache:    make(map[string]uint64),
	}
}

// WithFetcher replaces the RPC chain ID lookup
func (r *NetworkResolver) WithFetcher(fetch ChainIDFetcher) *NetworkResolver {
	r.fetch = fetch
	return r
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	nc, exists := r.networks[networkName]
	if !exists {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]", networkName, ConfigFile)
	}
	if nc.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url (set %s)", networkName, GenerateEnvVarName(networkName))
	}

	chainID := nc.ChainID
	if chainID == 0 {
		r.mu.RLock()
		cached, ok := r.cache[nc.RPCURL]
		r.mu.RUnlock()

		if ok {
			chainID = cached
		} else {
			fetched, err := r.fetch(ctx, nc.RPCURL)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
			}
			chainID = fetched

			r.mu.Lock()
			r.cache[nc.RPCURL] = chainID
			r.mu.Unlock()
		}
	}

	return &config.Network{
		Name:        networkName,
		ChainID:     chainID,
		RPCURL:      nc.RPCURL,
		ExplorerURL: nc.ExplorerURL,
	}, nil
}

// Names returns all configured network names, sorted
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FetchChainID asks the RPC endpoint for its chain ID
func FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}
