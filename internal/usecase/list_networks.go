package usecase

import (
	"context"
)

// NetworkInfo is a configured network with its resolution status
type NetworkInfo struct {
	Name    string
	ChainID uint64
	RPCURL  string
	Error   error
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkInfo
}

// ListNetworks is the use case for listing configured networks
type ListNetworks struct {
	networks NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(networks NetworkResolver) *ListNetworks {
	return &ListNetworks{networks: networks}
}

// Run resolves every configured network
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	result := &ListNetworksResult{}

	for _, name := range uc.networks.Names() {
		info := NetworkInfo{Name: name}
		network, err := uc.networks.Resolve(ctx, name)
		if err != nil {
			info.Error = err
		} else {
			info.ChainID = network.ChainID
			info.RPCURL = network.RPCURL
		}
		result.Networks = append(result.Networks, info)
	}

	return result, nil
}
