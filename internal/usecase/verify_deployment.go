package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/omamori-labs/omamori/internal/domain/config"
)

// ContractCheck is the on-chain status of a recorded contract
type ContractCheck struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Exists  bool   `json:"exists" yaml:"exists"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// VerifyDeploymentResult contains the result of verifying a record
type VerifyDeploymentResult struct {
	Path      string          `json:"path" yaml:"path"`
	Network   string          `json:"network" yaml:"network"`
	ChainID   uint64          `json:"chainId" yaml:"chainId"`
	Simulated bool            `json:"simulated" yaml:"simulated"`
	Checks    []ContractCheck `json:"checks" yaml:"checks"`
}

// AllVerified reports whether every recorded contract has code on-chain
func (r *VerifyDeploymentResult) AllVerified() bool {
	if r.Simulated {
		return false
	}
	for _, c := range r.Checks {
		if !c.Exists {
			return false
		}
	}
	return true
}

// VerifyDeployment checks that recorded addresses carry code
type VerifyDeployment struct {
	config   *config.RuntimeConfig
	show     *ShowDeployment
	networks NetworkResolver
	checker  BlockchainChecker
	sink     ProgressSink
}

// NewVerifyDeployment creates a new VerifyDeployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	show *ShowDeployment,
	networks NetworkResolver,
	checker BlockchainChecker,
	sink ProgressSink,
) *VerifyDeployment {
	return &VerifyDeployment{
		config:   cfg,
		show:     show,
		networks: networks,
		checker:  checker,
		sink:     sink,
	}
}

// Run verifies the record written by a profile
func (uc *VerifyDeployment) Run(ctx context.Context, profileName string) (*VerifyDeploymentResult, error) {
	defer uc.sink.Stop()

	shown, err := uc.show.Run(ctx, profileName)
	if err != nil {
		return nil, err
	}
	record := shown.Record

	result := &VerifyDeploymentResult{
		Path:      shown.Path,
		Network:   record.Network,
		ChainID:   record.ChainID,
		Simulated: record.Simulated,
	}

	names := make([]string, 0, len(record.Contracts))
	for name := range record.Contracts {
		names = append(names, name)
	}
	sort.Strings(names)

	if record.Simulated {
		for _, name := range names {
			result.Checks = append(result.Checks, ContractCheck{
				Name:    name,
				Address: record.Contracts[name],
				Reason:  "simulated deployment",
			})
		}
		return result, nil
	}

	network := uc.config.Network
	if network == nil || network.Name != record.Network {
		network, err = uc.networks.Resolve(ctx, record.Network)
		if err != nil {
			return nil, err
		}
	}
	if network.ChainID != record.ChainID {
		return nil, fmt.Errorf("record is for chain %d but network %s is chain %d",
			record.ChainID, network.Name, network.ChainID)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "connecting",
		Message: "Connecting to " + network.Name,
		Spinner: true,
	})
	if err := uc.checker.Connect(ctx, network.RPCURL, network.ChainID); err != nil {
		return nil, err
	}
	defer uc.checker.Close()

	for i, name := range names {
		addr := record.Contracts[name]
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "checking",
			Current: i + 1,
			Total:   len(names),
			Message: "Checking " + name,
			Spinner: true,
		})

		exists, reason, err := uc.checker.CheckDeploymentExists(ctx, addr)
		if err != nil {
			return nil, err
		}
		result.Checks = append(result.Checks, ContractCheck{
			Name:    name,
			Address: addr,
			Exists:  exists,
			Reason:  reason,
		})
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: "Verification complete"})
	return result, nil
}
