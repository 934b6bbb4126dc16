package models

import (
	"time"
)

// Contract names deployed by the pipeline
const (
	ContractNFT   = "OmamoriNFT"
	ContractVault = "OmamoriVault"
)

// DeploymentRecord is the JSON file written after a deployment run.
// Each run overwrites the previous record for the same profile.
type DeploymentRecord struct {
	Network      string            `json:"network" yaml:"network"`
	ChainID      uint64            `json:"chainId" yaml:"chainId"`
	Contracts    map[string]string `json:"contracts" yaml:"contracts"`
	Timestamp    time.Time         `json:"timestamp" yaml:"timestamp"`
	Profile      string            `json:"profile,omitempty" yaml:"profile,omitempty"`
	Deployer     string            `json:"deployer,omitempty" yaml:"deployer,omitempty"`
	Simulated    bool              `json:"simulated" yaml:"simulated"`
	Transactions map[string]string `json:"transactions,omitempty" yaml:"transactions,omitempty"`
}

// Address returns the recorded address of a contract
func (r *DeploymentRecord) Address(contract string) (string, bool) {
	if r == nil || r.Contracts == nil {
		return "", false
	}
	addr, ok := r.Contracts[contract]
	return addr, ok
}

// ContractSpec describes a single contract creation
type ContractSpec struct {
	Name string
	Args []any
}

// DeployedContract is the outcome of a contract creation
type DeployedContract struct {
	Name    string
	Address string
	TxHash  string
}
