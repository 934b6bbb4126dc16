package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Network *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration

	// Command-specific settings (only populated for relevant commands)
	Simulate bool

	// Secrets resolved from the environment
	PrivateKey string

	// Resolved configurations
	ConfigSource  string // "omamori.toml" or "defaults"
	OmamoriConfig *OmamoriConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}
