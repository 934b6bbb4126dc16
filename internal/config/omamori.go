package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/omamori-labs/omamori/internal/domain/config"
)

const (
	// ConfigFile is the project configuration file name
	ConfigFile = "omamori.toml"
	// DataDirName holds local state (goals, local config)
	DataDirName = ".omamori"
)

// Defaults for values omitted from omamori.toml
const (
	DefaultArtifactsDir = "out"
	DefaultNFTName      = "Omamori Charm"
	DefaultNFTSymbol    = "OMAMORI"
	DefaultNFTBaseURI   = "ipfs://omamori/"
	DefaultVaultToken   = "usdc"
	DefaultServerAddr   = ":8080"
	DefaultKYCDelay     = 2 * time.Second
	DefaultQRDelay      = 1 * time.Second
	DefaultKYCValidity  = 365 * 24 * time.Hour
	DefaultLineAPIURL   = "https://api.line.me"
	DefaultLineRetries  = 3
)

// Built-in profiles, one per legacy deployment script flavour
var builtinProfiles = map[string]config.Profile{
	"default": {Output: "deployments.json", TransferOwnership: true, Verify: true},
	"minimal": {Output: "deployment.json"},
}

// LoadEnvFiles loads .env files from the project root without overriding the environment
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadOmamoriConfig reads omamori.toml from projectRoot, expands ${VAR}
// references and fills defaults. A missing file yields the defaults.
func LoadOmamoriConfig(projectRoot string) (*config.OmamoriConfig, string, error) {
	cfg := &config.OmamoriConfig{}
	source := "defaults"

	path := filepath.Join(projectRoot, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
		}
		source = ConfigFile
	}

	expandEnv(cfg)
	applyDefaults(cfg)

	return cfg, source, nil
}

func expandEnv(cfg *config.OmamoriConfig) {
	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		cfg.Networks[name] = network
	}
	for name, addr := range cfg.Tokens {
		cfg.Tokens[name] = os.ExpandEnv(addr)
	}
	cfg.Contracts.NFTBaseURI = os.ExpandEnv(cfg.Contracts.NFTBaseURI)
	cfg.Contracts.VaultToken = os.ExpandEnv(cfg.Contracts.VaultToken)
	cfg.Line.ChannelAccessToken = os.ExpandEnv(cfg.Line.ChannelAccessToken)
}

func applyDefaults(cfg *config.OmamoriConfig) {
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if _, ok := cfg.Networks["localhost"]; !ok {
		cfg.Networks["localhost"] = config.NetworkConfig{RPCURL: "http://127.0.0.1:8545", ChainID: 31337}
	}

	if cfg.Tokens == nil {
		cfg.Tokens = make(map[string]string)
	}
	// Token addresses from the environment are always available
	for _, name := range []string{"usdc", "jpyc"} {
		if _, ok := cfg.Tokens[name]; !ok {
			if v := os.Getenv(GenerateTokenEnvVarName(name)); v != "" {
				cfg.Tokens[name] = v
			}
		}
	}

	if cfg.Contracts.ArtifactsDir == "" {
		cfg.Contracts.ArtifactsDir = DefaultArtifactsDir
	}
	if cfg.Contracts.NFTName == "" {
		cfg.Contracts.NFTName = DefaultNFTName
	}
	if cfg.Contracts.NFTSymbol == "" {
		cfg.Contracts.NFTSymbol = DefaultNFTSymbol
	}
	if cfg.Contracts.NFTBaseURI == "" {
		cfg.Contracts.NFTBaseURI = DefaultNFTBaseURI
	}
	if cfg.Contracts.VaultToken == "" {
		cfg.Contracts.VaultToken = DefaultVaultToken
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]config.Profile)
	}
	for name, profile := range builtinProfiles {
		if _, ok := cfg.Profiles[name]; !ok {
			cfg.Profiles[name] = profile
		}
	}
	for name, profile := range cfg.Profiles {
		profile.Name = name
		if profile.Output == "" {
			profile.Output = "deployments-" + name + ".json"
		}
		cfg.Profiles[name] = profile
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.KYCDelay.Duration == 0 {
		cfg.Server.KYCDelay.Duration = DefaultKYCDelay
	}
	if cfg.Server.QRDelay.Duration == 0 {
		cfg.Server.QRDelay.Duration = DefaultQRDelay
	}
	if cfg.KYC.Validity.Duration == 0 {
		cfg.KYC.Validity.Duration = DefaultKYCValidity
	}

	if cfg.Line.APIBaseURL == "" {
		cfg.Line.APIBaseURL = DefaultLineAPIURL
	}
	if cfg.Line.MaxRetries == 0 {
		cfg.Line.MaxRetries = DefaultLineRetries
	}
	if cfg.Line.ChannelAccessToken == "" {
		cfg.Line.ChannelAccessToken = os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")
	}
}
