package config

import "time"

// OmamoriConfig represents the omamori.toml project file
type OmamoriConfig struct {
	Networks  map[string]NetworkConfig `toml:"networks"`
	Tokens    map[string]string        `toml:"tokens"`
	Contracts ContractsConfig          `toml:"contracts"`
	Profiles  map[string]Profile       `toml:"profiles"`
	Server    ServerConfig             `toml:"server"`
	Line      LineConfig               `toml:"line"`
	KYC       KYCConfig                `toml:"kyc"`
}

// NetworkConfig is a single [networks.<name>] entry
type NetworkConfig struct {
	RPCURL      string `toml:"rpc_url"`
	ChainID     uint64 `toml:"chain_id,omitempty"`
	ExplorerURL string `toml:"explorer_url,omitempty"`
}

// ContractsConfig holds constructor parameters for the deployed contracts
type ContractsConfig struct {
	ArtifactsDir string `toml:"artifacts_dir,omitempty"`
	NFTName      string `toml:"nft_name,omitempty"`
	NFTSymbol    string `toml:"nft_symbol,omitempty"`
	NFTBaseURI   string `toml:"nft_base_uri,omitempty"`
	VaultToken   string `toml:"vault_token,omitempty"` // key into [tokens] or a literal address
}

// Profile is a named deployment configuration
type Profile struct {
	Name              string `toml:"-"`
	Output            string `toml:"output"`
	TransferOwnership bool   `toml:"transfer_ownership"`
	Verify            bool   `toml:"verify"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr     string   `toml:"addr,omitempty"`
	KYCDelay Duration `toml:"kyc_delay,omitempty"`
	QRDelay  Duration `toml:"qr_delay,omitempty"`
}

// LineConfig configures the chat-bot messaging integration
type LineConfig struct {
	ChannelAccessToken string `toml:"channel_access_token,omitempty"` //nolint:gosec // holds env var reference
	APIBaseURL         string `toml:"api_base_url,omitempty"`
	MaxRetries         int    `toml:"max_retries,omitempty"`
}

// KYCConfig configures the mock verification
type KYCConfig struct {
	Validity Duration `toml:"validity,omitempty"`
}

// Duration decodes TOML strings such as "2s" into a time.Duration
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
