package config

import (
	"strings"
)

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Examples: sepolia -> SEPOLIA_RPC_URL, base-sepolia -> BASE_SEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	return envName(networkName) + "_RPC_URL"
}

// GenerateTokenEnvVarName generates the env var name for a token address.
// Examples: usdc -> USDC_ADDRESS, jpyc -> JPYC_ADDRESS
func GenerateTokenEnvVarName(token string) string {
	return envName(token) + "_ADDRESS"
}

func envName(name string) string {
	name = strings.ToUpper(name)
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}
