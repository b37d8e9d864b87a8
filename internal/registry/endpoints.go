package registry

import "strings"

const (
	// Provider API endpoints.
	MagicEdenBaseURL = "https://api-mainnet.magiceden.dev/v2"
	OKXDexBaseURL    = "https://www.okx.com/api/v5/dex/aggregator"
	PondBaseURL      = "https://api.cryptopond.xyz"

	// NEAR JSON-RPC endpoints, keyed by network below. The derivation core
	// never touches these; they are surfaced so agents know where to submit
	// the sign requests this CLI constructs.
	nearMainnetRPCURL = "https://rpc.mainnet.near.org"
	nearTestnetRPCURL = "https://rpc.testnet.near.org"
)

// NEARRPCURL returns the public JSON-RPC endpoint for a NEAR network.
func NEARRPCURL(network string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(network)) {
	case "mainnet":
		return nearMainnetRPCURL, true
	case "testnet":
		return nearTestnetRPCURL, true
	default:
		return "", false
	}
}
