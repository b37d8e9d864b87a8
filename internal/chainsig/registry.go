package chainsig

import "sort"

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// NetworkConfig holds the compiled-in chain-signature constants for one NEAR
// network: the MPC network's aggregate root public key and the contract
// account that accepts signing requests.
type NetworkConfig struct {
	Network            string `json:"network"`
	RootPublicKey      string `json:"root_public_key"`
	MPCSignerAccountID string `json:"mpc_signer_account_id"`
}

// Registry is the read-only network → root-key mapping. It is built once at
// startup and injected into whatever derives addresses; concurrent lookups
// need no locking because entries are never mutated.
type Registry struct {
	networks map[string]NetworkConfig
}

func NewRegistry() *Registry {
	return &Registry{
		networks: map[string]NetworkConfig{
			NetworkMainnet: {
				Network:            NetworkMainnet,
				RootPublicKey:      "secp256k1:3tFRbMqmoa6AAALMrEFAYCEoHcqKxeW38YptwowBVBtXK1vo36HDbUWuR6EZmoK4JcH6HDkNMGGqP1ouV7VZUWya",
				MPCSignerAccountID: "v1.signer",
			},
			NetworkTestnet: {
				Network:            NetworkTestnet,
				RootPublicKey:      "secp256k1:4NfTiv3UsGahebgTaHyD9vF8KYKMBnfd6kh94mK6xv8fGBiJB8TBtFMP5WWXz6B89Ac1fbpzPwAvoyQebemHFwx3",
				MPCSignerAccountID: "v1.signer-prod.testnet",
			},
		},
	}
}

// Lookup returns the configuration for a network identifier, failing with
// UnsupportedNetworkError for anything outside the compiled-in set.
func (r *Registry) Lookup(network string) (NetworkConfig, error) {
	cfg, ok := r.networks[network]
	if !ok {
		return NetworkConfig{}, &UnsupportedNetworkError{Network: network}
	}
	return cfg, nil
}

// Networks lists all configured networks in stable order.
func (r *Registry) Networks() []NetworkConfig {
	out := make([]NetworkConfig, 0, len(r.networks))
	for _, cfg := range r.networks {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Network < out[j].Network })
	return out
}
