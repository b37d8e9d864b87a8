package model

import "time"

const EnvelopeVersion = "v1"

type Envelope struct {
	Version  string       `json:"version"`
	Success  bool         `json:"success"`
	Data     any          `json:"data,omitempty"`
	Error    *ErrorBody   `json:"error"`
	Warnings []string     `json:"warnings,omitempty"`
	Meta     EnvelopeMeta `json:"meta"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type EnvelopeMeta struct {
	RequestID string           `json:"request_id"`
	Timestamp time.Time        `json:"timestamp"`
	Command   string           `json:"command"`
	Providers []ProviderStatus `json:"providers,omitempty"`
	Cache     CacheStatus      `json:"cache"`
	Partial   bool             `json:"partial"`
}

type ProviderStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

type CacheStatus struct {
	Status string `json:"status"`
	AgeMS  int64  `json:"age_ms"`
	Stale  bool   `json:"stale"`
}

type ProviderInfo struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	RequiresKey   bool     `json:"requires_key"`
	Capabilities  []string `json:"capabilities"`
	KeyEnvVarName string   `json:"key_env_var,omitempty"`
}

// DerivedAddress is the result of a chain-signature derivation: the
// chain-specific address controlled by (network, account, path) through the
// MPC signer, plus the child public key and signer routing metadata.
type DerivedAddress struct {
	Network            string `json:"network"`
	AccountID          string `json:"account_id"`
	Path               string `json:"path"`
	AddressType        string `json:"address_type"`
	Address            string `json:"address"`
	PublicKey          string `json:"public_key"`
	MPCSignerAccountID string `json:"mpc_signer_account_id"`
}

type DerivedPublicKey struct {
	Network   string `json:"network"`
	AccountID string `json:"account_id"`
	Path      string `json:"path"`
	PublicKey string `json:"public_key"`
}

// SignRequestPreview is the serialized MPC contract call an agent would
// submit to obtain a signature for a payload under a derivation path.
type SignRequestPreview struct {
	Network            string `json:"network"`
	MPCSignerAccountID string `json:"mpc_signer_account_id"`
	RPCURL             string `json:"rpc_url,omitempty"`
	Method             string `json:"method"`
	ArgsJSON           string `json:"args_json"`
	PayloadHex         string `json:"payload_hex"`
	Path               string `json:"path"`
	KeyVersion         uint32 `json:"key_version"`
}

// NetworkInfo is a network registry entry plus the public RPC endpoint an
// agent would submit sign requests through.
type NetworkInfo struct {
	Network            string `json:"network"`
	RootPublicKey      string `json:"root_public_key"`
	MPCSignerAccountID string `json:"mpc_signer_account_id"`
	RPCURL             string `json:"rpc_url,omitempty"`
}

type NFTListing struct {
	Provider   string  `json:"provider"`
	Collection string  `json:"collection"`
	TokenMint  string  `json:"token_mint"`
	TokenName  string  `json:"token_name,omitempty"`
	Seller     string  `json:"seller"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	SourceURL  string  `json:"source_url,omitempty"`
	FetchedAt  string  `json:"fetched_at"`
}

type NFTCollectionStats struct {
	Provider    string  `json:"provider"`
	Collection  string  `json:"collection"`
	FloorPrice  float64 `json:"floor_price"`
	ListedCount int64   `json:"listed_count"`
	VolumeAll   float64 `json:"volume_all"`
	Currency    string  `json:"currency"`
	FetchedAt   string  `json:"fetched_at"`
}

type SwapQuote struct {
	Provider        string `json:"provider"`
	ChainIndex      string `json:"chain_index"`
	FromToken       string `json:"from_token"`
	ToToken         string `json:"to_token"`
	FromSymbol      string `json:"from_symbol,omitempty"`
	ToSymbol        string `json:"to_symbol,omitempty"`
	AmountBaseUnits string `json:"amount_base_units"`
	EstimatedOut    string `json:"estimated_out"`
	EstimatedGasFee string `json:"estimated_gas_fee,omitempty"`
	PriceImpactPct  string `json:"price_impact_pct,omitempty"`
	FetchedAt       string `json:"fetched_at"`
}

type RiskScore struct {
	Provider  string  `json:"provider"`
	Address   string  `json:"address"`
	Model     string  `json:"model"`
	Score     float64 `json:"score"`
	Level     string  `json:"level,omitempty"`
	FetchedAt string  `json:"fetched_at"`
}
