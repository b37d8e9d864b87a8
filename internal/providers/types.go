package providers

import (
	"context"

	"github.com/chainkitlabs/chainkit/internal/model"
)

type Provider interface {
	Info() model.ProviderInfo
}

type NFTListingsRequest struct {
	Collection string
	Offset     int
	Limit      int
}

// NFTMarketProvider serves marketplace data for an NFT collection.
type NFTMarketProvider interface {
	Provider
	Listings(ctx context.Context, req NFTListingsRequest) ([]model.NFTListing, error)
	CollectionStats(ctx context.Context, collection string) (model.NFTCollectionStats, error)
}

type SwapQuoteRequest struct {
	ChainIndex      string
	FromToken       string
	ToToken         string
	AmountBaseUnits string
}

// SwapQuoteProvider quotes a token swap through a DEX aggregator.
type SwapQuoteProvider interface {
	Provider
	QuoteSwap(ctx context.Context, req SwapQuoteRequest) (model.SwapQuote, error)
}

type RiskScoreRequest struct {
	Address string
	Model   string
}

// RiskProvider scores a wallet address against an analytics model.
type RiskProvider interface {
	Provider
	ScoreAddress(ctx context.Context, req RiskScoreRequest) (model.RiskScore, error)
}
