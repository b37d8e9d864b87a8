package app

import (
	"context"
	"strings"
	"time"

	clierr "github.com/chainkitlabs/chainkit/internal/errors"
	"github.com/chainkitlabs/chainkit/internal/id"
	"github.com/chainkitlabs/chainkit/internal/model"
	"github.com/chainkitlabs/chainkit/internal/providers"
	"github.com/spf13/cobra"
)

func (s *runtimeState) newNFTCommand() *cobra.Command {
	root := &cobra.Command{Use: "nft", Short: "NFT marketplace data"}

	var collectionArg string
	var offset, limit int
	listingsCmd := &cobra.Command{
		Use:   "listings",
		Short: "List active listings for a collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := strings.ToLower(strings.TrimSpace(collectionArg))
			if collection == "" {
				return clierr.New(clierr.CodeUsage, "--collection is required")
			}
			req := providers.NFTListingsRequest{Collection: collection, Offset: offset, Limit: limit}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
				"collection": collection,
				"offset":     offset,
				"limit":      limit,
			})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, 60*time.Second, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				data, err := s.nftProvider.Listings(ctx, req)
				status := []model.ProviderStatus{{Name: s.nftProvider.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				return data, status, nil, false, err
			})
		},
	}
	listingsCmd.Flags().StringVar(&collectionArg, "collection", "", "Collection symbol (e.g. degods)")
	listingsCmd.Flags().IntVar(&offset, "offset", 0, "Listing offset")
	listingsCmd.Flags().IntVar(&limit, "limit", 20, "Maximum listings to return")
	_ = listingsCmd.MarkFlagRequired("collection")

	var statsCollectionArg string
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Collection floor price and volume",
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := strings.ToLower(strings.TrimSpace(statsCollectionArg))
			if collection == "" {
				return clierr.New(clierr.CodeUsage, "--collection is required")
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{"collection": collection})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, 5*time.Minute, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				data, err := s.nftProvider.CollectionStats(ctx, collection)
				status := []model.ProviderStatus{{Name: s.nftProvider.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				return data, status, nil, false, err
			})
		},
	}
	statsCmd.Flags().StringVar(&statsCollectionArg, "collection", "", "Collection symbol (e.g. degods)")
	_ = statsCmd.MarkFlagRequired("collection")

	root.AddCommand(listingsCmd)
	root.AddCommand(statsCmd)
	return root
}

func (s *runtimeState) newSwapCommand() *cobra.Command {
	root := &cobra.Command{Use: "swap", Short: "Swap quote commands"}

	var chainArg, fromArg, toArg, amountArg string
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Get a DEX aggregator swap quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			chainIndex := strings.TrimSpace(chainArg)
			if chainIndex == "" {
				return clierr.New(clierr.CodeUsage, "--chain is required")
			}
			fromToken, err := id.ParseEVMAddress(fromArg)
			if err != nil {
				return err
			}
			toToken, err := id.ParseEVMAddress(toArg)
			if err != nil {
				return err
			}
			amount := strings.TrimSpace(amountArg)
			if amount == "" {
				return clierr.New(clierr.CodeUsage, "--amount is required")
			}
			req := providers.SwapQuoteRequest{
				ChainIndex:      chainIndex,
				FromToken:       fromToken,
				ToToken:         toToken,
				AmountBaseUnits: amount,
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
				"chain":  chainIndex,
				"from":   fromToken,
				"to":     toToken,
				"amount": amount,
			})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, 15*time.Second, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				data, err := s.swapProvider.QuoteSwap(ctx, req)
				status := []model.ProviderStatus{{Name: s.swapProvider.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				return data, status, nil, false, err
			})
		},
	}
	quoteCmd.Flags().StringVar(&chainArg, "chain", "1", "Chain index (e.g. 1 for Ethereum)")
	quoteCmd.Flags().StringVar(&fromArg, "from-token", "", "Input token contract address")
	quoteCmd.Flags().StringVar(&toArg, "to-token", "", "Output token contract address")
	quoteCmd.Flags().StringVar(&amountArg, "amount", "", "Amount in base units")
	_ = quoteCmd.MarkFlagRequired("from-token")
	_ = quoteCmd.MarkFlagRequired("to-token")
	_ = quoteCmd.MarkFlagRequired("amount")

	root.AddCommand(quoteCmd)
	return root
}

func (s *runtimeState) newRiskCommand() *cobra.Command {
	root := &cobra.Command{Use: "risk", Short: "Wallet risk scoring"}

	var addressArg, modelArg string
	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Score a wallet address with a risk model (Pond key required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := id.ParseEVMAddress(addressArg)
			if err != nil {
				return err
			}
			req := providers.RiskScoreRequest{Address: address, Model: strings.TrimSpace(modelArg)}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
				"address": address,
				"model":   req.Model,
			})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, 5*time.Minute, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				data, err := s.riskProvider.ScoreAddress(ctx, req)
				status := []model.ProviderStatus{{Name: s.riskProvider.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				return data, status, nil, false, err
			})
		},
	}
	scoreCmd.Flags().StringVar(&addressArg, "address", "", "Wallet address to score")
	scoreCmd.Flags().StringVar(&modelArg, "model", "", "Risk model identifier (defaults to sybil)")
	_ = scoreCmd.MarkFlagRequired("address")

	root.AddCommand(scoreCmd)
	return root
}
