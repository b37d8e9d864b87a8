package magiceden

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	clierr "github.com/chainkitlabs/chainkit/internal/errors"
	"github.com/chainkitlabs/chainkit/internal/httpx"
	"github.com/chainkitlabs/chainkit/internal/model"
	"github.com/chainkitlabs/chainkit/internal/providers"
	"github.com/chainkitlabs/chainkit/internal/registry"
)

const lamportsPerSOL = 1_000_000_000

type Client struct {
	http    *httpx.Client
	apiBase string
	apiKey  string
	now     func() time.Time
}

func New(httpClient *httpx.Client, apiKey string) *Client {
	return &Client{
		http:    httpClient,
		apiBase: registry.MagicEdenBaseURL,
		apiKey:  apiKey,
		now:     time.Now,
	}
}

func (c *Client) Info() model.ProviderInfo {
	return model.ProviderInfo{
		Name:          "magiceden",
		Type:          "nft-market",
		RequiresKey:   false,
		Capabilities:  []string{"nft.listings", "nft.stats"},
		KeyEnvVarName: "CHAINKIT_MAGICEDEN_API_KEY",
	}
}

type listingResp struct {
	TokenMint string  `json:"tokenMint"`
	Seller    string  `json:"seller"`
	Price     float64 `json:"price"`
	Token     struct {
		Name string `json:"name"`
	} `json:"token"`
}

func (c *Client) Listings(ctx context.Context, req providers.NFTListingsRequest) ([]model.NFTListing, error) {
	collection := strings.TrimSpace(req.Collection)
	if collection == "" {
		return nil, clierr.New(clierr.CodeUsage, "collection symbol is required")
	}
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	endpoint := fmt.Sprintf("%s/collections/%s/listings?offset=%d&limit=%d",
		c.apiBase, url.PathEscape(collection), offset, limit)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeInternal, "build listings request", err)
	}
	c.authorize(httpReq)

	var resp []listingResp
	if _, err := c.http.DoJSON(ctx, httpReq, &resp); err != nil {
		return nil, err
	}

	fetchedAt := c.now().UTC().Format(time.RFC3339)
	out := make([]model.NFTListing, 0, len(resp))
	for _, item := range resp {
		out = append(out, model.NFTListing{
			Provider:   "magiceden",
			Collection: collection,
			TokenMint:  item.TokenMint,
			TokenName:  item.Token.Name,
			Seller:     item.Seller,
			Price:      item.Price,
			Currency:   "SOL",
			SourceURL:  "https://magiceden.io/marketplace/" + url.PathEscape(collection),
			FetchedAt:  fetchedAt,
		})
	}
	return out, nil
}

type statsResp struct {
	Symbol      string  `json:"symbol"`
	FloorPrice  float64 `json:"floorPrice"`
	ListedCount int64   `json:"listedCount"`
	VolumeAll   float64 `json:"volumeAll"`
}

func (c *Client) CollectionStats(ctx context.Context, collection string) (model.NFTCollectionStats, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return model.NFTCollectionStats{}, clierr.New(clierr.CodeUsage, "collection symbol is required")
	}

	endpoint := fmt.Sprintf("%s/collections/%s/stats", c.apiBase, url.PathEscape(collection))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.NFTCollectionStats{}, clierr.Wrap(clierr.CodeInternal, "build stats request", err)
	}
	c.authorize(httpReq)

	var resp statsResp
	if _, err := c.http.DoJSON(ctx, httpReq, &resp); err != nil {
		return model.NFTCollectionStats{}, err
	}

	// The stats endpoint reports lamports; listings are already SOL.
	return model.NFTCollectionStats{
		Provider:    "magiceden",
		Collection:  collection,
		FloorPrice:  resp.FloorPrice / lamportsPerSOL,
		ListedCount: resp.ListedCount,
		VolumeAll:   resp.VolumeAll / lamportsPerSOL,
		Currency:    "SOL",
		FetchedAt:   c.now().UTC().Format(time.RFC3339),
	}, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
