package okxdex

import (
	"context"
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

type Client struct {
	http    *httpx.Client
	apiBase string
	apiKey  string
	now     func() time.Time
}

func New(httpClient *httpx.Client, apiKey string) *Client {
	return &Client{
		http:    httpClient,
		apiBase: registry.OKXDexBaseURL,
		apiKey:  apiKey,
		now:     time.Now,
	}
}

func (c *Client) Info() model.ProviderInfo {
	return model.ProviderInfo{
		Name:          "okxdex",
		Type:          "dex-aggregator",
		RequiresKey:   false,
		Capabilities:  []string{"swap.quote"},
		KeyEnvVarName: "CHAINKIT_OKX_API_KEY",
	}
}

type quoteResp struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		ToTokenAmount   string `json:"toTokenAmount"`
		EstimateGasFee  string `json:"estimateGasFee"`
		PriceImpactPct  string `json:"priceImpactPercentage"`
		FromToken       struct {
			TokenSymbol string `json:"tokenSymbol"`
		} `json:"fromToken"`
		ToToken struct {
			TokenSymbol string `json:"tokenSymbol"`
		} `json:"toToken"`
	} `json:"data"`
}

func (c *Client) QuoteSwap(ctx context.Context, req providers.SwapQuoteRequest) (model.SwapQuote, error) {
	if strings.TrimSpace(req.ChainIndex) == "" {
		return model.SwapQuote{}, clierr.New(clierr.CodeUsage, "chain index is required")
	}
	if strings.TrimSpace(req.FromToken) == "" || strings.TrimSpace(req.ToToken) == "" {
		return model.SwapQuote{}, clierr.New(clierr.CodeUsage, "from and to token addresses are required")
	}
	if strings.TrimSpace(req.AmountBaseUnits) == "" {
		return model.SwapQuote{}, clierr.New(clierr.CodeUsage, "amount in base units is required")
	}

	params := url.Values{}
	params.Set("chainId", req.ChainIndex)
	params.Set("fromTokenAddress", req.FromToken)
	params.Set("toTokenAddress", req.ToToken)
	params.Set("amount", req.AmountBaseUnits)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/quote?"+params.Encode(), nil)
	if err != nil {
		return model.SwapQuote{}, clierr.Wrap(clierr.CodeInternal, "build quote request", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("OK-ACCESS-KEY", c.apiKey)
	}

	var resp quoteResp
	if _, err := c.http.DoJSON(ctx, httpReq, &resp); err != nil {
		return model.SwapQuote{}, err
	}
	// OKX wraps errors in a 200 with a non-zero code.
	if resp.Code != "0" {
		return model.SwapQuote{}, clierr.Newf(clierr.CodeUnavailable, "okx dex error %s: %s", resp.Code, resp.Msg)
	}
	if len(resp.Data) == 0 {
		return model.SwapQuote{}, clierr.New(clierr.CodeUnavailable, "okx dex returned no quote")
	}

	quote := resp.Data[0]
	return model.SwapQuote{
		Provider:        "okxdex",
		ChainIndex:      req.ChainIndex,
		FromToken:       req.FromToken,
		ToToken:         req.ToToken,
		FromSymbol:      quote.FromToken.TokenSymbol,
		ToSymbol:        quote.ToToken.TokenSymbol,
		AmountBaseUnits: req.AmountBaseUnits,
		EstimatedOut:    quote.ToTokenAmount,
		EstimatedGasFee: quote.EstimateGasFee,
		PriceImpactPct:  quote.PriceImpactPct,
		FetchedAt:       c.now().UTC().Format(time.RFC3339),
	}, nil
}
