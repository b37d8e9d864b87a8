package pond

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	clierr "github.com/chainkitlabs/chainkit/internal/errors"
	"github.com/chainkitlabs/chainkit/internal/httpx"
	"github.com/chainkitlabs/chainkit/internal/model"
	"github.com/chainkitlabs/chainkit/internal/providers"
	"github.com/chainkitlabs/chainkit/internal/registry"
)

// Known scoring models. Others are passed through unchanged so new models
// work without a client update.
const (
	ModelSybil    = "sybil"
	ModelSecurity = "wallet-security"
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
		apiBase: registry.PondBaseURL,
		apiKey:  apiKey,
		now:     time.Now,
	}
}

func (c *Client) Info() model.ProviderInfo {
	return model.ProviderInfo{
		Name:          "pond",
		Type:          "risk",
		RequiresKey:   true,
		Capabilities:  []string{"risk.score"},
		KeyEnvVarName: "CHAINKIT_POND_API_KEY",
	}
}

type scoreResp struct {
	Resp []struct {
		Items []struct {
			Address string  `json:"input_address"`
			Score   float64 `json:"score"`
			Level   string  `json:"level"`
		} `json:"items"`
	} `json:"resp_items"`
}

func (c *Client) ScoreAddress(ctx context.Context, req providers.RiskScoreRequest) (model.RiskScore, error) {
	if strings.TrimSpace(req.Address) == "" {
		return model.RiskScore{}, clierr.New(clierr.CodeUsage, "address is required")
	}
	if c.apiKey == "" {
		return model.RiskScore{}, clierr.New(clierr.CodeAuth, "pond requires an API key (set CHAINKIT_POND_API_KEY)")
	}
	modelName := req.Model
	if modelName == "" {
		modelName = ModelSybil
	}

	body, err := json.Marshal(map[string]any{
		"req_type":     "predict",
		"access_token": c.apiKey,
		"input_keys":   []string{req.Address},
		"model_id":     modelName,
	})
	if err != nil {
		return model.RiskScore{}, clierr.Wrap(clierr.CodeInternal, "encode score request", err)
	}

	var resp scoreResp
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if _, err := httpx.DoBodyJSON(ctx, c.http, http.MethodPost, c.apiBase+"/api/model/predict", body, headers, &resp); err != nil {
		return model.RiskScore{}, err
	}
	if len(resp.Resp) == 0 || len(resp.Resp[0].Items) == 0 {
		return model.RiskScore{}, clierr.New(clierr.CodeUnavailable, "pond returned no score")
	}

	item := resp.Resp[0].Items[0]
	return model.RiskScore{
		Provider:  "pond",
		Address:   req.Address,
		Model:     modelName,
		Score:     item.Score,
		Level:     item.Level,
		FetchedAt: c.now().UTC().Format(time.RFC3339),
	}, nil
}
