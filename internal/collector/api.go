package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockVault/internal/model"
)

// APIClient implements Provider against the market-data REST API.
type APIClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAPIClient creates a new client with optional proxy support.
func NewAPIClient(baseURL, apiKey, proxyURL string) *APIClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &APIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *APIClient) Name() string { return "rest-api" }

func (c *APIClient) ListUniverse(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/universe", c.BaseURL)
	var result struct {
		Symbols []string `json:"symbols"`
	}
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("list universe: %w", err)
	}
	return result.Symbols, nil
}

func (c *APIClient) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.RawBar, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&start=%s&end=%s&adjust=hfq",
		c.BaseURL, url.QueryEscape(symbol),
		start.Format(model.DateFormat), end.Format(model.DateFormat))
	var rows []model.RawBar
	if err := c.getJSON(ctx, endpoint, &rows); err != nil {
		return nil, fmt.Errorf("get daily bars %s: %w", symbol, err)
	}
	return rows, nil
}

func (c *APIClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
