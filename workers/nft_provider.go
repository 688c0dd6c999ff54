// workers/nft_provider.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// ProviderClient talks to the NFT provider service that fronts the contract
// (balanceOf / tokenOfOwnerByIndex / tokenURI / ownerOf / mint). It
// implements services.NFTContract.
type ProviderClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewProviderClient builds a client from NFT_PROVIDER_URL and
// NFT_SERVICE_TOKEN. Returns nil when no provider is configured — callers
// treat that as degraded (local-only) mode, not an error.
func NewProviderClient() *ProviderClient {
	baseURL := os.Getenv("NFT_PROVIDER_URL")
	if baseURL == "" {
		log.Println("⚠️  NFT_PROVIDER_URL not set — running without wallet discovery")
		return nil
	}
	token := os.Getenv("NFT_SERVICE_TOKEN")

	return &ProviderClient{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *ProviderClient) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse provider URL: %w", err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call NFT provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("NFT provider returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode NFT provider response: %w", err)
	}
	return nil
}

func (c *ProviderClient) BalanceOf(ctx context.Context, owner string) (uint64, error) {
	var response struct {
		Balance uint64 `json:"balance"`
	}
	q := url.Values{"owner": {owner}}
	if err := c.get(ctx, "/api/v1/nft/balance", q, &response); err != nil {
		return 0, err
	}
	return response.Balance, nil
}

func (c *ProviderClient) TokenOfOwnerByIndex(ctx context.Context, owner string, index uint64) (uint64, error) {
	var response struct {
		TokenID uint64 `json:"token_id"`
	}
	q := url.Values{"owner": {owner}, "index": {fmt.Sprint(index)}}
	if err := c.get(ctx, "/api/v1/nft/token", q, &response); err != nil {
		return 0, err
	}
	return response.TokenID, nil
}

func (c *ProviderClient) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	var response struct {
		URI string `json:"uri"`
	}
	q := url.Values{"token_id": {fmt.Sprint(tokenID)}}
	if err := c.get(ctx, "/api/v1/nft/uri", q, &response); err != nil {
		return "", err
	}
	return response.URI, nil
}

func (c *ProviderClient) OwnerOf(ctx context.Context, tokenID uint64) (string, error) {
	var response struct {
		Owner string `json:"owner"`
	}
	q := url.Values{"token_id": {fmt.Sprint(tokenID)}}
	if err := c.get(ctx, "/api/v1/nft/owner", q, &response); err != nil {
		return "", err
	}
	return response.Owner, nil
}

// Mint asks the provider to mint a token to the given address. Part of the
// contract surface; the learning-achievement path mints locally and does not
// call it.
func (c *ProviderClient) Mint(ctx context.Context, to string) (uint64, error) {
	u, err := url.Parse(c.BaseURL + "/api/v1/nft/mint")
	if err != nil {
		return 0, fmt.Errorf("failed to parse provider URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", c.Token)
	q := req.URL.Query()
	q.Set("to", to)
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call NFT provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("NFT provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		TokenID uint64 `json:"token_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return 0, fmt.Errorf("failed to decode NFT provider response: %w", err)
	}
	return response.TokenID, nil
}
