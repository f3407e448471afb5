package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/store"
)

// tokenExchangeRequest is the OAuth access-token request body
type tokenExchangeRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
}

// tokenExchangeResponse is the OAuth access-token response body
type tokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ExchangeToken exchanges an installation authorization code for a
// permanent admin API access token. The shop domain comes from the OAuth
// callback and is normalized before use.
func (c *Client) ExchangeToken(ctx context.Context, domain, code string) (accessToken, scope string, err error) {
	domain = store.NormalizeDomain(domain)

	body, err := json.Marshal(tokenExchangeRequest{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Code:         code,
	})
	if err != nil {
		return "", "", fmt.Errorf("shopify: failed to marshal token request: %w", err)
	}

	url := fmt.Sprintf("%s://%s/admin/oauth/access_token", c.scheme, domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("shopify: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("shopify: token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", "", fmt.Errorf("shopify: failed to read token response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", "", fmt.Errorf("shopify: token exchange returned HTTP %d", resp.StatusCode)
	}

	var token tokenExchangeResponse
	if err := json.Unmarshal(respBody, &token); err != nil {
		return "", "", fmt.Errorf("shopify: failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", "", fmt.Errorf("shopify: token exchange returned no access token")
	}

	c.logger.Info("access token exchanged", zap.String("domain", domain))
	return token.AccessToken, token.Scope, nil
}
