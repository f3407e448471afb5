// Package shopify implements the outbound platform adapters against the
// Shopify admin GraphQL API: bulk-export submission and polling, JSONL
// result streaming, and product/variant creation.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/infrastructure/config"
)

const (
	// maxResponseSize limits response bodies to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB
)

// Client is a thin admin GraphQL client scoped per request by store
// credentials. One Client serves all stores; the domain and access token
// come from the Credentials passed to each call.
type Client struct {
	httpClient      *http.Client
	apiVersion      string
	vendor          string
	clientID        string
	clientSecret    string
	pollInterval    time.Duration
	pollMaxAttempts int
	logger          *zap.Logger

	// scheme is overridden in tests to point at a local server
	scheme string
}

// NewClient creates a platform client from the Shopify configuration
func NewClient(cfg *config.ShopifyConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		apiVersion:      cfg.APIVersion,
		vendor:          cfg.Vendor,
		clientID:        cfg.ClientID,
		clientSecret:    cfg.ClientSecret,
		pollInterval:    cfg.PollInterval,
		pollMaxAttempts: cfg.PollMaxAttempts,
		logger:          logger,
		scheme:          "https",
	}
}

// endpoint builds the admin GraphQL URL for a store domain
func (c *Client) endpoint(domain string) string {
	return fmt.Sprintf("%s://%s/admin/api/%s/graphql.json", c.scheme, domain, c.apiVersion)
}

// execute posts one GraphQL document and decodes the data envelope into out.
// Transport failures, HTTP errors and top-level GraphQL errors are returned
// as errors; mutation userErrors are left for the caller to interpret.
func (c *Client) execute(ctx context.Context, creds store.Credentials, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("shopify: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(creds.Domain), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("shopify: HTTP %d from %s", resp.StatusCode, creds.Domain)
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("shopify: failed to parse response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("shopify: graphql error: %s", strings.Join(msgs, "; "))
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("shopify: failed to parse data: %w", err)
		}
	}
	return nil
}

// download issues a plain GET against a bulk-result download URL. The URL
// is pre-signed by the platform, so no access token is attached.
func (c *Client) download(ctx context.Context, downloadURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify: download failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("shopify: download returned HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}
