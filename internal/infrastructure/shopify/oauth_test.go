package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ExchangeToken(t *testing.T) {
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/oauth/access_token", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body tokenExchangeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "portal-app", body.ClientID)
		assert.Equal(t, "portal-secret", body.ClientSecret)
		assert.Equal(t, "auth-code", body.Code)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(tokenExchangeResponse{
			AccessToken: "shpat_fresh",
			Scope:       "read_orders,write_products",
		}))
	}))

	token, scope, err := client.ExchangeToken(context.Background(), creds.Domain, "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "shpat_fresh", token)
	assert.Equal(t, "read_orders,write_products", scope)
}

func TestClient_ExchangeToken_Rejected(t *testing.T) {
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_request"}`, http.StatusBadRequest)
	}))

	_, _, err := client.ExchangeToken(context.Background(), creds.Domain, "bad-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestClient_ExchangeToken_EmptyToken(t *testing.T) {
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))

	_, _, err := client.ExchangeToken(context.Background(), creds.Domain, "auth-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
}
