//go:build unit

package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pinmarket/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.PaymentConfig{
		BaseURL:    baseURL,
		SecretKey:  "sk_test",
		Timeout:    2 * time.Second,
		MaxRetries: 2,
	})
}

func TestClient_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the transaction and returns the authorization", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "buyer@example.com", body["email"])
			assert.Equal(t, float64(5000), body["amount"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  true,
				"message": "Authorization URL created",
				"data": map[string]any{
					"authorization_url": "https://checkout.example.com/abc123",
					"access_code":       "abc123",
					"reference":         body["reference"],
				},
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		auth, err := client.Initialize(ctx, InitializeParams{
			Email:       "buyer@example.com",
			AmountCents: 5000,
			Reference:   "ORD-1",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://checkout.example.com/abc123", auth.AuthorizationURL)
		assert.Equal(t, "ORD-1", auth.Reference)
	})

	t.Run("envelope status false is a rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  false,
				"message": "Invalid amount",
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Initialize(ctx, InitializeParams{Email: "buyer@example.com", AmountCents: -1, Reference: "ORD-1"})
		assert.ErrorIs(t, err, ErrGatewayRejected)
	})

	t.Run("http error status is a rejection without retry", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "Invalid key"})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Initialize(ctx, InitializeParams{Email: "buyer@example.com", AmountCents: 5000, Reference: "ORD-1"})
		assert.ErrorIs(t, err, ErrGatewayRejected)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_Verify(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/ORD-1", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":           "success",
				"amount":           5000,
				"currency":         "NGN",
				"reference":        "ORD-1",
				"gateway_response": "Successful",
				"paid_at":          paidAt.Format(time.RFC3339),
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	v, err := client.Verify(ctx, "ORD-1")
	require.NoError(t, err)

	assert.Equal(t, VerifyStatusSuccess, v.Status)
	assert.Equal(t, int64(5000), v.AmountCents)
	assert.Equal(t, "ORD-1", v.Reference)
	require.NotNil(t, v.PaidAt)
	assert.True(t, paidAt.Equal(*v.PaidAt))
}

func TestClient_Refund(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/refund", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ORD-1", body["transaction"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Refund has been queued",
			"data":    map[string]any{"status": "pending", "amount": 5000},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	refund, err := client.Refund(ctx, "ORD-1", 5000)
	require.NoError(t, err)
	assert.Equal(t, "pending", refund.Status)
	assert.Equal(t, int64(5000), refund.AmountCents)
}

func TestClient_RetriesTransportFailures(t *testing.T) {
	ctx := context.Background()

	// The server closes the first connection without a response, then serves
	// the retry normally.
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"status": "success", "amount": 5000, "reference": "ORD-1"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	v, err := client.Verify(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, VerifyStatusSuccess, v.Status)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestClient_UnreachableGateway(t *testing.T) {
	ctx := context.Background()

	client := NewClient(config.PaymentConfig{
		BaseURL:    "http://127.0.0.1:1",
		SecretKey:  "sk_test",
		Timeout:    500 * time.Millisecond,
		MaxRetries: 0,
	})
	_, err := client.Verify(ctx, "ORD-1")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
