package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pinmarket/internal/pkg/config"
	"pinmarket/internal/pkg/errs"
)

// Transaction verdicts as reported by the gateway's verify endpoint.
const (
	VerifyStatusSuccess   = "success"
	VerifyStatusFailed    = "failed"
	VerifyStatusAbandoned = "abandoned"
	VerifyStatusPending   = "pending"
)

var (
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	ErrGatewayRejected    = errs.New("payment gateway rejected request")
)

type InitializeParams struct {
	Email       string
	AmountCents int64
	Reference   string
	CallbackURL string
}

type Authorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type Verification struct {
	Status          string
	AmountCents     int64
	Currency        string
	Reference       string
	GatewayResponse string
	PaidAt          *time.Time
}

type RefundResult struct {
	Status      string
	AmountCents int64
}

// Client talks to a Paystack-compatible gateway. Network failures are retried
// with backoff; HTTP-level rejections are not, since the gateway already saw
// the request.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	maxRetries int
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
	}
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) Initialize(ctx context.Context, p InitializeParams) (*Authorization, error) {
	body := map[string]any{
		"email":     p.Email,
		"amount":    p.AmountCents,
		"reference": p.Reference,
	}
	if p.CallbackURL != "" {
		body["callback_url"] = p.CallbackURL
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return nil, err
	}

	return &Authorization{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (c *Client) Verify(ctx context.Context, reference string) (*Verification, error) {
	var data struct {
		Status          string     `json:"status"`
		Amount          int64      `json:"amount"`
		Currency        string     `json:"currency"`
		Reference       string     `json:"reference"`
		GatewayResponse string     `json:"gateway_response"`
		PaidAt          *time.Time `json:"paid_at"`
	}
	if err := c.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &data); err != nil {
		return nil, err
	}

	return &Verification{
		Status:          data.Status,
		AmountCents:     data.Amount,
		Currency:        data.Currency,
		Reference:       data.Reference,
		GatewayResponse: data.GatewayResponse,
		PaidAt:          data.PaidAt,
	}, nil
}

func (c *Client) Refund(ctx context.Context, reference string, amountCents int64) (*RefundResult, error) {
	body := map[string]any{
		"transaction": reference,
		"amount":      amountCents,
	}

	var data struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	}
	if err := c.call(ctx, http.MethodPost, "/refund", body, &data); err != nil {
		return nil, err
	}

	return &RefundResult{Status: data.Status, AmountCents: data.Amount}, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "failed to marshal gateway request")
		}
	}

	resp, err := c.doWithRetry(ctx, method, path, payload)
	if err != nil {
		return errs.Mark(err, ErrGatewayUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.Mark(err, ErrGatewayUnavailable)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errs.Mark(errs.Wrap(err, "malformed gateway response"), ErrGatewayUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Status {
		return errs.Mark(
			errs.New(fmt.Sprintf("gateway returned %d: %s", resp.StatusCode, envelope.Message)),
			ErrGatewayRejected,
		)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errs.Mark(errs.Wrap(err, "malformed gateway response data"), ErrGatewayUnavailable)
		}
	}
	return nil
}

// doWithRetry retries transport failures only. A response of any HTTP status
// is returned to the caller untried again.
func (c *Client) doWithRetry(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, errs.Wrap(lastErr, "gateway request failed after retries")
}
