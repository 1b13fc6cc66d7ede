package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rodneysbrain/pkg/utils"
)

// Gateway event type that marks a finished checkout; everything else is
// ignored by reconciliation.
const WebhookEventCheckoutCompleted = "checkout.session.completed"

type CheckoutGatewayConfig struct {
	APIKey        string // bearer key for the checkout API
	WebhookSecret string // secret used to sign webhook deliveries
	BaseURL       string // e.g. https://api.checkout.example.com
	ProviderName  string // stored on PaymentTransaction.Provider
}

type CheckoutParams struct {
	AmountMinor int64             `json:"amount"`
	Currency    string            `json:"currency"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type CheckoutState struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

type WebhookEvent struct {
	EventID   string `json:"id"`
	EventType string `json:"event_type"`
	SessionID string `json:"session_id"`
}

// PaymentGateway is the external checkout provider, reduced to the three
// calls this system makes.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	GetCheckoutState(ctx context.Context, sessionID string) (*CheckoutState, error)
	// VerifyWebhook checks the delivery signature and extracts the event.
	// Returns utils.ErrInvalidSignature on tampering.
	VerifyWebhook(body []byte, signature string) (*WebhookEvent, error)
}

type hostedCheckoutGateway struct {
	cfg        CheckoutGatewayConfig
	httpClient *http.Client
}

func NewHostedCheckoutGateway(cfg CheckoutGatewayConfig) PaymentGateway {
	return &hostedCheckoutGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *hostedCheckoutGateway) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := g.call(ctx, http.MethodPost, "/v1/checkout/sessions", params, &session); err != nil {
		return nil, err
	}
	if session.SessionID == "" || session.URL == "" {
		return nil, fmt.Errorf("checkout gateway: incomplete session response")
	}
	return &session, nil
}

func (g *hostedCheckoutGateway) GetCheckoutState(ctx context.Context, sessionID string) (*CheckoutState, error) {
	var state CheckoutState
	if err := g.call(ctx, http.MethodGet, "/v1/checkout/sessions/"+sessionID, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// VerifyWebhook compares an HMAC-SHA256 of the raw body against the hex
// signature header before trusting any field of the payload.
func (g *hostedCheckoutGateway) VerifyWebhook(body []byte, signature string) (*WebhookEvent, error) {
	signature = strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")

	mac := hmac.New(sha256.New, []byte(g.cfg.WebhookSecret))
	mac.Write(body)
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil || !hmac.Equal(provided, expected) {
		return nil, utils.ErrInvalidSignature
	}

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("checkout gateway: malformed webhook payload: %w", err)
	}
	return &event, nil
}

func (g *hostedCheckoutGateway) call(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(g.cfg.BaseURL, "/")+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("checkout gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("checkout gateway: %s %s returned %d: %s", method, path, resp.StatusCode, string(raw))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
