package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gateway is the payment provider the platform delegates deposits and
// withdrawals to. Only the balance-crediting contract is ours; webhook
// semantics and signatures live on the provider side.
type Gateway interface {
	CreateCheckout(ctx context.Context, userID string, amountCents int64, reference string) (*Checkout, error)
	Payout(ctx context.Context, userID string, amountCents int64, reference string) error
}

// Checkout is the provider-hosted payment page the client is sent to.
type Checkout struct {
	CheckoutURL string `json:"checkout_url"`
	ProviderRef string `json:"provider_ref"`
}

// HTTPGateway talks JSON to the provider's REST API.
type HTTPGateway struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(baseURL, token string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type gatewayRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	Reference   string `json:"reference"`
}

func (g *HTTPGateway) CreateCheckout(ctx context.Context, userID string, amountCents int64, reference string) (*Checkout, error) {
	var out Checkout

	err := g.post(ctx, "/v1/checkouts", gatewayRequest{
		UserID:      userID,
		AmountCents: amountCents,
		Reference:   reference,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}

	return &out, nil
}

func (g *HTTPGateway) Payout(ctx context.Context, userID string, amountCents int64, reference string) error {
	err := g.post(ctx, "/v1/payouts", gatewayRequest{
		UserID:      userID,
		AmountCents: amountCents,
		Reference:   reference,
	}, nil)
	if err != nil {
		return fmt.Errorf("payout: %w", err)
	}

	return nil
}

func (g *HTTPGateway) post(ctx context.Context, path string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	res, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("call gateway: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("gateway http %d: %w", res.StatusCode, ErrGatewayFailure)
	}

	if out == nil {
		return nil
	}

	err = json.NewDecoder(res.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}

	return nil
}
