package claim

import (
	"context"
	"net/http"

	"github.com/falconrcm/console/internal/platform/gateway"
)

// Client is a thin wrapper over the gateway: path and parameter shaping
// only, no behavior.
type Client struct {
	gw *gateway.Gateway
}

func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

func (c *Client) List(ctx context.Context, p ListParams) (*gateway.Page[Claim], error) {
	var out gateway.Page[Claim]
	if err := c.gw.Request(ctx, http.MethodGet, "/claims", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Claim, error) {
	var out Claim
	if err := c.gw.Request(ctx, http.MethodGet, gateway.JoinPath("claims", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, in CreateInput) (*Claim, error) {
	var out Claim
	if err := c.gw.Request(ctx, http.MethodPost, "/claims", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, in CreateInput) (*Claim, error) {
	var out Claim
	if err := c.gw.Request(ctx, http.MethodPut, gateway.JoinPath("claims", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit sends the claim to its payer.
func (c *Client) Submit(ctx context.Context, id string) (*Claim, error) {
	var out Claim
	body := submitRequest{ClaimID: id, SubmitToPayer: true}
	if err := c.gw.Request(ctx, http.MethodPost, gateway.JoinPath("claims", id, "submit"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Denials fetches the denial history for a claim.
func (c *Client) Denials(ctx context.Context, id string) ([]Denial, error) {
	var out []Denial
	if err := c.gw.Request(ctx, http.MethodGet, gateway.JoinPath("claims", id, "denials"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckEligibility runs a real-time payer eligibility check. It is a
// verification action, not a claim write.
func (c *Client) CheckEligibility(ctx context.Context, req EligibilityRequest) (*EligibilityResult, error) {
	var out EligibilityResult
	if err := c.gw.Request(ctx, http.MethodPost, "/claims/check-eligibility", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
