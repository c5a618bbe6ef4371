package patient

import (
	"context"
	"net/http"

	"github.com/falconrcm/console/internal/domain/encounter"
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

func (c *Client) List(ctx context.Context, p ListParams) (*gateway.Page[Patient], error) {
	var out gateway.Page[Patient]
	if err := c.gw.Request(ctx, http.MethodGet, "/patients", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Patient, error) {
	var out Patient
	if err := c.gw.Request(ctx, http.MethodGet, gateway.JoinPath("patients", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, in CreateInput) (*Patient, error) {
	var out Patient
	if err := c.gw.Request(ctx, http.MethodPost, "/patients", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, in CreateInput) (*Patient, error) {
	var out Patient
	if err := c.gw.Request(ctx, http.MethodPut, gateway.JoinPath("patients", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.gw.Request(ctx, http.MethodDelete, gateway.JoinPath("patients", id), nil, nil, nil)
}

// Encounters fetches the patient's encounter sub-list.
func (c *Client) Encounters(ctx context.Context, id string) ([]encounter.Encounter, error) {
	var out []encounter.Encounter
	if err := c.gw.Request(ctx, http.MethodGet, gateway.JoinPath("patients", id, "encounters"), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
