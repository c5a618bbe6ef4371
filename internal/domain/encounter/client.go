package encounter

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

func (c *Client) List(ctx context.Context, p ListParams) (*gateway.Page[Encounter], error) {
	var out gateway.Page[Encounter]
	if err := c.gw.Request(ctx, http.MethodGet, "/encounters", p.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*Encounter, error) {
	var out Encounter
	if err := c.gw.Request(ctx, http.MethodGet, gateway.JoinPath("encounters", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, in CreateInput) (*Encounter, error) {
	var out Encounter
	if err := c.gw.Request(ctx, http.MethodPost, "/encounters", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, in CreateInput) (*Encounter, error) {
	var out Encounter
	if err := c.gw.Request(ctx, http.MethodPut, gateway.JoinPath("encounters", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Process triggers AI processing of the encounter's documentation.
func (c *Client) Process(ctx context.Context, id string, forceReprocess bool) (*ProcessResult, error) {
	var out ProcessResult
	body := processRequest{EncounterID: id, ForceReprocess: forceReprocess}
	if err := c.gw.Request(ctx, http.MethodPost, gateway.JoinPath("encounters", id, "process"), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
