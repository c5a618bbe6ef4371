package agent

import (
	"context"
	"net/http"
	"net/url"

	"github.com/falconrcm/console/internal/platform/gateway"
)

// Client is a thin wrapper over the gateway: path and parameter shaping
// only, no behavior. The assistant lives under /ai on the backend.
type Client struct {
	gw *gateway.Gateway
}

func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.gw.Request(ctx, http.MethodPost, "/ai/chat", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSession(ctx context.Context, id string) (*ChatSession, error) {
	var out ChatSession
	if err := c.gw.Request(ctx, http.MethodGet, gateway.JoinPath("ai", "chat", "sessions", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.gw.Request(ctx, http.MethodDelete, gateway.JoinPath("ai", "chat", "sessions", id), nil, nil, nil)
}

// ProcessEncounter asks the agent to process an encounter's documentation.
// The encounter is addressed by query parameter, not path.
func (c *Client) ProcessEncounter(ctx context.Context, encounterID string) (*ProcessResult, error) {
	var out ProcessResult
	params := url.Values{"encounter_id": {encounterID}}
	if err := c.gw.Request(ctx, http.MethodPost, "/ai/chat/process-encounter", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Status(ctx context.Context) (*Status, error) {
	var out Status
	if err := c.gw.Request(ctx, http.MethodGet, "/ai/status", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
