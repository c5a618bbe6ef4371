// Package gateway is the single egress point for Falcon RCM API traffic.
// Every outbound request goes through Gateway.Request, which owns bearer
// token injection, the fixed request timeout, and the global handling of
// unauthorized responses. Resource packages under internal/domain add only
// verb and path shaping on top of it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TokenStore mirrors token changes into durable client storage. It is
// satisfied by credstore.Store; a nil store means token state is
// process-lifetime only (used in tests).
type TokenStore interface {
	SaveToken(token string) error
	ClearToken() error
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Gateway struct {
	base   *url.URL
	http   *http.Client
	store  TokenStore
	logger zerolog.Logger

	// onUnauthorized is the navigation-to-login hook. It runs after the
	// token has been cleared and before the rejection reaches the caller.
	onUnauthorized func()

	mu    sync.RWMutex
	token string
}

type Option func(*Gateway)

// WithUnauthorizedHook installs the callback invoked whenever any request
// comes back unauthorized. The hook observes an already-cleared token.
func WithUnauthorizedHook(fn func()) Option {
	return func(g *Gateway) { g.onUnauthorized = fn }
}

// JoinPath builds a request path from segments, escaping each one so an id
// containing reserved characters cannot change the request shape.
func JoinPath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

func New(cfg Config, store TokenStore, logger zerolog.Logger, opts ...Option) (*Gateway, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	g := &Gateway{
		base:   base,
		http:   &http.Client{Timeout: timeout},
		store:  store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// SetToken stores the token in process state and durable storage. Subsequent
// requests carry "Authorization: Bearer <token>".
func (g *Gateway) SetToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
	if g.store != nil {
		if err := g.store.SaveToken(token); err != nil {
			g.logger.Warn().Err(err).Msg("failed to persist token")
		}
	}
}

// ClearToken removes the token from process state and durable storage.
func (g *Gateway) ClearToken() {
	g.mu.Lock()
	g.token = ""
	g.mu.Unlock()
	if g.store != nil {
		if err := g.store.ClearToken(); err != nil {
			g.logger.Warn().Err(err).Msg("failed to clear persisted token")
		}
	}
}

func (g *Gateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// Request issues exactly one call against the configured base URL. body is
// JSON-encoded when non-nil; the response payload is decoded into out when
// out is non-nil. There are no retries: network and server errors propagate
// to the caller unmodified, except that an unauthorized response first
// clears the token and fires the unauthorized hook.
func (g *Gateway) Request(ctx context.Context, method, path string, params url.Values, body, out any) error {
	return g.do(ctx, g.Token(), true, method, path, params, body, out)
}

// RequestWithToken issues a call with an explicit bearer token instead of
// the live session token. Used for calls that must outlive the session,
// such as server-side logout after local state is already cleared. An
// unauthorized response here never touches session state.
func (g *Gateway) RequestWithToken(ctx context.Context, token, method, path string, params url.Values, body, out any) error {
	return g.do(ctx, token, false, method, path, params, body, out)
}

func (g *Gateway) do(ctx context.Context, token string, live bool, method, path string, params url.Values, body, out any) error {
	u := *g.base
	// path may carry escaped segments (see JoinPath), so it is tracked as
	// the raw form and decoded for the canonical one.
	raw := strings.TrimRight(u.EscapedPath(), "/") + path
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return fmt.Errorf("build request path: %w", err)
	}
	u.Path = decoded
	u.RawPath = raw
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	authed := token != ""
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.http.Do(req)
	if err != nil {
		g.logger.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("falcon api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	g.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	if resp.StatusCode >= 400 {
		apiErr := decodeAPIError(resp.StatusCode, data)
		// The global unauthorized side effect applies to calls made with the
		// live session token only: a rejected login attempt is a local
		// failure, not an expired session, and must not trigger navigation.
		if resp.StatusCode == http.StatusUnauthorized && authed && live {
			g.handleUnauthorized()
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// handleUnauthorized implements the cross-cutting 401 behavior: clear the
// token everywhere, then hand control to the navigation hook. Callers
// catching the subsequent error always observe an already-cleared token.
func (g *Gateway) handleUnauthorized() {
	g.ClearToken()
	if g.onUnauthorized != nil {
		g.onUnauthorized()
	}
}

// Health checks API liveness. It is the one non-resource endpoint, so it
// lives on the gateway itself.
func (g *Gateway) Health(ctx context.Context) error {
	return g.Request(ctx, http.MethodGet, "/health", nil, nil, nil)
}
