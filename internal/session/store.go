// Package session holds the authenticated identity of the console process:
// a small state machine over the bearer token, the current user profile,
// and the persisted credentials that survive restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/falconrcm/console/internal/platform/credstore"
	"github.com/falconrcm/console/internal/platform/gateway"
)

type State int

const (
	// Anonymous: no token; the only way forward is Login or CheckAuth.
	Anonymous State = iota
	// Authenticating: a login or boot-time check is in flight.
	Authenticating
	// Authenticated: token and user are set and the token has been accepted
	// by the backend at least once since the last transition.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// UserProfile is an immutable snapshot supplied by the backend. It is
// replaced wholesale on every successful authentication, never patched.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserProfile `json:"user"`
}

// Store is the persisted session store. The gateway owns the live token;
// the store reads it through the gateway, so the two can never drift.
// Stores are explicit instances wired at startup, not package singletons.
type Store struct {
	gw     *gateway.Gateway
	creds  *credstore.Store
	logger zerolog.Logger

	mu      sync.Mutex
	state   State
	user    *UserProfile
	err     string
	loading bool
	subs    []func()
}

func NewStore(gw *gateway.Gateway, creds *credstore.Store, logger zerolog.Logger) *Store {
	return &Store{gw: gw, creds: creds, logger: logger}
}

// Subscribe registers a callback invoked after every state transition.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) set(state State, user *UserProfile, errMsg string, loading bool) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.err = errMsg
	s.loading = loading
	s.mu.Unlock()
	s.notify()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token reads the live token from the gateway, the single source of truth.
func (s *Store) Token() string {
	return s.gw.Token()
}

func (s *Store) CurrentUser() *UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Authenticated && s.user != nil && s.gw.Token() != ""
}

// ClearError resets the error field without touching authentication state.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

// Login exchanges credentials for a token and profile. On success the token
// is mirrored into the gateway and the {token,user} pair is persisted. On
// failure the session settles back to Anonymous with a human-readable error
// and the gateway token is left untouched. Callers must not overlap Login
// calls; the store does not serialize them.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.set(Authenticating, nil, "", true)

	var resp loginResponse
	err := s.gw.Request(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		msg := gateway.ErrorDetail(err, "Login failed")
		s.set(Anonymous, nil, msg, false)
		return fmt.Errorf("login: %w", err)
	}

	s.persist(resp.AccessToken, &resp.User)
	s.gw.SetToken(resp.AccessToken)
	s.set(Authenticated, &resp.User, "", false)
	s.logger.Info().Str("user", resp.User.Email).Msg("logged in")
	return nil
}

// CheckAuth restores a persisted session at boot. No persisted token settles
// straight to Anonymous. A persisted token is mirrored into the gateway and
// verified against /auth/me; the fetched profile overwrites any stale
// persisted one. A rejected token clears everything silently — that is a
// stale session, not a user-facing error. A transport failure (server
// unreachable) keeps the persisted credentials for a later retry and
// surfaces a retryable error instead.
func (s *Store) CheckAuth(ctx context.Context) error {
	rec, err := s.creds.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load persisted session")
		s.set(Anonymous, nil, "", false)
		return nil
	}
	if rec.Token == "" {
		s.set(Anonymous, nil, "", false)
		return nil
	}

	s.gw.SetToken(rec.Token)
	s.set(Authenticating, nil, "", true)

	var user UserProfile
	err = s.gw.Request(ctx, http.MethodGet, "/auth/me", nil, nil, &user)
	if err == nil {
		s.persist(rec.Token, &user)
		s.set(Authenticated, &user, "", false)
		return nil
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		// The server answered and rejected the session. On 401 the gateway
		// has already cleared its token and storage; make sure the user
		// half of the record goes too. Silent: no error surfaced.
		s.gw.ClearToken()
		if cerr := s.creds.Clear(); cerr != nil {
			s.logger.Warn().Err(cerr).Msg("failed to clear persisted session")
		}
		s.set(Anonymous, nil, "", false)
		s.logger.Debug().Int("status", apiErr.Status).Msg("persisted session rejected")
		return nil
	}

	// Transport-level failure: do not punish the user for a dead network.
	// Drop the live token so no authenticated call goes out half-verified,
	// but restore the persisted record for the next boot or explicit retry.
	s.gw.ClearToken()
	if serr := s.creds.Save(rec); serr != nil {
		s.logger.Warn().Err(serr).Msg("failed to restore persisted session")
	}
	s.set(Anonymous, nil, "Cannot reach the Falcon API; check your connection and retry", false)
	return fmt.Errorf("check auth: %w", err)
}

// Logout always succeeds client-side. Local state is cleared first and
// unconditionally; the server-side invalidation is a detached best-effort
// call whose failure is logged and dropped.
func (s *Store) Logout(ctx context.Context) {
	token := s.gw.Token()
	s.gw.ClearToken()
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear persisted session")
	}
	s.set(Anonymous, nil, "", false)

	if token == "" {
		return
	}
	// Best-effort server notification with the captured token, result
	// ignored.
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.gw.RequestWithToken(ctx, token, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
			s.logger.Debug().Err(err).Msg("server-side logout failed")
		}
	}()
}

func (s *Store) persist(token string, user *UserProfile) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode user profile")
		raw = nil
	}
	if err := s.creds.Save(credstore.Record{Token: token, User: raw}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist session")
	}
}
