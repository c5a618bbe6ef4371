package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/falconrcm/console/internal/platform/credstore"
	"github.com/falconrcm/console/internal/platform/gateway"
)

// fixture wires a real gateway and credential store against a fake backend.
type fixture struct {
	store *Store
	gw    *gateway.Gateway
	creds *credstore.Store
	srv   *httptest.Server
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := credstore.New(filepath.Join(t.TempDir(), "credentials.json"))
	gw, err := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, creds, zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway.New: %v", err)
	}
	return &fixture{
		store: NewStore(gw, creds, zerolog.Nop()),
		gw:    gw,
		creds: creds,
		srv:   srv,
	}
}

func authBackend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["email"] == "admin@falcon.health" && req["password"] == "secret" {
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-123",
				"user":         map[string]string{"id": "u1", "email": "admin@falcon.health", "name": "Admin", "role": "admin"},
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized","detail":"Invalid email or password"}`))
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized","detail":"invalid token"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "admin@falcon.health", "name": "Admin Fresh", "role": "admin"})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t, authBackend(t))

	if err := f.store.Login(context.Background(), "admin@falcon.health", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if f.store.State() != Authenticated {
		t.Errorf("state = %v, want Authenticated", f.store.State())
	}
	if !f.store.IsAuthenticated() {
		t.Error("IsAuthenticated = false")
	}
	if f.store.Token() != "tok-123" {
		t.Errorf("session token = %q", f.store.Token())
	}
	if f.gw.Token() != "tok-123" {
		t.Errorf("gateway token = %q", f.gw.Token())
	}
	if u := f.store.CurrentUser(); u == nil || u.Email != "admin@falcon.health" {
		t.Errorf("user = %+v", u)
	}

	rec, _ := f.creds.Load()
	if rec.Token != "tok-123" || rec.User == nil {
		t.Errorf("persisted record = %+v", rec)
	}
}

func TestLoginFailure(t *testing.T) {
	f := newFixture(t, authBackend(t))

	err := f.store.Login(context.Background(), "admin@falcon.health", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if f.store.State() != Anonymous {
		t.Errorf("state = %v, want Anonymous", f.store.State())
	}
	if f.store.Error() != "Invalid email or password" {
		t.Errorf("error = %q", f.store.Error())
	}
	if f.gw.Token() != "" {
		t.Errorf("gateway token mutated: %q", f.gw.Token())
	}
}

func TestClearError(t *testing.T) {
	f := newFixture(t, authBackend(t))
	f.store.Login(context.Background(), "x@y.z", "wrong")
	if f.store.Error() == "" {
		t.Fatal("precondition: error should be set")
	}
	f.store.ClearError()
	if f.store.Error() != "" {
		t.Errorf("error = %q after ClearError", f.store.Error())
	}
	if f.store.State() != Anonymous {
		t.Errorf("ClearError changed state to %v", f.store.State())
	}
}

func TestCheckAuthNoPersistedToken(t *testing.T) {
	f := newFixture(t, authBackend(t))

	if err := f.store.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if f.store.State() != Anonymous {
		t.Errorf("state = %v, want Anonymous", f.store.State())
	}
	if f.store.Error() != "" {
		t.Errorf("unexpected error surfaced: %q", f.store.Error())
	}
}

func TestCheckAuthValidToken(t *testing.T) {
	f := newFixture(t, authBackend(t))
	stale, _ := json.Marshal(UserProfile{ID: "u1", Name: "Admin Stale"})
	f.creds.Save(credstore.Record{Token: "tok-123", User: stale})

	if err := f.store.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth: %v", err)
	}
	if f.store.State() != Authenticated {
		t.Fatalf("state = %v, want Authenticated", f.store.State())
	}
	// The freshly fetched profile overwrites the stale persisted one.
	if u := f.store.CurrentUser(); u == nil || u.Name != "Admin Fresh" {
		t.Errorf("user = %+v", u)
	}
	rec, _ := f.creds.Load()
	var saved UserProfile
	json.Unmarshal(rec.User, &saved)
	if saved.Name != "Admin Fresh" {
		t.Errorf("persisted user not refreshed: %+v", saved)
	}
}

func TestCheckAuthRejectedTokenIsSilent(t *testing.T) {
	f := newFixture(t, authBackend(t))
	f.creds.Save(credstore.Record{Token: "expired"})

	if err := f.store.CheckAuth(context.Background()); err != nil {
		t.Fatalf("CheckAuth should swallow a rejected token, got %v", err)
	}
	if f.store.State() != Anonymous {
		t.Errorf("state = %v, want Anonymous", f.store.State())
	}
	if f.store.Error() != "" {
		t.Errorf("rejected token must be silent, got error %q", f.store.Error())
	}
	if f.gw.Token() != "" {
		t.Errorf("gateway token = %q, want cleared", f.gw.Token())
	}
	rec, _ := f.creds.Load()
	if rec.Token != "" {
		t.Errorf("persisted token = %q, want cleared", rec.Token)
	}
}

func TestCheckAuthUnreachableKeepsCredentials(t *testing.T) {
	f := newFixture(t, authBackend(t))
	f.creds.Save(credstore.Record{Token: "tok-123"})
	f.srv.Close() // the API is down, not rejecting

	err := f.store.CheckAuth(context.Background())
	if err == nil {
		t.Fatal("expected a retryable error")
	}
	if f.store.State() != Anonymous {
		t.Errorf("state = %v, want Anonymous", f.store.State())
	}
	if f.store.Error() == "" {
		t.Error("expected a retryable error message")
	}
	if f.gw.Token() != "" {
		t.Errorf("gateway token = %q, want cleared", f.gw.Token())
	}
	// The credential file survives so the next boot can retry.
	rec, _ := f.creds.Load()
	if rec.Token != "tok-123" {
		t.Errorf("persisted token = %q, want tok-123", rec.Token)
	}
}

func TestLogoutSurvivesDeadServer(t *testing.T) {
	f := newFixture(t, authBackend(t))
	if err := f.store.Login(context.Background(), "admin@falcon.health", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	f.srv.Close() // server-side logout will fail; client must not care

	f.store.Logout(context.Background())

	if f.store.State() != Anonymous {
		t.Errorf("state = %v, want Anonymous", f.store.State())
	}
	if f.gw.Token() != "" {
		t.Errorf("gateway token = %q, want cleared", f.gw.Token())
	}
	if f.store.CurrentUser() != nil {
		t.Error("user should be cleared")
	}
	rec, _ := f.creds.Load()
	if rec.Token != "" || rec.User != nil {
		t.Errorf("persisted record not cleared: %+v", rec)
	}
}

func TestSubscribeSeesTransitions(t *testing.T) {
	f := newFixture(t, authBackend(t))
	var calls int
	f.store.Subscribe(func() { calls++ })

	f.store.Login(context.Background(), "admin@falcon.health", "secret")
	if calls < 2 { // Authenticating, then Authenticated
		t.Errorf("subscriber called %d times, want >= 2", calls)
	}
}

func TestClaimsOnOpaqueToken(t *testing.T) {
	f := newFixture(t, authBackend(t))
	f.gw.SetToken("not-a-jwt")
	if _, err := f.store.Claims(); err == nil {
		t.Error("expected error for opaque token")
	}
}
