package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/falconrcm/console/internal/config"
	"github.com/falconrcm/console/internal/domain/agent"
	"github.com/falconrcm/console/internal/domain/claim"
	"github.com/falconrcm/console/internal/domain/encounter"
	"github.com/falconrcm/console/internal/domain/patient"
	"github.com/falconrcm/console/internal/platform/credstore"
	"github.com/falconrcm/console/internal/platform/gateway"
	"github.com/falconrcm/console/internal/query"
	"github.com/falconrcm/console/internal/session"
	"github.com/falconrcm/console/internal/uistate"
)

// app is the assembled client stack: one gateway, one session, one cache,
// and the per-resource bindings on top. Every command builds one.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	gw      *gateway.Gateway
	creds   *credstore.Store
	session *session.Store
	ui      *uistate.Store
	cache   *query.Cache

	patients   *patient.Bindings
	encounters *encounter.Bindings
	claims     *claim.Bindings
	agent      *agent.Bindings
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	creds := credstore.New(cfg.CredentialsFile)
	gw, err := gateway.New(gateway.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.Timeout()}, creds, logger,
		gateway.WithUnauthorizedHook(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run `falcon-console login` to sign in again.")
		}),
	)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		gw:      gw,
		creds:   creds,
		session: session.NewStore(gw, creds, logger),
		ui:      uistate.NewStore(),
		cache:   query.NewCache(logger),
	}
	a.patients = patient.NewBindings(patient.NewClient(gw), a.cache, a.ui)
	a.encounters = encounter.NewBindings(encounter.NewClient(gw), a.cache, a.ui)
	a.claims = claim.NewBindings(claim.NewClient(gw), a.cache, a.ui)
	a.agent = agent.NewBindings(agent.NewClient(gw), a.cache, a.ui)

	// Mutation outcomes surface on stderr the moment they land.
	a.ui.Subscribe(func() { drainNotifications(a.ui, os.Stderr) })
	return a, nil
}

// drainNotifications prints and consumes the pending queue. The queue is
// cleared before printing: clearing re-invokes subscribers synchronously,
// and the re-entrant call must find nothing left so each notification
// prints exactly once.
func drainNotifications(ui *uistate.Store, w io.Writer) {
	pending := ui.Notifications()
	if len(pending) == 0 {
		return
	}
	ui.ClearNotifications()
	for _, n := range pending {
		fmt.Fprintf(w, "[%s] %s: %s\n", n.Kind, n.Title, n.Message)
	}
}

// requireAuth restores the persisted session and fails the command when no
// valid session exists.
func (a *app) requireAuth(ctx context.Context) error {
	if err := a.session.CheckAuth(ctx); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not signed in; run `falcon-console login` first")
	}
	return nil
}
