// Package mockapi is an in-memory stand-in for the Falcon backend. It
// serves the full REST surface the console consumes, with seeded fixtures,
// so the CLI and integration tests can run without a real deployment.
package mockapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/falconrcm/console/internal/domain/agent"
	"github.com/falconrcm/console/internal/domain/claim"
	"github.com/falconrcm/console/internal/domain/encounter"
	"github.com/falconrcm/console/internal/domain/patient"
	"github.com/falconrcm/console/internal/session"
)

// Credentials accepted by the login endpoint.
const (
	Email    = "admin@falcon.health"
	Password = "falcon123"
)

type Server struct {
	echo   *echo.Echo
	logger zerolog.Logger

	mu         sync.Mutex
	tokens     map[string]bool
	patients   []patient.Patient
	encounters []encounter.Encounter
	claims     []claim.Claim
	denials    map[string][]claim.Denial
	sessions   map[string]*agent.ChatSession
}

func New(logger zerolog.Logger) *Server {
	s := &Server{
		logger:   logger,
		tokens:   make(map[string]bool),
		denials:  make(map[string][]claim.Denial),
		sessions: make(map[string]*agent.ChatSession),
	}
	s.seed()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())

	e.GET("/health", s.health)
	e.POST("/auth/login", s.login)

	api := e.Group("", s.requireToken)
	api.GET("/auth/me", s.me)
	api.POST("/auth/logout", s.logout)

	api.GET("/patients", s.listPatients)
	api.POST("/patients", s.createPatient)
	api.GET("/patients/:id", s.getPatient)
	api.PUT("/patients/:id", s.updatePatient)
	api.DELETE("/patients/:id", s.deletePatient)
	api.GET("/patients/:id/encounters", s.patientEncounters)

	api.GET("/encounters", s.listEncounters)
	api.POST("/encounters", s.createEncounter)
	api.GET("/encounters/:id", s.getEncounter)
	api.PUT("/encounters/:id", s.updateEncounter)
	api.POST("/encounters/:id/process", s.processEncounter)

	api.GET("/claims", s.listClaims)
	api.POST("/claims", s.createClaim)
	api.GET("/claims/:id", s.getClaim)
	api.PUT("/claims/:id", s.updateClaim)
	api.POST("/claims/:id/submit", s.submitClaim)
	api.GET("/claims/:id/denials", s.claimDenials)
	api.POST("/claims/check-eligibility", s.checkEligibility)

	api.POST("/ai/chat", s.agentChat)
	api.GET("/ai/chat/sessions/:id", s.agentSession)
	api.DELETE("/ai/chat/sessions/:id", s.deleteAgentSession)
	api.POST("/ai/chat/process-encounter", s.agentProcessEncounter)
	api.GET("/ai/status", s.agentStatus)

	s.echo = e
	return s
}

// Handler exposes the routing tree for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("mock api listening")
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// -- Auth --

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed login payload.")
	}
	if req.Email != Email || req.Password != Password {
		return apiError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	}
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = true
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": token,
		"user":         s.profile(),
	})
}

func (s *Server) me(c echo.Context) error {
	return c.JSON(http.StatusOK, s.profile())
}

func (s *Server) logout(c echo.Context) error {
	token := bearerToken(c)
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) profile() session.UserProfile {
	return session.UserProfile{
		ID:    "u-1",
		Email: Email,
		Name:  "Falcon Admin",
		Role:  "admin",
	}
}

func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		s.mu.Lock()
		ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			return apiError(c, http.StatusUnauthorized, "unauthorized", "Session expired or invalid.")
		}
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	const prefix = "Bearer "
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func apiError(c echo.Context, status int, code, detail string) error {
	return c.JSON(status, map[string]string{
		"error":     code,
		"detail":    detail,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func strptr(s string) *string { return &s }
