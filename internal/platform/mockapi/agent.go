package mockapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/falconrcm/console/internal/domain/agent"
)

// -- Agent --

func (s *Server) agentChat(c echo.Context) error {
	var req agent.ChatRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed chat payload.")
	}
	if req.Message == "" {
		return apiError(c, http.StatusUnprocessableEntity, "validation_error", "message is required.")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess *agent.ChatSession
	if req.SessionID != nil {
		sess = s.sessions[*req.SessionID]
	}
	if sess == nil {
		sess = &agent.ChatSession{SessionID: uuid.NewString(), CreatedAt: now}
		s.sessions[sess.SessionID] = sess
	}
	reply := fmt.Sprintf("Acknowledged: %q. (%d prior messages in this session.)", req.Message, len(sess.Messages))
	sess.Messages = append(sess.Messages,
		agent.ChatMessage{Role: "user", Content: req.Message, Timestamp: now},
		agent.ChatMessage{Role: "assistant", Content: reply, Timestamp: now},
	)
	sess.UpdatedAt = now

	return c.JSON(http.StatusOK, agent.ChatResponse{
		Response:  reply,
		SessionID: sess.SessionID,
		Timestamp: now,
	})
}

func (s *Server) agentSession(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[c.Param("id")]
	if sess == nil {
		return apiError(c, http.StatusNotFound, "not_found", "Chat session not found.")
	}
	return c.JSON(http.StatusOK, sess)
}

func (s *Server) deleteAgentSession(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[c.Param("id")]; !ok {
		return apiError(c, http.StatusNotFound, "not_found", "Chat session not found.")
	}
	delete(s.sessions, c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) agentProcessEncounter(c echo.Context) error {
	id := c.QueryParam("encounter_id")
	if id == "" {
		return apiError(c, http.StatusUnprocessableEntity, "validation_error", "encounter_id is required.")
	}
	return s.runEncounterProcessing(c, id, true)
}

func (s *Server) agentStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, agent.Status{
		Available: true,
		Model:     strptr("falcon-rcm-agent-v1"),
	})
}
