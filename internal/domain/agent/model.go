// Package agent is the client side of the AI billing assistant: chat
// sessions, agent status, and agent-driven encounter processing.
package agent

import "encoding/json"

type ChatRequest struct {
	Message   string          `json:"message"`
	SessionID *string         `json:"session_id,omitempty"`
	Context   json.RawMessage `json:"context,omitempty"`
}

type ChatResponse struct {
	Response         string          `json:"response"`
	SessionID        string          `json:"session_id"`
	Timestamp        string          `json:"timestamp,omitempty"`
	ExtractedData    json.RawMessage `json:"extracted_data,omitempty"`
	ConfidenceScore  *float64        `json:"confidence_score,omitempty"`
	SuggestedActions []string        `json:"suggested_actions,omitempty"`
}

type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ChatSession struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages,omitempty"`
	CreatedAt string        `json:"created_at,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty"`
}

// Status reports agent availability and the model behind it.
type Status struct {
	Available bool    `json:"available"`
	Model     *string `json:"model,omitempty"`
	Detail    *string `json:"detail,omitempty"`
}

// ProcessResult is the outcome of agent-driven encounter processing.
type ProcessResult struct {
	EncounterID string   `json:"encounter_id"`
	Status      string   `json:"status"`
	ICDCodes    []string `json:"icd_codes,omitempty"`
	CPTCodes    []string `json:"cpt_codes,omitempty"`
	Summary     *string  `json:"summary,omitempty"`
}
