// Package encounter covers the encounters resource family, including the
// AI processing action that extracts billing codes from encounter notes.
package encounter

import (
	"net/url"
	"strconv"
	"time"
)

type Encounter struct {
	ID             string     `json:"id"`
	PatientID      string     `json:"patient_id"`
	Status         string     `json:"status"`
	EncounterType  *string    `json:"encounter_type,omitempty"`
	ProviderName   *string    `json:"provider_name,omitempty"`
	ChiefComplaint *string    `json:"chief_complaint,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	ServiceDate    string     `json:"service_date,omitempty"`
	ICDCodes       []string   `json:"icd_codes,omitempty"`
	CPTCodes       []string   `json:"cpt_codes,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type ListParams struct {
	PatientID string
	Status    string
	Page      int
	PerPage   int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.PatientID != "" {
		v.Set("patient_id", p.PatientID)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return v
}

type CreateInput struct {
	PatientID      string  `json:"patient_id"`
	EncounterType  *string `json:"encounter_type,omitempty"`
	ProviderName   *string `json:"provider_name,omitempty"`
	ChiefComplaint *string `json:"chief_complaint,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	ServiceDate    string  `json:"service_date,omitempty"`
}

type processRequest struct {
	EncounterID    string `json:"encounter_id"`
	ForceReprocess bool   `json:"force_reprocess"`
}

// ProcessResult is the outcome of server-side AI processing of an encounter.
type ProcessResult struct {
	EncounterID string   `json:"encounter_id"`
	PatientID   string   `json:"patient_id,omitempty"`
	Status      string   `json:"status"`
	ICDCodes    []string `json:"icd_codes,omitempty"`
	CPTCodes    []string `json:"cpt_codes,omitempty"`
	Summary     *string  `json:"summary,omitempty"`
}
