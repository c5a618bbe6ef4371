// Package claim covers the claims resource family: claim lifecycle,
// payer submission, denial history, and eligibility verification.
package claim

import (
	"net/url"
	"strconv"
	"time"
)

type Claim struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patient_id"`
	EncounterID *string    `json:"encounter_id,omitempty"`
	Status      string     `json:"status"`
	PayerID     *string    `json:"payer_id,omitempty"`
	PayerName   *string    `json:"payer_name,omitempty"`
	TotalAmount float64    `json:"total_amount"`
	ICDCodes    []string   `json:"icd_codes,omitempty"`
	CPTCodes    []string   `json:"cpt_codes,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Denial is one payer rejection attached to a claim.
type Denial struct {
	ID         string     `json:"id"`
	ClaimID    string     `json:"claim_id"`
	DenialCode string     `json:"denial_code"`
	Reason     string     `json:"reason,omitempty"`
	DeniedAt   *time.Time `json:"denied_at,omitempty"`
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
	PatientID   string   `json:"patient_id"`
	EncounterID *string  `json:"encounter_id,omitempty"`
	PayerID     *string  `json:"payer_id,omitempty"`
	TotalAmount float64  `json:"total_amount"`
	ICDCodes    []string `json:"icd_codes,omitempty"`
	CPTCodes    []string `json:"cpt_codes,omitempty"`
}

type submitRequest struct {
	ClaimID       string `json:"claim_id"`
	SubmitToPayer bool   `json:"submit_to_payer"`
}

// EligibilityRequest asks the payer whether a patient is covered for a
// given date of service.
type EligibilityRequest struct {
	PatientID   string `json:"patient_id"`
	PayerID     string `json:"payer_id"`
	ServiceDate string `json:"service_date,omitempty"`
}

type EligibilityResult struct {
	Eligible      bool     `json:"eligible"`
	PatientID     string   `json:"patient_id"`
	PayerID       string   `json:"payer_id"`
	PlanName      *string  `json:"plan_name,omitempty"`
	CopayAmount   *float64 `json:"copay_amount,omitempty"`
	DeductibleMet *bool    `json:"deductible_met,omitempty"`
	Detail        *string  `json:"detail,omitempty"`
}
