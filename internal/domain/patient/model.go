// Package patient is the client side of the patients resource family:
// typed records, thin endpoint wrappers, and the cached bindings the
// presentation layer consumes.
package patient

import (
	"net/url"
	"strconv"
	"time"
)

type Patient struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DateOfBirth   string     `json:"date_of_birth,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Address       *string    `json:"address,omitempty"`
	PayerID       *string    `json:"payer_id,omitempty"`
	PayerName     *string    `json:"payer_name,omitempty"`
	MemberID      *string    `json:"member_id,omitempty"`
	GroupNumber   *string    `json:"group_number,omitempty"`
	MedicalRecord *string    `json:"medical_record_number,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// ListParams are the supported patient list filters. The zero value lists
// the first page with server defaults.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// CreateInput is the write shape for creating or updating a patient.
type CreateInput struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth string  `json:"date_of_birth,omitempty"`
	Gender      *string `json:"gender,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	PayerID     *string `json:"payer_id,omitempty"`
	MemberID    *string `json:"member_id,omitempty"`
}
