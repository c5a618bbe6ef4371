package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/falconrcm/console/internal/domain/claim"
	"github.com/falconrcm/console/internal/domain/encounter"
	"github.com/falconrcm/console/internal/domain/patient"
	"github.com/falconrcm/console/pkg/pagination"
)

// -- Patients --

func (s *Server) listPatients(c echo.Context) error {
	p := pagination.FromContext(c)
	search := strings.ToLower(c.QueryParam("search"))

	s.mu.Lock()
	matched := make([]patient.Patient, 0, len(s.patients))
	for _, pt := range s.patients {
		if search == "" || strings.Contains(strings.ToLower(pt.FullName()), search) {
			matched = append(matched, pt)
		}
	}
	s.mu.Unlock()

	lo, hi := p.Bounds(len(matched))
	return c.JSON(http.StatusOK, pagination.NewResponse(matched[lo:hi], len(matched), p))
}

func (s *Server) getPatient(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pt := range s.patients {
		if pt.ID == c.Param("id") {
			return c.JSON(http.StatusOK, pt)
		}
	}
	return apiError(c, http.StatusNotFound, "not_found", "Patient not found.")
}

func (s *Server) createPatient(c echo.Context) error {
	var in patient.CreateInput
	if err := c.Bind(&in); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed patient payload.")
	}
	if in.FirstName == "" || in.LastName == "" {
		return apiError(c, http.StatusUnprocessableEntity, "validation_error", "first_name and last_name are required.")
	}
	now := time.Now().UTC()
	pt := patient.Patient{
		ID:          uuid.NewString(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		PayerID:     in.PayerID,
		MemberID:    in.MemberID,
		CreatedAt:   &now,
	}
	s.mu.Lock()
	s.patients = append(s.patients, pt)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, pt)
}

func (s *Server) updatePatient(c echo.Context) error {
	var in patient.CreateInput
	if err := c.Bind(&in); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed patient payload.")
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.patients {
		if s.patients[i].ID == c.Param("id") {
			pt := &s.patients[i]
			pt.FirstName = in.FirstName
			pt.LastName = in.LastName
			pt.DateOfBirth = in.DateOfBirth
			pt.Gender = in.Gender
			pt.Email = in.Email
			pt.Phone = in.Phone
			pt.Address = in.Address
			pt.PayerID = in.PayerID
			pt.MemberID = in.MemberID
			pt.UpdatedAt = &now
			return c.JSON(http.StatusOK, *pt)
		}
	}
	return apiError(c, http.StatusNotFound, "not_found", "Patient not found.")
}

func (s *Server) deletePatient(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.patients {
		if s.patients[i].ID == c.Param("id") {
			s.patients = append(s.patients[:i], s.patients[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return apiError(c, http.StatusNotFound, "not_found", "Patient not found.")
}

func (s *Server) patientEncounters(c echo.Context) error {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]encounter.Encounter, 0)
	for _, e := range s.encounters {
		if e.PatientID == id {
			out = append(out, e)
		}
	}
	return c.JSON(http.StatusOK, out)
}

// -- Encounters --

func (s *Server) listEncounters(c echo.Context) error {
	p := pagination.FromContext(c)
	patientID := c.QueryParam("patient_id")
	status := c.QueryParam("status")

	s.mu.Lock()
	matched := make([]encounter.Encounter, 0, len(s.encounters))
	for _, e := range s.encounters {
		if patientID != "" && e.PatientID != patientID {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		matched = append(matched, e)
	}
	s.mu.Unlock()

	lo, hi := p.Bounds(len(matched))
	return c.JSON(http.StatusOK, pagination.NewResponse(matched[lo:hi], len(matched), p))
}

func (s *Server) getEncounter(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.encounters {
		if e.ID == c.Param("id") {
			return c.JSON(http.StatusOK, e)
		}
	}
	return apiError(c, http.StatusNotFound, "not_found", "Encounter not found.")
}

func (s *Server) createEncounter(c echo.Context) error {
	var in encounter.CreateInput
	if err := c.Bind(&in); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed encounter payload.")
	}
	if in.PatientID == "" {
		return apiError(c, http.StatusUnprocessableEntity, "validation_error", "patient_id is required.")
	}
	now := time.Now().UTC()
	e := encounter.Encounter{
		ID:             uuid.NewString(),
		PatientID:      in.PatientID,
		Status:         "pending",
		EncounterType:  in.EncounterType,
		ProviderName:   in.ProviderName,
		ChiefComplaint: in.ChiefComplaint,
		Notes:          in.Notes,
		ServiceDate:    in.ServiceDate,
		CreatedAt:      &now,
	}
	s.mu.Lock()
	s.encounters = append(s.encounters, e)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) updateEncounter(c echo.Context) error {
	var in encounter.CreateInput
	if err := c.Bind(&in); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed encounter payload.")
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.encounters {
		if s.encounters[i].ID == c.Param("id") {
			e := &s.encounters[i]
			e.EncounterType = in.EncounterType
			e.ProviderName = in.ProviderName
			e.ChiefComplaint = in.ChiefComplaint
			e.Notes = in.Notes
			e.ServiceDate = in.ServiceDate
			e.UpdatedAt = &now
			return c.JSON(http.StatusOK, *e)
		}
	}
	return apiError(c, http.StatusNotFound, "not_found", "Encounter not found.")
}

func (s *Server) processEncounter(c echo.Context) error {
	var req struct {
		ForceReprocess bool `json:"force_reprocess"`
	}
	_ = c.Bind(&req)
	return s.runEncounterProcessing(c, c.Param("id"), req.ForceReprocess)
}

// runEncounterProcessing fakes the AI coding pass: it stamps fixed billing
// codes on the encounter and flips it to processed.
func (s *Server) runEncounterProcessing(c echo.Context, id string, force bool) error {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.encounters {
		if s.encounters[i].ID != id {
			continue
		}
		e := &s.encounters[i]
		if e.Status == "processed" && !force {
			return apiError(c, http.StatusConflict, "already_processed", "Encounter has already been processed.")
		}
		e.Status = "processed"
		e.ICDCodes = []string{"E11.9"}
		e.CPTCodes = []string{"99214"}
		e.UpdatedAt = &now
		return c.JSON(http.StatusOK, encounter.ProcessResult{
			EncounterID: e.ID,
			PatientID:   e.PatientID,
			Status:      e.Status,
			ICDCodes:    e.ICDCodes,
			CPTCodes:    e.CPTCodes,
			Summary:     strptr("Established patient visit, moderate complexity."),
		})
	}
	return apiError(c, http.StatusNotFound, "not_found", "Encounter not found.")
}

// -- Claims --

func (s *Server) listClaims(c echo.Context) error {
	p := pagination.FromContext(c)
	patientID := c.QueryParam("patient_id")
	status := c.QueryParam("status")

	s.mu.Lock()
	matched := make([]claim.Claim, 0, len(s.claims))
	for _, cl := range s.claims {
		if patientID != "" && cl.PatientID != patientID {
			continue
		}
		if status != "" && cl.Status != status {
			continue
		}
		matched = append(matched, cl)
	}
	s.mu.Unlock()

	lo, hi := p.Bounds(len(matched))
	return c.JSON(http.StatusOK, pagination.NewResponse(matched[lo:hi], len(matched), p))
}

func (s *Server) getClaim(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cl := range s.claims {
		if cl.ID == c.Param("id") {
			return c.JSON(http.StatusOK, cl)
		}
	}
	return apiError(c, http.StatusNotFound, "not_found", "Claim not found.")
}

func (s *Server) createClaim(c echo.Context) error {
	var in claim.CreateInput
	if err := c.Bind(&in); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed claim payload.")
	}
	if in.PatientID == "" {
		return apiError(c, http.StatusUnprocessableEntity, "validation_error", "patient_id is required.")
	}
	now := time.Now().UTC()
	cl := claim.Claim{
		ID:          uuid.NewString(),
		PatientID:   in.PatientID,
		EncounterID: in.EncounterID,
		Status:      "draft",
		PayerID:     in.PayerID,
		TotalAmount: in.TotalAmount,
		ICDCodes:    in.ICDCodes,
		CPTCodes:    in.CPTCodes,
		CreatedAt:   &now,
	}
	s.mu.Lock()
	s.claims = append(s.claims, cl)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, cl)
}

func (s *Server) updateClaim(c echo.Context) error {
	var in claim.CreateInput
	if err := c.Bind(&in); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed claim payload.")
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.claims {
		if s.claims[i].ID == c.Param("id") {
			cl := &s.claims[i]
			cl.PayerID = in.PayerID
			cl.TotalAmount = in.TotalAmount
			cl.ICDCodes = in.ICDCodes
			cl.CPTCodes = in.CPTCodes
			cl.UpdatedAt = &now
			return c.JSON(http.StatusOK, *cl)
		}
	}
	return apiError(c, http.StatusNotFound, "not_found", "Claim not found.")
}

func (s *Server) submitClaim(c echo.Context) error {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.claims {
		if s.claims[i].ID != c.Param("id") {
			continue
		}
		cl := &s.claims[i]
		if cl.Status == "submitted" {
			return apiError(c, http.StatusConflict, "already_submitted", "Claim has already been submitted.")
		}
		cl.Status = "submitted"
		cl.SubmittedAt = &now
		cl.UpdatedAt = &now
		return c.JSON(http.StatusOK, *cl)
	}
	return apiError(c, http.StatusNotFound, "not_found", "Claim not found.")
}

func (s *Server) claimDenials(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.denials[c.Param("id")]
	if out == nil {
		out = []claim.Denial{}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) checkEligibility(c echo.Context) error {
	var req claim.EligibilityRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, "bad_request", "Malformed eligibility payload.")
	}
	if req.PatientID == "" || req.PayerID == "" {
		return apiError(c, http.StatusUnprocessableEntity, "validation_error", "patient_id and payer_id are required.")
	}
	return c.JSON(http.StatusOK, claim.EligibilityResult{
		Eligible:    true,
		PatientID:   req.PatientID,
		PayerID:     req.PayerID,
		PlanName:    strptr("PPO Standard"),
		CopayAmount: float64ptr(25),
	})
}

func float64ptr(f float64) *float64 { return &f }
