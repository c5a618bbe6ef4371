package mockapi

import (
	"time"

	"github.com/falconrcm/console/internal/domain/claim"
	"github.com/falconrcm/console/internal/domain/encounter"
	"github.com/falconrcm/console/internal/domain/patient"
)

// seed loads a small, internally consistent fixture set: two patients, an
// encounter per patient, and one claim with a denial on record.
func (s *Server) seed() {
	now := time.Now().UTC()

	s.patients = []patient.Patient{
		{
			ID:          "pat-001",
			FirstName:   "Maria",
			LastName:    "Santos",
			DateOfBirth: "1984-03-12",
			Gender:      strptr("female"),
			Email:       strptr("maria.santos@example.com"),
			PayerID:     strptr("bcbs"),
			PayerName:   strptr("Blue Cross Blue Shield"),
			MemberID:    strptr("BCB889123"),
			CreatedAt:   &now,
		},
		{
			ID:          "pat-002",
			FirstName:   "James",
			LastName:    "Okafor",
			DateOfBirth: "1971-11-02",
			Gender:      strptr("male"),
			PayerID:     strptr("aetna"),
			PayerName:   strptr("Aetna"),
			MemberID:    strptr("AET445091"),
			CreatedAt:   &now,
		},
	}

	s.encounters = []encounter.Encounter{
		{
			ID:             "enc-001",
			PatientID:      "pat-001",
			Status:         "pending",
			EncounterType:  strptr("office_visit"),
			ProviderName:   strptr("Dr. Chen"),
			ChiefComplaint: strptr("Follow-up for type 2 diabetes"),
			ServiceDate:    "2026-08-20",
			CreatedAt:      &now,
		},
		{
			ID:           "enc-002",
			PatientID:    "pat-002",
			Status:       "processed",
			ProviderName: strptr("Dr. Patel"),
			ServiceDate:  "2026-08-18",
			ICDCodes:     []string{"I10"},
			CPTCodes:     []string{"99213"},
			CreatedAt:    &now,
		},
	}

	s.claims = []claim.Claim{
		{
			ID:          "clm-001",
			PatientID:   "pat-002",
			EncounterID: strptr("enc-002"),
			Status:      "denied",
			PayerID:     strptr("aetna"),
			PayerName:   strptr("Aetna"),
			TotalAmount: 185.50,
			ICDCodes:    []string{"I10"},
			CPTCodes:    []string{"99213"},
			CreatedAt:   &now,
		},
	}

	s.denials["clm-001"] = []claim.Denial{
		{
			ID:         "den-001",
			ClaimID:    "clm-001",
			DenialCode: "CO-29",
			Reason:     "The time limit for filing has expired.",
			DeniedAt:   &now,
		},
	}
}
