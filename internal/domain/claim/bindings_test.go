package claim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/falconrcm/console/internal/platform/gateway"
	"github.com/falconrcm/console/internal/query"
)

type recordedNotification struct {
	kind, title, message string
}

type fakeNotifier struct {
	got []recordedNotification
}

func (f *fakeNotifier) Success(title, message string) string {
	f.got = append(f.got, recordedNotification{"success", title, message})
	return "id"
}

func (f *fakeNotifier) Error(title, message string) string {
	f.got = append(f.got, recordedNotification{"error", title, message})
	return "id"
}

type backend struct {
	listCalls        atomic.Int32
	eligibilityCalls atomic.Int32
	failSubmit       bool
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /claims", func(w http.ResponseWriter, r *http.Request) {
		b.listCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"data":        []map[string]any{{"id": "c1", "patient_id": "p1", "status": "draft", "total_amount": 150.0}},
			"total":       1,
			"page":        1,
			"per_page":    10,
			"total_pages": 1,
		})
	})
	mux.HandleFunc("GET /claims/{id}/denials", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "d1", "claim_id": r.PathValue("id"), "denial_code": "CO-97", "reason": "bundled service"},
		})
	})
	mux.HandleFunc("POST /claims/{id}/submit", func(w http.ResponseWriter, r *http.Request) {
		if b.failSubmit {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"detail": "claim already submitted"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": r.PathValue("id"), "patient_id": "p1", "status": "submitted", "total_amount": 150.0})
	})
	mux.HandleFunc("POST /claims/check-eligibility", func(w http.ResponseWriter, r *http.Request) {
		b.eligibilityCalls.Add(1)
		var req EligibilityRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]any{"eligible": true, "patient_id": req.PatientID, "payer_id": req.PayerID})
	})
	return mux
}

func newFixture(t *testing.T, b *backend) (*Bindings, *fakeNotifier) {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	gw, err := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway.New: %v", err)
	}
	notif := &fakeNotifier{}
	return NewBindings(NewClient(gw), query.NewCache(zerolog.Nop()), notif), notif
}

func TestSubmitInvalidatesClaims(t *testing.T) {
	b := &backend{}
	bind, notif := newFixture(t, b)
	ctx := context.Background()

	if _, err := bind.List(ctx, ListParams{}); err != nil {
		t.Fatalf("List: %v", err)
	}

	submitted, err := bind.Submit(ctx, "c1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submitted.Status != "submitted" {
		t.Errorf("status = %q", submitted.Status)
	}

	if _, err := bind.List(ctx, ListParams{}); err != nil {
		t.Fatalf("List after submit: %v", err)
	}
	if b.listCalls.Load() != 2 {
		t.Errorf("list calls = %d, want 2 (submission must refresh claim lists)", b.listCalls.Load())
	}
	if len(notif.got) != 1 || notif.got[0].title != "Claim Submitted" {
		t.Errorf("notifications = %+v", notif.got)
	}
}

func TestSubmitFailureNotifiesWithServerDetail(t *testing.T) {
	b := &backend{failSubmit: true}
	bind, notif := newFixture(t, b)

	_, err := bind.Submit(context.Background(), "c1")
	if err == nil {
		t.Fatal("expected submit to fail")
	}
	if len(notif.got) != 1 || notif.got[0].kind != "error" || notif.got[0].message != "claim already submitted" {
		t.Errorf("notifications = %+v", notif.got)
	}
}

func TestCheckEligibilityLeavesCacheUntouched(t *testing.T) {
	b := &backend{}
	bind, notif := newFixture(t, b)
	ctx := context.Background()

	if _, err := bind.List(ctx, ListParams{}); err != nil {
		t.Fatalf("List: %v", err)
	}

	res, err := bind.CheckEligibility(ctx, EligibilityRequest{PatientID: "p1", PayerID: "bcbs"})
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if !res.Eligible {
		t.Error("expected eligible result")
	}

	if _, err := bind.List(ctx, ListParams{}); err != nil {
		t.Fatalf("List after eligibility check: %v", err)
	}
	if b.listCalls.Load() != 1 {
		t.Errorf("list calls = %d, want 1 (eligibility check must not invalidate claim data)", b.listCalls.Load())
	}
	if notif.got[len(notif.got)-1].title != "Eligibility Verified" {
		t.Errorf("notifications = %+v", notif.got)
	}
}

func TestDenialsReadThroughBinding(t *testing.T) {
	b := &backend{}
	bind, _ := newFixture(t, b)
	ctx := context.Background()

	denials, err := bind.Denials(ctx, "c1")
	if err != nil {
		t.Fatalf("Denials: %v", err)
	}
	if len(denials) != 1 || denials[0].DenialCode != "CO-97" {
		t.Errorf("denials = %+v", denials)
	}
}
