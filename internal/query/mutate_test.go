package query

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/falconrcm/console/internal/platform/gateway"
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

func TestMutateInvalidatesAndNotifiesOnSuccess(t *testing.T) {
	c := NewCache(zerolog.Nop())
	notif := &fakeNotifier{}

	var fetches atomic.Int32
	Read(context.Background(), c, "patients", func(ctx context.Context) (string, error) {
		fetches.Add(1)
		return "stale", nil
	})

	_, err := Mutate(context.Background(), c, notif,
		Messages{SuccessTitle: "Patient Created", SuccessBody: "Patient has been successfully created.", ErrorTitle: "Creation Failed", ErrorFallback: "Failed to create patient."},
		func(ctx context.Context) (string, error) { return "new-id", nil },
		func(string) []string { return []string{"patients"} },
	)
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	// The list key was invalidated, so the next read refetches.
	Read(context.Background(), c, "patients", func(ctx context.Context) (string, error) {
		fetches.Add(1)
		return "fresh", nil
	})
	if fetches.Load() != 2 {
		t.Errorf("fetches = %d, want 2 (stale entry must be refetched)", fetches.Load())
	}

	if len(notif.got) != 1 || notif.got[0].kind != "success" || notif.got[0].title != "Patient Created" {
		t.Errorf("notifications = %+v", notif.got)
	}
}

func TestMutatePrefersServerDetailOnFailure(t *testing.T) {
	c := NewCache(zerolog.Nop())
	notif := &fakeNotifier{}

	apiErr := &gateway.APIError{Status: http.StatusUnprocessableEntity, Detail: "member_id already exists"}
	_, err := Mutate(context.Background(), c, notif,
		Messages{ErrorTitle: "Creation Failed", ErrorFallback: "Failed to create patient."},
		func(ctx context.Context) (string, error) { return "", apiErr },
		nil,
	)
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if len(notif.got) != 1 || notif.got[0].message != "member_id already exists" {
		t.Errorf("notifications = %+v", notif.got)
	}
}

func TestMutateFallsBackToGenericMessage(t *testing.T) {
	c := NewCache(zerolog.Nop())
	notif := &fakeNotifier{}

	_, err := Mutate(context.Background(), c, notif,
		Messages{ErrorTitle: "Submission Failed", ErrorFallback: "Failed to submit claim."},
		func(ctx context.Context) (string, error) { return "", errors.New("dial tcp: connection refused") },
		nil,
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if notif.got[0].message != "Failed to submit claim." {
		t.Errorf("message = %q", notif.got[0].message)
	}
}

func TestMutateDoesNotInvalidateOnFailure(t *testing.T) {
	c := NewCache(zerolog.Nop())
	var fetches atomic.Int32
	fetch := func(ctx context.Context) (string, error) {
		fetches.Add(1)
		return "v", nil
	}
	Read(context.Background(), c, "claims", fetch)

	Mutate(context.Background(), c, &fakeNotifier{},
		Messages{ErrorTitle: "x", ErrorFallback: "y"},
		func(ctx context.Context) (string, error) { return "", errors.New("nope") },
		func(string) []string { return []string{"claims"} },
	)

	Read(context.Background(), c, "claims", fetch)
	if fetches.Load() != 1 {
		t.Errorf("fetches = %d; failed mutation must not invalidate", fetches.Load())
	}
}
