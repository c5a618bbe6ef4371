package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/falconrcm/console/internal/uistate"
)

func TestDrainPrintsEachPendingNotificationOnce(t *testing.T) {
	ui := uistate.NewStore()
	ui.Success("Patient Created", "Patient has been successfully created.")
	ui.Error("Submission Failed", "Failed to submit claim.")

	var out bytes.Buffer
	drainNotifications(ui, &out)

	if got := strings.Count(out.String(), "Patient Created"); got != 1 {
		t.Errorf("first notification printed %d times, want 1\n%s", got, out.String())
	}
	if got := strings.Count(out.String(), "Submission Failed"); got != 1 {
		t.Errorf("second notification printed %d times, want 1\n%s", got, out.String())
	}
	if n := ui.Notifications(); len(n) != 0 {
		t.Errorf("queue not drained: %+v", n)
	}
}

func TestSubscribedDrainDoesNotDuplicate(t *testing.T) {
	ui := uistate.NewStore()
	var out bytes.Buffer
	ui.Subscribe(func() { drainNotifications(ui, &out) })

	ui.Success("Claim Submitted", "Claim has been submitted to the payer.")
	ui.Success("Patient Updated", "Patient information has been successfully updated.")
	ui.Error("Processing Failed", "Failed to process encounter.")

	for _, title := range []string{"Claim Submitted", "Patient Updated", "Processing Failed"} {
		if got := strings.Count(out.String(), title); got != 1 {
			t.Errorf("%q printed %d times, want 1\n%s", title, got, out.String())
		}
	}
}

func TestDrainWithEmptyQueueIsQuiet(t *testing.T) {
	ui := uistate.NewStore()
	var out bytes.Buffer
	drainNotifications(ui, &out)
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
}
