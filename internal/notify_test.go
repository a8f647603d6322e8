package internal

import (
	"fmt"
	"strings"
	"testing"
)

// recordingNotifier captures reminder bodies instead of hitting the OS.
type recordingNotifier struct {
	bodies []string
	fail   bool
}

func (n *recordingNotifier) Notify(title, body string) error {
	if n.fail {
		return fmt.Errorf("notification daemon unavailable")
	}
	n.bodies = append(n.bodies, body)
	return nil
}

func TestDueReminders(t *testing.T) {
	today := date("2024-06-15")

	tests := []struct {
		name    string
		renewal string
		due     bool
	}{
		{"due today is not notified", "2024-06-15", false},
		{"1 day out", "2024-06-16", true},
		{"3 days out", "2024-06-18", true},
		{"4 days out", "2024-06-19", false},
		{"already passed", "2024-06-14", false},
		{"malformed date", "junk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := []Subscription{{ID: "a", ServiceProvider: "Netflix", RenewalDate: tt.renewal}}
			due := DueReminders(subs, today)
			if got := len(due) == 1; got != tt.due {
				t.Errorf("due = %v, want %v", got, tt.due)
			}
		})
	}
}

func TestDispatchRequiresGrantedPermission(t *testing.T) {
	today := date("2024-06-15")
	subs := []Subscription{{ID: "a", ServiceProvider: "Netflix", Amount: 15.49, RenewalDate: "2024-06-17"}}

	for _, perm := range []Permission{PermissionDefault, PermissionDenied} {
		notifier := &recordingNotifier{}
		svc := NewReminderService(NewMemStorage(), notifier, perm, GetCurrency("USD"), testLogger())
		svc.Dispatch(subs, today)
		if len(notifier.bodies) != 0 {
			t.Errorf("permission %q: dispatched %d reminders, want 0", perm, len(notifier.bodies))
		}
	}
}

func TestDispatchSendsAndDedupes(t *testing.T) {
	today := date("2024-06-15")
	subs := []Subscription{{ID: "a", ServiceProvider: "Netflix", Amount: 15.49, RenewalDate: "2024-06-17"}}

	storage := NewMemStorage()
	notifier := &recordingNotifier{}
	svc := NewReminderService(storage, notifier, PermissionGranted, GetCurrency("USD"), testLogger())

	svc.Dispatch(subs, today)
	if len(notifier.bodies) != 1 {
		t.Fatalf("dispatched %d reminders, want 1", len(notifier.bodies))
	}
	if !strings.Contains(notifier.bodies[0], "Netflix") || !strings.Contains(notifier.bodies[0], "2 day") {
		t.Errorf("reminder body = %q", notifier.bodies[0])
	}

	// Same pass again: the notified marker suppresses a repeat.
	svc.Dispatch(subs, today)
	if len(notifier.bodies) != 1 {
		t.Errorf("repeat dispatch sent %d reminders, want still 1", len(notifier.bodies))
	}

	// A new renewal date arms a fresh reminder.
	subs[0].RenewalDate = "2024-06-18"
	svc.Dispatch(subs, today)
	if len(notifier.bodies) != 2 {
		t.Errorf("after renewal date change dispatched %d total, want 2", len(notifier.bodies))
	}
}

func TestDispatchRetriesAfterFailedNotification(t *testing.T) {
	today := date("2024-06-15")
	subs := []Subscription{{ID: "a", ServiceProvider: "Netflix", Amount: 15.49, RenewalDate: "2024-06-17"}}

	storage := NewMemStorage()
	notifier := &recordingNotifier{fail: true}
	svc := NewReminderService(storage, notifier, PermissionGranted, GetCurrency("USD"), testLogger())

	svc.Dispatch(subs, today)
	if len(notifier.bodies) != 0 {
		t.Fatalf("failing notifier recorded %d bodies", len(notifier.bodies))
	}

	// The failed reminder was not marked as sent, so it fires on the next pass.
	notifier.fail = false
	svc.Dispatch(subs, today)
	if len(notifier.bodies) != 1 {
		t.Errorf("after recovery dispatched %d reminders, want 1", len(notifier.bodies))
	}
}
