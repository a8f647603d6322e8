package internal

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/sirupsen/logrus"
)

// reminderWindowDays is how far ahead of a renewal a reminder fires.
const reminderWindowDays = 3

// Permission is the user's recorded decision about reminder notifications.
type Permission string

const (
	// PermissionDefault means the user has not decided yet. No reminders
	// fire, and the dashboard asks once per session.
	PermissionDefault Permission = ""
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Reminder is one upcoming-renewal alert.
type Reminder struct {
	Sub  Subscription
	Days int
}

// DueReminders returns the subscriptions renewing within the reminder
// window, 1 to 3 days out. Renewals due today are shown as urgent on the
// dashboard instead of notified.
func DueReminders(subs []Subscription, today time.Time) []Reminder {
	var due []Reminder
	for _, sub := range subs {
		days, ok := DaysUntilRenewal(sub, today)
		if !ok {
			continue
		}
		if days > 0 && days <= reminderWindowDays {
			due = append(due, Reminder{Sub: sub, Days: days})
		}
	}
	return due
}

// Notifier displays a short reminder alert.
type Notifier interface {
	Notify(title, body string) error
}

// DesktopNotifier sends reminders through the OS notification system.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// ReminderService fires at most one notification per (subscription, renewal
// date) pair, tracked through storage keys so repeated passes stay quiet.
// Dispatch is fire-and-forget: every failure is logged and swallowed, and it
// never sits on the critical path of a store mutation.
type ReminderService struct {
	storage    Storage
	notifier   Notifier
	permission Permission
	currency   Currency
	log        *logrus.Logger
}

func NewReminderService(storage Storage, notifier Notifier, permission Permission, currency Currency, log *logrus.Logger) *ReminderService {
	return &ReminderService{
		storage:    storage,
		notifier:   notifier,
		permission: permission,
		currency:   currency,
		log:        log,
	}
}

// Dispatch sends reminders for renewals due within the window. Without
// granted permission it does nothing. A reminder whose notification fails is
// not marked as sent, so the next pass retries it.
func (r *ReminderService) Dispatch(subs []Subscription, today time.Time) {
	if r.permission != PermissionGranted {
		return
	}
	for _, rem := range DueReminders(subs, today) {
		key := notifiedKey(rem.Sub)
		_, seen, err := r.storage.Read(key)
		if err != nil {
			r.log.WithError(err).Warn("could not check reminder state")
			continue
		}
		if seen {
			continue
		}
		body := fmt.Sprintf("%s renews in %d day(s) for %s.",
			rem.Sub.ServiceProvider, rem.Days, r.currency.Format(rem.Sub.Amount))
		if err := r.notifier.Notify("Subscription Reminder", body); err != nil {
			r.log.WithError(err).Warn("could not display reminder")
			continue
		}
		if err := r.storage.Write(key, "true"); err != nil {
			r.log.WithError(err).Warn("could not record reminder state")
		}
	}
}

// notifiedKey dedupes reminders per subscription and renewal date: renewing
// or editing the date arms a fresh reminder.
func notifiedKey(sub Subscription) string {
	return fmt.Sprintf("notified_%s_%s", sub.ID, sub.RenewalDate)
}
