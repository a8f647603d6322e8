package internal

import "time"

// dateLayout is the wire format for all stored calendar dates.
const dateLayout = "2006-01-02"

// ParseDay parses a stored calendar-date string to UTC midnight.
// ok is false for malformed dates.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day normalizes an instant to its calendar date, re-anchored at UTC
// midnight so that day arithmetic is independent of the wall-clock timezone.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntilRenewal returns the whole number of calendar days from today
// until the subscription's renewal date. Negative means the date has passed.
// ok is false when the stored renewal date is malformed.
func DaysUntilRenewal(sub Subscription, today time.Time) (int, bool) {
	renewal, ok := ParseDay(sub.RenewalDate)
	if !ok {
		return 0, false
	}
	return int(renewal.Sub(Day(today)).Hours() / 24), true
}

// IsExpired reports whether the renewal date is strictly before today.
// Renewal today counts as active. Records with malformed renewal dates fail
// closed as expired so a bad record cannot corrupt the active views.
func IsExpired(sub Subscription, today time.Time) bool {
	days, ok := DaysUntilRenewal(sub, today)
	if !ok {
		return true
	}
	return days < 0
}

// NextRenewalDate advances a renewal date by one billing cycle: one calendar
// month for monthly, one calendar year for yearly. The day of month is
// clamped to the target month's length (Jan 31 -> Feb 29/28, and a Feb 29
// yearly renewal lands on Feb 28 in non-leap years).
// ok is false for one-time subscriptions, which do not recur, and for
// malformed renewal dates.
func NextRenewalDate(sub Subscription) (string, bool) {
	current, ok := ParseDay(sub.RenewalDate)
	if !ok {
		return "", false
	}
	var months int
	switch sub.BillingCycle {
	case CycleMonthly:
		months = 1
	case CycleYearly:
		months = 12
	default:
		return "", false
	}
	return addMonthsClamped(current, months).Format(dateLayout), true
}

// addMonthsClamped advances by whole calendar months, clamping the day to
// the last day of the target month instead of overflowing into the next one.
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// Yesterday returns the calendar date one day before now, in wire format.
// Cancelling a subscription backdates its renewal date to this value.
func Yesterday(now time.Time) string {
	return Day(now).AddDate(0, 0, -1).Format(dateLayout)
}
