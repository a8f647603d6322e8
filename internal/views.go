package internal

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// urgentWindowDays is how far ahead a renewal counts as urgent.
const urgentWindowDays = 3

// Views is everything the presentation layer renders, derived purely from
// (subscriptions, today, sort key, locale). Recompute after every mutation;
// there is no hidden state.
type Views struct {
	Active       []Subscription
	Expired      []Subscription
	YearGroups   []YearGroup
	Urgent       []Subscription
	NextRenewal  *Subscription
	TotalMonthly float64
	TotalSpent   float64
}

// YearGroup holds the expired subscriptions of one calendar year, most
// recent renewal first.
type YearGroup struct {
	Year int
	Subs []Subscription
}

// ComputeViews partitions the collection into active and expired sets and
// derives the dashboard aggregates. The active list is ordered by key; the
// next-renewal pick is always taken in renewal-date order regardless of key.
func ComputeViews(subs []Subscription, today time.Time, key SortKey, locale language.Tag) Views {
	var v Views
	for _, sub := range subs {
		if IsExpired(sub, today) {
			v.Expired = append(v.Expired, sub)
		} else {
			v.Active = append(v.Active, sub)
		}
	}

	byRenewal := SortActive(v.Active, SortByRenewalDate, locale)
	if len(byRenewal) > 0 {
		first := byRenewal[0]
		v.NextRenewal = &first
	}

	v.Active = SortActive(v.Active, key, locale)
	v.YearGroups = GroupExpiredByYear(v.Expired)
	v.Urgent = UrgentSubscriptions(byRenewal, today)
	v.TotalMonthly = TotalMonthlyCost(byRenewal)
	v.TotalSpent = TotalSpent(v.Expired)
	return v
}

// SortActive returns a sorted copy of the active set. renewalDate sorts
// ascending, serviceProvider ascending with locale-aware collation, amount
// descending.
func SortActive(subs []Subscription, key SortKey, locale language.Tag) []Subscription {
	out := make([]Subscription, len(subs))
	copy(out, subs)
	switch key {
	case SortByServiceProvider:
		c := collate.New(locale)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].ServiceProvider, out[j].ServiceProvider) < 0
		})
	case SortByAmount:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount > out[j].Amount
		})
	default: // SortByRenewalDate
		sort.SliceStable(out, func(i, j int) bool {
			return renewalTime(out[i]).Before(renewalTime(out[j]))
		})
	}
	return out
}

// renewalTime parses the renewal date for ordering. Malformed dates map to
// the zero time so they sort consistently as least recent instead of
// breaking the pass.
func renewalTime(sub Subscription) time.Time {
	t, _ := ParseDay(sub.RenewalDate)
	return t
}

// GroupExpiredByYear groups the expired set by the calendar year of the
// renewal date: years descending, renewals within a year descending.
// Records whose renewal date cannot be parsed are left out of the grouping;
// they still count toward the expired set and the historical total.
func GroupExpiredByYear(expired []Subscription) []YearGroup {
	sorted := make([]Subscription, len(expired))
	copy(sorted, expired)
	sort.SliceStable(sorted, func(i, j int) bool {
		return renewalTime(sorted[i]).After(renewalTime(sorted[j]))
	})

	byYear := make(map[int][]Subscription)
	var years []int
	for _, sub := range sorted {
		t, ok := ParseDay(sub.RenewalDate)
		if !ok {
			continue
		}
		year := t.Year()
		if _, seen := byYear[year]; !seen {
			years = append(years, year)
		}
		byYear[year] = append(byYear[year], sub)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	groups := make([]YearGroup, 0, len(years))
	for _, year := range years {
		groups = append(groups, YearGroup{Year: year, Subs: byYear[year]})
	}
	return groups
}

// TotalMonthlyCost normalizes active charges to a monthly figure: monthly
// amounts as-is, yearly divided by 12, one-time excluded.
func TotalMonthlyCost(active []Subscription) float64 {
	total := 0.0
	for _, sub := range active {
		switch sub.BillingCycle {
		case CycleMonthly:
			total += sub.Amount
		case CycleYearly:
			total += sub.Amount / 12
		}
	}
	return total
}

// TotalSpent sums raw amounts over the expired set, with no cycle
// normalization.
func TotalSpent(expired []Subscription) float64 {
	total := 0.0
	for _, sub := range expired {
		total += sub.Amount
	}
	return total
}

// UrgentSubscriptions returns active records renewing within 0-3 days.
// A renewal due today is urgent, not expired.
func UrgentSubscriptions(active []Subscription, today time.Time) []Subscription {
	var urgent []Subscription
	for _, sub := range active {
		days, ok := DaysUntilRenewal(sub, today)
		if !ok {
			continue
		}
		if days >= 0 && days <= urgentWindowDays {
			urgent = append(urgent, sub)
		}
	}
	return urgent
}
