package internal

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDaysUntilRenewal(t *testing.T) {
	today := date("2024-06-15")

	tests := []struct {
		name    string
		renewal string
		want    int
		wantOK  bool
	}{
		{"due today", "2024-06-15", 0, true},
		{"due tomorrow", "2024-06-16", 1, true},
		{"due in a week", "2024-06-22", 7, true},
		{"passed yesterday", "2024-06-14", -1, true},
		{"malformed", "not-a-date", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Subscription{RenewalDate: tt.renewal}
			got, ok := DaysUntilRenewal(sub, today)
			if ok != tt.wantOK {
				t.Fatalf("DaysUntilRenewal() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("DaysUntilRenewal() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	today := date("2024-06-15")

	tests := []struct {
		name    string
		renewal string
		want    bool
	}{
		{"renewal today is still active", "2024-06-15", false},
		{"renewal tomorrow is active", "2024-06-16", false},
		{"renewal yesterday is expired", "2024-06-14", true},
		{"malformed date counts as expired", "junk", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Subscription{RenewalDate: tt.renewal}
			if got := IsExpired(sub, today); got != tt.want {
				t.Errorf("IsExpired(%q) = %v, want %v", tt.renewal, got, tt.want)
			}
		})
	}
}

func TestNextRenewalDate(t *testing.T) {
	tests := []struct {
		name    string
		cycle   BillingCycle
		renewal string
		want    string
		wantOK  bool
	}{
		{"monthly mid-month", CycleMonthly, "2024-06-15", "2024-07-15", true},
		{"monthly across year boundary", CycleMonthly, "2024-12-15", "2025-01-15", true},
		{"monthly clamps jan 31 to leap feb", CycleMonthly, "2024-01-31", "2024-02-29", true},
		{"monthly clamps jan 31 to plain feb", CycleMonthly, "2025-01-31", "2025-02-28", true},
		{"monthly clamps may 31 to jun 30", CycleMonthly, "2024-05-31", "2024-06-30", true},
		{"yearly plain", CycleYearly, "2024-06-15", "2025-06-15", true},
		{"yearly clamps feb 29", CycleYearly, "2024-02-29", "2025-02-28", true},
		{"one-time does not recur", CycleOneTime, "2024-06-15", "", false},
		{"malformed date", CycleMonthly, "garbage", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Subscription{BillingCycle: tt.cycle, RenewalDate: tt.renewal}
			got, ok := NextRenewalDate(sub)
			if ok != tt.wantOK {
				t.Fatalf("NextRenewalDate() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("NextRenewalDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYesterday(t *testing.T) {
	tests := []struct {
		now  string
		want string
	}{
		{"2024-06-15", "2024-06-14"},
		{"2024-03-01", "2024-02-29"},
		{"2025-01-01", "2024-12-31"},
	}

	for _, tt := range tests {
		if got := Yesterday(date(tt.now)); got != tt.want {
			t.Errorf("Yesterday(%s) = %q, want %q", tt.now, got, tt.want)
		}
	}
}
