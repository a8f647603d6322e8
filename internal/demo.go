package internal

import "time"

// DemoSubscriptions returns the dataset seeded on first run, so the
// dashboard has something to show before the user adds real records. It
// spans the interesting cases: a renewal due in 2 days (urgent), ordinary
// upcoming renewals, a recently lapsed subscription and multi-year history.
func DemoSubscriptions(now time.Time) []Subscription {
	day := func(offset int) string {
		return Day(now).AddDate(0, 0, offset).Format(dateLayout)
	}
	return []Subscription{
		{
			ID:              "demo-1",
			ServiceProvider: "Netflix",
			Amount:          15.49,
			BillingCycle:    CycleMonthly,
			StartDate:       Day(now).AddDate(0, -6, 0).Format(dateLayout),
			RenewalDate:     day(2),
			Details:         "Premium plan for 4K streaming.",
		},
		{
			ID:              "demo-2",
			ServiceProvider: "Spotify",
			Amount:          9.99,
			BillingCycle:    CycleMonthly,
			StartDate:       Day(now).AddDate(-1, 0, 0).Format(dateLayout),
			RenewalDate:     day(15),
			Details:         "Family plan.",
		},
		{
			ID:              "demo-3",
			ServiceProvider: "Adobe Creative Cloud",
			Amount:          599.88,
			BillingCycle:    CycleYearly,
			StartDate:       "2023-01-20",
			RenewalDate:     day(45),
			Details:         "All apps subscription for work.",
		},
		{
			ID:              "demo-4",
			ServiceProvider: "Disney+",
			Amount:          139.99,
			BillingCycle:    CycleYearly,
			StartDate:       "2022-12-01",
			RenewalDate:     "2023-12-01",
			Details:         "Yearly subscription for movies.",
		},
		{
			ID:              "demo-5",
			ServiceProvider: "Amazon Prime",
			Amount:          14.99,
			BillingCycle:    CycleMonthly,
			StartDate:       "2023-08-10",
			RenewalDate:     day(-5),
			Details:         "Includes Prime Video and fast shipping.",
		},
		{
			ID:              "demo-6",
			ServiceProvider: "Microsoft 365",
			Amount:          99.99,
			BillingCycle:    CycleYearly,
			StartDate:       "2021-11-15",
			RenewalDate:     "2022-11-15",
			Details:         "Family plan with Office apps.",
		},
		{
			ID:              "demo-7",
			ServiceProvider: "Canva Pro",
			Amount:          119.40,
			BillingCycle:    CycleYearly,
			StartDate:       "2022-03-01",
			RenewalDate:     "2023-03-01",
			Details:         "Design tool for marketing materials.",
		},
	}
}
