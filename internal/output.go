package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputOptions controls how the dashboard is displayed
type OutputOptions struct {
	Sort     SortKey
	Currency Currency
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Active  []JSONSubscription `json:"active"`
	History []JSONYearGroup    `json:"history"`
	Summary JSONSummary        `json:"summary"`
}

// JSONSummary contains the dashboard aggregates
type JSONSummary struct {
	ActiveCount  int               `json:"active_count"`
	ExpiredCount int               `json:"expired_count"`
	MonthlyTotal float64           `json:"monthly_total"`
	TotalSpent   float64           `json:"total_spent"`
	NextRenewal  *JSONSubscription `json:"next_renewal,omitempty"`
	Currency     string            `json:"currency"`
}

// JSONSubscription is the JSON output format for a subscription
type JSONSubscription struct {
	ID               string  `json:"id"`
	ServiceProvider  string  `json:"service_provider"`
	Amount           float64 `json:"amount"`
	BillingCycle     string  `json:"billing_cycle"`
	StartDate        string  `json:"start_date"`
	RenewalDate      string  `json:"renewal_date"`
	DaysUntilRenewal *int    `json:"days_until_renewal,omitempty"`
	Urgent           bool    `json:"urgent,omitempty"`
	Details          string  `json:"details,omitempty"`
}

// JSONYearGroup is one calendar year of expired subscriptions
type JSONYearGroup struct {
	Year          int                `json:"year"`
	Subscriptions []JSONSubscription `json:"subscriptions"`
}

// PrintViewsJSON outputs the derived views in JSON format
func PrintViewsJSON(w io.Writer, v Views, today time.Time, currency Currency) {
	toJSON := func(sub Subscription) JSONSubscription {
		out := JSONSubscription{
			ID:              sub.ID,
			ServiceProvider: sub.ServiceProvider,
			Amount:          sub.Amount,
			BillingCycle:    string(sub.BillingCycle),
			StartDate:       sub.StartDate,
			RenewalDate:     sub.RenewalDate,
			Details:         sub.Details,
		}
		if days, ok := DaysUntilRenewal(sub, today); ok {
			out.DaysUntilRenewal = &days
			out.Urgent = days >= 0 && days <= urgentWindowDays && !IsExpired(sub, today)
		}
		return out
	}

	output := JSONOutput{
		Active: []JSONSubscription{},
		Summary: JSONSummary{
			ActiveCount:  len(v.Active),
			ExpiredCount: len(v.Expired),
			MonthlyTotal: v.TotalMonthly,
			TotalSpent:   v.TotalSpent,
			Currency:     currency.Code,
		},
	}
	for _, sub := range v.Active {
		output.Active = append(output.Active, toJSON(sub))
	}
	if v.NextRenewal != nil {
		next := toJSON(*v.NextRenewal)
		output.Summary.NextRenewal = &next
	}
	for _, group := range v.YearGroups {
		jsonGroup := JSONYearGroup{Year: group.Year}
		for _, sub := range group.Subs {
			jsonGroup.Subscriptions = append(jsonGroup.Subscriptions, toJSON(sub))
		}
		output.History = append(output.History, jsonGroup)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// PrintDashboard renders the full dashboard: urgent alerts, summary cards,
// the active subscription table and the per-year history.
func PrintDashboard(w io.Writer, v Views, today time.Time, opts OutputOptions) {
	for _, sub := range v.Urgent {
		days, _ := DaysUntilRenewal(sub, today)
		fmt.Fprintln(w, text.FgYellow.Sprintf("! %s renews %s: you will be charged %s on %s",
			sub.ServiceProvider, inDays(days), opts.Currency.Format(sub.Amount), sub.RenewalDate))
	}
	if len(v.Urgent) > 0 {
		fmt.Fprintln(w)
	}

	if v.NextRenewal != nil {
		fmt.Fprintf(w, "Next renewal: %s on %s for %s\n",
			v.NextRenewal.ServiceProvider, v.NextRenewal.RenewalDate, opts.Currency.Format(v.NextRenewal.Amount))
	} else {
		fmt.Fprintln(w, "No upcoming renewals")
	}
	fmt.Fprintf(w, "Total monthly cost: %s  (%d active, %d expired)\n\n",
		text.Bold.Sprint(opts.Currency.Format(v.TotalMonthly)), len(v.Active), len(v.Expired))

	fmt.Fprintf(w, "Active subscriptions (sorted by %s)\n", opts.Sort)
	printActiveTable(w, v.Active, today, opts)

	fmt.Fprintf(w, "\nSubscription history (total spent: %s)\n", opts.Currency.Format(v.TotalSpent))
	if len(v.YearGroups) == 0 {
		fmt.Fprintln(w, "Your expired or cancelled subscriptions will appear here.")
		return
	}
	for _, group := range v.YearGroups {
		fmt.Fprintf(w, "\n%s\n", text.Bold.Sprintf("%d", group.Year))
		printHistoryTable(w, group.Subs, opts)
	}
}

func printActiveTable(w io.Writer, active []Subscription, today time.Time, opts OutputOptions) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Provider", "Amount", "Cycle", "Started", "Renews", "In", "Details"})

	for _, sub := range active {
		inStr := ""
		if days, ok := DaysUntilRenewal(sub, today); ok {
			inStr = inDays(days)
			if days <= urgentWindowDays {
				inStr = text.FgYellow.Sprint(inStr)
			}
		}
		t.AppendRow(table.Row{
			sub.ServiceProvider,
			opts.Currency.Format(sub.Amount),
			sub.BillingCycle,
			sub.StartDate,
			sub.RenewalDate,
			inStr,
			sub.Details,
		})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", "", "", text.Bold.Sprint("Monthly"), text.Bold.Sprint(opts.Currency.Format(TotalMonthlyCost(active)))})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

func printHistoryTable(w io.Writer, subs []Subscription, opts OutputOptions) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Provider", "Amount", "Cycle", "Expired", "Details"})

	for _, sub := range subs {
		t.AppendRow(table.Row{
			sub.ServiceProvider,
			opts.Currency.Format(sub.Amount),
			sub.BillingCycle,
			text.FgRed.Sprint(sub.RenewalDate),
			sub.Details,
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

// inDays renders a day count for the dashboard ("today", "in 1 day",
// "in 12 days").
func inDays(days int) string {
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
