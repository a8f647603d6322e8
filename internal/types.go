package internal

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BillingCycle is the recurrence pattern of a subscription charge.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
	CycleOneTime BillingCycle = "one-time"
)

// SortKey selects the ordering of the active subscription list.
type SortKey string

const (
	SortByRenewalDate     SortKey = "renewalDate"
	SortByServiceProvider SortKey = "serviceProvider"
	SortByAmount          SortKey = "amount"
)

// Subscription is one recurring or one-time payment obligation.
//
// Dates are calendar-date strings (YYYY-MM-DD, no time component).
// RenewalDate doubles as the next due date while the subscription is active
// and as the expiry marker once it has passed; there is no separate status
// field.
type Subscription struct {
	ID              string       `json:"id"`
	ServiceProvider string       `json:"serviceProvider" validate:"required"`
	Amount          float64      `json:"amount" validate:"gte=0"`
	BillingCycle    BillingCycle `json:"billingCycle" validate:"required,oneof=monthly yearly one-time"`
	StartDate       string       `json:"startDate" validate:"required,datetime=2006-01-02"`
	RenewalDate     string       `json:"renewalDate" validate:"required,datetime=2006-01-02"`
	Details         string       `json:"details"`
}

var validate = validator.New()

// FieldErrors maps field names to per-field validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(e[field])
	}
	return b.String()
}

// ValidateSubscription checks a record before it reaches the store.
// It returns FieldErrors so callers can report problems per field.
func ValidateSubscription(sub Subscription) error {
	err := validate.Struct(sub)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fieldErrs := FieldErrors{}
	for _, ve := range verrs {
		switch ve.StructField() {
		case "ServiceProvider":
			fieldErrs["serviceProvider"] = "service provider is required"
		case "Amount":
			fieldErrs["amount"] = "enter a valid non-negative amount"
		case "BillingCycle":
			fieldErrs["billingCycle"] = "billing cycle must be monthly, yearly or one-time"
		case "StartDate":
			fieldErrs["startDate"] = "start date is required (YYYY-MM-DD)"
		case "RenewalDate":
			fieldErrs["renewalDate"] = "renewal date is required (YYYY-MM-DD)"
		}
	}
	return fieldErrs
}
