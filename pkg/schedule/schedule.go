// Package schedule implements the amortization schedule engine: a pure
// function from loan plans plus time-varying modifiers (rate changes, grace
// periods, extra payments, CPI indexation) to a deterministic period-by-period
// payment schedule. The engine performs no I/O, formatting, or translation;
// it accepts already-resolved numeric inputs and returns structured numeric
// rows.
package schedule

import (
	"fmt"

	"github.com/finance-tools/loan-schedule/pkg/cpiseries"
)

// GraceMode identifies how amortization is suspended during a grace interval.
type GraceMode string

const (
	// GraceNone marks a period outside any grace interval.
	GraceNone GraceMode = ""

	// GraceInterestOnly means interest is due each period with no principal
	// reduction.
	GraceInterestOnly GraceMode = "interest-only"

	// GraceDeferred means accrued interest is capitalized into principal and
	// no cash payment is made.
	GraceDeferred GraceMode = "deferred"
)

// ExtraStrategy identifies how an extra principal payment reshapes the
// remainder of the schedule.
type ExtraStrategy string

const (
	// ReduceTerm keeps the installment fixed and shortens the remaining term.
	ReduceTerm ExtraStrategy = "reduce-term"

	// ReducePayment keeps the term fixed and recomputes a lower installment.
	ReducePayment ExtraStrategy = "reduce-payment"
)

// Label keys passed to the injected LabelFunc for human-readable row
// annotations.
const (
	LabelGraceInterestOnly = "grace.interest-only"
	LabelGraceDeferred     = "grace.deferred"
	LabelCPIMissing        = "cpi.missing"
)

// Plan is a loan/mortgage instrument.
type Plan struct {
	ID         string
	Name       string
	Principal  float64
	AnnualRate float64 // nominal annual rate, percent
	TermMonths int
	StartDate  string // period 1 falls one month after this date
	CPILinked  bool
}

// RateChange is a scheduled change to a plan's nominal annual rate. A change
// effective mid-schedule recomputes the remaining-term installment from the
// then-current balance; it never alters past rows.
type RateChange struct {
	PlanID        string
	EffectiveDate string
	AnnualRate    float64
}

// GracePeriod is an interval of suspended amortization, inclusive of both
// endpoint periods (1-based).
type GracePeriod struct {
	PlanID      string
	StartPeriod int
	EndPeriod   int
	Mode        GraceMode
}

// ExtraPayment is a one-time additional principal payment due at a 1-based
// period.
type ExtraPayment struct {
	PlanID   string
	Period   int
	Amount   float64
	Strategy ExtraStrategy
}

// LabelFunc resolves a label key to a human-readable string. It is used only
// to annotate rows, never for numeric logic. A nil LabelFunc yields the key
// itself.
type LabelFunc func(key string) string

// Input carries everything a single engine invocation consumes. The currency
// code is a pass-through tag on the output and takes no part in arithmetic.
type Input struct {
	Plans         []Plan
	RateChanges   []RateChange
	GracePeriods  []GracePeriod
	ExtraPayments []ExtraPayment
	Currency      string
	CPI           cpiseries.Series
	Labels        LabelFunc
}

// Row is one emitted schedule line. Rows are produced once per engine
// invocation and never mutated afterwards. Monetary fields are rounded to two
// decimals at emission.
type Row struct {
	PlanID           string    `json:"planId"`
	Period           int       `json:"period"`
	Date             string    `json:"date"`
	OpeningBalance   float64   `json:"openingBalance"`
	AppliedRate      float64   `json:"appliedRate"`
	ScheduledPayment float64   `json:"scheduledPayment"`
	Interest         float64   `json:"interestComponent"`
	Principal        float64   `json:"principalComponent"`
	ExtraPayment     float64   `json:"extraPaymentApplied"`
	CPIAdjustment    float64   `json:"cpiAdjustment"`
	ClosingBalance   float64   `json:"closingBalance"`
	Grace            bool      `json:"isGracePeriod"`
	GraceMode        GraceMode `json:"graceMode,omitempty"`
	CPIMiss          bool      `json:"cpiDataMissing,omitempty"`
	Label            string    `json:"label,omitempty"`
}

// PlanError is a structured validation failure for one plan. A failing plan
// is excluded from the aggregated schedule; the rest of the portfolio still
// computes.
type PlanError struct {
	PlanID  string `json:"planId"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	return fmt.Sprintf("plan %s: invalid %s: %s", e.PlanID, e.Field, e.Message)
}

// Result is the aggregated output of one engine invocation: all valid plans'
// rows merged chronologically, plus validation errors for excluded plans.
type Result struct {
	Currency   string       `json:"currency"`
	Rows       []Row        `json:"rows"`
	PlanErrors []*PlanError `json:"planErrors,omitempty"`
}

func resolveLabel(labels LabelFunc, key string) string {
	if labels == nil {
		return key
	}
	return labels(key)
}
