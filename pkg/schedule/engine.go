package schedule

import (
	"sort"

	"go.uber.org/zap"
)

// Engine computes amortization schedules. It holds no state between
// invocations and is safe to use from multiple goroutines.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine. A nil logger is replaced with a no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Compute produces the merged schedule for every valid plan in the input.
// Invalid plans are excluded and surfaced as PlanErrors; they never abort the
// rest of the portfolio. The result is freshly allocated on every call.
func (e *Engine) Compute(in Input) *Result {
	result := &Result{Currency: in.Currency}

	for _, plan := range in.Plans {
		if planErr := validatePlan(plan); planErr != nil {
			e.logger.Warn("excluding invalid plan from schedule",
				zap.String("op", "schedule.Compute"),
				zap.String("plan", plan.ID),
				zap.String("field", planErr.Field),
				zap.String("reason", planErr.Message),
			)
			result.PlanErrors = append(result.PlanErrors, planErr)
			continue
		}

		timeline, err := BuildTimeline(plan.StartDate, plan.TermMonths)
		if err != nil {
			result.PlanErrors = append(result.PlanErrors, &PlanError{
				PlanID:  plan.ID,
				Field:   "startDate",
				Message: err.Error(),
			})
			continue
		}

		idx := newModifierIndex(e.logger, plan, timeline, in)
		result.Rows = append(result.Rows, e.amortizePlan(plan, timeline, idx, in.CPI, in.Labels)...)
	}

	// Chronological merge across plans. Rows arrive grouped in plan input
	// order, so a stable sort by date keeps that order as the tie-break.
	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].Date < result.Rows[j].Date
	})

	return result
}

func validatePlan(plan Plan) *PlanError {
	if plan.TermMonths < 1 {
		return &PlanError{PlanID: plan.ID, Field: "termMonths", Message: "term must cover at least one period"}
	}
	if plan.Principal <= 0 {
		return &PlanError{PlanID: plan.ID, Field: "principal", Message: "principal must be positive"}
	}
	if plan.AnnualRate < 0 {
		return &PlanError{PlanID: plan.ID, Field: "annualRate", Message: "rate must not be negative"}
	}
	return nil
}
