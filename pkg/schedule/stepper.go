package schedule

import (
	"fmt"
	"math"

	"github.com/finance-tools/loan-schedule/pkg/constants"
	"github.com/finance-tools/loan-schedule/pkg/cpiseries"
	"github.com/finance-tools/loan-schedule/pkg/mathutil"
	"go.uber.org/zap"
)

// annuityPayment calculates the fixed installment for a balance over the
// given number of periods using the standard amortization formula.
func annuityPayment(balance, monthlyRate float64, periods int) float64 {
	if periods <= 0 {
		return balance
	}
	if monthlyRate == 0 {
		// For zero interest, simply divide the balance by the period count
		return balance / float64(periods)
	}
	return balance * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(periods)))
}

// payoffHorizon returns the number of installments of the given size needed
// to retire the balance. Used to shrink the effective remaining term after a
// reduce-term extra payment. Falls back when the payment cannot retire the
// balance at all.
func payoffHorizon(balance, monthlyRate, payment float64, fallback int) int {
	if payment <= 0 || balance <= 0 {
		return fallback
	}
	if monthlyRate == 0 {
		return int(math.Ceil(balance / payment))
	}
	interest := balance * monthlyRate
	if payment <= interest {
		return fallback
	}
	n := math.Log(payment/(payment-interest)) / math.Log(1+monthlyRate)
	return int(math.Ceil(n - 1e-9))
}

// cpiFactor returns the indexation factor for one period: the index at the
// period's date over the index at the previous period's date. A lookup miss
// on either side yields a factor of 1.0 and the miss flag.
func cpiFactor(cpi cpiseries.Series, prevDate, date string) (float64, bool) {
	current, okCurrent := cpi.At(date)
	base, okBase := cpi.At(prevDate)
	if !okCurrent || !okBase || base <= 0 {
		return 1.0, true
	}
	return current / base, false
}

// amortizePlan runs the core period loop for one validated plan. State is
// threaded explicitly across periods: the unrounded running balance, the
// current installment, and the effective remaining-term count. Monetary row
// fields are rounded half-up to two decimals at emission only; the internal
// balance keeps full precision to avoid compounding rounding error.
func (e *Engine) amortizePlan(plan Plan, timeline []Period, idx *modifierIndex, cpi cpiseries.Series, labels LabelFunc) []Row {
	rows := make([]Row, 0, len(timeline))

	balance := plan.Principal
	currentPayment := 0.0
	paymentRate := math.NaN() // rate the current installment was computed with
	pendingRecompute := true
	remaining := len(timeline) // installments left, including the upcoming one
	cumDelta := 0.0            // balance added by indexation and capitalized interest
	emittedPrincipal := 0.0    // sum of rounded principal components emitted so far
	prevDate := plan.StartDate

	for i, period := range timeline {
		row := Row{
			PlanID:        plan.ID,
			Period:        period.Index,
			Date:          period.Date,
			CPIAdjustment: 1.0,
		}

		// Indexation applies before interest accrual so it compounds on the
		// already-indexed base, matching CPI-linked mortgage conventions.
		if plan.CPILinked {
			factor, miss := cpiFactor(cpi, prevDate, period.Date)
			if miss {
				row.CPIMiss = true
				row.Label = resolveLabel(labels, LabelCPIMissing)
				e.logger.Debug(fmt.Sprintf("%s: no CPI data at or before this date for plan %s, applying no adjustment", period.Date, plan.ID),
					zap.String("op", "schedule.amortizePlan"),
				)
			} else if factor != 1.0 {
				cumDelta += balance * (factor - 1)
				balance *= factor
			}
			row.CPIAdjustment = factor
		}

		rate := idx.rates[i]
		monthlyRate := rate / (constants.PercentageMultiplier * constants.MonthsPerYear)
		row.OpeningBalance = mathutil.Round(balance)
		row.AppliedRate = rate

		if rate != paymentRate {
			pendingRecompute = true
		}

		if mode := idx.grace[i]; mode != GraceNone {
			interest := balance * monthlyRate
			row.Grace = true
			row.GraceMode = mode
			row.Interest = mathutil.Round(interest)
			switch mode {
			case GraceInterestOnly:
				row.Label = resolveLabel(labels, LabelGraceInterestOnly)
				row.ScheduledPayment = row.Interest
			case GraceDeferred:
				row.Label = resolveLabel(labels, LabelGraceDeferred)
				row.ScheduledPayment = 0
				cumDelta += interest
				balance += interest
			}
			row.ClosingBalance = mathutil.Round(balance)
			// Exiting the interval recomputes the installment over the
			// remaining term.
			pendingRecompute = true
			rows = append(rows, row)
			remaining--
			prevDate = period.Date
			continue
		}

		if pendingRecompute {
			currentPayment = annuityPayment(balance, monthlyRate, remaining)
			paymentRate = rate
			pendingRecompute = false
			e.logger.Debug(fmt.Sprintf("%s: computed installment %.2f for plan %s over %d remaining periods", period.Date, currentPayment, plan.ID, remaining),
				zap.String("op", "schedule.amortizePlan"),
			)
		}

		interest := balance * monthlyRate
		principalPart := mathutil.Max(mathutil.Min(currentPayment-interest, balance), 0)

		var applied float64
		bucket := idx.extras[i]
		if bucket.present {
			applied = mathutil.Max(mathutil.Min(bucket.amount, balance-principalPart), 0)
			if applied < bucket.amount {
				e.logger.Debug("capping extra payment to the outstanding balance",
					zap.String("op", "schedule.amortizePlan"),
					zap.String("plan", plan.ID),
					zap.String("date", period.Date),
					zap.Float64("requested", bucket.amount),
					zap.Float64("applied", applied),
				)
			}
		}

		closing := balance - principalPart - applied
		final := i == len(timeline)-1 || mathutil.IsZero(closing)

		row.Interest = mathutil.Round(interest)
		row.ExtraPayment = mathutil.Round(applied)
		if final {
			// Residual correction: the last principal component absorbs the
			// accumulated per-row rounding so cumulative principal exactly
			// equals the amount borrowed plus any indexation delta.
			row.Principal = mathutil.Round(plan.Principal + cumDelta - emittedPrincipal)
			row.ScheduledPayment = mathutil.Round(row.Interest + row.Principal - row.ExtraPayment)
			row.ClosingBalance = 0
		} else {
			row.Principal = mathutil.Round(principalPart + applied)
			row.ScheduledPayment = mathutil.Round(currentPayment)
			row.ClosingBalance = mathutil.Round(closing)
		}
		emittedPrincipal += row.Principal
		rows = append(rows, row)

		if final {
			// Early payoff: remaining periods are not emitted.
			break
		}

		balance = closing
		remaining--
		if bucket.present {
			switch bucket.strategy {
			case ReducePayment:
				pendingRecompute = true
			case ReduceTerm:
				horizon := payoffHorizon(balance, monthlyRate, currentPayment, remaining)
				if horizon < remaining {
					e.logger.Debug(fmt.Sprintf("%s: extra payment shortens plan %s to %d remaining periods", period.Date, plan.ID, horizon),
						zap.String("op", "schedule.amortizePlan"),
					)
					remaining = horizon
				}
			}
		}
		prevDate = period.Date
	}

	return rows
}
