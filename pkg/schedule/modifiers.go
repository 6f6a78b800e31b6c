package schedule

import (
	"fmt"
	"sort"

	"github.com/finance-tools/loan-schedule/pkg/mathutil"
	"go.uber.org/zap"
)

// extraBucket is the (at most one) extra payment due at a period. Multiple
// extra payments targeting the same period are summed; the strategy of the
// first, in input order, is used.
type extraBucket struct {
	amount   float64
	strategy ExtraStrategy
	present  bool
}

// modifierIndex pre-sorts a plan's modifiers into per-period lookup
// structures so the core loop stays O(periods) overall.
type modifierIndex struct {
	rates  []float64     // effective annual rate, percent, per period
	grace  []GraceMode   // grace status per period
	extras []extraBucket // extra payment due per period
}

// newModifierIndex buckets the raw modifier lists for one plan by period
// index. Deterministic tie-breaks: same-date rate changes apply in input
// order (the last wins), overlapping grace intervals yield the period to the
// first interval in input order, and an extra payment landing on a grace
// period shifts to the first subsequent non-grace period.
func newModifierIndex(logger *zap.Logger, plan Plan, timeline []Period, in Input) *modifierIndex {
	idx := &modifierIndex{
		rates:  make([]float64, len(timeline)),
		grace:  make([]GraceMode, len(timeline)),
		extras: make([]extraBucket, len(timeline)),
	}

	// Effective rate per period: the most recent change at or before the
	// period's date, else the plan's starting rate. The date layout sorts
	// lexicographically in chronological order.
	var changes []RateChange
	for _, rc := range in.RateChanges {
		if rc.PlanID != plan.ID {
			continue
		}
		if rc.AnnualRate < 0 {
			logger.Debug("ignoring rate change with negative rate",
				zap.String("op", "schedule.newModifierIndex"),
				zap.String("plan", plan.ID),
				zap.String("effectiveDate", rc.EffectiveDate),
			)
			continue
		}
		changes = append(changes, rc)
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].EffectiveDate < changes[j].EffectiveDate
	})
	rate := plan.AnnualRate
	next := 0
	for p := range timeline {
		for next < len(changes) && changes[next].EffectiveDate <= timeline[p].Date {
			rate = changes[next].AnnualRate
			next++
		}
		idx.rates[p] = rate
	}

	// Grace status per period: the first interval in input order claims a
	// contested period.
	for _, g := range in.GracePeriods {
		if g.PlanID != plan.ID {
			continue
		}
		if g.Mode != GraceInterestOnly && g.Mode != GraceDeferred {
			logger.Debug(fmt.Sprintf("ignoring grace interval with unknown mode %q for plan %s", g.Mode, plan.ID),
				zap.String("op", "schedule.newModifierIndex"),
			)
			continue
		}
		for p := g.StartPeriod; p <= g.EndPeriod; p++ {
			if p < 1 || p > len(timeline) {
				continue
			}
			if idx.grace[p-1] != GraceNone {
				continue
			}
			idx.grace[p-1] = g.Mode
		}
	}

	// Extra payments bucketed by period, grace periods excluded so that
	// grace invariants hold.
	for _, ex := range in.ExtraPayments {
		if ex.PlanID != plan.ID || !mathutil.IsPositive(ex.Amount) {
			continue
		}
		p := ex.Period
		if p < 1 || p > len(timeline) {
			logger.Debug(fmt.Sprintf("ignoring extra payment outside term at period %d for plan %s", p, plan.ID),
				zap.String("op", "schedule.newModifierIndex"),
			)
			continue
		}
		for p <= len(timeline) && idx.grace[p-1] != GraceNone {
			p++
		}
		if p > len(timeline) {
			logger.Debug(fmt.Sprintf("dropping extra payment at period %d for plan %s: every remaining period is in grace", ex.Period, plan.ID),
				zap.String("op", "schedule.newModifierIndex"),
			)
			continue
		}
		bucket := &idx.extras[p-1]
		if !bucket.present {
			bucket.present = true
			bucket.strategy = ex.Strategy
		}
		bucket.amount += ex.Amount
	}

	return idx
}
