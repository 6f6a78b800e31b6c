// Package config defines the data structures related to portfolio
// configuration and includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/finance-tools/loan-schedule/pkg/constants"
	"github.com/finance-tools/loan-schedule/pkg/cpiseries"
	"github.com/finance-tools/loan-schedule/pkg/datetime"
	"github.com/finance-tools/loan-schedule/pkg/schedule"
	"github.com/finance-tools/loan-schedule/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Normalize prepares a parsed configuration for conversion: plan IDs are
// assigned (name, else a fresh UUID), the initialAmount display alias is
// folded into principal, and date-specified extra payments are resolved to
// period indices. Must run before ToEngineInput.
func (conf *Configuration) Normalize() error {
	seen := make(map[string]bool)
	for i := range conf.Plans {
		plan := &conf.Plans[i]
		if plan.Principal == 0 && plan.InitialAmount > 0 {
			plan.Principal = plan.InitialAmount
		}
		if plan.ID == "" {
			plan.ID = plan.Name
		}
		if plan.ID == "" || seen[plan.ID] {
			plan.ID = uuid.NewString()
		}
		seen[plan.ID] = true
	}

	for i := range conf.ExtraPayments {
		extra := &conf.ExtraPayments[i]
		if extra.Date == "" || extra.Period != 0 {
			continue
		}
		plan := conf.planByRef(extra.Plan)
		if plan == nil {
			continue
		}
		months, err := datetime.MonthsBetween(plan.StartDate, extra.Date)
		if err != nil {
			return fmt.Errorf("extra payment for plan %s: %w", extra.Plan, err)
		}
		// Period p falls p months after the plan start date.
		extra.Period = months
	}

	return nil
}

// planByRef finds a plan by assigned ID or configured name.
func (conf *Configuration) planByRef(ref string) *PlanConfig {
	for i := range conf.Plans {
		if conf.Plans[i].ID == ref || (conf.Plans[i].Name != "" && conf.Plans[i].Name == ref) {
			return &conf.Plans[i]
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard failures per plan are left to the engine, which
// surfaces them as structured plan errors.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	for _, plan := range conf.Plans {
		if plan.CPILinked && len(conf.CPI.Series) == 0 && conf.CPI.Source == "" {
			warnings = append(warnings, fmt.Sprintf("Plan '%s' is CPI-linked but no CPI series is configured - rows will be flagged as missing CPI data", plan.ID))
		}
	}

	for _, rc := range conf.RateChanges {
		plan := conf.planByRef(rc.Plan)
		if plan == nil {
			warnings = append(warnings, fmt.Sprintf("Rate change at %s references unknown plan '%s'", rc.EffectiveDate, rc.Plan))
			continue
		}
		before, err := datetime.DateBeforeDate(rc.EffectiveDate, plan.StartDate)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Rate change for plan '%s' has unparseable effectiveDate '%s'", rc.Plan, rc.EffectiveDate))
			continue
		}
		if before {
			warnings = append(warnings, fmt.Sprintf("Rate change for plan '%s' predates the plan start %s and applies from the first period", rc.Plan, plan.StartDate))
		}
	}

	for _, grace := range conf.GracePeriods {
		plan := conf.planByRef(grace.Plan)
		if plan == nil {
			warnings = append(warnings, fmt.Sprintf("Grace period references unknown plan '%s'", grace.Plan))
			continue
		}
		if err := validation.ValidateGraceMode(grace.Mode); err != nil {
			warnings = append(warnings, fmt.Sprintf("Grace period for plan '%s': %s", grace.Plan, err))
		}
		if grace.StartPeriod > grace.EndPeriod {
			warnings = append(warnings, fmt.Sprintf("Grace period for plan '%s' has startPeriod %d after endPeriod %d", grace.Plan, grace.StartPeriod, grace.EndPeriod))
		}
		if grace.EndPeriod > plan.TermMonths {
			warnings = append(warnings, fmt.Sprintf("Grace period for plan '%s' extends past maturity (period %d > term %d)", grace.Plan, grace.EndPeriod, plan.TermMonths))
		}
	}

	for _, extra := range conf.ExtraPayments {
		plan := conf.planByRef(extra.Plan)
		if plan == nil {
			warnings = append(warnings, fmt.Sprintf("Extra payment references unknown plan '%s'", extra.Plan))
			continue
		}
		if err := validation.ValidateExtraStrategy(extra.Strategy); err != nil {
			warnings = append(warnings, fmt.Sprintf("Extra payment for plan '%s': %s", extra.Plan, err))
		}
		if extra.Period > plan.TermMonths {
			warnings = append(warnings, fmt.Sprintf("Extra payment for plan '%s' falls past maturity (period %d > term %d)", extra.Plan, extra.Period, plan.TermMonths))
		}
		if extra.Amount > plan.Principal {
			warnings = append(warnings, fmt.Sprintf("Extra payment of %.2f for plan '%s' exceeds the borrowed amount and will be capped", extra.Amount, extra.Plan))
		}
	}

	return warnings
}

// ToEngineInput converts the normalized configuration plus a materialized CPI
// series into the engine's input value.
func (conf *Configuration) ToEngineInput(series cpiseries.Series, labels schedule.LabelFunc) schedule.Input {
	in := schedule.Input{
		Currency: conf.Currency,
		CPI:      series,
		Labels:   labels,
	}

	for _, plan := range conf.Plans {
		in.Plans = append(in.Plans, schedule.Plan{
			ID:         plan.ID,
			Name:       plan.Name,
			Principal:  plan.Principal,
			AnnualRate: plan.AnnualRate,
			TermMonths: plan.TermMonths,
			StartDate:  plan.StartDate,
			CPILinked:  plan.CPILinked,
		})
	}

	for _, rc := range conf.RateChanges {
		plan := conf.planByRef(rc.Plan)
		if plan == nil {
			continue
		}
		in.RateChanges = append(in.RateChanges, schedule.RateChange{
			PlanID:        plan.ID,
			EffectiveDate: rc.EffectiveDate,
			AnnualRate:    rc.AnnualRate,
		})
	}

	for _, grace := range conf.GracePeriods {
		plan := conf.planByRef(grace.Plan)
		if plan == nil {
			continue
		}
		in.GracePeriods = append(in.GracePeriods, schedule.GracePeriod{
			PlanID:      plan.ID,
			StartPeriod: grace.StartPeriod,
			EndPeriod:   grace.EndPeriod,
			Mode:        schedule.GraceMode(grace.Mode),
		})
	}

	for _, extra := range conf.ExtraPayments {
		plan := conf.planByRef(extra.Plan)
		if plan == nil {
			continue
		}
		in.ExtraPayments = append(in.ExtraPayments, schedule.ExtraPayment{
			PlanID:   plan.ID,
			Period:   extra.Period,
			Amount:   extra.Amount,
			Strategy: schedule.ExtraStrategy(extra.Strategy),
		})
	}

	return in
}

// CPISource builds the Source that materializes the configured CPI series:
// the in-config series directly, or the same series behind a redis cache.
func (conf *Configuration) CPISource(logger *zap.Logger) (cpiseries.Source, error) {
	series, err := cpiseries.NewSeries(conf.CPI.Series)
	if err != nil {
		return nil, fmt.Errorf("invalid CPI series: %w", err)
	}

	static := cpiseries.NewStaticSource(series)
	if conf.CPI.Source != "redis" {
		return static, nil
	}

	key := conf.CPI.CacheKey
	if key == "" {
		key = constants.DefaultCPICacheKey
	}
	cache := cpiseries.NewRedisCache(conf.CPI.RedisAddress)
	return cpiseries.NewCachedSource(key, cache, static, logger), nil
}
