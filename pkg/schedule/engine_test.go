package schedule

import (
	"reflect"
	"testing"
)

func TestComputeExcludesInvalidPlans(t *testing.T) {
	tests := []struct {
		name  string
		plan  Plan
		field string
	}{
		{
			name:  "zero term",
			plan:  Plan{ID: "bad-term", Principal: 1000, AnnualRate: 5, TermMonths: 0, StartDate: "2025-01"},
			field: "termMonths",
		},
		{
			name:  "negative principal",
			plan:  Plan{ID: "bad-principal", Principal: -5, AnnualRate: 5, TermMonths: 12, StartDate: "2025-01"},
			field: "principal",
		},
		{
			name:  "zero principal",
			plan:  Plan{ID: "zero-principal", Principal: 0, AnnualRate: 5, TermMonths: 12, StartDate: "2025-01"},
			field: "principal",
		},
		{
			name:  "negative rate",
			plan:  Plan{ID: "bad-rate", Principal: 1000, AnnualRate: -1, TermMonths: 12, StartDate: "2025-01"},
			field: "annualRate",
		},
		{
			name:  "unparseable start date",
			plan:  Plan{ID: "bad-date", Principal: 1000, AnnualRate: 5, TermMonths: 12, StartDate: "January 2025"},
			field: "startDate",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := NewEngine(nil).Compute(Input{Plans: []Plan{test.plan, testPlan()}})

			if len(result.PlanErrors) != 1 {
				t.Fatalf("expected 1 plan error, got %d", len(result.PlanErrors))
			}
			planErr := result.PlanErrors[0]
			if planErr.PlanID != test.plan.ID {
				t.Errorf("error plan ID = %q, expected %q", planErr.PlanID, test.plan.ID)
			}
			if planErr.Field != test.field {
				t.Errorf("error field = %q, expected %q", planErr.Field, test.field)
			}
			if planErr.Error() == "" {
				t.Error("plan error has an empty message")
			}
			// The valid plan still computes its full schedule.
			if len(result.Rows) != 12 {
				t.Errorf("expected 12 rows for the valid plan, got %d", len(result.Rows))
			}
			for _, row := range result.Rows {
				if row.PlanID != "loan" {
					t.Errorf("row from excluded plan %q leaked into the schedule", row.PlanID)
				}
			}
		})
	}
}

func TestComputeMergesPlansChronologically(t *testing.T) {
	first := testPlan()
	second := Plan{ID: "second", Principal: 50000, AnnualRate: 4.0, TermMonths: 6, StartDate: "2025-03"}
	result := NewEngine(nil).Compute(Input{Plans: []Plan{first, second}})

	if len(result.Rows) != 18 {
		t.Fatalf("expected 18 merged rows, got %d", len(result.Rows))
	}
	for i := 1; i < len(result.Rows); i++ {
		if result.Rows[i].Date < result.Rows[i-1].Date {
			t.Fatalf("rows out of chronological order at index %d: %s after %s",
				i, result.Rows[i].Date, result.Rows[i-1].Date)
		}
	}
	// Where dates collide, plan input order decides.
	for i := 1; i < len(result.Rows); i++ {
		prev, cur := result.Rows[i-1], result.Rows[i]
		if prev.Date == cur.Date && prev.PlanID == "second" && cur.PlanID == "loan" {
			t.Fatalf("tie at %s broken against plan input order", cur.Date)
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	in := Input{
		Plans: []Plan{testPlan(), {ID: "second", Principal: 50000, AnnualRate: 4.0, TermMonths: 6, StartDate: "2025-03"}},
		RateChanges: []RateChange{
			{PlanID: "loan", EffectiveDate: "2025-06", AnnualRate: 7.5},
		},
		ExtraPayments: []ExtraPayment{
			{PlanID: "second", Period: 2, Amount: 5000, Strategy: ReduceTerm},
		},
	}

	engine := NewEngine(nil)
	first := engine.Compute(in)
	second := engine.Compute(in)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated computation over identical input produced different results")
	}
}

func TestComputeEmptyInput(t *testing.T) {
	result := NewEngine(nil).Compute(Input{Currency: "EUR"})

	if result.Currency != "EUR" {
		t.Errorf("currency = %q, expected EUR", result.Currency)
	}
	if len(result.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(result.Rows))
	}
	if len(result.PlanErrors) != 0 {
		t.Errorf("expected no plan errors, got %d", len(result.PlanErrors))
	}
}

func TestComputeAllPlansInvalid(t *testing.T) {
	result := NewEngine(nil).Compute(Input{Plans: []Plan{
		{ID: "a", Principal: 0, AnnualRate: 5, TermMonths: 12, StartDate: "2025-01"},
		{ID: "b", Principal: 1000, AnnualRate: 5, TermMonths: 0, StartDate: "2025-01"},
	}})

	if len(result.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(result.Rows))
	}
	if len(result.PlanErrors) != 2 {
		t.Errorf("expected 2 plan errors, got %d", len(result.PlanErrors))
	}
}
