// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/finance-tools/loan-schedule/pkg/schedule"
)

// PlanRows extracts the rows belonging to one plan, in emission order.
func PlanRows(result *schedule.Result, planID string) []schedule.Row {
	var rows []schedule.Row
	for _, row := range result.Rows {
		if row.PlanID == planID {
			rows = append(rows, row)
		}
	}
	return rows
}

// PlanError finds the validation error for one plan, if any.
func PlanError(result *schedule.Result, planID string) *schedule.PlanError {
	for _, planErr := range result.PlanErrors {
		if planErr.PlanID == planID {
			return planErr
		}
	}
	return nil
}
