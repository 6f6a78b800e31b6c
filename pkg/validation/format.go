// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/finance-tools/loan-schedule/pkg/constants"
	"github.com/finance-tools/loan-schedule/pkg/schedule"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateGraceMode checks if the grace mode names a supported suspension mode.
func ValidateGraceMode(mode string) error {
	m := schedule.GraceMode(mode)
	if m != schedule.GraceInterestOnly && m != schedule.GraceDeferred {
		return fmt.Errorf("expected grace mode of %s or %s, got %s",
			schedule.GraceInterestOnly, schedule.GraceDeferred, mode)
	}
	return nil
}

// ValidateExtraStrategy checks if the strategy names a supported extra-payment
// strategy.
func ValidateExtraStrategy(strategy string) error {
	s := schedule.ExtraStrategy(strategy)
	if s != schedule.ReduceTerm && s != schedule.ReducePayment {
		return fmt.Errorf("expected extra payment strategy of %s or %s, got %s",
			schedule.ReduceTerm, schedule.ReducePayment, strategy)
	}
	return nil
}
