// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/finance-tools/loan-schedule/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// AddMonths returns the date offset by the given number of calendar months.
// The offset is calendar-month arithmetic, not a fixed 30-day increment.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// MonthsBetween returns the number of whole calendar months from firstDate to
// secondDate. The result is negative when secondDate precedes firstDate.
func MonthsBetween(firstDate, secondDate string) (int, error) {
	firstDateT, err := time.Parse(DateTimeLayout, firstDate)
	if err != nil {
		return 0, fmt.Errorf("failed to parse date %s: %w", firstDate, err)
	}
	secondDateT, err := time.Parse(DateTimeLayout, secondDate)
	if err != nil {
		return 0, fmt.Errorf("failed to parse date %s: %w", secondDate, err)
	}
	years := secondDateT.Year() - firstDateT.Year()
	months := int(secondDateT.Month()) - int(firstDateT.Month())
	return years*constants.MonthsPerYear + months, nil
}

// DateBeforeDate returns true if firstDate is strictly before secondDate.
func DateBeforeDate(firstDate string, secondDate string) (bool, error) {
	firstDateT, err := time.Parse(DateTimeLayout, firstDate)
	if err != nil {
		return false, err
	}
	secondDateT, err := time.Parse(DateTimeLayout, secondDate)
	if err != nil {
		return false, err
	}
	return firstDateT.Before(secondDateT), nil
}
