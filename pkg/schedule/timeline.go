package schedule

import (
	"fmt"
	"time"

	"github.com/finance-tools/loan-schedule/pkg/constants"
	"github.com/finance-tools/loan-schedule/pkg/datetime"
)

// Period is one installment interval descriptor produced by the timeline
// builder. Index is 1-based; Date is the period's payment date, Index
// calendar months after the plan's start date.
type Period struct {
	Index int
	Date  string
}

// BuildTimeline expands a plan's term into its ordered period descriptors.
// The arithmetic is calendar-month based, not fixed 30-day increments.
func BuildTimeline(startDate string, termMonths int) ([]Period, error) {
	if termMonths < 1 {
		return nil, fmt.Errorf("term must cover at least one period, got %d", termMonths)
	}
	start, err := time.Parse(constants.DateTimeLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date %q: %w", startDate, err)
	}

	timeline := make([]Period, termMonths)
	for i := 1; i <= termMonths; i++ {
		timeline[i-1] = Period{
			Index: i,
			Date:  datetime.AddMonths(start, i).Format(constants.DateTimeLayout),
		}
	}
	return timeline, nil
}
