// Package output provides utilities for formatting and displaying computed
// schedules. Presentation concerns live here, outside the engine; the rows
// carry raw amounts in the portfolio's native currency unit.
package output

import (
	"fmt"
	"strings"

	"github.com/finance-tools/loan-schedule/pkg/schedule"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *schedule.Result) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Amortization schedule (%s) ---\n", result.Currency)
	fmt.Printf("Date    | Plan            | # | Payment       | Interest      | Principal     | Extra         | Balance       | Notes\n")
	fmt.Printf("____    | ____            | _ | _______       | ________      | _________     | _____         | _______       | _____\n")
	for _, row := range result.Rows {
		_, _ = p.Printf("%s | %-15s | %d | %.2f | %.2f | %.2f | %.2f | %.2f | %s\n",
			row.Date, row.PlanID, row.Period, row.ScheduledPayment, row.Interest,
			row.Principal, row.ExtraPayment, row.ClosingBalance, row.Label)
	}
	for _, planErr := range result.PlanErrors {
		fmt.Printf("!! %s\n", planErr.Error())
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result *schedule.Result) {
	fmt.Print(CsvString(result))
}

// CsvString renders the schedule in comma-separated value format.
func CsvString(result *schedule.Result) string {
	var builder strings.Builder
	builder.WriteString(`"date","plan","period","openingBalance","rate","scheduledPayment","interest","principal","extraPayment","cpiAdjustment","closingBalance","grace","label"`)
	builder.WriteString("\n")
	for _, row := range result.Rows {
		grace := ""
		if row.Grace {
			grace = string(row.GraceMode)
		}
		fmt.Fprintf(&builder, `"%s","%s","%d","%.2f","%.4f","%.2f","%.2f","%.2f","%.2f","%.6f","%.2f","%s","%s"`,
			row.Date, row.PlanID, row.Period, row.OpeningBalance, row.AppliedRate,
			row.ScheduledPayment, row.Interest, row.Principal, row.ExtraPayment,
			row.CPIAdjustment, row.ClosingBalance, grace, row.Label)
		builder.WriteString("\n")
	}
	return builder.String()
}
