// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gervasio-autos/financing-simulator/internal/simulator"
	"github.com/gervasio-autos/financing-simulator/pkg/format"
	"github.com/gervasio-autos/financing-simulator/pkg/mathutil"
)

// PromotionalMarker flags zero-interest quotes in the pretty table.
const PromotionalMarker = "0% interest"

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, sim simulator.Simulation) {
	fmt.Fprintf(w, "--- Financing for %s ---\n", sim.Vehicle.Title())
	fmt.Fprintf(w, "Price        | %s\n", format.Price(sim.Vehicle.Price))
	fmt.Fprintf(w, "Down payment | %s (%s%%)\n", format.Price(sim.DownPayment),
		mathutil.CalculatePercentage(sim.DownPayment, sim.Vehicle.Price).Round(0).String())
	fmt.Fprintf(w, "To finance   | %s\n", format.Price(sim.Principal))
	if sim.FullyPaid {
		fmt.Fprintf(w, "\nThe down payment covers the full price.\n")
		return
	}

	fmt.Fprintf(w, "\nTerm | Monthly | Total | Notes\n")
	fmt.Fprintf(w, "____ | _______ | _____ | _____\n")
	for _, q := range sim.Quotes {
		note := ""
		if q.IsPromotional {
			note = PromotionalMarker
		}
		fmt.Fprintf(w, "%d | %s | %s | %s\n", q.TermMonths,
			format.Price(q.MonthlyPayment), format.Price(q.TotalRepayment), note)
	}
	if sim.ContactURL != "" {
		fmt.Fprintf(w, "\nContact: %s\n", sim.ContactURL)
	}
}

// CsvFormat writes in comma-separated value format.
func CsvFormat(w io.Writer, sim simulator.Simulation) {
	fmt.Fprintf(w, `"term","monthly","total","promotional"`)
	fmt.Fprintf(w, "\n")
	for _, q := range sim.Quotes {
		fmt.Fprintf(w, `"%d","%s","%s","%t"`, q.TermMonths,
			q.MonthlyPayment.StringFixed(0), q.TotalRepayment.StringFixed(0), q.IsPromotional)
		fmt.Fprintf(w, "\n")
	}
}

// PrettySchedule writes the month-by-month breakdown of one quote.
func PrettySchedule(w io.Writer, schedule simulator.Schedule) {
	fmt.Fprintf(w, "--- %d installments of %s (TNA %s%%) ---\n", schedule.Quote.TermMonths,
		format.Price(schedule.Quote.MonthlyPayment), schedule.Rate.Shift(2).String())
	fmt.Fprintf(w, "# | Payment | Interest | Principal | Remaining\n")
	fmt.Fprintf(w, "_ | _______ | ________ | _________ | _________\n")
	for _, p := range schedule.Payments {
		fmt.Fprintf(w, "%d | %s | %s | %s | %s\n", p.Number, format.Price(p.Payment),
			format.Price(p.Interest), format.Price(p.Principal), format.Price(p.RemainingPrincipal))
	}
}

// CsvSchedule writes the schedule in comma-separated value format.
func CsvSchedule(w io.Writer, schedule simulator.Schedule) {
	fmt.Fprintf(w, `"number","payment","interest","principal","remaining"`)
	fmt.Fprintf(w, "\n")
	for _, p := range schedule.Payments {
		fmt.Fprintf(w, `"%d","%s","%s","%s","%s"`, p.Number, p.Payment.StringFixed(0),
			p.Interest.StringFixed(0), p.Principal.StringFixed(0), p.RemainingPrincipal.StringFixed(0))
		fmt.Fprintf(w, "\n")
	}
}

// CsvString renders CsvFormat into a string.
func CsvString(sim simulator.Simulation) string {
	var buf bytes.Buffer
	CsvFormat(&buf, sim)
	return buf.String()
}
