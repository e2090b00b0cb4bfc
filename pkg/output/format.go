// Package output provides utilities for formatting and displaying round
// computation results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/captable/internal/engine"
	"github.com/iwvelando/captable/pkg/captable"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(report engine.Report) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Pre-round ownership (estimate) ---\n")
	printTable(p, report.PreRound)

	if report.InputRequirement != "" {
		fmt.Printf("\n%s\n", report.InputRequirement)
	}

	if len(report.NoteErrors) > 0 {
		fmt.Printf("\n--- Invalid notes ---\n")
		for _, row := range report.PreRound.Rows {
			if msg, ok := report.NoteErrors[row.ID]; ok {
				fmt.Printf("%s: %s\n", row.Name, msg)
			}
		}
	}

	if report.PostRound != nil {
		fmt.Printf("\n--- Post-round ownership ---\n")
		printTable(p, *report.PostRound)
	}

	if report.Conversion != nil {
		conv := report.Conversion
		fmt.Printf("\n--- Round summary ---\n")
		_, _ = p.Printf("Price per share    | $%.8f\n", conv.PricePerShare)
		_, _ = p.Printf("Total shares       | %.0f\n", conv.TotalShares)
		_, _ = p.Printf("New investor shares| %.0f\n", conv.NewInvestorShares)
		_, _ = p.Printf("Note shares        | %.0f\n", conv.ConvertedNoteShares)
		_, _ = p.Printf("Option pool        | %.0f (+%.0f)\n", conv.TotalOptions, conv.OptionsPoolIncrease)
		_, _ = p.Printf("Total invested     | $%.2f\n", conv.TotalInvested)
		if !conv.Converged {
			fmt.Printf("Warning: solver exhausted its iteration budget (%d iterations)\n", conv.Iterations)
		}
	}
}

func printTable(p *message.Printer, table captable.Table) {
	if table.Reason != "" {
		fmt.Printf("Status: %s (%s)\n", table.Status, table.Reason)
	}
	fmt.Printf("Holder                | Shares        | Ownership | Notes\n")
	fmt.Printf("______                | ______        | _________ | _____\n")
	for _, row := range table.Rows {
		notes := rowNotes(row)
		_, _ = p.Printf("%-21s | %13.0f | %8.2f%% | %s\n", row.Name, row.Shares, row.Ownership*100, notes)
	}
}

func rowNotes(row captable.Row) string {
	var notes []string
	if row.Price > 0 {
		notes = append(notes, fmt.Sprintf("$%.8f/share", row.Price))
	}
	if row.MFN {
		notes = append(notes, "MFN")
	}
	if row.Reason != "" {
		notes = append(notes, row.Reason)
	}
	return strings.Join(notes, ", ")
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(report engine.Report) {
	fmt.Print(CsvString(report))
}

// CsvString renders the report as CSV, one section per table.
func CsvString(report engine.Report) string {
	var b strings.Builder

	b.WriteString(`"table","kind","name","shares","ownership","invested","price","notes"` + "\n")
	writeTableCsv(&b, "pre-round", report.PreRound)
	if report.PostRound != nil {
		writeTableCsv(&b, "post-round", *report.PostRound)
	}

	return b.String()
}

func writeTableCsv(b *strings.Builder, label string, table captable.Table) {
	for _, row := range table.Rows {
		fmt.Fprintf(b, `"%s","%s","%s","%.0f","%.6f","%.2f","%.8f","%s"`,
			label, row.Kind, strings.ReplaceAll(row.Name, `"`, `""`),
			row.Shares, row.Ownership, row.Invested, row.Price, rowNotes(row))
		b.WriteString("\n")
	}
}
