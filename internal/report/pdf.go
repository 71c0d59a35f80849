// Package report assembles the downloadable financial report PDF:
// a dated header, the financial summary table, the expense breakdown
// by category, the transaction detail table, and a generation footer.
package report

import (
	"fmt"

	"time"

	"budgetbuddy/internal/core"

	"github.com/go-pdf/fpdf"
)

// maxDescriptionLen caps how many characters of a description are shown
// in the detail table. Display-only; stored descriptions are untouched.
const maxDescriptionLen = 30

// Palette lifted from the web UI so the report matches the dashboard.
var (
	colorAccent   = rgb{13, 110, 253}  // #0d6efd
	colorTeal     = rgb{65, 184, 213}  // #41b8d5
	colorNavy     = rgb{30, 58, 95}    // #1e3a5f
	colorInk      = rgb{30, 41, 59}    // #1e293b
	colorMuted    = rgb{100, 116, 139} // #64748b
	colorFaint    = rgb{148, 163, 184} // #94a3b8
	colorRowShade = rgb{248, 250, 252} // #f8fafc
	colorGrid     = rgb{226, 232, 240} // #e2e8f0
)

type rgb struct{ r, g, b int }

// Build writes the four-section financial report to path. Any
// construction failure comes back as an error; callers must check it
// before serving the file.
func Build(path string, txns []core.Transaction, summary core.Summary) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Financial Report", false)
	pdf.SetMargins(54, 54, 54) // 0.75 inch
	pdf.SetAutoPageBreak(true, 54)
	pdf.AddPage()

	now := time.Now()
	writeHeader(pdf, now)
	writeSummary(pdf, summary)

	if breakdown := core.CategoryTotals(txns); len(breakdown) > 0 {
		writeBreakdown(pdf, breakdown)
	}

	writeDetails(pdf, txns)
	writeFooter(pdf, now)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write report pdf: %w", err)
	}
	return nil
}

func writeHeader(pdf *fpdf.Fpdf, now time.Time) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
	pdf.CellFormat(0, 16, "Financial Report - "+now.Format("January 02, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(12)
}

func sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(colorInk.r, colorInk.g, colorInk.b)
	pdf.CellFormat(0, 20, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func writeSummary(pdf *fpdf.Fpdf, s core.Summary) {
	sectionHeading(pdf, "Financial Summary")

	widths := []float64{216, 144} // 3in / 2in
	tableHeader(pdf, colorAccent, widths, []string{"Metric", "Amount"}, 12)

	rows := []struct {
		label  string
		amount core.Money
	}{
		{"Total Income", s.TotalIncome},
		{"Total Expenses", s.TotalExpenses},
		{"Net Balance", s.Balance},
	}
	pdf.SetTextColor(colorInk.r, colorInk.g, colorInk.b)
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFillColor(colorRowShade.r, colorRowShade.g, colorRowShade.b)
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(widths[0], 28, row.label, "1", 0, "L", fill, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(widths[1], 28, core.FormatUSD(row.amount), "1", 1, "R", fill, 0, "")
	}
	pdf.Ln(20)
}

func writeBreakdown(pdf *fpdf.Fpdf, breakdown []core.CategoryAmount) {
	sectionHeading(pdf, "Expense Breakdown by Category")

	widths := []float64{180, 108, 72}
	tableHeader(pdf, colorTeal, widths, []string{"Category", "Amount", "Percentage"}, 11)

	var total int64
	for _, ca := range breakdown {
		total += ca.Amount.Cents
	}

	pdf.SetTextColor(colorInk.r, colorInk.g, colorInk.b)
	pdf.SetFillColor(colorRowShade.r, colorRowShade.g, colorRowShade.b)
	pdf.SetFont("Helvetica", "", 10)
	for _, ca := range breakdown {
		pct := 0.0
		if total > 0 {
			pct = float64(ca.Amount.Cents) / float64(total) * 100
		}
		pdf.CellFormat(widths[0], 24, ca.Name, "1", 0, "L", true, 0, "")
		pdf.CellFormat(widths[1], 24, core.FormatUSD(ca.Amount), "1", 0, "R", true, 0, "")
		pdf.CellFormat(widths[2], 24, fmt.Sprintf("%.1f%%", pct), "1", 1, "C", true, 0, "")
	}
	pdf.Ln(20)
}

func writeDetails(pdf *fpdf.Fpdf, txns []core.Transaction) {
	sectionHeading(pdf, "Transaction Details")

	if len(txns) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(colorMuted.r, colorMuted.g, colorMuted.b)
		pdf.CellFormat(0, 16, "No transactions available.", "", 1, "C", false, 0, "")
		pdf.Ln(30)
		return
	}

	widths := []float64{86, 158, 86, 58, 72}
	tableHeader(pdf, colorNavy, widths, []string{"Date", "Description", "Category", "Type", "Amount"}, 10)

	pdf.SetTextColor(colorInk.r, colorInk.g, colorInk.b)
	pdf.SetFillColor(colorRowShade.r, colorRowShade.g, colorRowShade.b)
	pdf.SetFont("Helvetica", "", 9)
	for i, tx := range txns {
		fill := i%2 == 1
		pdf.CellFormat(widths[0], 21, core.DateOnly(tx.Date), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[1], 21, truncate(tx.Description), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 21, tx.Category, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[3], 21, string(tx.Type), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[4], 21, core.FormatUSD(tx.Amount), "1", 1, "R", fill, 0, "")
	}
	pdf.Ln(30)
}

func writeFooter(pdf *fpdf.Fpdf, now time.Time) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(colorFaint.r, colorFaint.g, colorFaint.b)
	pdf.CellFormat(0, 13, "Generated by BudgetBuddy Financial Tracker", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 13, now.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
}

func tableHeader(pdf *fpdf.Fpdf, bg rgb, widths []float64, labels []string, size float64) {
	pdf.SetFillColor(bg.r, bg.g, bg.b)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetFont("Helvetica", "B", size)
	pdf.SetDrawColor(colorGrid.r, colorGrid.g, colorGrid.b)
	for i, label := range labels {
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 30, label, "1", ln, "C", true, 0, "")
	}
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionLen {
		return s
	}
	return string(runes[:maxDescriptionLen])
}
