// Package report renders financial reports as PDF documents.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fintrack/backend/pkg/aggregate"
	"github.com/fintrack/backend/pkg/models"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ContentType is the MIME type of rendered reports.
const ContentType = "application/pdf"

// DefaultFilename is the file name used when reports are downloaded or attached.
const DefaultFilename = "report.pdf"

// Report is the data shown in a report.
type Report struct {
	Title        string
	Owner        string
	Start        time.Time
	End          time.Time
	Dashboard    aggregate.Dashboard
	Transactions []models.Transaction
	Language     language.Tag // Used for number formatting, defaults to English
}

const (
	pageMargin  = 15.0
	lineHeight  = 7.0
	columnDate  = 28.0
	columnType  = 24.0
	columnCat   = 40.0
	columnDesc  = 58.0
	columnValue = 30.0
)

// moneyFormatter returns a function formatting amounts with two decimal
// places and the separators of the language.
//
// Only the whole part goes through the printer for digit grouping, the
// cents are taken from the decimal itself so no precision is lost.
func moneyFormatter(tag language.Tag) func(decimal.Decimal) string {
	p := message.NewPrinter(tag)
	separator := strings.Trim(p.Sprint(number.Decimal(0.5, number.Scale(1))), "05")

	return func(d decimal.Decimal) string {
		d = d.Round(2)
		whole := d.Truncate(0)
		cents := d.Sub(whole).Abs().Shift(2).IntPart()

		sign := ""
		if d.IsNegative() && whole.IsZero() {
			sign = "-"
		}

		return fmt.Sprintf("%s%s%s%02d", sign, p.Sprint(number.Decimal(whole.IntPart())), separator, cents)
	}
}

// Render writes the report as PDF to w.
func Render(w io.Writer, r Report) error {
	tag := r.Language
	if tag == language.Und {
		tag = language.English
	}
	money := moneyFormatter(tag)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	title := r.Title
	if title == "" {
		title = "Financial report"
	}
	pdf.SetTitle(title, true)
	pdf.SetCreator("fintrack", true)

	// fpdf core fonts are latin-1 only
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	period := fmt.Sprintf("%s to %s", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
	pdf.CellFormat(0, lineHeight, tr(period), "", 1, "L", false, 0, "")
	if r.Owner != "" {
		pdf.CellFormat(0, lineHeight, tr(r.Owner), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Summary
	section(pdf, tr("Summary"))
	summary := r.Dashboard.Summary
	for _, row := range [][2]string{
		{"Income", money(summary.Income)},
		{"Expense", money(summary.Expense)},
		{"Balance", money(summary.Balance)},
	} {
		pdf.CellFormat(60, lineHeight, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, lineHeight, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Expenses by category
	section(pdf, tr("Expenses by category"))
	if len(r.Dashboard.CategoryData) == 0 {
		pdf.CellFormat(0, lineHeight, tr("No expenses in this period."), "", 1, "L", false, 0, "")
	}
	for _, c := range r.Dashboard.CategoryData {
		pdf.CellFormat(60, lineHeight, tr(c.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, lineHeight, money(c.Value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Transactions
	section(pdf, tr("Transactions"))
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range []struct {
		label string
		width float64
		align string
	}{
		{"Date", columnDate, "L"},
		{"Type", columnType, "L"},
		{"Category", columnCat, "L"},
		{"Description", columnDesc, "L"},
		{"Amount", columnValue, "R"},
	} {
		pdf.CellFormat(h.width, lineHeight, tr(h.label), "B", 0, h.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range r.Transactions {
		pdf.CellFormat(columnDate, lineHeight, t.Date.Format(time.DateOnly), "", 0, "L", false, 0, "")
		pdf.CellFormat(columnType, lineHeight, string(t.Type), "", 0, "L", false, 0, "")
		pdf.CellFormat(columnCat, lineHeight, tr(truncate(t.Category, 22)), "", 0, "L", false, 0, "")
		pdf.CellFormat(columnDesc, lineHeight, tr(truncate(t.Description, 32)), "", 0, "L", false, 0, "")

		amount := money(t.Amount)
		if t.Type == models.TransactionExpense {
			amount = "-" + amount
		}
		pdf.CellFormat(columnValue, lineHeight, amount, "", 1, "R", false, 0, "")
	}

	if pdf.Err() {
		return fmt.Errorf("rendering report: %w", pdf.Error())
	}

	return pdf.Output(w)
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
