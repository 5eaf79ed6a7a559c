// Package report renders an analyzer.Result as the plain-text summary
// printed by the CLI.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/cleared-dev/statements/internal/analyzer"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/summary"
)

const chartWidth = 40

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow, color.Bold)
)

// Renderer formats money in one currency.
type Renderer struct {
	currency string
	printer  *message.Printer
}

// New returns a Renderer using currency as the symbol prefix.
func New(currency string) *Renderer {
	return &Renderer{currency: currency, printer: message.NewPrinter(language.English)}
}

// Money formats d with thousands separators and two decimals, e.g. ₹1,234.50.
// Digits come from the decimal itself; only the integer part is grouped.
func (r *Renderer) Money(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = r.printer.Sprint(number.Decimal(n))
	}
	return r.currency + sign + whole + "." + frac
}

// Render writes the data-quality report, the financial summary, the
// monthly breakdown and the exported paths.
func (r *Renderer) Render(w io.Writer, res *analyzer.Result) error {
	if !res.OK {
		return r.RenderFailure(w, res)
	}

	var b strings.Builder

	if res.Dropped.Total > 0 {
		yellow.Fprintln(&b, "=== Data Quality Report ===")
		fmt.Fprintf(&b, "Total rows dropped: %d\n", res.Dropped.Total)
		fmt.Fprintf(&b, "Income entries dropped: %d\n", res.Dropped.Income)
		fmt.Fprintf(&b, "Expense entries dropped: %d\n\n", res.Dropped.Expenses)
	}

	fmt.Fprintln(&b, "=== Financial Summary ===")
	fmt.Fprintf(&b, "Total Income: %s\n", r.Money(res.Totals.Income))
	fmt.Fprintf(&b, "Total Expenses: %s\n", r.Money(res.Totals.Expenses))
	fmt.Fprintf(&b, "Net Profit/Loss: %s\n\n", r.Money(res.Totals.Net))

	fmt.Fprintln(&b, "=== Monthly Summary ===")
	for _, m := range res.Monthly {
		fmt.Fprintf(&b, "%s:\n", m.Label)
		fmt.Fprintf(&b, "  Income: %s\n", r.Money(m.Income))
		fmt.Fprintf(&b, "  Expenses: %s\n", r.Money(m.Expenses))
		fmt.Fprintf(&b, "  Net: %s (%s)\n\n", r.Money(m.Net.Abs()), signColor(m.Sign).Sprint(m.Sign))
	}

	if len(res.Exported) > 0 {
		fmt.Fprintln(&b, "=== Exports ===")
		for _, p := range res.Exported {
			fmt.Fprintf(&b, "  %s\n", p)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderFailure writes the failure message of res.
func (r *Renderer) RenderFailure(w io.Writer, res *analyzer.Result) error {
	msg := "unknown error"
	if res.Err != nil {
		msg = res.Err.Error()
	}
	_, err := red.Fprintf(w, "Error processing file: %s\n", msg)
	return err
}

// Chart writes a horizontal bar per month, scaled to the largest |net|.
func (r *Renderer) Chart(w io.Writer, points []summary.Point) error {
	maxAbs := decimal.Zero
	labelWidth := 0
	for _, p := range points {
		if a := p.Net.Abs(); a.GreaterThan(maxAbs) {
			maxAbs = a
		}
		labelWidth = max(labelWidth, len(p.Month))
	}

	var b strings.Builder
	fmt.Fprintln(&b, "=== Monthly Net ===")
	for _, p := range points {
		n := 0
		if !maxAbs.IsZero() {
			n = int(p.Net.Abs().Div(maxAbs).Mul(decimal.NewFromInt(chartWidth)).Round(0).IntPart())
		}
		bar := strings.Repeat("#", n)
		fmt.Fprintf(&b, "%-*s %s %s\n", labelWidth, p.Month, signColor(model.SignOf(p.Net)).Sprint(bar), r.Money(p.Net))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func signColor(s model.Sign) *color.Color {
	if s == model.SignLoss {
		return red
	}
	return green
}
