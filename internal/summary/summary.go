// Package summary splits a normalized statement by direction and builds
// the statement-wide totals and the monthly breakdown.
package summary

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/period"
)

// Partition returns the credit rows and the debit rows of t. Rows with
// any other direction are in neither.
func Partition(t *model.Table) (income, expenses *model.Table) {
	income = t.Filter(func(r model.Record) bool { return r.Direction == model.DirectionCredit })
	expenses = t.Filter(func(r model.Record) bool { return r.Direction == model.DirectionDebit })
	return income, expenses
}

// Total sums the amounts of t, skipping missing ones.
func Total(t *model.Table) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range t.Records {
		if r.Amount.Valid {
			sum = sum.Add(r.Amount.Decimal)
		}
	}
	return sum
}

// ComputeTotals returns income, expenses and their difference.
func ComputeTotals(income, expenses *model.Table) model.Totals {
	in := Total(income)
	out := Total(expenses)
	return model.Totals{Income: in, Expenses: out, Net: in.Sub(out)}
}

// SortByDateDesc returns a copy of t ordered most recent first. Rows
// sharing a date keep their statement order.
func SortByDateDesc(t *model.Table) *model.Table {
	out := t.Clone()
	slices.SortStableFunc(out.Records, func(a, b model.Record) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// Monthly groups dated rows of t by calendar month in chronological
// order. Net >= 0 is a profit.
func Monthly(t *model.Table) []model.MonthlyEntry {
	byLabel := make(map[string]*model.MonthlyEntry)
	var labels []string

	for _, r := range t.Records {
		if !r.HasDate {
			continue
		}
		label := period.Label(r.Date)
		e, ok := byLabel[label]
		if !ok {
			e = &model.MonthlyEntry{
				Label:    label,
				Year:     r.Date.Year(),
				Month:    int(r.Date.Month()),
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			byLabel[label] = e
			labels = append(labels, label)
		}
		if !r.Amount.Valid {
			continue
		}
		switch r.Direction {
		case model.DirectionCredit:
			e.Income = e.Income.Add(r.Amount.Decimal)
		case model.DirectionDebit:
			e.Expenses = e.Expenses.Add(r.Amount.Decimal)
		}
	}

	// Labels come from period.Label, so they always parse.
	sorted, _ := period.SortLabels(labels)

	entries := make([]model.MonthlyEntry, 0, len(sorted))
	for _, l := range sorted {
		e := byLabel[l]
		e.Net = e.Income.Sub(e.Expenses)
		e.Sign = model.SignOf(e.Net)
		entries = append(entries, *e)
	}
	return entries
}

// Point is one bar of the monthly net chart.
type Point struct {
	Month string          `json:"month"`
	Net   decimal.Decimal `json:"net"`
}

// NetSeries returns the per-month net in the order of entries.
func NetSeries(entries []model.MonthlyEntry) []Point {
	pts := make([]Point, len(entries))
	for i, e := range entries {
		pts[i] = Point{Month: e.Label, Net: e.Net}
	}
	return pts
}
