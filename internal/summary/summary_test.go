package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func rec(id string, when time.Time, dir model.Direction, amount int64) model.Record {
	return model.Record{
		Values:    []string{id},
		Date:      when,
		HasDate:   true,
		Amount:    decimal.NewNullDecimal(decimal.NewFromInt(amount)),
		Direction: dir,
	}
}

func table(recs ...model.Record) *model.Table {
	return &model.Table{Columns: []string{"Sl. No."}, Records: recs}
}

func ids(t *model.Table) []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Values[0]
	}
	return out
}

func TestPartition(t *testing.T) {
	full := table(
		rec("1", date(2024, 3, 1), model.DirectionCredit, 100),
		rec("2", date(2024, 3, 2), model.DirectionDebit, 50),
		rec("3", date(2024, 3, 3), model.DirectionUnknown, 10),
		rec("4", date(2024, 3, 4), model.DirectionCredit, 200),
	)

	income, expenses := Partition(full)
	assert.Equal(t, []string{"1", "4"}, ids(income))
	assert.Equal(t, []string{"2"}, ids(expenses))
	assert.Equal(t, 4, full.Len(), "unknown direction stays in the full table")

	for _, r := range income.Records {
		assert.Equal(t, model.DirectionCredit, r.Direction)
	}
	for _, r := range expenses.Records {
		assert.Equal(t, model.DirectionDebit, r.Direction)
	}
}

func TestTotal_SkipsMissing(t *testing.T) {
	missing := rec("2", date(2024, 3, 2), model.DirectionCredit, 0)
	missing.Amount = decimal.NullDecimal{}

	got := Total(table(rec("1", date(2024, 3, 1), model.DirectionCredit, 100), missing))
	assert.True(t, decimal.NewFromInt(100).Equal(got))
	assert.True(t, decimal.Zero.Equal(Total(table())))
}

func TestSortByDateDesc(t *testing.T) {
	in := table(
		rec("a", date(2024, 1, 5), model.DirectionCredit, 1),
		rec("b", date(2024, 3, 1), model.DirectionCredit, 1),
		rec("c", date(2024, 1, 5), model.DirectionCredit, 1),
		rec("d", date(2023, 12, 31), model.DirectionCredit, 1),
	)
	out := SortByDateDesc(in)
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(out))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(in), "input order untouched")
}

func TestEndToEndScenario(t *testing.T) {
	full := table(
		rec("1", date(2024, 3, 1), model.DirectionCredit, 100),
		rec("2", date(2024, 3, 5), model.DirectionCredit, 200),
		rec("3", date(2024, 3, 9), model.DirectionCredit, 300),
		rec("4", date(2024, 3, 12), model.DirectionDebit, 50),
		rec("5", date(2024, 3, 20), model.DirectionDebit, 75),
	)

	income, expenses := Partition(full)
	totals := ComputeTotals(income, expenses)
	assert.Equal(t, "600", totals.Income.String())
	assert.Equal(t, "125", totals.Expenses.String())
	assert.Equal(t, "475", totals.Net.String())

	months := Monthly(full)
	require.Len(t, months, 1)
	m := months[0]
	assert.Equal(t, "March 2024", m.Label)
	assert.Equal(t, "600", m.Income.String())
	assert.Equal(t, "125", m.Expenses.String())
	assert.Equal(t, "475", m.Net.String())
	assert.Equal(t, model.SignProfit, m.Sign)
}

func TestMonthly_ChronologicalOrder(t *testing.T) {
	full := table(
		rec("1", date(2024, 2, 10), model.DirectionCredit, 10),
		rec("2", date(2024, 1, 10), model.DirectionCredit, 10),
		rec("3", date(2023, 3, 10), model.DirectionCredit, 10),
		rec("4", date(2024, 4, 10), model.DirectionCredit, 10),
	)
	var labels []string
	for _, m := range Monthly(full) {
		labels = append(labels, m.Label)
	}
	assert.Equal(t, []string{"March 2023", "January 2024", "February 2024", "April 2024"}, labels)
}

func TestMonthly_SignBoundary(t *testing.T) {
	full := table(
		rec("1", date(2024, 5, 1), model.DirectionCredit, 80),
		rec("2", date(2024, 5, 2), model.DirectionDebit, 80),
		rec("3", date(2024, 6, 1), model.DirectionCredit, 10),
		rec("4", date(2024, 6, 2), model.DirectionDebit, 30),
	)
	months := Monthly(full)
	require.Len(t, months, 2)

	assert.True(t, months[0].Net.IsZero())
	assert.Equal(t, model.SignProfit, months[0].Sign, "zero net is a profit")

	assert.Equal(t, "-20", months[1].Net.String())
	assert.Equal(t, model.SignLoss, months[1].Sign)
}

func TestMonthly_IgnoresUnknownDirectionAndUndated(t *testing.T) {
	undated := rec("3", time.Time{}, model.DirectionCredit, 999)
	undated.HasDate = false

	full := table(
		rec("1", date(2024, 7, 1), model.DirectionUnknown, 500),
		rec("2", date(2024, 7, 2), model.DirectionDebit, 5),
		undated,
	)
	months := Monthly(full)
	require.Len(t, months, 1)
	assert.Equal(t, "July 2024", months[0].Label)
	assert.True(t, months[0].Income.IsZero())
	assert.Equal(t, "5", months[0].Expenses.String())
	assert.Equal(t, model.SignLoss, months[0].Sign)
	assert.Equal(t, 2024, months[0].Year)
	assert.Equal(t, 7, months[0].Month)
}

func TestMonthly_Empty(t *testing.T) {
	assert.Empty(t, Monthly(table()))
}

func TestNetSeries(t *testing.T) {
	pts := NetSeries([]model.MonthlyEntry{
		{Label: "January 2024", Net: decimal.NewFromInt(5)},
		{Label: "February 2024", Net: decimal.NewFromInt(-3)},
	})
	require.Len(t, pts, 2)
	assert.Equal(t, "January 2024", pts[0].Month)
	assert.Equal(t, "-3", pts[1].Net.String())
}
