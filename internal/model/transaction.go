package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the polarity of a statement row.
type Direction string

const (
	DirectionCredit  Direction = "CR"
	DirectionDebit   Direction = "DR"
	DirectionUnknown Direction = ""
)

// ParseDirection maps a raw "Dr / Cr" cell to a Direction.
func ParseDirection(raw string) Direction {
	switch strings.TrimSpace(raw) {
	case string(DirectionCredit):
		return DirectionCredit
	case string(DirectionDebit):
		return DirectionDebit
	default:
		return DirectionUnknown
	}
}

// Record is one row of a statement table.
type Record struct {
	Values    []string            // raw cells, aligned with Table.Columns
	Date      time.Time
	HasDate   bool                // false = missing-date marker
	Amount    decimal.NullDecimal // Valid=false for an empty cell
	Balance   decimal.NullDecimal
	Direction Direction
}

// Clone returns a copy that shares nothing with r.
func (r Record) Clone() Record {
	out := r
	out.Values = append([]string(nil), r.Values...)
	return out
}

// Table is an ordered set of records sharing one header.
type Table struct {
	Columns []string
	Records []Record
}

// Index returns the position of col in the header, or -1.
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	return t.Filter(func(Record) bool { return true })
}

// Filter returns a new table holding copies of the records keep accepts.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, 0, len(t.Records)),
	}
	for _, rec := range t.Records {
		if keep(rec) {
			out.Records = append(out.Records, rec.Clone())
		}
	}
	return out
}
