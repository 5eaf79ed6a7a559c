package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/statements/internal/model"
)

// DateLayout is DD/MM/YYYY; one-digit day and month are accepted.
const DateLayout = "2/1/2006"

// Columns names the header cells the normalizer reads.
type Columns struct {
	Date      string `yaml:"date"`
	Direction string `yaml:"direction"`
	Amount    string `yaml:"amount"`
	Balance   string `yaml:"balance"`
}

// DefaultColumns returns the column names of the supported export.
func DefaultColumns() Columns {
	return Columns{
		Date:      "Date",
		Direction: "Dr / Cr",
		Amount:    "Amount",
		Balance:   "Balance",
	}
}

// Names lists the columns Normalize requires.
func (c Columns) Names() []string {
	return []string{c.Date, c.Direction, c.Amount, c.Balance}
}

var amountReplacer = strings.NewReplacer(`"`, "", "=", "", ",", "")

// CleanAmount strips spreadsheet quoting (`="..."`) and thousands
// separators, then parses the rest. An empty cell is returned as a
// missing value, not zero.
func CleanAmount(raw string) (decimal.NullDecimal, error) {
	s := strings.TrimSpace(amountReplacer.Replace(raw))
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: parsing %q: %v", ErrInvalidAmount, raw, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseDate parses a DD/MM/YYYY date. Any other shape is ErrInvalidDate.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// Normalize returns a copy of t with Amount, Balance, Direction and Date
// populated from the raw cells. Amount and balance failures abort, as does
// a negative amount since the sign lives in the direction column. Date
// failures leave HasDate false.
func Normalize(t *model.Table, cols Columns) (*model.Table, error) {
	if err := RequireColumns(t, cols.Names()...); err != nil {
		return nil, err
	}
	iDate := t.Index(cols.Date)
	iDir := t.Index(cols.Direction)
	iAmt := t.Index(cols.Amount)
	iBal := t.Index(cols.Balance)

	out := t.Clone()
	for i := range out.Records {
		rec := &out.Records[i]

		amt, err := CleanAmount(rec.Values[iAmt])
		if err != nil {
			return nil, fmt.Errorf("row %d: column %q: %w", i+1, cols.Amount, err)
		}
		if amt.Valid && amt.Decimal.IsNegative() {
			return nil, fmt.Errorf("row %d: column %q: %w: negative amount %q", i+1, cols.Amount, ErrInvalidAmount, rec.Values[iAmt])
		}
		bal, err := CleanAmount(rec.Values[iBal])
		if err != nil {
			return nil, fmt.Errorf("row %d: column %q: %w", i+1, cols.Balance, err)
		}
		rec.Amount = amt
		rec.Balance = bal
		rec.Direction = model.ParseDirection(rec.Values[iDir])

		if d, err := ParseDate(rec.Values[iDate]); err == nil {
			rec.Date = d
			rec.HasDate = true
		}
	}
	return out, nil
}

// DropMissingDates returns the records of t that carry a date and the
// number of records dropped.
func DropMissingDates(t *model.Table) (*model.Table, int) {
	kept := t.Filter(func(r model.Record) bool { return r.HasDate })
	return kept, t.Len() - kept.Len()
}
