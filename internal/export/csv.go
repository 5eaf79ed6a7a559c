package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/statement"
)

const dateFormat = "2006-01-02"

// Names are the file names of the two exports.
type Names struct {
	Income   string `yaml:"income"`
	Expenses string `yaml:"expenses"`
}

// DefaultNames returns the export names the analyzer has always used.
func DefaultNames() Names {
	return Names{Income: "uc_income.csv", Expenses: "uc_expenses.csv"}
}

// WriteTable writes t as CSV: the header row, then one row per record
// with the date and amount cells replaced by their normalized values.
func WriteTable(w io.Writer, t *model.Table, cols statement.Columns) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range t.Records {
		if err := cw.Write(MarshalRecord(t, rec, cols)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a normalized record to a CSV row.
func MarshalRecord(t *model.Table, rec model.Record, cols statement.Columns) []string {
	row := append([]string(nil), rec.Values...)

	if i := t.Index(cols.Date); i >= 0 {
		row[i] = ""
		if rec.HasDate {
			row[i] = rec.Date.Format(dateFormat)
		}
	}
	if i := t.Index(cols.Amount); i >= 0 {
		row[i] = ""
		if rec.Amount.Valid {
			row[i] = rec.Amount.Decimal.String()
		}
	}
	if i := t.Index(cols.Balance); i >= 0 {
		row[i] = ""
		if rec.Balance.Valid {
			row[i] = rec.Balance.Decimal.String()
		}
	}
	return row
}

// WriteFiles writes the income and expense tables into dir and returns
// the paths written.
func WriteFiles(dir string, names Names, cols statement.Columns, income, expenses *model.Table) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	var paths []string
	for _, out := range []struct {
		name string
		t    *model.Table
	}{
		{names.Income, income},
		{names.Expenses, expenses},
	} {
		path := filepath.Join(dir, out.name)
		if err := writeFile(path, out.t, cols); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, t *model.Table, cols statement.Columns) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteTable(f, t, cols); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
