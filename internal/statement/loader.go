package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

// LoadTable parses the lines inside region into a table. The header
// tokens are whitespace-stripped; every data row must match the header's
// field count.
func LoadTable(lines []string, region Region) (*model.Table, error) {
	if region.Start < 0 || region.End > len(lines) || region.Start >= region.End {
		return nil, fmt.Errorf("%w: empty table region [%d, %d)", ErrMalformedCSV, region.Start, region.End)
	}

	cr := csv.NewReader(strings.NewReader(strings.Join(lines[region.Start:region.End], "\n")))
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", ErrMalformedCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrMalformedCSV, err)
	}

	tbl := &model.Table{Columns: make([]string, len(header))}
	for i, col := range header {
		tbl.Columns[i] = strings.TrimSpace(col)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
		}
		tbl.Records = append(tbl.Records, model.Record{Values: rec})
	}
	return tbl, nil
}

// RequireColumns returns ErrMissingColumn for the first column not in t.
func RequireColumns(t *model.Table, cols ...string) error {
	for _, c := range cols {
		if t.Index(c) < 0 {
			return fmt.Errorf("%w: %q (have %s)", ErrMissingColumn, c, strings.Join(t.Columns, ", "))
		}
	}
	return nil
}
