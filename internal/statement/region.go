package statement

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Sentinel errors for structural failures. Callers classify with errors.Is.
var (
	ErrEncoding      = errors.New("input is not valid UTF-8")
	ErrMalformedCSV  = errors.New("malformed CSV")
	ErrMissingColumn = errors.New("missing column")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// Markers are the literal substrings that bound the embedded table.
type Markers struct {
	Header string // e.g. "Sl. No."
	End    string // e.g. "Opening balance"
}

// DefaultMarkers returns the markers used by the supported export.
func DefaultMarkers() Markers {
	return Markers{Header: "Sl. No.", End: "Opening balance"}
}

// Region is the half-open line range [Start, End) of the table.
// Line Start is the header row.
type Region struct {
	Start       int  `json:"start"`
	End         int  `json:"end"`
	HeaderFound bool `json:"header_found"`
}

// Rows returns the number of lines after the header inside the region.
func (r Region) Rows() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start - 1
}

// LocateRegion scans lines for the table bounds. The last header marker
// seen before the end marker wins; the first end marker stops the scan.
// Without a header marker Start stays 0 and HeaderFound is false.
func LocateRegion(lines []string, m Markers) Region {
	reg := Region{End: len(lines)}
	for i, line := range lines {
		if m.Header != "" && strings.Contains(line, m.Header) {
			reg.Start = i
			reg.HeaderFound = true
		}
		if m.End != "" && strings.Contains(line, m.End) {
			reg.End = i
			break
		}
	}
	return reg
}

// ReadLines reads r as UTF-8 text and splits it into lines. A leading
// byte order mark is dropped and trailing carriage returns are trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, ErrEncoding
	}

	data, _, err = transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	data = bytes.TrimSuffix(data, []byte("\n"))
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}
