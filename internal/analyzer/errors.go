package analyzer

import (
	"errors"
	"io/fs"

	"github.com/cleared-dev/statements/internal/statement"
)

// Kind classifies a failed run.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindIO             Kind = "io"
	KindEncoding       Kind = "encoding"
	KindMalformedCSV   Kind = "malformed_csv"
	KindMissingColumn  Kind = "missing_column"
	KindHeaderNotFound Kind = "header_not_found"
	KindInvalidAmount  Kind = "invalid_amount"
	KindExport         Kind = "export"

	// KindInvalidDate never fails a run; it tags the warning emitted for
	// rows dropped because their date did not parse.
	KindInvalidDate Kind = "invalid_date"
)

// ErrHeaderNotFound is returned in strict mode when no header marker exists.
var ErrHeaderNotFound = errors.New("header marker not found")

// Error is the failure payload of a Result.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.Message }

func (e *Error) Unwrap() error { return e.Err }

// classify maps a pipeline error onto a Kind.
func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, statement.ErrEncoding):
		return KindEncoding
	case errors.Is(err, statement.ErrMalformedCSV):
		return KindMalformedCSV
	case errors.Is(err, statement.ErrMissingColumn):
		return KindMissingColumn
	case errors.Is(err, ErrHeaderNotFound):
		return KindHeaderNotFound
	case errors.Is(err, statement.ErrInvalidAmount):
		return KindInvalidAmount
	default:
		return KindIO
	}
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}
