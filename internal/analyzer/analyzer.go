// Package analyzer runs a bank statement through the full pipeline:
// region location, table loading, field normalization and aggregation.
// Every failure is caught here and turned into a Result with Err set.
package analyzer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/diag"
	"github.com/cleared-dev/statements/internal/export"
	"github.com/cleared-dev/statements/internal/model"
	"github.com/cleared-dev/statements/internal/statement"
	"github.com/cleared-dev/statements/internal/summary"
)

// Options controls a run.
type Options struct {
	Markers      statement.Markers
	Columns      statement.Columns
	StrictHeader bool
	OutputDir    string // exports are skipped when empty
	Names        export.Names
	SampleRows   int
}

// DefaultOptions returns options for the supported export with no
// file output.
func DefaultOptions() Options {
	return Options{
		Markers:    statement.DefaultMarkers(),
		Columns:    statement.DefaultColumns(),
		Names:      export.DefaultNames(),
		SampleRows: 5,
	}
}

// OptionsFromConfig builds Options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.Markers = cfg.Statement.Markers()
	opts.Columns = cfg.Statement.Columns
	opts.StrictHeader = cfg.Statement.StrictHeader
	opts.OutputDir = cfg.Output.Dir
	opts.Names = cfg.Output.Names
	return opts
}

// DropCounts reports rows removed for a missing date. Income and
// Expenses are measured against each subset's own size.
type DropCounts struct {
	Total    int `json:"total"`
	Income   int `json:"income"`
	Expenses int `json:"expenses"`
}

// Result is the outcome of one run. When OK is false the three tables
// are nil and Err explains why.
type Result struct {
	OK          bool
	RunID       string
	Region      statement.Region
	Income      *model.Table
	Expenses    *model.Table
	Full        *model.Table
	Totals      model.Totals
	Monthly     []model.MonthlyEntry
	Dropped     DropCounts
	Exported    []string
	Diagnostics *diag.Log
	Err         *Error
}

// AnalyzeFile opens path and analyzes it. The file is closed before
// aggregation starts.
func AnalyzeFile(path string, opts Options) *Result {
	res := newResult()
	lines, err := readFile(path)
	if err != nil {
		return res.fail(newError(classify(err), err))
	}
	return res.run(lines, opts)
}

// Analyze reads a statement from r and analyzes it.
func Analyze(r io.Reader, opts Options) *Result {
	res := newResult()
	lines, err := statement.ReadLines(r)
	if err != nil {
		return res.fail(newError(classify(err), err))
	}
	return res.run(lines, opts)
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()
	return statement.ReadLines(f)
}

func newResult() *Result {
	return &Result{RunID: uuid.NewString(), Diagnostics: &diag.Log{}}
}

func (res *Result) fail(e *Error) *Result {
	res.OK = false
	res.Income, res.Expenses, res.Full = nil, nil, nil
	res.Totals = model.Totals{}
	res.Monthly = nil
	res.Err = e
	return res
}

func (res *Result) run(lines []string, opts Options) *Result {
	if err := res.pipeline(lines, opts); err != nil {
		var e *Error
		if errors.As(err, &e) {
			return res.fail(e)
		}
		return res.fail(newError(classify(err), err))
	}
	res.OK = true
	return res
}

func (res *Result) pipeline(lines []string, opts Options) error {
	log := res.Diagnostics

	reg := statement.LocateRegion(lines, opts.Markers)
	res.Region = reg
	log.Info(diag.StageRegion, "region located",
		"lines", len(lines), "start", reg.Start, "end", reg.End, "rows", reg.Rows())
	if !reg.HeaderFound {
		if opts.StrictHeader {
			return fmt.Errorf("%w: no line contains %q", ErrHeaderNotFound, opts.Markers.Header)
		}
		log.Warn(diag.StageRegion, "header marker not found; parsing from top of file",
			"kind", string(KindHeaderNotFound), "marker", opts.Markers.Header)
	}

	raw, err := statement.LoadTable(lines, reg)
	if err != nil {
		return err
	}
	log.Info(diag.StageLoad, "table loaded", "rows", raw.Len(), "columns", len(raw.Columns))
	log.Info(diag.StageLoad, "columns", "names", strings.Join(raw.Columns, " | "))
	for i, rec := range raw.Records {
		if i >= opts.SampleRows {
			break
		}
		log.Info(diag.StageLoad, "sample row", "row", i+1, "values", strings.Join(rec.Values, " | "))
	}

	norm, err := statement.Normalize(raw, opts.Columns)
	if err != nil {
		return err
	}

	income, expenses := summary.Partition(norm)
	log.Info(diag.StageSummary, "split by direction",
		"income", income.Len(), "expenses", expenses.Len(),
		"other", norm.Len()-income.Len()-expenses.Len())

	iDate := norm.Index(opts.Columns.Date)
	for i, rec := range norm.Records {
		if !rec.HasDate {
			log.Warn(diag.StageNormalize, "unparseable date",
				"kind", string(KindInvalidDate), "row", i+1, "value", rec.Values[iDate])
		}
	}

	full, dropped := statement.DropMissingDates(norm)
	income, droppedIncome := statement.DropMissingDates(income)
	expenses, droppedExpenses := statement.DropMissingDates(expenses)
	res.Dropped = DropCounts{Total: dropped, Income: droppedIncome, Expenses: droppedExpenses}
	if dropped > 0 {
		log.Warn(diag.StageNormalize, "rows dropped",
			"kind", string(KindInvalidDate), "total", dropped,
			"income", droppedIncome, "expenses", droppedExpenses)
	}

	income = summary.SortByDateDesc(income)
	expenses = summary.SortByDateDesc(expenses)

	if opts.OutputDir != "" {
		paths, err := export.WriteFiles(opts.OutputDir, opts.Names, opts.Columns, income, expenses)
		if err != nil {
			return newError(KindExport, err)
		}
		res.Exported = paths
		for _, p := range paths {
			log.Info(diag.StageExport, "wrote export", "path", p)
		}
	}

	res.Totals = summary.ComputeTotals(income, expenses)
	log.Info(diag.StageSummary, "totals",
		"income", res.Totals.Income.StringFixed(2),
		"expenses", res.Totals.Expenses.StringFixed(2),
		"net", res.Totals.Net.StringFixed(2))

	res.Monthly = summary.Monthly(full)
	for _, m := range res.Monthly {
		log.Info(diag.StageSummary, "month",
			"month", m.Label,
			"income", m.Income.StringFixed(2),
			"expenses", m.Expenses.StringFixed(2),
			"net", m.Net.StringFixed(2),
			"sign", string(m.Sign))
	}

	res.Income, res.Expenses, res.Full = income, expenses, full
	return nil
}
