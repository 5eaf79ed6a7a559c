package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/analyzer"
	"github.com/cleared-dev/statements/internal/diag"
	"github.com/cleared-dev/statements/internal/report"
	"github.com/cleared-dev/statements/internal/summary"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var outDir string
	var strict, noExport, chart bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a bank statement CSV and export income and expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := analyzer.OptionsFromConfig(a.cfg)
			if outDir != "" {
				opts.OutputDir = outDir
			}
			if noExport {
				opts.OutputDir = ""
			}
			if strict {
				opts.StrictHeader = true
			}

			res := analyzer.AnalyzeFile(args[0], opts)
			renderDiagnostics(a.logger, res.Diagnostics, a.verbose)

			r := report.New(a.cfg.Currency)
			out := cmd.OutOrStdout()
			if !res.OK {
				_ = r.RenderFailure(out, res)
				return fmt.Errorf("analyzing %s: %w", args[0], res.Err)
			}
			if err := r.Render(out, res); err != nil {
				return err
			}
			if chart {
				return r.Chart(out, summary.NetSeries(res.Monthly))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the income and expense exports")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the header marker is missing")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "print the report without writing exports")
	cmd.Flags().BoolVar(&chart, "chart", true, "print the monthly net chart")

	return cmd
}

// renderDiagnostics logs warnings, or every entry when verbose.
func renderDiagnostics(logger *log.Logger, d *diag.Log, verbose bool) {
	if d == nil {
		return
	}
	if verbose {
		d.Render(logger)
		return
	}
	for _, e := range d.Warnings() {
		logger.Warn(e.Message, append([]any{"stage", string(e.Stage)}, e.Fields...)...)
	}
}
