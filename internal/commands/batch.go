package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/analyzer"
	"github.com/cleared-dev/statements/internal/report"
	"github.com/cleared-dev/statements/internal/statement"
)

func newBatchCommand(a *app) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze every statement in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := statement.Scan(a.cfg.ImportDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				a.logger.Info("no statements to import", "dir", a.cfg.ImportDir)
				return nil
			}

			r := report.New(a.cfg.Currency)
			out := cmd.OutOrStdout()
			var errs []error
			for _, f := range files {
				opts := analyzer.OptionsFromConfig(a.cfg)
				opts.OutputDir = filepath.Join(a.cfg.Output.Dir, strings.TrimSuffix(f.Name, filepath.Ext(f.Name)))

				fmt.Fprintf(out, "## %s\n", f.Name)
				res := analyzer.AnalyzeFile(f.Path, opts)
				renderDiagnostics(a.logger.With("file", f.Name), res.Diagnostics, a.verbose)
				if err := r.Render(out, res); err != nil {
					return err
				}
				if !res.OK {
					a.logger.Error("statement failed", "file", f.Name, "kind", res.Err.Kind)
					errs = append(errs, fmt.Errorf("%s: %w", f.Name, res.Err))
					continue
				}
				if keep {
					continue
				}
				if err := statement.MarkProcessed(a.cfg.ImportDir, f.Name); err != nil {
					return err
				}
				a.logger.Debug("moved to processed", "file", f.Name)
			}

			a.logger.Info("batch complete", "files", len(files), "failed", len(errs))
			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "leave analyzed files in the import directory")

	return cmd
}
