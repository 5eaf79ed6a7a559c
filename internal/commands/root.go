package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/buildinfo"
	"github.com/cleared-dev/statements/internal/config"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	envPath    string
	verbose    bool

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "bsa",
		Short:   "Bank statement analyzer",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", config.FileName, "config file")
	flags.StringVar(&a.envPath, "env", "", "env file (default ./.env when present)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show diagnostics and debug logs")

	rootCmd.AddCommand(
		newAnalyzeCommand(a),
		newBatchCommand(a),
		newInitCommand(),
		newServeCommand(a),
	)

	return rootCmd
}

func (a *app) setup() error {
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: a.verbose,
		Prefix:          "bsa",
	})
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := config.ApplyEnv(cfg, a.envPath); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "path", a.configPath, "output", cfg.Output.Dir, "import", cfg.ImportDir)
	return nil
}
