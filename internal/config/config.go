package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/statements/internal/export"
	"github.com/cleared-dev/statements/internal/statement"
)

// FileName is the config file looked up in the working directory.
const FileName = "bsa.yaml"

// DefaultMaxUploadMB caps uploads when the config leaves the limit unset.
const DefaultMaxUploadMB = 10

// Config represents the top-level bsa.yaml configuration.
type Config struct {
	Statement StatementConfig `yaml:"statement"`
	Output    OutputConfig    `yaml:"output"`
	ImportDir string          `yaml:"import_dir"`
	Currency  string          `yaml:"currency"`
	Server    ServerConfig    `yaml:"server"`
}

// StatementConfig describes the layout of the bank export.
type StatementConfig struct {
	HeaderMarker string            `yaml:"header_marker"`
	EndMarker    string            `yaml:"end_marker"`
	StrictHeader bool              `yaml:"strict_header"` // fail instead of parsing from the top
	Columns      statement.Columns `yaml:"columns"`
}

// Markers returns the region markers.
func (s StatementConfig) Markers() statement.Markers {
	return statement.Markers{Header: s.HeaderMarker, End: s.EndMarker}
}

// OutputConfig controls where the cleaned exports go.
type OutputConfig struct {
	Dir   string       `yaml:"dir"`
	Names export.Names `yaml:"names"`
}

// ServerConfig controls the upload front end.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

// Load reads a bsa.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config for the supported bank export.
func Default() *Config {
	markers := statement.DefaultMarkers()
	return &Config{
		Statement: StatementConfig{
			HeaderMarker: markers.Header,
			EndMarker:    markers.End,
			Columns:      statement.DefaultColumns(),
		},
		Output: OutputConfig{
			Dir:   ".",
			Names: export.DefaultNames(),
		},
		ImportDir: "import",
		Currency:  "₹",
		Server: ServerConfig{
			Addr:        ":8080",
			MaxUploadMB: DefaultMaxUploadMB,
		},
	}
}

// ApplyEnv overrides cfg from the environment. A .env file is loaded
// first: envPath if given, otherwise ./.env when present.
func ApplyEnv(cfg *Config, envPath ...string) error {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	if v := os.Getenv("BSA_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("BSA_IMPORT_DIR"); v != "" {
		cfg.ImportDir = v
	}
	if v := os.Getenv("BSA_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("BSA_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BSA_STRICT_HEADER"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BSA_STRICT_HEADER %q: %w", v, err)
		}
		cfg.Statement.StrictHeader = strict
	}
	return nil
}
