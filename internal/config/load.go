package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable
const EnvPrefix = "LATENCYD"

// Load builds the configuration from, in increasing precedence: defaults,
// the YAML file, a .env file, LATENCYD_* environment variables and flags
func Load(args []string) (Config, error) {
	cfg := Default()

	fsFlags := flag.NewFlagSet("latencyd", flag.ContinueOnError)
	var (
		configPath = fsFlags.String("config", "latencyd.yaml", "Path to configuration file")
		port       = fsFlags.Int("port", cfg.Port, "Web server port")
		dbPath     = fsFlags.String("db", cfg.DatabasePath, "Database path")
		interval   = fsFlags.Duration("interval", cfg.RefreshInterval, "Latency refresh interval")
		catalog    = fsFlags.String("catalog", "", "Optional YAML file replacing the built-in exchange catalog")
		reportDir  = fsFlags.String("report", "", "Write a report into this directory and exit")
		reportRng  = fsFlags.String("report-range", cfg.ReportRange, "Report time range (1h, 24h, 7d, 30d)")
		reportFrom = fsFlags.String("report-from", cfg.ReportFrom, "Report source endpoint id")
		reportTo   = fsFlags.String("report-to", cfg.ReportTo, "Report destination endpoint id")
	)
	if err := fsFlags.Parse(args); err != nil {
		return cfg, err
	}

	set := make(map[string]bool)
	fsFlags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if err := cfg.loadFile(*configPath, set["config"]); err != nil {
		return cfg, err
	}

	// A missing .env is normal
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}

	if set["port"] {
		cfg.Port = *port
	}
	if set["db"] {
		cfg.DatabasePath = *dbPath
	}
	if set["interval"] {
		cfg.RefreshInterval = *interval
	}
	if set["catalog"] {
		cfg.CatalogPath = *catalog
	}
	cfg.ReportDir = *reportDir
	cfg.ReportRange = *reportRng
	cfg.ReportFrom = *reportFrom
	cfg.ReportTo = *reportTo

	return cfg, nil
}

// loadFile merges a YAML file into c. A missing file is only an error
// when the path was given explicitly.
func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}
