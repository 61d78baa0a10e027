package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPort               = 8080
	DefaultDatabasePath       = "latency.db"
	DefaultRefreshInterval    = 5 * time.Second
	DefaultVisibleConnections = 20
	DefaultRetentionDays      = 7
	DefaultReportRange        = "24h"
)

// Config holds all configuration for the latency service
type Config struct {
	Port               int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	DatabasePath       string        `yaml:"database_path" envconfig:"DB" validate:"required"`
	RefreshInterval    time.Duration `yaml:"refresh_interval" envconfig:"REFRESH_INTERVAL" validate:"gt=0"`
	VisibleConnections int           `yaml:"visible_connections" envconfig:"VISIBLE_CONNECTIONS" validate:"min=1"`
	RetentionDays      int           `yaml:"retention_days" envconfig:"RETENTION_DAYS" validate:"min=1"`
	CatalogPath        string        `yaml:"catalog_path" envconfig:"CATALOG"`
	LogLevel           string        `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	AllowedOrigins     []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`

	// One-shot report mode, flags only
	ReportDir   string `yaml:"-" ignored:"true"`
	ReportRange string `yaml:"-" ignored:"true" validate:"oneof=1h 24h 7d 30d"`
	ReportFrom  string `yaml:"-" ignored:"true"`
	ReportTo    string `yaml:"-" ignored:"true"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:               DefaultPort,
		DatabasePath:       DefaultDatabasePath,
		RefreshInterval:    DefaultRefreshInterval,
		VisibleConnections: DefaultVisibleConnections,
		RetentionDays:      DefaultRetentionDays,
		LogLevel:           "info",
		AllowedOrigins:     []string{"http://localhost:3000"},
		ReportRange:        DefaultReportRange,
		ReportFrom:         "binance-tokyo",
		ReportTo:           "coinbase-virginia",
	}
}

var validate = validator.New()

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid %s: failed %q constraint", verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	if c.ReportDir != "" && (c.ReportFrom == "" || c.ReportTo == "") {
		return fmt.Errorf("report mode needs both endpoints")
	}
	if c.ReportFrom != "" && c.ReportFrom == c.ReportTo {
		return fmt.Errorf("report endpoints must differ")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
