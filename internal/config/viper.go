// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/camt-recon/internal/fileutils"
	"fjacquet/camt-recon/internal/models"
	"fjacquet/camt-recon/internal/parsererror"
	"fjacquet/camt-recon/internal/reconciler"
	"fjacquet/camt-recon/internal/report"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RECON_LOG_LEVEL
const EnvPrefix = "RECON"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Reconcile struct {
		// AmountTolerance is kept as text so the decimal value is exact
		AmountTolerance   string `mapstructure:"amount_tolerance" yaml:"amount_tolerance"`
		DateToleranceDays int    `mapstructure:"date_tolerance_days" yaml:"date_tolerance_days"`
	} `mapstructure:"reconcile" yaml:"reconcile"`

	Balance struct {
		SignedMovements bool `mapstructure:"signed_movements" yaml:"signed_movements"`
	} `mapstructure:"balance" yaml:"balance"`

	Ledger struct {
		Encoding string `mapstructure:"encoding" yaml:"encoding"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`

	Server struct {
		Addr        string `mapstructure:"addr" yaml:"addr"`
		MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig loads defaults, then recon.yaml, then RECON_* environment
// variables. A non-empty configFile replaces the search path.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("recon")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.camt-recon")
		v.AddConfigPath(".camt-recon")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("reconcile.amount_tolerance", reconciler.DefaultAmountTolerance.String())
	v.SetDefault("reconcile.date_tolerance_days", reconciler.DefaultDateToleranceDays)

	v.SetDefault("balance.signed_movements", false)

	v.SetDefault("ledger.encoding", fileutils.EncodingUTF8)

	v.SetDefault("report.format", string(report.FormatCSV))

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_mb", 10)
}

// validateConfig validates the configuration values. A negative day window is
// clamped to 0 rather than rejected.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ConfigError{Key: "log.level", Value: config.Log.Level, Reason: "unknown log level"}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ConfigError{Key: "log.format", Value: config.Log.Format, Reason: "must be 'text' or 'json'"}
	}

	if _, err := ParseAmountTolerance(config.Reconcile.AmountTolerance); err != nil {
		return &parsererror.ConfigError{Key: "reconcile.amount_tolerance", Value: config.Reconcile.AmountTolerance, Reason: err.Error()}
	}
	if config.Reconcile.DateToleranceDays < 0 {
		config.Reconcile.DateToleranceDays = 0
	}

	encoding, err := fileutils.NormalizeEncoding(config.Ledger.Encoding)
	if err != nil {
		return &parsererror.ConfigError{Key: "ledger.encoding", Value: config.Ledger.Encoding, Reason: "must be utf-8, windows-1252 or iso-8859-1"}
	}
	config.Ledger.Encoding = encoding

	format, err := report.ParseFormat(config.Report.Format)
	if err != nil || format == report.FormatSummary {
		return &parsererror.ConfigError{Key: "report.format", Value: config.Report.Format, Reason: "must be 'csv' or 'xlsx'"}
	}
	config.Report.Format = string(format)

	if config.Server.MaxUploadMB <= 0 {
		return &parsererror.ConfigError{Key: "server.max_upload_mb", Value: config.Server.MaxUploadMB, Reason: "must be positive"}
	}

	return nil
}

// ParseAmountTolerance parses a non-negative decimal tolerance
func ParseAmountTolerance(text string) (decimal.Decimal, error) {
	amount, err := models.ParseDecimal(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", text)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("must not be negative")
	}
	return amount, nil
}

// Tolerance returns the configured matching window
func (c *Config) Tolerance() reconciler.Tolerance {
	amount, err := ParseAmountTolerance(c.Reconcile.AmountTolerance)
	if err != nil {
		amount = reconciler.DefaultAmountTolerance
	}
	return reconciler.NewTolerance(amount, c.Reconcile.DateToleranceDays)
}

// MaxUploadBytes returns the upload limit of the HTTP server
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}
