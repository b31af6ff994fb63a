package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	appName = "taskhub"

	DefaultExportFormat = "json"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultToastSeconds = 2
	DefaultRememberView = true
)

// ExportFormats lists the formats the exporter can write
var ExportFormats = []string{"json", "csv", "pdf"}

// Config holds the application settings
type Config struct {
	// DataDir holds the settings database and the log file
	DataDir string `toml:"data_dir"`
	// ExportDir is where exported task lists are written
	ExportDir    string `toml:"export_dir"`
	ExportFormat string `toml:"export_format"`

	// SeedFile is a JSON task list loaded at startup
	SeedFile string `toml:"seed_file"`
	// Demo loads the built-in sample tasks when no seed file is given
	Demo bool `toml:"demo"`

	RememberView bool `toml:"remember_view"`
	ToastSeconds int  `toml:"toast_seconds"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// ConfigFile is the explicit file passed with --config, if any
	ConfigFile string `toml:"-"`
	// ShowVersion is set by --version
	ShowVersion bool `toml:"-"`
}

// setDefaults fills cfg with built-in values
func setDefaults(cfg *Config) {
	cfg.DataDir = defaultDataDir()
	cfg.ExportDir = "."
	cfg.ExportFormat = DefaultExportFormat
	cfg.RememberView = DefaultRememberView
	cfg.ToastSeconds = DefaultToastSeconds
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// Default returns a config holding only built-in values
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// ToastDuration is how long the completion banner stays up
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

// Validate checks enumerated and ranged values
func (c *Config) Validate() error {
	format := strings.ToLower(c.ExportFormat)
	valid := false
	for _, f := range ExportFormats {
		if f == format {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("export_format %q: want one of %s", c.ExportFormat, strings.Join(ExportFormats, ", "))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format %q: want text, json or logfmt", c.LogFormat)
	}
	if c.ToastSeconds < 1 {
		return fmt.Errorf("toast_seconds must be positive, got %d", c.ToastSeconds)
	}
	return nil
}
