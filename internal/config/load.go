package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load builds the configuration from defaults, config files, the environment
// and the given command-line arguments.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	if fs == nil {
		fs = flag.NewFlagSet(appName, flag.ContinueOnError)
	}

	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// An explicit --config replaces file discovery, so find it before parsing
	// the rest of the flags.
	explicit := explicitConfigFile(args)

	if explicit != "" {
		if err := loadConfigFile(cfg, expandPath(explicit)); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	} else {
		// 2. User config file
		if path := findUserConfigFile(); path != "" {
			if err := loadConfigFile(cfg, path); err != nil {
				return nil, fmt.Errorf("loading user config file %s: %w", path, err)
			}
		}

		// 3. Project config file (overrides user config)
		if path := findProjectConfigFile(); path != "" {
			if err := loadConfigFile(cfg, path); err != nil {
				return nil, fmt.Errorf("loading project config file %s: %w", path, err)
			}
		}
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile loads TOML config from the given file
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// explicitConfigFile scans args for --config without consuming them
func explicitConfigFile(args []string) string {
	for i, arg := range args {
		for _, prefix := range []string{"--config", "-config"} {
			if arg == prefix && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(arg, prefix+"=") {
				return strings.TrimPrefix(arg, prefix+"=")
			}
		}
	}
	return ""
}

// loadFromEnv overrides config from TASKHUB_* environment variables
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TASKHUB_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TASKHUB_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("TASKHUB_EXPORT_FORMAT"); v != "" {
		cfg.ExportFormat = v
	}
	if v := os.Getenv("TASKHUB_SEED"); v != "" {
		cfg.SeedFile = v
	}
	if v := os.Getenv("TASKHUB_DEMO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKHUB_DEMO: %w", err)
		}
		cfg.Demo = b
	}
	if v := os.Getenv("TASKHUB_REMEMBER_VIEW"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKHUB_REMEMBER_VIEW: %w", err)
		}
		cfg.RememberView = b
	}
	if v := os.Getenv("TASKHUB_TOAST_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TASKHUB_TOAST_SECONDS: %w", err)
		}
		cfg.ToastSeconds = n
	}
	if v := os.Getenv("TASKHUB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKHUB_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return nil
}

// parseFlags defines and parses CLI flags
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to a config file (skips config discovery)")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for the settings database and log file")
	fs.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "Directory for exported task lists")
	fs.StringVar(&cfg.ExportFormat, "export-format", cfg.ExportFormat, "Export format: json, csv or pdf")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "JSON task list to load at startup")
	fs.BoolVar(&cfg.Demo, "demo", cfg.Demo, "Start with sample tasks")
	fs.BoolVar(&cfg.RememberView, "remember-view", cfg.RememberView, "Restore the last view filter on startup")
	fs.IntVar(&cfg.ToastSeconds, "toast-seconds", cfg.ToastSeconds, "Seconds the completion banner stays visible")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json or logfmt")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Print version and exit (shorthand)")

	return fs.Parse(args)
}

// finalizeConfig expands paths and validates values
func finalizeConfig(cfg *Config) error {
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.ExportDir = expandPath(cfg.ExportDir)
	cfg.SeedFile = expandPath(cfg.SeedFile)
	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	return cfg.Validate()
}
