// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file ($XDG_CONFIG_HOME/taskhub/taskhub.toml or ~/.config/taskhub/taskhub.toml)
// 3. Project config file (./taskhub.toml or ./.taskhub.toml)
// 4. Environment variables (TASKHUB_*)
// 5. CLI flags
//
// Each level overrides the previous one. Passing --config replaces steps 2
// and 3 with the named file.
package config
