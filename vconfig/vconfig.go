// Package vconfig loads cmd/vtreectl's runtime configuration: the log
// level, a dev-assertions toggle, and the CSS selector a JS-hosted build
// mounts against. DevAssertions is loaded into Config but nothing reads it:
// the change-list Builder and the differ behave the same whatever its
// value. Flags are bound
// through github.com/spf13/pflag, read with github.com/spf13/viper, and
// registered onto a github.com/spf13/cobra command, the standard
// cobra+viper+pflag trio this corpus's CLI tooling (grounded on
// alex60217101990-opa's go.mod) is built around: flag, environment
// variable, and config file all resolve through the one Config struct.
package vconfig

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgelogic/vtree/logging"
)

// Config is cmd/vtreectl's resolved runtime configuration.
type Config struct {
	LogLevel      string `mapstructure:"log-level"`
	DevAssertions bool   `mapstructure:"dev-assertions"`
	MountSelector string `mapstructure:"mount-selector"`
	ConfigFile    string `mapstructure:"config"`
}

// Default returns the configuration cmd/vtreectl falls back to if no flag,
// environment variable, or config file overrides it.
func Default() Config {
	return Config{
		LogLevel:      "info",
		DevAssertions: false,
		MountSelector: "#app",
	}
}

// BindFlags registers this package's flags onto cmd, with the defaults
// Default returns, so every vtreectl subcommand that calls it exposes the
// same flag surface.
func BindFlags(cmd *cobra.Command) {
	defaults := Default()
	flags := cmd.PersistentFlags()
	flags.String("log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	flags.Bool("dev-assertions", defaults.DevAssertions, "dev-only consistency checks toggle (loaded into the config; no check reads it)")
	flags.String("mount-selector", defaults.MountSelector, "CSS selector of the element to mount into")
	flags.String("config", "", "path to a vtreectl config file (YAML, TOML, or JSON)")
}

// Load resolves a Config from flags bound onto cmd, environment variables
// prefixed VTREE_, and an optional config file, in that order of
// precedence (flags win, then env, then file, then Default's values).
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("vtree")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return Config{}, err
	}

	if configFile, _ := cmd.PersistentFlags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyLogging sets the package-wide log level from cfg, parsing the same
// level names logrus itself accepts. An unrecognized level is treated as a
// warning rather than a fatal error, since a typo in --log-level shouldn't
// keep the CLI from running.
func ApplyLogging(cfg Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logging.Warn("vconfig: %v, defaulting to info", err)
		return
	}
	logging.SetLevel(level)
}
