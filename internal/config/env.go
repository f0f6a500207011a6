package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome          = "SUIWALLET_HOME"
	EnvOutputFormat  = "SUIWALLET_OUTPUT_FORMAT"
	EnvVerbose       = "SUIWALLET_VERBOSE"
	EnvLogLevel      = "SUIWALLET_LOG_LEVEL"
	EnvAutoConnect   = "SUIWALLET_AUTO_CONNECT"
	EnvDefaultWallet = "SUIWALLET_DEFAULT_WALLET"
	EnvUnsafeBurner  = "SUIWALLET_UNSAFE_BURNER"
	EnvPreference    = "SUIWALLET_PREFERENCE_BACKEND"
	EnvNoColor       = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
//
//nolint:gocognit,gocyclo // Environment variable overrides require sequential checks
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvAutoConnect); v != "" {
		cfg.Wallet.AutoConnect = parseBool(v)
	}

	if v := os.Getenv(EnvDefaultWallet); v != "" {
		cfg.Wallet.DefaultWallet = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvUnsafeBurner); v != "" {
		cfg.Wallet.EnableUnsafeBurner = parseBool(v)
	}

	if v := os.Getenv(EnvPreference); v != "" {
		cfg.Wallet.PreferenceBackend = strings.ToLower(strings.TrimSpace(v))
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
