// Package config provides configuration management for suiwallet.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Home    string        `yaml:"home" json:"home"`
	Wallet  WalletConfig  `yaml:"wallet" json:"wallet"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// WalletConfig defines wallet selection and adapter settings.
type WalletConfig struct {
	// DefaultWallet is selected by auto-connect when no preference is stored.
	DefaultWallet string `yaml:"default_wallet" json:"default_wallet"`
	AutoConnect   bool   `yaml:"auto_connect" json:"auto_connect"`

	// PreferenceKey is the key the last selected wallet name is stored under.
	PreferenceKey string `yaml:"preference_key" json:"preference_key"`

	// PreferenceBackend is one of "file", "leveldb", "memory" or "none".
	PreferenceBackend string `yaml:"preference_backend" json:"preference_backend"`

	EnableUnsafeBurner bool   `yaml:"enable_unsafe_burner" json:"enable_unsafe_burner"`
	BurnerMnemonic     string `yaml:"burner_mnemonic,omitempty" json:"burner_mnemonic,omitempty"`

	// Features a wallet must advertise to be listed by the standard provider.
	Features []string `yaml:"features,omitempty" json:"features,omitempty"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Color         string `yaml:"color" json:"color"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	// File defaults to suiwallet.log under the home directory.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the suiwallet home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetWallet returns the wallet configuration.
func (c *Config) GetWallet() WalletConfig {
	return c.Wallet
}

// LogPath returns the log file path, defaulting to suiwallet.log in home.
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return ExpandHome(c.Logging.File)
	}
	return filepath.Join(ExpandHome(c.Home), "suiwallet.log")
}

// PreferencePath returns where the preference backend keeps its data.
func (c *Config) PreferencePath() string {
	home := ExpandHome(c.Home)
	if c.Wallet.PreferenceBackend == PreferenceBackendLevelDB {
		return filepath.Join(home, "preferences.db")
	}
	return filepath.Join(home, "preferences.json")
}

// DefaultHome returns the default suiwallet home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".suiwallet"
	}
	return filepath.Join(home, ".suiwallet")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
