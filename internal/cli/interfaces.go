package cli

import "github.com/mrz1836/suiwallet/internal/config"

// Compile-time interface check.
var _ ConfigProvider = (*config.Config)(nil)

// ConfigProvider provides read access to configuration values.
// This interface enables mocking configuration in tests.
type ConfigProvider interface {
	// GetHome returns the suiwallet home directory path.
	GetHome() string

	// GetWallet returns the wallet selection settings.
	GetWallet() config.WalletConfig

	// PreferencePath returns where the preference backend keeps its data.
	PreferencePath() string
}
