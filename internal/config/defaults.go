package config

// DefaultWalletName is selected by auto-connect when nothing was persisted.
// It matches the Sui Wallet and Suiet brands but not every wallet.
const DefaultWalletName = "Sui Wallet"

// DefaultPreferenceKey is the key holding the last selected wallet name.
const DefaultPreferenceKey = "preferredSuiWallet"

// Preference backends.
const (
	PreferenceBackendFile    = "file"
	PreferenceBackendLevelDB = "leveldb"
	PreferenceBackendMemory  = "memory"
	PreferenceBackendNone    = "none"
)

// DefaultFeatures are the wallet-standard features a wallet must expose to be
// listed by the standard provider.
//
//nolint:gochecknoglobals // Configuration default, same pattern as the default constants
var DefaultFeatures = []string{
	"standard:connect",
	"standard:events",
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.suiwallet",
		Wallet: WalletConfig{
			DefaultWallet:      DefaultWalletName,
			AutoConnect:        true,
			PreferenceKey:      DefaultPreferenceKey,
			PreferenceBackend:  PreferenceBackendFile,
			EnableUnsafeBurner: false,
			Features:           append([]string(nil), DefaultFeatures...),
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
		},
	}
}
