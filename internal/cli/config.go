package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/preference"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify suiwallet configuration settings.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var (
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration",
		Long: `Create a default configuration file at <home>/config.yaml.

An existing file is only replaced with --force.`,
		Example: `  suiwallet config init
  suiwallet config init --force`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Show the effective configuration after environment overrides.
The burner mnemonic is masked.`,
		Example: `  suiwallet config show
  suiwallet config show -o json`,
		Args: cobra.NoArgs,
		RunE:  runConfigShow,
	}

	configGetCmd = &cobra.Command{
		Use:   "get <path>",
		Short: "Get a configuration value",
		Long: `Get a configuration value by its dotted path.`,
		Example: `  suiwallet config get wallet.default_wallet
  suiwallet config get logging.level`,
		Args: cobra.ExactArgs(1),
		RunE: runConfigGet,
	}

	configSetCmd = &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value by its dotted path and save the file.`,
		Example: `  suiwallet config set wallet.default_wallet "Suiet"
  suiwallet config set wallet.preference_backend leveldb
  suiwallet config set output.default_format json`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}

	configForce bool
)

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configGetCmd, configSetCmd)
	enrichParentLong(configCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return walleterr.WithSuggestion(
			walleterr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	if err := config.Save(defaultCfg, configPath); err != nil {
		return walleterr.Wrap(err, "writing config file")
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - wallet.default_wallet: wallet tried by --auto-connect")
	outln(w, "  - wallet.preference_backend: file, leveldb, memory or none")
	outln(w, "  - wallet.enable_unsafe_burner: add the in-memory burner wallet")
	outln(w, "  - logging.level: off, error or debug")
	return nil
}

// configKey describes one settable configuration path.
type configKey struct {
	get func(c *config.Config) string
	set func(c *config.Config, value string) error
}

// configKeys maps dotted paths to accessors.
//
//nolint:gochecknoglobals // Static lookup table
var configKeys = map[string]configKey{
	"home": {
		get: func(c *config.Config) string { return c.Home },
		set: func(c *config.Config, v string) error { c.Home = v; return nil },
	},
	"wallet.default_wallet": {
		get: func(c *config.Config) string { return c.Wallet.DefaultWallet },
		set: func(c *config.Config, v string) error { c.Wallet.DefaultWallet = v; return nil },
	},
	"wallet.auto_connect": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Wallet.AutoConnect) },
		set: boolSetter(func(c *config.Config, b bool) { c.Wallet.AutoConnect = b }),
	},
	"wallet.preference_key": {
		get: func(c *config.Config) string { return c.Wallet.PreferenceKey },
		set: func(c *config.Config, v string) error {
			if strings.TrimSpace(v) == "" {
				return invalidValue(v, "a non-empty key")
			}
			c.Wallet.PreferenceKey = v
			return nil
		},
	},
	"wallet.preference_backend": {
		get: func(c *config.Config) string { return c.Wallet.PreferenceBackend },
		set: oneOf(func(c *config.Config, v string) { c.Wallet.PreferenceBackend = v },
			preference.BackendFile, preference.BackendLevelDB, preference.BackendMemory, preference.BackendNone),
	},
	"wallet.enable_unsafe_burner": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Wallet.EnableUnsafeBurner) },
		set: boolSetter(func(c *config.Config, b bool) { c.Wallet.EnableUnsafeBurner = b }),
	},
	"wallet.features": {
		get: func(c *config.Config) string { return strings.Join(c.Wallet.Features, ",") },
		set: func(c *config.Config, v string) error {
			c.Wallet.Features = splitList(v)
			return nil
		},
	},
	"output.default_format": {
		get: func(c *config.Config) string { return c.Output.DefaultFormat },
		set: oneOf(func(c *config.Config, v string) { c.Output.DefaultFormat = v }, "text", "json", "auto"),
	},
	"output.color": {
		get: func(c *config.Config) string { return c.Output.Color },
		set: oneOf(func(c *config.Config, v string) { c.Output.Color = v }, "auto", "always", "never"),
	},
	"output.verbose": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Output.Verbose) },
		set: boolSetter(func(c *config.Config, b bool) { c.Output.Verbose = b }),
	},
	"logging.level": {
		get: func(c *config.Config) string { return c.Logging.Level },
		set: oneOf(func(c *config.Config, v string) { c.Logging.Level = v }, "off", "error", "debug"),
	},
	"logging.file": {
		get: func(c *config.Config) string { return c.Logging.File },
		set: func(c *config.Config, v string) error { c.Logging.File = v; return nil },
	},
}

func invalidValue(value, valid string) error {
	return walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
		"value": value,
		"valid": valid,
	})
}

func oneOf(apply func(*config.Config, string), valid ...string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		for _, allowed := range valid {
			if v == allowed {
				apply(c, v)
				return nil
			}
		}
		return invalidValue(v, strings.Join(valid, ", "))
	}
}

func boolSetter(apply func(*config.Config, bool)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalidValue(v, "true or false")
		}
		apply(c, b)
		return nil
	}
}

func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func lookupKey(path string) (configKey, error) {
	key, ok := configKeys[path]
	if !ok {
		return configKey{}, walleterr.WithDetails(walleterr.ErrUnknownConfigKey, map[string]string{"path": path})
	}
	return key, nil
}

// getConfigValue returns the value at a dotted path.
func getConfigValue(c *config.Config, path string) (string, error) {
	key, err := lookupKey(path)
	if err != nil {
		return "", err
	}
	return key.get(c), nil
}

// setConfigValue sets the value at a dotted path.
func setConfigValue(c *config.Config, path, value string) error {
	key, err := lookupKey(path)
	if err != nil {
		return err
	}
	return key.set(c, value)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	view := *cfg
	if view.Wallet.BurnerMnemonic != "" {
		view.Wallet.BurnerMnemonic = "(set)"
	}
	return formatter.Emit(view, func(w io.Writer) error {
		return displayConfigText(w, &view)
	})
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := getConfigValue(cfg, args[0])
	if err != nil {
		return walleterr.WithSuggestion(err, "run 'suiwallet config show' to see every setting")
	}
	outln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, value := args[0], args[1]

	configPath := config.Path(cfg.Home)
	current, err := config.Load(configPath)
	if err != nil {
		current = config.Defaults()
		current.Home = cfg.Home
	}

	if err := setConfigValue(current, path, value); err != nil {
		return err
	}
	if err := config.Save(current, configPath); err != nil {
		return walleterr.Wrap(err, "saving config")
	}

	out(cmd.OutOrStdout(), "Set %s = %s\n", path, value)
	return nil
}

// displayConfigText shows the config in text format.
func displayConfigText(w io.Writer, c *config.Config) error {
	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)
	outln(w)
	outln(w, "  Wallet:")
	out(w, "    default_wallet: %s\n", c.Wallet.DefaultWallet)
	out(w, "    auto_connect: %t\n", c.Wallet.AutoConnect)
	out(w, "    preference_key: %s\n", c.Wallet.PreferenceKey)
	out(w, "    preference_backend: %s\n", c.Wallet.PreferenceBackend)
	out(w, "    enable_unsafe_burner: %t\n", c.Wallet.EnableUnsafeBurner)
	if c.Wallet.BurnerMnemonic != "" {
		out(w, "    burner_mnemonic: %s\n", c.Wallet.BurnerMnemonic)
	}
	out(w, "    features: %s\n", strings.Join(c.Wallet.Features, ", "))
	outln(w)
	outln(w, "  Output:")
	out(w, "    default_format: %s\n", c.Output.DefaultFormat)
	out(w, "    verbose: %t\n", c.Output.Verbose)
	out(w, "    color: %s\n", c.Output.Color)
	outln(w)
	outln(w, "  Logging:")
	out(w, "    level: %s\n", c.Logging.Level)
	out(w, "    file: %s\n", c.LogPath())
	return nil
}
