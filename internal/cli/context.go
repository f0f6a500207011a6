package cli

import (
	"log/slog"

	"github.com/mrz1836/suiwallet/internal/burner"
	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/connection"
	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/preference"
	"github.com/mrz1836/suiwallet/internal/registry"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Config      ConfigProvider
	Logger      *config.Logger
	Formatter   *output.Formatter
	Metrics     *metrics.Metrics
	Preferences preference.Store
	Adapters    registry.List
	Manager     *connection.Manager
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(
	cfg ConfigProvider,
	logger *config.Logger,
	formatter *output.Formatter,
) *CommandContext {
	if logger == nil {
		logger = config.NullLogger()
	}
	return &CommandContext{
		Config:    cfg,
		Logger:    logger,
		Formatter: formatter,
		Metrics:   &metrics.Metrics{},
	}
}

// Open builds the preference store, the adapter list and the manager.
// A preference backend that cannot be opened degrades to no persistence.
func (c *CommandContext) Open() error {
	wc := c.Config.GetWallet()

	prefs, err := preference.Open(wc.PreferenceBackend, c.Config.PreferencePath(), c.Logger)
	if err != nil {
		if walleterr.Is(err, walleterr.ErrConfigInvalid) {
			return err
		}
		c.Logger.Error("preferences unavailable: %v", err)
		prefs = preference.Unavailable{}
	}

	var b *burner.Wallet
	if wc.EnableUnsafeBurner && wc.BurnerMnemonic != "" {
		if b, err = burner.FromMnemonic(wc.BurnerMnemonic); err != nil {
			_ = prefs.Close()
			return walleterr.Wrap(err, "wallet.burner_mnemonic")
		}
	}

	c.Preferences = prefs
	c.Adapters = registry.BuildAdapterList(registry.Options{
		Features:           wc.Features,
		EnableUnsafeBurner: wc.EnableUnsafeBurner,
		Burner:             b,
	})
	c.Manager = connection.New(connection.Options{
		Adapters:      c.Adapters.Sources,
		Preferences:   prefs,
		PreferenceKey: wc.PreferenceKey,
		DefaultWallet: wc.DefaultWallet,
		Logger:        c.Logger,
		Metrics:       c.Metrics,
	})
	return nil
}

// Close tears down the manager and the preference store and logs the
// session metrics.
func (c *CommandContext) Close() {
	if c.Manager != nil {
		c.Manager.Close()
	}
	if c.Preferences != nil {
		if err := c.Preferences.Close(); err != nil {
			c.Logger.Error("closing preferences: %v", err)
		}
	}

	snap := c.Metrics.Snapshot()
	c.Logger.DebugAttrs("session metrics",
		slog.Int64("connect_attempts", snap.ConnectAttempts),
		slog.Int64("connect_failures", snap.ConnectFailures),
		slog.Float64("connect_latency_avg_ms", c.Metrics.ConnectLatencyAvgMs()),
		slog.Int64("disconnects", snap.Disconnects),
		slog.Int64("sign_calls", snap.SignCalls),
		slog.Int64("account_calls", snap.AccountCalls),
	)
}

// openContext returns an opened context built from the globals.
func openContext() (*CommandContext, error) {
	cc := NewCommandContext(cfg, logger, formatter)
	if err := cc.Open(); err != nil {
		return nil, err
	}
	return cc, nil
}

// PreferenceKey returns the key the remembered wallet is stored under.
func (c *CommandContext) PreferenceKey() string {
	if key := c.Config.GetWallet().PreferenceKey; key != "" {
		return key
	}
	return config.DefaultPreferenceKey
}
