// Package connection owns the selected wallet and its connection status.
//
// A Manager resolves wallets from an adapter list, connects the one the user
// selects, remembers that choice in a preference store, and delegates account
// and signing requests to it. Changes are published on an event feed so a UI
// or CLI can observe the state without polling.
package connection

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/google/uuid"

	"github.com/mrz1836/suiwallet/internal/adapter"
	"github.com/mrz1836/suiwallet/internal/config"
	"github.com/mrz1836/suiwallet/internal/metrics"
	"github.com/mrz1836/suiwallet/internal/preference"
	"github.com/mrz1836/suiwallet/internal/registry"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Logger receives diagnostics. *config.Logger satisfies it.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Options configures a Manager.
type Options struct {
	// Adapters is the adapter list, usually from registry.BuildAdapterList.
	Adapters []adapter.Source

	// Preferences persists the selected wallet name. Nil disables
	// persistence.
	Preferences preference.Store

	// PreferenceKey defaults to config.DefaultPreferenceKey.
	PreferenceKey string

	// DefaultWallet is selected by Initialize with AutoConnect when nothing
	// was persisted. Defaults to config.DefaultWalletName.
	DefaultWallet string

	Logger  Logger
	Metrics *metrics.Metrics
}

// InitOptions configures Initialize.
type InitOptions struct {
	AutoConnect bool
}

// Manager is the connection state machine. It is safe for concurrent use.
type Manager struct {
	mu         sync.RWMutex
	adapters   []adapter.Source
	wallets    []adapter.Wallet
	wallet     adapter.Wallet
	status     Status
	generation uint64

	// prefMu orders preference writes of overlapping calls. It is never
	// acquired while mu is held.
	prefMu        sync.Mutex
	prefs         preference.Store
	prefKey       string
	defaultWallet string
	logger        Logger
	metrics       *metrics.Metrics

	bridge      bridge
	stateFeed   event.FeedOf[State]
	walletsFeed event.FeedOf[[]adapter.Wallet]
	subs        event.SubscriptionScope
}

// New creates a disconnected manager and resolves the initial wallet list.
func New(opts Options) *Manager {
	m := &Manager{
		adapters:      slices.Clone(opts.Adapters),
		status:        Disconnected,
		prefs:         opts.Preferences,
		prefKey:       opts.PreferenceKey,
		defaultWallet: opts.DefaultWallet,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}

	if m.prefs == nil {
		m.prefs = preference.Unavailable{}
	}
	if m.prefKey == "" {
		m.prefKey = config.DefaultPreferenceKey
	}
	if m.defaultWallet == "" {
		m.defaultWallet = config.DefaultWalletName
	}
	if m.logger == nil {
		m.logger = config.NullLogger()
	}
	if m.metrics == nil {
		m.metrics = metrics.Global
	}

	m.wallets = registry.ResolveWallets(m.adapters)
	return m
}

// State returns the current connection snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	return NewState(m.wallet, m.status)
}

// Wallets returns the currently resolved wallet list.
func (m *Manager) Wallets() []adapter.Wallet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.wallets)
}

// Subscribe delivers every state change to ch. Delivery blocks the
// publisher until ch accepts the value, so subscribers must keep draining.
func (m *Manager) Subscribe(ch chan<- State) event.Subscription {
	return m.track(m.stateFeed.Subscribe(ch))
}

// SubscribeWallets delivers the wallet list every time it is recomputed.
func (m *Manager) SubscribeWallets(ch chan<- []adapter.Wallet) event.Subscription {
	return m.track(m.walletsFeed.Subscribe(ch))
}

func (m *Manager) track(sub event.Subscription) event.Subscription {
	if tracked := m.subs.Track(sub); tracked != nil {
		return tracked
	}
	// The manager is closed.
	sub.Unsubscribe()
	return event.NewSubscription(func(<-chan struct{}) error { return nil })
}

func (m *Manager) publish(s State) {
	m.stateFeed.Send(s)
}

// Select looks name up in the wallet list, remembers it and connects it.
// Connection failures are reported through the state, never returned.
// When a newer Select or Disconnect starts while this call is connecting,
// its result is discarded.
//
//nolint:gocyclo // The selection branches mirror the state machine
func (m *Manager) Select(ctx context.Context, name string) {
	attempt := uuid.NewString()

	m.mu.Lock()
	w, found := registry.FindWallet(m.wallets, name)
	if !found {
		m.generation++
		m.wallet = nil
		m.status = Disconnected
		snap := m.stateLocked()
		m.mu.Unlock()

		m.logger.Debug("select %s: wallet not found (attempt %s)", name, attempt)
		m.publish(snap)
		return
	}

	if ready := w.ReadyState(); !ready.Usable() {
		m.generation++
		m.wallet = nil
		m.status = Error
		snap := m.stateLocked()
		m.mu.Unlock()

		err := walleterr.WithDetails(walleterr.ErrWalletNotReady, map[string]string{
			"wallet": name,
			"ready":  string(ready),
		})
		m.logger.Error("select %s: %v (attempt %s)", name, err, attempt)
		m.publish(snap)
		return
	}

	prev, prevStatus := m.wallet, m.status
	alreadyConnecting := w.Connecting()
	// Re-selecting the wallet whose attempt is running joins that attempt
	// instead of superseding it.
	joined := alreadyConnecting && prev != nil && prev.Name() == name
	if !joined {
		m.generation++
	}
	gen := m.generation
	m.wallet = w
	if !alreadyConnecting {
		m.status = Connecting
	}
	snap := m.stateLocked()
	m.mu.Unlock()

	m.persist(gen, func(s preference.Store) { s.Write(m.prefKey, name) })
	m.publish(snap)

	if prev != nil && prevStatus == Connected && prev.Name() != name {
		m.release(ctx, prev, attempt)
	}

	if alreadyConnecting {
		m.logger.Debug("select %s: wallet already connecting (attempt %s)", name, attempt)
		return
	}

	m.logger.Debug("select %s: connecting (attempt %s)", name, attempt)
	start := time.Now()
	err := w.Connect(ctx)
	m.metrics.RecordConnect(time.Since(start), err)

	m.mu.Lock()
	if m.generation != gen {
		current := m.wallet
		m.mu.Unlock()
		m.metrics.RecordSuperseded()
		m.logger.Debug("select %s: superseded, result discarded (attempt %s)", name, attempt)
		// Nobody owns this connection any more.
		if err == nil && (current == nil || current.Name() != name) {
			m.release(ctx, w, attempt)
		}
		return
	}
	if err != nil {
		m.status = Error
	} else {
		m.status = Connected
	}
	snap = m.stateLocked()
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("select %s: %s: %v (attempt %s)",
			name, walleterr.ErrConnectionFailed.Message, err, attempt)
	} else {
		m.logger.Debug("select %s: connected (attempt %s)", name, attempt)
	}
	m.publish(snap)
}

// release disconnects a wallet that is being replaced. Failures are logged.
func (m *Manager) release(ctx context.Context, w adapter.Wallet, attempt string) {
	d, ok := w.(adapter.Disconnecter)
	if !ok {
		return
	}
	m.metrics.RecordDisconnect()
	if err := d.Disconnect(ctx); err != nil {
		m.logger.Error("select: disconnecting previous wallet %s: %v (attempt %s)", w.Name(), err, attempt)
	}
}

// Disconnect disconnects the selected wallet, resets the state and clears
// the remembered wallet. An error from the wallet is returned after the
// state has been reset. Without a selected wallet the preference is left
// alone and only a leftover Error status is reset.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	w := m.wallet
	if w == nil {
		changed := m.status != Disconnected
		m.status = Disconnected
		snap := m.stateLocked()
		m.mu.Unlock()
		if changed {
			m.publish(snap)
		}
		return nil
	}
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	var err error
	if d, ok := w.(adapter.Disconnecter); ok {
		err = d.Disconnect(ctx)
	}
	m.metrics.RecordDisconnect()

	m.mu.Lock()
	if m.generation != gen {
		// A Select started meanwhile and owns the state now.
		m.mu.Unlock()
		return walleterr.Wrap(err, "disconnect %s", w.Name())
	}
	m.wallet = nil
	m.status = Disconnected
	snap := m.stateLocked()
	m.mu.Unlock()

	m.persist(gen, func(s preference.Store) { s.Remove(m.prefKey) })
	m.publish(snap)

	if err != nil {
		m.logger.Error("disconnect %s: %v", w.Name(), err)
		return walleterr.Wrap(err, "disconnect %s", w.Name())
	}
	m.logger.Debug("disconnect %s: done", w.Name())
	return nil
}

// persist applies op to the preference store unless a newer Select or
// Disconnect started after gen.
func (m *Manager) persist(gen uint64, op func(preference.Store)) {
	m.prefMu.Lock()
	defer m.prefMu.Unlock()

	m.mu.RLock()
	current := m.generation == gen
	m.mu.RUnlock()
	if current {
		op(m.prefs)
	}
}

func (m *Manager) selected() adapter.Wallet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wallet
}

func unsupported(w adapter.Wallet, operation string) error {
	return walleterr.WithDetails(walleterr.ErrUnsupportedOperation, map[string]string{
		"wallet":    w.Name(),
		"operation": operation,
	})
}

// GetAccounts returns the selected wallet's accounts unmodified.
func (m *Manager) GetAccounts(ctx context.Context) ([]adapter.Address, error) {
	w := m.selected()
	if w == nil {
		return nil, walleterr.ErrNotConnected
	}

	lister, ok := w.(adapter.AccountLister)
	if !ok {
		return nil, unsupported(w, "getAccounts")
	}

	accounts, err := lister.GetAccounts(ctx)
	m.metrics.RecordAccounts(err)
	return accounts, err
}

// SignTransactionBlock asks the selected wallet to sign input. Neither the
// input nor the result is inspected.
func (m *Manager) SignTransactionBlock(ctx context.Context, input adapter.TransactionInput) (*adapter.SignedTransaction, error) {
	w := m.selected()
	if w == nil {
		return nil, walleterr.ErrNotConnected
	}

	signer, ok := w.(adapter.TransactionSigner)
	if !ok {
		return nil, unsupported(w, "signTransactionBlock")
	}

	signed, err := signer.SignTransactionBlock(ctx, input)
	m.metrics.RecordSign(err)
	return signed, err
}

// Initialize restores the previous session and starts following adapter
// changes. It tears down earlier subscriptions first, so calling it again
// never duplicates notifications.
func (m *Manager) Initialize(ctx context.Context, opts InitOptions) {
	m.bridge.unsubscribeAll()
	m.refreshWallets()

	state := m.State()
	if state.Wallet == nil && !state.Connected && !state.Connecting {
		if name, ok := m.prefs.Read(m.prefKey); ok && name != "" {
			m.logger.Debug("initialize: restoring %s", name)
			m.Select(ctx, name)
		} else if opts.AutoConnect {
			m.logger.Debug("initialize: auto-connecting %s", m.defaultWallet)
			m.Select(ctx, m.defaultWallet)
		}
	}

	m.mu.RLock()
	state, gen := m.stateLocked(), m.generation
	m.mu.RUnlock()
	if state.Connected && state.Wallet != nil {
		name := state.Wallet.Name()
		m.persist(gen, func(s preference.Store) { s.Write(m.prefKey, name) })
	}

	n := m.bridge.subscribe(m.adapters, m.handleEvent)
	m.logger.Debug("initialize: subscribed to %d adapter providers", n)

	m.publish(m.State())
}

// handleEvent reacts to a provider notification. List changes re-resolve
// the wallets; lifecycle events of the selected wallet update the state.
func (m *Manager) handleEvent(ev adapter.Event) {
	switch ev.Kind {
	case adapter.WalletConnected, adapter.WalletDisconnected, adapter.WalletErrored:
		m.applyWalletEvent(ev)
	default:
		m.logger.Debug("adapters changed (%s), refreshing wallets", ev.Kind)
		m.metrics.RecordWalletRefresh()
		m.refreshWallets()
	}
}

// applyWalletEvent folds a lifecycle event reported by the wallet itself
// into the state. Events from wallets other than the selected one are
// ignored. A disconnect ends the selection like Disconnect does, so any
// attempt still in flight is discarded.
func (m *Manager) applyWalletEvent(ev adapter.Event) {
	if ev.Wallet == nil {
		return
	}
	name := ev.Wallet.Name()

	m.mu.Lock()
	if m.wallet == nil || m.wallet.Name() != name {
		m.mu.Unlock()
		m.logger.Debug("wallet %s %s: not selected, ignored", name, ev.Kind)
		return
	}
	switch ev.Kind {
	case adapter.WalletConnected:
		if m.status == Connected {
			m.mu.Unlock()
			return
		}
		m.status = Connected
	case adapter.WalletErrored:
		m.status = Error
	case adapter.WalletDisconnected:
		m.generation++
		m.wallet = nil
		m.status = Disconnected
	}
	gen := m.generation
	snap := m.stateLocked()
	m.mu.Unlock()

	switch ev.Kind {
	case adapter.WalletDisconnected:
		m.persist(gen, func(s preference.Store) { s.Remove(m.prefKey) })
		m.logger.Debug("wallet %s disconnected itself", name)
	case adapter.WalletErrored:
		m.logger.Error("wallet %s reported an error: %v", name, ev.Err)
	default:
		m.logger.Debug("wallet %s reported %s", name, ev.Kind)
	}
	m.publish(snap)
}

// refreshWallets recomputes the wallet list from the adapter list.
func (m *Manager) refreshWallets() {
	wallets := registry.ResolveWallets(m.adapters)

	m.mu.Lock()
	m.wallets = wallets
	m.mu.Unlock()

	m.walletsFeed.Send(slices.Clone(wallets))
}

// Subscriptions returns the number of live adapter subscriptions.
func (m *Manager) Subscriptions() int {
	return m.bridge.count()
}

// Close stops following adapter changes and ends every state subscription.
func (m *Manager) Close() {
	m.bridge.unsubscribeAll()
	m.subs.Close()
}
