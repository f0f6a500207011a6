// Package adaptertest provides a scriptable in-memory wallet for tests of
// code built on the adapter contract.
package adaptertest

import (
	"context"
	"sync"

	"github.com/mrz1836/suiwallet/internal/adapter"
)

// Compile-time interface checks.
var (
	_ adapter.Wallet            = (*Wallet)(nil)
	_ adapter.Disconnecter      = (*Wallet)(nil)
	_ adapter.TransactionSigner = (*Wallet)(nil)
	_ adapter.AccountLister     = (*Wallet)(nil)
	_ adapter.FeatureReporter   = (*Wallet)(nil)
)

// Wallet is a fake wallet implementing every optional capability.
type Wallet struct {
	mu sync.Mutex

	name     string
	ready    adapter.ReadyState
	features []string
	accounts []adapter.Address

	connectErr    error
	disconnectErr error
	signErr       error
	accountsErr   error
	gate          chan struct{}

	connecting      bool
	connected       bool
	connectCalls    int
	disconnectCalls int
	signed          []adapter.TransactionInput
}

// Option configures a fake wallet.
type Option func(*Wallet)

// WithReadyState overrides the default Installed ready state.
func WithReadyState(r adapter.ReadyState) Option {
	return func(w *Wallet) { w.ready = r }
}

// WithFeatures sets the advertised wallet-standard features.
func WithFeatures(features ...string) Option {
	return func(w *Wallet) { w.features = features }
}

// WithAccounts sets the accounts returned by GetAccounts.
func WithAccounts(accounts ...adapter.Address) Option {
	return func(w *Wallet) { w.accounts = accounts }
}

// WithConnectError makes Connect fail with err.
func WithConnectError(err error) Option {
	return func(w *Wallet) { w.connectErr = err }
}

// WithDisconnectError makes Disconnect fail with err.
func WithDisconnectError(err error) Option {
	return func(w *Wallet) { w.disconnectErr = err }
}

// WithSignError makes SignTransactionBlock fail with err.
func WithSignError(err error) Option {
	return func(w *Wallet) { w.signErr = err }
}

// WithAccountsError makes GetAccounts fail with err.
func WithAccountsError(err error) Option {
	return func(w *Wallet) { w.accountsErr = err }
}

// WithGate makes Connect block until gate is closed or the context ends.
func WithGate(gate chan struct{}) Option {
	return func(w *Wallet) { w.gate = gate }
}

// New creates a fake wallet.
func New(name string, opts ...Option) *Wallet {
	w := &Wallet{name: name, ready: adapter.Installed}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name implements adapter.Wallet.
func (w *Wallet) Name() string { return w.name }

// ReadyState implements adapter.Wallet.
func (w *Wallet) ReadyState() adapter.ReadyState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ready
}

// SetReadyState changes the ready state.
func (w *Wallet) SetReadyState(r adapter.ReadyState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ready = r
}

// Features implements adapter.FeatureReporter.
func (w *Wallet) Features() []string { return w.features }

// Connecting implements adapter.Wallet.
func (w *Wallet) Connecting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connecting
}

// SetConnecting forces the connecting flag.
func (w *Wallet) SetConnecting(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connecting = v
}

// Connect implements adapter.Wallet.
func (w *Wallet) Connect(ctx context.Context) error {
	w.mu.Lock()
	w.connectCalls++
	w.connecting = true
	gate := w.gate
	w.mu.Unlock()

	var err error
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.connecting = false
	if err != nil {
		return err
	}
	if w.connectErr != nil {
		return w.connectErr
	}
	w.connected = true
	return nil
}

// Disconnect implements adapter.Disconnecter.
func (w *Wallet) Disconnect(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.disconnectCalls++
	w.connected = false
	return w.disconnectErr
}

// SignTransactionBlock implements adapter.TransactionSigner. The signature
// echoes the wallet name.
func (w *Wallet) SignTransactionBlock(_ context.Context, input adapter.TransactionInput) (*adapter.SignedTransaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.signErr != nil {
		return nil, w.signErr
	}
	w.signed = append(w.signed, input)
	return &adapter.SignedTransaction{
		TransactionBlockBytes: string(input.Bytes),
		Signature:             "signed-by:" + w.name,
	}, nil
}

// GetAccounts implements adapter.AccountLister.
func (w *Wallet) GetAccounts(_ context.Context) ([]adapter.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.accountsErr != nil {
		return nil, w.accountsErr
	}
	return w.accounts, nil
}

// Connected reports whether the last Connect succeeded and no Disconnect
// followed.
func (w *Wallet) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

// ConnectCalls returns how many times Connect was invoked.
func (w *Wallet) ConnectCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connectCalls
}

// DisconnectCalls returns how many times Disconnect was invoked.
func (w *Wallet) DisconnectCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disconnectCalls
}

// Signed returns every input passed to SignTransactionBlock.
func (w *Wallet) Signed() []adapter.TransactionInput {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]adapter.TransactionInput(nil), w.signed...)
}

// Bare hides every optional capability of w.
func (w *Wallet) Bare() adapter.Wallet {
	return bare{w: w}
}

// bare exposes only the required adapter.Wallet methods.
type bare struct {
	w *Wallet
}

func (b bare) Name() string                      { return b.w.Name() }
func (b bare) ReadyState() adapter.ReadyState    { return b.w.ReadyState() }
func (b bare) Connecting() bool                  { return b.w.Connecting() }
func (b bare) Connect(ctx context.Context) error { return b.w.Connect(ctx) }
