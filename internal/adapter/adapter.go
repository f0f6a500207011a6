// Package adapter defines the capability contract between the connection
// manager and wallet integrations.
//
// Every wallet implements Wallet. Disconnecting, signing and listing
// accounts are optional capabilities expressed as separate interfaces; callers
// type-assert for them and must handle their absence explicitly.
package adapter

import (
	"context"

	"github.com/ethereum/go-ethereum/event"
)

// ReadyState reports whether a wallet can be used from this environment.
type ReadyState string

// Ready states.
const (
	// Installed wallets are present and can connect immediately.
	Installed ReadyState = "Installed"
	// NotDetected wallets were not found in this environment.
	NotDetected ReadyState = "NotDetected"
	// Loadable wallets are not installed but can be loaded on demand.
	Loadable ReadyState = "Loadable"
	// Unsupported wallets exist but cannot run in this environment.
	Unsupported ReadyState = "Unsupported"
)

// Usable returns true for Installed and Loadable wallets.
func (r ReadyState) Usable() bool {
	return r == Installed || r == Loadable
}

// Wallet is the minimum surface every wallet integration exposes.
type Wallet interface {
	// Name identifies the wallet. Lookups are exact and case-sensitive.
	Name() string

	// ReadyState reports availability in the current environment.
	ReadyState() ReadyState

	// Connecting returns true while a connection attempt is in flight.
	Connecting() bool

	// Connect asks the wallet to connect. It may block on user approval.
	Connect(ctx context.Context) error
}

// Disconnecter is an optional interface for wallets that can disconnect.
// Implemented by: burner.Wallet
type Disconnecter interface {
	Disconnect(ctx context.Context) error
}

// TransactionSigner is an optional interface for wallets that sign
// transaction blocks.
// Implemented by: burner.Wallet
type TransactionSigner interface {
	SignTransactionBlock(ctx context.Context, input TransactionInput) (*SignedTransaction, error)
}

// AccountLister is an optional interface for wallets that expose accounts.
// Implemented by: burner.Wallet
type AccountLister interface {
	GetAccounts(ctx context.Context) ([]Address, error)
}

// FeatureReporter is an optional interface for wallets advertising the
// wallet-standard features they support, e.g. "sui:signTransactionBlock".
type FeatureReporter interface {
	Features() []string
}

// Source is one element of an adapter list. A source yields zero or more
// wallets; a plain wallet is wrapped with Single.
type Source interface {
	Wallets() []Wallet
}

// Notifier is a source that announces changes to the wallets it yields.
type Notifier interface {
	Source

	// Subscribe creates an async subscription that receives an Event every
	// time the set of wallets changes or one of its wallets reports a
	// lifecycle change.
	Subscribe(sink chan<- Event) event.Subscription
}

// EventKind identifies what changed in a Notifier.
type EventKind int

// Event kinds.
const (
	// WalletRegistered is fired when a wallet becomes available.
	WalletRegistered EventKind = iota
	// WalletUnregistered is fired when a wallet goes away.
	WalletUnregistered
	// WalletsChanged is fired for any other change, such as a ready state flip.
	WalletsChanged
	// WalletConnected is fired when a wallet reports it is connected.
	WalletConnected
	// WalletDisconnected is fired when a wallet ends its connection on its
	// own, for example when the user revokes access.
	WalletDisconnected
	// WalletErrored is fired when a wallet reports an error.
	WalletErrored
)

// String returns a readable event kind.
func (k EventKind) String() string {
	switch k {
	case WalletRegistered:
		return "registered"
	case WalletUnregistered:
		return "unregistered"
	case WalletsChanged:
		return "changed"
	case WalletConnected:
		return "connected"
	case WalletDisconnected:
		return "disconnected"
	case WalletErrored:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by a Notifier when its wallets change.
type Event struct {
	Kind   EventKind
	Wallet Wallet // May be nil for WalletsChanged
	Err    error  // Set for WalletErrored
}

// single adapts one wallet to the Source interface.
type single struct {
	wallet Wallet
}

// Single wraps a wallet as a one-element source.
func Single(w Wallet) Source {
	return single{wallet: w}
}

func (s single) Wallets() []Wallet {
	if s.wallet == nil {
		return nil
	}
	return []Wallet{s.wallet}
}
