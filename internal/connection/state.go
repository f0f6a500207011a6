package connection

import "github.com/mrz1836/suiwallet/internal/adapter"

// Status is the connection lifecycle stage.
type Status string

// Connection statuses.
const (
	Disconnected Status = "DISCONNECTED"
	Connecting   Status = "CONNECTING"
	Connected    Status = "CONNECTED"
	Error        Status = "ERROR"
)

// String returns the status value.
func (s Status) String() string {
	return string(s)
}

// State is a snapshot of the connection. Build it with NewState; the boolean
// fields are projections of Status.
type State struct {
	Wallet     adapter.Wallet
	Status     Status
	Connecting bool
	Connected  bool
	IsError    bool
}

// NewState returns the snapshot for wallet and status.
func NewState(wallet adapter.Wallet, status Status) State {
	return State{
		Wallet:     wallet,
		Status:     status,
		Connecting: status == Connecting,
		Connected:  status == Connected,
		IsError:    status == Error,
	}
}

// WalletName returns the selected wallet's name, or "" when none.
func (s State) WalletName() string {
	if s.Wallet == nil {
		return ""
	}
	return s.Wallet.Name()
}
