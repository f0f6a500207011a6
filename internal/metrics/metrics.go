// Package metrics provides counters for wallet connection activity.
// Counters are atomic so a single Metrics value can be shared by the
// connection manager and its event-bridge goroutines.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds connection metrics using atomic counters for thread safety.
type Metrics struct {
	connectAttempts     atomic.Int64
	connectFailures     atomic.Int64
	connectLatencyNanos atomic.Int64
	superseded          atomic.Int64

	disconnects atomic.Int64

	signCalls  atomic.Int64
	signErrors atomic.Int64

	accountCalls  atomic.Int64
	accountErrors atomic.Int64

	walletRefreshes atomic.Int64
}

// Global is the process-wide metrics instance used when none is injected.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordConnect records a completed connect attempt.
func (m *Metrics) RecordConnect(duration time.Duration, err error) {
	m.connectAttempts.Add(1)
	m.connectLatencyNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.connectFailures.Add(1)
	}
}

// RecordSuperseded records a connect result discarded because a newer
// selection started while it was in flight.
func (m *Metrics) RecordSuperseded() {
	m.superseded.Add(1)
}

// RecordDisconnect records a disconnect.
func (m *Metrics) RecordDisconnect() {
	m.disconnects.Add(1)
}

// RecordSign records a transaction signing request.
func (m *Metrics) RecordSign(err error) {
	m.signCalls.Add(1)
	if err != nil {
		m.signErrors.Add(1)
	}
}

// RecordAccounts records an account listing request.
func (m *Metrics) RecordAccounts(err error) {
	m.accountCalls.Add(1)
	if err != nil {
		m.accountErrors.Add(1)
	}
}

// RecordWalletRefresh records a wallet list recomputation triggered by a
// provider change.
func (m *Metrics) RecordWalletRefresh() {
	m.walletRefreshes.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	ConnectAttempts     int64 `json:"connect_attempts"`
	ConnectFailures     int64 `json:"connect_failures"`
	ConnectLatencyNanos int64 `json:"connect_latency_nanos"`
	Superseded          int64 `json:"superseded"`
	Disconnects         int64 `json:"disconnects"`
	SignCalls           int64 `json:"sign_calls"`
	SignErrors          int64 `json:"sign_errors"`
	AccountCalls        int64 `json:"account_calls"`
	AccountErrors       int64 `json:"account_errors"`
	WalletRefreshes     int64 `json:"wallet_refreshes"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		ConnectAttempts:     m.connectAttempts.Load(),
		ConnectFailures:     m.connectFailures.Load(),
		ConnectLatencyNanos: m.connectLatencyNanos.Load(),
		Superseded:          m.superseded.Load(),
		Disconnects:         m.disconnects.Load(),
		SignCalls:           m.signCalls.Load(),
		SignErrors:          m.signErrors.Load(),
		AccountCalls:        m.accountCalls.Load(),
		AccountErrors:       m.accountErrors.Load(),
		WalletRefreshes:     m.walletRefreshes.Load(),
	}
}

// ConnectLatencyAvgMs returns the average connect latency in milliseconds.
// Returns 0 if no attempts have completed.
func (m *Metrics) ConnectLatencyAvgMs() float64 {
	attempts := m.connectAttempts.Load()
	if attempts == 0 {
		return 0
	}
	return float64(m.connectLatencyNanos.Load()) / float64(attempts) / 1e6
}

// ConnectSuccessRate returns the share of successful connects as a
// percentage (0-100). Returns 0 if no attempts have completed.
func (m *Metrics) ConnectSuccessRate() float64 {
	attempts := m.connectAttempts.Load()
	if attempts == 0 {
		return 0
	}
	return float64(attempts-m.connectFailures.Load()) / float64(attempts) * 100
}

// Reset resets all metrics to zero.
func (m *Metrics) Reset() {
	m.connectAttempts.Store(0)
	m.connectFailures.Store(0)
	m.connectLatencyNanos.Store(0)
	m.superseded.Store(0)
	m.disconnects.Store(0)
	m.signCalls.Store(0)
	m.signErrors.Store(0)
	m.accountCalls.Store(0)
	m.accountErrors.Store(0)
	m.walletRefreshes.Store(0)
}
