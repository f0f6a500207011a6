// Package standard implements the default adapter provider: wallets register
// themselves at runtime and the provider announces every change to its
// subscribers.
package standard

import (
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/event"

	"github.com/mrz1836/suiwallet/internal/adapter"
)

// Compile-time interface check.
var _ adapter.Notifier = (*Provider)(nil)

type registration struct {
	id     uint64
	wallet adapter.Wallet
}

// Provider lists registered wallets that support every required feature.
type Provider struct {
	mu       sync.RWMutex
	features []string
	entries  []registration
	nextID   uint64

	feed event.FeedOf[adapter.Event]
}

// NewProvider creates a provider that only lists wallets advertising all of
// features. With no features every registered wallet is listed.
func NewProvider(features ...string) *Provider {
	return &Provider{features: slices.Clone(features)}
}

// Features returns the required features.
func (p *Provider) Features() []string {
	return slices.Clone(p.features)
}

// Register adds w and notifies subscribers. The returned function removes
// the registration; calling it more than once is harmless.
func (p *Provider) Register(w adapter.Wallet) (unregister func()) {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.entries = append(p.entries, registration{id: id, wallet: w})
	p.mu.Unlock()

	// Send blocks until every subscriber has received the event, so it must
	// run without the lock held.
	p.feed.Send(adapter.Event{Kind: adapter.WalletRegistered, Wallet: w})

	var once sync.Once
	return func() {
		once.Do(func() { p.unregister(id) })
	}
}

func (p *Provider) unregister(id uint64) {
	p.mu.Lock()
	idx := slices.IndexFunc(p.entries, func(r registration) bool { return r.id == id })
	if idx < 0 {
		p.mu.Unlock()
		return
	}
	w := p.entries[idx].wallet
	p.entries = slices.Delete(p.entries, idx, idx+1)
	p.mu.Unlock()

	p.feed.Send(adapter.Event{Kind: adapter.WalletUnregistered, Wallet: w})
}

// Notify tells subscribers that something about the registered wallets
// changed, for example a ready state.
func (p *Provider) Notify() {
	p.feed.Send(adapter.Event{Kind: adapter.WalletsChanged})
}

// Announce forwards a lifecycle event reported by a wallet, such as
// adapter.WalletDisconnected, to subscribers.
func (p *Provider) Announce(ev adapter.Event) {
	p.feed.Send(ev)
}

// Wallets implements adapter.Source. Registration order is preserved.
func (p *Provider) Wallets() []adapter.Wallet {
	p.mu.RLock()
	defer p.mu.RUnlock()

	wallets := make([]adapter.Wallet, 0, len(p.entries))
	for _, r := range p.entries {
		if p.compatible(r.wallet) {
			wallets = append(wallets, r.wallet)
		}
	}
	return wallets
}

// Subscribe implements adapter.Notifier.
func (p *Provider) Subscribe(sink chan<- adapter.Event) event.Subscription {
	return p.feed.Subscribe(sink)
}

// compatible reports whether w advertises every required feature.
func (p *Provider) compatible(w adapter.Wallet) bool {
	if w == nil {
		return false
	}
	if len(p.features) == 0 {
		return true
	}
	reporter, ok := w.(adapter.FeatureReporter)
	if !ok {
		return false
	}
	have := reporter.Features()
	for _, f := range p.features {
		if !slices.Contains(have, f) {
			return false
		}
	}
	return true
}
