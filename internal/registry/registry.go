// Package registry builds the adapter list a connection manager starts from
// and resolves it into concrete wallets.
package registry

import (
	"math"

	"github.com/agnivade/levenshtein"

	"github.com/mrz1836/suiwallet/internal/adapter"
	"github.com/mrz1836/suiwallet/internal/burner"
	"github.com/mrz1836/suiwallet/internal/standard"
)

// MaxSuggestionDistance is the largest edit distance SuggestName accepts.
const MaxSuggestionDistance = 3

// Options configures BuildAdapterList.
type Options struct {
	// Adapters replaces the default list when non-nil.
	Adapters []adapter.Source

	// Features are required by the default standard provider.
	Features []string

	// EnableUnsafeBurner appends a burner wallet to the default list.
	EnableUnsafeBurner bool

	// Burner is used when EnableUnsafeBurner is set. A random burner is
	// created when nil.
	Burner *burner.Wallet
}

// List is the result of BuildAdapterList.
type List struct {
	// Sources is the ordered adapter list.
	Sources []adapter.Source

	// Standard is the default provider, nil when custom adapters were given.
	Standard *standard.Provider
}

// BuildAdapterList returns opts.Adapters verbatim when set. Otherwise it
// returns the standard provider followed, when enabled, by the burner
// wallet.
func BuildAdapterList(opts Options) List {
	if opts.Adapters != nil {
		return List{Sources: opts.Adapters}
	}

	provider := standard.NewProvider(opts.Features...)
	sources := []adapter.Source{provider}

	if opts.EnableUnsafeBurner {
		b := opts.Burner
		if b == nil {
			var err error
			if b, err = burner.New(); err != nil {
				// Random key generation only fails when the system RNG is
				// broken; the list is still usable without the burner.
				return List{Sources: sources, Standard: provider}
			}
		}
		sources = append(sources, adapter.Single(b))
	}

	return List{Sources: sources, Standard: provider}
}

// ResolveWallets flattens sources into wallets, preserving order. Nil
// sources and nil wallets are skipped.
func ResolveWallets(sources []adapter.Source) []adapter.Wallet {
	var wallets []adapter.Wallet
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, w := range src.Wallets() {
			if w != nil {
				wallets = append(wallets, w)
			}
		}
	}
	return wallets
}

// FindWallet returns the first wallet whose name equals name exactly.
func FindWallet(wallets []adapter.Wallet, name string) (adapter.Wallet, bool) {
	for _, w := range wallets {
		if w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

// SuggestName returns the wallet name closest to name, or "" when nothing is
// within MaxSuggestionDistance.
func SuggestName(wallets []adapter.Wallet, name string) string {
	minDist := math.MaxInt
	var suggestion string

	for _, w := range wallets {
		dist := levenshtein.ComputeDistance(name, w.Name())
		if dist == 0 {
			return w.Name()
		}
		if dist < minDist {
			minDist = dist
			suggestion = w.Name()
		}
	}

	if minDist <= MaxSuggestionDistance {
		return suggestion
	}
	return ""
}
