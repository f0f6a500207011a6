package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/adapter"
	"github.com/mrz1836/suiwallet/internal/adapter/adaptertest"
)

func TestSingle(t *testing.T) {
	t.Parallel()

	w := adaptertest.New("Sui Wallet")
	wallets := adapter.Single(w).Wallets()
	require.Len(t, wallets, 1)
	assert.Same(t, w, wallets[0])

	assert.Empty(t, adapter.Single(nil).Wallets())
}

func TestCapabilities_Bare(t *testing.T) {
	t.Parallel()

	full := adaptertest.New("Full")
	var w adapter.Wallet = full
	_, canSign := w.(adapter.TransactionSigner)
	_, canList := w.(adapter.AccountLister)
	_, canDisconnect := w.(adapter.Disconnecter)
	assert.True(t, canSign)
	assert.True(t, canList)
	assert.True(t, canDisconnect)

	bare := full.Bare()
	_, canSign = bare.(adapter.TransactionSigner)
	_, canList = bare.(adapter.AccountLister)
	_, canDisconnect = bare.(adapter.Disconnecter)
	assert.False(t, canSign)
	assert.False(t, canList)
	assert.False(t, canDisconnect)
	assert.Equal(t, "Full", bare.Name())
}
