package burner_test

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/suiwallet/internal/adapter"
	"github.com/mrz1836/suiwallet/internal/burner"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type block []byte

func (b block) Serialize() ([]byte, error) { return b, nil }

func connected(t *testing.T) *burner.Wallet {
	t.Helper()
	w, err := burner.FromMnemonic(testMnemonic)
	require.NoError(t, err)
	require.NoError(t, w.Connect(context.Background()))
	return w
}

func TestFromMnemonic_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := burner.FromMnemonic(testMnemonic)
	require.NoError(t, err)
	b, err := burner.FromMnemonic("  ABANDON abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon   about ")
	require.NoError(t, err)

	assert.Equal(t, a.Address(), b.Address())
	assert.Equal(t, burner.DeriveAddress(a.PublicKey()), a.Address())
	assert.Len(t, a.Address().String(), 66)
}

func TestFromMnemonic_Invalid(t *testing.T) {
	t.Parallel()

	_, err := burner.FromMnemonic("not a real mnemonic")
	require.ErrorIs(t, err, walleterr.ErrInvalidMnemonic)
}

func TestNewMnemonic(t *testing.T) {
	t.Parallel()

	m, err := burner.NewMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(m), 12)

	w, err := burner.FromMnemonic(m)
	require.NoError(t, err)

	other, err := burner.FromMnemonic(testMnemonic)
	require.NoError(t, err)
	assert.NotEqual(t, other.Address(), w.Address())
}

func TestFromSeed(t *testing.T) {
	t.Parallel()

	seed := make([]byte, ed25519.SeedSize)
	w, err := burner.FromSeed(seed)
	require.NoError(t, err)
	assert.Equal(t, ed25519.NewKeyFromSeed(seed).Public(), w.PublicKey())

	_, err = burner.FromSeed([]byte{1, 2, 3})
	require.ErrorIs(t, err, walleterr.ErrInvalidInput)
}

func TestNew_RandomKeys(t *testing.T) {
	t.Parallel()

	a, err := burner.New()
	require.NoError(t, err)
	b, err := burner.New()
	require.NoError(t, err)
	assert.NotEqual(t, a.Address(), b.Address())
}

func TestWallet_Metadata(t *testing.T) {
	t.Parallel()

	w, err := burner.New()
	require.NoError(t, err)
	assert.Equal(t, burner.Name, w.Name())
	assert.Equal(t, adapter.Installed, w.ReadyState())
	assert.False(t, w.Connecting())
	assert.Contains(t, w.Features(), "sui:signTransactionBlock")
}

func TestWallet_ConnectLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	w, err := burner.FromMnemonic(testMnemonic)
	require.NoError(t, err)

	_, err = w.GetAccounts(ctx)
	require.ErrorIs(t, err, walleterr.ErrNotConnected)

	require.NoError(t, w.Connect(ctx))
	assert.True(t, w.Connected())

	accounts, err := w.GetAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []adapter.Address{w.Address()}, accounts)

	require.NoError(t, w.Disconnect(ctx))
	assert.False(t, w.Connected())
}

func TestWallet_ConnectCanceled(t *testing.T) {
	t.Parallel()

	w, err := burner.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, w.Connect(ctx), context.Canceled)
	assert.False(t, w.Connected())
}

func TestSignTransactionBlock_RawBytes(t *testing.T) {
	t.Parallel()
	w := connected(t)

	tx := []byte("transaction-data")
	signed, err := w.SignTransactionBlock(context.Background(), adapter.TransactionInput{Bytes: tx})
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString(tx), signed.TransactionBlockBytes)

	raw, err := base64.StdEncoding.DecodeString(signed.Signature)
	require.NoError(t, err)
	assert.Len(t, raw, 1+ed25519.SignatureSize+ed25519.PublicKeySize)
	assert.Equal(t, byte(0x00), raw[0])

	signer, err := burner.Verify(tx, signed.Signature)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), signer)
}

func TestSignTransactionBlock_Block(t *testing.T) {
	t.Parallel()
	w := connected(t)

	signed, err := w.SignTransactionBlock(context.Background(), adapter.TransactionInput{Block: block("built")})
	require.NoError(t, err)

	signer, err := burner.Verify([]byte("built"), signed.Signature)
	require.NoError(t, err)
	assert.Equal(t, w.Address(), signer)
}

func TestSignTransactionBlock_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	w, err := burner.New()
	require.NoError(t, err)

	_, err = w.SignTransactionBlock(ctx, adapter.TransactionInput{Bytes: []byte{1}})
	require.ErrorIs(t, err, walleterr.ErrNotConnected)

	require.NoError(t, w.Connect(ctx))
	_, err = w.SignTransactionBlock(ctx, adapter.TransactionInput{})
	require.ErrorIs(t, err, walleterr.ErrInvalidTransaction)
}

func TestVerify_Rejects(t *testing.T) {
	t.Parallel()
	w := connected(t)

	signed, err := w.SignTransactionBlock(context.Background(), adapter.TransactionInput{Bytes: []byte("a")})
	require.NoError(t, err)

	_, err = burner.Verify([]byte("b"), signed.Signature)
	require.ErrorIs(t, err, walleterr.ErrInvalidInput)

	_, err = burner.Verify([]byte("a"), "!!not-base64!!")
	require.ErrorIs(t, err, walleterr.ErrInvalidInput)

	_, err = burner.Verify([]byte("a"), base64.StdEncoding.EncodeToString([]byte{0x00, 0x01}))
	require.ErrorIs(t, err, walleterr.ErrInvalidInput)
}
