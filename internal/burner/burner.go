// Package burner implements an insecure, in-memory Sui wallet for local
// testing. The private key never leaves process memory and is never
// protected; do not hold real funds with it.
package burner

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"

	"github.com/mrz1836/suiwallet/internal/adapter"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// Name is the wallet name the burner registers under.
const Name = "Unsafe Burner Wallet"

const (
	// schemeEd25519 is the Sui signature scheme flag for ed25519.
	schemeEd25519 byte = 0x00

	// mnemonicEntropyBits gives a 12-word mnemonic.
	mnemonicEntropyBits = 128
)

// transactionIntent prefixes transaction bytes before hashing:
// scope TransactionData, version V0, app id Sui.
//
//nolint:gochecknoglobals // Fixed protocol constant
var transactionIntent = []byte{0x00, 0x00, 0x00}

// Compile-time interface checks.
var (
	_ adapter.Wallet            = (*Wallet)(nil)
	_ adapter.Disconnecter      = (*Wallet)(nil)
	_ adapter.TransactionSigner = (*Wallet)(nil)
	_ adapter.AccountLister     = (*Wallet)(nil)
	_ adapter.FeatureReporter   = (*Wallet)(nil)
)

// Wallet is an ed25519 burner wallet.
type Wallet struct {
	mu        sync.Mutex
	key       ed25519.PrivateKey
	address   adapter.Address
	connected bool
}

// New creates a burner wallet with a random key.
func New() (*Wallet, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, walleterr.Wrap(err, "generating burner key")
	}
	return fromKey(key), nil
}

// FromSeed creates a burner wallet from a 32-byte ed25519 seed.
func FromSeed(seed []byte) (*Wallet, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
			"reason": "burner seed must be 32 bytes",
		})
	}
	return fromKey(ed25519.NewKeyFromSeed(seed)), nil
}

// FromMnemonic creates a burner wallet whose key is the first 32 bytes of
// the BIP39 seed of mnemonic. The same mnemonic always yields the same
// address.
func FromMnemonic(mnemonic string) (*Wallet, error) {
	mnemonic = strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, walleterr.ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, "")
	return FromSeed(seed[:ed25519.SeedSize])
}

// NewMnemonic returns a fresh 12-word mnemonic suitable for FromMnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", walleterr.Wrap(err, "generating entropy")
	}
	return bip39.NewMnemonic(entropy)
}

func fromKey(key ed25519.PrivateKey) *Wallet {
	pub, _ := key.Public().(ed25519.PublicKey)
	return &Wallet{key: key, address: DeriveAddress(pub)}
}

// DeriveAddress computes the Sui address of an ed25519 public key:
// blake2b-256 over the scheme flag followed by the key bytes.
func DeriveAddress(pub ed25519.PublicKey) adapter.Address {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, schemeEd25519)
	buf = append(buf, pub...)
	return adapter.Address(blake2b.Sum256(buf))
}

// Name implements adapter.Wallet.
func (w *Wallet) Name() string { return Name }

// ReadyState implements adapter.Wallet. A burner is always installed.
func (w *Wallet) ReadyState() adapter.ReadyState { return adapter.Installed }

// Connecting implements adapter.Wallet. Connecting never blocks, so there
// is no observable in-flight state.
func (w *Wallet) Connecting() bool { return false }

// Features implements adapter.FeatureReporter.
func (w *Wallet) Features() []string {
	return []string{"standard:connect", "standard:events", "sui:signTransactionBlock"}
}

// Connect implements adapter.Wallet.
func (w *Wallet) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = true
	return nil
}

// Disconnect implements adapter.Disconnecter.
func (w *Wallet) Disconnect(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
	return nil
}

// Connected reports whether Connect has been called since the last
// Disconnect.
func (w *Wallet) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

// Address returns the burner account address.
func (w *Wallet) Address() adapter.Address { return w.address }

// PublicKey returns the ed25519 public key.
func (w *Wallet) PublicKey() ed25519.PublicKey {
	pub, _ := w.key.Public().(ed25519.PublicKey)
	return pub
}

// GetAccounts implements adapter.AccountLister.
func (w *Wallet) GetAccounts(_ context.Context) ([]adapter.Address, error) {
	if !w.Connected() {
		return nil, walleterr.ErrNotConnected
	}
	return []adapter.Address{w.address}, nil
}

// SignTransactionBlock implements adapter.TransactionSigner.
func (w *Wallet) SignTransactionBlock(ctx context.Context, input adapter.TransactionInput) (*adapter.SignedTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !w.Connected() {
		return nil, walleterr.ErrNotConnected
	}

	txBytes, err := input.RawBytes()
	if err != nil {
		return nil, err
	}

	digest := intentDigest(txBytes)
	sig := ed25519.Sign(w.key, digest[:])

	pub := w.PublicKey()
	serialized := make([]byte, 0, 1+len(sig)+len(pub))
	serialized = append(serialized, schemeEd25519)
	serialized = append(serialized, sig...)
	serialized = append(serialized, pub...)

	return &adapter.SignedTransaction{
		TransactionBlockBytes: base64.StdEncoding.EncodeToString(txBytes),
		Signature:             base64.StdEncoding.EncodeToString(serialized),
	}, nil
}

// Verify checks a serialized ed25519 signature over txBytes and returns the
// signer address.
func Verify(txBytes []byte, signature string) (adapter.Address, error) {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return adapter.Address{}, walleterr.Wrap(walleterr.ErrInvalidInput, "decoding signature: %v", err)
	}
	if len(raw) != 1+ed25519.SignatureSize+ed25519.PublicKeySize || raw[0] != schemeEd25519 {
		return adapter.Address{}, walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
			"reason": "not an ed25519 signature",
		})
	}

	sig := raw[1 : 1+ed25519.SignatureSize]
	pub := ed25519.PublicKey(raw[1+ed25519.SignatureSize:])
	digest := intentDigest(txBytes)
	if !ed25519.Verify(pub, digest[:], sig) {
		return adapter.Address{}, walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
			"reason": "signature does not match transaction",
		})
	}
	return DeriveAddress(pub), nil
}

func intentDigest(txBytes []byte) [32]byte {
	msg := make([]byte, 0, len(transactionIntent)+len(txBytes))
	msg = append(msg, transactionIntent...)
	msg = append(msg, txBytes...)
	return blake2b.Sum256(msg)
}
