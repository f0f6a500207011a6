package adapter

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// AddressLength is the byte length of a Sui address.
const AddressLength = 32

// Address is a Sui account address.
type Address [AddressLength]byte

// ParseAddress parses a 0x-prefixed hex address. Short forms such as "0x2"
// are left-padded with zeros.
func ParseAddress(s string) (Address, error) {
	var addr Address

	raw := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(raw, "0x") {
		return addr, walleterr.WithDetails(walleterr.ErrInvalidAddress, map[string]string{"address": s})
	}
	digits := raw[2:]
	if digits == "" || len(digits) > AddressLength*2 {
		return addr, walleterr.WithDetails(walleterr.ErrInvalidAddress, map[string]string{"address": s})
	}

	padded := strings.Repeat("0", AddressLength*2-len(digits)) + digits
	b, err := hexutil.Decode("0x" + padded)
	if err != nil {
		return addr, walleterr.WithDetails(walleterr.ErrInvalidAddress, map[string]string{
			"address": s,
			"reason":  err.Error(),
		})
	}

	copy(addr[:], b)
	return addr, nil
}

// BytesToAddress copies b into an address, keeping the last 32 bytes when b
// is longer.
func BytesToAddress(b []byte) Address {
	var addr Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(addr[AddressLength-len(b):], b)
	return addr
}

// String renders the address as 0x followed by 64 lowercase hex digits.
func (a Address) String() string {
	return hexutil.Encode(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// TransactionBlock is an already-constructed transaction that can produce
// its BCS bytes.
type TransactionBlock interface {
	Serialize() ([]byte, error)
}

// TransactionInput carries either raw transaction bytes or a transaction
// block. The connection manager passes it to the signer untouched.
type TransactionInput struct {
	Bytes []byte
	Block TransactionBlock
}

// RawBytes returns the bytes to sign, serializing Block when Bytes is empty.
func (in TransactionInput) RawBytes() ([]byte, error) {
	if len(in.Bytes) > 0 {
		return in.Bytes, nil
	}
	if in.Block == nil {
		return nil, walleterr.ErrInvalidTransaction
	}
	b, err := in.Block.Serialize()
	if err != nil {
		return nil, walleterr.Wrap(walleterr.ErrInvalidTransaction, "serializing transaction block: %v", err)
	}
	if len(b) == 0 {
		return nil, walleterr.ErrInvalidTransaction
	}
	return b, nil
}

// SignedTransaction is the payload returned by a signer. Both fields are
// base64 encoded.
type SignedTransaction struct {
	TransactionBlockBytes string `json:"transactionBlockBytes"`
	Signature             string `json:"signature"`
}
