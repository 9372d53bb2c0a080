// Package crypto provides the account identity type the staking engine
// keys its ledgers by: a fixed 20-byte identifier rendered as a bech32
// string for display and CLI round-tripping. Signature verification and
// key custody belong to the host runtime, so no key material lives here.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
)

// StakerPrefix is the bech32 human-readable prefix for protocol accounts.
// The engine never interprets it; every address carries the same prefix.
const StakerPrefix = "stk"

// AddressLength is the byte length of an account identifier.
const AddressLength = 20

// Address is a comparable 20-byte account identifier. The zero value is the
// unassigned address.
type Address [AddressLength]byte

// AddressFromBytes builds an Address from exactly AddressLength bytes.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressLength {
		return Address{}, fmt.Errorf("crypto: address must be %d bytes, got %d", AddressLength, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// MustAddressFromBytes is AddressFromBytes for inputs whose length the
// caller has already guaranteed; it panics on a bad length.
func MustAddressFromBytes(b []byte) Address {
	a, err := AddressFromBytes(b)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns a copy of the identifier bytes.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// IsZero reports whether the address was never assigned.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Equal reports whether two addresses identify the same account.
func (a Address) Equal(other Address) bool {
	return a == other
}

// Less provides a deterministic total ordering over addresses, used
// wherever the protocol must break ties reproducibly.
func (a Address) Less(other Address) bool {
	for i := range a {
		if a[i] != other[i] {
			return a[i] < other[i]
		}
	}
	return false
}

// String renders the bech32 form under StakerPrefix. Encoding a fixed-size
// identifier cannot fail in practice; if the encoder ever rejects it the
// raw hex form is returned instead so logging never panics.
func (a Address) String() string {
	conv, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return "0x" + hex.EncodeToString(a[:])
	}
	encoded, err := bech32.Encode(StakerPrefix, conv)
	if err != nil {
		return "0x" + hex.EncodeToString(a[:])
	}
	return encoded
}

// Parse decodes the bech32 form produced by String, rejecting any prefix
// other than StakerPrefix.
func Parse(s string) (Address, error) {
	prefix, data, err := bech32.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("crypto: invalid bech32 address: %w", err)
	}
	if prefix != StakerPrefix {
		return Address{}, fmt.Errorf("crypto: address prefix %q, want %q", prefix, StakerPrefix)
	}
	conv, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("crypto: invalid bech32 payload: %w", err)
	}
	return AddressFromBytes(conv)
}

// RandomAddress generates a cryptographically random identifier. It exists
// for test fixtures and local harnesses; production identifiers are
// assigned by the host.
func RandomAddress() Address {
	var a Address
	if _, err := rand.Read(a[:]); err != nil {
		panic(err)
	}
	return a
}
