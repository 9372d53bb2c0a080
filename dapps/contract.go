// Package dapps defines the identifiers the dApp staking core uses to refer
// to accounts and smart contracts. The core never interprets a contract's
// bytecode or execution semantics; it only needs a comparable, orderable
// reference, so the identity is a small tagged union rather than an
// interface with virtual dispatch.
package dapps

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Kind discriminates the virtual machine a Contract address belongs to.
type Kind uint8

const (
	// KindEVM identifies a 20-byte EVM contract address.
	KindEVM Kind = iota
	// KindWasm identifies a 32-byte Wasm contract account id.
	KindWasm
)

func (k Kind) String() string {
	switch k {
	case KindEVM:
		return "evm"
	case KindWasm:
		return "wasm"
	default:
		return "unknown"
	}
}

// Contract is an opaque, comparable reference to a registered smart
// contract. It is a tagged union rather than an interface: the core never
// dispatches virtually on contract kind, it only compares and orders
// Contract values.
type Contract struct {
	kind Kind
	evm  common.Address
	wasm [32]byte
}

// NewEVMContract builds a Contract wrapping a 20-byte EVM address.
func NewEVMContract(addr common.Address) Contract {
	return Contract{kind: KindEVM, evm: addr}
}

// NewWasmContract builds a Contract wrapping a 32-byte Wasm account id.
func NewWasmContract(id [32]byte) Contract {
	return Contract{kind: KindWasm, wasm: id}
}

// Kind reports which VM family the contract belongs to.
func (c Contract) Kind() Kind { return c.kind }

// IsZero reports whether the contract reference was never assigned.
func (c Contract) IsZero() bool {
	return c.kind == KindEVM && c.evm == (common.Address{}) ||
		c.kind == KindWasm && c.wasm == ([32]byte{})
}

// Bytes returns the canonical byte encoding: a one-byte kind tag followed by
// the address payload. It is used as a deterministic map/storage key.
func (c Contract) Bytes() []byte {
	switch c.kind {
	case KindWasm:
		out := make([]byte, 0, 33)
		out = append(out, byte(KindWasm))
		return append(out, c.wasm[:]...)
	default:
		out := make([]byte, 0, 21)
		out = append(out, byte(KindEVM))
		return append(out, c.evm.Bytes()...)
	}
}

// Key returns a fixed-size, comparable representation suitable for use as a
// Go map key (Contract itself is comparable too, but Key avoids accidental
// zero-value-kind collisions across VMs when used as a map key by value).
func (c Contract) Key() string {
	return string(c.Bytes())
}

// Equal reports whether two contract references name the same contract.
func (c Contract) Equal(other Contract) bool {
	return c.kind == other.kind && c.evm == other.evm && c.wasm == other.wasm
}

// Less provides the deterministic total ordering the tier engine uses to
// break stake ties: by kind, then by address bytes ascending.
func (c Contract) Less(other Contract) bool {
	if c.kind != other.kind {
		return c.kind < other.kind
	}
	switch c.kind {
	case KindWasm:
		for i := range c.wasm {
			if c.wasm[i] != other.wasm[i] {
				return c.wasm[i] < other.wasm[i]
			}
		}
		return false
	default:
		cb, ob := c.evm.Bytes(), other.evm.Bytes()
		for i := range cb {
			if cb[i] != ob[i] {
				return cb[i] < ob[i]
			}
		}
		return false
	}
}

// String renders a human-readable, hex-prefixed representation.
func (c Contract) String() string {
	switch c.kind {
	case KindWasm:
		return fmt.Sprintf("wasm:0x%s", hex.EncodeToString(c.wasm[:]))
	default:
		return fmt.Sprintf("evm:%s", c.evm.Hex())
	}
}

// ContractFromBytes decodes the canonical encoding produced by Bytes.
func ContractFromBytes(b []byte) (Contract, error) {
	if len(b) == 0 {
		return Contract{}, fmt.Errorf("dapps: empty contract encoding")
	}
	switch Kind(b[0]) {
	case KindWasm:
		if len(b) != 33 {
			return Contract{}, fmt.Errorf("dapps: wasm contract encoding must be 33 bytes, got %d", len(b))
		}
		var id [32]byte
		copy(id[:], b[1:])
		return NewWasmContract(id), nil
	case KindEVM:
		if len(b) != 21 {
			return Contract{}, fmt.Errorf("dapps: evm contract encoding must be 21 bytes, got %d", len(b))
		}
		return NewEVMContract(common.BytesToAddress(b[1:])), nil
	default:
		return Contract{}, fmt.Errorf("dapps: unknown contract kind tag %d", b[0])
	}
}
