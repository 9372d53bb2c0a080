// Package host declares the collaborator interfaces the dApp staking engine
// requires of its embedding runtime: currency custody, block height, the
// root-authorized origin gate, a native token price feed, an event sink,
// and a weight meter. The engine never reaches into chain state directly — it calls back
// through the interfaces it is handed at construction.
package host

import (
	"math/big"

	"github.com/astar-network/dapp-staking-v3/dappstaking/events"
)

// FreezeID identifies the reason funds are frozen under Currency, so a
// single account's balance can carry independent freezes from unrelated
// subsystems without colliding.
type FreezeID string

// Currency is the external custody collaborator: it owns account balances
// and honors freeze/release requests the engine issues when locking or
// unlocking stake.
type Currency interface {
	// SetFreeze sets the frozen amount recorded against id for account to
	// exactly amount (not a delta), so repeated calls are idempotent.
	SetFreeze(account [20]byte, id FreezeID, amount *big.Int) error
	// ReleaseFreeze reduces the frozen amount recorded against id for
	// account by amount.
	ReleaseFreeze(account [20]byte, id FreezeID, amount *big.Int) error
	// FreeBalance returns the account's balance not already frozen under
	// any freeze id.
	FreeBalance(account [20]byte) (*big.Int, error)
	// BalanceFrozen returns the amount currently frozen against id for
	// account.
	BalanceFrozen(account [20]byte, id FreezeID) (*big.Int, error)
	// MintInto credits amount to account — used to pay out settled rewards.
	MintInto(account [20]byte, amount *big.Int) error
	// TotalIssuance returns the network's total token issuance.
	TotalIssuance() (*big.Int, error)
}

// BlockOracle exposes the current block height as a monotone integer.
type BlockOracle interface {
	CurrentBlock() uint64
}

// RootOrigin gates root-only calls (register/unregister, forcing,
// maintenance mode) to a single authorized caller.
type RootOrigin interface {
	IsRoot(caller [20]byte) bool
}

// PriceOracle returns the current native token price as a non-negative
// rational (USD-denominated or any consistent unit the tier thresholds are
// calibrated against).
type PriceOracle interface {
	NativeTokenPrice() (*big.Rat, error)
}

// EventSink accepts typed domain events for the host to surface to callers.
// Implementations must not block or error — event delivery is best-effort
// and never rolls back engine state.
type EventSink interface {
	Emit(event events.Event)
}

// WeightMeter lets the engine declare the resource budget an operation
// consumed, so the host can enforce per-block weight limits.
type WeightMeter interface {
	Consume(units uint64)
	Remaining() uint64
}
