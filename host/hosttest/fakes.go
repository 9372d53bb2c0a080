// Package hosttest provides in-memory fakes for the host collaborator
// interfaces, giving dappstaking's tests a fixed clock and controllable
// balances instead of real chain state.
package hosttest

import (
	"math/big"

	"github.com/astar-network/dapp-staking-v3/dappstaking/events"
	"github.com/astar-network/dapp-staking-v3/host"
)

// Currency is an in-memory host.Currency fake: free balances, frozen
// amounts, and total issuance are all maps/values the test controls
// directly.
type Currency struct {
	Balances  map[[20]byte]*big.Int
	Frozen    map[[20]byte]map[host.FreezeID]*big.Int
	Issuance  *big.Int
}

// NewCurrency returns an empty fake with the given total issuance.
func NewCurrency(issuance *big.Int) *Currency {
	return &Currency{
		Balances: make(map[[20]byte]*big.Int),
		Frozen:   make(map[[20]byte]map[host.FreezeID]*big.Int),
		Issuance: issuance,
	}
}

// Fund credits an account's free balance, for test setup.
func (c *Currency) Fund(account [20]byte, amount *big.Int) {
	c.Balances[account] = new(big.Int).Add(c.balance(account), amount)
}

func (c *Currency) balance(account [20]byte) *big.Int {
	if b, ok := c.Balances[account]; ok {
		return b
	}
	return big.NewInt(0)
}

func (c *Currency) frozen(account [20]byte, id host.FreezeID) *big.Int {
	byID, ok := c.Frozen[account]
	if !ok {
		return big.NewInt(0)
	}
	if v, ok := byID[id]; ok {
		return v
	}
	return big.NewInt(0)
}

// SetFreeze implements host.Currency.
func (c *Currency) SetFreeze(account [20]byte, id host.FreezeID, amount *big.Int) error {
	if c.Frozen[account] == nil {
		c.Frozen[account] = make(map[host.FreezeID]*big.Int)
	}
	c.Frozen[account][id] = new(big.Int).Set(amount)
	return nil
}

// ReleaseFreeze implements host.Currency.
func (c *Currency) ReleaseFreeze(account [20]byte, id host.FreezeID, amount *big.Int) error {
	current := c.frozen(account, id)
	out := new(big.Int).Sub(current, amount)
	if out.Sign() < 0 {
		out = big.NewInt(0)
	}
	if c.Frozen[account] == nil {
		c.Frozen[account] = make(map[host.FreezeID]*big.Int)
	}
	c.Frozen[account][id] = out
	return nil
}

// FreeBalance implements host.Currency.
func (c *Currency) FreeBalance(account [20]byte) (*big.Int, error) {
	total := c.balance(account)
	var frozen *big.Int = big.NewInt(0)
	for _, amount := range c.Frozen[account] {
		frozen = new(big.Int).Add(frozen, amount)
	}
	free := new(big.Int).Sub(total, frozen)
	if free.Sign() < 0 {
		free = big.NewInt(0)
	}
	return free, nil
}

// BalanceFrozen implements host.Currency.
func (c *Currency) BalanceFrozen(account [20]byte, id host.FreezeID) (*big.Int, error) {
	return c.frozen(account, id), nil
}

// MintInto implements host.Currency.
func (c *Currency) MintInto(account [20]byte, amount *big.Int) error {
	c.Balances[account] = new(big.Int).Add(c.balance(account), amount)
	c.Issuance = new(big.Int).Add(c.Issuance, amount)
	return nil
}

// TotalIssuance implements host.Currency.
func (c *Currency) TotalIssuance() (*big.Int, error) {
	return c.Issuance, nil
}

// BlockOracle is a settable fake clock for block height.
type BlockOracle struct{ Height uint64 }

// CurrentBlock implements host.BlockOracle.
func (b *BlockOracle) CurrentBlock() uint64 { return b.Height }

// RootOrigin authorizes exactly the configured address as root.
type RootOrigin struct{ Root [20]byte }

// IsRoot implements host.RootOrigin.
func (r RootOrigin) IsRoot(caller [20]byte) bool { return caller == r.Root }

// PriceOracle is a settable fake native token price feed.
type PriceOracle struct{ Price *big.Rat }

// NativeTokenPrice implements host.PriceOracle.
func (p *PriceOracle) NativeTokenPrice() (*big.Rat, error) { return p.Price, nil }

// EventSink records every emitted event in order, for assertions.
type EventSink struct {
	Events []events.Event
}

// Emit implements host.EventSink.
func (s *EventSink) Emit(event events.Event) { s.Events = append(s.Events, event) }

// WeightMeter is an in-memory budget the test can inspect after the fact.
type WeightMeter struct {
	Budget  uint64
	Spent   uint64
}

// Consume implements host.WeightMeter.
func (w *WeightMeter) Consume(units uint64) { w.Spent += units }

// Remaining implements host.WeightMeter.
func (w *WeightMeter) Remaining() uint64 {
	if w.Spent >= w.Budget {
		return 0
	}
	return w.Budget - w.Spent
}
