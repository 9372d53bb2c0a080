package dappstaking

import (
	"math/big"
	"sort"

	errs "github.com/astar-network/dapp-staking-v3/dappstaking/errors"
)

// AccountLedger is the per-account record of locked balance, active stake
// spanning the current and next era, and pending unlocking chunks.
type AccountLedger struct {
	Locked             *big.Int
	Unlocking          []UnlockingChunk
	Staked             StakeAmount
	StakedFuture       *StakeAmount
	ContractStakeCount uint32
}

// NewAccountLedger returns an empty ledger.
func NewAccountLedger() *AccountLedger {
	return &AccountLedger{Locked: big.NewInt(0), Staked: StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0)}}
}

// IsEmpty reports whether the ledger holds no locked funds, no pending
// unlocking chunks, and no active stake — the condition under which a
// ledger entry is destroyed.
func (l *AccountLedger) IsEmpty() bool {
	return nonNilBig(l.Locked).Sign() == 0 && len(l.Unlocking) == 0 &&
		l.Staked.IsEmpty() && l.StakedFuture == nil
}

// AddLock increases the locked balance.
func (l *AccountLedger) AddLock(amount *big.Int) {
	l.Locked = new(big.Int).Add(nonNilBig(l.Locked), nonNilBig(amount))
}

// SubtractLock decreases the locked balance, saturating at zero.
func (l *AccountLedger) SubtractLock(amount *big.Int) {
	out := new(big.Int).Sub(nonNilBig(l.Locked), nonNilBig(amount))
	if out.Sign() <= 0 {
		out = big.NewInt(0)
	}
	l.Locked = out
}

// stakedAmountFor returns the staked total relevant to the supplied period:
// the larger of Staked and StakedFuture when their Period field matches,
// per the invariant "locked >= max(staked.total, staked_future.total)".
func (l *AccountLedger) stakedAmountFor(period uint64) *big.Int {
	amount := big.NewInt(0)
	if l.Staked.Period == period && !l.Staked.IsEmpty() {
		amount = l.Staked.Total()
	}
	if l.StakedFuture != nil && l.StakedFuture.Period == period {
		future := l.StakedFuture.Total()
		if future.Cmp(amount) > 0 {
			amount = future
		}
	}
	return amount
}

// Unlockable returns the portion of locked funds not committed to any
// contract during the supplied period.
func (l *AccountLedger) Unlockable(period PeriodInfo) *big.Int {
	out := new(big.Int).Sub(nonNilBig(l.Locked), l.stakedAmountFor(period.Period))
	if out.Sign() < 0 {
		return big.NewInt(0)
	}
	return out
}

// Stakeable returns the portion of locked funds available for new staking
// commitments during the supplied period. Identical formula to Unlockable;
// kept as a distinct method because the two represent different intents in
// the operations surface.
func (l *AccountLedger) Stakeable(period PeriodInfo) *big.Int {
	return l.Unlockable(period)
}

// AddUnlockingChunk inserts a chunk ordered by unlock block, coalescing with
// an existing chunk at the same block, and fails NoCapacity if inserting a
// distinct block would exceed maxChunks.
func (l *AccountLedger) AddUnlockingChunk(amount *big.Int, unlockBlock uint64, maxChunks uint32) error {
	if amount == nil || amount.Sign() == 0 {
		return errs.ErrZeroAmount
	}
	idx := sort.Search(len(l.Unlocking), func(i int) bool { return l.Unlocking[i].UnlockBlock >= unlockBlock })
	if idx < len(l.Unlocking) && l.Unlocking[idx].UnlockBlock == unlockBlock {
		l.Unlocking[idx].Amount = new(big.Int).Add(l.Unlocking[idx].Amount, amount)
		return nil
	}
	if uint32(len(l.Unlocking)) >= maxChunks {
		return errs.ErrNoCapacity
	}
	chunk := UnlockingChunk{Amount: new(big.Int).Set(amount), UnlockBlock: unlockBlock}
	l.Unlocking = append(l.Unlocking, UnlockingChunk{})
	copy(l.Unlocking[idx+1:], l.Unlocking[idx:len(l.Unlocking)-1])
	l.Unlocking[idx] = chunk
	return nil
}

// ClaimUnlocked drains and sums every chunk whose unlock block has matured.
func (l *AccountLedger) ClaimUnlocked(now uint64) *big.Int {
	total := big.NewInt(0)
	remaining := l.Unlocking[:0]
	for _, chunk := range l.Unlocking {
		if chunk.UnlockBlock <= now {
			total.Add(total, nonNilBig(chunk.Amount))
		} else {
			remaining = append(remaining, chunk)
		}
	}
	l.Unlocking = append([]UnlockingChunk(nil), remaining...)
	return total
}

// TotalUnlocking sums every pending unlocking chunk regardless of maturity.
func (l *AccountLedger) TotalUnlocking() *big.Int {
	total := big.NewInt(0)
	for _, chunk := range l.Unlocking {
		total.Add(total, nonNilBig(chunk.Amount))
	}
	return total
}

// RelockUnlocking folds every pending unlocking chunk back into locked funds
// and clears the chunk list, returning the amount relocked.
func (l *AccountLedger) RelockUnlocking() *big.Int {
	total := l.TotalUnlocking()
	l.Unlocking = nil
	l.AddLock(total)
	return total
}

func eraPeriodPreconditionsOK(staked StakeAmount, future *StakeAmount, era uint64, period PeriodInfo) error {
	if !staked.IsEmpty() {
		if staked.Era != era {
			return errs.ErrInvalidEra
		}
		if staked.Period != period.Period {
			return errs.ErrInvalidPeriod
		}
	}
	if future != nil {
		if future.Era != era && future.Era != era+1 {
			return errs.ErrInvalidEra
		}
		if future.Period != period.Period {
			return errs.ErrInvalidPeriod
		}
	}
	return nil
}

// AddStake commits amount to the account's staking position for era+1,
// folding any already-matured StakedFuture into Staked first.
func (l *AccountLedger) AddStake(amount *big.Int, era uint64, period PeriodInfo) error {
	if amount == nil || amount.Sign() == 0 {
		return errs.ErrZeroAmount
	}
	if err := eraPeriodPreconditionsOK(l.Staked, l.StakedFuture, era, period); err != nil {
		return err
	}
	if l.Stakeable(period).Cmp(amount) < 0 {
		return errs.ErrUnavailableStakeFunds
	}

	if l.StakedFuture != nil && l.StakedFuture.Era == era {
		l.Staked = l.StakedFuture.Clone()
		l.StakedFuture = nil
	}

	var base StakeAmount
	if l.StakedFuture != nil {
		base = l.StakedFuture.Clone()
	} else {
		base = l.Staked.Clone()
	}
	base.Era = era + 1
	base.Period = period.Period
	updated := base.AddAmount(amount, period.Subperiod)
	l.StakedFuture = &updated
	return nil
}

// Unstake withdraws amount from the account's staking position, subtracting
// from Staked and StakedFuture (tolerating either being empty).
func (l *AccountLedger) Unstake(amount *big.Int, era uint64, period PeriodInfo) error {
	if amount == nil || amount.Sign() == 0 {
		return errs.ErrZeroAmount
	}
	if err := eraPeriodPreconditionsOK(l.Staked, l.StakedFuture, era, period); err != nil {
		return err
	}
	total := l.stakedAmountFor(period.Period)
	if total.Cmp(amount) < 0 {
		return errs.ErrUnstakeAmountLargerThanStake
	}

	l.Staked = l.Staked.SubtractAmount(amount)
	if l.Staked.IsEmpty() {
		l.Staked.Era, l.Staked.Period = 0, 0
	}
	if l.StakedFuture != nil {
		updated := l.StakedFuture.SubtractAmount(amount)
		l.StakedFuture = &updated
		if l.StakedFuture.IsEmpty() {
			l.StakedFuture.Era, l.StakedFuture.Period = 0, 0
		}
	}
	return nil
}

// EraStake is one (era, amount) pair yielded by ClaimUpToEra.
type EraStake struct {
	Era    uint64
	Amount *big.Int
}

// ClaimUpToEra yields the per-era staked amount for every era from the
// ledger's oldest unclaimed era through era (inclusive), then rolls
// StakedFuture into Staked. If periodEndEra is provided and era has reached
// it, both entries are fully cleared instead (the period, and therefore any
// further staker-reward accrual on this stake, has ended).
func (l *AccountLedger) ClaimUpToEra(era uint64, periodEndEra *uint64) ([]EraStake, error) {
	hasStaked := !l.Staked.IsEmpty()
	hasFuture := l.StakedFuture != nil && !l.StakedFuture.IsEmpty()
	if !hasStaked && !hasFuture {
		return nil, errs.ErrNothingToClaim
	}

	var start uint64
	if hasStaked {
		start = l.Staked.Era
	} else {
		start = l.StakedFuture.Era
	}
	if start > era {
		return nil, errs.ErrNothingToClaim
	}

	var out []EraStake
	switch {
	case hasStaked && hasFuture && l.StakedFuture.Era > start && l.StakedFuture.Era <= era+1:
		out = append(out, EraStake{Era: start, Amount: l.Staked.Total()})
		futureAmount := l.StakedFuture.Total()
		for e := start + 1; e <= era; e++ {
			out = append(out, EraStake{Era: e, Amount: new(big.Int).Set(futureAmount)})
		}
	case hasStaked:
		amount := l.Staked.Total()
		for e := start; e <= era; e++ {
			out = append(out, EraStake{Era: e, Amount: new(big.Int).Set(amount)})
		}
	default:
		amount := l.StakedFuture.Total()
		for e := start; e <= era; e++ {
			out = append(out, EraStake{Era: e, Amount: new(big.Int).Set(amount)})
		}
	}

	if hasFuture {
		l.Staked = l.StakedFuture.Clone()
	}
	l.Staked.Era = era + 1
	l.StakedFuture = nil

	if periodEndEra != nil && era >= *periodEndEra {
		l.Staked = StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0)}
		l.StakedFuture = nil
	}
	return out, nil
}
