package dappstaking

import "math/big"

// ContractStakeAmount is the per-contract aggregated stake series: at most
// two entries, the active era and the staged next era.
type ContractStakeAmount struct {
	Staked       StakeAmount
	StakedFuture *StakeAmount
}

// NewContractStakeAmount returns an empty series.
func NewContractStakeAmount() ContractStakeAmount {
	return ContractStakeAmount{Staked: StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0)}}
}

// IsEmpty reports whether the series holds no stake in either entry.
func (c ContractStakeAmount) IsEmpty() bool {
	return c.Staked.IsEmpty() && c.StakedFuture == nil
}

// alignPeriod clears any entry whose period no longer matches, enforcing
// the invariant that the series never mixes entries from two periods.
func (c *ContractStakeAmount) alignPeriod(period uint64) {
	if !c.Staked.IsEmpty() && c.Staked.Period != period {
		c.Staked = StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0)}
	}
	if c.StakedFuture != nil && c.StakedFuture.Period != period {
		c.StakedFuture = nil
	}
}

// Stake commits amount to the contract's series at currentEra+1, folding a
// matured StakedFuture into Staked first and clearing stale entries from a
// prior period.
func (c *ContractStakeAmount) Stake(amount *big.Int, currentEra uint64, period PeriodInfo) {
	c.alignPeriod(period.Period)

	if c.StakedFuture != nil && c.StakedFuture.Era <= currentEra {
		c.Staked = c.StakedFuture.Clone()
		c.StakedFuture = nil
	}

	base := c.Staked.Clone()
	if c.StakedFuture != nil {
		base = c.StakedFuture.Clone()
	}
	base.Era = currentEra + 1
	base.Period = period.Period
	updated := base.AddAmount(amount, period.Subperiod)
	c.StakedFuture = &updated
}

func addDelta(entry *StakeAmount, delta StakeAmount) {
	entry.Voting = new(big.Int).Add(nonNilBig(entry.Voting), nonNilBig(delta.Voting))
	entry.BuildAndEarn = new(big.Int).Add(nonNilBig(entry.BuildAndEarn), nonNilBig(delta.BuildAndEarn))
	if entry.Voting.Sign() < 0 {
		entry.Voting.SetInt64(0)
	}
	if entry.BuildAndEarn.Sign() < 0 {
		entry.BuildAndEarn.SetInt64(0)
	}
}

// ApplyDelta folds a signed StakeAmount delta — as produced by
// SingularStakingInfo.Unstake — into the series entry matching delta.Era.
// When delta.Era lands beyond both recorded entries, the older entry is
// evicted and a new one opened at delta.Era.
func (c *ContractStakeAmount) ApplyDelta(delta StakeAmount, period PeriodInfo) {
	c.alignPeriod(period.Period)

	switch {
	case !c.Staked.IsEmpty() && c.Staked.Era == delta.Era:
		addDelta(&c.Staked, delta)
	case c.StakedFuture != nil && c.StakedFuture.Era == delta.Era:
		addDelta(c.StakedFuture, delta)
	case c.Staked.IsEmpty() && c.StakedFuture == nil:
		entry := ZeroStakeAmount(delta.Era, period.Period)
		addDelta(&entry, delta)
		c.Staked = entry
	default:
		if c.StakedFuture != nil {
			c.Staked = *c.StakedFuture
		}
		entry := ZeroStakeAmount(delta.Era, period.Period)
		addDelta(&entry, delta)
		c.StakedFuture = &entry
	}
}

// AmountFor returns the effective staked total for era within period: the
// most recent entry with Era <= era and a matching period, or zero.
func (c ContractStakeAmount) AmountFor(era, period uint64) *big.Int {
	var best *StakeAmount
	if !c.Staked.IsEmpty() && c.Staked.Period == period && c.Staked.Era <= era {
		best = &c.Staked
	}
	if c.StakedFuture != nil && c.StakedFuture.Period == period && c.StakedFuture.Era <= era {
		if best == nil || c.StakedFuture.Era > best.Era {
			best = c.StakedFuture
		}
	}
	if best == nil {
		return big.NewInt(0)
	}
	return best.Total()
}
