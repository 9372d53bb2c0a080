// Package rewards computes the three reward payouts the protocol makes —
// staker, bonus, and dApp — as pure functions over already-resolved eras and
// pools. It deliberately takes plain amounts and lookup functions rather than
// importing the dappstaking package's ledger/era types, so the engine (which
// lives in package dappstaking) can depend on this package without an
// import cycle.
package rewards

import "math/big"

func nonNil(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}

// EraClaim is one (era, amount) pair a staker is settling, as produced by
// the account ledger's claim iterator.
type EraClaim struct {
	Era    uint64
	Amount *big.Int
}

// EraTotals is the settled staker reward pool and total stake for the era a
// claim is evaluated against.
type EraTotals struct {
	StakerRewardPool *big.Int
	TotalStaked      *big.Int
}

// StakerReward computes a single era's reward share: pool * (mine/total),
// rounded toward zero using big.Rat so no precision is lost mid-computation.
func StakerReward(totals EraTotals, mine *big.Int) *big.Int {
	total := nonNil(totals.TotalStaked)
	if total.Sign() <= 0 || mine == nil || mine.Sign() <= 0 {
		return big.NewInt(0)
	}
	share := new(big.Rat).SetFrac(mine, total)
	pool := new(big.Rat).SetInt(nonNil(totals.StakerRewardPool))
	reward := new(big.Rat).Mul(pool, share)
	return new(big.Int).Quo(reward.Num(), reward.Denom())
}

// ClaimStakerRewards sums StakerReward across every claimed era, resolving
// each era's totals via totalsFor. Eras the lookup can't resolve (pruned out
// of the bounded reward span) contribute zero rather than failing the whole
// claim, so a staker with a very old claim still recovers what is still
// retained.
func ClaimStakerRewards(claims []EraClaim, totalsFor func(era uint64) (EraTotals, bool)) *big.Int {
	sum := big.NewInt(0)
	for _, c := range claims {
		totals, ok := totalsFor(c.Era)
		if !ok {
			continue
		}
		sum.Add(sum, StakerReward(totals, c.Amount))
	}
	return sum
}
