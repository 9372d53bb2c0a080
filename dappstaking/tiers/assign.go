package tiers

import (
	"math/big"
	"sort"
)

// RankedTier packs the tier a dApp was assigned to for an era plus its rank
// within that tier (0..MaxRank).
type RankedTier struct {
	TierID uint8
	Rank   uint8
}

// DAppTierRewards is the per-era outcome of tier assignment: which tier and
// rank each dApp landed in, the flat per-tier reward, and the incremental
// per-rank reward, scoped to the period the era belongs to.
type DAppTierRewards struct {
	DApps       map[uint16]RankedTier
	Rewards     []*big.Int
	RankRewards []*big.Int
	Period      uint64
}

type candidate struct {
	id    uint16
	stake *big.Int
}

// Assign runs the per-era tier assignment: discard
// dApps below the lowest threshold, sort by descending stake (ties by id
// ascending), then walk tiers top-to-bottom, each tier taking from the rest
// of the sorted list the dApps whose stake meets its threshold, up to its
// slot count. A dApp that qualifies for a tier whose slots are already full
// is considered for the next tier down. Members of a tier are further ranked
// by where their stake falls within that tier's observed stake range, giving
// finer-grained reward steps than a single flat tier reward.
func Assign(cfg Configuration, stakes map[uint16]*big.Int, period uint64, maxRank uint8, rewardPool *big.Int) DAppTierRewards {
	out := DAppTierRewards{
		DApps:       make(map[uint16]RankedTier),
		Rewards:     make([]*big.Int, len(cfg.Thresholds)),
		RankRewards: make([]*big.Int, len(cfg.Thresholds)),
		Period:      period,
	}
	for i := range cfg.Thresholds {
		out.Rewards[i] = ratMulIntFloorPortion(cfg.RewardPortion[i], rewardPool)
		out.RankRewards[i] = new(big.Int).Quo(out.Rewards[i], big.NewInt(int64(maxRank)+1))
	}

	if len(cfg.Thresholds) == 0 {
		return out
	}
	lowest := cfg.Thresholds[len(cfg.Thresholds)-1]

	candidates := make([]candidate, 0, len(stakes))
	for id, stake := range stakes {
		if stake == nil || stake.Cmp(lowest) < 0 {
			continue
		}
		candidates = append(candidates, candidate{id: id, stake: stake})
	}
	sort.Slice(candidates, func(i, j int) bool {
		cmp := candidates[i].stake.Cmp(candidates[j].stake)
		if cmp != 0 {
			return cmp > 0
		}
		return candidates[i].id < candidates[j].id
	})

	pos := 0
	for tierID, threshold := range cfg.Thresholds {
		slots := int(cfg.SlotsPerTier[tierID])
		if slots <= 0 {
			continue
		}
		members := make([]candidate, 0, slots)
		for pos < len(candidates) && len(members) < slots {
			if candidates[pos].stake.Cmp(threshold) < 0 {
				break
			}
			members = append(members, candidates[pos])
			pos++
		}
		if len(members) == 0 {
			continue
		}
		rankTier(out.DApps, uint8(tierID), members, threshold, maxRank)
	}
	return out
}

// rankTier assigns ranks to a tier's members by bracketing their stake,
// linearly, between the tier's entry threshold and the top member's stake.
func rankTier(assignments map[uint16]RankedTier, tierID uint8, members []candidate, threshold *big.Int, maxRank uint8) {
	top := members[0].stake
	spread := new(big.Int).Sub(top, threshold)
	for _, m := range members {
		rank := uint8(0)
		if spread.Sign() > 0 && maxRank > 0 {
			offset := new(big.Int).Sub(m.stake, threshold)
			scaled := new(big.Int).Mul(offset, big.NewInt(int64(maxRank)))
			rank = uint8(new(big.Int).Quo(scaled, spread).Uint64())
			if rank > maxRank {
				rank = maxRank
			}
		}
		assignments[m.id] = RankedTier{TierID: tierID, Rank: rank}
	}
}

func ratMulIntFloorPortion(portion *big.Rat, total *big.Int) *big.Int {
	if portion == nil || total == nil {
		return big.NewInt(0)
	}
	scaled := new(big.Rat).Mul(portion, new(big.Rat).SetInt(total))
	return new(big.Int).Quo(scaled.Num(), scaled.Denom())
}
