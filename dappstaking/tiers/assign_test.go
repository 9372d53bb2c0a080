package tiers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignFillsTiersBySortedStakeWithTieBreakByID(t *testing.T) {
	cfg := Configuration{
		SlotsPerTier:  []uint32{1, 1},
		RewardPortion: []*big.Rat{big.NewRat(1, 2), big.NewRat(1, 2)},
		Thresholds:    []*big.Int{big.NewInt(100), big.NewInt(50)},
	}
	stakes := map[uint16]*big.Int{
		1: big.NewInt(100),
		2: big.NewInt(100), // ties with 1; lower id takes the tier-0 slot,
		3: big.NewInt(60),  // the tied runner-up falls through into tier 1
	}
	out := Assign(cfg, stakes, 1, 10, big.NewInt(1000))

	require.Equal(t, uint8(0), out.DApps[1].TierID)
	require.Equal(t, uint8(1), out.DApps[2].TierID)
	_, stillAssigned := out.DApps[3]
	require.False(t, stillAssigned) // tier 1's single slot was already taken by dApp 2
}

func TestAssignDiscardsBelowLowestThreshold(t *testing.T) {
	cfg := Configuration{
		SlotsPerTier:  []uint32{5},
		RewardPortion: []*big.Rat{big.NewRat(1, 1)},
		Thresholds:    []*big.Int{big.NewInt(100)},
	}
	stakes := map[uint16]*big.Int{1: big.NewInt(99)}
	out := Assign(cfg, stakes, 1, 10, big.NewInt(1000))
	require.Empty(t, out.DApps)
}

func TestAssignRanksByStakePositionWithinTier(t *testing.T) {
	cfg := Configuration{
		SlotsPerTier:  []uint32{3},
		RewardPortion: []*big.Rat{big.NewRat(1, 1)},
		Thresholds:    []*big.Int{big.NewInt(100)},
	}
	stakes := map[uint16]*big.Int{
		1: big.NewInt(100), // at the threshold: rank 0
		2: big.NewInt(200), // top of the tier: rank == maxRank
		3: big.NewInt(150), // midway
	}
	out := Assign(cfg, stakes, 1, 10, big.NewInt(1000))
	require.Equal(t, uint8(0), out.DApps[1].Rank)
	require.Equal(t, uint8(10), out.DApps[2].Rank)
	require.Equal(t, uint8(5), out.DApps[3].Rank)
}

func TestAssignRewardsSplitFlatAndRank(t *testing.T) {
	cfg := Configuration{
		SlotsPerTier:  []uint32{1},
		RewardPortion: []*big.Rat{big.NewRat(1, 1)},
		Thresholds:    []*big.Int{big.NewInt(100)},
	}
	out := Assign(cfg, map[uint16]*big.Int{1: big.NewInt(100)}, 1, 10, big.NewInt(1100))
	require.Equal(t, big.NewInt(1100), out.Rewards[0])
	require.Equal(t, big.NewInt(100), out.RankRewards[0])
}

func TestAssignEmptyStakesProducesEmptyResult(t *testing.T) {
	cfg := Configuration{
		SlotsPerTier:  []uint32{1},
		RewardPortion: []*big.Rat{big.NewRat(1, 1)},
		Thresholds:    []*big.Int{big.NewInt(100)},
	}
	out := Assign(cfg, map[uint16]*big.Int{}, 1, 10, big.NewInt(1000))
	require.Empty(t, out.DApps)
	require.Equal(t, big.NewInt(1000), out.Rewards[0])
}
