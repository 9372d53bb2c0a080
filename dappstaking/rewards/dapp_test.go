package rewards

import (
	"math/big"
	"testing"

	errs "github.com/astar-network/dapp-staking-v3/dappstaking/errors"
	"github.com/astar-network/dapp-staking-v3/dappstaking/tiers"
	"github.com/stretchr/testify/require"
)

func TestDAppRewardCombinesFlatAndRank(t *testing.T) {
	assignment := tiers.DAppTierRewards{
		DApps:       map[uint16]tiers.RankedTier{7: {TierID: 0, Rank: 3}},
		Rewards:     []*big.Int{big.NewInt(1000)},
		RankRewards: []*big.Int{big.NewInt(50)},
	}
	reward, tierID, err := DAppReward(assignment, 7)
	require.NoError(t, err)
	require.Equal(t, uint8(0), tierID)
	require.Equal(t, big.NewInt(1150), reward)
}

func TestDAppRewardNothingToClaimWhenUnassigned(t *testing.T) {
	assignment := tiers.DAppTierRewards{DApps: map[uint16]tiers.RankedTier{}}
	_, _, err := DAppReward(assignment, 1)
	require.ErrorIs(t, err, errs.ErrNothingToClaim)
}
