package rewards

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBonusRewardProportionalShare(t *testing.T) {
	reward := BonusReward(big.NewInt(5000), big.NewInt(250), big.NewInt(1000))
	require.Equal(t, big.NewInt(1250), reward)
}

func TestBonusRewardZeroWhenNoVotingPowerStaked(t *testing.T) {
	reward := BonusReward(big.NewInt(5000), big.NewInt(250), big.NewInt(0))
	require.Equal(t, big.NewInt(0), reward)
}

func TestBonusRewardZeroWhenStakerHasNoVotingStake(t *testing.T) {
	reward := BonusReward(big.NewInt(5000), big.NewInt(0), big.NewInt(1000))
	require.Equal(t, big.NewInt(0), reward)
}
