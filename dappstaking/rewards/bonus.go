package rewards

import "math/big"

// BonusReward computes the period-end loyalty bonus a bonus-eligible staker
// earns on one contract: bonusRewardPool * (votingStake/totalVPStake),
// rounded toward zero.
func BonusReward(bonusRewardPool, votingStake, totalVPStake *big.Int) *big.Int {
	total := nonNil(totalVPStake)
	if total.Sign() <= 0 || votingStake == nil || votingStake.Sign() <= 0 {
		return big.NewInt(0)
	}
	share := new(big.Rat).SetFrac(votingStake, total)
	pool := new(big.Rat).SetInt(nonNil(bonusRewardPool))
	reward := new(big.Rat).Mul(pool, share)
	return new(big.Int).Quo(reward.Num(), reward.Denom())
}
