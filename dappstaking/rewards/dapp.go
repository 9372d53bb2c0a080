package rewards

import (
	"math/big"

	errs "github.com/astar-network/dapp-staking-v3/dappstaking/errors"
	"github.com/astar-network/dapp-staking-v3/dappstaking/tiers"
)

// DAppReward computes a dApp's tier reward for an era: the tier's flat
// reward plus its rank reward scaled by the dApp's assigned rank. Fails
// ErrNothingToClaim when the dApp was not assigned any tier for the era
// (its stake fell below every threshold, or it was never enumerated).
func DAppReward(assignment tiers.DAppTierRewards, dappID uint16) (*big.Int, uint8, error) {
	ranked, ok := assignment.DApps[dappID]
	if !ok {
		return nil, 0, errs.ErrNothingToClaim
	}
	flat := assignment.Rewards[ranked.TierID]
	rankBonus := new(big.Int).Mul(assignment.RankRewards[ranked.TierID], big.NewInt(int64(ranked.Rank)))
	return new(big.Int).Add(flat, rankBonus), ranked.TierID, nil
}
