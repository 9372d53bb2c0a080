package dappstaking

import (
	"math/big"
	"testing"

	"github.com/astar-network/dapp-staking-v3/dappstaking/config"
	errs "github.com/astar-network/dapp-staking-v3/dappstaking/errors"
	"github.com/astar-network/dapp-staking-v3/dappstaking/tiers"
	"github.com/astar-network/dapp-staking-v3/host/hosttest"
	"github.com/stretchr/testify/require"
)

// These scenarios exercise full protocol flows end to end. They follow the
// engine's future-commit convention: a stake placed during era N first counts toward
// EraInfo's CurrentStakeAmount (and therefore toward a reward span entry)
// in era N+1, the same one-era lag ContractStakeAmount and AccountLedger
// apply to every stake/unstake. Reward pools below are supplied to the
// OnBlock call that ends the era a stake's effect actually lands in.

// A single staker earns the full pool once its stake is reflected in
// the era total.
func TestScenarioSingleStakerEarnsFullPool(t *testing.T) {
	cfg := config.DefaultConfig()
	currency := hosttest.NewCurrency(big.NewInt(1_000_000_000))
	engine := NewEngine(cfg, Collaborators{Currency: currency, Root: hosttest.RootOrigin{Root: rootCaller}}, tiers.Parameters{}, big.NewRat(1, 1))

	owner := testAccount(9)
	contractX := testContract(1)
	require.NoError(t, engine.Register(rootCaller, owner, contractX))

	staker := testAccount(1)
	currency.Fund(toHostAccount(staker), big.NewInt(10_000))
	require.NoError(t, engine.Lock(staker, big.NewInt(1_000)))
	require.NoError(t, engine.Stake(staker, contractX, big.NewInt(400)))

	// Ends era 1 (Voting -> BuildAndEarn); the 400 stake becomes era 2's
	// CurrentStakeAmount via MigrateToNextEra, so era 1's own span entry
	// carries no stake.
	require.NoError(t, engine.OnBlock(2, big.NewInt(0), big.NewInt(0)))
	// Ends era 2; CurrentStakeAmount is now 400, so this is where the
	// staker reward pool must land.
	require.NoError(t, engine.OnBlock(12, big.NewInt(10_000), big.NewInt(0)))

	reward, err := engine.ClaimStakerRewards(staker)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(10_000), reward)

	_, err = engine.ClaimStakerRewards(staker)
	require.ErrorIs(t, err, errs.ErrNothingToClaim)
}

// Unstaking during Build&Earn eats into the Voting commitment (the
// Build&Earn bucket is empty), spending one bonus safe move, and the next
// era's reward reflects the reduced stake.
func TestScenarioUnstakeDuringBuildAndEarnSpendsSafeMove(t *testing.T) {
	cfg := config.DefaultConfig()
	currency := hosttest.NewCurrency(big.NewInt(1_000_000_000))
	engine := NewEngine(cfg, Collaborators{Currency: currency, Root: hosttest.RootOrigin{Root: rootCaller}}, tiers.Parameters{}, big.NewRat(1, 1))

	contractX := testContract(1)
	require.NoError(t, engine.Register(rootCaller, testAccount(9), contractX))

	b := testAccount(1)
	currency.Fund(toHostAccount(b), big.NewInt(10_000))
	require.NoError(t, engine.Lock(b, big.NewInt(1_000)))
	require.NoError(t, engine.Stake(b, contractX, big.NewInt(400)))

	// Ends era 1: Voting -> BuildAndEarn.
	require.NoError(t, engine.OnBlock(2, big.NewInt(0), big.NewInt(0)))

	require.NoError(t, engine.Unstake(b, contractX, big.NewInt(100)))
	staker := engine.stakerInfos[engine.stakerInfoKey(b, contractX)]
	require.Equal(t, cfg.MaxBonusSafeMovesPerPeriod, staker.BonusStatus)
	require.True(t, staker.IsBonusEligible())

	// Ends era 2, where the post-unstake 300 is the whole era total.
	require.NoError(t, engine.OnBlock(12, big.NewInt(10_000), big.NewInt(0)))

	reward, err := engine.ClaimStakerRewards(b)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(10_000), reward)
}

// At the end of period 1 the voting-stake snapshot and funded bonus
// pool are sealed into PeriodEndInfo, and the loyal staker collects the
// whole bonus; the staker-info entry is consumed by the claim.
func TestScenarioPeriodEndBonusClaim(t *testing.T) {
	cfg := config.DefaultConfig()
	currency := hosttest.NewCurrency(big.NewInt(1_000_000_000))
	engine := NewEngine(cfg, Collaborators{Currency: currency, Root: hosttest.RootOrigin{Root: rootCaller}}, tiers.Parameters{}, big.NewRat(1, 1))

	contractX := testContract(1)
	require.NoError(t, engine.Register(rootCaller, testAccount(9), contractX))

	b := testAccount(1)
	currency.Fund(toHostAccount(b), big.NewInt(10_000))
	require.NoError(t, engine.Lock(b, big.NewInt(1_000)))
	require.NoError(t, engine.Stake(b, contractX, big.NewInt(400)))

	require.NoError(t, engine.OnBlock(2, big.NewInt(0), big.NewInt(0)))
	require.NoError(t, engine.Unstake(b, contractX, big.NewInt(100)))

	engine.FundBonusRewardPool(big.NewInt(5_000))

	// Eras 2..4 are Build&Earn; the transition at block 32 closes era 4
	// and period 1.
	require.NoError(t, engine.OnBlock(12, big.NewInt(10_000), big.NewInt(0)))
	require.NoError(t, engine.OnBlock(22, big.NewInt(10_000), big.NewInt(0)))
	require.NoError(t, engine.OnBlock(32, big.NewInt(10_000), big.NewInt(0)))

	ended, ok := engine.periodEnds[1]
	require.True(t, ok)
	require.Equal(t, uint64(4), ended.FinalEra)
	require.Equal(t, big.NewInt(300), ended.TotalVPStake)
	require.Equal(t, big.NewInt(5_000), ended.BonusRewardPool)

	bonus, err := engine.ClaimBonusReward(b, contractX, 1)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(5_000), bonus)

	_, ok = engine.stakerInfos[engine.stakerInfoKey(b, contractX)]
	require.False(t, ok)

	_, err = engine.ClaimBonusReward(b, contractX, 1)
	require.ErrorIs(t, err, errs.ErrBonusAlreadyClaimed)
}

// Two stakers on the same contract split a pool proportionally, with
// integer division rounding down and the remainder left undistributed.
func TestScenarioTwoStakersSplitProportionally(t *testing.T) {
	cfg := config.DefaultConfig()
	currency := hosttest.NewCurrency(big.NewInt(1_000_000_000))
	engine := NewEngine(cfg, Collaborators{Currency: currency, Root: hosttest.RootOrigin{Root: rootCaller}}, tiers.Parameters{}, big.NewRat(1, 1))

	contractX := testContract(1)
	require.NoError(t, engine.Register(rootCaller, testAccount(9), contractX))

	b := testAccount(1)
	c := testAccount(2)
	currency.Fund(toHostAccount(b), big.NewInt(10_000))
	currency.Fund(toHostAccount(c), big.NewInt(10_000))
	require.NoError(t, engine.Lock(b, big.NewInt(1_000)))
	require.NoError(t, engine.Lock(c, big.NewInt(1_000)))
	require.NoError(t, engine.Stake(b, contractX, big.NewInt(400)))
	require.NoError(t, engine.Stake(c, contractX, big.NewInt(200)))

	require.NoError(t, engine.OnBlock(2, big.NewInt(0), big.NewInt(0)))
	require.NoError(t, engine.OnBlock(12, big.NewInt(10_000), big.NewInt(0)))

	rewardB, err := engine.ClaimStakerRewards(b)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(6_666), rewardB)

	rewardC, err := engine.ClaimStakerRewards(c)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(3_333), rewardC)
}

// Two contracts land in two distinct tiers; claiming the same
// (dApp, era) dApp reward twice fails the second time.
func TestScenarioTierAssignmentAndDAppRewardIdempotence(t *testing.T) {
	cfg := config.DefaultConfig()
	currency := hosttest.NewCurrency(big.NewInt(1_000))
	params := tiers.Parameters{
		RewardPortion:    []*big.Rat{big.NewRat(1, 2), big.NewRat(1, 2)},
		SlotDistribution: []*big.Rat{big.NewRat(1, 1), big.NewRat(1, 1)},
		Thresholds: []tiers.Threshold{
			{Kind: tiers.Fixed, Percentage: big.NewRat(8, 10)},
			{Kind: tiers.Fixed, Percentage: big.NewRat(3, 10)},
		},
	}
	engine := NewEngine(cfg, Collaborators{Currency: currency, Root: hosttest.RootOrigin{Root: rootCaller}}, params, big.NewRat(1, 1))

	contractX := testContract(1)
	contractY := testContract(2)
	require.NoError(t, engine.Register(rootCaller, testAccount(9), contractX))
	require.NoError(t, engine.Register(rootCaller, testAccount(10), contractY))

	stakerX := testAccount(1)
	stakerY := testAccount(2)
	currency.Fund(toHostAccount(stakerX), big.NewInt(10_000))
	currency.Fund(toHostAccount(stakerY), big.NewInt(10_000))
	require.NoError(t, engine.Lock(stakerX, big.NewInt(1_000)))
	require.NoError(t, engine.Lock(stakerY, big.NewInt(500)))
	require.NoError(t, engine.Stake(stakerX, contractX, big.NewInt(1_000)))
	require.NoError(t, engine.Stake(stakerY, contractY, big.NewInt(500)))

	// Ends era 1: recomputes tier config (SubperiodChanged) after this
	// call's own, config-less tier assignment runs.
	require.NoError(t, engine.OnBlock(2, big.NewInt(0), big.NewInt(0)))
	// Ends era 2: the populated tier config now governs assignment, and
	// both contracts' stakes have landed in CurrentStakeAmount.
	require.NoError(t, engine.OnBlock(12, big.NewInt(0), big.NewInt(8_000)))

	rewardX, tierX, err := engine.ClaimDAppReward(contractX, 2)
	require.NoError(t, err)
	require.Equal(t, uint8(0), tierX)
	require.True(t, rewardX.Sign() > 0)

	rewardY, tierY, err := engine.ClaimDAppReward(contractY, 2)
	require.NoError(t, err)
	require.Equal(t, uint8(1), tierY)
	require.True(t, rewardY.Sign() > 0)

	_, _, err = engine.ClaimDAppReward(contractX, 2)
	require.ErrorIs(t, err, errs.ErrDAppRewardAlreadyClaimed)
}

// Filling the unlocking-chunk bound fails the next insertion, and
// letting every chunk mature lets claim_unlocked drain the whole sum.
func TestScenarioUnlockingChunkBoundAndDrain(t *testing.T) {
	cfg := config.DefaultConfig()
	currency := hosttest.NewCurrency(big.NewInt(0))
	blocks := &hosttest.BlockOracle{Height: 1}
	engine := NewEngine(cfg, Collaborators{Currency: currency, Blocks: blocks}, tiers.Parameters{}, big.NewRat(1, 1))

	account := testAccount(1)
	currency.Fund(toHostAccount(account), big.NewInt(10_000))
	require.NoError(t, engine.Lock(account, big.NewInt(10_000)))

	for i := uint32(0); i < cfg.MaxUnlockingChunks; i++ {
		blocks.Height++
		require.NoError(t, engine.Unlock(account, big.NewInt(1)))
	}
	// A ninth distinct unlock block would exceed the chunk bound; the same
	// block would merely coalesce, so advance first.
	blocks.Height++
	err := engine.Unlock(account, big.NewInt(1))
	require.ErrorIs(t, err, errs.ErrTooManyUnlockingChunks)

	blocks.Height += uint64(cfg.UnlockingPeriod) + 1
	claimed, err := engine.ClaimUnlocked(account)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(int64(cfg.MaxUnlockingChunks)), claimed)
}
