package dappstaking

import (
	"math/big"
	"testing"

	"github.com/astar-network/dapp-staking-v3/dappstaking/config"
	"github.com/astar-network/dapp-staking-v3/dappstaking/state"
	"github.com/astar-network/dapp-staking-v3/dappstaking/tiers"
	"github.com/astar-network/dapp-staking-v3/host/hosttest"
	"github.com/astar-network/dapp-staking-v3/storage"
	"github.com/stretchr/testify/require"
)

func tierParamsOneTier() tiers.Parameters {
	return tiers.Parameters{
		RewardPortion:    []*big.Rat{big.NewRat(1, 1)},
		SlotDistribution: []*big.Rat{big.NewRat(1, 1)},
		Thresholds: []tiers.Threshold{
			{Kind: tiers.Fixed, Percentage: big.NewRat(1, 10)},
		},
	}
}

// A snapshot taken after live operations must rehydrate a fresh engine
// into the same observable state across every persisted collection.
func TestSnapshotThenLoadRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	currency := hosttest.NewCurrency(big.NewInt(1_000))
	engine := NewEngine(cfg, Collaborators{Currency: currency, Root: hosttest.RootOrigin{Root: rootCaller}}, tierParamsOneTier(), big.NewRat(1, 1))

	contract := testContract(1)
	require.NoError(t, engine.Register(rootCaller, testAccount(9), contract))
	staker := testAccount(1)
	currency.Fund(toHostAccount(staker), big.NewInt(10_000))
	require.NoError(t, engine.Lock(staker, big.NewInt(1_000)))
	require.NoError(t, engine.Stake(staker, contract, big.NewInt(500)))
	require.NoError(t, engine.Unlock(staker, big.NewInt(200)))

	require.NoError(t, engine.OnBlock(2, big.NewInt(0), big.NewInt(0)))
	require.NoError(t, engine.OnBlock(12, big.NewInt(10_000), big.NewInt(1_000)))

	store := state.NewStore(storage.NewMemDB())
	require.NoError(t, engine.Snapshot(store))

	restored := NewEngine(cfg, Collaborators{Currency: currency}, tierParamsOneTier(), big.NewRat(1, 1))
	require.NoError(t, restored.LoadFrom(store))

	require.Equal(t, engine.ProtocolState(), restored.ProtocolState())
	require.Equal(t, engine.nextDAppID, restored.nextDAppID)
	require.Equal(t, engine.eraInfo, restored.eraInfo)
	require.Equal(t, engine.dapps, restored.dapps)
	require.Equal(t, engine.ledgers, restored.ledgers)
	require.Equal(t, engine.stakerInfos, restored.stakerInfos)
	require.Equal(t, engine.contractStakes, restored.contractStakes)
	require.Equal(t, engine.periodEnds, restored.periodEnds)
	require.Equal(t, engine.tierHistory, restored.tierHistory)
	require.Equal(t, engine.rewardSpan.FirstEra(), restored.rewardSpan.FirstEra())
	require.Equal(t, engine.rewardSpan.LastEra(), restored.rewardSpan.LastEra())
	require.Equal(t, engine.tierConfig.SlotsPerTier, restored.tierConfig.SlotsPerTier)
	require.Equal(t, engine.tierConfig.Thresholds, restored.tierConfig.Thresholds)

	// The restored engine keeps working: the pending staker claim settles
	// to the same amount it would have on the original.
	reward, err := restored.ClaimStakerRewards(staker)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(10_000), reward)
}

// Records deleted from live state between snapshots are deleted from the
// store as well, so a later load does not resurrect them.
func TestSnapshotDeletesStaleRecords(t *testing.T) {
	cfg := config.DefaultConfig()
	currency := hosttest.NewCurrency(big.NewInt(1_000))
	engine := NewEngine(cfg, Collaborators{Currency: currency, Root: hosttest.RootOrigin{Root: rootCaller}}, tiers.Parameters{}, big.NewRat(1, 1))

	contract := testContract(1)
	require.NoError(t, engine.Register(rootCaller, testAccount(9), contract))
	staker := testAccount(1)
	currency.Fund(toHostAccount(staker), big.NewInt(10_000))
	require.NoError(t, engine.Lock(staker, big.NewInt(1_000)))
	require.NoError(t, engine.Stake(staker, contract, big.NewInt(500)))

	store := state.NewStore(storage.NewMemDB())
	require.NoError(t, engine.Snapshot(store))

	require.NoError(t, engine.Unstake(staker, contract, big.NewInt(500)))
	require.NoError(t, engine.Snapshot(store))

	restored := NewEngine(cfg, Collaborators{Currency: currency}, tiers.Parameters{}, big.NewRat(1, 1))
	require.NoError(t, restored.LoadFrom(store))
	require.Empty(t, restored.stakerInfos)
}
