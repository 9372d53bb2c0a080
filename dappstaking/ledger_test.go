package dappstaking

import (
	"math/big"
	"testing"

	errs "github.com/astar-network/dapp-staking-v3/dappstaking/errors"
	"github.com/stretchr/testify/require"
)

func TestAccountLedgerAddSubtractLock(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(100))
	require.Equal(t, big.NewInt(100), l.Locked)

	l.SubtractLock(big.NewInt(150))
	require.Equal(t, big.NewInt(0), l.Locked)
}

func TestAccountLedgerIsEmpty(t *testing.T) {
	l := NewAccountLedger()
	require.True(t, l.IsEmpty())
	l.AddLock(big.NewInt(1))
	require.False(t, l.IsEmpty())
}

func TestAccountLedgerUnlockableExcludesStaked(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(100))
	require.NoError(t, l.AddStake(big.NewInt(30), 1, votingPeriod(1)))

	unlockable := l.Unlockable(votingPeriod(1))
	require.Equal(t, big.NewInt(70), unlockable)
}

func TestAccountLedgerAddUnlockingChunkCoalescesSameBlock(t *testing.T) {
	l := NewAccountLedger()
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(10), 100, 8))
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(5), 100, 8))
	require.Len(t, l.Unlocking, 1)
	require.Equal(t, big.NewInt(15), l.Unlocking[0].Amount)
}

func TestAccountLedgerAddUnlockingChunkOrdersByBlock(t *testing.T) {
	l := NewAccountLedger()
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(1), 200, 8))
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(1), 50, 8))
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(1), 100, 8))
	require.Equal(t, uint64(50), l.Unlocking[0].UnlockBlock)
	require.Equal(t, uint64(100), l.Unlocking[1].UnlockBlock)
	require.Equal(t, uint64(200), l.Unlocking[2].UnlockBlock)
}

func TestAccountLedgerAddUnlockingChunkRejectsZeroAmount(t *testing.T) {
	l := NewAccountLedger()
	err := l.AddUnlockingChunk(big.NewInt(0), 10, 8)
	require.ErrorIs(t, err, errs.ErrZeroAmount)
}

func TestAccountLedgerAddUnlockingChunkEnforcesCapacity(t *testing.T) {
	l := NewAccountLedger()
	for i := uint64(1); i <= 2; i++ {
		require.NoError(t, l.AddUnlockingChunk(big.NewInt(1), i, 2))
	}
	err := l.AddUnlockingChunk(big.NewInt(1), 3, 2)
	require.ErrorIs(t, err, errs.ErrNoCapacity)
}

func TestAccountLedgerClaimUnlockedDrainsMatured(t *testing.T) {
	l := NewAccountLedger()
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(10), 10, 8))
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(20), 20, 8))

	claimed := l.ClaimUnlocked(15)
	require.Equal(t, big.NewInt(10), claimed)
	require.Len(t, l.Unlocking, 1)
	require.Equal(t, uint64(20), l.Unlocking[0].UnlockBlock)
}

func TestAccountLedgerRelockUnlocking(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(5))
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(10), 10, 8))
	require.NoError(t, l.AddUnlockingChunk(big.NewInt(20), 20, 8))

	relocked := l.RelockUnlocking()
	require.Equal(t, big.NewInt(30), relocked)
	require.Empty(t, l.Unlocking)
	require.Equal(t, big.NewInt(35), l.Locked)
}

func TestAccountLedgerAddStakeRejectsInsufficientFunds(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(10))
	err := l.AddStake(big.NewInt(50), 1, votingPeriod(1))
	require.ErrorIs(t, err, errs.ErrUnavailableStakeFunds)
}

func TestAccountLedgerAddStakeFoldsMaturedFuture(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(1000))
	require.NoError(t, l.AddStake(big.NewInt(100), 5, votingPeriod(1)))
	require.NoError(t, l.AddStake(big.NewInt(50), 6, votingPeriod(1)))

	require.Equal(t, uint64(6), l.Staked.Era)
	require.Equal(t, big.NewInt(100), l.Staked.Voting)
	require.Equal(t, big.NewInt(150), l.StakedFuture.Voting)
}

func TestAccountLedgerUnstakeRejectsExceedingStake(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(1000))
	require.NoError(t, l.AddStake(big.NewInt(100), 5, votingPeriod(1)))

	err := l.Unstake(big.NewInt(500), 5, votingPeriod(1))
	require.ErrorIs(t, err, errs.ErrUnstakeAmountLargerThanStake)
}

func TestAccountLedgerUnstakeReducesBothEntries(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(1000))
	require.NoError(t, l.AddStake(big.NewInt(100), 5, votingPeriod(1)))
	require.NoError(t, l.AddStake(big.NewInt(50), 6, votingPeriod(1)))

	require.NoError(t, l.Unstake(big.NewInt(30), 6, votingPeriod(1)))
	require.Equal(t, big.NewInt(70), l.Staked.Voting)
	require.Equal(t, big.NewInt(120), l.StakedFuture.Voting)
}

func TestAccountLedgerClaimUpToEraYieldsEachEra(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(1000))
	require.NoError(t, l.AddStake(big.NewInt(100), 5, votingPeriod(1)))

	claims, err := l.ClaimUpToEra(7, nil)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	require.Equal(t, uint64(6), claims[0].Era)
	require.Equal(t, big.NewInt(100), claims[0].Amount)
	require.Equal(t, uint64(7), claims[1].Era)
	require.Equal(t, big.NewInt(100), claims[1].Amount)
	require.Equal(t, uint64(8), l.Staked.Era)
}

func TestAccountLedgerClaimUpToEraClearsAtPeriodEnd(t *testing.T) {
	l := NewAccountLedger()
	l.AddLock(big.NewInt(1000))
	require.NoError(t, l.AddStake(big.NewInt(100), 5, votingPeriod(1)))

	periodEnd := uint64(6)
	_, err := l.ClaimUpToEra(7, &periodEnd)
	require.NoError(t, err)
	require.True(t, l.Staked.IsEmpty())
	require.Nil(t, l.StakedFuture)
}

func TestAccountLedgerClaimUpToEraNothingToClaim(t *testing.T) {
	l := NewAccountLedger()
	_, err := l.ClaimUpToEra(1, nil)
	require.ErrorIs(t, err, errs.ErrNothingToClaim)
}
