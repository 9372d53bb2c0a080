package dappstaking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEraInfoLockedAndUnlockingSaturateAtZero(t *testing.T) {
	e := NewEraInfo(1, 1)
	e.AddLocked(big.NewInt(50))
	e.SubtractLocked(big.NewInt(100))
	require.Equal(t, big.NewInt(0), e.TotalLocked)

	e.AddUnlocking(big.NewInt(10))
	e.SubtractUnlocking(big.NewInt(100))
	require.Equal(t, big.NewInt(0), e.Unlocking)
}

func TestEraInfoMigrateToNextEraCarriesForward(t *testing.T) {
	e := NewEraInfo(1, 1)
	e.AddStakeAmount(big.NewInt(30), Voting)

	e.MigrateToNextEra(2, 1, false)
	require.Equal(t, uint64(2), e.CurrentStakeAmount.Era)
	require.Equal(t, big.NewInt(30), e.CurrentStakeAmount.Voting)
	require.Equal(t, uint64(3), e.NextStakeAmount.Era)
	require.Equal(t, big.NewInt(30), e.NextStakeAmount.Voting)
}

func TestEraInfoMigrateToNextEraResetsOnNewPeriod(t *testing.T) {
	e := NewEraInfo(1, 1)
	e.AddStakeAmount(big.NewInt(30), Voting)

	e.MigrateToNextEra(2, 2, true)
	require.True(t, e.CurrentStakeAmount.IsEmpty())
	require.True(t, e.NextStakeAmount.IsEmpty())
	require.Equal(t, uint64(2), e.CurrentStakeAmount.Period)
	require.Equal(t, uint64(2), e.NextStakeAmount.Period)
}

func TestEraInfoUnstakeAmountAffectsBothBuckets(t *testing.T) {
	e := NewEraInfo(1, 1)
	e.AddStakeAmount(big.NewInt(100), BuildAndEarn)
	e.CurrentStakeAmount = e.CurrentStakeAmount.AddAmount(big.NewInt(100), BuildAndEarn)

	e.UnstakeAmount(big.NewInt(40))
	require.Equal(t, big.NewInt(60), e.CurrentStakeAmount.BuildAndEarn)
	require.Equal(t, big.NewInt(60), e.NextStakeAmount.BuildAndEarn)
}
