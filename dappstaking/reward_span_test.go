package dappstaking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEraRewardSpanPushRequiresContiguousEras(t *testing.T) {
	s := NewEraRewardSpan(4)
	require.NoError(t, s.Push(10, EraReward{Staked: big.NewInt(1)}))
	require.Error(t, s.Push(12, EraReward{Staked: big.NewInt(1)}))
	require.NoError(t, s.Push(11, EraReward{Staked: big.NewInt(2)}))
	require.Equal(t, uint64(10), s.FirstEra())
	require.Equal(t, uint64(11), s.LastEra())
}

func TestEraRewardSpanEvictsOldestWhenFull(t *testing.T) {
	s := NewEraRewardSpan(2)
	require.NoError(t, s.Push(1, EraReward{Staked: big.NewInt(1)}))
	require.NoError(t, s.Push(2, EraReward{Staked: big.NewInt(2)}))
	require.NoError(t, s.Push(3, EraReward{Staked: big.NewInt(3)}))

	require.Equal(t, 2, s.Len())
	require.Equal(t, uint64(2), s.FirstEra())
	require.Equal(t, uint64(3), s.LastEra())

	_, ok := s.Get(1)
	require.False(t, ok)
	got, ok := s.Get(3)
	require.True(t, ok)
	require.Equal(t, big.NewInt(3), got.Staked)
}

func TestEraRewardSpanGetOutOfRange(t *testing.T) {
	s := NewEraRewardSpan(4)
	_, ok := s.Get(5)
	require.False(t, ok)
	require.NoError(t, s.Push(5, EraReward{Staked: big.NewInt(9)}))
	_, ok = s.Get(4)
	require.False(t, ok)
	_, ok = s.Get(6)
	require.False(t, ok)
}

func TestEraRewardSpanPruneBefore(t *testing.T) {
	s := NewEraRewardSpan(8)
	for era := uint64(1); era <= 5; era++ {
		require.NoError(t, s.Push(era, EraReward{Staked: big.NewInt(int64(era))}))
	}
	s.PruneBefore(3)
	require.Equal(t, uint64(3), s.FirstEra())
	require.Equal(t, 3, s.Len())

	s.PruneBefore(100)
	require.Equal(t, 0, s.Len())
}
