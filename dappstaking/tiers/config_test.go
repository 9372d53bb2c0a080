package tiers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSlotFnInverselyProportionalToPrice(t *testing.T) {
	args := SlotNumberArgs{BaseNumberOfSlots: 10, PriceCoefficient: big.NewRat(100, 1)}
	low := DefaultSlotFn(big.NewRat(1, 1), args)
	high := DefaultSlotFn(big.NewRat(10, 1), args)
	require.Greater(t, low, high)
}

func TestDefaultSlotFnFloorsAtOne(t *testing.T) {
	args := SlotNumberArgs{BaseNumberOfSlots: 1, PriceCoefficient: big.NewRat(1, 1)}
	slots := DefaultSlotFn(big.NewRat(1000, 1), args)
	require.Equal(t, uint32(1), slots)
}

func TestDefaultSlotFnHandlesZeroOrNilPrice(t *testing.T) {
	args := SlotNumberArgs{BaseNumberOfSlots: 5}
	require.Equal(t, uint32(5), DefaultSlotFn(nil, args))
	require.Equal(t, uint32(5), DefaultSlotFn(big.NewRat(0, 1), args))
}

func TestCalculateNewFixedThreshold(t *testing.T) {
	params := Parameters{
		RewardPortion:    []*big.Rat{big.NewRat(1, 1)},
		SlotDistribution: []*big.Rat{big.NewRat(1, 1)},
		Thresholds: []Threshold{
			{Kind: Fixed, Percentage: big.NewRat(1, 100)},
		},
		SlotArgs: SlotNumberArgs{BaseNumberOfSlots: 10, PriceCoefficient: big.NewRat(1, 1)},
	}
	cfg := CalculateNew(params, big.NewRat(1, 1), big.NewRat(1, 1), big.NewInt(1_000_000))
	require.Equal(t, big.NewInt(10_000), cfg.Thresholds[0])
}

func TestCalculateNewDynamicThresholdClampsToMax(t *testing.T) {
	params := Parameters{
		RewardPortion:    []*big.Rat{big.NewRat(1, 1)},
		SlotDistribution: []*big.Rat{big.NewRat(1, 1)},
		Thresholds: []Threshold{
			{
				Kind:       Dynamic,
				Percentage: big.NewRat(1, 100),
				Min:        big.NewRat(1, 1000),
				Max:        big.NewRat(1, 10),
			},
		},
		// A coefficient of 1000 means the base price (1) implies 1000 slots
		// while a price of 1000 collapses available slots to 1 — a large
		// negative slot delta that pushes the adjusted threshold past Max.
		SlotArgs: SlotNumberArgs{PriceCoefficient: big.NewRat(1000, 1)},
	}
	cfg := CalculateNew(params, big.NewRat(1000, 1), big.NewRat(1, 1), big.NewInt(1_000_000))
	require.Equal(t, big.NewInt(100_000), cfg.Thresholds[0])
}

func TestConfigurationTotalSlots(t *testing.T) {
	cfg := Configuration{SlotsPerTier: []uint32{3, 5, 2}}
	require.Equal(t, uint32(10), cfg.TotalSlots())
}
