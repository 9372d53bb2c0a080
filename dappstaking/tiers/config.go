// Package tiers implements the dApp Staking tier engine: threshold/slot
// recomputation from the native token price and per-era tier assignment
// with rank sub-partitioning. All ratio math is big.Rat, floored on
// conversion back to integer amounts.
package tiers

import "math/big"

// ThresholdKind distinguishes a fixed percentage-of-issuance threshold from
// one that moves with the number of available slots.
type ThresholdKind uint8

const (
	// Fixed requires exactly Percentage of total issuance.
	Fixed ThresholdKind = iota
	// Dynamic requires Percentage of issuance, adjusted by the slot delta
	// and clamped to [Min, Max] of issuance.
	Dynamic
)

// Threshold is one tier's entry requirement, expressed as a percentage of
// total issuance (big.Rat in [0,1]).
type Threshold struct {
	Kind       ThresholdKind
	Percentage *big.Rat
	Min        *big.Rat
	Max        *big.Rat
}

// SlotNumberArgs parameterizes the pluggable slot-count function.
type SlotNumberArgs struct {
	BaseNumberOfSlots uint32
	PriceCoefficient  *big.Rat
}

// SlotFn computes the number of reward slots available at the given native
// token price. It is a plain function value on Parameters, not persisted
// configuration.
type SlotFn func(price *big.Rat, args SlotNumberArgs) uint32

// DefaultSlotFn is inversely proportional to price: as the native token
// becomes more valuable, fewer slots are needed to reach the same USD-
// denominated reward floor. Floors at 1 slot.
func DefaultSlotFn(price *big.Rat, args SlotNumberArgs) uint32 {
	if price == nil || price.Sign() <= 0 {
		return maxU32(args.BaseNumberOfSlots, 1)
	}
	coeff := args.PriceCoefficient
	if coeff == nil {
		coeff = big.NewRat(1, 1)
	}
	scaled := new(big.Rat).Quo(coeff, price)
	slots := ratFloorUint32(scaled)
	return maxU32(slots, 1)
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func ratFloorUint32(r *big.Rat) uint32 {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if !q.IsUint64() {
		return 0
	}
	v := q.Uint64()
	if v > 1<<32-1 {
		return 1<<32 - 1
	}
	return uint32(v)
}

// Parameters are the base, governance-configured tier parameters: portion
// of the reward pool per tier, slot distribution per tier, and the entry
// threshold per tier. Indexed 0..NumberOfTiers-1, highest tier first.
type Parameters struct {
	RewardPortion    []*big.Rat
	SlotDistribution []*big.Rat
	Thresholds       []Threshold
	SlotArgs         SlotNumberArgs
	SlotFunc         SlotFn
}

// NumberOfTiers returns the configured tier count.
func (p Parameters) NumberOfTiers() int { return len(p.Thresholds) }

// Configuration is the derived, per-subperiod tier configuration: slot
// capacity, reward portion, and absolute threshold amounts, recomputed from
// Parameters plus the live native token price and total issuance.
type Configuration struct {
	SlotsPerTier  []uint32
	RewardPortion []*big.Rat
	Thresholds    []*big.Int
}

// TotalSlots sums every tier's slot capacity.
func (c Configuration) TotalSlots() uint32 {
	var total uint32
	for _, s := range c.SlotsPerTier {
		total += s
	}
	return total
}

// CalculateNew recomputes a Configuration from params, the live native
// price, and total issuance. Dynamic thresholds move against the slot-count
// delta and clamp to their [min, max] band of issuance.
func CalculateNew(params Parameters, price *big.Rat, basePrice *big.Rat, totalIssuance *big.Int) Configuration {
	slotFn := params.SlotFunc
	if slotFn == nil {
		slotFn = DefaultSlotFn
	}

	baseSlots := slotFn(basePrice, params.SlotArgs)
	if baseSlots < 1 {
		baseSlots = 1
	}
	newSlots := slotFn(price, params.SlotArgs)
	if newSlots < 1 {
		newSlots = 1
	}

	slotsPerTier := make([]uint32, len(params.SlotDistribution))
	for i, dist := range params.SlotDistribution {
		scaled := new(big.Rat).Mul(dist, new(big.Rat).SetUint64(uint64(newSlots)))
		slotsPerTier[i] = ratFloorUint32(scaled)
	}

	var deltaNum, deltaDen int64
	increased := newSlots >= baseSlots
	if increased {
		deltaNum, deltaDen = int64(newSlots-baseSlots), int64(newSlots)
	} else {
		deltaNum, deltaDen = int64(baseSlots-newSlots), int64(newSlots)
	}
	delta := big.NewRat(deltaNum, deltaDen)

	thresholds := make([]*big.Int, len(params.Thresholds))
	for i, t := range params.Thresholds {
		switch t.Kind {
		case Fixed:
			thresholds[i] = ratMulIntFloor(t.Percentage, totalIssuance)
		default:
			baseAmount := ratMulIntFloorRat(t.Percentage, totalIssuance)
			adjustment := new(big.Rat).Mul(delta, baseAmount)
			var adjusted *big.Rat
			if increased {
				adjusted = new(big.Rat).Sub(baseAmount, adjustment)
			} else {
				adjusted = new(big.Rat).Add(baseAmount, adjustment)
			}
			minAmount := ratMulIntFloorRat(t.Min, totalIssuance)
			maxAmount := ratMulIntFloorRat(t.Max, totalIssuance)
			if adjusted.Cmp(minAmount) < 0 {
				adjusted = minAmount
			}
			if adjusted.Cmp(maxAmount) > 0 {
				adjusted = maxAmount
			}
			thresholds[i] = new(big.Int).Quo(adjusted.Num(), adjusted.Denom())
		}
	}

	return Configuration{
		SlotsPerTier:  slotsPerTier,
		RewardPortion: params.RewardPortion,
		Thresholds:    thresholds,
	}
}

func ratMulIntFloor(percentage *big.Rat, total *big.Int) *big.Int {
	scaled := new(big.Rat).Mul(percentage, new(big.Rat).SetInt(total))
	return new(big.Int).Quo(scaled.Num(), scaled.Denom())
}

func ratMulIntFloorRat(percentage *big.Rat, total *big.Int) *big.Rat {
	return new(big.Rat).Mul(percentage, new(big.Rat).SetInt(total))
}
