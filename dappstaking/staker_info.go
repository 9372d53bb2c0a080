package dappstaking

import "math/big"

// SingularStakingInfo is the per (account, contract) staking position,
// carrying a bonus-eligibility counter that is forfeited once a staker
// exhausts their safe moves reducing the Voting commitment during
// Build&Earn. PreviousStaked holds the pre-mutation snapshot needed to
// compute unstake deltas against an in-flight era.
type SingularStakingInfo struct {
	PreviousStaked StakeAmount
	Staked         StakeAmount
	BonusStatus    uint8
}

// NewSingularStakingInfo constructs a fresh entry for the given period with
// the initial bonus status the caller has already decided: MaxBonusSafeMoves+1
// for a first stake placed during Voting, 0 for a first stake placed during
// Build&Earn.
func NewSingularStakingInfo(period uint64, initialBonusStatus uint8) SingularStakingInfo {
	return SingularStakingInfo{
		PreviousStaked: StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0)},
		Staked:         StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0), Period: period},
		BonusStatus:    initialBonusStatus,
	}
}

// IsBonusEligible reports whether the staker retains bonus eligibility on
// this contract for the referenced period.
func (s SingularStakingInfo) IsBonusEligible() bool { return s.BonusStatus > 0 }

// Total returns the current staked total (Voting + BuildAndEarn).
func (s SingularStakingInfo) Total() *big.Int { return s.Staked.Total() }

// mergeBonusStatus combines the existing and incoming bonus counters. A
// zero existing counter simply adopts the incoming value (the entry had no
// live bonus eligibility to merge with). Otherwise the two are combined by
// arithmetic mean, floored.
func mergeBonusStatus(existing, incoming uint8) uint8 {
	if existing == 0 {
		return incoming
	}
	if incoming == 0 {
		return existing
	}
	return uint8((uint32(existing) + uint32(incoming)) / 2)
}

// Stake records an additional commitment of amount at currentEra, snapshotting
// the pre-stake position into PreviousStaked when the staker had not already
// snapshotted this era, merging bonus status, and advancing Staked.Era to
// currentEra+1.
func (s *SingularStakingInfo) Stake(amount *big.Int, currentEra uint64, period PeriodInfo, incomingBonusStatus uint8) {
	if s.Staked.Era <= currentEra {
		snapshot := s.Staked.Clone()
		snapshot.Era = currentEra
		s.PreviousStaked = snapshot
	}

	s.BonusStatus = mergeBonusStatus(s.BonusStatus, incomingBonusStatus)

	s.Staked = s.Staked.AddAmount(amount, period.Subperiod)
	s.Staked.Era = currentEra + 1
	s.Staked.Period = period.Period
}

// Unstake withdraws amount from the staker's position, decrementing the
// bonus-status counter whenever the Voting bucket shrinks during
// Build&Earn, and returns the StakeAmount deltas this unstake produces —
// one scoped to the era following currentEra, plus an additional delta
// scoped to currentEra itself when the unstake also unwinds a same-era
// PreviousStaked snapshot (i.e. the contract's still-open current-era
// entry must shrink too, not only its future entry).
func (s *SingularStakingInfo) Unstake(amount *big.Int, currentEra uint64, currentSubperiod Subperiod) []StakeAmount {
	before := s.Staked.Clone()

	s.Staked = s.Staked.SubtractAmount(amount)

	period := s.Staked.Period
	if period == 0 {
		period = before.Period
	}

	if currentSubperiod == BuildAndEarn && s.Staked.Voting.Cmp(before.Voting) < 0 {
		if s.BonusStatus > 0 {
			s.BonusStatus--
		}
	}

	resultEra := currentEra + 1
	s.Staked.Era = resultEra
	s.Staked.Period = period

	nextDelta := StakeAmount{
		Voting:       new(big.Int).Sub(s.Staked.Voting, before.Voting),
		BuildAndEarn: new(big.Int).Sub(s.Staked.BuildAndEarn, before.BuildAndEarn),
		Era:          resultEra,
		Period:       period,
	}
	deltas := []StakeAmount{nextDelta}

	if !s.PreviousStaked.IsEmpty() && s.PreviousStaked.Era == currentEra {
		deltas = append(deltas, StakeAmount{
			Voting:       new(big.Int).Set(nextDelta.Voting),
			BuildAndEarn: new(big.Int).Set(nextDelta.BuildAndEarn),
			Era:          currentEra,
			Period:       period,
		})
	}

	if s.Staked.IsEmpty() {
		s.Staked = StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0)}
		s.PreviousStaked = StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0)}
	}
	return deltas
}
