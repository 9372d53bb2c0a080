// Package dappstaking implements the dApp staking protocol core: the
// deterministic era/period state machine, staking ledger, tiered reward
// assignment, and reward claiming. Engine is the single entry point; every
// externally triggered action is one mutex-guarded method on it.
package dappstaking

import "math/big"

// Subperiod is one of the two halves of a period.
type Subperiod uint8

const (
	// Voting is the first subperiod of every period. Stakes placed during
	// Voting accrue bonus eligibility.
	Voting Subperiod = iota
	// BuildAndEarn is the subperiod following Voting; most ongoing rewards
	// accrue here.
	BuildAndEarn
)

// Next returns the subperiod that follows this one in the two-phase cycle.
func (s Subperiod) Next() Subperiod {
	if s == Voting {
		return BuildAndEarn
	}
	return Voting
}

func (s Subperiod) String() string {
	if s == Voting {
		return "Voting"
	}
	return "BuildAndEarn"
}

// PeriodInfo tracks the current period number, which subperiod is active,
// and the era at which the next subperiod begins.
type PeriodInfo struct {
	Period               uint64
	Subperiod            Subperiod
	NextSubperiodStartEra uint64
}

// ProtocolState is the process-wide singleton driving the era/period state
// machine (design note: "module globals" — a small number of process-wide
// singletons owned by the core).
type ProtocolState struct {
	Era               uint64
	NextEraStartBlock uint64
	Period            PeriodInfo
	Maintenance       bool
}

// InitialProtocolState returns the genesis protocol state: era 1, period 1,
// Voting, with the first era ending at block 2.
func InitialProtocolState() ProtocolState {
	return ProtocolState{
		Era:               1,
		NextEraStartBlock: 2,
		Period: PeriodInfo{
			Period:                1,
			Subperiod:             Voting,
			NextSubperiodStartEra: 2,
		},
		Maintenance: false,
	}
}

// ForcingType enumerates the root-controlled forcing requests.
type ForcingType uint8

const (
	// ForcingNone means transitions only occur when the block clock
	// naturally reaches NextEraStartBlock.
	ForcingNone ForcingType = iota
	// ForcingEra truncates the current era to end immediately.
	ForcingEra
	// ForcingSubperiod additionally forces the current subperiod to end.
	ForcingSubperiod
)

func (f ForcingType) String() string {
	switch f {
	case ForcingEra:
		return "Era"
	case ForcingSubperiod:
		return "Subperiod"
	default:
		return "None"
	}
}

// StakeAmount splits a stake total across the two subperiod buckets, scoped
// to the era/period it was recorded for.
type StakeAmount struct {
	Voting       *big.Int
	BuildAndEarn *big.Int
	Era          uint64
	Period       uint64
}

// ZeroStakeAmount returns an empty StakeAmount scoped to the given era/period.
func ZeroStakeAmount(era, period uint64) StakeAmount {
	return StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0), Era: era, Period: period}
}

func nonNilBig(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}

// Total returns Voting + BuildAndEarn.
func (s StakeAmount) Total() *big.Int {
	return new(big.Int).Add(nonNilBig(s.Voting), nonNilBig(s.BuildAndEarn))
}

// IsEmpty reports whether the stake amount carries no value in either bucket.
func (s StakeAmount) IsEmpty() bool {
	return nonNilBig(s.Voting).Sign() == 0 && nonNilBig(s.BuildAndEarn).Sign() == 0
}

// Clone returns a deep copy safe for independent mutation.
func (s StakeAmount) Clone() StakeAmount {
	return StakeAmount{
		Voting:       new(big.Int).Set(nonNilBig(s.Voting)),
		BuildAndEarn: new(big.Int).Set(nonNilBig(s.BuildAndEarn)),
		Era:          s.Era,
		Period:       s.Period,
	}
}

// AddAmount adds amount to the subperiod bucket matching the current
// subperiod, leaving the other bucket untouched.
func (s StakeAmount) AddAmount(amount *big.Int, subperiod Subperiod) StakeAmount {
	out := s.Clone()
	if subperiod == Voting {
		out.Voting.Add(out.Voting, nonNilBig(amount))
	} else {
		out.BuildAndEarn.Add(out.BuildAndEarn, nonNilBig(amount))
	}
	return out
}

// SubtractAmount removes amount from the stake, subtracting first from
// BuildAndEarn and any remainder from Voting. It saturates at zero in each
// bucket and returns the resulting amount.
func (s StakeAmount) SubtractAmount(amount *big.Int) StakeAmount {
	out := s.Clone()
	remaining := new(big.Int).Set(nonNilBig(amount))

	fromBuildAndEarn := new(big.Int).Set(out.BuildAndEarn)
	if fromBuildAndEarn.Cmp(remaining) > 0 {
		fromBuildAndEarn.Set(remaining)
	}
	out.BuildAndEarn.Sub(out.BuildAndEarn, fromBuildAndEarn)
	remaining.Sub(remaining, fromBuildAndEarn)

	if remaining.Sign() > 0 {
		fromVoting := new(big.Int).Set(out.Voting)
		if fromVoting.Cmp(remaining) > 0 {
			fromVoting.Set(remaining)
		}
		out.Voting.Sub(out.Voting, fromVoting)
	}
	if out.BuildAndEarn.Sign() == 0 {
		out.BuildAndEarn = big.NewInt(0)
	}
	if out.Voting.Sign() == 0 {
		out.Voting = big.NewInt(0)
	}
	return out
}

// UnlockingChunk is a pending withdrawal awaiting a block number before it
// becomes claimable.
type UnlockingChunk struct {
	Amount      *big.Int
	UnlockBlock uint64
}

// Clone returns a deep copy of the chunk.
func (c UnlockingChunk) Clone() UnlockingChunk {
	return UnlockingChunk{Amount: new(big.Int).Set(nonNilBig(c.Amount)), UnlockBlock: c.UnlockBlock}
}
