package dappstaking

import "math/big"

// EraInfo is the process-wide per-era aggregate of locked/staked totals,
// holding the current era's effective stake and the staged value for the
// next era.
type EraInfo struct {
	TotalLocked        *big.Int
	Unlocking          *big.Int
	CurrentStakeAmount StakeAmount
	NextStakeAmount    StakeAmount
}

// NewEraInfo returns an empty aggregate scoped to era/period.
func NewEraInfo(era, period uint64) EraInfo {
	return EraInfo{
		TotalLocked:        big.NewInt(0),
		Unlocking:          big.NewInt(0),
		CurrentStakeAmount: ZeroStakeAmount(era, period),
		NextStakeAmount:    ZeroStakeAmount(era+1, period),
	}
}

// AddLocked increases the aggregate locked total.
func (e *EraInfo) AddLocked(amount *big.Int) {
	e.TotalLocked = new(big.Int).Add(nonNilBig(e.TotalLocked), nonNilBig(amount))
}

// SubtractLocked decreases the aggregate locked total, saturating at zero.
func (e *EraInfo) SubtractLocked(amount *big.Int) {
	out := new(big.Int).Sub(nonNilBig(e.TotalLocked), nonNilBig(amount))
	if out.Sign() < 0 {
		out = big.NewInt(0)
	}
	e.TotalLocked = out
}

// AddUnlocking increases the aggregate amount pending unlock.
func (e *EraInfo) AddUnlocking(amount *big.Int) {
	e.Unlocking = new(big.Int).Add(nonNilBig(e.Unlocking), nonNilBig(amount))
}

// SubtractUnlocking decreases the aggregate amount pending unlock, saturating
// at zero.
func (e *EraInfo) SubtractUnlocking(amount *big.Int) {
	out := new(big.Int).Sub(nonNilBig(e.Unlocking), nonNilBig(amount))
	if out.Sign() < 0 {
		out = big.NewInt(0)
	}
	e.Unlocking = out
}

// AddStakeAmount records amount staked into the appropriate subperiod
// bucket of NextStakeAmount.
func (e *EraInfo) AddStakeAmount(amount *big.Int, subperiod Subperiod) {
	e.NextStakeAmount = e.NextStakeAmount.AddAmount(amount, subperiod)
}

// UnstakeAmount removes amount from both CurrentStakeAmount and
// NextStakeAmount (tolerating either already being smaller than amount,
// since per-bucket saturation matches the per-contract series behavior).
func (e *EraInfo) UnstakeAmount(amount *big.Int) {
	e.CurrentStakeAmount = e.CurrentStakeAmount.SubtractAmount(amount)
	e.NextStakeAmount = e.NextStakeAmount.SubtractAmount(amount)
}

// MigrateToNextEra advances the era aggregate by one era at a driver
// transition. On entry into a new Voting subperiod (newPeriod
// true) both buckets reset to zero for the fresh period; otherwise
// CurrentStakeAmount becomes the prior NextStakeAmount (carry-forward) and
// NextStakeAmount advances by one era with unchanged totals.
func (e *EraInfo) MigrateToNextEra(nextEra, period uint64, newPeriod bool) {
	if newPeriod {
		e.CurrentStakeAmount = ZeroStakeAmount(nextEra, period)
		e.NextStakeAmount = ZeroStakeAmount(nextEra+1, period)
		return
	}
	carried := e.NextStakeAmount.Clone()
	carried.Era = nextEra
	carried.Period = period
	e.CurrentStakeAmount = carried

	next := e.NextStakeAmount.Clone()
	next.Era = nextEra + 1
	next.Period = period
	e.NextStakeAmount = next
}

// EraReward is the settled reward pools and total stake snapshotted for one
// era.
type EraReward struct {
	StakerRewardPool *big.Int
	Staked           *big.Int
	DAppRewardPool   *big.Int
}

// PeriodEndInfo is recorded at the Build&Earn -> Voting transition.
type PeriodEndInfo struct {
	BonusRewardPool *big.Int
	TotalVPStake    *big.Int
	FinalEra        uint64
}

// CleanupMarker tracks the oldest retained indices into the bounded
// history.
type CleanupMarker struct {
	EraRewardIndex uint64
	DAppTiersIndex uint64
	OldestValidEra uint64
}
