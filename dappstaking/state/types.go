package state

import "math/big"

func nonNilBig(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return v
}

// StoredStakeAmount is the rlp-encodable shape of a StakeAmount.
type StoredStakeAmount struct {
	Voting       *big.Int
	BuildAndEarn *big.Int
	Era          uint64
	Period       uint64
}

// Normalize returns a copy with non-nil big.Int fields, since rlp cannot
// encode a nil *big.Int.
func (s StoredStakeAmount) Normalize() StoredStakeAmount {
	return StoredStakeAmount{
		Voting:       nonNilBig(s.Voting),
		BuildAndEarn: nonNilBig(s.BuildAndEarn),
		Era:          s.Era,
		Period:       s.Period,
	}
}

// StoredUnlockingChunk is the rlp-encodable shape of an UnlockingChunk.
type StoredUnlockingChunk struct {
	Amount      *big.Int
	UnlockBlock uint64
}

// StoredProtocolState is the rlp-encodable shape of ProtocolState +
// PeriodInfo flattened into one record.
type StoredProtocolState struct {
	Era                   uint64
	NextEraStartBlock     uint64
	Period                uint64
	Subperiod             uint8
	NextSubperiodStartEra uint64
	Maintenance           bool
}

// StoredAccountLedger is the rlp-encodable shape of AccountLedger.
type StoredAccountLedger struct {
	Locked             *big.Int
	Unlocking          []StoredUnlockingChunk
	Staked             StoredStakeAmount
	HasStakedFuture    bool
	StakedFuture       StoredStakeAmount
	ContractStakeCount uint32
}

// StoredSingularStakingInfo is the rlp-encodable shape of SingularStakingInfo.
type StoredSingularStakingInfo struct {
	PreviousStaked StoredStakeAmount
	Staked         StoredStakeAmount
	BonusStatus    uint8
}

// StoredContractStakeAmount is the rlp-encodable shape of ContractStakeAmount.
type StoredContractStakeAmount struct {
	Staked          StoredStakeAmount
	HasStakedFuture bool
	StakedFuture    StoredStakeAmount
}

// StoredEraInfo is the rlp-encodable shape of EraInfo.
type StoredEraInfo struct {
	TotalLocked        *big.Int
	Unlocking          *big.Int
	CurrentStakeAmount StoredStakeAmount
	NextStakeAmount    StoredStakeAmount
}

// StoredEraReward is the rlp-encodable shape of EraReward.
type StoredEraReward struct {
	StakerRewardPool *big.Int
	Staked           *big.Int
	DAppRewardPool   *big.Int
}

// StoredPeriodEndInfo is the rlp-encodable shape of PeriodEndInfo.
type StoredPeriodEndInfo struct {
	BonusRewardPool *big.Int
	TotalVPStake    *big.Int
	FinalEra        uint64
}

// StoredDAppInfo is the rlp-encodable shape of dapps.Info.
type StoredDAppInfo struct {
	Owner           []byte
	ID              uint16
	HasBeneficiary  bool
	Beneficiary     []byte
	State           uint8
	UnregisteredEra uint64
}

// StoredRankedTier is the rlp-encodable shape of tiers.RankedTier keyed by
// dApp id.
type StoredRankedTier struct {
	DAppID uint16
	TierID uint8
	Rank   uint8
}

// StoredDAppTierRewards is the rlp-encodable shape of tiers.DAppTierRewards.
type StoredDAppTierRewards struct {
	Assignments []StoredRankedTier
	Rewards     []*big.Int
	RankRewards []*big.Int
	Period      uint64
}

// StoredTierConfiguration is the rlp-encodable shape of tiers.Configuration.
type StoredTierConfiguration struct {
	SlotsPerTier  []uint32
	RewardPortion []*big.Int // permill numerators over config.PermillDenominator
	Thresholds    []*big.Int
}

// StoredCleanupMarker is the rlp-encodable shape of CleanupMarker.
type StoredCleanupMarker struct {
	EraRewardIndex uint64
	DAppTiersIndex uint64
	OldestValidEra uint64
}
