package dappstaking

import (
	"math/big"
	"sort"

	"github.com/astar-network/dapp-staking-v3/crypto"
	"github.com/astar-network/dapp-staking-v3/dapps"
	"github.com/astar-network/dapp-staking-v3/dappstaking/config"
	"github.com/astar-network/dapp-staking-v3/dappstaking/state"
	"github.com/astar-network/dapp-staking-v3/dappstaking/tiers"
)

// This file converts between the engine's live domain types and the
// persisted state package's rlp-encodable "stored" shapes. It and
// persistence.go are the only engine files that import dappstaking/state,
// keeping the conversion one-directional: state never imports dappstaking.

func stakeAmountToStored(s StakeAmount) state.StoredStakeAmount {
	return state.StoredStakeAmount{
		Voting:       new(big.Int).Set(nonNilBig(s.Voting)),
		BuildAndEarn: new(big.Int).Set(nonNilBig(s.BuildAndEarn)),
		Era:          s.Era,
		Period:       s.Period,
	}
}

func stakeAmountFromStored(s state.StoredStakeAmount) StakeAmount {
	return StakeAmount{
		Voting:       new(big.Int).Set(nonNilBig(s.Voting)),
		BuildAndEarn: new(big.Int).Set(nonNilBig(s.BuildAndEarn)),
		Era:          s.Era,
		Period:       s.Period,
	}
}

func protocolStateToStored(p ProtocolState) state.StoredProtocolState {
	return state.StoredProtocolState{
		Era:                   p.Era,
		NextEraStartBlock:     p.NextEraStartBlock,
		Period:                p.Period.Period,
		Subperiod:             uint8(p.Period.Subperiod),
		NextSubperiodStartEra: p.Period.NextSubperiodStartEra,
		Maintenance:           p.Maintenance,
	}
}

func protocolStateFromStored(s state.StoredProtocolState) ProtocolState {
	return ProtocolState{
		Era:               s.Era,
		NextEraStartBlock: s.NextEraStartBlock,
		Period: PeriodInfo{
			Period:                s.Period,
			Subperiod:             Subperiod(s.Subperiod),
			NextSubperiodStartEra: s.NextSubperiodStartEra,
		},
		Maintenance: s.Maintenance,
	}
}

func ledgerToStored(l *AccountLedger) state.StoredAccountLedger {
	chunks := make([]state.StoredUnlockingChunk, len(l.Unlocking))
	for i, c := range l.Unlocking {
		chunks[i] = state.StoredUnlockingChunk{Amount: new(big.Int).Set(nonNilBig(c.Amount)), UnlockBlock: c.UnlockBlock}
	}
	out := state.StoredAccountLedger{
		Locked:             new(big.Int).Set(nonNilBig(l.Locked)),
		Unlocking:          chunks,
		Staked:             stakeAmountToStored(l.Staked),
		ContractStakeCount: l.ContractStakeCount,
	}
	if l.StakedFuture != nil {
		out.HasStakedFuture = true
		out.StakedFuture = stakeAmountToStored(*l.StakedFuture)
	}
	return out
}

func ledgerFromStored(s state.StoredAccountLedger) *AccountLedger {
	chunks := make([]UnlockingChunk, len(s.Unlocking))
	for i, c := range s.Unlocking {
		chunks[i] = UnlockingChunk{Amount: new(big.Int).Set(nonNilBig(c.Amount)), UnlockBlock: c.UnlockBlock}
	}
	l := &AccountLedger{
		Locked:             new(big.Int).Set(nonNilBig(s.Locked)),
		Unlocking:          chunks,
		Staked:             stakeAmountFromStored(s.Staked),
		ContractStakeCount: s.ContractStakeCount,
	}
	if s.HasStakedFuture {
		future := stakeAmountFromStored(s.StakedFuture)
		l.StakedFuture = &future
	}
	return l
}

func stakerInfoToStored(info SingularStakingInfo) state.StoredSingularStakingInfo {
	return state.StoredSingularStakingInfo{
		PreviousStaked: stakeAmountToStored(info.PreviousStaked),
		Staked:         stakeAmountToStored(info.Staked),
		BonusStatus:    info.BonusStatus,
	}
}

func stakerInfoFromStored(s state.StoredSingularStakingInfo) SingularStakingInfo {
	return SingularStakingInfo{
		PreviousStaked: stakeAmountFromStored(s.PreviousStaked),
		Staked:         stakeAmountFromStored(s.Staked),
		BonusStatus:    s.BonusStatus,
	}
}

func contractStakeToStored(cs ContractStakeAmount) state.StoredContractStakeAmount {
	out := state.StoredContractStakeAmount{Staked: stakeAmountToStored(cs.Staked)}
	if cs.StakedFuture != nil {
		out.HasStakedFuture = true
		out.StakedFuture = stakeAmountToStored(*cs.StakedFuture)
	}
	return out
}

func contractStakeFromStored(s state.StoredContractStakeAmount) ContractStakeAmount {
	cs := ContractStakeAmount{Staked: stakeAmountFromStored(s.Staked)}
	if s.HasStakedFuture {
		future := stakeAmountFromStored(s.StakedFuture)
		cs.StakedFuture = &future
	}
	return cs
}

func eraInfoToStored(e EraInfo) state.StoredEraInfo {
	return state.StoredEraInfo{
		TotalLocked:        new(big.Int).Set(nonNilBig(e.TotalLocked)),
		Unlocking:          new(big.Int).Set(nonNilBig(e.Unlocking)),
		CurrentStakeAmount: stakeAmountToStored(e.CurrentStakeAmount),
		NextStakeAmount:    stakeAmountToStored(e.NextStakeAmount),
	}
}

func eraInfoFromStored(s state.StoredEraInfo) EraInfo {
	return EraInfo{
		TotalLocked:        new(big.Int).Set(nonNilBig(s.TotalLocked)),
		Unlocking:          new(big.Int).Set(nonNilBig(s.Unlocking)),
		CurrentStakeAmount: stakeAmountFromStored(s.CurrentStakeAmount),
		NextStakeAmount:    stakeAmountFromStored(s.NextStakeAmount),
	}
}

func eraRewardToStored(r EraReward) state.StoredEraReward {
	return state.StoredEraReward{
		StakerRewardPool: new(big.Int).Set(nonNilBig(r.StakerRewardPool)),
		Staked:           new(big.Int).Set(nonNilBig(r.Staked)),
		DAppRewardPool:   new(big.Int).Set(nonNilBig(r.DAppRewardPool)),
	}
}

func eraRewardFromStored(s state.StoredEraReward) EraReward {
	return EraReward{
		StakerRewardPool: new(big.Int).Set(nonNilBig(s.StakerRewardPool)),
		Staked:           new(big.Int).Set(nonNilBig(s.Staked)),
		DAppRewardPool:   new(big.Int).Set(nonNilBig(s.DAppRewardPool)),
	}
}

func periodEndToStored(p PeriodEndInfo) state.StoredPeriodEndInfo {
	return state.StoredPeriodEndInfo{
		BonusRewardPool: new(big.Int).Set(nonNilBig(p.BonusRewardPool)),
		TotalVPStake:    new(big.Int).Set(nonNilBig(p.TotalVPStake)),
		FinalEra:        p.FinalEra,
	}
}

func periodEndFromStored(s state.StoredPeriodEndInfo) PeriodEndInfo {
	return PeriodEndInfo{
		BonusRewardPool: new(big.Int).Set(nonNilBig(s.BonusRewardPool)),
		TotalVPStake:    new(big.Int).Set(nonNilBig(s.TotalVPStake)),
		FinalEra:        s.FinalEra,
	}
}

func cleanupMarkerToStored(m CleanupMarker) state.StoredCleanupMarker {
	return state.StoredCleanupMarker{
		EraRewardIndex: m.EraRewardIndex,
		DAppTiersIndex: m.DAppTiersIndex,
		OldestValidEra: m.OldestValidEra,
	}
}

func cleanupMarkerFromStored(s state.StoredCleanupMarker) CleanupMarker {
	return CleanupMarker{
		EraRewardIndex: s.EraRewardIndex,
		DAppTiersIndex: s.DAppTiersIndex,
		OldestValidEra: s.OldestValidEra,
	}
}

func dappInfoToStored(info dapps.Info) state.StoredDAppInfo {
	stored := state.StoredDAppInfo{
		Owner:           info.Owner.Bytes(),
		ID:              info.ID,
		State:           uint8(info.State),
		UnregisteredEra: info.UnregisteredEra,
	}
	if info.RewardBeneficiary != nil {
		stored.HasBeneficiary = true
		stored.Beneficiary = info.RewardBeneficiary.Bytes()
	}
	return stored
}

func dappInfoFromStored(s state.StoredDAppInfo) dapps.Info {
	info := dapps.Info{
		Owner:           crypto.MustAddressFromBytes(s.Owner),
		ID:              s.ID,
		State:           dapps.State(s.State),
		UnregisteredEra: s.UnregisteredEra,
	}
	if s.HasBeneficiary {
		beneficiary := crypto.MustAddressFromBytes(s.Beneficiary)
		info.RewardBeneficiary = &beneficiary
	}
	return info
}

func dappTiersToStored(v tiers.DAppTierRewards) state.StoredDAppTierRewards {
	assignments := make([]state.StoredRankedTier, 0, len(v.DApps))
	for id, ranked := range v.DApps {
		assignments = append(assignments, state.StoredRankedTier{DAppID: id, TierID: ranked.TierID, Rank: ranked.Rank})
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].DAppID < assignments[j].DAppID })
	return state.StoredDAppTierRewards{
		Assignments: assignments,
		Rewards:     copyBigs(v.Rewards),
		RankRewards: copyBigs(v.RankRewards),
		Period:      v.Period,
	}
}

func dappTiersFromStored(s state.StoredDAppTierRewards) tiers.DAppTierRewards {
	out := tiers.DAppTierRewards{
		DApps:       make(map[uint16]tiers.RankedTier, len(s.Assignments)),
		Rewards:     copyBigs(s.Rewards),
		RankRewards: copyBigs(s.RankRewards),
		Period:      s.Period,
	}
	for _, a := range s.Assignments {
		out.DApps[a.DAppID] = tiers.RankedTier{TierID: a.TierID, Rank: a.Rank}
	}
	return out
}

// Reward portions persist as permill numerators so the stored shape stays a
// plain integer record.
func tierConfigToStored(v tiers.Configuration) state.StoredTierConfiguration {
	portions := make([]*big.Int, len(v.RewardPortion))
	denominator := big.NewInt(int64(config.PermillDenominator))
	for i, portion := range v.RewardPortion {
		if portion == nil {
			portions[i] = big.NewInt(0)
			continue
		}
		scaled := new(big.Int).Mul(portion.Num(), denominator)
		portions[i] = scaled.Quo(scaled, portion.Denom())
	}
	return state.StoredTierConfiguration{
		SlotsPerTier:  append([]uint32(nil), v.SlotsPerTier...),
		RewardPortion: portions,
		Thresholds:    copyBigs(v.Thresholds),
	}
}

func tierConfigFromStored(s state.StoredTierConfiguration) tiers.Configuration {
	portions := make([]*big.Rat, len(s.RewardPortion))
	for i, numerator := range s.RewardPortion {
		portions[i] = new(big.Rat).SetFrac(nonNilBig(numerator), big.NewInt(int64(config.PermillDenominator)))
	}
	return tiers.Configuration{
		SlotsPerTier:  append([]uint32(nil), s.SlotsPerTier...),
		RewardPortion: portions,
		Thresholds:    copyBigs(s.Thresholds),
	}
}

func copyBigs(in []*big.Int) []*big.Int {
	out := make([]*big.Int, len(in))
	for i, v := range in {
		out[i] = new(big.Int).Set(nonNilBig(v))
	}
	return out
}
