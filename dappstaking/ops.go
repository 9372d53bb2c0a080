package dappstaking

import (
	"math/big"

	"github.com/astar-network/dapp-staking-v3/crypto"
	"github.com/astar-network/dapp-staking-v3/dapps"
	errs "github.com/astar-network/dapp-staking-v3/dappstaking/errors"
	"github.com/astar-network/dapp-staking-v3/dappstaking/events"
	"github.com/astar-network/dapp-staking-v3/dappstaking/rewards"
	"github.com/astar-network/dapp-staking-v3/host"
)

// This file is the operations surface: one exported method per externally
// triggered action, each acquiring Engine's lock, validating preconditions,
// mutating state, and emitting events.

func toHostAccount(a crypto.Address) [20]byte {
	var out [20]byte
	copy(out[:], a.Bytes())
	return out
}

func (e *Engine) requireNotMaintenance() error {
	if e.driver.State().Maintenance {
		return errs.ErrDisabled
	}
	return nil
}

func (e *Engine) requireRoot(caller [20]byte) error {
	if e.root == nil || !e.root.IsRoot(caller) {
		return errs.ErrForcingDisabled
	}
	return nil
}

func (e *Engine) lookupDApp(contract dapps.Contract) (dapps.Info, bool) {
	info, ok := e.dapps[contract.Key()]
	return info, ok
}

// Register enrolls contract under owner, assigning it the next sequential
// dApp id. Root-only.
func (e *Engine) Register(caller [20]byte, owner crypto.Address, contract dapps.Contract) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	if err := e.requireRoot(caller); err != nil {
		return err
	}
	if _, ok := e.lookupDApp(contract); ok {
		return errs.ErrAlreadyRegistered
	}
	if uint32(len(e.dapps)) >= e.cfg.MaxNumberOfContracts {
		return errs.ErrTooManyContracts
	}

	id := e.nextDAppID
	e.nextDAppID++
	info := dapps.Info{Owner: owner, ID: id, State: dapps.StateRegistered}
	e.dapps[contract.Key()] = info
	e.contracts[contract.Key()] = contract
	e.byDAppID[id] = contract
	e.contractStakes[id] = NewContractStakeAmount()

	e.emit(events.DAppRegistered{Owner: owner, Contract: contract, DAppID: id})
	return nil
}

// Unregister withdraws contract from the protocol as of the current era.
// Root-only; existing stakers retain the ability to unstake and claim.
func (e *Engine) Unregister(caller [20]byte, contract dapps.Contract) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	if err := e.requireRoot(caller); err != nil {
		return err
	}
	info, ok := e.lookupDApp(contract)
	if !ok {
		return errs.ErrContractNotFound
	}
	if !info.IsRegistered() {
		return errs.ErrNotRegisteredContract
	}
	era := e.driver.State().Era
	info.State = dapps.StateUnregistered
	info.UnregisteredEra = era
	e.dapps[contract.Key()] = info
	delete(e.contractStakes, info.ID)

	e.emit(events.DAppUnregistered{Contract: contract, Era: era})
	return nil
}

// SetDAppOwner transfers ownership of contract to newOwner. Callable by the
// current owner or root.
func (e *Engine) SetDAppOwner(caller [20]byte, contract dapps.Contract, newOwner crypto.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	info, ok := e.lookupDApp(contract)
	if !ok {
		return errs.ErrContractNotFound
	}
	if !(e.root != nil && e.root.IsRoot(caller)) && toHostAccount(info.Owner) != caller {
		return errs.ErrNotOwnedContract
	}
	info.Owner = newOwner
	e.dapps[contract.Key()] = info

	e.emit(events.DAppOwnerChanged{Contract: contract, NewOwner: newOwner})
	return nil
}

// SetDAppRewardBeneficiary updates the account dApp rewards are paid to.
// Callable by the current owner. A nil beneficiary reverts to paying the
// owner.
func (e *Engine) SetDAppRewardBeneficiary(caller [20]byte, contract dapps.Contract, beneficiary *crypto.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	info, ok := e.lookupDApp(contract)
	if !ok {
		return errs.ErrContractNotFound
	}
	if toHostAccount(info.Owner) != caller {
		return errs.ErrNotOwnedContract
	}
	info.RewardBeneficiary = beneficiary
	e.dapps[contract.Key()] = info

	e.emit(events.DAppRewardDestinationUpdated{Contract: contract, Beneficiary: beneficiary})
	return nil
}

// Lock freezes amount of account's free balance as locked stake capital.
func (e *Engine) Lock(account crypto.Address, amount *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return errs.ErrZeroAmount
	}
	acct := toHostAccount(account)
	effective := new(big.Int).Set(amount)
	if e.currency != nil {
		free, err := e.currency.FreeBalance(acct)
		if err != nil {
			return err
		}
		if free.Cmp(effective) < 0 {
			effective = new(big.Int).Set(free)
		}
		if effective.Sign() <= 0 {
			return errs.ErrUnavailableStakeFunds
		}
	}

	ledger := e.ledgerFor(account)
	prospective := new(big.Int).Add(nonNilBig(ledger.Locked), effective)
	if prospective.Cmp(minAmount(e.cfg.MinimumLockedAmount)) < 0 {
		return errs.ErrLockedAmountBelowThreshold
	}
	ledger.AddLock(effective)

	if e.currency != nil {
		frozen, err := e.currency.BalanceFrozen(acct, lockFreezeID)
		if err != nil {
			return err
		}
		if err := e.currency.SetFreeze(acct, lockFreezeID, new(big.Int).Add(frozen, effective)); err != nil {
			return err
		}
	}
	e.eraInfo.AddLocked(effective)

	e.emit(events.Locked{Account: account, Amount: effective})
	return nil
}

// lockFreezeID identifies the freeze this engine places on locked stake
// capital, distinguishing it from any other subsystem's freeze on the same
// account.
const lockFreezeID = host.FreezeID("dappstaking.locked")

// Unlock schedules amount of an account's unbonded locked funds for
// withdrawal after the configured unlocking period.
func (e *Engine) Unlock(account crypto.Address, amount *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return errs.ErrZeroAmount
	}
	ledger := e.ledgerFor(account)
	state := e.driver.State()
	unlockable := ledger.Unlockable(state.Period)
	requested := new(big.Int).Set(amount)
	if unlockable.Cmp(requested) < 0 {
		requested = new(big.Int).Set(unlockable)
	}
	if requested.Sign() <= 0 {
		return errs.ErrUnavailableStakeFunds
	}
	remainder := new(big.Int).Sub(nonNilBig(ledger.Locked), requested)
	if remainder.Sign() > 0 && remainder.Cmp(minAmount(e.cfg.MinimumLockedAmount)) < 0 {
		requested = new(big.Int).Set(unlockable)
	}

	unlockBlock := e.currentBlock() + uint64(e.cfg.UnlockingPeriod)
	if err := ledger.AddUnlockingChunk(requested, unlockBlock, e.cfg.MaxUnlockingChunks); err != nil {
		if err == errs.ErrNoCapacity {
			return errs.ErrTooManyUnlockingChunks
		}
		return err
	}
	ledger.SubtractLock(requested)
	e.eraInfo.AddUnlocking(requested)
	e.eraInfo.SubtractLocked(requested)

	e.emit(events.Unlocking{Account: account, Amount: requested})
	return nil
}

func (e *Engine) currentBlock() uint64 {
	if e.blocks != nil {
		return e.blocks.CurrentBlock()
	}
	return e.driver.State().NextEraStartBlock
}

// ClaimUnlocked releases every matured unlocking chunk for account, crediting
// the freed capital back to free balance.
func (e *Engine) ClaimUnlocked(account crypto.Address) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return nil, err
	}
	ledger := e.ledgerFor(account)
	amount := ledger.ClaimUnlocked(e.currentBlock())
	if amount.Sign() == 0 {
		return nil, errs.ErrNothingToClaim
	}
	e.eraInfo.SubtractUnlocking(amount)

	acct := toHostAccount(account)
	if e.currency != nil {
		frozen, err := e.currency.BalanceFrozen(acct, lockFreezeID)
		if err != nil {
			return nil, err
		}
		released := new(big.Int).Sub(frozen, amount)
		if released.Sign() < 0 {
			released = big.NewInt(0)
		}
		if err := e.currency.SetFreeze(acct, lockFreezeID, released); err != nil {
			return nil, err
		}
	}

	if ledger.IsEmpty() {
		delete(e.ledgers, accountKey(account))
	}

	e.emit(events.ClaimedUnlocked{Account: account, Amount: amount})
	return amount, nil
}

// RelockUnlocking cancels every pending unlocking chunk for account, folding
// the funds back into locked capital.
func (e *Engine) RelockUnlocking(account crypto.Address) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return nil, err
	}
	ledger := e.ledgerFor(account)
	amount := ledger.TotalUnlocking()
	if amount.Sign() == 0 {
		return nil, errs.ErrNothingToClaim
	}
	ledger.RelockUnlocking()
	e.eraInfo.SubtractUnlocking(amount)
	e.eraInfo.AddLocked(amount)

	e.emit(events.Relock{Account: account, Amount: amount})
	return amount, nil
}

func (e *Engine) stakerInfoKey(account crypto.Address, contract dapps.Contract) stakerKey {
	return stakerKey{Account: accountKey(account), Contract: contract.Key()}
}

// Stake commits amount of account's stakeable (locked but uncommitted)
// funds to contract.
func (e *Engine) Stake(account crypto.Address, contract dapps.Contract, amount *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return errs.ErrZeroAmount
	}
	info, ok := e.lookupDApp(contract)
	if !ok || !info.IsRegistered() {
		return errs.ErrNotRegisteredContract
	}

	state := e.driver.State()
	ledger := e.ledgerFor(account)

	key := e.stakerInfoKey(account, contract)
	existing, exists := e.stakerInfos[key]
	prospective := new(big.Int).Set(amount)
	if exists {
		prospective.Add(prospective, existing.Total())
	}
	if prospective.Cmp(minAmount(e.cfg.MinimumStakeAmount)) < 0 {
		return errs.ErrStakeAmountTooSmall
	}
	if !exists && ledger.ContractStakeCount+1 > e.cfg.MaxNumberOfStakedContracts {
		return errs.ErrTooManyStakedContracts
	}

	if err := ledger.AddStake(amount, state.Era, state.Period); err != nil {
		return err
	}

	staker := existing
	if !exists {
		initialBonus := uint8(0)
		if state.Period.Subperiod == Voting {
			initialBonus = e.cfg.MaxBonusSafeMovesPerPeriod + 1
		}
		staker = NewSingularStakingInfo(state.Period.Period, initialBonus)
		ledger.ContractStakeCount++
	}
	incomingBonus := uint8(0)
	if state.Period.Subperiod == Voting {
		incomingBonus = e.cfg.MaxBonusSafeMovesPerPeriod + 1
	}
	staker.Stake(amount, state.Era, state.Period, incomingBonus)
	e.stakerInfos[key] = staker

	cs := e.contractStakes[info.ID]
	cs.Stake(amount, state.Era, state.Period)
	e.contractStakes[info.ID] = cs

	e.eraInfo.AddStakeAmount(amount, state.Period.Subperiod)

	e.emit(events.Stake{Account: account, Contract: contract, Amount: amount})
	return nil
}

// Unstake withdraws amount of account's stake from contract.
func (e *Engine) Unstake(account crypto.Address, contract dapps.Contract, amount *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return errs.ErrZeroAmount
	}
	info, ok := e.lookupDApp(contract)
	if !ok {
		return errs.ErrContractNotFound
	}
	if !info.IsRegistered() {
		return errs.ErrNotRegisteredContract
	}

	state := e.driver.State()
	key := e.stakerInfoKey(account, contract)
	staker, exists := e.stakerInfos[key]
	if !exists {
		return errs.ErrNothingToClaim
	}
	if staker.Total().Cmp(amount) < 0 {
		return errs.ErrUnstakeAmountLargerThanStake
	}
	remainder := new(big.Int).Sub(staker.Total(), amount)
	if remainder.Sign() > 0 && remainder.Cmp(minAmount(e.cfg.MinimumStakeAmount)) < 0 {
		amount = staker.Total()
	}

	ledger := e.ledgerFor(account)
	if err := ledger.Unstake(amount, state.Era, state.Period); err != nil {
		return err
	}

	deltas := staker.Unstake(amount, state.Era, state.Period.Subperiod)
	e.stakerInfos[key] = staker
	if staker.Staked.IsEmpty() && staker.PreviousStaked.IsEmpty() {
		delete(e.stakerInfos, key)
		if ledger.ContractStakeCount > 0 {
			ledger.ContractStakeCount--
		}
	}

	cs := e.contractStakes[info.ID]
	for _, delta := range deltas {
		cs.ApplyDelta(delta, state.Period)
	}
	e.contractStakes[info.ID] = cs

	e.eraInfo.UnstakeAmount(amount)

	e.emit(events.Unstake{Account: account, Contract: contract, Amount: amount})
	return nil
}

// UnstakeFromUnregistered withdraws an account's entire stake from a
// contract that has since been unregistered, bypassing the usual
// minimum-stake and era/period validation (the contract no longer accrues
// rewards, so there is nothing left to protect).
func (e *Engine) UnstakeFromUnregistered(account crypto.Address, contract dapps.Contract) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return err
	}
	info, ok := e.lookupDApp(contract)
	if !ok || info.IsRegistered() {
		return errs.ErrNotUnregisteredContract
	}
	key := e.stakerInfoKey(account, contract)
	staker, exists := e.stakerInfos[key]
	if !exists {
		return errs.ErrNothingToClaim
	}
	amount := staker.Total()
	if amount.Sign() == 0 {
		return errs.ErrNothingToClaim
	}
	delete(e.stakerInfos, key)

	ledger := e.ledgerFor(account)
	ledger.Staked = ledger.Staked.SubtractAmount(amount)
	if ledger.Staked.IsEmpty() {
		ledger.Staked = StakeAmount{Voting: big.NewInt(0), BuildAndEarn: big.NewInt(0)}
	}
	if ledger.StakedFuture != nil {
		updated := ledger.StakedFuture.SubtractAmount(amount)
		if updated.IsEmpty() {
			ledger.StakedFuture = nil
		} else {
			ledger.StakedFuture = &updated
		}
	}
	if ledger.ContractStakeCount > 0 {
		ledger.ContractStakeCount--
	}

	e.eraInfo.UnstakeAmount(amount)

	e.emit(events.UnstakeFromUnregistered{Account: account, Contract: contract, Amount: amount})
	return nil
}

// ClaimStakerRewards settles every unclaimed era of staker reward for
// account, up through the newest era the bounded reward history still
// retains. When the staked period has already ended, the claim is capped at
// that period's final era and the ledger's stake entries are cleared once
// settled.
func (e *Engine) ClaimStakerRewards(account crypto.Address) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return nil, err
	}
	ledger := e.ledgerFor(account)
	lastEra := e.rewardSpan.LastEra()
	if lastEra == 0 {
		return nil, errs.ErrNothingToClaim
	}

	stakedPeriod := ledger.Staked.Period
	if stakedPeriod == 0 && ledger.StakedFuture != nil {
		stakedPeriod = ledger.StakedFuture.Period
	}
	var periodEndEra *uint64
	if stakedPeriod != 0 && stakedPeriod < e.driver.State().Period.Period {
		ended, ok := e.periodEnds[stakedPeriod]
		if !ok {
			return nil, errs.ErrInvalidPeriod
		}
		periodEndEra = &ended.FinalEra
		if ended.FinalEra < lastEra {
			lastEra = ended.FinalEra
		}
	}

	stakes, err := ledger.ClaimUpToEra(lastEra, periodEndEra)
	if err != nil {
		return nil, err
	}
	e.consumeWeight(uint64(len(stakes)))

	claims := make([]rewards.EraClaim, len(stakes))
	for i, s := range stakes {
		claims[i] = rewards.EraClaim{Era: s.Era, Amount: s.Amount}
	}
	total := rewards.ClaimStakerRewards(claims, func(era uint64) (rewards.EraTotals, bool) {
		reward, ok := e.rewardSpan.Get(era)
		if !ok {
			return rewards.EraTotals{}, false
		}
		return rewards.EraTotals{StakerRewardPool: reward.StakerRewardPool, TotalStaked: reward.Staked}, true
	})
	if total.Sign() == 0 {
		return nil, errs.ErrNothingToClaim
	}

	if e.currency != nil {
		if err := e.currency.MintInto(toHostAccount(account), total); err != nil {
			return nil, err
		}
	}

	e.emit(events.Reward{Account: account, Era: lastEra, Amount: total})
	e.log("staker reward claimed", "account", account.String(), "era", lastEra, "amount", total.String())
	if e.metrics != nil {
		e.metrics.ObserveClaim("staker", floatOf(total))
	}
	return total, nil
}

// ClaimBonusReward pays account's loyalty bonus for contract once period has
// ended, provided the staker remained bonus-eligible throughout.
func (e *Engine) ClaimBonusReward(account crypto.Address, contract dapps.Contract, period uint64) (*big.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return nil, err
	}
	key := e.stakerInfoKey(account, contract)
	if e.bonusClaimed[key] {
		return nil, errs.ErrBonusAlreadyClaimed
	}
	staker, ok := e.stakerInfos[key]
	if !ok || !staker.IsBonusEligible() {
		return nil, errs.ErrNothingToClaim
	}
	if staker.Staked.Period != period {
		return nil, errs.ErrInvalidPeriod
	}
	ended, ok := e.periodEnds[period]
	if !ok {
		return nil, errs.ErrNothingToClaim
	}

	amount := rewards.BonusReward(ended.BonusRewardPool, staker.Staked.Voting, ended.TotalVPStake)
	if amount.Sign() == 0 {
		return nil, errs.ErrNothingToClaim
	}
	if e.currency != nil {
		if err := e.currency.MintInto(toHostAccount(account), amount); err != nil {
			return nil, err
		}
	}
	e.bonusClaimed[key] = true
	delete(e.stakerInfos, key)
	if ledger, ok := e.ledgers[accountKey(account)]; ok && ledger.ContractStakeCount > 0 {
		ledger.ContractStakeCount--
	}

	e.emit(events.BonusReward{Account: account, Contract: contract, Period: period, Amount: amount})
	e.log("bonus reward claimed", "account", account.String(), "contract", contract.String(), "period", period, "amount", amount.String())
	if e.metrics != nil {
		e.metrics.ObserveClaim("bonus", floatOf(amount))
	}
	return amount, nil
}

// ClaimDAppReward pays contract's tier reward for era to its reward
// beneficiary, returning the amount and the tier the contract occupied.
func (e *Engine) ClaimDAppReward(contract dapps.Contract, era uint64) (*big.Int, uint8, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return nil, 0, err
	}
	info, ok := e.lookupDApp(contract)
	if !ok {
		return nil, 0, errs.ErrContractNotFound
	}
	if !info.IsRegistered() && era >= info.UnregisteredEra {
		return nil, 0, errs.ErrNotRegisteredContract
	}
	key := dappEraKey{DAppID: info.ID, Era: era}
	if e.dappRewardClaimed[key] {
		return nil, 0, errs.ErrDAppRewardAlreadyClaimed
	}
	assignment, ok := e.tierHistory[era]
	if !ok {
		return nil, 0, errs.ErrNothingToClaim
	}
	amount, tierID, err := rewards.DAppReward(assignment, info.ID)
	if err != nil {
		return nil, 0, err
	}
	beneficiary := info.Beneficiary()
	if e.currency != nil {
		if err := e.currency.MintInto(toHostAccount(beneficiary), amount); err != nil {
			return nil, 0, err
		}
	}
	e.dappRewardClaimed[key] = true
	delete(assignment.DApps, info.ID)

	e.emit(events.DAppReward{Beneficiary: beneficiary, Contract: contract, TierID: tierID, Era: era, Amount: amount})
	e.log("dapp reward claimed", "contract", contract.String(), "era", era, "tier", tierID, "amount", amount.String())
	if e.metrics != nil {
		e.metrics.ObserveClaim("dapp", floatOf(amount))
	}
	return amount, tierID, nil
}

// CleanupExpiredEntries removes account's StakerInfo entries whose period
// has fallen outside the retained reward/tier history, or that belong to a
// past period with no remaining bonus claim, freeing bounded storage the
// account no longer needs. Returns the number of entries removed.
func (e *Engine) CleanupExpiredEntries(account crypto.Address) (uint32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireNotMaintenance(); err != nil {
		return 0, err
	}

	currentPeriod := e.driver.State().Period.Period
	oldestValidPeriod := e.oldestRetainedPeriod()
	accountK := accountKey(account)
	var removed uint32
	for key, staker := range e.stakerInfos {
		if key.Account != accountK {
			continue
		}
		period := staker.Staked.Period
		expired := period < oldestValidPeriod ||
			(period < currentPeriod && !staker.IsBonusEligible())
		if !expired {
			continue
		}
		delete(e.stakerInfos, key)
		removed++
	}
	if removed == 0 {
		return 0, errs.ErrNoExpiredEntries
	}
	if ledger, ok := e.ledgers[accountK]; ok {
		if ledger.ContractStakeCount >= removed {
			ledger.ContractStakeCount -= removed
		} else {
			ledger.ContractStakeCount = 0
		}
	}
	e.consumeWeight(uint64(removed))

	e.emit(events.ExpiredEntriesRemoved{Account: account, Count: removed})
	e.log("expired entries removed", "account", account.String(), "count", removed)
	if e.metrics != nil {
		e.metrics.ObserveCleanup(int(removed))
	}
	return removed, nil
}

func (e *Engine) oldestRetainedPeriod() uint64 {
	currentPeriod := e.driver.State().Period.Period
	retention := uint64(e.cfg.RewardRetentionInPeriods)
	if retention == 0 || currentPeriod <= retention {
		return 0
	}
	return currentPeriod - retention
}

// SetMaintenanceMode toggles the protocol-wide maintenance flag. Root-only,
// and uniquely exempt from the maintenance gate itself.
func (e *Engine) SetMaintenanceMode(caller [20]byte, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireRoot(caller); err != nil {
		return err
	}
	state := e.driver.State()
	state.Maintenance = enabled
	e.driver.state = state

	e.emit(events.MaintenanceMode{Enabled: enabled})
	e.log("maintenance mode toggled", "enabled", enabled)
	return nil
}

// Force submits a root forcing request, applied on the next OnBlock call.
func (e *Engine) Force(caller [20]byte, forcing ForcingType) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireRoot(caller); err != nil {
		return err
	}
	e.driver.SetForcing(forcing)
	return nil
}

func minAmount(decimal string) *big.Int {
	v, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return big.NewInt(0)
	}
	return v
}
