package dappstaking

import (
	"github.com/astar-network/dapp-staking-v3/dapps"
	"github.com/astar-network/dapp-staking-v3/dappstaking/state"
)

// LoadFrom rehydrates an Engine's live state from a persisted Store,
// covering every persisted collection: the protocol-state singletons, the
// dApp registry, account ledgers, singular staking entries, per-contract
// stake series, the era reward span, period-end records, per-era tier
// assignments, the derived tier configuration, and the cleanup marker. Any
// value the store has no record of stays at its constructed default.
func (e *Engine) LoadFrom(store *state.Store) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if stored, ok, err := store.GetProtocolState(); err != nil {
		return err
	} else if ok {
		e.driver.state = protocolStateFromStored(stored)
	}
	if id, ok, err := store.GetNextDAppID(); err != nil {
		return err
	} else if ok {
		e.nextDAppID = id
	}
	if stored, ok, err := store.GetEraInfo(); err != nil {
		return err
	} else if ok {
		e.eraInfo = eraInfoFromStored(stored)
	}
	if stored, ok, err := store.GetCleanupMarker(); err != nil {
		return err
	} else if ok {
		e.cleanup = cleanupMarkerFromStored(stored)
	}
	if stored, ok, err := store.GetTierConfig(); err != nil {
		return err
	} else if ok {
		e.tierConfig = tierConfigFromStored(stored)
	}

	if err := store.IterateDApps(func(contractBytes []byte, v state.StoredDAppInfo) error {
		contract, err := dapps.ContractFromBytes(contractBytes)
		if err != nil {
			return err
		}
		info := dappInfoFromStored(v)
		e.dapps[contract.Key()] = info
		e.contracts[contract.Key()] = contract
		e.byDAppID[info.ID] = contract
		return nil
	}); err != nil {
		return err
	}

	if err := store.IterateLedgers(func(accountBytes []byte, v state.StoredAccountLedger) error {
		e.ledgers[string(accountBytes)] = ledgerFromStored(v)
		return nil
	}); err != nil {
		return err
	}

	if err := store.IterateStakerInfo(func(accountBytes, contractBytes []byte, v state.StoredSingularStakingInfo) error {
		key := stakerKey{Account: string(accountBytes), Contract: string(contractBytes)}
		e.stakerInfos[key] = stakerInfoFromStored(v)
		return nil
	}); err != nil {
		return err
	}

	if err := store.IterateContractStakes(func(dappID uint16, v state.StoredContractStakeAmount) error {
		e.contractStakes[dappID] = contractStakeFromStored(v)
		return nil
	}); err != nil {
		return err
	}

	// Era rewards iterate in ascending era order; a gap means the window
	// was pruned mid-span, so the span restarts at the newer segment.
	if err := store.IterateEraRewards(func(era uint64, v state.StoredEraReward) error {
		if err := e.rewardSpan.Push(era, eraRewardFromStored(v)); err != nil {
			e.rewardSpan = NewEraRewardSpan(e.cfg.EraRewardSpanLength)
			return e.rewardSpan.Push(era, eraRewardFromStored(v))
		}
		return nil
	}); err != nil {
		return err
	}

	if err := store.IteratePeriodEnds(func(period uint64, v state.StoredPeriodEndInfo) error {
		e.periodEnds[period] = periodEndFromStored(v)
		return nil
	}); err != nil {
		return err
	}

	return store.IterateDAppTiers(func(era uint64, v state.StoredDAppTierRewards) error {
		e.tierHistory[era] = dappTiersFromStored(v)
		return nil
	})
}

// Snapshot persists the Engine's entire live state into store. Keyed
// records that no longer exist in memory (pruned history, drained ledgers,
// consumed staking entries, unregistered contract stakes) are deleted, so
// repeated snapshots converge to exactly the live state.
func (e *Engine) Snapshot(store *state.Store) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := store.PutProtocolState(protocolStateToStored(e.driver.state)); err != nil {
		return err
	}
	if err := store.PutNextDAppID(e.nextDAppID); err != nil {
		return err
	}
	if err := store.PutEraInfo(eraInfoToStored(e.eraInfo)); err != nil {
		return err
	}
	if err := store.PutCleanupMarker(cleanupMarkerToStored(e.cleanup)); err != nil {
		return err
	}
	if err := store.PutTierConfig(tierConfigToStored(e.tierConfig)); err != nil {
		return err
	}

	if err := store.IterateDApps(func(contractBytes []byte, _ state.StoredDAppInfo) error {
		if _, ok := e.dapps[string(contractBytes)]; !ok {
			return store.DeleteDApp(contractBytes)
		}
		return nil
	}); err != nil {
		return err
	}
	for key, info := range e.dapps {
		if err := store.PutDApp([]byte(key), dappInfoToStored(info)); err != nil {
			return err
		}
	}

	if err := store.IterateLedgers(func(accountBytes []byte, _ state.StoredAccountLedger) error {
		if _, ok := e.ledgers[string(accountBytes)]; !ok {
			return store.DeleteLedger(accountBytes)
		}
		return nil
	}); err != nil {
		return err
	}
	for key, ledger := range e.ledgers {
		if err := store.PutLedger([]byte(key), ledgerToStored(ledger)); err != nil {
			return err
		}
	}

	if err := store.IterateStakerInfo(func(accountBytes, contractBytes []byte, _ state.StoredSingularStakingInfo) error {
		key := stakerKey{Account: string(accountBytes), Contract: string(contractBytes)}
		if _, ok := e.stakerInfos[key]; !ok {
			return store.DeleteStakerInfo(accountBytes, contractBytes)
		}
		return nil
	}); err != nil {
		return err
	}
	for key, info := range e.stakerInfos {
		if err := store.PutStakerInfo([]byte(key.Account), []byte(key.Contract), stakerInfoToStored(info)); err != nil {
			return err
		}
	}

	if err := store.IterateContractStakes(func(dappID uint16, _ state.StoredContractStakeAmount) error {
		if _, ok := e.contractStakes[dappID]; !ok {
			return store.DeleteContractStake(dappID)
		}
		return nil
	}); err != nil {
		return err
	}
	for id, cs := range e.contractStakes {
		if err := store.PutContractStake(id, contractStakeToStored(cs)); err != nil {
			return err
		}
	}

	if err := store.IterateEraRewards(func(era uint64, _ state.StoredEraReward) error {
		if _, ok := e.rewardSpan.Get(era); !ok {
			return store.DeleteEraReward(era)
		}
		return nil
	}); err != nil {
		return err
	}
	if e.rewardSpan.Len() > 0 {
		for era := e.rewardSpan.FirstEra(); era <= e.rewardSpan.LastEra(); era++ {
			reward, ok := e.rewardSpan.Get(era)
			if !ok {
				continue
			}
			if err := store.PutEraReward(era, eraRewardToStored(reward)); err != nil {
				return err
			}
		}
	}

	if err := store.IteratePeriodEnds(func(period uint64, _ state.StoredPeriodEndInfo) error {
		if _, ok := e.periodEnds[period]; !ok {
			return store.DeletePeriodEnd(period)
		}
		return nil
	}); err != nil {
		return err
	}
	for period, ended := range e.periodEnds {
		if err := store.PutPeriodEnd(period, periodEndToStored(ended)); err != nil {
			return err
		}
	}

	if err := store.IterateDAppTiers(func(era uint64, _ state.StoredDAppTierRewards) error {
		if _, ok := e.tierHistory[era]; !ok {
			return store.DeleteDAppTiers(era)
		}
		return nil
	}); err != nil {
		return err
	}
	for era, assignment := range e.tierHistory {
		if err := store.PutDAppTiers(era, dappTiersToStored(assignment)); err != nil {
			return err
		}
	}
	return nil
}
