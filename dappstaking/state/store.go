package state

import (
	"errors"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/astar-network/dapp-staking-v3/storage"
)

// Store wraps a storage.Database with typed accessors for every persisted
// protocol state key, encoding values with go-ethereum's rlp codec.
type Store struct {
	db storage.Database
}

// NewStore wraps db.
func NewStore(db storage.Database) *Store { return &Store{db: db} }

func put(db storage.Database, key []byte, v interface{}) error {
	encoded, err := rlp.EncodeToBytes(v)
	if err != nil {
		return err
	}
	return db.Put(key, encoded)
}

func get(db storage.Database, key []byte, v interface{}) (bool, error) {
	data, err := db.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := rlp.DecodeBytes(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// ProtocolState.

func (s *Store) PutProtocolState(v StoredProtocolState) error {
	return put(s.db, protocolStateKey(), v)
}

func (s *Store) GetProtocolState() (StoredProtocolState, bool, error) {
	var v StoredProtocolState
	ok, err := get(s.db, protocolStateKey(), &v)
	return v, ok, err
}

// NextDAppId.

func (s *Store) PutNextDAppID(id uint16) error {
	return put(s.db, nextDAppIDKey(), id)
}

func (s *Store) GetNextDAppID() (uint16, bool, error) {
	var v uint16
	ok, err := get(s.db, nextDAppIDKey(), &v)
	return v, ok, err
}

// CurrentEraInfo.

func (s *Store) PutEraInfo(v StoredEraInfo) error {
	return put(s.db, currentEraInfoKey(), v)
}

func (s *Store) GetEraInfo() (StoredEraInfo, bool, error) {
	var v StoredEraInfo
	ok, err := get(s.db, currentEraInfoKey(), &v)
	return v, ok, err
}

// IntegratedDApps[contract].

func (s *Store) PutDApp(contractBytes []byte, v StoredDAppInfo) error {
	return put(s.db, dappKey(contractBytes), v)
}

func (s *Store) GetDApp(contractBytes []byte) (StoredDAppInfo, bool, error) {
	var v StoredDAppInfo
	ok, err := get(s.db, dappKey(contractBytes), &v)
	return v, ok, err
}

func (s *Store) DeleteDApp(contractBytes []byte) error {
	return s.db.Delete(dappKey(contractBytes))
}

// Ledger[account].

func (s *Store) PutLedger(accountBytes []byte, v StoredAccountLedger) error {
	return put(s.db, ledgerKey(accountBytes), v)
}

func (s *Store) GetLedger(accountBytes []byte) (StoredAccountLedger, bool, error) {
	var v StoredAccountLedger
	ok, err := get(s.db, ledgerKey(accountBytes), &v)
	return v, ok, err
}

func (s *Store) DeleteLedger(accountBytes []byte) error {
	return s.db.Delete(ledgerKey(accountBytes))
}

// StakerInfo[account, contract].

func (s *Store) PutStakerInfo(accountBytes, contractBytes []byte, v StoredSingularStakingInfo) error {
	return put(s.db, stakerInfoKey(accountBytes, contractBytes), v)
}

func (s *Store) GetStakerInfo(accountBytes, contractBytes []byte) (StoredSingularStakingInfo, bool, error) {
	var v StoredSingularStakingInfo
	ok, err := get(s.db, stakerInfoKey(accountBytes, contractBytes), &v)
	return v, ok, err
}

func (s *Store) DeleteStakerInfo(accountBytes, contractBytes []byte) error {
	return s.db.Delete(stakerInfoKey(accountBytes, contractBytes))
}

// IterateStakerInfoForAccount visits every StakerInfo entry for the given
// account by scanning that account's key prefix, so no separate index is
// needed.
func (s *Store) IterateStakerInfoForAccount(accountBytes []byte, fn func(contractBytes []byte, v StoredSingularStakingInfo) error) error {
	prefix := append([]byte(prefixStakerInfo), accountBytes...)
	return s.db.Iterate(prefix, func(key, value []byte) error {
		contractBytes := append([]byte(nil), key[len(prefix):]...)
		var v StoredSingularStakingInfo
		if err := rlp.DecodeBytes(value, &v); err != nil {
			return err
		}
		return fn(contractBytes, v)
	})
}

// IterateStakerInfo visits every StakerInfo entry across all accounts.
// Account keys are fixed 20-byte values, so the composite key splits at a
// constant offset.
func (s *Store) IterateStakerInfo(fn func(accountBytes, contractBytes []byte, v StoredSingularStakingInfo) error) error {
	prefix := []byte(prefixStakerInfo)
	return s.db.Iterate(prefix, func(key, value []byte) error {
		rest := key[len(prefix):]
		if len(rest) <= accountKeyLength {
			return nil
		}
		accountBytes := append([]byte(nil), rest[:accountKeyLength]...)
		contractBytes := append([]byte(nil), rest[accountKeyLength:]...)
		var v StoredSingularStakingInfo
		if err := rlp.DecodeBytes(value, &v); err != nil {
			return err
		}
		return fn(accountBytes, contractBytes, v)
	})
}

// IterateDApps visits every registered dApp record keyed by contract bytes.
func (s *Store) IterateDApps(fn func(contractBytes []byte, v StoredDAppInfo) error) error {
	prefix := []byte(prefixDApp)
	return s.db.Iterate(prefix, func(key, value []byte) error {
		var v StoredDAppInfo
		if err := rlp.DecodeBytes(value, &v); err != nil {
			return err
		}
		return fn(append([]byte(nil), key[len(prefix):]...), v)
	})
}

// IterateLedgers visits every account ledger keyed by account bytes.
func (s *Store) IterateLedgers(fn func(accountBytes []byte, v StoredAccountLedger) error) error {
	prefix := []byte(prefixLedger)
	return s.db.Iterate(prefix, func(key, value []byte) error {
		var v StoredAccountLedger
		if err := rlp.DecodeBytes(value, &v); err != nil {
			return err
		}
		return fn(append([]byte(nil), key[len(prefix):]...), v)
	})
}

// ContractStake[dapp_id].

func (s *Store) PutContractStake(dappID uint16, v StoredContractStakeAmount) error {
	return put(s.db, contractStakeKey(dappID), v)
}

func (s *Store) GetContractStake(dappID uint16) (StoredContractStakeAmount, bool, error) {
	var v StoredContractStakeAmount
	ok, err := get(s.db, contractStakeKey(dappID), &v)
	return v, ok, err
}

func (s *Store) DeleteContractStake(dappID uint16) error {
	return s.db.Delete(contractStakeKey(dappID))
}

// IterateContractStakes visits every per-contract stake series keyed by
// dApp id.
func (s *Store) IterateContractStakes(fn func(dappID uint16, v StoredContractStakeAmount) error) error {
	prefix := []byte(prefixContractStake)
	return s.db.Iterate(prefix, func(key, value []byte) error {
		rest := key[len(prefix):]
		if len(rest) != 2 {
			return nil
		}
		var v StoredContractStakeAmount
		if err := rlp.DecodeBytes(value, &v); err != nil {
			return err
		}
		return fn(uint16(rest[0])<<8|uint16(rest[1]), v)
	})
}

// EraRewards[span_index].

func (s *Store) PutEraReward(spanIndex uint64, v StoredEraReward) error {
	return put(s.db, eraRewardKey(spanIndex), v)
}

func (s *Store) GetEraReward(spanIndex uint64) (StoredEraReward, bool, error) {
	var v StoredEraReward
	ok, err := get(s.db, eraRewardKey(spanIndex), &v)
	return v, ok, err
}

func (s *Store) DeleteEraReward(spanIndex uint64) error {
	return s.db.Delete(eraRewardKey(spanIndex))
}

// PeriodEnd[period].

func (s *Store) PutPeriodEnd(period uint64, v StoredPeriodEndInfo) error {
	return put(s.db, periodEndKey(period), v)
}

func (s *Store) GetPeriodEnd(period uint64) (StoredPeriodEndInfo, bool, error) {
	var v StoredPeriodEndInfo
	ok, err := get(s.db, periodEndKey(period), &v)
	return v, ok, err
}

func (s *Store) DeletePeriodEnd(period uint64) error {
	return s.db.Delete(periodEndKey(period))
}

// DAppTiers[era].

func (s *Store) PutDAppTiers(era uint64, v StoredDAppTierRewards) error {
	return put(s.db, dAppTiersKey(era), v)
}

func (s *Store) GetDAppTiers(era uint64) (StoredDAppTierRewards, bool, error) {
	var v StoredDAppTierRewards
	ok, err := get(s.db, dAppTiersKey(era), &v)
	return v, ok, err
}

func (s *Store) DeleteDAppTiers(era uint64) error {
	return s.db.Delete(dAppTiersKey(era))
}

// IterateEraRewards visits every era reward record in ascending era order
// (keys are big-endian, so byte order is numeric order).
func (s *Store) IterateEraRewards(fn func(era uint64, v StoredEraReward) error) error {
	prefix := []byte(prefixEraReward)
	return s.db.Iterate(prefix, func(key, value []byte) error {
		era, ok := uint64FromBytes(key[len(prefix):])
		if !ok {
			return nil
		}
		var v StoredEraReward
		if err := rlp.DecodeBytes(value, &v); err != nil {
			return err
		}
		return fn(era, v)
	})
}

// IteratePeriodEnds visits every period-end record in ascending period order.
func (s *Store) IteratePeriodEnds(fn func(period uint64, v StoredPeriodEndInfo) error) error {
	prefix := []byte(prefixPeriodEnd)
	return s.db.Iterate(prefix, func(key, value []byte) error {
		period, ok := uint64FromBytes(key[len(prefix):])
		if !ok {
			return nil
		}
		var v StoredPeriodEndInfo
		if err := rlp.DecodeBytes(value, &v); err != nil {
			return err
		}
		return fn(period, v)
	})
}

// IterateDAppTiers visits every per-era tier assignment in ascending era
// order.
func (s *Store) IterateDAppTiers(fn func(era uint64, v StoredDAppTierRewards) error) error {
	prefix := []byte(prefixDAppTiers)
	return s.db.Iterate(prefix, func(key, value []byte) error {
		era, ok := uint64FromBytes(key[len(prefix):])
		if !ok {
			return nil
		}
		var v StoredDAppTierRewards
		if err := rlp.DecodeBytes(value, &v); err != nil {
			return err
		}
		return fn(era, v)
	})
}

// TierConfig.

func (s *Store) PutTierConfig(v StoredTierConfiguration) error {
	return put(s.db, tierConfigKey(), v)
}

func (s *Store) GetTierConfig() (StoredTierConfiguration, bool, error) {
	var v StoredTierConfiguration
	ok, err := get(s.db, tierConfigKey(), &v)
	return v, ok, err
}

// HistoryCleanupMarker.

func (s *Store) PutCleanupMarker(v StoredCleanupMarker) error {
	return put(s.db, cleanupMarkerKey(), v)
}

func (s *Store) GetCleanupMarker() (StoredCleanupMarker, bool, error) {
	var v StoredCleanupMarker
	ok, err := get(s.db, cleanupMarkerKey(), &v)
	return v, ok, err
}
