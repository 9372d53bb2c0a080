// Package state is the persisted key/value codec for the dApp staking
// engine. It deliberately does not import package dappstaking: every
// persisted shape here is a plain, rlp-encodable "stored" struct that the
// engine converts its live domain types to and from, so the codec package
// itself has no dependency on the types it stores.
package state

// Key prefixes, one per persisted collection: protocol state, next dApp
// id, era info, dApp registry, ledgers, staker info, contract stakes, era
// rewards, period ends, dApp tiers, tier config, cleanup marker.
const (
	prefixProtocolState  = "dappstaking/protocol_state"
	prefixNextDAppID     = "dappstaking/next_dapp_id"
	prefixCurrentEraInfo = "dappstaking/current_era_info"
	prefixDApp           = "dappstaking/dapp/"
	prefixLedger         = "dappstaking/ledger/"
	prefixStakerInfo     = "dappstaking/staker_info/"
	prefixContractStake  = "dappstaking/contract_stake/"
	prefixEraReward      = "dappstaking/era_reward/"
	prefixPeriodEnd      = "dappstaking/period_end/"
	prefixDAppTiers      = "dappstaking/dapp_tiers/"
	prefixTierConfig     = "dappstaking/tier_config"
	prefixCleanupMarker  = "dappstaking/cleanup_marker"
)

func protocolStateKey() []byte { return []byte(prefixProtocolState) }
func nextDAppIDKey() []byte    { return []byte(prefixNextDAppID) }
func currentEraInfoKey() []byte { return []byte(prefixCurrentEraInfo) }
func tierConfigKey() []byte    { return []byte(prefixTierConfig) }
func cleanupMarkerKey() []byte { return []byte(prefixCleanupMarker) }

func dappKey(contractBytes []byte) []byte {
	return append([]byte(prefixDApp), contractBytes...)
}

func ledgerKey(accountBytes []byte) []byte {
	return append([]byte(prefixLedger), accountBytes...)
}

func stakerInfoKey(accountBytes, contractBytes []byte) []byte {
	key := append([]byte(prefixStakerInfo), accountBytes...)
	return append(key, contractBytes...)
}

func contractStakeKey(dappID uint16) []byte {
	return append([]byte(prefixContractStake), byte(dappID>>8), byte(dappID))
}

func eraRewardKey(spanIndex uint64) []byte {
	return append([]byte(prefixEraReward), uint64Bytes(spanIndex)...)
}

func periodEndKey(period uint64) []byte {
	return append([]byte(prefixPeriodEnd), uint64Bytes(period)...)
}

func dAppTiersKey(era uint64) []byte {
	return append([]byte(prefixDAppTiers), uint64Bytes(era)...)
}

// accountKeyLength is the fixed byte length of an account key component
// inside composite keys.
const accountKeyLength = 20

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func uint64FromBytes(b []byte) (uint64, bool) {
	if len(b) != 8 {
		return 0, false
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, true
}
