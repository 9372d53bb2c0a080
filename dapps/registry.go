package dapps

import "github.com/astar-network/dapp-staking-v3/crypto"

// State captures the lifecycle of a registered dApp.
type State uint8

const (
	// StateRegistered means the contract currently accrues tier assignments
	// and may receive new stake.
	StateRegistered State = iota
	// StateUnregistered means the contract was withdrawn from the protocol
	// at UnregisteredEra; existing stakers may still unstake and claim.
	StateUnregistered
)

// Info is the persisted record for a registered contract.
type Info struct {
	Owner               crypto.Address
	ID                  uint16
	RewardBeneficiary   *crypto.Address
	State               State
	UnregisteredEra     uint64 // meaningful only when State == StateUnregistered
}

// Clone returns a deep copy safe for independent mutation.
func (i Info) Clone() Info {
	clone := i
	if i.RewardBeneficiary != nil {
		b := *i.RewardBeneficiary
		clone.RewardBeneficiary = &b
	}
	return clone
}

// IsRegistered reports whether the contract currently accepts new stake.
func (i Info) IsRegistered() bool { return i.State == StateRegistered }

// Beneficiary resolves the account that should receive dApp rewards: the
// configured reward beneficiary if set, otherwise the owner.
func (i Info) Beneficiary() crypto.Address {
	if i.RewardBeneficiary != nil {
		return *i.RewardBeneficiary
	}
	return i.Owner
}
