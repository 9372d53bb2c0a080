package events

import (
	"math/big"
	"strconv"

	"github.com/astar-network/dapp-staking-v3/crypto"
	"github.com/astar-network/dapp-staking-v3/dapps"
)

// Event type identifiers, one per emitted domain event.
const (
	TypeMaintenanceMode            = "dappstaking.maintenanceMode"
	TypeDAppRegistered             = "dappstaking.dappRegistered"
	TypeDAppUnregistered           = "dappstaking.dappUnregistered"
	TypeDAppOwnerChanged           = "dappstaking.dappOwnerChanged"
	TypeDAppRewardDestinationUpdated = "dappstaking.dappRewardDestinationUpdated"
	TypeLocked                     = "dappstaking.locked"
	TypeUnlocking                  = "dappstaking.unlocking"
	TypeClaimedUnlocked            = "dappstaking.claimedUnlocked"
	TypeRelock                     = "dappstaking.relock"
	TypeStake                      = "dappstaking.stake"
	TypeUnstake                    = "dappstaking.unstake"
	TypeReward                     = "dappstaking.reward"
	TypeBonusReward                = "dappstaking.bonusReward"
	TypeDAppReward                 = "dappstaking.dappReward"
	TypeUnstakeFromUnregistered    = "dappstaking.unstakeFromUnregistered"
	TypeExpiredEntriesRemoved      = "dappstaking.expiredEntriesRemoved"
	TypeNewEra                     = "dappstaking.newEra"
	TypeNewSubperiod               = "dappstaking.newSubperiod"
	TypeForce                      = "dappstaking.force"
)

func formatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func addrAttr(a crypto.Address) string {
	if a.IsZero() {
		return ""
	}
	return a.String()
}

// MaintenanceMode is emitted whenever root toggles maintenance mode.
type MaintenanceMode struct{ Enabled bool }

func (MaintenanceMode) EventType() string { return TypeMaintenanceMode }
func (e MaintenanceMode) Attrs() map[string]string {
	return map[string]string{"enabled": strconv.FormatBool(e.Enabled)}
}

// DAppRegistered is emitted when a new contract is registered.
type DAppRegistered struct {
	Owner    crypto.Address
	Contract dapps.Contract
	DAppID   uint16
}

func (DAppRegistered) EventType() string { return TypeDAppRegistered }
func (e DAppRegistered) Attrs() map[string]string {
	return map[string]string{
		"owner":    addrAttr(e.Owner),
		"contract": e.Contract.String(),
		"dappId":   strconv.FormatUint(uint64(e.DAppID), 10),
	}
}

// DAppUnregistered is emitted when a contract is withdrawn from the protocol.
type DAppUnregistered struct {
	Contract dapps.Contract
	Era      uint64
}

func (DAppUnregistered) EventType() string { return TypeDAppUnregistered }
func (e DAppUnregistered) Attrs() map[string]string {
	return map[string]string{
		"contract": e.Contract.String(),
		"era":      strconv.FormatUint(e.Era, 10),
	}
}

// DAppOwnerChanged is emitted when contract ownership transfers.
type DAppOwnerChanged struct {
	Contract dapps.Contract
	NewOwner crypto.Address
}

func (DAppOwnerChanged) EventType() string { return TypeDAppOwnerChanged }
func (e DAppOwnerChanged) Attrs() map[string]string {
	return map[string]string{
		"contract": e.Contract.String(),
		"newOwner": addrAttr(e.NewOwner),
	}
}

// DAppRewardDestinationUpdated is emitted when the reward beneficiary changes.
type DAppRewardDestinationUpdated struct {
	Contract    dapps.Contract
	Beneficiary *crypto.Address
}

func (DAppRewardDestinationUpdated) EventType() string { return TypeDAppRewardDestinationUpdated }
func (e DAppRewardDestinationUpdated) Attrs() map[string]string {
	attrs := map[string]string{"contract": e.Contract.String()}
	if e.Beneficiary != nil {
		attrs["beneficiary"] = addrAttr(*e.Beneficiary)
	}
	return attrs
}

// Locked is emitted when an account freezes additional funds.
type Locked struct {
	Account crypto.Address
	Amount  *big.Int
}

func (Locked) EventType() string { return TypeLocked }
func (e Locked) Attrs() map[string]string {
	return map[string]string{"account": addrAttr(e.Account), "amount": formatAmount(e.Amount)}
}

// Unlocking is emitted when an account schedules funds for unlocking.
type Unlocking struct {
	Account crypto.Address
	Amount  *big.Int
}

func (Unlocking) EventType() string { return TypeUnlocking }
func (e Unlocking) Attrs() map[string]string {
	return map[string]string{"account": addrAttr(e.Account), "amount": formatAmount(e.Amount)}
}

// ClaimedUnlocked is emitted when matured unlocking chunks are released.
type ClaimedUnlocked struct {
	Account crypto.Address
	Amount  *big.Int
}

func (ClaimedUnlocked) EventType() string { return TypeClaimedUnlocked }
func (e ClaimedUnlocked) Attrs() map[string]string {
	return map[string]string{"account": addrAttr(e.Account), "amount": formatAmount(e.Amount)}
}

// Relock is emitted when pending unlocking chunks are folded back into locked funds.
type Relock struct {
	Account crypto.Address
	Amount  *big.Int
}

func (Relock) EventType() string { return TypeRelock }
func (e Relock) Attrs() map[string]string {
	return map[string]string{"account": addrAttr(e.Account), "amount": formatAmount(e.Amount)}
}

// Stake is emitted when an account commits stake to a contract.
type Stake struct {
	Account  crypto.Address
	Contract dapps.Contract
	Amount   *big.Int
}

func (Stake) EventType() string { return TypeStake }
func (e Stake) Attrs() map[string]string {
	return map[string]string{
		"account":  addrAttr(e.Account),
		"contract": e.Contract.String(),
		"amount":   formatAmount(e.Amount),
	}
}

// Unstake is emitted when an account withdraws stake from a contract.
type Unstake struct {
	Account  crypto.Address
	Contract dapps.Contract
	Amount   *big.Int
}

func (Unstake) EventType() string { return TypeUnstake }
func (e Unstake) Attrs() map[string]string {
	return map[string]string{
		"account":  addrAttr(e.Account),
		"contract": e.Contract.String(),
		"amount":   formatAmount(e.Amount),
	}
}

// Reward is emitted once per staker reward settlement, covering one or more eras.
type Reward struct {
	Account crypto.Address
	Era     uint64
	Amount  *big.Int
}

func (Reward) EventType() string { return TypeReward }
func (e Reward) Attrs() map[string]string {
	return map[string]string{
		"account": addrAttr(e.Account),
		"era":     strconv.FormatUint(e.Era, 10),
		"amount":  formatAmount(e.Amount),
	}
}

// BonusReward is emitted when a staker claims their period-end loyalty bonus.
type BonusReward struct {
	Account  crypto.Address
	Contract dapps.Contract
	Period   uint64
	Amount   *big.Int
}

func (BonusReward) EventType() string { return TypeBonusReward }
func (e BonusReward) Attrs() map[string]string {
	return map[string]string{
		"account":  addrAttr(e.Account),
		"contract": e.Contract.String(),
		"period":   strconv.FormatUint(e.Period, 10),
		"amount":   formatAmount(e.Amount),
	}
}

// DAppReward is emitted when a contract's tier reward is claimed on behalf
// of its reward beneficiary.
type DAppReward struct {
	Beneficiary crypto.Address
	Contract    dapps.Contract
	TierID      uint8
	Era         uint64
	Amount      *big.Int
}

func (DAppReward) EventType() string { return TypeDAppReward }
func (e DAppReward) Attrs() map[string]string {
	return map[string]string{
		"beneficiary": addrAttr(e.Beneficiary),
		"contract":    e.Contract.String(),
		"tierId":      strconv.FormatUint(uint64(e.TierID), 10),
		"era":         strconv.FormatUint(e.Era, 10),
		"amount":      formatAmount(e.Amount),
	}
}

// UnstakeFromUnregistered is emitted by the unregistered-contract cleanup path.
type UnstakeFromUnregistered struct {
	Account  crypto.Address
	Contract dapps.Contract
	Amount   *big.Int
}

func (UnstakeFromUnregistered) EventType() string { return TypeUnstakeFromUnregistered }
func (e UnstakeFromUnregistered) Attrs() map[string]string {
	return map[string]string{
		"account":  addrAttr(e.Account),
		"contract": e.Contract.String(),
		"amount":   formatAmount(e.Amount),
	}
}

// ExpiredEntriesRemoved is emitted after a cleanup pass prunes stale staker entries.
type ExpiredEntriesRemoved struct {
	Account crypto.Address
	Count   uint32
}

func (ExpiredEntriesRemoved) EventType() string { return TypeExpiredEntriesRemoved }
func (e ExpiredEntriesRemoved) Attrs() map[string]string {
	return map[string]string{
		"account": addrAttr(e.Account),
		"count":   strconv.FormatUint(uint64(e.Count), 10),
	}
}

// NewEra is emitted by the protocol driver on every era transition.
type NewEra struct{ Era uint64 }

func (NewEra) EventType() string { return TypeNewEra }
func (e NewEra) Attrs() map[string]string {
	return map[string]string{"era": strconv.FormatUint(e.Era, 10)}
}

// NewSubperiod is emitted whenever the protocol switches Voting<->Build&Earn.
type NewSubperiod struct {
	Subperiod string
	Number    uint64
}

func (NewSubperiod) EventType() string { return TypeNewSubperiod }
func (e NewSubperiod) Attrs() map[string]string {
	return map[string]string{"subperiod": e.Subperiod, "number": strconv.FormatUint(e.Number, 10)}
}

// Force is emitted when root submits a forcing request.
type Force struct{ ForcingType string }

func (Force) EventType() string { return TypeForce }
func (e Force) Attrs() map[string]string {
	return map[string]string{"forcingType": e.ForcingType}
}
