// Package errors defines the sentinel errors returned by the dApp staking
// core. Every failing operation maps to exactly one of these values so
// callers can use errors.Is for dispatch.
package errors

import stderrors "errors"

var (
	// ErrDisabled is returned by every public operation except toggling
	// maintenance mode while the protocol is in maintenance.
	ErrDisabled = stderrors.New("dappstaking: protocol disabled (maintenance mode)")

	// Contract lifecycle.
	ErrContractNotFound      = stderrors.New("dappstaking: contract not found")
	ErrAlreadyRegistered     = stderrors.New("dappstaking: contract already registered")
	ErrNotOwnedContract      = stderrors.New("dappstaking: caller does not own this contract")
	ErrNotUnregisteredContract = stderrors.New("dappstaking: contract is not unregistered")
	ErrNotRegisteredContract = stderrors.New("dappstaking: contract is not registered")
	ErrTooManyContracts      = stderrors.New("dappstaking: maximum number of registered contracts reached")

	// Amount and lock validation.
	ErrZeroAmount              = stderrors.New("dappstaking: amount must be non-zero")
	ErrLockedAmountBelowThreshold = stderrors.New("dappstaking: locked amount would fall below minimum")
	ErrUnavailableStakeFunds   = stderrors.New("dappstaking: insufficient stakeable funds")
	ErrUnstakeAmountLargerThanStake = stderrors.New("dappstaking: unstake amount exceeds staked amount")
	ErrStakeAmountTooSmall     = stderrors.New("dappstaking: resulting stake is below the minimum")

	// Bounded collections.
	ErrTooManyStakedContracts = stderrors.New("dappstaking: too many staked contracts for this account")
	ErrTooManyUnlockingChunks = stderrors.New("dappstaking: too many unlocking chunks")
	ErrNoCapacity             = stderrors.New("dappstaking: no capacity remaining in bounded collection")

	// Era/period validation.
	ErrInvalidEra    = stderrors.New("dappstaking: invalid era for this operation")
	ErrInvalidPeriod = stderrors.New("dappstaking: invalid period for this operation")

	// Idempotence guards.
	ErrNothingToClaim           = stderrors.New("dappstaking: nothing to claim")
	ErrDAppRewardAlreadyClaimed = stderrors.New("dappstaking: dApp reward already claimed for this era")
	ErrBonusAlreadyClaimed      = stderrors.New("dappstaking: bonus reward already claimed for this period")

	// Cleanup / forcing.
	ErrNoExpiredEntries = stderrors.New("dappstaking: no expired entries to remove")
	ErrForcingDisabled  = stderrors.New("dappstaking: forcing may only be requested by the root origin")
)
