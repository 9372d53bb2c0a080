// Package config defines the validated, builder-constructed configuration
// for the dApp staking engine. Data and validation are kept separate:
// Config is plain data, Validate checks it exhaustively, and Builder is the
// only sanctioned way to assemble overrides.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Permill values are parts-per-million (denominator 1_000_000), used for
// tier reward/slot distributions and dynamic threshold percentages so the
// tier engine retains precision beyond basis points.
const PermillDenominator uint32 = 1_000_000

// Config bundles every protocol configuration constant.
type Config struct {
	BlocksPerEra               uint32
	ErasPerVotingSubperiod     uint32
	ErasPerBuildAndEarnSubperiod uint32
	UnlockingPeriod            uint32
	MaxUnlockingChunks         uint32
	MaxNumberOfStakedContracts uint32
	MaxNumberOfContracts       uint32
	EraRewardSpanLength        uint32
	RewardRetentionInPeriods   uint32
	MinimumLockedAmount        string // decimal string, parsed to *big.Int by callers
	MinimumStakeAmount         string
	NumberOfTiers              uint32
	MaxBonusSafeMovesPerPeriod uint8
	MaxRank                    uint8
}

// Builder collects Config settings and runs the exhaustive checks once, in
// Build, before the Config is committed to the engine, rather than
// scattering them across callers.
type Builder struct {
	cfg Config
	err error
}

// NewBuilder starts from DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// DefaultConfig returns a small, test-friendly set of constants; callers
// overriding values should use Builder.
func DefaultConfig() Config {
	return Config{
		BlocksPerEra:                 10,
		ErasPerVotingSubperiod:       2,
		ErasPerBuildAndEarnSubperiod: 3,
		UnlockingPeriod:              20,
		MaxUnlockingChunks:           8,
		MaxNumberOfStakedContracts:   16,
		MaxNumberOfContracts:         500,
		EraRewardSpanLength:          8,
		RewardRetentionInPeriods:     2,
		MinimumLockedAmount:          "100",
		MinimumStakeAmount:           "50",
		NumberOfTiers:                4,
		MaxBonusSafeMovesPerPeriod:   4,
		MaxRank:                      10,
	}
}

// WithEraLength overrides the blocks-per-era constant.
func (b *Builder) WithEraLength(blocks uint32) *Builder {
	b.cfg.BlocksPerEra = blocks
	return b
}

// WithSubperiods overrides the voting/build-and-earn era counts.
func (b *Builder) WithSubperiods(voting, buildAndEarn uint32) *Builder {
	b.cfg.ErasPerVotingSubperiod = voting
	b.cfg.ErasPerBuildAndEarnSubperiod = buildAndEarn
	return b
}

// WithBounds overrides the bounded-collection limits.
func (b *Builder) WithBounds(unlockingChunks, stakedContracts, contracts, spanLength, retentionPeriods uint32) *Builder {
	b.cfg.MaxUnlockingChunks = unlockingChunks
	b.cfg.MaxNumberOfStakedContracts = stakedContracts
	b.cfg.MaxNumberOfContracts = contracts
	b.cfg.EraRewardSpanLength = spanLength
	b.cfg.RewardRetentionInPeriods = retentionPeriods
	return b
}

// WithMinimums overrides the minimum locked/stake decimal amounts.
func (b *Builder) WithMinimums(lockedAmount, stakeAmount string) *Builder {
	b.cfg.MinimumLockedAmount = lockedAmount
	b.cfg.MinimumStakeAmount = stakeAmount
	return b
}

// WithTiers overrides the tier count and bonus safe-move allowance.
func (b *Builder) WithTiers(tiers uint32, maxBonusSafeMoves uint8, maxRank uint8) *Builder {
	b.cfg.NumberOfTiers = tiers
	b.cfg.MaxBonusSafeMovesPerPeriod = maxBonusSafeMoves
	b.cfg.MaxRank = maxRank
	return b
}

// Build validates the accumulated configuration and returns it, or the
// first validation error encountered.
func (b *Builder) Build() (Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return Config{}, err
	}
	return b.cfg, nil
}

// Validate ensures every configured constant is internally consistent.
func (c Config) Validate() error {
	if c.BlocksPerEra == 0 {
		return fmt.Errorf("dappstaking/config: blocks per era must be greater than zero")
	}
	if c.ErasPerVotingSubperiod == 0 {
		return fmt.Errorf("dappstaking/config: eras per voting subperiod must be greater than zero")
	}
	if c.ErasPerBuildAndEarnSubperiod == 0 {
		return fmt.Errorf("dappstaking/config: eras per build-and-earn subperiod must be greater than zero")
	}
	if c.MaxUnlockingChunks == 0 {
		return fmt.Errorf("dappstaking/config: max unlocking chunks must be greater than zero")
	}
	if c.MaxNumberOfStakedContracts == 0 {
		return fmt.Errorf("dappstaking/config: max staked contracts must be greater than zero")
	}
	if c.MaxNumberOfContracts == 0 {
		return fmt.Errorf("dappstaking/config: max number of contracts must be greater than zero")
	}
	if c.EraRewardSpanLength == 0 {
		return fmt.Errorf("dappstaking/config: era reward span length must be greater than zero")
	}
	if c.NumberOfTiers == 0 {
		return fmt.Errorf("dappstaking/config: number of tiers must be greater than zero")
	}
	if c.MaxRank == 0 {
		return fmt.Errorf("dappstaking/config: max rank must be greater than zero")
	}
	return nil
}

// LoadYAML decodes and validates a Config from YAML-encoded bytes.
func LoadYAML(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("dappstaking/config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
