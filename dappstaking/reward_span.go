package dappstaking

import errs "github.com/astar-network/dapp-staking-v3/dappstaking/errors"

// EraRewardSpan is a bounded, ring-shaped sequence of EraReward keyed by
// consecutive eras.
type EraRewardSpan struct {
	firstEra uint64
	entries  []EraReward
	maxLen   uint32
}

// NewEraRewardSpan returns an empty span with the given configured length.
func NewEraRewardSpan(maxLen uint32) *EraRewardSpan {
	return &EraRewardSpan{maxLen: maxLen}
}

// Len reports how many eras the span currently holds.
func (s *EraRewardSpan) Len() int { return len(s.entries) }

// FirstEra returns the era of the oldest entry, or zero if the span is empty.
func (s *EraRewardSpan) FirstEra() uint64 { return s.firstEra }

// LastEra returns the era of the newest entry, or zero if the span is empty.
func (s *EraRewardSpan) LastEra() uint64 {
	if len(s.entries) == 0 {
		return 0
	}
	return s.firstEra + uint64(len(s.entries)) - 1
}

// Get returns the EraReward recorded for era, or ok=false if it is out of
// range or has not been recorded.
func (s *EraRewardSpan) Get(era uint64) (EraReward, bool) {
	if len(s.entries) == 0 || era < s.firstEra || era > s.LastEra() {
		return EraReward{}, false
	}
	return s.entries[era-s.firstEra], true
}

// Push extends the span by exactly one era with reward; non-contiguous
// eras are rejected. When the span is full, the oldest entry is evicted to
// make room.
func (s *EraRewardSpan) Push(era uint64, reward EraReward) error {
	if len(s.entries) > 0 && era != s.LastEra()+1 {
		return errs.ErrInvalidEra
	}
	if len(s.entries) == 0 {
		s.firstEra = era
	}
	s.entries = append(s.entries, reward)
	if s.maxLen > 0 && uint32(len(s.entries)) > s.maxLen {
		s.entries = s.entries[1:]
		s.firstEra++
	}
	return nil
}

// PruneBefore discards every entry older than oldestValidEra, advancing
// firstEra. Used by the idle-time lifecycle cleanup pass.
func (s *EraRewardSpan) PruneBefore(oldestValidEra uint64) {
	if oldestValidEra <= s.firstEra {
		return
	}
	drop := oldestValidEra - s.firstEra
	if drop >= uint64(len(s.entries)) {
		s.entries = nil
		s.firstEra = 0
		return
	}
	s.entries = s.entries[drop:]
	s.firstEra = oldestValidEra
}
