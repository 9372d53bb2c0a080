package dappstaking

import (
	"github.com/astar-network/dapp-staking-v3/dappstaking/config"
	"github.com/astar-network/dapp-staking-v3/dappstaking/events"
)

// Driver is the block-hook state machine advancing era, subperiod, and
// period. OnBlock is the only path that advances eras and subperiods; the
// engine also writes ProtocolState directly when it toggles maintenance mode
// and when it loads a snapshot.
type Driver struct {
	state   ProtocolState
	forcing ForcingType
}

// NewDriver constructs a Driver starting from the given protocol state.
func NewDriver(initial ProtocolState) *Driver {
	return &Driver{state: initial}
}

// State returns the current protocol state.
func (d *Driver) State() ProtocolState { return d.state }

// SetForcing records a root-submitted forcing request, applied on the next
// OnBlock call and cleared after exactly one use.
func (d *Driver) SetForcing(f ForcingType) { d.forcing = f }

// Transition describes the outcome of one OnBlock call.
type Transition struct {
	Occurred         bool
	EndedEra         uint64
	NewEra           uint64
	SubperiodChanged bool
	PeriodChanged    bool
	NewPeriod        uint64
}

func (d *Driver) shouldTransition(now uint64) bool {
	return d.forcing != ForcingNone || now >= d.state.NextEraStartBlock
}

// OnBlock evaluates the transition rule for block now against cfg. It
// returns a zero Transition and no events when no transition occurs. While
// maintenance is enabled the protocol clock still advances; maintenance
// only gates the operations surface, not the driver.
func (d *Driver) OnBlock(now uint64, cfg config.Config) (Transition, []events.Event) {
	if !d.shouldTransition(now) {
		return Transition{}, nil
	}

	endedEra := d.state.Era
	nextEra := endedEra + 1
	forcingSubperiod := d.forcing == ForcingSubperiod

	t := Transition{Occurred: true, EndedEra: endedEra, NewEra: nextEra}
	var evts []events.Event

	switch {
	case d.state.Period.Subperiod == Voting:
		d.state.Period.Subperiod = BuildAndEarn
		d.state.Period.NextSubperiodStartEra = nextEra + uint64(cfg.ErasPerBuildAndEarnSubperiod)
		d.state.NextEraStartBlock = now + uint64(cfg.BlocksPerEra)
		t.SubperiodChanged = true

	case forcingSubperiod || d.state.Period.NextSubperiodStartEra <= nextEra:
		d.state.Period.Period++
		d.state.Period.Subperiod = Voting
		d.state.Period.NextSubperiodStartEra = nextEra + 1
		d.state.NextEraStartBlock = now + uint64(cfg.BlocksPerEra)*uint64(cfg.ErasPerVotingSubperiod)
		t.SubperiodChanged = true
		t.PeriodChanged = true
		t.NewPeriod = d.state.Period.Period

	default:
		d.state.NextEraStartBlock = now + uint64(cfg.BlocksPerEra)
	}

	d.state.Era = nextEra

	if d.forcing != ForcingNone {
		evts = append(evts, events.Force{ForcingType: d.forcing.String()})
		d.forcing = ForcingNone
	}
	evts = append(evts, events.NewEra{Era: nextEra})
	if t.SubperiodChanged {
		evts = append(evts, events.NewSubperiod{Subperiod: d.state.Period.Subperiod.String(), Number: d.state.Period.Period})
	}
	return t, evts
}
