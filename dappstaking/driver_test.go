package dappstaking

import (
	"testing"

	"github.com/astar-network/dapp-staking-v3/dappstaking/config"
	"github.com/astar-network/dapp-staking-v3/dappstaking/events"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.DefaultConfig()
}

func TestDriverNoTransitionBeforeEraBoundary(t *testing.T) {
	d := NewDriver(InitialProtocolState())
	transition, evts := d.OnBlock(1, testConfig())
	require.False(t, transition.Occurred)
	require.Nil(t, evts)
}

func TestDriverVotingAlwaysAdvancesToBuildAndEarn(t *testing.T) {
	d := NewDriver(InitialProtocolState())
	transition, evts := d.OnBlock(2, testConfig())
	require.True(t, transition.Occurred)
	require.True(t, transition.SubperiodChanged)
	require.False(t, transition.PeriodChanged)
	require.Equal(t, BuildAndEarn, d.State().Period.Subperiod)
	require.NotEmpty(t, evts)
}

func TestDriverBuildAndEarnStaysMidSubperiod(t *testing.T) {
	d := NewDriver(InitialProtocolState())
	cfg := testConfig()
	d.OnBlock(2, cfg) // Voting -> BuildAndEarn, era2, nextSubperiodStartEra = 2+3=5

	transition, _ := d.OnBlock(d.State().NextEraStartBlock, cfg)
	require.True(t, transition.Occurred)
	require.False(t, transition.SubperiodChanged)
	require.Equal(t, BuildAndEarn, d.State().Period.Subperiod)
}

func TestDriverBuildAndEarnAdvancesToNextPeriodAtSubperiodBoundary(t *testing.T) {
	d := NewDriver(InitialProtocolState())
	cfg := testConfig()
	now := uint64(2)
	for i := 0; i < 10 && d.State().Period.Period == 1; i++ {
		transition, _ := d.OnBlock(now, cfg)
		if transition.Occurred {
			now = d.State().NextEraStartBlock
		} else {
			now++
		}
	}
	require.Equal(t, uint64(2), d.State().Period.Period)
	require.Equal(t, Voting, d.State().Period.Subperiod)
}

func TestDriverForcingSubperiodEndsCurrentSubperiodImmediately(t *testing.T) {
	d := NewDriver(InitialProtocolState())
	cfg := testConfig()
	d.OnBlock(2, cfg) // now in BuildAndEarn, period 1

	d.SetForcing(ForcingSubperiod)
	transition, evts := d.OnBlock(d.State().NextEraStartBlock, cfg)
	require.True(t, transition.Occurred)
	require.True(t, transition.PeriodChanged)
	require.Equal(t, uint64(2), transition.NewPeriod)
	require.Equal(t, Voting, d.State().Period.Subperiod)

	foundForceEvent := false
	for _, e := range evts {
		if e.EventType() == events.TypeForce {
			foundForceEvent = true
		}
	}
	require.True(t, foundForceEvent)
}

func TestDriverForcingClearsAfterOneUse(t *testing.T) {
	d := NewDriver(InitialProtocolState())
	cfg := testConfig()
	d.SetForcing(ForcingEra)
	transition, _ := d.OnBlock(1, cfg)
	require.True(t, transition.Occurred)

	// Forcing was consumed by the previous call; block 1 is still well
	// before the naturally scheduled era boundary, so no transition occurs.
	transition, _ = d.OnBlock(1, cfg)
	require.False(t, transition.Occurred)
}

func TestDriverMaintenanceDoesNotBlockTransitions(t *testing.T) {
	initial := InitialProtocolState()
	initial.Maintenance = true
	d := NewDriver(initial)
	transition, _ := d.OnBlock(2, testConfig())
	require.True(t, transition.Occurred)
}
