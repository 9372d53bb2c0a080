// Package metrics exposes the prometheus gauges and counters the dApp
// staking engine reports: era/period progress, tier configuration, reward
// pool sizes, claim activity, and cleanup activity: a sync.Once-guarded
// singleton of CounterVec/GaugeVec registered once against the default
// prometheus registry, adapted from engagement/heartbeat
// metrics to the staking domain.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// DAppStakingMetrics holds every metric the engine reports.
type DAppStakingMetrics struct {
	era               prometheus.Gauge
	period            prometheus.Gauge
	subperiod         *prometheus.GaugeVec
	tierSlots         *prometheus.GaugeVec
	tierThreshold     *prometheus.GaugeVec
	stakerRewardPool  prometheus.Gauge
	dappRewardPool    prometheus.Gauge
	bonusRewardPool   prometheus.Gauge
	totalLocked       prometheus.Gauge
	totalStaked       prometheus.Gauge
	claimsSettled     *prometheus.CounterVec
	claimAmount       *prometheus.CounterVec
	cleanupRemoved    prometheus.Counter
	registeredDApps   prometheus.Gauge
}

var (
	once     sync.Once
	registry *DAppStakingMetrics
)

// DAppStaking returns the process-wide metrics singleton, constructing and
// registering it against the default prometheus registry on first use.
func DAppStaking() *DAppStakingMetrics {
	once.Do(func() {
		registry = &DAppStakingMetrics{
			era: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dappstaking_era",
				Help: "Current protocol era.",
			}),
			period: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dappstaking_period",
				Help: "Current protocol period number.",
			}),
			subperiod: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "dappstaking_subperiod",
				Help: "1 if the named subperiod is active, 0 otherwise.",
			}, []string{"subperiod"}),
			tierSlots: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "dappstaking_tier_slots",
				Help: "Configured slot capacity per tier.",
			}, []string{"tier"}),
			tierThreshold: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "dappstaking_tier_threshold",
				Help: "Configured entry threshold per tier, in base units.",
			}, []string{"tier"}),
			stakerRewardPool: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dappstaking_staker_reward_pool",
				Help: "Staker reward pool snapshotted for the most recently ended era.",
			}),
			dappRewardPool: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dappstaking_dapp_reward_pool",
				Help: "dApp reward pool snapshotted for the most recently ended era.",
			}),
			bonusRewardPool: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dappstaking_bonus_reward_pool",
				Help: "Bonus reward pool recorded for the most recently ended period.",
			}),
			totalLocked: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dappstaking_total_locked",
				Help: "Aggregate locked balance across every account.",
			}),
			totalStaked: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dappstaking_total_staked",
				Help: "Aggregate staked amount for the current era.",
			}),
			claimsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "dappstaking_claims_settled_total",
				Help: "Count of settled claims by kind (staker, bonus, dapp).",
			}, []string{"kind"}),
			claimAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "dappstaking_claim_amount_total",
				Help: "Cumulative amount paid out by claim kind, in base units.",
			}, []string{"kind"}),
			cleanupRemoved: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "dappstaking_cleanup_entries_removed_total",
				Help: "Count of expired staker-info entries removed by cleanup_expired_entries.",
			}),
			registeredDApps: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dappstaking_registered_dapps",
				Help: "Number of currently registered dApps.",
			}),
		}
		prometheus.MustRegister(
			registry.era,
			registry.period,
			registry.subperiod,
			registry.tierSlots,
			registry.tierThreshold,
			registry.stakerRewardPool,
			registry.dappRewardPool,
			registry.bonusRewardPool,
			registry.totalLocked,
			registry.totalStaked,
			registry.claimsSettled,
			registry.claimAmount,
			registry.cleanupRemoved,
			registry.registeredDApps,
		)
	})
	return registry
}

// SetEraPeriod records the era/period/subperiod currently active.
func (m *DAppStakingMetrics) SetEraPeriod(era, period uint64, subperiod string) {
	if m == nil {
		return
	}
	m.era.Set(float64(era))
	m.period.Set(float64(period))
	m.subperiod.WithLabelValues("Voting").Set(boolFloat(subperiod == "Voting"))
	m.subperiod.WithLabelValues("BuildAndEarn").Set(boolFloat(subperiod == "BuildAndEarn"))
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// SetTierConfig records the per-tier slot capacity and entry threshold.
func (m *DAppStakingMetrics) SetTierConfig(slotsPerTier []uint32, thresholds []float64) {
	if m == nil {
		return
	}
	for i, slots := range slotsPerTier {
		label := strconv.Itoa(i)
		m.tierSlots.WithLabelValues(label).Set(float64(slots))
		if i < len(thresholds) {
			m.tierThreshold.WithLabelValues(label).Set(thresholds[i])
		}
	}
}

// SetRewardPools records the reward pools snapshotted for the era/period
// that just ended.
func (m *DAppStakingMetrics) SetRewardPools(stakerPool, dappPool, bonusPool float64) {
	if m == nil {
		return
	}
	m.stakerRewardPool.Set(stakerPool)
	m.dappRewardPool.Set(dappPool)
	m.bonusRewardPool.Set(bonusPool)
}

// SetTotals records the aggregate locked/staked figures from EraInfo.
func (m *DAppStakingMetrics) SetTotals(totalLocked, totalStaked float64) {
	if m == nil {
		return
	}
	m.totalLocked.Set(totalLocked)
	m.totalStaked.Set(totalStaked)
}

// SetRegisteredDApps records the number of currently registered dApps.
func (m *DAppStakingMetrics) SetRegisteredDApps(count int) {
	if m == nil {
		return
	}
	m.registeredDApps.Set(float64(count))
}

// ObserveClaim records one settled claim of the given kind ("staker",
// "bonus", or "dapp") and the amount it paid out.
func (m *DAppStakingMetrics) ObserveClaim(kind string, amount float64) {
	if m == nil {
		return
	}
	m.claimsSettled.WithLabelValues(kind).Inc()
	m.claimAmount.WithLabelValues(kind).Add(amount)
}

// ObserveCleanup records the number of entries one cleanup_expired_entries
// call removed.
func (m *DAppStakingMetrics) ObserveCleanup(removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.cleanupRemoved.Add(float64(removed))
}
