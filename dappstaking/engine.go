package dappstaking

import (
	"log/slog"
	"math/big"
	"sync"

	"github.com/astar-network/dapp-staking-v3/crypto"
	"github.com/astar-network/dapp-staking-v3/dapps"
	"github.com/astar-network/dapp-staking-v3/dappstaking/config"
	"github.com/astar-network/dapp-staking-v3/dappstaking/events"
	"github.com/astar-network/dapp-staking-v3/dappstaking/tiers"
	"github.com/astar-network/dapp-staking-v3/host"
	"github.com/astar-network/dapp-staking-v3/observability/metrics"
)

// Engine is the top-level, mutex-guarded dApp staking protocol instance:
// one exported method per public operation, plus OnBlock for the block-hook
// driver and OnIdle for history pruning. A single struct owns every piece
// of mutable state, validated once at construction, with every public
// method acquiring the same lock.
type Engine struct {
	mu  sync.Mutex
	cfg config.Config

	currency host.Currency
	blocks   host.BlockOracle
	root     host.RootOrigin
	price    host.PriceOracle
	sink     host.EventSink
	weight   host.WeightMeter

	driver           *Driver
	eraInfo          EraInfo
	rewardSpan       *EraRewardSpan
	periodEnds       map[uint64]PeriodEndInfo
	cleanup          CleanupMarker
	pendingBonusPool *big.Int

	dapps      map[string]dapps.Info
	contracts  map[string]dapps.Contract
	byDAppID   map[uint16]dapps.Contract
	nextDAppID uint16

	ledgers        map[string]*AccountLedger
	stakerInfos    map[stakerKey]SingularStakingInfo
	contractStakes map[uint16]ContractStakeAmount

	tierParams  tiers.Parameters
	basePrice   *big.Rat
	tierConfig  tiers.Configuration
	tierHistory map[uint64]tiers.DAppTierRewards

	dappRewardClaimed map[dappEraKey]bool
	bonusClaimed      map[stakerKey]bool

	logger  *slog.Logger
	metrics *metrics.DAppStakingMetrics
}

type stakerKey struct {
	Account  string
	Contract string
}

// accountKey returns the map-key representation of an account: the raw
// identifier bytes, matching the account component of the persisted
// composite keys so in-memory and stored keyspaces line up.
func accountKey(a crypto.Address) string { return string(a.Bytes()) }

type dappEraKey struct {
	DAppID uint16
	Era    uint64
}

// Collaborators bundles the host-provided external interfaces an Engine
// needs, plus the observability pair. Logger and Metrics may both be left
// nil; every call site guards against a nil receiver.
type Collaborators struct {
	Currency host.Currency
	Blocks   host.BlockOracle
	Root     host.RootOrigin
	Price    host.PriceOracle
	Sink     host.EventSink
	Weight   host.WeightMeter
	Logger   *slog.Logger
	Metrics  *metrics.DAppStakingMetrics
}

// NewEngine constructs an Engine, panicking if cfg is invalid: a bad
// config is a programmer error, not a runtime condition.
func NewEngine(cfg config.Config, collaborators Collaborators, tierParams tiers.Parameters, basePrice *big.Rat) *Engine {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	initial := InitialProtocolState()
	return &Engine{
		cfg:               cfg,
		currency:          collaborators.Currency,
		blocks:            collaborators.Blocks,
		root:              collaborators.Root,
		price:             collaborators.Price,
		sink:              collaborators.Sink,
		weight:            collaborators.Weight,
		driver:            NewDriver(initial),
		eraInfo:           NewEraInfo(initial.Era, initial.Period.Period),
		rewardSpan:        NewEraRewardSpan(cfg.EraRewardSpanLength),
		periodEnds:        make(map[uint64]PeriodEndInfo),
		pendingBonusPool:  big.NewInt(0),
		dapps:             make(map[string]dapps.Info),
		contracts:         make(map[string]dapps.Contract),
		byDAppID:          make(map[uint16]dapps.Contract),
		ledgers:           make(map[string]*AccountLedger),
		stakerInfos:       make(map[stakerKey]SingularStakingInfo),
		contractStakes:    make(map[uint16]ContractStakeAmount),
		tierParams:        tierParams,
		basePrice:         basePrice,
		tierHistory:       make(map[uint64]tiers.DAppTierRewards),
		dappRewardClaimed: make(map[dappEraKey]bool),
		bonusClaimed:      make(map[stakerKey]bool),
		logger:            collaborators.Logger,
		metrics:           collaborators.Metrics,
	}
}

// ProtocolState returns the current protocol state.
func (e *Engine) ProtocolState() ProtocolState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.driver.State()
}

func (e *Engine) emit(evt events.Event) {
	if e.sink != nil {
		e.sink.Emit(evt)
	}
}

func (e *Engine) consumeWeight(units uint64) {
	if e.weight != nil {
		e.weight.Consume(units)
	}
}

func (e *Engine) log(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

// OnBlock runs the block-hook driver for block `now`, snapshotting the era
// just ended (reward pools, tier assignment) and migrating EraInfo forward.
// stakerRewardPool/dappRewardPool are the settled per-era pools the host's
// reward source produced for the era that just ended.
func (e *Engine) OnBlock(now uint64, stakerRewardPool, dappRewardPool *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	transition, evts := e.driver.OnBlock(now, e.cfg)
	for _, evt := range evts {
		e.emit(evt)
	}
	if !transition.Occurred {
		return nil
	}
	e.consumeWeight(1)

	endedTotalStaked := e.eraInfo.CurrentStakeAmount.Total()
	if err := e.rewardSpan.Push(transition.EndedEra, EraReward{
		StakerRewardPool: nonNilBig(stakerRewardPool),
		Staked:           endedTotalStaked,
		DAppRewardPool:   nonNilBig(dappRewardPool),
	}); err != nil {
		return err
	}

	e.runTierAssignment(transition.EndedEra, stakerRewardPool, dappRewardPool)

	bonusPool := big.NewInt(0)
	if transition.PeriodChanged {
		bonusPool = e.bonusPoolForEndedPeriod()
		e.periodEnds[transition.NewPeriod-1] = PeriodEndInfo{
			BonusRewardPool: bonusPool,
			TotalVPStake:    e.eraInfo.CurrentStakeAmount.Voting,
			FinalEra:        transition.EndedEra,
		}
	}

	e.eraInfo.MigrateToNextEra(transition.NewEra, e.driver.State().Period.Period, transition.PeriodChanged)

	if transition.SubperiodChanged {
		e.recomputeTierConfig()
	}

	state := e.driver.State()
	e.log("era transition",
		"ended_era", transition.EndedEra, "new_era", transition.NewEra,
		"period", state.Period.Period, "subperiod", state.Period.Subperiod.String(),
		"subperiod_changed", transition.SubperiodChanged, "period_changed", transition.PeriodChanged)
	if e.metrics != nil {
		e.metrics.SetEraPeriod(state.Era, state.Period.Period, state.Period.Subperiod.String())
		e.metrics.SetRewardPools(floatOf(stakerRewardPool), floatOf(dappRewardPool), floatOf(bonusPool))
		e.metrics.SetTotals(floatOf(e.eraInfo.TotalLocked), floatOf(endedTotalStaked))
		e.metrics.SetRegisteredDApps(len(e.dapps))
		if transition.SubperiodChanged {
			thresholds := make([]float64, len(e.tierConfig.Thresholds))
			for i, t := range e.tierConfig.Thresholds {
				thresholds[i] = floatOf(t)
			}
			e.metrics.SetTierConfig(e.tierConfig.SlotsPerTier, thresholds)
		}
	}
	return nil
}

// floatOf converts a *big.Int to float64 for metrics export, where losing
// precision far beyond a gauge's display purpose is acceptable.
func floatOf(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f := new(big.Float).SetInt(v)
	out, _ := f.Float64()
	return out
}

// FundBonusRewardPool credits amount to the bonus pool accumulating for the
// ongoing period. The engine has no emission schedule of its own, so the
// host deposits whatever portion of its reward emission it earmarks for
// loyalty bonuses here; the accumulated total is sealed into PeriodEndInfo at the
// next Build&Earn -> Voting transition.
func (e *Engine) FundBonusRewardPool(amount *big.Int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	e.pendingBonusPool = new(big.Int).Add(e.pendingBonusPool, amount)
}

// bonusPoolForEndedPeriod seals and resets the bonus pool accumulated for
// the period that just ended.
func (e *Engine) bonusPoolForEndedPeriod() *big.Int {
	out := e.pendingBonusPool
	e.pendingBonusPool = big.NewInt(0)
	return out
}

func (e *Engine) runTierAssignment(era uint64, stakerRewardPool, dappRewardPool *big.Int) {
	if len(e.tierParams.Thresholds) == 0 {
		return
	}
	stakes := make(map[uint16]*big.Int, len(e.byDAppID))
	for id, contract := range e.byDAppID {
		info, ok := e.dapps[contract.Key()]
		if !ok || !info.IsRegistered() {
			continue
		}
		cs := e.contractStakes[id]
		stakes[id] = cs.AmountFor(era, e.driver.State().Period.Period)
	}
	pool := new(big.Int).Add(nonNilBig(stakerRewardPool), nonNilBig(dappRewardPool))
	assignment := tiers.Assign(e.tierConfig, stakes, e.driver.State().Period.Period, e.cfg.MaxRank, pool)
	e.tierHistory[era] = assignment
}

func (e *Engine) recomputeTierConfig() {
	if len(e.tierParams.Thresholds) == 0 {
		return
	}
	price := e.basePrice
	if e.price != nil {
		if p, err := e.price.NativeTokenPrice(); err == nil && p != nil {
			price = p
		}
	}
	issuance := big.NewInt(0)
	if e.currency != nil {
		if i, err := e.currency.TotalIssuance(); err == nil && i != nil {
			issuance = i
		}
	}
	e.tierConfig = tiers.CalculateNew(e.tierParams, price, e.basePrice, issuance)
}

// OnIdle is the best-effort, host-driven pruning pass: it
// reclaims storage held by reward spans, tier assignments, period-end
// records, and claim markers that have aged out of the retention window.
// It deletes at most maxSteps tier-assignment, claim-marker and period-end
// entries; reward-span records older than the oldest valid era are pruned on
// every call, outside that budget. It never affects externally observable
// correctness — everything it removes is already unclaimable.
func (e *Engine) OnIdle(maxSteps uint32) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()

	oldestPeriod := e.oldestRetainedPeriod()
	if oldestPeriod == 0 {
		return 0
	}

	oldestValidEra := e.cleanup.OldestValidEra
	if ended, ok := e.periodEnds[oldestPeriod-1]; ok && ended.FinalEra+1 > oldestValidEra {
		oldestValidEra = ended.FinalEra + 1
	}

	var steps uint32
	for era := range e.tierHistory {
		if steps >= maxSteps {
			break
		}
		if era < oldestValidEra {
			delete(e.tierHistory, era)
			steps++
		}
	}
	for key := range e.dappRewardClaimed {
		if steps >= maxSteps {
			break
		}
		if key.Era < oldestValidEra {
			delete(e.dappRewardClaimed, key)
			steps++
		}
	}
	for p := range e.periodEnds {
		if steps >= maxSteps {
			break
		}
		if p < oldestPeriod {
			delete(e.periodEnds, p)
			steps++
		}
	}
	e.rewardSpan.PruneBefore(oldestValidEra)

	e.cleanup = CleanupMarker{
		EraRewardIndex: oldestValidEra,
		DAppTiersIndex: oldestValidEra,
		OldestValidEra: oldestValidEra,
	}
	if steps > 0 {
		e.consumeWeight(uint64(steps))
		e.log("idle history pruned", "steps", steps, "oldest_valid_era", oldestValidEra)
	}
	return steps
}

func (e *Engine) ledgerFor(account crypto.Address) *AccountLedger {
	key := accountKey(account)
	l, ok := e.ledgers[key]
	if !ok {
		l = NewAccountLedger()
		e.ledgers[key] = l
	}
	return l
}
