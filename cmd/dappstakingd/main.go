// Command dappstakingd is a local harness that wires configuration,
// storage, logging, and metrics together and drives the dApp staking
// engine against a simulated block clock. It is not a collator: block
// production, transaction dispatch, and the runtime that would host this
// engine in production live outside this repository; this binary exists so
// the engine can be exercised end-to-end outside of a test harness.
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/astar-network/dapp-staking-v3/crypto"
	"github.com/astar-network/dapp-staking-v3/dappstaking"
	"github.com/astar-network/dapp-staking-v3/dappstaking/config"
	"github.com/astar-network/dapp-staking-v3/dappstaking/events"
	"github.com/astar-network/dapp-staking-v3/dappstaking/state"
	"github.com/astar-network/dapp-staking-v3/dappstaking/tiers"
	"github.com/astar-network/dapp-staking-v3/host"
	"github.com/astar-network/dapp-staking-v3/observability/logging"
	"github.com/astar-network/dapp-staking-v3/observability/metrics"
	"github.com/astar-network/dapp-staking-v3/storage"
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to a YAML engine configuration file (optional, defaults built in)")
		dataDir      = flag.String("datadir", "", "leveldb directory for persisted state (empty uses an in-memory store)")
		blockSeconds = flag.Int("block-seconds", 2, "simulated seconds per block")
		env          = flag.String("env", "local", "deployment environment label for structured logs")
		logFile      = flag.String("log-file", "", "rotating log file path (empty logs to stdout)")
	)
	flag.Parse()

	var logger *slog.Logger
	if *logFile != "" {
		logger = logging.SetupRotating("dappstakingd", *env, *logFile)
	} else {
		logger = logging.Setup("dappstakingd", *env)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			logger.Error("read config", "error", err)
			os.Exit(1)
		}
		loaded, err := config.LoadYAML(data)
		if err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	db, closeDB := openStorage(*dataDir, logger)
	defer closeDB()
	store := state.NewStore(db)

	root := crypto.RandomAddress()
	currency := &simCurrency{issuance: big.NewInt(1_000_000_000)}
	clock := &simClock{}
	price := &simPrice{value: big.NewRat(1, 1)}

	engine := dappstaking.NewEngine(cfg, dappstaking.Collaborators{
		Currency: currency,
		Blocks:   clock,
		Root:     rootOrigin{root: toHostAccount(root)},
		Price:    price,
		Sink:     eventLogger{logger: logger},
		Logger:   logger,
		Metrics:  metrics.DAppStaking(),
	}, tiers.Parameters{}, big.NewRat(1, 1))

	if err := engine.LoadFrom(store); err != nil {
		logger.Error("load persisted state", "error", err)
		os.Exit(1)
	}
	// Resume the simulated clock just before the next era boundary the
	// persisted state expects.
	if next := engine.ProtocolState().NextEraStartBlock; next > 0 {
		clock.height = next - 1
	}

	logger.Info("dappstakingd starting", "root", root.String(), "blocks_per_era", cfg.BlocksPerEra, "block", clock.height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One token per simulated block; Wait doubles as the shutdown point.
	limiter := rate.NewLimiter(rate.Every(time.Duration(*blockSeconds)*time.Second), 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			logger.Info("dappstakingd stopping")
			return
		}
		clock.height++
		if err := engine.OnBlock(clock.height, big.NewInt(0), big.NewInt(0)); err != nil {
			logger.Error("block hook failed", "error", err, "block", clock.height)
		}
		engine.OnIdle(64)
		if err := engine.Snapshot(store); err != nil {
			logger.Error("persist state", "error", err, "block", clock.height)
		}
	}
}

func openStorage(dataDir string, logger *slog.Logger) (storage.Database, func()) {
	if dataDir == "" {
		db := storage.NewMemDB()
		return db, func() { db.Close() }
	}
	db, err := storage.NewLevelDB(dataDir)
	if err != nil {
		logger.Error("open leveldb", "error", err, "datadir", dataDir)
		os.Exit(1)
	}
	return db, func() { db.Close() }
}

func toHostAccount(a crypto.Address) [20]byte {
	var out [20]byte
	copy(out[:], a.Bytes())
	return out
}

type rootOrigin struct{ root [20]byte }

func (r rootOrigin) IsRoot(caller [20]byte) bool { return caller == r.root }

type simClock struct{ height uint64 }

func (c *simClock) CurrentBlock() uint64 { return c.height }

type simPrice struct{ value *big.Rat }

func (p *simPrice) NativeTokenPrice() (*big.Rat, error) { return p.value, nil }

type eventLogger struct{ logger *slog.Logger }

func (e eventLogger) Emit(evt events.Event) {
	attrs := make([]any, 0, len(evt.Attrs())*2)
	for k, v := range evt.Attrs() {
		attrs = append(attrs, k, v)
	}
	e.logger.Info(evt.EventType(), attrs...)
}

// simCurrency is a trivial in-process host.Currency used only so this
// harness can run without a real runtime; production deployments supply
// their own implementation backed by the chain's balances pallet.
type simCurrency struct {
	issuance *big.Int
	balances map[[20]byte]*big.Int
	frozen   map[[20]byte]map[host.FreezeID]*big.Int
}

func (c *simCurrency) bal(a [20]byte) *big.Int {
	if c.balances == nil {
		c.balances = make(map[[20]byte]*big.Int)
	}
	if v, ok := c.balances[a]; ok {
		return v
	}
	return big.NewInt(0)
}

func (c *simCurrency) frz(a [20]byte, id host.FreezeID) *big.Int {
	if c.frozen == nil {
		return big.NewInt(0)
	}
	byID, ok := c.frozen[a]
	if !ok {
		return big.NewInt(0)
	}
	if v, ok := byID[id]; ok {
		return v
	}
	return big.NewInt(0)
}

func (c *simCurrency) SetFreeze(account [20]byte, id host.FreezeID, amount *big.Int) error {
	if c.frozen == nil {
		c.frozen = make(map[[20]byte]map[host.FreezeID]*big.Int)
	}
	if c.frozen[account] == nil {
		c.frozen[account] = make(map[host.FreezeID]*big.Int)
	}
	c.frozen[account][id] = new(big.Int).Set(amount)
	return nil
}

func (c *simCurrency) ReleaseFreeze(account [20]byte, id host.FreezeID, amount *big.Int) error {
	out := new(big.Int).Sub(c.frz(account, id), amount)
	if out.Sign() < 0 {
		out = big.NewInt(0)
	}
	return c.SetFreeze(account, id, out)
}

func (c *simCurrency) FreeBalance(account [20]byte) (*big.Int, error) {
	total := c.bal(account)
	frozen := big.NewInt(0)
	for _, amount := range c.frozen[account] {
		frozen.Add(frozen, amount)
	}
	free := new(big.Int).Sub(total, frozen)
	if free.Sign() < 0 {
		free = big.NewInt(0)
	}
	return free, nil
}

func (c *simCurrency) BalanceFrozen(account [20]byte, id host.FreezeID) (*big.Int, error) {
	return c.frz(account, id), nil
}

func (c *simCurrency) MintInto(account [20]byte, amount *big.Int) error {
	if c.balances == nil {
		c.balances = make(map[[20]byte]*big.Int)
	}
	c.balances[account] = new(big.Int).Add(c.bal(account), amount)
	c.issuance = new(big.Int).Add(c.issuance, amount)
	return nil
}

func (c *simCurrency) TotalIssuance() (*big.Int, error) { return c.issuance, nil }
