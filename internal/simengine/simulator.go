// Package simengine owns the discrete-time simulation loop: it wires a
// shared RNG, a MatchingEngine, an agent population, and a Collector
// together and advances them in lockstep. The package is synchronous and
// log-free by design; an optional StepLogger hook lets an outer layer
// observe progress without the core depending on any logging library.
package simengine

import (
	"sync"

	"marketsim/internal/agents"
	"marketsim/internal/book"
	"marketsim/internal/simrng"
	"marketsim/internal/simtypes"
)

const (
	snapshotSampleInterval = 100
	pnlSampleInterval      = 1000
)

// Config configures one Simulator instance.
type Config struct {
	Seed          int64
	StartTime     simtypes.Timestamp
	TimeStep      simtypes.Timestamp
	MaxSteps      int
	EnableLogging bool
	OutputDir     string
}

// StepLogger is an optional observer notified once per simulation step.
// The default Simulator has none installed.
type StepLogger interface {
	LogStep(step int, ts simtypes.Timestamp, eventsEmitted, tradesProduced int)
}

// RunResult is the complete output of a finished run.
type RunResult struct {
	Trades               []simtypes.Trade
	MarketSnapshots      []simtypes.MarketSnapshot
	AgentPnL             []AgentPnLSample
	TotalEventsProcessed int
	TotalTrades          int64
	SimulationDuration   simtypes.Timestamp
	WallClockSeconds     float64
}

// Stats is a lightweight summary of running statistics, distinct from a
// full external analytics layer: average spread and price volatility are
// computed over the snapshots taken during the run, not recomputed from
// raw tick data.
type Stats struct {
	TotalEventsProcessed int
	TotalTrades          int64
	TotalOrders          int
	TotalVolume          simtypes.Qty
	LastTradePrice       simtypes.Price
	AverageSpread        float64
	PriceVolatility      float64
	SimulationDuration   simtypes.Timestamp
	EventsPerSecond      float64
}

// Simulator owns the RNG, matching engine, agent population, and
// collector for one reproducible run. The simulation loop itself
// (Run/RunWithAgents) is single-threaded, matching the matching engine's
// own synchronous design; mu only exists to let an outside caller (an
// HTTP status/stats endpoint, a live snapshot poller) safely read
// Stats/Snapshot/Depth from another goroutine while a run is in flight.
type Simulator struct {
	config Config
	rng    *simrng.RNG
	engine *book.MatchingEngine
	agents *agents.Manager
	data   *Collector
	logger StepLogger

	mu              sync.Mutex
	currentTime     simtypes.Timestamp
	currentStep     int
	eventsProcessed int
	wallClockFn     func() float64
}

// New builds a Simulator from config. wallClockFn, if non-nil, is called
// once at the end of Run to populate RunResult.WallClockSeconds; it exists
// so callers can plug in a real clock without the core importing time
// directly into its reproducibility-sensitive path.
func New(config Config, wallClockFn func() float64) *Simulator {
	return &Simulator{
		config:      config,
		rng:         simrng.New(config.Seed),
		engine:      book.NewMatchingEngine(),
		agents:      agents.NewManager(),
		data:        NewCollector(),
		currentTime: config.StartTime,
		wallClockFn: wallClockFn,
	}
}

// SetLogger installs an optional step observer.
func (s *Simulator) SetLogger(l StepLogger) {
	s.logger = l
}

// Engine exposes the underlying matching engine for direct submission or
// observation alongside the agent-driven loop.
func (s *Simulator) Engine() *book.MatchingEngine {
	return s.engine
}

// Collector exposes the underlying data collector.
func (s *Simulator) Collector() *Collector {
	return s.data
}

// Run resets all state, installs the three default agents (MarketMaker=1,
// Taker=2, NoiseTrader=3) built from the given configs, and advances
// n_steps discrete steps.
func (s *Simulator) Run(nSteps int, makerCfg agents.MarketMakerConfig, takerCfg agents.TakerConfig, noiseCfg agents.NoiseTraderConfig) RunResult {
	s.Reset()
	s.agents = agents.NewManager()
	s.initializeAgents(makerCfg, takerCfg, noiseCfg)
	return s.runSteps(nSteps)
}

// RunWithAgents behaves identically to Run except the caller supplies the
// agent population directly instead of the three defaults.
func (s *Simulator) RunWithAgents(nSteps int, population []agents.Agent) RunResult {
	s.Reset()
	s.agents = agents.NewManager()
	for _, a := range population {
		s.agents.Add(a)
	}
	return s.runSteps(nSteps)
}

func (s *Simulator) initializeAgents(makerCfg agents.MarketMakerConfig, takerCfg agents.TakerConfig, noiseCfg agents.NoiseTraderConfig) {
	s.agents.Add(agents.NewMarketMaker(1, "MarketMaker", makerCfg, s.rng))
	s.agents.Add(agents.NewTaker(2, "Taker", takerCfg, s.rng))
	s.agents.Add(agents.NewNoiseTrader(3, "NoiseTrader", noiseCfg, s.rng))
}

func (s *Simulator) runSteps(nSteps int) RunResult {
	for step := 0; step < nSteps; step++ {
		s.mu.Lock()
		s.currentStep = step
		s.processStep()
		s.currentTime += s.config.TimeStep
		s.mu.Unlock()
	}

	result := RunResult{
		Trades:               s.data.Trades(),
		MarketSnapshots:      s.data.Snapshots(),
		AgentPnL:             s.data.AgentPnL(),
		TotalEventsProcessed: s.eventsProcessed,
		TotalTrades:          s.engine.Book().TradeCount(),
		SimulationDuration:   s.currentTime - s.config.StartTime,
	}
	if s.wallClockFn != nil {
		result.WallClockSeconds = s.wallClockFn()
	}
	return result
}

func (s *Simulator) processStep() {
	events := s.agents.Step(s.currentTime)
	trades := s.engine.ProcessEvents(events)
	s.eventsProcessed += len(events)

	for _, trade := range trades {
		s.agents.NotifyTrade(trade)
	}

	if s.currentStep%snapshotSampleInterval == 0 {
		s.data.RecordSnapshot(s.engine.Book().TopOfBook(s.currentTime))
	}
	if s.currentStep%pnlSampleInterval == 0 {
		for _, stat := range s.agents.GetStats() {
			s.data.RecordAgentPnL(stat.ID, s.currentTime, stat.PnL, stat.Inventory)
		}
	}

	if s.logger != nil {
		s.logger.LogStep(s.currentStep, s.currentTime, len(events), len(trades))
	}
}

// Reset clears the matching engine, resets every agent, clears the
// collector, reseeds the RNG, and rewinds the simulation clock.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Clear()
	s.agents.Reset()
	s.data.Clear()
	s.currentTime = s.config.StartTime
	s.currentStep = 0
	s.eventsProcessed = 0
	s.rng.Seed(s.config.Seed)
}

// Snapshot safely reads the current top-of-book from another goroutine
// while a run may be in progress.
func (s *Simulator) Snapshot() simtypes.MarketSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Book().TopOfBook(s.currentTime)
}

// Depth safely reads up to n rows of current book depth from another
// goroutine while a run may be in progress.
func (s *Simulator) Depth(n int) []simtypes.PriceLevelRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Book().GetDepth(n)
}

// Stats reports the running statistics described by Stats, computed over
// the snapshots and counters accumulated so far. Safe to call from
// another goroutine while a run is in progress.
func (s *Simulator) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	duration := s.currentTime - s.config.StartTime
	stats := Stats{
		TotalEventsProcessed: s.eventsProcessed,
		TotalTrades:          s.engine.Book().TradeCount(),
		TotalOrders:          s.engine.Book().Size(),
		TotalVolume:          s.engine.Book().TotalVolume(),
		LastTradePrice:       s.engine.Book().LastTradePrice(),
		AverageSpread:        averageSpread(s.data.Snapshots()),
		PriceVolatility:      priceVolatility(s.data.Snapshots()),
		SimulationDuration:   duration,
	}
	if duration > 0 {
		stats.EventsPerSecond = float64(s.eventsProcessed) / (float64(duration) / 1e9)
	}
	return stats
}
