package httpapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"marketsim/internal/agents"
	"marketsim/internal/csvexport"
	"marketsim/internal/simengine"
	"marketsim/internal/simtypes"
	"marketsim/internal/streamhub"
)

// snapshotPollInterval is how often the live stream polls the book for a
// fresh top-of-book snapshot while a run is in flight. It is a wall-clock
// cadence chosen for the websocket feed only, unrelated to the core's own
// simulated-time snapshot sampling.
const snapshotPollInterval = 200 * time.Millisecond

// ErrRunInProgress is returned by StartRun when a run is already running.
var ErrRunInProgress = errors.New("a simulation run is already in progress")

// Runner owns one Simulator and exposes it to the HTTP layer: it starts
// runs in the background, tracks completion state, and fans live trades
// and snapshots out over two streamhub hubs. It never touches
// internal/simengine's internals, only its exported API.
type Runner struct {
	defaultSeed     int64
	defaultTimeStep simtypes.Timestamp
	defaultSteps    int
	outputDir       string

	trades    *streamhub.Hub[TradeMessage]
	snapshots *streamhub.Hub[SnapshotMessage]

	stepLogger simengine.StepLogger

	mu               sync.Mutex
	sim              *simengine.Simulator
	runID            string
	state            string
	lastErr          error
	result           simengine.RunResult
	stopSnapshotPoll chan struct{}
}

// SetStepLogger installs an observer notified once per simulation step on
// every future run. It has no effect on a run already in progress.
func (r *Runner) SetStepLogger(l simengine.StepLogger) {
	r.stepLogger = l
}

// NewRunner builds a Runner with the given defaults, used whenever a
// StartRunRequest omits a field.
func NewRunner(defaultSeed int64, defaultTimeStep simtypes.Timestamp, defaultSteps int, outputDir string) *Runner {
	return &Runner{
		defaultSeed:     defaultSeed,
		defaultTimeStep: defaultTimeStep,
		defaultSteps:    defaultSteps,
		outputDir:       outputDir,
		trades:          streamhub.New[TradeMessage](),
		snapshots:       streamhub.New[SnapshotMessage](),
		state:           "idle",
	}
}

// Trades exposes the live trade stream hub.
func (r *Runner) Trades() *streamhub.Hub[TradeMessage] { return r.trades }

// Snapshots exposes the live snapshot stream hub.
func (r *Runner) Snapshots() *streamhub.Hub[SnapshotMessage] { return r.snapshots }

// StartRun launches a new run in the background. It fails if one is
// already in progress.
func (r *Runner) StartRun(req StartRunRequest) (StartRunResponse, error) {
	r.mu.Lock()
	if r.state == "running" {
		r.mu.Unlock()
		return StartRunResponse{}, ErrRunInProgress
	}

	seed := req.Seed
	if seed == 0 {
		seed = r.defaultSeed
	}
	timeStep := req.TimeStep
	if timeStep == 0 {
		timeStep = r.defaultTimeStep
	}
	steps := req.Steps
	if steps == 0 {
		steps = r.defaultSteps
	}

	start := time.Now()
	cfg := simengine.Config{Seed: seed, StartTime: 0, TimeStep: timeStep, MaxSteps: steps, OutputDir: r.outputDir}
	sim := simengine.New(cfg, func() float64 { return time.Since(start).Seconds() })
	sim.Engine().SetTradeCallback(r.publishTrade)
	if r.stepLogger != nil {
		sim.SetLogger(r.stepLogger)
	}

	runID := uuid.New().String()

	r.sim = sim
	r.runID = runID
	r.state = "running"
	r.lastErr = nil
	stop := make(chan struct{})
	r.stopSnapshotPoll = stop
	r.mu.Unlock()

	go r.pollSnapshots(sim, stop)
	go r.run(sim, steps, stop)

	return StartRunResponse{Status: "started", RunID: runID, Seed: seed, Steps: steps}, nil
}

func (r *Runner) run(sim *simengine.Simulator, steps int, stop chan struct{}) {
	result := sim.Run(steps, agents.DefaultMarketMakerConfig(), agents.DefaultTakerConfig(), agents.DefaultNoiseTraderConfig())

	r.mu.Lock()
	r.result = result
	r.state = "finished"
	r.mu.Unlock()

	close(stop)
}

func (r *Runner) pollSnapshots(sim *simengine.Simulator, stop chan struct{}) {
	ticker := time.NewTicker(snapshotPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			snap := sim.Snapshot()
			r.snapshots.Broadcast(SnapshotMessage{
				BestBid:        snap.BestBid,
				BestAsk:        snap.BestAsk,
				BestBidQty:     snap.BestBidQty,
				BestAskQty:     snap.BestAskQty,
				LastTradePrice: snap.LastTradePrice,
				Timestamp:      snap.Timestamp,
			})
		}
	}
}

func (r *Runner) publishTrade(t simtypes.Trade) {
	r.trades.Broadcast(TradeMessage{
		MakerID:   t.MakerID,
		TakerID:   t.TakerID,
		Price:     t.Price,
		Quantity:  t.Quantity,
		Timestamp: t.Timestamp,
	})
}

// Status reports the current run state.
func (r *Runner) Status() RunStatusResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	resp := RunStatusResponse{State: r.state, RunID: r.runID}
	if r.lastErr != nil {
		resp.Error = r.lastErr.Error()
	}
	return resp
}

// Result returns the finished run's result. ok is false if no run has
// finished yet.
func (r *Runner) Result() (simengine.RunResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != "finished" {
		return simengine.RunResult{}, false
	}
	return r.result, true
}

// Stats returns the live (or final) simulator statistics. ok is false if
// no run has ever been started.
func (r *Runner) Stats() (simengine.Stats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sim == nil {
		return simengine.Stats{}, false
	}
	return r.sim.Stats(), true
}

// Depth returns up to n rows of current book depth. ok is false if no run
// has ever been started.
func (r *Runner) Depth(n int) ([]simtypes.PriceLevelRow, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sim == nil {
		return nil, false
	}
	return r.sim.Depth(n), true
}

// ExportCSV writes the finished run's CSV files to the configured output
// directory. It fails if no run has finished.
func (r *Runner) ExportCSV() (string, error) {
	result, ok := r.Result()
	if !ok {
		return "", errors.New("no finished run to export")
	}
	if err := csvexport.WriteRunResult(r.outputDir, result); err != nil {
		return "", err
	}
	return r.outputDir, nil
}
