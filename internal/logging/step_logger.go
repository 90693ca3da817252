package logging

import "marketsim/internal/simtypes"

// StepAdapter implements simengine.StepLogger over the package Logger,
// emitting one debug-level record per simulation step.
type StepAdapter struct{}

// LogStep records one simulation step at debug level.
func (StepAdapter) LogStep(step int, ts simtypes.Timestamp, eventsEmitted, tradesProduced int) {
	Logger.Debug().
		Int("step", step).
		Int64("timestamp", ts).
		Int("events_emitted", eventsEmitted).
		Int("trades_produced", tradesProduced).
		Msg("simulation step")
}
