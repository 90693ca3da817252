// Package agents implements the stochastic trading population that drives
// the simulator: MarketMaker, Taker, and NoiseTrader. All of them are handed
// a single shared RNG stream (the MarketMaker holds it but does not draw
// from it), so a fixed seed and agent population reproduce a fixed sequence
// of emitted events.
package agents

import "marketsim/internal/simtypes"

// Agent is the capability set every trading strategy implements: emit
// events for a timestamp, observe trades, and report read-only state.
type Agent interface {
	Step(ts simtypes.Timestamp) []simtypes.Event
	OnTrade(trade simtypes.Trade)
	Reset()

	ID() simtypes.OrderID
	Name() string
	PnL() float64
	Inventory() simtypes.Qty
}
