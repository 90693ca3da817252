package simengine

import "marketsim/internal/simtypes"

// AgentPnLSample is one point-in-time read of an agent's pnl/inventory.
type AgentPnLSample struct {
	AgentID   simtypes.OrderID
	Timestamp simtypes.Timestamp
	PnL       float64
	Inventory simtypes.Qty
}

// Collector accumulates trades, market snapshots, and agent pnl samples
// over the lifetime of a run. It is independent of Simulator: tests and
// alternative drivers can record into one directly.
type Collector struct {
	trades    []simtypes.Trade
	snapshots []simtypes.MarketSnapshot
	agentPnL  []AgentPnLSample
}

// NewCollector builds an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordTrade appends trade to the trade log.
func (c *Collector) RecordTrade(trade simtypes.Trade) {
	c.trades = append(c.trades, trade)
}

// RecordSnapshot appends snapshot to the market snapshot log.
func (c *Collector) RecordSnapshot(snapshot simtypes.MarketSnapshot) {
	c.snapshots = append(c.snapshots, snapshot)
}

// RecordAgentPnL appends a per-agent pnl/inventory sample.
func (c *Collector) RecordAgentPnL(agentID simtypes.OrderID, ts simtypes.Timestamp, pnl float64, inventory simtypes.Qty) {
	c.agentPnL = append(c.agentPnL, AgentPnLSample{AgentID: agentID, Timestamp: ts, PnL: pnl, Inventory: inventory})
}

// Clear drops every recorded sample.
func (c *Collector) Clear() {
	c.trades = nil
	c.snapshots = nil
	c.agentPnL = nil
}

// Trades returns the recorded trade log in recording order.
func (c *Collector) Trades() []simtypes.Trade { return c.trades }

// Snapshots returns the recorded market snapshots in recording order.
func (c *Collector) Snapshots() []simtypes.MarketSnapshot { return c.snapshots }

// AgentPnL returns the recorded per-agent pnl samples in recording order.
func (c *Collector) AgentPnL() []AgentPnLSample { return c.agentPnL }
