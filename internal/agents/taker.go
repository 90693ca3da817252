package agents

import (
	"marketsim/internal/simrng"
	"marketsim/internal/simtypes"
)

// TakerConfig configures a Poisson-timed aggressive trader.
type TakerConfig struct {
	Intensity       float64 // events per microsecond
	SideBias        float64 // P(side == BUY)
	QuantityMean    float64
	QuantityStd     float64
	UseMarketOrders bool
}

// DefaultTakerConfig returns the reference parameters used to reproduce
// the documented example runs.
func DefaultTakerConfig() TakerConfig {
	return TakerConfig{
		Intensity:       0.8,
		SideBias:        0.5,
		QuantityMean:    40,
		QuantityStd:     10,
		UseMarketOrders: true,
	}
}

// Taker submits aggressive orders at Poisson-distributed intervals, either
// as MARKET orders or as LIMIT orders priced one tick past the spread.
type Taker struct {
	id     simtypes.OrderID
	name   string
	config TakerConfig
	rng    *simrng.RNG

	inventory     simtypes.Qty
	pnl           float64
	nextOrderTime simtypes.Timestamp
}

// NewTaker builds a Taker with the given id, display name, config, and
// shared RNG stream.
func NewTaker(id simtypes.OrderID, name string, config TakerConfig, rng *simrng.RNG) *Taker {
	t := &Taker{id: id, name: name, config: config, rng: rng}
	t.Reset()
	return t
}

func (t *Taker) ID() simtypes.OrderID  { return t.id }
func (t *Taker) Name() string          { return t.name }
func (t *Taker) PnL() float64          { return t.pnl }
func (t *Taker) Inventory() simtypes.Qty { return t.inventory }

// Reset clears inventory, pnl, and the next-order schedule.
func (t *Taker) Reset() {
	t.inventory = 0
	t.pnl = 0
	t.nextOrderTime = 0
}

// Step fires once ts reaches the scheduled next order time, then draws the
// next inter-arrival from an exponential distribution parameterized by
// Intensity (events/us), converted to nanoseconds.
func (t *Taker) Step(ts simtypes.Timestamp) []simtypes.Event {
	if ts < t.nextOrderTime {
		return nil
	}

	quantity := t.generateQuantity()
	side := t.generateSide()
	orderID := simtypes.OrderID(ts) + t.id

	var event simtypes.Event
	if t.config.UseMarketOrders {
		event = simtypes.Event{Type: simtypes.EventMarket, OrderID: orderID, Side: side, Quantity: quantity, Timestamp: ts, AgentID: t.id}
	} else {
		price := t.generateAggressivePrice(side)
		event = simtypes.Event{Type: simtypes.EventLimit, OrderID: orderID, Side: side, Price: price, Quantity: quantity, Timestamp: ts, AgentID: t.id}
	}

	t.nextOrderTime = t.calculateNextOrderTime(ts)
	return []simtypes.Event{event}
}

func (t *Taker) calculateNextOrderTime(ts simtypes.Timestamp) simtypes.Timestamp {
	interArrival := t.rng.Exponential(t.config.Intensity)
	return ts + simtypes.Timestamp(round(interArrival*1e6))
}

func (t *Taker) generateQuantity() simtypes.Qty {
	q := t.rng.Normal(t.config.QuantityMean, t.config.QuantityStd)
	rounded := simtypes.Qty(round(q))
	if rounded < 1 {
		return 1
	}
	return rounded
}

func (t *Taker) generateSide() simtypes.Side {
	if t.rng.Bernoulli(t.config.SideBias) {
		return simtypes.Buy
	}
	return simtypes.Sell
}

// generateAggressivePrice quotes one tick past the reference spread so the
// limit crosses immediately: a buy at ask+1, a sell at bid-1.
func (t *Taker) generateAggressivePrice(side simtypes.Side) simtypes.Price {
	const referenceBid simtypes.Price = 10000
	const referenceAsk simtypes.Price = 10002
	if side == simtypes.Buy {
		return referenceAsk + 1
	}
	return referenceBid - 1
}

// OnTrade applies a simplified always-pay accounting: a trade whose TakerID
// equals this agent's id reduces pnl by quantity*price. TakerID is an order
// id (timestamp + agent id), so this matches only the order placed at
// timestamp 0; other fills of this agent's orders leave pnl unchanged.
// Inventory is not tracked for takers in the reference behavior.
func (t *Taker) OnTrade(trade simtypes.Trade) {
	if trade.TakerID != t.id {
		return
	}
	t.pnl -= float64(trade.Quantity) * float64(trade.Price)
}

func round(v float64) float64 {
	if v < 0 {
		return -roundPositive(-v)
	}
	return roundPositive(v)
}

func roundPositive(v float64) float64 {
	return float64(int64(v + 0.5))
}
