package agents

import (
	"marketsim/internal/simrng"
	"marketsim/internal/simtypes"
)

// NoiseTraderConfig configures a random limit-and-cancel trader.
type NoiseTraderConfig struct {
	LimitIntensity    float64 // events per microsecond
	CancelIntensity   float64 // events per microsecond
	QuantityMean      float64
	QuantityStd       float64
	PriceVolatility   float64
	CancelProbability float64
}

// DefaultNoiseTraderConfig returns the reference parameters used to
// reproduce the documented example runs.
func DefaultNoiseTraderConfig() NoiseTraderConfig {
	return NoiseTraderConfig{
		LimitIntensity:    1.5,
		CancelIntensity:   0.7,
		QuantityMean:      30,
		QuantityStd:       8,
		PriceVolatility:   5,
		CancelProbability: 0.3,
	}
}

// NoiseTrader places uniformly random-sided limit orders around a
// reference price on one Poisson schedule and cancels a uniformly random
// one of its own resting orders on an independent Poisson schedule.
type NoiseTrader struct {
	id     simtypes.OrderID
	name   string
	config NoiseTraderConfig
	rng    *simrng.RNG

	inventory simtypes.Qty
	pnl       float64

	nextLimitTime  simtypes.Timestamp
	nextCancelTime simtypes.Timestamp
	referencePrice simtypes.Price

	activeOrders   map[simtypes.OrderID]simtypes.Order
	activeOrderIDs []simtypes.OrderID
}

// NewNoiseTrader builds a NoiseTrader with the given id, display name,
// config, and shared RNG stream.
func NewNoiseTrader(id simtypes.OrderID, name string, config NoiseTraderConfig, rng *simrng.RNG) *NoiseTrader {
	n := &NoiseTrader{id: id, name: name, config: config, rng: rng}
	n.Reset()
	return n
}

func (n *NoiseTrader) ID() simtypes.OrderID  { return n.id }
func (n *NoiseTrader) Name() string          { return n.name }
func (n *NoiseTrader) PnL() float64          { return n.pnl }
func (n *NoiseTrader) Inventory() simtypes.Qty { return n.inventory }

// Reset clears inventory, pnl, both schedules, and the resting-order book.
func (n *NoiseTrader) Reset() {
	n.inventory = 0
	n.pnl = 0
	n.nextLimitTime = 0
	n.nextCancelTime = 0
	n.referencePrice = 10000
	n.activeOrders = make(map[simtypes.OrderID]simtypes.Order)
	n.activeOrderIDs = nil
}

// Step independently checks the limit-placement and cancellation
// schedules, emitting at most one LIMIT and one CANCEL per call.
func (n *NoiseTrader) Step(ts simtypes.Timestamp) []simtypes.Event {
	var events []simtypes.Event

	if ts >= n.nextLimitTime {
		events = append(events, n.placeLimitOrder(ts))
		n.nextLimitTime = n.calculateNextLimitTime(ts)
	}

	if ts >= n.nextCancelTime {
		if ev, ok := n.maybeCancelRandomOrder(ts); ok {
			events = append(events, ev)
		}
		n.nextCancelTime = n.calculateNextCancelTime(ts)
	}

	return events
}

func (n *NoiseTrader) placeLimitOrder(ts simtypes.Timestamp) simtypes.Event {
	quantity := n.generateQuantity()
	side := n.generateSide()
	price := n.generatePrice()
	orderID := simtypes.OrderID(ts) + n.id + simtypes.OrderID(n.rng.UniformInt(0, 1000))

	order := simtypes.NewOrder(orderID, side, price, quantity, ts)
	n.activeOrders[orderID] = order
	n.activeOrderIDs = append(n.activeOrderIDs, orderID)

	return simtypes.Event{Type: simtypes.EventLimit, OrderID: orderID, Side: side, Price: price, Quantity: quantity, Timestamp: ts, AgentID: n.id}
}

func (n *NoiseTrader) maybeCancelRandomOrder(ts simtypes.Timestamp) (simtypes.Event, bool) {
	if len(n.activeOrderIDs) == 0 {
		return simtypes.Event{}, false
	}
	if !n.rng.Bernoulli(n.config.CancelProbability) {
		return simtypes.Event{}, false
	}

	idx := n.rng.ChooseInt(len(n.activeOrderIDs))
	orderID := n.activeOrderIDs[idx]
	n.removeActiveOrder(idx)

	return simtypes.Event{Type: simtypes.EventCancel, OrderID: orderID, Timestamp: ts, AgentID: n.id}, true
}

func (n *NoiseTrader) removeActiveOrder(idx int) {
	id := n.activeOrderIDs[idx]
	n.activeOrderIDs = append(n.activeOrderIDs[:idx], n.activeOrderIDs[idx+1:]...)
	delete(n.activeOrders, id)
}

func (n *NoiseTrader) calculateNextLimitTime(ts simtypes.Timestamp) simtypes.Timestamp {
	interArrival := n.rng.Exponential(n.config.LimitIntensity)
	return ts + simtypes.Timestamp(round(interArrival*1e6))
}

func (n *NoiseTrader) calculateNextCancelTime(ts simtypes.Timestamp) simtypes.Timestamp {
	interArrival := n.rng.Exponential(n.config.CancelIntensity)
	return ts + simtypes.Timestamp(round(interArrival*1e6))
}

func (n *NoiseTrader) generateQuantity() simtypes.Qty {
	q := n.rng.Normal(n.config.QuantityMean, n.config.QuantityStd)
	rounded := simtypes.Qty(round(q))
	if rounded < 1 {
		return 1
	}
	return rounded
}

func (n *NoiseTrader) generateSide() simtypes.Side {
	if n.rng.Bernoulli(0.5) {
		return simtypes.Buy
	}
	return simtypes.Sell
}

func (n *NoiseTrader) generatePrice() simtypes.Price {
	offset := n.rng.Normal(0, n.config.PriceVolatility)
	price := n.referencePrice + simtypes.Price(round(offset))
	if price < 1 {
		return 1
	}
	return price
}

// OnTrade looks up whether the trade's maker order belongs to this
// trader's own resting book; if so it updates inventory and pnl and drops
// the order (filled, whether fully or partially rested-on, is removed
// from local tracking the same way a cancel would remove it).
func (n *NoiseTrader) OnTrade(trade simtypes.Trade) {
	order, ok := n.activeOrders[trade.MakerID]
	if !ok {
		return
	}

	if order.Side == simtypes.Buy {
		n.inventory += trade.Quantity
		n.pnl -= float64(trade.Quantity) * float64(trade.Price)
	} else {
		n.inventory -= trade.Quantity
		n.pnl += float64(trade.Quantity) * float64(trade.Price)
	}

	delete(n.activeOrders, trade.MakerID)
	for i, id := range n.activeOrderIDs {
		if id == trade.MakerID {
			n.activeOrderIDs = append(n.activeOrderIDs[:i], n.activeOrderIDs[i+1:]...)
			break
		}
	}
}
