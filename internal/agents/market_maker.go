package agents

import (
	"marketsim/internal/simrng"
	"marketsim/internal/simtypes"
)

// MarketMakerConfig configures a two-sided quoter.
type MarketMakerConfig struct {
	Spread           simtypes.Price // total quoted spread in ticks
	Quantity         simtypes.Qty
	RefreshInterval  simtypes.Timestamp // ns between quote refreshes
	MaxInventory     simtypes.Qty
	InventoryPenalty float64
}

// referenceMidPrice is the fixed placeholder mid the reference behavior
// quotes around; a real deployment would read this from the book.
const referenceMidPrice simtypes.Price = 10000

// DefaultMarketMakerConfig returns the reference parameters used to
// reproduce the documented example runs.
func DefaultMarketMakerConfig() MarketMakerConfig {
	return MarketMakerConfig{
		Spread:           2,
		Quantity:         50,
		RefreshInterval:  50_000,
		MaxInventory:     1000,
		InventoryPenalty: 0.001,
	}
}

// MarketMaker posts a two-sided quote around a fixed mid price, refreshing
// it every RefreshInterval and shading one side toward the mid (the ask
// when long, the bid when short) when its inventory drifts past half of
// MaxInventory.
type MarketMaker struct {
	id     simtypes.OrderID
	name   string
	config MarketMakerConfig
	rng    *simrng.RNG

	inventory simtypes.Qty
	pnl       float64

	lastRefresh simtypes.Timestamp
	currentBid  simtypes.Price
	currentAsk  simtypes.Price
	bidOrderID  simtypes.OrderID
	askOrderID  simtypes.OrderID
}

// NewMarketMaker builds a MarketMaker with the given id, display name, and
// config. The RNG is accepted for interface symmetry with the other agents;
// this strategy does not currently draw from it.
func NewMarketMaker(id simtypes.OrderID, name string, config MarketMakerConfig, rng *simrng.RNG) *MarketMaker {
	m := &MarketMaker{id: id, name: name, config: config, rng: rng}
	m.Reset()
	return m
}

func (m *MarketMaker) ID() simtypes.OrderID  { return m.id }
func (m *MarketMaker) Name() string          { return m.name }
func (m *MarketMaker) PnL() float64          { return m.pnl }
func (m *MarketMaker) Inventory() simtypes.Qty { return m.inventory }

// Reset clears inventory, pnl, and outstanding quote bookkeeping. The
// refresh clock is set one interval in the past so the first Step after a
// reset posts a quote immediately.
func (m *MarketMaker) Reset() {
	m.inventory = 0
	m.pnl = 0
	m.lastRefresh = -m.config.RefreshInterval
	m.currentBid = 0
	m.currentAsk = 0
	m.bidOrderID = 0
	m.askOrderID = 0
}

// Step recomputes the quote around the mid price and, once RefreshInterval
// has elapsed since the last refresh, cancels the outstanding pair and
// posts a fresh one.
func (m *MarketMaker) Step(ts simtypes.Timestamp) []simtypes.Event {
	mid := referenceMidPrice
	m.updateQuotes(mid)

	if ts-m.lastRefresh < m.config.RefreshInterval {
		return nil
	}

	var events []simtypes.Event
	events = append(events, m.cancelOldOrders(ts)...)
	events = append(events, m.placeNewOrders(ts)...)
	m.lastRefresh = ts
	return events
}

// updateQuotes centers the quote on mid with the configured spread, then
// skews it when |inventory| exceeds half of MaxInventory: a long book
// lowers the ask to encourage selling, a short book raises the bid to
// encourage buying.
func (m *MarketMaker) updateQuotes(mid simtypes.Price) {
	halfSpread := m.config.Spread / 2
	m.currentBid = mid - halfSpread
	m.currentAsk = mid + halfSpread

	if abs(m.inventory) > m.config.MaxInventory/2 {
		if m.inventory > 0 {
			m.currentAsk -= halfSpread / 2
		} else {
			m.currentBid += halfSpread / 2
		}
	}
}

func (m *MarketMaker) cancelOldOrders(ts simtypes.Timestamp) []simtypes.Event {
	var events []simtypes.Event
	if m.bidOrderID > 0 {
		events = append(events, simtypes.Event{Type: simtypes.EventCancel, OrderID: m.bidOrderID, Side: simtypes.Buy, Timestamp: ts, AgentID: m.id})
		m.bidOrderID = 0
	}
	if m.askOrderID > 0 {
		events = append(events, simtypes.Event{Type: simtypes.EventCancel, OrderID: m.askOrderID, Side: simtypes.Sell, Timestamp: ts, AgentID: m.id})
		m.askOrderID = 0
	}
	return events
}

func (m *MarketMaker) placeNewOrders(ts simtypes.Timestamp) []simtypes.Event {
	m.bidOrderID = simtypes.OrderID(ts) + m.id
	m.askOrderID = simtypes.OrderID(ts) + m.id + 1

	return []simtypes.Event{
		{Type: simtypes.EventLimit, OrderID: m.bidOrderID, Side: simtypes.Buy, Price: m.currentBid, Quantity: m.config.Quantity, Timestamp: ts, AgentID: m.id},
		{Type: simtypes.EventLimit, OrderID: m.askOrderID, Side: simtypes.Sell, Price: m.currentAsk, Quantity: m.config.Quantity, Timestamp: ts, AgentID: m.id},
	}
}

// OnTrade updates inventory and pnl when one of the remembered quote legs
// is hit. The sign convention below is deliberately reproduced from the
// reference behavior: a filled bid (a purchase) increases pnl and a filled
// ask (a sale) decreases it, which is backwards from standard maker
// accounting. Every trade also pays an inventory-proportional penalty.
func (m *MarketMaker) OnTrade(trade simtypes.Trade) {
	switch trade.MakerID {
	case m.bidOrderID:
		m.inventory -= trade.Quantity
		m.pnl += float64(trade.Quantity) * float64(trade.Price)
		m.bidOrderID = 0
	case m.askOrderID:
		m.inventory += trade.Quantity
		m.pnl -= float64(trade.Quantity) * float64(trade.Price)
		m.askOrderID = 0
	}

	m.pnl -= float64(abs(m.inventory)) * m.config.InventoryPenalty
}

func abs(q simtypes.Qty) simtypes.Qty {
	if q < 0 {
		return -q
	}
	return q
}
