package book

import "marketsim/internal/simtypes"

// TradeCallback is invoked synchronously for every trade produced while
// processing an event.
type TradeCallback func(simtypes.Trade)

// OrderCallback is invoked synchronously whenever a limit order is
// accepted onto the book.
type OrderCallback func(simtypes.Order)

// MatchingEngine dispatches {LIMIT, MARKET, CANCEL} events against a
// single OrderBook. It is stateless beyond the book and its callbacks —
// business-level failures (bad price/qty, unknown cancel id) are silent
// no-ops, never errors.
type MatchingEngine struct {
	book          *OrderBook
	tradeCallback TradeCallback
	orderCallback OrderCallback

	// ReproduceSourceHazards, when true, passes the opposite of the
	// crossing limit order's side to AddMarketOrder, so the market-pass
	// walks the side the limit just rested on instead of the true resting
	// liquidity, byte-matching the original engine's
	// known-defective cross path (including its self-match potential).
	// Default false: the market-pass walks the genuine opposite side of
	// the book (AddMarketOrder(side) consumes asks for a Buy, bids for a
	// Sell — so a crossing Buy passes side=Buy to reach the resting asks).
	ReproduceSourceHazards bool
}

// NewMatchingEngine builds an engine over a fresh order book.
func NewMatchingEngine() *MatchingEngine {
	return &MatchingEngine{book: NewOrderBook()}
}

// Book exposes the underlying order book for read-only observation.
func (m *MatchingEngine) Book() *OrderBook {
	return m.book
}

// SetTradeCallback installs fn to be called for every trade produced
// during ProcessEvent.
func (m *MatchingEngine) SetTradeCallback(fn TradeCallback) {
	m.tradeCallback = fn
}

// SetOrderCallback installs fn to be called whenever a limit order is
// accepted onto the book.
func (m *MatchingEngine) SetOrderCallback(fn OrderCallback) {
	m.orderCallback = fn
}

// ProcessEvent dispatches a single event and returns the trades it
// produced in match order (best price first, FIFO within price). Cancels
// and unknown event types produce no trades (a nil slice).
func (m *MatchingEngine) ProcessEvent(e simtypes.Event) []simtypes.Trade {
	switch e.Type {
	case simtypes.EventLimit:
		return m.dispatchLimit(e)
	case simtypes.EventMarket:
		return m.dispatchMarket(e)
	case simtypes.EventCancel:
		m.book.CancelOrder(e.OrderID)
		return nil
	default:
		return nil
	}
}

// ProcessEvents concatenates the per-event trade lists in input order.
func (m *MatchingEngine) ProcessEvents(events []simtypes.Event) []simtypes.Trade {
	var all []simtypes.Trade
	for _, e := range events {
		all = append(all, m.ProcessEvent(e)...)
	}
	return all
}

// dispatchLimit builds an Order from the event, rests it, fires the order
// callback, and then — if the limit crosses the book — sends a market
// order for the event's *full* quantity against the opposite side, even
// though that same quantity is already resting on the book: the resting
// copy is never reduced or pulled to account for what the market-pass
// fills. A correct CLOB would match first and rest only the unfilled
// residual; this reuses the full quantity as specified instead.
func (m *MatchingEngine) dispatchLimit(e simtypes.Event) []simtypes.Trade {
	order := simtypes.NewOrder(e.OrderID, e.Side, e.Price, e.Quantity, e.Timestamp)

	if !m.book.AddLimitOrder(order) {
		return nil
	}
	if m.orderCallback != nil {
		m.orderCallback(order)
	}

	marketSide := e.Side
	if m.ReproduceSourceHazards {
		marketSide = e.Side.Opposite()
	}

	var trades []simtypes.Trade
	if e.Side == simtypes.Buy {
		if askPrice, ok := m.book.BestAskPrice(); ok && e.Price >= askPrice {
			trades = m.book.AddMarketOrder(marketSide, e.Quantity, e.OrderID, e.Timestamp)
		}
	} else {
		if bidPrice, ok := m.book.BestBidPrice(); ok && e.Price <= bidPrice {
			trades = m.book.AddMarketOrder(marketSide, e.Quantity, e.OrderID, e.Timestamp)
		}
	}

	m.fireTrades(trades)
	return trades
}

func (m *MatchingEngine) dispatchMarket(e simtypes.Event) []simtypes.Trade {
	trades := m.book.AddMarketOrder(e.Side, e.Quantity, e.OrderID, e.Timestamp)
	m.fireTrades(trades)
	return trades
}

func (m *MatchingEngine) fireTrades(trades []simtypes.Trade) {
	if m.tradeCallback == nil {
		return
	}
	for _, t := range trades {
		m.tradeCallback(t)
	}
}

// Clear resets the underlying book to empty.
func (m *MatchingEngine) Clear() {
	m.book.Clear()
}
