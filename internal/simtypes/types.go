// Package simtypes defines the immutable value types shared by the order
// book, matching engine, agents, and simulator: sides, event kinds, orders,
// trades, price levels, and market snapshots.
package simtypes

// Side is the direction of an order.
type Side uint8

const (
	// Buy indicates a bid order.
	Buy Side = iota
	// Sell indicates an ask order.
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// EventType is the kind of input accepted by the matching engine.
type EventType uint8

const (
	// EventLimit rests on the book until filled or canceled.
	EventLimit EventType = iota
	// EventMarket executes immediately against resting liquidity.
	EventMarket
	// EventCancel removes a resting order by id.
	EventCancel
)

func (t EventType) String() string {
	switch t {
	case EventLimit:
		return "LIMIT"
	case EventMarket:
		return "MARKET"
	case EventCancel:
		return "CANCEL"
	default:
		return "UNKNOWN"
	}
}

// OrderID uniquely identifies an order across the lifetime of a book.
type OrderID = uint64

// Price is expressed in integer ticks.
type Price = int64

// Qty is expressed in integer lots.
type Qty = int64

// Timestamp is a signed nanosecond counter, monotonically advanced by the
// simulator.
type Timestamp = int64

// Order is a resting or incoming request to trade. Quantity may be
// decreased in place by the matching engine during partial consumption;
// identity is carried by ID alone.
type Order struct {
	ID        OrderID
	Side      Side
	Price     Price
	Quantity  Qty
	Timestamp Timestamp
}

// NewOrder builds an Order from its positional fields.
func NewOrder(id OrderID, side Side, price Price, quantity Qty, ts Timestamp) Order {
	return Order{ID: id, Side: side, Price: price, Quantity: quantity, Timestamp: ts}
}

// Trade is a single fill between a maker and a taker. Trades are created
// exclusively by the matching engine and are never mutated afterward.
type Trade struct {
	MakerID   OrderID
	TakerID   OrderID
	Price     Price
	Quantity  Qty
	Timestamp Timestamp
}

// Event is the value-typed input to the matching engine. For EventMarket,
// Price is ignored. For EventCancel, Side/Price/Quantity are ignored; only
// OrderID matters.
type Event struct {
	Type      EventType
	OrderID   OrderID
	Side      Side
	Price     Price
	Quantity  Qty
	Timestamp Timestamp
	AgentID   OrderID
}

// PriceLevelRow is one row of aggregated depth: exactly one of BidQuantity
// or AskQuantity is non-zero.
type PriceLevelRow struct {
	Price       Price
	BidQuantity Qty
	AskQuantity Qty
}

// MarketSnapshot is top-of-book state at a point in time. When a side is
// empty its price/quantity are reported as 0.
type MarketSnapshot struct {
	BestBid        Price
	BestAsk        Price
	BestBidQty     Qty
	BestAskQty     Qty
	LastTradePrice Price
	Timestamp      Timestamp
}

// IsValidPrice reports whether p is usable as a limit price.
func IsValidPrice(p Price) bool {
	return p > 0
}

// IsValidQuantity reports whether q is usable as an order quantity.
func IsValidQuantity(q Qty) bool {
	return q > 0
}

// MidPrice returns (bid+ask)/2 when both sides are quoted, else 0.
func MidPrice(bid, ask Price) Price {
	if bid > 0 && ask > 0 {
		return (bid + ask) / 2
	}
	return 0
}

// Spread returns ask-bid when both sides are quoted, else 0.
func Spread(bid, ask Price) Price {
	if bid > 0 && ask > 0 {
		return ask - bid
	}
	return 0
}
