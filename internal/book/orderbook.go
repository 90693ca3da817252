package book

import (
	"github.com/google/btree"

	"marketsim/internal/simtypes"
)

// bidItem orders price levels highest-first for the bid tree.
type bidItem struct{ level *priceLevel }

func (b *bidItem) Less(than btree.Item) bool {
	return b.level.price > than.(*bidItem).level.price
}

// askItem orders price levels lowest-first for the ask tree.
type askItem struct{ level *priceLevel }

func (a *askItem) Less(than btree.Item) bool {
	return a.level.price < than.(*askItem).level.price
}

const treeDegree = 32

// location is the secondary index entry for a resting order: which side
// and price level it lives in.
type location struct {
	price simtypes.Price
	side  simtypes.Side
}

// OrderBook holds two price-indexed B-trees of FIFO price levels (bids
// descending, asks ascending) plus a secondary id -> location index that
// makes cancels O(log N) instead of a full book scan.
type OrderBook struct {
	bids  *btree.BTree
	asks  *btree.BTree
	index map[simtypes.OrderID]location

	orderCount     int
	lastTradePrice simtypes.Price
	totalVolume    simtypes.Qty
	tradeCount     int64
}

// NewOrderBook builds an empty order book.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids:  btree.New(treeDegree),
		asks:  btree.New(treeDegree),
		index: make(map[simtypes.OrderID]location),
	}
}

// AddLimitOrder rejects invalid price/quantity without side effects;
// otherwise it rests the order in its price level, creating the level if
// absent, and registers it in the secondary index. It never matches — the
// matching engine layer detects a crossing limit and dispatches the taker
// side itself.
func (ob *OrderBook) AddLimitOrder(o simtypes.Order) bool {
	if !simtypes.IsValidPrice(o.Price) || !simtypes.IsValidQuantity(o.Quantity) {
		return false
	}

	stored := o
	if o.Side == simtypes.Buy {
		level := ob.getOrCreateBidLevel(o.Price)
		level.addOrder(&stored)
	} else {
		level := ob.getOrCreateAskLevel(o.Price)
		level.addOrder(&stored)
	}

	ob.index[o.ID] = location{price: o.Price, side: o.Side}
	ob.orderCount++
	return true
}

func (ob *OrderBook) getOrCreateBidLevel(price simtypes.Price) *priceLevel {
	probe := &bidItem{level: &priceLevel{price: price}}
	if existing := ob.bids.Get(probe); existing != nil {
		return existing.(*bidItem).level
	}
	level := newPriceLevel(price)
	ob.bids.ReplaceOrInsert(&bidItem{level: level})
	return level
}

func (ob *OrderBook) getOrCreateAskLevel(price simtypes.Price) *priceLevel {
	probe := &askItem{level: &priceLevel{price: price}}
	if existing := ob.asks.Get(probe); existing != nil {
		return existing.(*askItem).level
	}
	level := newPriceLevel(price)
	ob.asks.ReplaceOrInsert(&askItem{level: level})
	return level
}

func (ob *OrderBook) bidLevelAt(price simtypes.Price) *priceLevel {
	if item := ob.bids.Get(&bidItem{level: &priceLevel{price: price}}); item != nil {
		return item.(*bidItem).level
	}
	return nil
}

func (ob *OrderBook) askLevelAt(price simtypes.Price) *priceLevel {
	if item := ob.asks.Get(&askItem{level: &priceLevel{price: price}}); item != nil {
		return item.(*askItem).level
	}
	return nil
}

// AddMarketOrder walks the opposite side in price-priority order, consuming
// resting liquidity until either qty is exhausted or the opposing side
// runs dry. Excess quantity is silently dropped: market orders never rest.
func (ob *OrderBook) AddMarketOrder(side simtypes.Side, qty simtypes.Qty, takerID simtypes.OrderID, ts simtypes.Timestamp) []simtypes.Trade {
	if side == simtypes.Buy {
		return ob.matchAgainst(ob.asks, func(p simtypes.Price) *priceLevel { return ob.askLevelAt(p) }, qty, takerID, ts)
	}
	return ob.matchAgainst(ob.bids, func(p simtypes.Price) *priceLevel { return ob.bidLevelAt(p) }, qty, takerID, ts)
}

// matchAgainst consumes resting liquidity from tree (already ordered by
// price priority via its Less comparator) until remaining reaches zero or
// the tree is exhausted.
func (ob *OrderBook) matchAgainst(tree *btree.BTree, levelAt func(simtypes.Price) *priceLevel, qty simtypes.Qty, takerID simtypes.OrderID, ts simtypes.Timestamp) []simtypes.Trade {
	var trades []simtypes.Trade
	remaining := qty

	for remaining > 0 {
		min := tree.Min()
		if min == nil {
			break
		}
		price := levelPrice(min)
		level := levelAt(price)
		if level == nil || level.empty() {
			tree.Delete(min)
			continue
		}

		for remaining > 0 && !level.empty() {
			fullyConsumed, filled := level.consumeOrder(remaining)
			remaining -= filled.Quantity

			trades = append(trades, simtypes.Trade{
				MakerID:   filled.ID,
				TakerID:   takerID,
				Price:     price,
				Quantity:  filled.Quantity,
				Timestamp: ts,
			})

			ob.lastTradePrice = price
			ob.totalVolume += filled.Quantity
			ob.tradeCount++

			if fullyConsumed {
				delete(ob.index, filled.ID)
				ob.orderCount--
			}
		}

		if level.empty() {
			tree.Delete(min)
		}
	}

	return trades
}

func levelPrice(item btree.Item) simtypes.Price {
	switch v := item.(type) {
	case *bidItem:
		return v.level.price
	case *askItem:
		return v.level.price
	default:
		return 0
	}
}

// CancelOrder removes a resting order by id. It is a silent no-op for
// unknown ids.
func (ob *OrderBook) CancelOrder(id simtypes.OrderID) bool {
	loc, ok := ob.index[id]
	if !ok {
		return false
	}

	var level *priceLevel
	var tree *btree.BTree
	var probe btree.Item
	if loc.side == simtypes.Buy {
		level = ob.bidLevelAt(loc.price)
		tree = ob.bids
		probe = &bidItem{level: &priceLevel{price: loc.price}}
	} else {
		level = ob.askLevelAt(loc.price)
		tree = ob.asks
		probe = &askItem{level: &priceLevel{price: loc.price}}
	}
	if level == nil {
		delete(ob.index, id)
		return false
	}

	found, _ := level.removeOrder(id)
	if !found {
		return false
	}
	delete(ob.index, id)
	ob.orderCount--

	if level.empty() {
		tree.Delete(probe)
	}
	return true
}

// BestBidPrice returns the highest resting bid price, if any.
func (ob *OrderBook) BestBidPrice() (simtypes.Price, bool) {
	min := ob.bids.Min()
	if min == nil {
		return 0, false
	}
	return min.(*bidItem).level.price, true
}

// BestBidQuantity returns the aggregate quantity at the best bid, if any.
func (ob *OrderBook) BestBidQuantity() (simtypes.Qty, bool) {
	min := ob.bids.Min()
	if min == nil {
		return 0, false
	}
	return min.(*bidItem).level.totalQuantity(), true
}

// BestAskPrice returns the lowest resting ask price, if any.
func (ob *OrderBook) BestAskPrice() (simtypes.Price, bool) {
	min := ob.asks.Min()
	if min == nil {
		return 0, false
	}
	return min.(*askItem).level.price, true
}

// BestAskQuantity returns the aggregate quantity at the best ask, if any.
func (ob *OrderBook) BestAskQuantity() (simtypes.Qty, bool) {
	min := ob.asks.Min()
	if min == nil {
		return 0, false
	}
	return min.(*askItem).level.totalQuantity(), true
}

// TopOfBook builds a MarketSnapshot from the best bid/ask accessors plus
// the last trade price; missing sides report 0.
func (ob *OrderBook) TopOfBook(ts simtypes.Timestamp) simtypes.MarketSnapshot {
	bidPrice, _ := ob.BestBidPrice()
	bidQty, _ := ob.BestBidQuantity()
	askPrice, _ := ob.BestAskPrice()
	askQty, _ := ob.BestAskQuantity()

	return simtypes.MarketSnapshot{
		BestBid:        bidPrice,
		BestAsk:        askPrice,
		BestBidQty:     bidQty,
		BestAskQty:     askQty,
		LastTradePrice: ob.lastTradePrice,
		Timestamp:      ts,
	}
}

// GetDepth returns up to n bid rows (descending price) followed by up to n
// ask rows (ascending price).
func (ob *OrderBook) GetDepth(n int) []simtypes.PriceLevelRow {
	if n <= 0 {
		return nil
	}

	rows := make([]simtypes.PriceLevelRow, 0, n*2)

	count := 0
	ob.bids.Ascend(func(item btree.Item) bool {
		if count >= n {
			return false
		}
		lvl := item.(*bidItem).level
		rows = append(rows, simtypes.PriceLevelRow{Price: lvl.price, BidQuantity: lvl.totalQuantity()})
		count++
		return true
	})

	count = 0
	ob.asks.Ascend(func(item btree.Item) bool {
		if count >= n {
			return false
		}
		lvl := item.(*askItem).level
		rows = append(rows, simtypes.PriceLevelRow{Price: lvl.price, AskQuantity: lvl.totalQuantity()})
		count++
		return true
	})

	return rows
}

// GetOrder returns a copy of a resting order by id.
func (ob *OrderBook) GetOrder(id simtypes.OrderID) (simtypes.Order, bool) {
	loc, ok := ob.index[id]
	if !ok {
		return simtypes.Order{}, false
	}

	var level *priceLevel
	if loc.side == simtypes.Buy {
		level = ob.bidLevelAt(loc.price)
	} else {
		level = ob.askLevelAt(loc.price)
	}
	if level == nil {
		return simtypes.Order{}, false
	}
	for _, o := range level.snapshotOrders() {
		if o.ID == id {
			return o, true
		}
	}
	return simtypes.Order{}, false
}

// Size returns the number of resting orders, equal to |order_index|.
func (ob *OrderBook) Size() int {
	return ob.orderCount
}

// LastTradePrice returns the price of the most recent trade, or 0 if none.
func (ob *OrderBook) LastTradePrice() simtypes.Price {
	return ob.lastTradePrice
}

// TotalVolume returns cumulative traded quantity.
func (ob *OrderBook) TotalVolume() simtypes.Qty {
	return ob.totalVolume
}

// TradeCount returns the number of trades produced so far.
func (ob *OrderBook) TradeCount() int64 {
	return ob.tradeCount
}

// Clear drops all book state and resets statistics to zero.
func (ob *OrderBook) Clear() {
	ob.bids = btree.New(treeDegree)
	ob.asks = btree.New(treeDegree)
	ob.index = make(map[simtypes.OrderID]location)
	ob.orderCount = 0
	ob.lastTradePrice = 0
	ob.totalVolume = 0
	ob.tradeCount = 0
}
