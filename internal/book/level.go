package book

import "marketsim/internal/simtypes"

// priceLevel is a FIFO queue of resting orders at a single price, with a
// cached aggregate quantity for O(1) depth reporting. Orders are held by
// pointer so the matching engine can decrement a resting order's quantity
// in place during partial consumption.
type priceLevel struct {
	price    simtypes.Price
	orders   []*simtypes.Order
	totalQty simtypes.Qty
}

func newPriceLevel(price simtypes.Price) *priceLevel {
	return &priceLevel{price: price}
}

// addOrder appends to the tail of the FIFO.
func (l *priceLevel) addOrder(o *simtypes.Order) {
	l.orders = append(l.orders, o)
	l.totalQty += o.Quantity
}

// removeOrder scans for id and, on a hit, removes it and returns a copy of
// the order as it was at the moment of removal.
func (l *priceLevel) removeOrder(id simtypes.OrderID) (bool, simtypes.Order) {
	for i, o := range l.orders {
		if o.ID == id {
			removed := *o
			l.totalQty -= o.Quantity
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return true, removed
		}
	}
	return false, simtypes.Order{}
}

// consumeOrder satisfies up to wantQty against the head order. If the head
// order's remaining quantity is <= wantQty it is fully consumed and popped;
// otherwise it is partially filled in place. The returned Order copy
// reflects exactly how much of it was just consumed, not its current
// resting state.
func (l *priceLevel) consumeOrder(wantQty simtypes.Qty) (fullyConsumed bool, filled simtypes.Order) {
	head := l.orders[0]
	if head.Quantity <= wantQty {
		filled = *head
		l.totalQty -= head.Quantity
		l.orders = l.orders[1:]
		return true, filled
	}

	head.Quantity -= wantQty
	l.totalQty -= wantQty
	filled = *head
	filled.Quantity = wantQty
	return false, filled
}

func (l *priceLevel) empty() bool {
	return len(l.orders) == 0
}

func (l *priceLevel) orderCount() int {
	return len(l.orders)
}

func (l *priceLevel) totalQuantity() simtypes.Qty {
	return l.totalQty
}

// snapshotOrders returns a defensive copy of the resting orders in arrival
// order, for read-only callers.
func (l *priceLevel) snapshotOrders() []simtypes.Order {
	out := make([]simtypes.Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = *o
	}
	return out
}
