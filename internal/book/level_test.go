package book

import (
	"testing"

	"marketsim/internal/simtypes"
)

func TestPriceLevelConsumePartial(t *testing.T) {
	lvl := newPriceLevel(10000)
	o := simtypes.NewOrder(1, simtypes.Sell, 10000, 100, 1000)
	lvl.addOrder(&o)

	full, filled := lvl.consumeOrder(40)
	if full {
		t.Fatalf("expected partial consumption, got fullyConsumed=true")
	}
	if filled.Quantity != 40 {
		t.Fatalf("expected filled quantity 40, got %d", filled.Quantity)
	}
	if lvl.totalQuantity() != 60 {
		t.Fatalf("expected remaining level quantity 60, got %d", lvl.totalQuantity())
	}
	if lvl.orderCount() != 1 {
		t.Fatalf("expected the order to remain resting after a partial fill")
	}
}

func TestPriceLevelConsumeFull(t *testing.T) {
	lvl := newPriceLevel(10000)
	o := simtypes.NewOrder(1, simtypes.Sell, 10000, 40, 1000)
	lvl.addOrder(&o)

	full, filled := lvl.consumeOrder(40)
	if !full {
		t.Fatalf("expected full consumption")
	}
	if filled.Quantity != 40 {
		t.Fatalf("expected filled quantity 40, got %d", filled.Quantity)
	}
	if !lvl.empty() {
		t.Fatalf("expected level empty after consuming its only order")
	}
}

func TestPriceLevelRemoveOrder(t *testing.T) {
	lvl := newPriceLevel(10000)
	o1 := simtypes.NewOrder(1, simtypes.Buy, 10000, 10, 1000)
	o2 := simtypes.NewOrder(2, simtypes.Buy, 10000, 20, 1001)
	lvl.addOrder(&o1)
	lvl.addOrder(&o2)

	found, removed := lvl.removeOrder(1)
	if !found || removed.ID != 1 {
		t.Fatalf("expected to find and remove order 1, got found=%v removed=%+v", found, removed)
	}
	if lvl.totalQuantity() != 20 {
		t.Fatalf("expected remaining total quantity 20, got %d", lvl.totalQuantity())
	}

	if found, _ := lvl.removeOrder(1); found {
		t.Fatalf("expected second removal of the same id to fail")
	}
}

func TestPriceLevelFIFOOrder(t *testing.T) {
	lvl := newPriceLevel(10000)
	for i := simtypes.OrderID(1); i <= 3; i++ {
		o := simtypes.NewOrder(i, simtypes.Sell, 10000, 10, simtypes.Timestamp(i))
		lvl.addOrder(&o)
	}

	snap := lvl.snapshotOrders()
	for i, o := range snap {
		if o.ID != simtypes.OrderID(i+1) {
			t.Fatalf("expected arrival order preserved, got %+v at index %d", o, i)
		}
	}
}
