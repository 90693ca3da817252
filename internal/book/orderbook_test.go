package book

import (
	"testing"

	"marketsim/internal/simtypes"
)

func TestSimpleCross(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimitOrder(simtypes.NewOrder(1, simtypes.Sell, 10002, 50, 1000))

	trades := ob.AddMarketOrder(simtypes.Buy, 30, 2, 1001)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	got := trades[0]
	want := simtypes.Trade{MakerID: 1, TakerID: 2, Price: 10002, Quantity: 30, Timestamp: 1001}
	if got != want {
		t.Fatalf("trade mismatch: got %+v, want %+v", got, want)
	}

	qty, ok := ob.BestAskQuantity()
	if !ok || qty != 20 {
		t.Fatalf("expected remaining ask qty 20, got %d (ok=%v)", qty, ok)
	}
}

func TestPartialFillOfMarketDiscardsResidual(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimitOrder(simtypes.NewOrder(1, simtypes.Sell, 10002, 100, 1000))

	trades := ob.AddMarketOrder(simtypes.Buy, 150, 2, 1001)
	if len(trades) != 1 || trades[0].Quantity != 100 {
		t.Fatalf("expected single 100-qty trade, got %+v", trades)
	}
	if ob.Size() != 0 {
		t.Fatalf("expected book empty after full consumption, size=%d", ob.Size())
	}
	if _, ok := ob.BestAskPrice(); ok {
		t.Fatalf("expected no resting ask after full consumption")
	}
}

func TestPriceTimePriority(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimitOrder(simtypes.NewOrder(1, simtypes.Buy, 10000, 100, 1000))
	ob.AddLimitOrder(simtypes.NewOrder(2, simtypes.Buy, 10001, 200, 1001))
	ob.AddLimitOrder(simtypes.NewOrder(3, simtypes.Buy, 10000, 50, 1002))

	price, ok := ob.BestBidPrice()
	if !ok || price != 10001 {
		t.Fatalf("expected best bid 10001, got %d (ok=%v)", price, ok)
	}
	qty, ok := ob.BestBidQuantity()
	if !ok || qty != 200 {
		t.Fatalf("expected best bid qty 200, got %d (ok=%v)", qty, ok)
	}
}

func TestFIFOWithinPriceLevel(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimitOrder(simtypes.NewOrder(1, simtypes.Sell, 10000, 30, 1000))
	ob.AddLimitOrder(simtypes.NewOrder(2, simtypes.Sell, 10000, 30, 1001))

	trades := ob.AddMarketOrder(simtypes.Buy, 40, 3, 1002)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades across the FIFO queue, got %d", len(trades))
	}
	if trades[0].MakerID != 1 || trades[0].Quantity != 30 {
		t.Fatalf("first trade should fully consume the earlier order, got %+v", trades[0])
	}
	if trades[1].MakerID != 2 || trades[1].Quantity != 10 {
		t.Fatalf("second trade should partially consume the later order, got %+v", trades[1])
	}
}

func TestCancelRoundTrip(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimitOrder(simtypes.NewOrder(1, simtypes.Buy, 10000, 100, 1000))
	if ob.Size() != 1 {
		t.Fatalf("expected size 1 after add, got %d", ob.Size())
	}

	if !ob.CancelOrder(1) {
		t.Fatalf("expected cancel of resting order to succeed")
	}
	if ob.Size() != 0 {
		t.Fatalf("expected size 0 after cancel, got %d", ob.Size())
	}
	if _, ok := ob.BestBidPrice(); ok {
		t.Fatalf("expected no best bid after cancel")
	}
	if ob.CancelOrder(1) {
		t.Fatalf("expected second cancel of the same id to return false")
	}
}

func TestVolumeAndTradeCountAccumulatePerFill(t *testing.T) {
	ob := NewOrderBook()
	ob.AddLimitOrder(simtypes.NewOrder(1, simtypes.Sell, 10000, 10, 1000))
	ob.AddLimitOrder(simtypes.NewOrder(2, simtypes.Sell, 10001, 10, 1001))

	ob.AddMarketOrder(simtypes.Buy, 15, 3, 1002)
	if ob.TotalVolume() != 15 {
		t.Fatalf("expected total volume 15 after a partial fill at the head, got %d", ob.TotalVolume())
	}
	if ob.TradeCount() != 2 {
		t.Fatalf("expected 2 trades (one per resting order consumed), got %d", ob.TradeCount())
	}
}

func TestRejectsInvalidPriceAndQuantity(t *testing.T) {
	ob := NewOrderBook()
	if ob.AddLimitOrder(simtypes.NewOrder(1, simtypes.Buy, 0, 100, 1000)) {
		t.Fatalf("expected zero price to be rejected")
	}
	if ob.AddLimitOrder(simtypes.NewOrder(2, simtypes.Buy, 10000, 0, 1000)) {
		t.Fatalf("expected zero quantity to be rejected")
	}
	if ob.Size() != 0 {
		t.Fatalf("expected no orders resting after rejected submissions, got %d", ob.Size())
	}
}
