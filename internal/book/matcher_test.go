package book

import (
	"testing"

	"marketsim/internal/simtypes"
)

func TestCrossOnLimitMatchesRestingMakerPrice(t *testing.T) {
	m := NewMatchingEngine()

	var trades []simtypes.Trade
	m.SetTradeCallback(func(tr simtypes.Trade) { trades = append(trades, tr) })

	m.ProcessEvent(simtypes.Event{Type: simtypes.EventLimit, OrderID: 1, Side: simtypes.Sell, Price: 10000, Quantity: 100, Timestamp: 1000})
	got := m.ProcessEvent(simtypes.Event{Type: simtypes.EventLimit, OrderID: 2, Side: simtypes.Buy, Price: 10001, Quantity: 50, Timestamp: 1001})

	if len(got) != 1 {
		t.Fatalf("expected 1 trade from the cross, got %d", len(got))
	}
	trade := got[0]
	if trade.MakerID != 1 || trade.Price != 10000 || trade.Quantity != 50 {
		t.Fatalf("expected maker=1 price=10000 qty=50, got %+v", trade)
	}
	if len(trades) != 1 || trades[0] != trade {
		t.Fatalf("trade callback did not fire with the matching trade")
	}
}

func TestCrossOnLimitReusesFullEventQuantity(t *testing.T) {
	m := NewMatchingEngine()

	m.ProcessEvent(simtypes.Event{Type: simtypes.EventLimit, OrderID: 1, Side: simtypes.Sell, Price: 10000, Quantity: 1000, Timestamp: 1000})
	m.ProcessEvent(simtypes.Event{Type: simtypes.EventLimit, OrderID: 2, Side: simtypes.Buy, Price: 10001, Quantity: 50, Timestamp: 1001})

	// The incoming buy's own resting copy is never reduced by the market
	// pass that filled it: it still rests at its full original quantity.
	resting, ok := m.Book().GetOrder(2)
	if !ok {
		t.Fatalf("expected order 2 to still be resting")
	}
	if resting.Quantity != 50 {
		t.Fatalf("expected the resting copy to retain its full quantity, got %d", resting.Quantity)
	}
}

func TestReproduceSourceHazardsSelfMatchesOnOwnSide(t *testing.T) {
	m := NewMatchingEngine()
	m.ReproduceSourceHazards = true

	m.ProcessEvent(simtypes.Event{Type: simtypes.EventLimit, OrderID: 1, Side: simtypes.Sell, Price: 10000, Quantity: 100, Timestamp: 1000})
	got := m.ProcessEvent(simtypes.Event{Type: simtypes.EventLimit, OrderID: 2, Side: simtypes.Buy, Price: 10001, Quantity: 50, Timestamp: 1001})

	if len(got) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(got))
	}
	trade := got[0]
	if trade.MakerID != 2 || trade.TakerID != 2 || trade.Price != 10001 {
		t.Fatalf("expected the compat path to self-match the just-rested bid, got %+v", trade)
	}
}

func TestMarketEventMatchesOppositeSide(t *testing.T) {
	m := NewMatchingEngine()
	m.ProcessEvent(simtypes.Event{Type: simtypes.EventLimit, OrderID: 1, Side: simtypes.Sell, Price: 10002, Quantity: 50, Timestamp: 1000})

	trades := m.ProcessEvent(simtypes.Event{Type: simtypes.EventMarket, OrderID: 2, Side: simtypes.Buy, Quantity: 30, Timestamp: 1001})
	if len(trades) != 1 || trades[0].MakerID != 1 || trades[0].Quantity != 30 {
		t.Fatalf("unexpected market event result: %+v", trades)
	}
}

func TestCancelEventRemovesRestingOrder(t *testing.T) {
	m := NewMatchingEngine()
	m.ProcessEvent(simtypes.Event{Type: simtypes.EventLimit, OrderID: 1, Side: simtypes.Buy, Price: 10000, Quantity: 100, Timestamp: 1000})
	if m.Book().Size() != 1 {
		t.Fatalf("expected order resting before cancel")
	}

	trades := m.ProcessEvent(simtypes.Event{Type: simtypes.EventCancel, OrderID: 1, Timestamp: 1001})
	if trades != nil {
		t.Fatalf("expected cancel to produce no trades, got %+v", trades)
	}
	if m.Book().Size() != 0 {
		t.Fatalf("expected order removed after cancel")
	}
}

func TestUnknownEventTypeIsNoop(t *testing.T) {
	m := NewMatchingEngine()
	trades := m.ProcessEvent(simtypes.Event{Type: simtypes.EventType(255), OrderID: 1, Timestamp: 1000})
	if trades != nil {
		t.Fatalf("expected no trades for an unrecognized event type, got %+v", trades)
	}
}

func TestProcessEventsConcatenatesInOrder(t *testing.T) {
	m := NewMatchingEngine()
	events := []simtypes.Event{
		{Type: simtypes.EventLimit, OrderID: 1, Side: simtypes.Sell, Price: 10000, Quantity: 10, Timestamp: 1000},
		{Type: simtypes.EventLimit, OrderID: 2, Side: simtypes.Sell, Price: 10000, Quantity: 10, Timestamp: 1001},
		{Type: simtypes.EventMarket, OrderID: 3, Side: simtypes.Buy, Quantity: 20, Timestamp: 1002},
	}
	trades := m.ProcessEvents(events)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades total, got %d", len(trades))
	}
	if trades[0].MakerID != 1 || trades[1].MakerID != 2 {
		t.Fatalf("expected FIFO order maker1 then maker2, got %+v", trades)
	}
}
