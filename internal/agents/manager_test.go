package agents

import (
	"testing"

	"marketsim/internal/simrng"
	"marketsim/internal/simtypes"
)

func TestManagerStepConcatenatesInRegistrationOrder(t *testing.T) {
	m := NewManager()
	m.Add(NewMarketMaker(1, "mm", defaultMakerConfig(), simrng.New(1)))
	m.Add(NewTaker(2, "taker", TakerConfig{Intensity: 1, SideBias: 0.5, QuantityMean: 10, QuantityStd: 1, UseMarketOrders: true}, simrng.New(2)))

	events := m.Step(0)
	if len(events) < 3 {
		t.Fatalf("expected at least 3 events (2 from the maker's first refresh + 1 from the taker), got %d", len(events))
	}
	if events[0].AgentID != 1 {
		t.Fatalf("expected the maker's events to come first, got agent id %d", events[0].AgentID)
	}
}

func TestManagerNotifyTradeReachesEveryAgent(t *testing.T) {
	m := NewManager()
	mm := NewMarketMaker(1, "mm", defaultMakerConfig(), simrng.New(1))
	m.Add(mm)
	mm.Step(0)

	m.NotifyTrade(simtypes.Trade{MakerID: mm.bidOrderID, TakerID: 2, Price: 9950, Quantity: 10, Timestamp: 1})
	if mm.PnL() == 0 {
		t.Fatalf("expected the trade notification to reach the registered agent")
	}
}

func TestManagerGetStatsAndReset(t *testing.T) {
	m := NewManager()
	mm := NewMarketMaker(1, "mm", defaultMakerConfig(), simrng.New(1))
	m.Add(mm)
	mm.Step(0)
	m.NotifyTrade(simtypes.Trade{MakerID: mm.bidOrderID, TakerID: 2, Price: 9950, Quantity: 10, Timestamp: 1})

	stats := m.GetStats()
	if len(stats) != 1 || stats[0].ID != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats[0].PnL == 0 {
		t.Fatalf("expected nonzero pnl reflected in stats")
	}

	m.Reset()
	if mm.PnL() != 0 || mm.Inventory() != 0 {
		t.Fatalf("expected reset to propagate to every registered agent")
	}
}

func TestManagerGet(t *testing.T) {
	m := NewManager()
	mm := NewMarketMaker(1, "mm", defaultMakerConfig(), simrng.New(1))
	m.Add(mm)

	if _, ok := m.Get(1); !ok {
		t.Fatalf("expected agent 1 to be registered")
	}
	if _, ok := m.Get(99); ok {
		t.Fatalf("expected no agent registered under id 99")
	}
}
