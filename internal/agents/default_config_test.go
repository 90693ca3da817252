package agents

import "testing"

func TestDefaultConfigsMatchReferenceValues(t *testing.T) {
	mm := DefaultMarketMakerConfig()
	if mm.Spread != 2 || mm.Quantity != 50 || mm.RefreshInterval != 50_000 || mm.MaxInventory != 1000 || mm.InventoryPenalty != 0.001 {
		t.Fatalf("unexpected MarketMaker defaults: %+v", mm)
	}

	tk := DefaultTakerConfig()
	if tk.Intensity != 0.8 || tk.SideBias != 0.5 || tk.QuantityMean != 40 || tk.QuantityStd != 10 || !tk.UseMarketOrders {
		t.Fatalf("unexpected Taker defaults: %+v", tk)
	}

	nt := DefaultNoiseTraderConfig()
	if nt.LimitIntensity != 1.5 || nt.CancelIntensity != 0.7 || nt.QuantityMean != 30 || nt.QuantityStd != 8 || nt.PriceVolatility != 5 || nt.CancelProbability != 0.3 {
		t.Fatalf("unexpected NoiseTrader defaults: %+v", nt)
	}
}
