package simengine

import (
	"math"

	"marketsim/internal/simtypes"
)

// averageSpread is the mean best_ask-best_bid over snapshots where both
// sides were quoted; snapshots missing a side are skipped.
func averageSpread(snapshots []simtypes.MarketSnapshot) float64 {
	var total float64
	var count int
	for _, snap := range snapshots {
		if snap.BestBid > 0 && snap.BestAsk > 0 {
			total += float64(snap.BestAsk - snap.BestBid)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// priceVolatility is the standard deviation of consecutive log returns of
// last_trade_price across snapshots where both sides of the pair traded.
func priceVolatility(snapshots []simtypes.MarketSnapshot) float64 {
	returns := logReturns(snapshots)
	if len(returns) == 0 {
		return 0
	}
	return stddev(returns)
}

func logReturns(snapshots []simtypes.MarketSnapshot) []float64 {
	var returns []float64
	for i := 1; i < len(snapshots); i++ {
		prev := snapshots[i-1].LastTradePrice
		curr := snapshots[i].LastTradePrice
		if prev > 0 && curr > 0 {
			returns = append(returns, math.Log(float64(curr)/float64(prev)))
		}
	}
	return returns
}

func stddev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}
