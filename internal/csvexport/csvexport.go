// Package csvexport serializes a finished run's trades, market snapshots,
// and per-agent pnl samples to the three bit-exact CSV files external
// tooling expects. This is a collaborator outside the simulation core: the
// core never writes to disk on its own.
package csvexport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"marketsim/internal/simengine"
	"marketsim/internal/simtypes"
)

const (
	tradesFileName    = "trades.csv"
	snapshotsFileName = "market_snapshots.csv"
	agentPnLFileName  = "agent_pnl.csv"
)

var (
	tradesHeader    = []string{"timestamp", "maker_id", "taker_id", "price", "quantity"}
	snapshotsHeader = []string{"timestamp", "best_bid", "best_ask", "best_bid_qty", "best_ask_qty", "last_trade_price"}
	agentPnLHeader  = []string{"timestamp", "agent_id", "pnl", "inventory"}
)

// WriteRunResult writes trades.csv, market_snapshots.csv, and
// agent_pnl.csv into outputDir, creating it if necessary.
func WriteRunResult(outputDir string, result simengine.RunResult) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	if err := writeTrades(filepath.Join(outputDir, tradesFileName), result.Trades); err != nil {
		return err
	}
	if err := writeSnapshots(filepath.Join(outputDir, snapshotsFileName), result.MarketSnapshots); err != nil {
		return err
	}
	return writeAgentPnL(filepath.Join(outputDir, agentPnLFileName), result.AgentPnL)
}

func writeTrades(path string, trades []simtypes.Trade) error {
	w, f, err := newWriter(path)
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	if err := w.Write(tradesHeader); err != nil {
		return err
	}
	for _, t := range trades {
		row := []string{
			strconv.FormatInt(t.Timestamp, 10),
			strconv.FormatUint(t.MakerID, 10),
			strconv.FormatUint(t.TakerID, 10),
			strconv.FormatInt(t.Price, 10),
			strconv.FormatInt(t.Quantity, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeSnapshots(path string, snapshots []simtypes.MarketSnapshot) error {
	w, f, err := newWriter(path)
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	if err := w.Write(snapshotsHeader); err != nil {
		return err
	}
	for _, s := range snapshots {
		row := []string{
			strconv.FormatInt(s.Timestamp, 10),
			strconv.FormatInt(s.BestBid, 10),
			strconv.FormatInt(s.BestAsk, 10),
			strconv.FormatInt(s.BestBidQty, 10),
			strconv.FormatInt(s.BestAskQty, 10),
			strconv.FormatInt(s.LastTradePrice, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeAgentPnL(path string, samples []simengine.AgentPnLSample) error {
	w, f, err := newWriter(path)
	if err != nil {
		return err
	}
	defer f.Close()
	defer w.Flush()

	if err := w.Write(agentPnLHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatInt(s.Timestamp, 10),
			strconv.FormatUint(s.AgentID, 10),
			strconv.FormatFloat(s.PnL, 'f', -1, 64),
			strconv.FormatInt(s.Inventory, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func newWriter(path string) (*csv.Writer, *os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewWriter(f), f, nil
}
