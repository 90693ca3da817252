package httpapi

import "marketsim/internal/simengine"

// StartRunRequest configures one simulation run. Zero-valued fields fall
// back to the driver's configured defaults.
type StartRunRequest struct {
	Seed     int64 `json:"seed"`
	Steps    int   `json:"steps"`
	TimeStep int64 `json:"time_step"`
}

// StartRunResponse acknowledges a run has been accepted.
type StartRunResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id"`
	Seed   int64  `json:"seed"`
	Steps  int    `json:"steps"`
}

// RunStatusResponse reports whether a run is in progress, finished, or has
// never been started.
type RunStatusResponse struct {
	State string `json:"state"`
	RunID string `json:"run_id,omitempty"`
	Error string `json:"error,omitempty"`
}

// RunResultResponse mirrors simengine.RunResult for JSON consumers.
type RunResultResponse struct {
	TotalEventsProcessed int     `json:"total_events_processed"`
	TotalTrades          int64   `json:"total_trades"`
	SimulationDuration   int64   `json:"simulation_duration_ns"`
	WallClockSeconds     float64 `json:"wall_clock_seconds"`
}

func newRunResultResponse(r simengine.RunResult) RunResultResponse {
	return RunResultResponse{
		TotalEventsProcessed: r.TotalEventsProcessed,
		TotalTrades:          r.TotalTrades,
		SimulationDuration:   r.SimulationDuration,
		WallClockSeconds:     r.WallClockSeconds,
	}
}

// StatsResponse mirrors simengine.Stats for JSON consumers.
type StatsResponse struct {
	TotalEventsProcessed int     `json:"total_events_processed"`
	TotalTrades          int64   `json:"total_trades"`
	TotalOrders          int     `json:"total_orders"`
	TotalVolume          int64   `json:"total_volume"`
	LastTradePrice       int64   `json:"last_trade_price"`
	AverageSpread        float64 `json:"average_spread"`
	PriceVolatility      float64 `json:"price_volatility"`
	SimulationDuration   int64   `json:"simulation_duration_ns"`
	EventsPerSecond      float64 `json:"events_per_second"`
}

func newStatsResponse(s simengine.Stats) StatsResponse {
	return StatsResponse{
		TotalEventsProcessed: s.TotalEventsProcessed,
		TotalTrades:          s.TotalTrades,
		TotalOrders:          s.TotalOrders,
		TotalVolume:          s.TotalVolume,
		LastTradePrice:       s.LastTradePrice,
		AverageSpread:        s.AverageSpread,
		PriceVolatility:      s.PriceVolatility,
		SimulationDuration:   s.SimulationDuration,
		EventsPerSecond:      s.EventsPerSecond,
	}
}

// DepthRow is one row of the JSON order book depth response.
type DepthRow struct {
	Price       int64 `json:"price"`
	BidQuantity int64 `json:"bid_quantity"`
	AskQuantity int64 `json:"ask_quantity"`
}

// OrderBookResponse is the JSON view of current book depth.
type OrderBookResponse struct {
	Timestamp int64      `json:"timestamp"`
	Rows      []DepthRow `json:"rows"`
}

// TradeMessage is one trade pushed over the live websocket stream.
type TradeMessage struct {
	MakerID   uint64 `json:"maker_id"`
	TakerID   uint64 `json:"taker_id"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Timestamp int64  `json:"timestamp"`
}

// SnapshotMessage is one market snapshot pushed over the live websocket
// stream.
type SnapshotMessage struct {
	BestBid        int64 `json:"best_bid"`
	BestAsk        int64 `json:"best_ask"`
	BestBidQty     int64 `json:"best_bid_qty"`
	BestAskQty     int64 `json:"best_ask_qty"`
	LastTradePrice int64 `json:"last_trade_price"`
	Timestamp      int64 `json:"timestamp"`
}

// ErrorResponse is the JSON shape returned on every error path.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports basic liveness.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
