package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler wires a Runner to fiber HTTP routes.
type Handler struct {
	runner    *Runner
	startTime time.Time
}

// NewHandler builds a Handler over runner.
func NewHandler(runner *Runner) *Handler {
	return &Handler{runner: runner, startTime: time.Now()}
}

// StartRun handles POST /api/v1/run.
func (h *Handler) StartRun(c *fiber.Ctx) error {
	var req StartRunRequest
	if err := c.BodyParser(&req); err != nil {
		// edge case: an empty body is a valid all-defaults request
		if len(c.Body()) != 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request: malformed JSON"})
		}
	}

	resp, err := h.runner.StartRun(req)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// GetStatus handles GET /api/v1/run/status.
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.runner.Status())
}

// GetResult handles GET /api/v1/run/result.
func (h *Handler) GetResult(c *fiber.Ctx) error {
	result, ok := h.runner.Result()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no finished run available"})
	}
	return c.Status(fiber.StatusOK).JSON(newRunResultResponse(result))
}

// GetStats handles GET /api/v1/run/stats.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, ok := h.runner.Stats()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no run has been started"})
	}
	return c.Status(fiber.StatusOK).JSON(newStatsResponse(stats))
}

// GetDepth handles GET /api/v1/book/depth.
func (h *Handler) GetDepth(c *fiber.Ctx) error {
	depth := c.QueryInt("depth", 10)
	if depth <= 0 {
		depth = 10
	}
	if depth > 1000 {
		depth = 1000
	}

	rows, ok := h.runner.Depth(depth)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no run has been started"})
	}

	resp := OrderBookResponse{Timestamp: time.Now().UnixNano(), Rows: make([]DepthRow, 0, len(rows))}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, DepthRow{Price: row.Price, BidQuantity: row.BidQuantity, AskQuantity: row.AskQuantity})
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ExportCSV handles POST /api/v1/run/export: it writes the finished run's
// three CSV files to the configured output directory and reports where.
func (h *Handler) ExportCSV(c *fiber.Ctx) error {
	dir, err := h.runner.ExportCSV()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"output_dir": dir})
}

// DownloadTradesCSV handles GET /api/v1/run/export/trades.csv.
func (h *Handler) DownloadTradesCSV(c *fiber.Ctx) error {
	return h.downloadCSVFile(c, "trades.csv")
}

// DownloadSnapshotsCSV handles GET /api/v1/run/export/market_snapshots.csv.
func (h *Handler) DownloadSnapshotsCSV(c *fiber.Ctx) error {
	return h.downloadCSVFile(c, "market_snapshots.csv")
}

// DownloadAgentPnLCSV handles GET /api/v1/run/export/agent_pnl.csv.
func (h *Handler) DownloadAgentPnLCSV(c *fiber.Ctx) error {
	return h.downloadCSVFile(c, "agent_pnl.csv")
}

func (h *Handler) downloadCSVFile(c *fiber.Ctx, name string) error {
	if _, err := h.runner.ExportCSV(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	return c.SendFile(h.runner.outputDir+"/"+name, false)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(HealthResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}
