package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"marketsim/internal/httpapi/middleware"
)

// SetupRoutes wires middleware and endpoints onto app: availability
// gate first, then request logging, then a rate-limited API group.
func SetupRoutes(app *fiber.App, h *Handler, limiter *middleware.RateLimiter, availability *middleware.ServiceAvailability) {
	app.Use(availability.Middleware())
	app.Use(middleware.RequestLogger())

	app.Get("/health", h.HealthCheck)

	api := app.Group("/api/v1")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}

	api.Post("/run", h.StartRun)
	api.Get("/run/status", h.GetStatus)
	api.Get("/run/result", h.GetResult)
	api.Get("/run/stats", h.GetStats)
	api.Post("/run/export", h.ExportCSV)
	api.Get("/run/export/trades.csv", h.DownloadTradesCSV)
	api.Get("/run/export/market_snapshots.csv", h.DownloadSnapshotsCSV)
	api.Get("/run/export/agent_pnl.csv", h.DownloadAgentPnLCSV)
	api.Get("/book/depth", h.GetDepth)
}

// DefaultRateLimiter applies a 100-requests-per-second-per-client default.
func DefaultRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Second)
}
