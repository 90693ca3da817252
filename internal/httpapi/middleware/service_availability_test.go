package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(sa *ServiceAvailability) *fiber.App {
	app := fiber.New()
	app.Use(sa.Middleware())
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/api/v1/thing", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestMaintenanceModeRejectsAPIRequests(t *testing.T) {
	sa := NewServiceAvailability(0)
	sa.SetMaintenanceMode(true)
	app := newTestApp(sa)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503 in maintenance mode, got %d", resp.StatusCode)
	}
}

func TestMaintenanceModeStillAllowsHealthCheck(t *testing.T) {
	sa := NewServiceAvailability(0)
	sa.SetMaintenanceMode(true)
	app := newTestApp(sa)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected /health to bypass maintenance mode, got %d", resp.StatusCode)
	}
}

func TestNormalOperationAllowsRequests(t *testing.T) {
	sa := NewServiceAvailability(0)
	app := newTestApp(sa)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/thing", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 outside maintenance mode, got %d", resp.StatusCode)
	}
}

func TestInFlightRequestsIsZeroInitially(t *testing.T) {
	sa := NewServiceAvailability(0)
	if sa.InFlightRequests() != 0 {
		t.Fatalf("expected 0 in-flight requests initially")
	}
}
