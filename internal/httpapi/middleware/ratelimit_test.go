package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestAllowPermitsUpToMaxRequestsPerWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	if !rl.Allow("1.2.3.4") {
		t.Fatalf("expected first request to be allowed")
	}
	if !rl.Allow("1.2.3.4") {
		t.Fatalf("expected second request to be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("expected third request in the same window to be rejected")
	}
}

func TestAllowTracksClientsIndependently(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("1.2.3.4") {
		t.Fatalf("expected first client's request to be allowed")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatalf("expected a different client's request to be allowed independently")
	}
}

func TestMiddlewareSetsRateLimitHeadersAndRejectsOverLimit(t *testing.T) {
	app := fiber.New()
	app.Use(NewRateLimiter(1, time.Minute).Middleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.Header.Get("X-RateLimit-Limit") == "" {
		t.Fatalf("expected X-RateLimit-Limit header")
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp2.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 on the second request, got %d", resp2.StatusCode)
	}
}
