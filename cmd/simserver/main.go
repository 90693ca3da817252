// Command simserver is the HTTP driver for the simulation core: it starts
// runs, reports their results and running statistics, serves CSV exports,
// and streams live trades/snapshots over websockets. It is an external
// collaborator that talks to internal/simengine only through its exported
// API; none of this wiring is required for the core to be correct.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"marketsim/internal/config"
	"marketsim/internal/httpapi"
	"marketsim/internal/httpapi/middleware"
	"marketsim/internal/logging"
)

func main() {
	logging.Init()
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	runner := httpapi.NewRunner(cfg.Sim.Seed, cfg.Sim.TimeStep, cfg.Sim.MaxSteps, cfg.Sim.OutputDir)
	runner.SetStepLogger(logging.StepAdapter{})

	handler := httpapi.NewHandler(runner)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowSecs)*time.Second)
	availability := middleware.DefaultServiceAvailability()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(recover.New())
	httpapi.SetupRoutes(app, handler, limiter, availability)

	streamSrv := httpapi.NewStreamServer(runner)
	wsHTTPServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port+1),
		Handler: streamSrv.Handler(),
	}

	serverErr := make(chan error, 2)
	go func() {
		log.Info().Int("port", cfg.App.Port).Msg("starting HTTP API")
		if err := app.Listen(":" + strconv.Itoa(cfg.App.Port)); err != nil {
			serverErr <- err
		}
	}()
	go func() {
		log.Info().Str("addr", wsHTTPServer.Addr).Msg("starting websocket stream server")
		if err := wsHTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("server error")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownTimeout := 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("error shutting down HTTP API")
	}
	if err := wsHTTPServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error shutting down websocket stream server")
	}
}
