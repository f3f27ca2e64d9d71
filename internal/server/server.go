// Package server exposes the viewer loader and guideline pages over HTTP.
package server

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/p-blackswan/arkide-viewer/internal/guidelines"
	"github.com/p-blackswan/arkide-viewer/internal/health"
	"github.com/p-blackswan/arkide-viewer/internal/metrics"
	"github.com/p-blackswan/arkide-viewer/internal/requestid"
	"github.com/p-blackswan/arkide-viewer/internal/viewer"
)

// Config holds configuration for the HTTP server.
type Config struct {
	ListenAddr  string
	CORSOrigins string
	RateLimit   RateLimitConfig
}

// Server is the viewer's Fiber application.
type Server struct {
	app     *fiber.App
	limiter *rateLimiter
	logger  zerolog.Logger
	config  Config
}

// New creates and configures a server. metricsCollector may be nil.
func New(
	cfg Config,
	loader *viewer.Loader,
	bundle *guidelines.Bundle,
	checker *health.Checker,
	metricsCollector *metrics.Metrics,
	logger zerolog.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	s := &Server{
		app:    app,
		logger: logger.With().Str("component", "http_server").Logger(),
		config: cfg,
	}

	h := newHandlers(loader, bundle, metricsCollector, logger)
	s.setupMiddleware(cfg, metricsCollector)
	s.setupRoutes(h, checker, metricsCollector)

	return s
}

func (s *Server) setupMiddleware(cfg Config, metricsCollector *metrics.Metrics) {
	s.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Request ID, reusing one set by an upstream proxy.
	s.app.Use(func(c *fiber.Ctx) error {
		ctx, reqID := requestid.Ensure(c.UserContext(), utils.CopyString(c.Get(requestid.Header)))
		c.SetUserContext(ctx)
		c.Set(requestid.Header, reqID)
		c.Locals("request_id", reqID)
		return c.Next()
	})

	if cfg.CORSOrigins != "" {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
			AllowMethods:  "GET, HEAD, OPTIONS",
			ExposeHeaders: "X-Request-ID, Cache-Control",
		}))
	}

	if cfg.RateLimit.RPS > 0 {
		s.limiter = newRateLimiter(cfg.RateLimit)
		s.app.Use(s.limiter.middleware)
	}

	// Access log
	s.app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if isProbe(c.Path()) {
			return err
		}

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		if metricsCollector != nil {
			metricsCollector.RecordHTTP(c.Route().Path, strconv.Itoa(status))
		}
		s.logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("ip", c.IP()).
			Interface("request_id", c.Locals("request_id")).
			Msg("http request")
		return err
	})
}

func (s *Server) setupRoutes(h *handlers, checker *health.Checker, metricsCollector *metrics.Metrics) {
	s.app.Get("/healthz", health.Liveness)
	s.app.Get("/readyz", checker.Readiness)

	if metricsCollector != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(metricsCollector.Handler()))
	}

	// Page data for the project viewer.
	s.app.Get("/viewer", h.Viewer)

	v1 := s.app.Group("/api/v1")
	v1.Get("/guidelines", h.ListGuidelines)
	v1.Get("/guidelines/:key", h.GetGuideline)
}

// Start starts the server. Blocks until stopped.
func (s *Server) Start() error {
	addr := s.config.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	s.logger.Info().Str("addr", addr).Msg("viewer HTTP server starting")
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("viewer HTTP server shutting down")
	if s.limiter != nil {
		s.limiter.stop()
	}
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

func isProbe(path string) bool {
	return path == "/healthz" || path == "/readyz" || path == "/metrics"
}

func customErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error().
				Err(err).
				Int("status", code).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Msg("unhandled error")
		}

		detail := err.Error()
		if code == fiber.StatusInternalServerError {
			detail = "An internal error occurred"
		}
		return problemResponse(c, code, problemType(code), statusTitle(code), detail)
	}
}
