package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/autofix/internal/api/auth"
	apimiddleware "github.com/autofix/internal/api/middleware"
	"github.com/autofix/internal/config"
	"github.com/autofix/pkg/models"
)

// Server represents the API server
type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger zerolog.Logger
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		echo:   e,
		cfg:    cfg,
		logger: logger,
	}

	e.HTTPErrorHandler = server.handleError

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("Request handled")
			return nil
		},
	}))
	if cfg.Server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}
	e.Use(middleware.CORS())

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// API v1 group
	v1 := s.echo.Group("/api/v1")
	v1.Use(apimiddleware.RateLimit(s.cfg.RateLimit.RequestsPerSecond, s.cfg.RateLimit.Burst))
	if s.cfg.Auth.JWTSecret != "" {
		v1.Use(auth.RequireBearer(s.cfg.Auth.JWTSecret, s.cfg.Auth.Issuer))
	} else {
		s.logger.Warn().Msg("auth.jwt_secret is empty, API accepts unauthenticated requests")
	}

	v1.POST("/autofix", s.autofix)
	v1.GET("/autofix/symbols", s.symbols)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start begins the API server and blocks until an interrupt is received
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.logger.Info().Str("addr", addr).Msg("Starting autofix API server")

	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

// handleError renders every error as the autofix failure envelope.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		detail = fmt.Sprint(he.Message)
	}

	if code >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).Msg("Request failed")
	}

	resp := models.ErrorResponse{
		Success: false,
		Error:   detail,
		Message: failureMessage(code),
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, resp)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to write error response")
	}
}

func failureMessage(code int) string {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return "Authentication failed."
	case code == http.StatusTooManyRequests:
		return "Too many requests. Please retry shortly."
	case code >= http.StatusInternalServerError:
		return "Autofix failed. Please review errors manually."
	default:
		return "Invalid autofix request."
	}
}
