package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/autofix/internal/autofix"
	"github.com/autofix/pkg/models"
)

// autofix runs the engine over the submitted files and diagnostics.
func (s *Server) autofix(c echo.Context) error {
	var req models.FixRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.validateFixRequest(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	logger := s.logger.With().
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Logger()

	engine := autofix.New(autofix.WithLogger(logger))
	result := engine.Fix(req)

	return c.JSON(http.StatusOK, result.Response())
}

// symbols lists the symbols the engine can import automatically.
func (s *Server) symbols(c echo.Context) error {
	return c.JSON(http.StatusOK, autofix.ImportCatalog())
}

func (s *Server) validateFixRequest(req models.FixRequest) error {
	if req.Files == nil {
		return fmt.Errorf("files is required")
	}
	if req.Errors == nil {
		return fmt.Errorf("errors is required")
	}
	if limit := s.cfg.Engine.MaxFiles; limit > 0 && len(req.Files) > limit {
		return fmt.Errorf("too many files: %d (limit %d)", len(req.Files), limit)
	}
	if limit := s.cfg.Engine.MaxErrors; limit > 0 && len(req.Errors) > limit {
		return fmt.Errorf("too many errors: %d (limit %d)", len(req.Errors), limit)
	}
	for i, f := range req.Files {
		if strings.TrimSpace(f.Path) == "" {
			return fmt.Errorf("files[%d].path is required", i)
		}
	}
	return nil
}
