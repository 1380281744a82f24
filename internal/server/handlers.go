package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/experiment"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/export"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/logger"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (s *Server) registerRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/simulate", s.simulate)
	g.POST("/simulate/paths.csv", s.simulatePaths)
	g.POST("/simulate/summary.csv", s.simulateSummary)
	g.GET("/presets", s.presets)
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
}

func (s *Server) simulate(c echo.Context) error {
	out, apiErr := s.run(c)
	if apiErr != nil {
		return apiErr
	}
	return c.JSON(http.StatusOK, export.Report{
		Params:   out.Params,
		Terminal: out.Terminal,
		Summary:  out.Summary,
	})
}

func (s *Server) simulatePaths(c echo.Context) error {
	out, apiErr := s.run(c)
	if apiErr != nil {
		return apiErr
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return export.WritePaths(c.Response(), out.Ensemble)
}

func (s *Server) simulateSummary(c echo.Context) error {
	out, apiErr := s.run(c)
	if apiErr != nil {
		return apiErr
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteSummary(c.Response(), out.Summary)
}

func (s *Server) presets(c echo.Context) error {
	presets := make(map[string]*config.Params, len(config.Presets))
	for _, name := range config.ListPresets() {
		presets[name] = config.GetPreset(name)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"names":   config.ListPresets(),
		"presets": presets,
	})
}

// run binds the request body onto the defaults and executes it.
func (s *Server) run(c echo.Context) (*experiment.Outcome, *echo.HTTPError) {
	p := config.Default()
	if err := c.Bind(p); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, APIError{Code: "bad_request", Message: err.Error()})
	}

	// A zero seed means the caller gave none; the drawn one is echoed in the report.
	if p.Seed == 0 {
		p.Seed = s.seed()
	}

	if config.ExceedsPoints(p.NPaths, p.Steps, int64(s.cfg.MaxPoints)) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, APIError{
			Code:    "too_large",
			Message: fmt.Sprintf("nPaths * (steps + 1) must not exceed %d", s.cfg.MaxPoints),
			Field:   "nPaths",
		})
	}

	ctx := c.Request().Context()
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.exp.Run(ctx, *p)
	if err != nil {
		s.recorder.ObserveRun("http", time.Since(start), 0, err)
		s.log.Warn("simulation rejected", logger.Error(err))
		return nil, toHTTPError(err)
	}

	s.recorder.ObserveRun("http", time.Since(start), out.Config.NPaths, nil)

	s.log.Info("simulation finished",
		logger.Int("paths", out.Config.NPaths),
		logger.Int("steps", out.Config.Steps),
		logger.Uint64("seed", out.Config.Seed),
		logger.Duration("elapsed", out.Elapsed),
	)
	return out, nil
}

func toHTTPError(err error) *echo.HTTPError {
	body := APIError{Message: err.Error()}
	status := http.StatusInternalServerError

	var cfgErr *model.ConfigError
	var evalErr *model.EvaluationError
	switch {
	case errors.As(err, &cfgErr):
		status, body.Code, body.Field = http.StatusBadRequest, "invalid_config", cfgErr.Field
	case errors.As(err, &evalErr):
		status, body.Code, body.Field = http.StatusBadRequest, "invalid_expression", evalErr.Target
	case errors.Is(err, model.ErrNumeric):
		status, body.Code = http.StatusUnprocessableEntity, "numeric_failure"
	case errors.Is(err, model.ErrCanceled):
		status, body.Code = http.StatusServiceUnavailable, "canceled"
	default:
		body.Code = "internal"
	}

	return echo.NewHTTPError(status, body)
}
