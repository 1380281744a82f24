package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/experiment"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/logger"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/metrics"
)

type Config struct {
	Addr            string
	RunTimeout      time.Duration
	ShutdownTimeout time.Duration
	// MaxPoints caps nPaths * (steps + 1) per request. Zero disables it.
	MaxPoints int
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		RunTimeout:      30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxPoints:       5_000_000,
	}
}

// Server exposes the simulation pipeline over HTTP.
type Server struct {
	echo     *echo.Echo
	cfg      Config
	exp      *experiment.Experiment
	recorder *metrics.Recorder
	log      *logger.Logger
	// seed is drawn for requests that leave seed at zero.
	seed func() uint64
}

func New(cfg Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	s := &Server{
		cfg:      cfg,
		exp:      experiment.New(),
		recorder: recorder,
		log:      log,
		seed:     func() uint64 { return uint64(time.Now().UnixNano()) },
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.requestLogging)

	s.registerRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	s.echo = e
	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.log.Info("http server listening", logger.String("addr", s.cfg.Addr))
	if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("http server stopped")
	return nil
}

func (s *Server) requestLogging(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		fields := []logger.Field{
			logger.String("method", c.Request().Method),
			logger.String("route", c.Path()),
			logger.Int("status", status),
			logger.Duration("duration", time.Since(start)),
		}
		if status >= http.StatusInternalServerError {
			s.log.Error("http request failed", fields...)
		} else {
			s.log.Debug("http request", fields...)
		}
		return nil
	}
}
