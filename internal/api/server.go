package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/shopspring/decimal"
)

func init() {
	// amounts are served as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const shutdownTimeout = 10 * time.Second

// Options configures the HTTP API
type Options struct {
	TaxCalculator *calculation.TaxCalculator
	Logger        *slog.Logger
	// RateLimit requests per RateWindow and client; 0 disables limiting
	RateLimit  int
	RateWindow time.Duration
}

// Server is the calculator HTTP API
type Server struct {
	engine  *gin.Engine
	limiter *RateLimiter
	logger  *slog.Logger
	http    *http.Server
}

// NewServer builds the router and its middleware chain
func NewServer(addr string, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	s := &Server{engine: engine, logger: logger}
	if opts.RateLimit > 0 {
		window := opts.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		s.limiter = NewRateLimiter(opts.RateLimit, window)
	}

	h := NewHandler(opts.TaxCalculator, logger)
	engine.GET("/healthz", h.Health)

	apiGroup := engine.Group("/api")
	if s.limiter != nil {
		apiGroup.Use(RateLimitMiddleware(s.limiter))
	}
	apiGroup.POST("/tax", h.Tax)
	apiGroup.POST("/rental/simulation", h.RentalSimulation)
	apiGroup.POST("/rental/max-affordable-size", h.MaxAffordableSize)
	apiGroup.POST("/financing/quote", h.FinancingQuote)
	apiGroup.POST("/capital-market/projection", h.CapitalMarketProjection)

	s.http = &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", slog.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	return nil
}

// Close releases the rate limiter
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
