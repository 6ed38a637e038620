// Package httpapi serves statement, reconciliation and growth computations
// over HTTP.
package httpapi

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/logging"
)

// Config holds router configuration. A nil Logger discards output.
type Config struct {
	Logger    *slog.Logger
	Tolerance decimal.Decimal
	Version   string
}

// New creates the HTTP router.
func New(cfg Config) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	h := &Handler{log: cfg.Logger, tolerance: cfg.Tolerance, version: cfg.Version}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(Logger(cfg.Logger))
	r.Use(Recovery(cfg.Logger))

	r.Get("/health", h.GetHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/profit-loss", h.PostProfitLoss)
		r.Post("/trading/reconcile", h.PostReconcile)
		r.Post("/growth", h.PostGrowth)
	})

	return r
}
