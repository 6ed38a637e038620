package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/payload"
	"github.com/cleared-dev/tally/internal/profitloss"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/trading"
)

const maxBodyBytes = 1 << 20

// Handler serves the computation endpoints. It holds no mutable state.
type Handler struct {
	log       *slog.Logger
	tolerance decimal.Decimal
	version   string
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// GrowthRequest is the body of POST /api/v1/growth.
type GrowthRequest struct {
	Current  json.RawMessage `json:"current"`
	Previous json.RawMessage `json:"previous"`
}

// GrowthResponse wraps the report; growth is null without a previous period.
type GrowthResponse struct {
	Growth *profitloss.GrowthReport `json:"growth"`
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, HealthResponse{Status: "ok", Version: h.version}, http.StatusOK)
}

// PostProfitLoss handles POST /api/v1/profit-loss.
func (h *Handler) PostProfitLoss(w http.ResponseWriter, r *http.Request) {
	set, err := payload.DecodeTransactions(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.decodeError(w, err)
		return
	}
	respondJSON(w, report.NewStatement(profitloss.Calculate(set)), http.StatusOK)
}

// PostReconcile handles POST /api/v1/trading/reconcile.
func (h *Handler) PostReconcile(w http.ResponseWriter, r *http.Request) {
	in, err := payload.DecodeTrading(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.decodeError(w, err)
		return
	}
	respondJSON(w, trading.Reconcile(in, h.tolerance), http.StatusOK)
}

// PostGrowth handles POST /api/v1/growth.
func (h *Handler) PostGrowth(w http.ResponseWriter, r *http.Request) {
	var req GrowthRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	current, err := payload.DecodeAggregate(bytes.NewReader(req.Current))
	if err != nil {
		h.decodeError(w, err)
		return
	}
	previous, err := payload.DecodeAggregate(bytes.NewReader(req.Previous))
	if err != nil {
		h.decodeError(w, err)
		return
	}

	respondJSON(w, GrowthResponse{Growth: profitloss.Growth(current, previous)}, http.StatusOK)
}

func (h *Handler) decodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, payload.ErrParse) {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.log.Error("decoding request", logging.Err(err))
	respondError(w, "internal error", http.StatusInternalServerError)
}
