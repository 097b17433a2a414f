package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

type thresholdService interface {
	NisabThreshold(ctx context.Context, currency string, basis domain.ThresholdBasis) (domain.ThresholdResult, error)
}

// ThresholdHandler serves the live Nisab threshold preview.
type ThresholdHandler struct {
	svc thresholdService
	log *slog.Logger

	defaultCurrency string
	defaultBasis    domain.ThresholdBasis
}

// NewThresholdHandler creates a ThresholdHandler.
func NewThresholdHandler(svc thresholdService, logger *slog.Logger, currency string, basis domain.ThresholdBasis) *ThresholdHandler {
	return &ThresholdHandler{
		svc:             svc,
		log:             logger.With("handler", "threshold"),
		defaultCurrency: currency,
		defaultBasis:    basis,
	}
}

type thresholdResponse struct {
	Basis        string          `json:"basis"`
	Currency     string          `json:"currency"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
	MassGrams    decimal.Decimal `json:"mass_grams"`
	Value        decimal.Decimal `json:"value"`
	FetchedAt    time.Time       `json:"fetched_at"`
	Stale        bool            `json:"stale"`
}

// Get handles GET /api/v1/threshold?currency=USD&basis=GOLD.
// Missing parameters fall back to the configured defaults.
func (h *ThresholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = h.defaultCurrency
	}
	basis := domain.ThresholdBasis(r.URL.Query().Get("basis"))
	if basis == "" {
		basis = h.defaultBasis
	}

	result, err := h.svc.NisabThreshold(r.Context(), currency, basis)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, thresholdResponse{
		Basis:        result.Basis.String(),
		Currency:     result.Currency,
		PricePerGram: result.PricePerGram,
		MassGrams:    result.MassGrams,
		Value:        result.Value,
		FetchedAt:    result.FetchedAt,
		Stale:        result.Stale,
	})
}
