// Package oracle implements the Nisab threshold price oracle: a cached view
// over the external metal price feed. The cache is the source of resilience:
// feed failures degrade to the most recent cached price (even expired) and
// only an empty cache makes a threshold unavailable.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/adapter/provider/metalprice"
	"github.com/hawlguard/zakat-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type priceCache interface {
	Put(ctx context.Context, price domain.MetalPrice) error
	GetLatest(ctx context.Context, metal domain.Metal, currency string) (*domain.MetalPrice, error)
}

type priceFeed interface {
	FetchSpot(ctx context.Context, metal domain.Metal, currency string) (metalprice.Quote, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service computes Nisab thresholds from cached or freshly fetched spot
// prices. It is the only writer of the price cache.
type Service struct {
	cache priceCache
	feed  priceFeed
	log   *slog.Logger

	fetchTimeout time.Duration
	now          func() time.Time
}

// NewService creates a new price oracle service.
func NewService(log *slog.Logger, cache priceCache, feed priceFeed, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &Service{
		cache:        cache,
		feed:         feed,
		log:          log.With("service", "oracle"),
		fetchTimeout: fetchTimeout,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// NisabThreshold returns the threshold value for a currency and basis.
//
// A non-expired cache entry wins outright. Otherwise the feed is consulted
// under a bounded timeout; on success a new cache row is written, on any
// failure the most recent cache entry is used regardless of expiry. Only an
// empty cache surfaces domain.ErrPriceUnavailable.
func (s *Service) NisabThreshold(ctx context.Context, currency string, basis domain.ThresholdBasis) (domain.ThresholdResult, error) {
	if !basis.IsValid() {
		return domain.ThresholdResult{}, domain.NewValidationError("basis", "must be GOLD or SILVER")
	}
	if currency == "" {
		return domain.ThresholdResult{}, domain.NewValidationError("currency", "must not be empty")
	}

	metal := basis.Metal()
	now := s.now()

	cached, err := s.cache.GetLatest(ctx, metal, currency)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.ThresholdResult{}, fmt.Errorf("read price cache: %w", err)
	}

	if cached != nil && cached.Fresh(now) {
		return s.result(basis, currency, cached.PricePerGram, cached.FetchedAt, false), nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	quote, fetchErr := s.feed.FetchSpot(fetchCtx, metal, currency)
	if fetchErr == nil {
		perGram := quote.PricePerOunce.DivRound(domain.GramsPerTroyOunce, 8)

		entry := domain.MetalPrice{
			ID:           uuid.New(),
			Metal:        metal,
			Currency:     currency,
			PricePerGram: perGram,
			FetchedAt:    quote.FetchedAt,
			ExpiresAt:    quote.FetchedAt.Add(domain.PriceCacheTTL),
		}
		if err := s.cache.Put(ctx, entry); err != nil {
			// A failed cache write must not fail the calculation.
			s.log.ErrorContext(ctx, "cache fresh price",
				slog.String("metal", metal.String()),
				slog.String("currency", currency),
				slog.String("error", err.Error()),
			)
		}

		return s.result(basis, currency, perGram, quote.FetchedAt, false), nil
	}

	if cached != nil {
		s.log.WarnContext(ctx, "price feed unavailable, serving stale cache",
			slog.String("metal", metal.String()),
			slog.String("currency", currency),
			slog.Time("cached_at", cached.FetchedAt),
			slog.String("error", fetchErr.Error()),
		)
		return s.result(basis, currency, cached.PricePerGram, cached.FetchedAt, true), nil
	}

	return domain.ThresholdResult{}, fmt.Errorf("%s/%s: %w", metal, currency, domain.ErrPriceUnavailable)
}

func (s *Service) result(basis domain.ThresholdBasis, currency string, perGram decimal.Decimal, fetchedAt time.Time, stale bool) domain.ThresholdResult {
	mass := domain.NisabMass(basis)
	return domain.ThresholdResult{
		Basis:        basis,
		Currency:     currency,
		PricePerGram: perGram,
		MassGrams:    mass,
		Value:        perGram.Mul(mass).Round(2),
		FetchedAt:    fetchedAt,
		Stale:        stale,
	}
}
