// Package wealth aggregates a user's zakatable wealth from the encrypted
// asset store. Amounts are decrypted in a single pass; one undecryptable row
// fails the whole aggregation rather than silently understating wealth.
package wealth

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type assetRepo interface {
	ListZakatable(ctx context.Context, userID uuid.UUID) ([]domain.Asset, error)
}

type decrypter interface {
	DecryptString(blob []byte) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service computes point-in-time wealth snapshots.
type Service struct {
	assets assetRepo
	box    decrypter
	log    *slog.Logger

	currency string
	now      func() time.Time
}

// NewService creates a new wealth aggregation service. currency is the single
// operational currency; assets held in any other currency are rejected.
func NewService(log *slog.Logger, assets assetRepo, box decrypter, currency string) *Service {
	return &Service{
		assets:   assets,
		box:      box,
		log:      log.With("service", "wealth"),
		currency: currency,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Aggregate sums the user's zakat-eligible assets and returns a snapshot with
// a per-category breakdown sorted by category. No assets yields a zero total,
// not an error.
func (s *Service) Aggregate(ctx context.Context, userID uuid.UUID) (domain.WealthSnapshot, error) {
	if userID == uuid.Nil {
		return domain.WealthSnapshot{}, domain.NewValidationError("user_id", "must not be empty")
	}

	assets, err := s.assets.ListZakatable(ctx, userID)
	if err != nil {
		return domain.WealthSnapshot{}, fmt.Errorf("list assets: %w", err)
	}

	total := decimal.Zero
	byCategory := make(map[domain.AssetCategory]decimal.Decimal)

	for _, a := range assets {
		if a.Currency != s.currency {
			return domain.WealthSnapshot{}, domain.NewValidationError(
				"currency", fmt.Sprintf("asset %s held in %s, expected %s", a.ID, a.Currency, s.currency))
		}

		raw, err := s.box.DecryptString(a.AmountEnc)
		if err != nil {
			return domain.WealthSnapshot{}, fmt.Errorf("decrypt asset %s: %w", a.ID, err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.WealthSnapshot{}, fmt.Errorf("parse asset %s amount: %w", a.ID, err)
		}
		if amount.Sign() < 0 {
			return domain.WealthSnapshot{}, domain.NewValidationError(
				"amount", fmt.Sprintf("asset %s has a negative amount", a.ID))
		}

		total = total.Add(amount)
		byCategory[a.Category] = byCategory[a.Category].Add(amount)
	}

	breakdown := make([]domain.CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		breakdown = append(breakdown, domain.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Category < breakdown[j].Category
	})

	return domain.WealthSnapshot{
		UserID:       userID,
		Total:        total,
		Currency:     s.currency,
		ByCategory:   breakdown,
		AggregatedAt: s.now(),
	}, nil
}
