package wealth

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

type assetRepoMock struct {
	ListZakatableFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Asset, error)
}

func (m *assetRepoMock) ListZakatable(ctx context.Context, userID uuid.UUID) ([]domain.Asset, error) {
	return m.ListZakatableFunc(ctx, userID)
}

// plainBox treats the stored blob as plaintext, so tests can write amounts
// directly without a key.
type plainBox struct{}

func (plainBox) DecryptString(blob []byte) (string, error) {
	if string(blob) == "garbage" {
		return "", errors.New("invalid ciphertext")
	}
	return string(blob), nil
}

func asset(userID uuid.UUID, category domain.AssetCategory, amount, currency string) domain.Asset {
	return domain.Asset{
		ID:            uuid.New(),
		UserID:        userID,
		Category:      category,
		AmountEnc:     []byte(amount),
		Currency:      currency,
		ZakatEligible: true,
	}
}

func TestAggregate_SumsAndBreaksDown(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := &assetRepoMock{
		ListZakatableFunc: func(ctx context.Context, id uuid.UUID) ([]domain.Asset, error) {
			return []domain.Asset{
				asset(id, domain.AssetCategoryCash, "5000.00", "USD"),
				asset(id, domain.AssetCategoryGold, "3200.50", "USD"),
				asset(id, domain.AssetCategoryCash, "1799.50", "USD"),
			}, nil
		},
	}

	svc := NewService(slog.Default(), repo, plainBox{}, "USD")
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	snap, err := svc.Aggregate(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := snap.Total.String(), "10000"; got != want {
		t.Errorf("total: got %s, want %s", got, want)
	}
	if len(snap.ByCategory) != 2 {
		t.Fatalf("breakdown size: got %d, want 2", len(snap.ByCategory))
	}
	// Sorted by category: CASH before GOLD.
	if snap.ByCategory[0].Category != domain.AssetCategoryCash {
		t.Errorf("first category: got %s", snap.ByCategory[0].Category)
	}
	if got, want := snap.ByCategory[0].Amount.String(), "6799.5"; got != want {
		t.Errorf("cash amount: got %s, want %s", got, want)
	}
	if got, want := snap.ByCategory[1].Amount.String(), "3200.5"; got != want {
		t.Errorf("gold amount: got %s, want %s", got, want)
	}
	if snap.Currency != "USD" {
		t.Errorf("currency: got %s", snap.Currency)
	}
}

func TestAggregate_NoAssetsZeroTotal(t *testing.T) {
	t.Parallel()

	repo := &assetRepoMock{
		ListZakatableFunc: func(ctx context.Context, id uuid.UUID) ([]domain.Asset, error) {
			return []domain.Asset{}, nil
		},
	}

	svc := NewService(slog.Default(), repo, plainBox{}, "USD")
	snap, err := svc.Aggregate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.Total.IsZero() {
		t.Errorf("total: got %s, want 0", snap.Total)
	}
	if len(snap.ByCategory) != 0 {
		t.Errorf("breakdown: got %d entries, want 0", len(snap.ByCategory))
	}
}

func TestAggregate_DecryptFailureFailsWhole(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := &assetRepoMock{
		ListZakatableFunc: func(ctx context.Context, id uuid.UUID) ([]domain.Asset, error) {
			return []domain.Asset{
				asset(id, domain.AssetCategoryCash, "100", "USD"),
				asset(id, domain.AssetCategoryCash, "garbage", "USD"),
			}, nil
		},
	}

	svc := NewService(slog.Default(), repo, plainBox{}, "USD")
	if _, err := svc.Aggregate(context.Background(), userID); err == nil {
		t.Fatal("expected error for undecryptable asset")
	}
}

func TestAggregate_RejectsForeignCurrency(t *testing.T) {
	t.Parallel()

	repo := &assetRepoMock{
		ListZakatableFunc: func(ctx context.Context, id uuid.UUID) ([]domain.Asset, error) {
			return []domain.Asset{asset(id, domain.AssetCategoryCash, "100", "EUR")}, nil
		},
	}

	svc := NewService(slog.Default(), repo, plainBox{}, "USD")
	_, err := svc.Aggregate(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAggregate_RejectsNegativeAmount(t *testing.T) {
	t.Parallel()

	repo := &assetRepoMock{
		ListZakatableFunc: func(ctx context.Context, id uuid.UUID) ([]domain.Asset, error) {
			return []domain.Asset{asset(id, domain.AssetCategoryCash, "-5", "USD")}, nil
		},
	}

	svc := NewService(slog.Default(), repo, plainBox{}, "USD")
	_, err := svc.Aggregate(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAggregate_NilUser(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &assetRepoMock{}, plainBox{}, "USD")
	_, err := svc.Aggregate(context.Background(), uuid.Nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
