package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// SeedAsset inserts an asset row and returns its id. Amounts are stored as
// raw bytes; integration tests use plaintext decimal strings so they can
// assert aggregation without a real cipher.
func SeedAsset(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, category domain.AssetCategory, amount string, eligible bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO assets (id, user_id, category, label, amount_enc, currency, zakat_eligible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`,
		id, userID, string(category), "seed "+string(category), []byte(amount), "USD", eligible,
	)
	if err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	return id
}

// NewDraftRecord builds an in-memory draft record with a window starting at
// start. Nothing is persisted.
func NewDraftRecord(userID uuid.UUID, start time.Time) *domain.NisabYearRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.NisabYearRecord{
		ID:                 uuid.New(),
		UserID:             userID,
		Status:             domain.RecordStatusDraft,
		Basis:              domain.ThresholdBasisGold,
		ThresholdValue:     decimal.RequireFromString("6000.00"),
		Currency:           "USD",
		HawlStartGregorian: start,
		HawlStartHijri:     "1447-09-10",
		ExpectedCompletion: start.AddDate(0, 0, domain.HawlDays),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// SeedRecord inserts a record row directly, bypassing the repository.
func SeedRecord(t *testing.T, pool *pgxpool.Pool, rec *domain.NisabYearRecord) {
	t.Helper()

	obligation := decimal.NullDecimal{}
	if rec.ObligationValue != nil {
		obligation = decimal.NullDecimal{Decimal: *rec.ObligationValue, Valid: true}
	}

	_, err := pool.Exec(context.Background(), `
		INSERT INTO nisab_year_records (id, user_id, status, threshold_basis, threshold_value, currency,
			hawl_start_gregorian, hawl_start_hijri, expected_completion, completion_hijri,
			finalized_at, wealth_total_enc, breakdown_enc, obligation_value, unlock_reason_enc,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		rec.ID, rec.UserID, string(rec.Status), string(rec.Basis), rec.ThresholdValue, rec.Currency,
		rec.HawlStartGregorian, rec.HawlStartHijri, rec.ExpectedCompletion, rec.CompletionHijri,
		rec.FinalizedAt, rec.WealthTotalEnc, rec.BreakdownEnc, obligation, rec.UnlockReasonEnc,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

// SeedAuditEntry inserts a ledger row directly for read-path tests.
func SeedAuditEntry(t *testing.T, pool *pgxpool.Pool, recordID uuid.UUID, event domain.AuditEventType, changesJSON string, createdAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO nisab_audit_entries (id, record_id, event_type, changes, reason_enc, created_at)
		VALUES ($1, $2, $3, $4, NULL, $5)`,
		id, recordID, string(event), []byte(changesJSON), createdAt,
	)
	if err != nil {
		t.Fatalf("seed audit entry: %v", err)
	}

	return id
}
