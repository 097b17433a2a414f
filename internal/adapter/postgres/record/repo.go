// Package record implements the NisabYearRecord repository using PostgreSQL.
// Static queries are sqlc-generated (see queries.sql); the filtered List is
// the one dynamic query and is built with squirrel. Reads that participate in
// a status transition use GetByIDForUpdate inside a transaction so that a
// manual finalize and the batch job's interruption check serialize on the row
// instead of racing.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/hawlguard/zakat-backend/internal/adapter/postgres"
	"github.com/hawlguard/zakat-backend/internal/adapter/postgres/record/sqlc"
	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Repo provides nisab year record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// recordColumns is the column order used by the squirrel-built List query.
// It must match the scan order in scanRecord.
const recordColumns = `id, user_id, status, threshold_basis, threshold_value, currency,
hawl_start_gregorian, hawl_start_hijri, expected_completion, completion_hijri,
finalized_at, wealth_total_enc, breakdown_enc, obligation_value, unlock_reason_enc,
created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a record by primary key.
// Returns domain.ErrNotFound if the record does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, recordID uuid.UUID) (*domain.NisabYearRecord, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	row, err := q.GetRecord(ctx, sqlc.GetRecordParams{ID: recordID, UserID: userID})
	if err != nil {
		return nil, postgres.MapError(err, "nisab_year_record", recordID)
	}

	return toDomain(row), nil
}

// GetByIDForUpdate is GetByID with a row lock. Only meaningful inside a
// transaction started via TxManager.
func (r *Repo) GetByIDForUpdate(ctx context.Context, userID, recordID uuid.UUID) (*domain.NisabYearRecord, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	row, err := q.GetRecordForUpdate(ctx, sqlc.GetRecordForUpdateParams{ID: recordID, UserID: userID})
	if err != nil {
		return nil, postgres.MapError(err, "nisab_year_record", recordID)
	}

	return toDomain(row), nil
}

// GetDraftByUser returns the user's open draft record, if any.
// Returns domain.ErrNotFound when no window is open.
func (r *Repo) GetDraftByUser(ctx context.Context, userID uuid.UUID) (*domain.NisabYearRecord, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	row, err := q.GetDraftByUser(ctx, userID)
	if err != nil {
		return nil, postgres.MapError(err, "nisab_year_record", userID)
	}

	return toDomain(row), nil
}

// GetDraftByUserForUpdate is GetDraftByUser with a row lock.
func (r *Repo) GetDraftByUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.NisabYearRecord, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	row, err := q.GetDraftByUserForUpdate(ctx, userID)
	if err != nil {
		return nil, postgres.MapError(err, "nisab_year_record", userID)
	}

	return toDomain(row), nil
}

// List returns records matching the filter plus the total count. The filter
// combination is dynamic, so this is the one query squirrel builds instead of
// sqlc.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter Filter) ([]*domain.NisabYearRecord, int, error) {
	filter.normalize()
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := filter.countQuery(userID).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count nisab_year_records: %w", err)
	}

	listSQL, listArgs, err := filter.listQuery(userID).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list nisab_year_records: %w", err)
	}
	defer rows.Close()

	var records []*domain.NisabYearRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan nisab_year_record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate nisab_year_records: %w", err)
	}

	if records == nil {
		records = []*domain.NisabYearRecord{}
	}

	return records, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new record. The partial unique index on (user_id) WHERE
// status = 'DRAFT' surfaces a second open window as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, rec *domain.NisabYearRecord) error {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	err := q.CreateRecord(ctx, sqlc.CreateRecordParams{
		ID:                 rec.ID,
		UserID:             rec.UserID,
		Status:             string(rec.Status),
		ThresholdBasis:     string(rec.Basis),
		ThresholdValue:     rec.ThresholdValue,
		Currency:           rec.Currency,
		HawlStartGregorian: rec.HawlStartGregorian,
		HawlStartHijri:     rec.HawlStartHijri,
		ExpectedCompletion: rec.ExpectedCompletion,
		CompletionHijri:    strPtrToText(rec.CompletionHijri),
		FinalizedAt:        timePtrToTimestamptz(rec.FinalizedAt),
		WealthTotalEnc:     rec.WealthTotalEnc,
		BreakdownEnc:       rec.BreakdownEnc,
		ObligationValue:    decimalPtrToNull(rec.ObligationValue),
		UnlockReasonEnc:    rec.UnlockReasonEnc,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	})
	if err != nil {
		return postgres.MapError(err, "nisab_year_record", rec.ID)
	}

	return nil
}

// Update persists the mutable part of a record (status, snapshot, lock fields).
// Identity, threshold and window dates are immutable after creation.
func (r *Repo) Update(ctx context.Context, rec *domain.NisabYearRecord) error {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	affected, err := q.UpdateRecord(ctx, sqlc.UpdateRecordParams{
		ID:              rec.ID,
		UserID:          rec.UserID,
		Status:          string(rec.Status),
		CompletionHijri: strPtrToText(rec.CompletionHijri),
		FinalizedAt:     timePtrToTimestamptz(rec.FinalizedAt),
		WealthTotalEnc:  rec.WealthTotalEnc,
		BreakdownEnc:    rec.BreakdownEnc,
		ObligationValue: decimalPtrToNull(rec.ObligationValue),
		UnlockReasonEnc: rec.UnlockReasonEnc,
		UpdatedAt:       rec.UpdatedAt,
	})
	if err != nil {
		return postgres.MapError(err, "nisab_year_record", rec.ID)
	}
	if affected == 0 {
		return fmt.Errorf("nisab_year_record %s: %w", rec.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a record. Audit entries cascade away with it.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	affected, err := q.DeleteRecord(ctx, sqlc.DeleteRecordParams{ID: recordID, UserID: userID})
	if err != nil {
		return postgres.MapError(err, "nisab_year_record", recordID)
	}
	if affected == 0 {
		return fmt.Errorf("nisab_year_record %s: %w", recordID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func toDomain(row sqlc.NisabYearRecord) *domain.NisabYearRecord {
	rec := domain.NisabYearRecord{
		ID:                 row.ID,
		UserID:             row.UserID,
		Status:             domain.RecordStatus(row.Status),
		Basis:              domain.ThresholdBasis(row.ThresholdBasis),
		ThresholdValue:     row.ThresholdValue,
		Currency:           row.Currency,
		HawlStartGregorian: row.HawlStartGregorian,
		HawlStartHijri:     row.HawlStartHijri,
		ExpectedCompletion: row.ExpectedCompletion,
		WealthTotalEnc:     row.WealthTotalEnc,
		BreakdownEnc:       row.BreakdownEnc,
		UnlockReasonEnc:    row.UnlockReasonEnc,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}

	if row.CompletionHijri.Valid {
		v := row.CompletionHijri.String
		rec.CompletionHijri = &v
	}
	if row.FinalizedAt.Valid {
		v := row.FinalizedAt.Time
		rec.FinalizedAt = &v
	}
	if row.ObligationValue.Valid {
		v := row.ObligationValue.Decimal
		rec.ObligationValue = &v
	}

	return &rec
}

// scanRecord reads one squirrel-built row in recordColumns order.
func scanRecord(row pgx.Row) (*domain.NisabYearRecord, error) {
	var i sqlc.NisabYearRecord

	err := row.Scan(
		&i.ID, &i.UserID, &i.Status, &i.ThresholdBasis, &i.ThresholdValue, &i.Currency,
		&i.HawlStartGregorian, &i.HawlStartHijri, &i.ExpectedCompletion,
		&i.CompletionHijri, &i.FinalizedAt, &i.WealthTotalEnc, &i.BreakdownEnc,
		&i.ObligationValue, &i.UnlockReasonEnc, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return toDomain(i), nil
}

func strPtrToText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func timePtrToTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func decimalPtrToNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
