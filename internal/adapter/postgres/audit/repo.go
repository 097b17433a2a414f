// Package audit implements the audit ledger repository using PostgreSQL.
// Queries are sqlc-generated (see queries.sql). The ledger is append-only:
// the only write query is CreateAuditEntry, and no UPDATE or DELETE statement
// for nisab_audit_entries exists anywhere in the codebase.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hawlguard/zakat-backend/internal/adapter/postgres"
	"github.com/hawlguard/zakat-backend/internal/adapter/postgres/audit/sqlc"
	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Repo provides audit ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit ledger repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts a new ledger entry. Entries are immutable once appended.
func (r *Repo) Append(ctx context.Context, entry domain.AuditEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("audit_entry %s: %w", entry.ID, err)
	}

	changesJSON, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("audit_entry %s: marshal changes: %w", entry.ID, err)
	}

	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))
	err = q.CreateAuditEntry(ctx, sqlc.CreateAuditEntryParams{
		ID:        entry.ID,
		RecordID:  entry.RecordID,
		EventType: string(entry.EventType),
		Changes:   changesJSON,
		ReasonEnc: entry.ReasonEnc,
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		return postgres.MapError(err, "audit_entry", entry.ID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListForRecord returns the complete, replayable history of a record,
// ordered by created_at ASC (ties broken by id for stability).
func (r *Repo) ListForRecord(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	rows, err := q.ListEntriesForRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("list audit_entries: %w", err)
	}

	entries := make([]domain.AuditEntry, len(rows))
	for i, row := range rows {
		entry, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}

	return entries, nil
}

// CountForRecord returns the number of ledger entries for a record.
func (r *Repo) CountForRecord(ctx context.Context, recordID uuid.UUID) (int, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	count, err := q.CountEntriesForRecord(ctx, recordID)
	if err != nil {
		return 0, fmt.Errorf("count audit_entries: %w", err)
	}

	return int(count), nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func toDomain(row sqlc.NisabAuditEntry) (domain.AuditEntry, error) {
	entry := domain.AuditEntry{
		ID:        row.ID,
		RecordID:  row.RecordID,
		EventType: domain.AuditEventType(row.EventType),
		ReasonEnc: row.ReasonEnc,
		CreatedAt: row.CreatedAt,
	}

	if len(row.Changes) > 0 {
		if err := json.Unmarshal(row.Changes, &entry.Changes); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("audit_entry %s: unmarshal changes: %w", row.ID, err)
		}
	}

	return entry, nil
}
