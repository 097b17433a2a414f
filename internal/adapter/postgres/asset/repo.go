// Package asset implements the read side of the asset store. Asset CRUD
// belongs to the surrounding application; this core only reads zakat-eligible
// rows for aggregation and enumerates users for the detection job.
// Queries are sqlc-generated (see queries.sql).
package asset

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hawlguard/zakat-backend/internal/adapter/postgres"
	"github.com/hawlguard/zakat-backend/internal/adapter/postgres/asset/sqlc"
	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Repo provides read access to the asset store backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new asset repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListZakatable returns all of a user's zakat-eligible assets in one query,
// encrypted amounts included, so the aggregator can decrypt in a single pass.
func (r *Repo) ListZakatable(ctx context.Context, userID uuid.UUID) ([]domain.Asset, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	rows, err := q.ListZakatableAssets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list zakatable assets: %w", err)
	}

	assets := make([]domain.Asset, len(rows))
	for i, row := range rows {
		assets[i] = domain.Asset{
			ID:            row.ID,
			UserID:        row.UserID,
			Category:      domain.AssetCategory(row.Category),
			Label:         row.Label,
			AmountEnc:     row.AmountEnc,
			Currency:      row.Currency,
			ZakatEligible: row.ZakatEligible,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		}
	}

	return assets, nil
}

// ListUserIDs returns every user with at least one zakat-eligible asset.
// The detection job iterates this population.
func (r *Repo) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	ids, err := q.ListZakatableUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list asset user ids: %w", err)
	}

	if ids == nil {
		ids = []uuid.UUID{}
	}

	return ids, nil
}
