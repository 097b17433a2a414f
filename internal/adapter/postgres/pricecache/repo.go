// Package pricecache implements the metal price cache repository using
// PostgreSQL, with sqlc-generated queries. Fetches supersede older rows
// instead of deleting them, so the newest row for a metal/currency pair is
// the cache entry and older rows keep a stale-fallback trail.
// Last-fetch-wins is acceptable: this is a cache, not a ledger.
package pricecache

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hawlguard/zakat-backend/internal/adapter/postgres"
	"github.com/hawlguard/zakat-backend/internal/adapter/postgres/pricecache/sqlc"
	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Repo provides metal price cache persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new price cache repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Put inserts a fresh cache row.
func (r *Repo) Put(ctx context.Context, price domain.MetalPrice) error {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	err := q.CreateMetalPrice(ctx, sqlc.CreateMetalPriceParams{
		ID:           price.ID,
		Metal:        string(price.Metal),
		Currency:     price.Currency,
		PricePerGram: price.PricePerGram,
		FetchedAt:    price.FetchedAt,
		ExpiresAt:    price.ExpiresAt,
	})
	if err != nil {
		return postgres.MapError(err, "metal_price", price.ID)
	}

	return nil
}

// GetLatest returns the most recent cache row for a metal/currency pair,
// expired or not. Returns domain.ErrNotFound when nothing was ever cached.
func (r *Repo) GetLatest(ctx context.Context, metal domain.Metal, currency string) (*domain.MetalPrice, error) {
	q := sqlc.New(postgres.QuerierFromCtx(ctx, r.pool))

	row, err := q.GetLatestMetalPrice(ctx, sqlc.GetLatestMetalPriceParams{
		Metal:    string(metal),
		Currency: currency,
	})
	if err != nil {
		return nil, postgres.MapError(err, "metal_price", row.ID)
	}

	return &domain.MetalPrice{
		ID:           row.ID,
		Metal:        domain.Metal(row.Metal),
		Currency:     row.Currency,
		PricePerGram: row.PricePerGram,
		FetchedAt:    row.FetchedAt,
		ExpiresAt:    row.ExpiresAt,
	}, nil
}
