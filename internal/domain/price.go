package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceCacheTTL is how long a cached metal price stays fresh.
const PriceCacheTTL = 24 * time.Hour

// MetalPrice is one cached oracle reading. Rows are superseded by newer
// fetches, never deleted, so a stale row always remains as a last resort.
type MetalPrice struct {
	ID           uuid.UUID
	Metal        Metal
	Currency     string
	PricePerGram decimal.Decimal
	FetchedAt    time.Time
	ExpiresAt    time.Time
}

// Fresh reports whether the entry is still within its TTL.
func (p *MetalPrice) Fresh(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}

// ThresholdResult is the computed Nisab threshold for a currency and basis.
type ThresholdResult struct {
	Basis        ThresholdBasis
	Currency     string
	PricePerGram decimal.Decimal
	MassGrams    decimal.Decimal
	Value        decimal.Decimal
	FetchedAt    time.Time

	// Stale is set when the feed failed and an expired cache entry was used.
	Stale bool
}
