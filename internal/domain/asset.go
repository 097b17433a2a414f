package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset is one holding in the user's asset store. CRUD on assets belongs to
// the surrounding application; this core only reads zakat-eligible rows.
// The monetary amount is stored encrypted.
type Asset struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Category      AssetCategory
	Label         string
	AmountEnc     []byte
	Currency      string
	ZakatEligible bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CategoryAmount is one slice of the wealth breakdown.
type CategoryAmount struct {
	Category AssetCategory   `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// WealthSnapshot is a user's aggregated zakatable wealth at a point in time.
// The breakdown is retained for audit and reporting, not used in threshold
// comparison.
type WealthSnapshot struct {
	UserID       uuid.UUID
	Total        decimal.Decimal
	Currency     string
	ByCategory   []CategoryAmount
	AggregatedAt time.Time
}
