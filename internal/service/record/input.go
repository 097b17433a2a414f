package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
	"github.com/hawlguard/zakat-backend/pkg/ctxutil"
)

// CreateInput opens a new observation window. An empty basis falls back to
// the configured default. The threshold value is resolved from the price
// oracle and locked on the record at creation.
type CreateInput struct {
	Basis domain.ThresholdBasis
}

func (in *CreateInput) validate(defaultBasis domain.ThresholdBasis) error {
	if in.Basis == "" {
		in.Basis = defaultBasis
	}
	if !in.Basis.IsValid() {
		return domain.NewValidationError("basis", "must be GOLD or SILVER")
	}
	return nil
}

// EditInput adjusts the wealth figure of an unlocked record.
type EditInput struct {
	WealthTotal decimal.Decimal
}

func (in EditInput) validate() error {
	if in.WealthTotal.Sign() < 0 {
		return domain.NewValidationError("wealth_total", "must not be negative")
	}
	return nil
}

// ListInput filters and paginates the user's record listing.
type ListInput struct {
	Status    string
	Basis     string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

func (in ListInput) validate() error {
	var errs []domain.FieldError
	if in.Status != "" && !domain.RecordStatus(in.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if in.Basis != "" && !domain.ThresholdBasis(in.Basis).IsValid() {
		errs = append(errs, domain.FieldError{Field: "basis", Message: "unknown basis"})
	}
	if in.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if in.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func normalizeReason(reason string) string {
	return strings.TrimSpace(reason)
}

// userFromCtx resolves the acting user or fails with ErrUnauthorized.
// Both the REST identity middleware and the detection job populate it.
func userFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing user identity: %w", domain.ErrUnauthorized)
	}
	return userID, nil
}
