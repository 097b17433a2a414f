package record

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Filter defines parameters for listing a user's nisab year records.
type Filter struct {
	// Status keeps only records in the given lifecycle state.
	// nil means all statuses.
	Status *domain.RecordStatus

	// Basis keeps only records locked to the given threshold basis.
	Basis *domain.ThresholdBasis

	// SortBy determines the sort column: "hawl_start", "created_at", "finalized_at".
	// Default: "hawl_start".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "DESC".
	SortOrder string

	// Limit is the maximum number of records to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of records to skip.
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 200

	sortByHawlStart   = "hawl_start"
	sortByCreatedAt   = "created_at"
	sortByFinalizedAt = "finalized_at"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	switch f.SortBy {
	case sortByHawlStart, sortByCreatedAt, sortByFinalizedAt:
		// valid
	default:
		f.SortBy = sortByHawlStart
	}

	switch f.SortOrder {
	case sortOrderASC, sortOrderDESC:
		// valid
	default:
		f.SortOrder = sortOrderDESC
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}
}

// sortColumn returns the SQL column name for the current SortBy value.
func (f *Filter) sortColumn() string {
	switch f.SortBy {
	case sortByCreatedAt:
		return "created_at"
	case sortByFinalizedAt:
		return "finalized_at"
	default:
		return "hawl_start_gregorian"
	}
}

// where builds the shared WHERE conditions.
func (f *Filter) where(userID uuid.UUID) sq.And {
	conds := sq.And{sq.Eq{"user_id": userID}}
	if f.Status != nil {
		conds = append(conds, sq.Eq{"status": string(*f.Status)})
	}
	if f.Basis != nil {
		conds = append(conds, sq.Eq{"threshold_basis": string(*f.Basis)})
	}
	return conds
}

// listQuery builds the SELECT for the filtered page.
func (f *Filter) listQuery(userID uuid.UUID) sq.SelectBuilder {
	return sq.Select(recordColumns).
		From("nisab_year_records").
		Where(f.where(userID)).
		OrderBy(f.sortColumn()+" "+f.SortOrder, "id "+f.SortOrder).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		PlaceholderFormat(sq.Dollar)
}

// countQuery builds the SELECT count(*) for the same conditions.
func (f *Filter) countQuery(userID uuid.UUID) sq.SelectBuilder {
	return sq.Select("count(*)").
		From("nisab_year_records").
		Where(f.where(userID)).
		PlaceholderFormat(sq.Dollar)
}
