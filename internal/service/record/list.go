package record

import (
	"context"
	"strings"

	recordrepo "github.com/hawlguard/zakat-backend/internal/adapter/postgres/record"
	"github.com/hawlguard/zakat-backend/internal/domain"
)

// List returns one page of the user's records matching the filter.
func (s *Service) List(ctx context.Context, input ListInput) (ListResult, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return ListResult{}, err
	}
	if err := input.validate(); err != nil {
		return ListResult{}, err
	}

	filter := recordrepo.Filter{
		SortBy:    input.SortBy,
		SortOrder: strings.ToUpper(input.SortOrder),
		Limit:     input.Limit,
		Offset:    input.Offset,
	}
	if input.Status != "" {
		status := domain.RecordStatus(input.Status)
		filter.Status = &status
	}
	if input.Basis != "" {
		basis := domain.ThresholdBasis(input.Basis)
		filter.Basis = &basis
	}

	records, total, err := s.records.List(ctx, userID, filter)
	if err != nil {
		return ListResult{}, err
	}

	views := make([]View, 0, len(records))
	for _, rec := range records {
		view, err := s.view(rec)
		if err != nil {
			return ListResult{}, err
		}
		views = append(views, view)
	}

	return ListResult{Records: views, Total: total}, nil
}
