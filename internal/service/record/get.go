package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Get returns a record together with its full ordered audit trail.
func (s *Service) Get(ctx context.Context, recordID uuid.UUID) (DetailView, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return DetailView{}, err
	}

	rec, err := s.records.GetByID(ctx, userID, recordID)
	if err != nil {
		return DetailView{}, err
	}

	view, err := s.view(rec)
	if err != nil {
		return DetailView{}, err
	}

	entries, err := s.ledger.ListForRecord(ctx, recordID)
	if err != nil {
		return DetailView{}, fmt.Errorf("audit trail: %w", err)
	}

	return DetailView{View: view, Audit: entries}, nil
}

// AuditTrail returns the ordered ledger entries of a record. Ownership is
// checked by loading the record first.
func (s *Service) AuditTrail(ctx context.Context, recordID uuid.UUID) ([]domain.AuditEntry, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.records.GetByID(ctx, userID, recordID); err != nil {
		return nil, err
	}

	return s.ledger.ListForRecord(ctx, recordID)
}

// OpenDraft returns the user's current draft window, or domain.ErrNotFound.
func (s *Service) OpenDraft(ctx context.Context) (View, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return View{}, err
	}

	rec, err := s.records.GetDraftByUser(ctx, userID)
	if err != nil {
		return View{}, err
	}

	return s.view(rec)
}
