package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
	"github.com/hawlguard/zakat-backend/internal/hijri"
)

// Create opens a draft observation window for the acting user. The threshold
// value is resolved once and locked on the record; later price movements never
// touch an existing window. At most one draft per user may exist, enforced
// both here and by the partial unique index underneath.
func (s *Service) Create(ctx context.Context, input CreateInput) (View, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return View{}, err
	}
	if err := input.validate(s.defaultBasis); err != nil {
		return View{}, err
	}

	// Resolved before the transaction: the oracle may hit the network.
	threshold, err := s.oracle.NisabThreshold(ctx, s.currency, input.Basis)
	if err != nil {
		return View{}, fmt.Errorf("resolve threshold: %w", err)
	}

	now := s.now()
	start := now.Truncate(24 * time.Hour)

	rec := &domain.NisabYearRecord{
		ID:                 uuid.New(),
		UserID:             userID,
		Status:             domain.RecordStatusDraft,
		Basis:              input.Basis,
		ThresholdValue:     threshold.Value,
		Currency:           s.currency,
		HawlStartGregorian: start,
		HawlStartHijri:     hijri.FromTime(start).String(),
		ExpectedCompletion: start.AddDate(0, 0, domain.HawlDays),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.records.GetDraftByUserForUpdate(txCtx, userID)
		switch {
		case err == nil:
			return domain.ErrDuplicateOpenWindow
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("check open window: %w", err)
		}

		if err := s.records.Create(txCtx, rec); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return domain.ErrDuplicateOpenWindow
			}
			return err
		}

		return s.ledger.Append(txCtx, domain.AuditEntry{
			ID:        uuid.New(),
			RecordID:  rec.ID,
			EventType: domain.AuditEventCreated,
			Changes: domain.AuditChanges{
				Created: &domain.CreatedChanges{
					Basis:              rec.Basis,
					ThresholdValue:     rec.ThresholdValue,
					Currency:           rec.Currency,
					HawlStartGregorian: rec.HawlStartGregorian.Format(time.DateOnly),
					HawlStartHijri:     rec.HawlStartHijri,
					ExpectedCompletion: rec.ExpectedCompletion.Format(time.DateOnly),
				},
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return View{}, err
	}

	s.log.InfoContext(ctx, "hawl window opened",
		slog.String("record_id", rec.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("basis", rec.Basis.String()),
		slog.String("threshold", rec.ThresholdValue.String()),
	)

	return s.view(rec)
}
