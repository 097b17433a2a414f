package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Edit adjusts the wealth figure of an unlocked record. The obligation is not
// recomputed here; that happens when the record is finalized again.
func (s *Service) Edit(ctx context.Context, recordID uuid.UUID, input EditInput) (View, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return View{}, err
	}
	if err := input.validate(); err != nil {
		return View{}, err
	}

	var rec *domain.NisabYearRecord

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err = s.records.GetByIDForUpdate(txCtx, userID, recordID)
		if err != nil {
			return err
		}

		if err := rec.CanEdit(); err != nil {
			return fmt.Errorf("edit %s record: %w", rec.Status, err)
		}

		before, err := s.decryptAmount(rec.WealthTotalEnc)
		if err != nil {
			return fmt.Errorf("record %s: stored wealth: %w", rec.ID, err)
		}

		totalEnc, err := s.encryptAmount(input.WealthTotal)
		if err != nil {
			return fmt.Errorf("seal wealth total: %w", err)
		}

		now := s.now()
		rec.WealthTotalEnc = totalEnc
		rec.UpdatedAt = now

		if err := s.records.Update(txCtx, rec); err != nil {
			return err
		}

		return s.ledger.Append(txCtx, domain.AuditEntry{
			ID:        uuid.New(),
			RecordID:  rec.ID,
			EventType: domain.AuditEventEdited,
			Changes: domain.AuditChanges{
				Edited: &domain.EditedChanges{
					WealthBefore: before,
					WealthAfter:  input.WealthTotal,
				},
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return View{}, err
	}

	s.log.InfoContext(ctx, "record edited",
		slog.String("record_id", rec.ID.String()),
		slog.String("user_id", userID.String()),
	)

	return s.view(rec)
}
