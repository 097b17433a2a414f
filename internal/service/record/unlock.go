package record

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// Unlock lifts the lock on a finalized record for correction. The
// justification is mandatory, stored encrypted on the record and on the
// ledger entry; only its length appears in the diff.
func (s *Service) Unlock(ctx context.Context, recordID uuid.UUID, reason string) (View, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return View{}, err
	}

	reason = normalizeReason(reason)
	reasonLen := utf8.RuneCountInString(reason)
	if reasonLen < minUnlockReasonLen {
		return View{}, domain.NewInsufficientJustification(minUnlockReasonLen)
	}

	reasonEnc, err := s.box.EncryptString(reason)
	if err != nil {
		return View{}, fmt.Errorf("seal unlock reason: %w", err)
	}

	var rec *domain.NisabYearRecord

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err = s.records.GetByIDForUpdate(txCtx, userID, recordID)
		if err != nil {
			return err
		}

		if err := rec.CanUnlock(); err != nil {
			return fmt.Errorf("unlock %s record: %w", rec.Status, err)
		}

		now := s.now()
		rec.Status = domain.RecordStatusUnlocked
		rec.UnlockReasonEnc = reasonEnc
		rec.UpdatedAt = now

		if err := s.records.Update(txCtx, rec); err != nil {
			return err
		}

		return s.ledger.Append(txCtx, domain.AuditEntry{
			ID:        uuid.New(),
			RecordID:  rec.ID,
			EventType: domain.AuditEventUnlocked,
			Changes: domain.AuditChanges{
				Unlocked: &domain.UnlockedChanges{ReasonLength: reasonLen},
			},
			ReasonEnc: reasonEnc,
			CreatedAt: now,
		})
	})
	if err != nil {
		return View{}, err
	}

	s.log.InfoContext(ctx, "record unlocked",
		slog.String("record_id", rec.ID.String()),
		slog.String("user_id", userID.String()),
	)

	return s.view(rec)
}
