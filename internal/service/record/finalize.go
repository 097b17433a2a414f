package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
	"github.com/hawlguard/zakat-backend/internal/hijri"
)

// Finalize locks a record. A draft finalizes only after its window has
// elapsed; wealth is re-aggregated at this moment and sealed into the record.
// An unlocked record re-finalizes from its stored (possibly edited) snapshot,
// so an edit is not silently overwritten by a fresh aggregation. The
// obligation is always computed from the threshold locked at creation.
func (s *Service) Finalize(ctx context.Context, recordID uuid.UUID) (View, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return View{}, err
	}

	// Aggregation decrypts the asset store; keep it out of the transaction.
	// The row lock below still serializes the actual transition.
	snapshot, err := s.wealth.Aggregate(ctx, userID)
	if err != nil {
		return View{}, fmt.Errorf("aggregate wealth: %w", err)
	}

	var rec *domain.NisabYearRecord

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err = s.records.GetByIDForUpdate(txCtx, userID, recordID)
		if err != nil {
			return err
		}

		now := s.now()
		if err := rec.CanFinalize(now); err != nil {
			return fmt.Errorf("finalize %s record: %w", rec.Status, err)
		}

		eventType := domain.AuditEventFinalized
		changes := domain.FinalizedChanges{}

		wealthTotal := snapshot.Total
		breakdown := snapshot.ByCategory

		if rec.Status == domain.RecordStatusUnlocked {
			eventType = domain.AuditEventRefinalized

			stored, err := s.decryptAmount(rec.WealthTotalEnc)
			if err != nil {
				return fmt.Errorf("record %s: stored wealth: %w", rec.ID, err)
			}
			wealthTotal = stored
			breakdown = nil // edited records keep their existing breakdown

			if rec.ObligationValue != nil {
				before := *rec.ObligationValue
				changes.ObligationBefore = &before
			}
		}

		obligation := domain.Obligation(wealthTotal, rec.ThresholdValue)
		changes.WealthAfter = wealthTotal
		changes.ObligationAfter = obligation

		if err := s.seal(rec, wealthTotal, breakdown); err != nil {
			return err
		}

		completionHijri := hijri.FromTime(now).String()
		rec.Status = domain.RecordStatusFinalized
		rec.FinalizedAt = &now
		rec.CompletionHijri = &completionHijri
		rec.ObligationValue = &obligation
		rec.UnlockReasonEnc = nil
		rec.UpdatedAt = now

		if err := s.records.Update(txCtx, rec); err != nil {
			return err
		}

		return s.ledger.Append(txCtx, domain.AuditEntry{
			ID:        uuid.New(),
			RecordID:  rec.ID,
			EventType: eventType,
			Changes:   domain.AuditChanges{Finalized: &changes},
			CreatedAt: now,
		})
	})
	if err != nil {
		return View{}, err
	}

	s.log.InfoContext(ctx, "record finalized",
		slog.String("record_id", rec.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("obligation", rec.ObligationValue.String()),
	)

	return s.view(rec)
}

// seal encrypts the wealth snapshot onto the record. A nil breakdown leaves
// the stored breakdown untouched.
func (s *Service) seal(rec *domain.NisabYearRecord, total decimal.Decimal, breakdown []domain.CategoryAmount) error {
	totalEnc, err := s.encryptAmount(total)
	if err != nil {
		return fmt.Errorf("seal wealth total: %w", err)
	}
	rec.WealthTotalEnc = totalEnc

	if breakdown != nil {
		breakdownEnc, err := s.encryptBreakdown(breakdown)
		if err != nil {
			return fmt.Errorf("seal breakdown: %w", err)
		}
		rec.BreakdownEnc = breakdownEnc
	}

	return nil
}
