package record

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// InterruptWindow deletes the acting user's open draft window, if any. Called
// by the hawl tracker when wealth drops below the locked threshold; a broken
// window leaves no record behind, the next crossing starts a fresh count.
//
// Returns false without error when no draft exists, so concurrent
// evaluations of the same user are idempotent.
func (s *Service) InterruptWindow(ctx context.Context) (bool, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return false, err
	}

	var interrupted bool

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.records.GetDraftByUserForUpdate(txCtx, userID)
		if err != nil {
			return err
		}

		if err := s.records.Delete(txCtx, userID, rec.ID); err != nil {
			return err
		}

		interrupted = true
		s.log.InfoContext(ctx, "hawl window interrupted",
			slog.String("record_id", rec.ID.String()),
			slog.String("user_id", userID.String()),
		)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return interrupted, nil
}
