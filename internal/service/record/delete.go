package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Delete removes a draft record. Finalized history is never hard-deleted.
// The draft's ledger entries cascade away with the row.
func (s *Service) Delete(ctx context.Context, recordID uuid.UUID) error {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.records.GetByIDForUpdate(txCtx, userID, recordID)
		if err != nil {
			return err
		}

		if err := rec.CanDelete(); err != nil {
			return fmt.Errorf("delete %s record: %w", rec.Status, err)
		}

		return s.records.Delete(txCtx, userID, recordID)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "draft record deleted",
		slog.String("record_id", recordID.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
