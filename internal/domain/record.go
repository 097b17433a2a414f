package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HawlDays is the length of the observation window: one lunar year.
const HawlDays = 354

// NisabYearRecord is one Hawl observation window for one user.
//
// Financial snapshot fields (wealth total, category breakdown, unlock reason)
// are stored encrypted; the repo layer moves ciphertext, the record service
// owns encryption and decryption. Threshold value and basis are locked at
// creation and never recomputed for a locked record.
type NisabYearRecord struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Status RecordStatus

	Basis          ThresholdBasis
	ThresholdValue decimal.Decimal
	Currency       string

	// HawlStartGregorian and ExpectedCompletion bound the 354-day window.
	// The Hijri strings are computed once at creation/finalization for
	// display and never silently recomputed.
	HawlStartGregorian time.Time
	HawlStartHijri     string
	ExpectedCompletion time.Time
	CompletionHijri    *string
	FinalizedAt        *time.Time

	WealthTotalEnc  []byte
	BreakdownEnc    []byte
	ObligationValue *decimal.Decimal
	UnlockReasonEnc []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WindowElapsed reports whether the 354-day window has run its course.
func (r *NisabYearRecord) WindowElapsed(now time.Time) bool {
	return !now.Before(r.ExpectedCompletion)
}

// CanFinalize reports whether a finalize call is a legal transition.
// Draft records additionally require the window to have elapsed; unlocked
// records simply re-lock.
func (r *NisabYearRecord) CanFinalize(now time.Time) error {
	switch r.Status {
	case RecordStatusDraft:
		if !r.WindowElapsed(now) {
			return ErrInvalidTransition
		}
		return nil
	case RecordStatusUnlocked:
		return nil
	default:
		return ErrInvalidTransition
	}
}

// CanUnlock reports whether an unlock call is a legal transition.
// Only finalized records unlock; draft → unlocked is illegal.
func (r *NisabYearRecord) CanUnlock() error {
	if r.Status != RecordStatusFinalized {
		return ErrInvalidTransition
	}
	return nil
}

// CanEdit reports whether field edits are allowed (unlocked only).
func (r *NisabYearRecord) CanEdit() error {
	if r.Status != RecordStatusUnlocked {
		return ErrInvalidTransition
	}
	return nil
}

// CanDelete reports whether hard deletion is allowed (draft only).
// Finalized history is never hard-deleted.
func (r *NisabYearRecord) CanDelete() error {
	if r.Status != RecordStatusDraft {
		return ErrInvalidTransition
	}
	return nil
}
