package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuditEntry is one immutable fact about a record. Entries are append-only:
// no update or delete exists anywhere in the codebase, corrections are
// expressed as new entries. Entries hold a back-reference record id only,
// never a live record pointer.
type AuditEntry struct {
	ID        uuid.UUID
	RecordID  uuid.UUID
	EventType AuditEventType

	Changes AuditChanges

	// ReasonEnc carries the encrypted unlock justification for UNLOCKED
	// entries; nil for every other event type.
	ReasonEnc []byte

	CreatedAt time.Time
}

// AuditChanges is a tagged union of the known diff shapes per event type.
// Exactly one branch is non-nil, matching the entry's EventType.
type AuditChanges struct {
	Created   *CreatedChanges   `json:"created,omitempty"`
	Finalized *FinalizedChanges `json:"finalized,omitempty"`
	Unlocked  *UnlockedChanges  `json:"unlocked,omitempty"`
	Edited    *EditedChanges    `json:"edited,omitempty"`
}

// CreatedChanges snapshots the values locked when the window opened.
type CreatedChanges struct {
	Basis              ThresholdBasis  `json:"basis"`
	ThresholdValue     decimal.Decimal `json:"threshold_value"`
	Currency           string          `json:"currency"`
	HawlStartGregorian string          `json:"hawl_start_gregorian"`
	HawlStartHijri     string          `json:"hawl_start_hijri"`
	ExpectedCompletion string          `json:"expected_completion"`
}

// FinalizedChanges is the before/after diff for FINALIZED and REFINALIZED
// entries. Before fields are nil on first finalization.
type FinalizedChanges struct {
	WealthBefore     *decimal.Decimal `json:"wealth_before,omitempty"`
	WealthAfter      decimal.Decimal  `json:"wealth_after"`
	ObligationBefore *decimal.Decimal `json:"obligation_before,omitempty"`
	ObligationAfter  decimal.Decimal  `json:"obligation_after"`
}

// UnlockedChanges records that a lock was lifted. The justification itself is
// stored encrypted on the entry, only its length appears in the diff.
type UnlockedChanges struct {
	ReasonLength int `json:"reason_length"`
}

// EditedChanges is the before/after diff of an edit while unlocked.
type EditedChanges struct {
	WealthBefore decimal.Decimal `json:"wealth_before"`
	WealthAfter  decimal.Decimal `json:"wealth_after"`
}

// Validate checks that exactly one branch is set and that it matches the
// event type.
func (e *AuditEntry) Validate() error {
	var set int
	var matches bool
	if e.Changes.Created != nil {
		set++
		matches = e.EventType == AuditEventCreated
	}
	if e.Changes.Finalized != nil {
		set++
		matches = e.EventType == AuditEventFinalized || e.EventType == AuditEventRefinalized
	}
	if e.Changes.Unlocked != nil {
		set++
		matches = e.EventType == AuditEventUnlocked
	}
	if e.Changes.Edited != nil {
		set++
		matches = e.EventType == AuditEventEdited
	}
	if set != 1 || !matches {
		return NewValidationError("changes", "diff shape does not match event type")
	}
	return nil
}
