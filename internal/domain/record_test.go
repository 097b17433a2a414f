package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var windowStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func recordIn(status RecordStatus) *NisabYearRecord {
	return &NisabYearRecord{
		Status:             status,
		HawlStartGregorian: windowStart,
		ExpectedCompletion: windowStart.AddDate(0, 0, HawlDays),
	}
}

func TestWindowElapsed(t *testing.T) {
	t.Parallel()

	rec := recordIn(RecordStatusDraft)
	completion := rec.ExpectedCompletion

	assert.False(t, rec.WindowElapsed(windowStart))
	assert.False(t, rec.WindowElapsed(completion.Add(-time.Second)))
	assert.True(t, rec.WindowElapsed(completion), "completion instant counts as elapsed")
	assert.True(t, rec.WindowElapsed(completion.Add(time.Hour)))
}

func TestCanFinalize(t *testing.T) {
	t.Parallel()

	afterWindow := windowStart.AddDate(0, 0, HawlDays)
	beforeWindow := windowStart.AddDate(0, 0, 100)

	assert.ErrorIs(t, recordIn(RecordStatusDraft).CanFinalize(beforeWindow), ErrInvalidTransition)
	assert.NoError(t, recordIn(RecordStatusDraft).CanFinalize(afterWindow))

	// Unlocked records re-lock regardless of the window.
	assert.NoError(t, recordIn(RecordStatusUnlocked).CanFinalize(beforeWindow))

	assert.ErrorIs(t, recordIn(RecordStatusFinalized).CanFinalize(afterWindow), ErrInvalidTransition)
}

func TestCanUnlock(t *testing.T) {
	t.Parallel()

	assert.NoError(t, recordIn(RecordStatusFinalized).CanUnlock())
	assert.ErrorIs(t, recordIn(RecordStatusDraft).CanUnlock(), ErrInvalidTransition)
	assert.ErrorIs(t, recordIn(RecordStatusUnlocked).CanUnlock(), ErrInvalidTransition)
}

func TestCanEdit(t *testing.T) {
	t.Parallel()

	assert.NoError(t, recordIn(RecordStatusUnlocked).CanEdit())
	assert.ErrorIs(t, recordIn(RecordStatusDraft).CanEdit(), ErrInvalidTransition)
	assert.ErrorIs(t, recordIn(RecordStatusFinalized).CanEdit(), ErrInvalidTransition)
}

func TestCanDelete(t *testing.T) {
	t.Parallel()

	assert.NoError(t, recordIn(RecordStatusDraft).CanDelete())
	assert.ErrorIs(t, recordIn(RecordStatusFinalized).CanDelete(), ErrInvalidTransition)
	assert.ErrorIs(t, recordIn(RecordStatusUnlocked).CanDelete(), ErrInvalidTransition)
}
