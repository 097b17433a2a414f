// Package hawl implements the tracker state machine that arms, completes and
// interrupts observation windows. One Evaluate pass per user decides between
// four outcomes; the pass is idempotent, running it twice in a row yields
// NO_CHANGE the second time.
package hawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
	recordsvc "github.com/hawlguard/zakat-backend/internal/service/record"
	"github.com/hawlguard/zakat-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recordLifecycle interface {
	OpenDraft(ctx context.Context) (recordsvc.View, error)
	Create(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error)
	InterruptWindow(ctx context.Context) (bool, error)
}

type wealthAggregator interface {
	Aggregate(ctx context.Context, userID uuid.UUID) (domain.WealthSnapshot, error)
}

type thresholdSource interface {
	NisabThreshold(ctx context.Context, currency string, basis domain.ThresholdBasis) (domain.ThresholdResult, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service evaluates users against the Nisab threshold.
type Service struct {
	lifecycle recordLifecycle
	wealth    wealthAggregator
	oracle    thresholdSource
	log       *slog.Logger

	currency     string
	defaultBasis domain.ThresholdBasis
	now          func() time.Time
}

// NewService creates a new hawl tracker.
func NewService(
	log *slog.Logger,
	lifecycle recordLifecycle,
	wealth wealthAggregator,
	oracle thresholdSource,
	currency string,
	defaultBasis domain.ThresholdBasis,
) *Service {
	return &Service{
		lifecycle:    lifecycle,
		wealth:       wealth,
		oracle:       oracle,
		log:          log.With("service", "hawl"),
		currency:     currency,
		defaultBasis: defaultBasis,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate runs one tracker pass for a user.
//
// Without an open window, crossing the current threshold opens one. With an
// open window, the comparison always uses the threshold locked on the draft,
// so an armed window needs no price feed at all: wealth below it interrupts
// (the draft is deleted, the next crossing starts a fresh count), an elapsed
// window above it reports completion and waits for a manual finalize.
func (s *Service) Evaluate(ctx context.Context, userID uuid.UUID) (domain.HawlEvaluation, error) {
	if userID == uuid.Nil {
		return "", domain.NewValidationError("user_id", "must not be empty")
	}
	ctx = ctxutil.WithUserID(ctx, userID)

	snapshot, err := s.wealth.Aggregate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("aggregate wealth: %w", err)
	}

	draft, err := s.lifecycle.OpenDraft(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return s.evaluateUnarmed(ctx, snapshot)
	case err != nil:
		return "", fmt.Errorf("open draft: %w", err)
	}

	return s.evaluateArmed(ctx, snapshot, draft)
}

func (s *Service) evaluateUnarmed(ctx context.Context, snapshot domain.WealthSnapshot) (domain.HawlEvaluation, error) {
	threshold, err := s.oracle.NisabThreshold(ctx, s.currency, s.defaultBasis)
	if err != nil {
		return "", fmt.Errorf("resolve threshold: %w", err)
	}

	if snapshot.Total.LessThan(threshold.Value) {
		return domain.HawlNoChange, nil
	}

	if _, err := s.lifecycle.Create(ctx, recordsvc.CreateInput{Basis: s.defaultBasis}); err != nil {
		// A concurrent evaluation opened the window first.
		if errors.Is(err, domain.ErrDuplicateOpenWindow) {
			return domain.HawlNoChange, nil
		}
		return "", fmt.Errorf("open window: %w", err)
	}

	s.log.InfoContext(ctx, "threshold first crossed",
		slog.String("user_id", snapshot.UserID.String()),
		slog.String("wealth", snapshot.Total.String()),
		slog.String("threshold", threshold.Value.String()),
	)
	return domain.HawlThresholdFirstCrossed, nil
}

func (s *Service) evaluateArmed(ctx context.Context, snapshot domain.WealthSnapshot, draft recordsvc.View) (domain.HawlEvaluation, error) {
	if snapshot.Total.LessThan(draft.ThresholdValue) {
		interrupted, err := s.lifecycle.InterruptWindow(ctx)
		if err != nil {
			return "", fmt.Errorf("interrupt window: %w", err)
		}
		if !interrupted {
			return domain.HawlNoChange, nil
		}
		return domain.HawlWindowInterrupted, nil
	}

	if !s.now().Before(draft.ExpectedCompletion) {
		// Completion only reports; the user finalizes explicitly.
		return domain.HawlWindowCompleted, nil
	}

	return domain.HawlNoChange, nil
}
