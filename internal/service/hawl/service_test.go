package hawl

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
	recordsvc "github.com/hawlguard/zakat-backend/internal/service/record"
	"github.com/hawlguard/zakat-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type lifecycleMock struct {
	OpenDraftFunc       func(ctx context.Context) (recordsvc.View, error)
	CreateFunc          func(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error)
	InterruptWindowFunc func(ctx context.Context) (bool, error)

	createCalls    int
	interruptCalls int
}

func (m *lifecycleMock) OpenDraft(ctx context.Context) (recordsvc.View, error) {
	if m.OpenDraftFunc == nil {
		return recordsvc.View{}, domain.ErrNotFound
	}
	return m.OpenDraftFunc(ctx)
}

func (m *lifecycleMock) Create(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error) {
	m.createCalls++
	if m.CreateFunc == nil {
		return recordsvc.View{Status: domain.RecordStatusDraft, Basis: input.Basis}, nil
	}
	return m.CreateFunc(ctx, input)
}

func (m *lifecycleMock) InterruptWindow(ctx context.Context) (bool, error) {
	m.interruptCalls++
	if m.InterruptWindowFunc == nil {
		return true, nil
	}
	return m.InterruptWindowFunc(ctx)
}

type wealthMock struct {
	total decimal.Decimal
	err   error
}

func (m *wealthMock) Aggregate(ctx context.Context, userID uuid.UUID) (domain.WealthSnapshot, error) {
	if m.err != nil {
		return domain.WealthSnapshot{}, m.err
	}
	return domain.WealthSnapshot{UserID: userID, Total: m.total, Currency: "USD"}, nil
}

type oracleMock struct {
	value decimal.Decimal
	err   error

	calls int
}

func (m *oracleMock) NisabThreshold(ctx context.Context, currency string, basis domain.ThresholdBasis) (domain.ThresholdResult, error) {
	m.calls++
	if m.err != nil {
		return domain.ThresholdResult{}, m.err
	}
	return domain.ThresholdResult{Basis: basis, Currency: currency, Value: m.value}, nil
}

var evalNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTracker(lc *lifecycleMock, wealth *wealthMock, oracle *oracleMock) *Service {
	svc := NewService(slog.Default(), lc, wealth, oracle, "USD", domain.ThresholdBasisGold)
	svc.now = func() time.Time { return evalNow }
	return svc
}

func openDraft(threshold string, started time.Time) func(context.Context) (recordsvc.View, error) {
	return func(ctx context.Context) (recordsvc.View, error) {
		return recordsvc.View{
			ID:                 uuid.New(),
			Status:             domain.RecordStatusDraft,
			Basis:              domain.ThresholdBasisGold,
			ThresholdValue:     decimal.RequireFromString(threshold),
			HawlStartGregorian: started,
			ExpectedCompletion: started.AddDate(0, 0, domain.HawlDays),
		}, nil
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEvaluate_FirstCrossingOpensWindow(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{}
	svc := newTracker(lc,
		&wealthMock{total: decimal.RequireFromString("7000")},
		&oracleMock{value: decimal.RequireFromString("6000")},
	)

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlThresholdFirstCrossed {
		t.Errorf("evaluation: got %s", eval)
	}
	if lc.createCalls != 1 {
		t.Errorf("creates: got %d, want 1", lc.createCalls)
	}
}

func TestEvaluate_BelowThresholdUnarmed(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{}
	svc := newTracker(lc,
		&wealthMock{total: decimal.RequireFromString("5999.99")},
		&oracleMock{value: decimal.RequireFromString("6000")},
	)

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlNoChange {
		t.Errorf("evaluation: got %s", eval)
	}
	if lc.createCalls != 0 {
		t.Errorf("creates: got %d, want 0", lc.createCalls)
	}
}

func TestEvaluate_ExactlyAtThresholdCrosses(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{}
	svc := newTracker(lc,
		&wealthMock{total: decimal.RequireFromString("6000")},
		&oracleMock{value: decimal.RequireFromString("6000")},
	)

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlThresholdFirstCrossed {
		t.Errorf("evaluation: got %s", eval)
	}
}

func TestEvaluate_ArmedUsesLockedThresholdNotOracle(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{OpenDraftFunc: openDraft("6000", evalNow.AddDate(0, 0, -100))}
	oracle := &oracleMock{err: domain.ErrPriceUnavailable}
	svc := newTracker(lc, &wealthMock{total: decimal.RequireFromString("8000")}, oracle)

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlNoChange {
		t.Errorf("evaluation: got %s", eval)
	}
	if oracle.calls != 0 {
		t.Errorf("oracle calls: got %d, want 0", oracle.calls)
	}
}

func TestEvaluate_WealthDropInterrupts(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{OpenDraftFunc: openDraft("6000", evalNow.AddDate(0, 0, -100))}
	svc := newTracker(lc, &wealthMock{total: decimal.RequireFromString("5000")}, &oracleMock{})

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlWindowInterrupted {
		t.Errorf("evaluation: got %s", eval)
	}
	if lc.interruptCalls != 1 {
		t.Errorf("interrupts: got %d, want 1", lc.interruptCalls)
	}
}

func TestEvaluate_WindowCompleted(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{OpenDraftFunc: openDraft("6000", evalNow.AddDate(0, 0, -domain.HawlDays))}
	svc := newTracker(lc, &wealthMock{total: decimal.RequireFromString("9000")}, &oracleMock{})

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlWindowCompleted {
		t.Errorf("evaluation: got %s", eval)
	}
	if lc.interruptCalls != 0 {
		t.Errorf("interrupts: got %d, want 0", lc.interruptCalls)
	}
}

func TestEvaluate_DropPastCompletionStillInterrupts(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{OpenDraftFunc: openDraft("6000", evalNow.AddDate(0, 0, -400))}
	svc := newTracker(lc, &wealthMock{total: decimal.RequireFromString("100")}, &oracleMock{})

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlWindowInterrupted {
		t.Errorf("evaluation: got %s", eval)
	}
}

func TestEvaluate_DuplicateWindowRaceIsNoChange(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{
		CreateFunc: func(ctx context.Context, input recordsvc.CreateInput) (recordsvc.View, error) {
			return recordsvc.View{}, domain.ErrDuplicateOpenWindow
		},
	}
	svc := newTracker(lc,
		&wealthMock{total: decimal.RequireFromString("7000")},
		&oracleMock{value: decimal.RequireFromString("6000")},
	)

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlNoChange {
		t.Errorf("evaluation: got %s", eval)
	}
}

func TestEvaluate_ConcurrentInterruptIsNoChange(t *testing.T) {
	t.Parallel()

	lc := &lifecycleMock{
		OpenDraftFunc:       openDraft("6000", evalNow.AddDate(0, 0, -100)),
		InterruptWindowFunc: func(ctx context.Context) (bool, error) { return false, nil },
	}
	svc := newTracker(lc, &wealthMock{total: decimal.RequireFromString("5000")}, &oracleMock{})

	eval, err := svc.Evaluate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval != domain.HawlNoChange {
		t.Errorf("evaluation: got %s", eval)
	}
}

func TestEvaluate_PriceUnavailableUnarmed(t *testing.T) {
	t.Parallel()

	svc := newTracker(&lifecycleMock{},
		&wealthMock{total: decimal.RequireFromString("7000")},
		&oracleMock{err: domain.ErrPriceUnavailable},
	)

	_, err := svc.Evaluate(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrPriceUnavailable) {
		t.Fatalf("expected ErrPriceUnavailable, got %v", err)
	}
}

func TestEvaluate_PropagatesUserIdentity(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	lc := &lifecycleMock{
		OpenDraftFunc: func(ctx context.Context) (recordsvc.View, error) {
			got, ok := ctxutil.UserIDFromCtx(ctx)
			if !ok || got != userID {
				return recordsvc.View{}, errors.New("identity not propagated")
			}
			return recordsvc.View{}, domain.ErrNotFound
		},
	}
	svc := newTracker(lc,
		&wealthMock{total: decimal.RequireFromString("1")},
		&oracleMock{value: decimal.RequireFromString("6000")},
	)

	if _, err := svc.Evaluate(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvaluate_NilUser(t *testing.T) {
	t.Parallel()

	svc := newTracker(&lifecycleMock{}, &wealthMock{}, &oracleMock{})
	_, err := svc.Evaluate(context.Background(), uuid.Nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
