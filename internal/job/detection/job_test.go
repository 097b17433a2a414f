package detection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

type userSourceMock struct {
	ListUserIDsFunc func(ctx context.Context) ([]uuid.UUID, error)
}

func (m *userSourceMock) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	return m.ListUserIDsFunc(ctx)
}

type evaluatorMock struct {
	EvaluateFunc func(ctx context.Context, userID uuid.UUID) (domain.HawlEvaluation, error)
}

func (m *evaluatorMock) Evaluate(ctx context.Context, userID uuid.UUID) (domain.HawlEvaluation, error) {
	return m.EvaluateFunc(ctx, userID)
}

func userIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return ids
}

func TestTrigger_SummarizesEvaluations(t *testing.T) {
	t.Parallel()

	ids := userIDs(4)
	outcomes := map[uuid.UUID]domain.HawlEvaluation{
		ids[0]: domain.HawlThresholdFirstCrossed,
		ids[1]: domain.HawlWindowCompleted,
		ids[2]: domain.HawlWindowInterrupted,
		ids[3]: domain.HawlNoChange,
	}

	job := New(slog.Default(),
		&userSourceMock{ListUserIDsFunc: func(ctx context.Context) ([]uuid.UUID, error) { return ids, nil }},
		&evaluatorMock{EvaluateFunc: func(ctx context.Context, id uuid.UUID) (domain.HawlEvaluation, error) {
			return outcomes[id], nil
		}},
		time.Hour, time.Minute, 2,
	)

	summary, err := job.Trigger(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Users != 4 || summary.Processed != 4 || summary.Skipped != 0 {
		t.Errorf("counts: %+v", summary)
	}
	if summary.Crossings != 1 || summary.Completions != 1 || summary.Interruptions != 1 {
		t.Errorf("outcomes: %+v", summary)
	}
}

func TestTrigger_UserFailureIsIsolated(t *testing.T) {
	t.Parallel()

	ids := userIDs(3)
	bad := ids[1]

	job := New(slog.Default(),
		&userSourceMock{ListUserIDsFunc: func(ctx context.Context) ([]uuid.UUID, error) { return ids, nil }},
		&evaluatorMock{EvaluateFunc: func(ctx context.Context, id uuid.UUID) (domain.HawlEvaluation, error) {
			if id == bad {
				return "", errors.New("decrypt failed")
			}
			return domain.HawlNoChange, nil
		}},
		time.Hour, time.Minute, 2,
	)

	summary, err := job.Trigger(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Processed != 2 || summary.Skipped != 1 {
		t.Errorf("counts: %+v", summary)
	}
}

func TestTrigger_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	const limit = 3
	var inFlight, peak atomic.Int32

	job := New(slog.Default(),
		&userSourceMock{ListUserIDsFunc: func(ctx context.Context) ([]uuid.UUID, error) { return userIDs(20), nil }},
		&evaluatorMock{EvaluateFunc: func(ctx context.Context, id uuid.UUID) (domain.HawlEvaluation, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return domain.HawlNoChange, nil
		}},
		time.Hour, time.Minute, limit,
	)

	if _, err := job.Trigger(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := peak.Load(); got > limit {
		t.Errorf("peak concurrency: got %d, limit %d", got, limit)
	}
}

func TestTrigger_DeadlineAccountsEveryUser(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	job := New(slog.Default(),
		&userSourceMock{ListUserIDsFunc: func(ctx context.Context) ([]uuid.UUID, error) { return userIDs(12), nil }},
		&evaluatorMock{EvaluateFunc: func(ctx context.Context, id uuid.UUID) (domain.HawlEvaluation, error) {
			if calls.Add(1) <= 3 {
				return domain.HawlNoChange, nil
			}
			<-ctx.Done()
			return "", ctx.Err()
		}},
		time.Hour, 50*time.Millisecond, 2,
	)

	summary, err := job.Trigger(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Users != 12 {
		t.Fatalf("users: got %d", summary.Users)
	}
	if got := summary.Processed + summary.Skipped; got != summary.Users {
		t.Errorf("processed+skipped: got %d, want %d (%+v)", got, summary.Users, summary)
	}
	if summary.Processed == 0 {
		t.Errorf("expected some users processed before the deadline: %+v", summary)
	}
}

func TestTrigger_ListFailure(t *testing.T) {
	t.Parallel()

	job := New(slog.Default(),
		&userSourceMock{ListUserIDsFunc: func(ctx context.Context) ([]uuid.UUID, error) {
			return nil, errors.New("db down")
		}},
		&evaluatorMock{EvaluateFunc: func(ctx context.Context, id uuid.UUID) (domain.HawlEvaluation, error) {
			t.Error("evaluator must not be called")
			return domain.HawlNoChange, nil
		}},
		time.Hour, time.Minute, 2,
	)

	if _, err := job.Trigger(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestStartStop_RunsScheduledPasses(t *testing.T) {
	t.Parallel()

	var passes atomic.Int32
	job := New(slog.Default(),
		&userSourceMock{ListUserIDsFunc: func(ctx context.Context) ([]uuid.UUID, error) {
			passes.Add(1)
			return nil, nil
		}},
		&evaluatorMock{EvaluateFunc: func(ctx context.Context, id uuid.UUID) (domain.HawlEvaluation, error) {
			return domain.HawlNoChange, nil
		}},
		10*time.Millisecond, time.Minute, 1,
	)

	job.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	job.Stop()

	if passes.Load() == 0 {
		t.Error("expected at least one scheduled pass")
	}
}

func TestTrigger_SerializedAgainstItself(t *testing.T) {
	t.Parallel()

	var inRun atomic.Int32
	job := New(slog.Default(),
		&userSourceMock{ListUserIDsFunc: func(ctx context.Context) ([]uuid.UUID, error) {
			if inRun.Add(1) > 1 {
				t.Error("overlapping passes")
			}
			defer inRun.Add(-1)
			time.Sleep(10 * time.Millisecond)
			return nil, nil
		}},
		&evaluatorMock{EvaluateFunc: func(ctx context.Context, id uuid.UUID) (domain.HawlEvaluation, error) {
			return domain.HawlNoChange, nil
		}},
		time.Hour, time.Minute, 1,
	)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = job.Trigger(context.Background())
		}()
	}
	wg.Wait()
}
