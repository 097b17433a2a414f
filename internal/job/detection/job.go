// Package detection implements the periodic threshold detection job. The
// scheduler is an explicit object with Start/Stop/Trigger rather than a bare
// goroutine, so the admin surface can run a pass on demand and shutdown can
// wait for the loop to drain.
package detection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userSource interface {
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type evaluator interface {
	Evaluate(ctx context.Context, userID uuid.UUID) (domain.HawlEvaluation, error)
}

// ---------------------------------------------------------------------------
// Job
// ---------------------------------------------------------------------------

// RunSummary tallies one detection pass.
type RunSummary struct {
	Users         int
	Processed     int
	Skipped       int
	Crossings     int
	Completions   int
	Interruptions int
	Duration      time.Duration
}

// Job evaluates every user with zakat-eligible assets on a fixed interval.
// One user's failure never aborts the pass; the user is skipped and logged.
type Job struct {
	users   userSource
	tracker evaluator
	log     *slog.Logger

	interval    time.Duration
	runTimeout  time.Duration
	concurrency int

	// runMu serializes passes: a manual trigger never overlaps a scheduled run.
	runMu sync.Mutex

	stop chan struct{}
	done chan struct{}
}

// New creates a detection job. concurrency bounds the worker pool, runTimeout
// bounds one whole pass.
func New(log *slog.Logger, users userSource, tracker evaluator, interval, runTimeout time.Duration, concurrency int) *Job {
	if concurrency <= 0 {
		concurrency = 4
	}
	if interval <= 0 {
		interval = time.Hour
	}
	if runTimeout <= 0 {
		runTimeout = 10 * time.Minute
	}
	return &Job{
		users:       users,
		tracker:     tracker,
		log:         log.With("job", "detection"),
		interval:    interval,
		runTimeout:  runTimeout,
		concurrency: concurrency,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the scheduler loop. It returns immediately; the loop runs
// until Stop is called or ctx is cancelled.
func (j *Job) Start(ctx context.Context) {
	go func() {
		defer close(j.done)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.log.InfoContext(ctx, "detection scheduler started",
			slog.Duration("interval", j.interval),
			slog.Int("concurrency", j.concurrency),
		)

		for {
			select {
			case <-ctx.Done():
				return
			case <-j.stop:
				return
			case <-ticker.C:
				j.runPass(ctx)
			}
		}
	}()
}

// Stop halts the scheduler and waits for the loop to exit. A pass already in
// flight finishes within its own deadline.
func (j *Job) Stop() {
	close(j.stop)
	<-j.done
}

// Trigger runs one pass synchronously and returns its summary. Used by the
// admin endpoint and the one-shot binary; serialized against scheduled runs.
func (j *Job) Trigger(ctx context.Context) (RunSummary, error) {
	return j.runPass(ctx)
}

func (j *Job) runPass(ctx context.Context) (RunSummary, error) {
	j.runMu.Lock()
	defer j.runMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, j.runTimeout)
	defer cancel()

	started := time.Now()

	userIDs, err := j.users.ListUserIDs(ctx)
	if err != nil {
		j.log.ErrorContext(ctx, "list users", slog.String("error", err.Error()))
		return RunSummary{}, err
	}

	var (
		mu      sync.Mutex
		summary = RunSummary{Users: len(userIDs)}
		wg      sync.WaitGroup
		sem     = make(chan struct{}, j.concurrency)
	)

	launched := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			break
		}

		launched++
		wg.Add(1)
		sem <- struct{}{}
		go func(userID uuid.UUID) {
			defer wg.Done()
			defer func() { <-sem }()

			eval, err := j.tracker.Evaluate(ctx, userID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Skipped++
				j.log.WarnContext(ctx, "user evaluation skipped",
					slog.String("user_id", userID.String()),
					slog.String("error", err.Error()),
				)
				return
			}

			summary.Processed++
			switch eval {
			case domain.HawlThresholdFirstCrossed:
				summary.Crossings++
			case domain.HawlWindowCompleted:
				summary.Completions++
			case domain.HawlWindowInterrupted:
				summary.Interruptions++
			}
		}(userID)
	}

	wg.Wait()

	// Users never handed to a worker count as skipped. Tallied only after the
	// pool drains so in-flight workers cannot race the remainder.
	summary.Skipped += len(userIDs) - launched

	summary.Duration = time.Since(started)

	j.log.InfoContext(ctx, "detection pass finished",
		slog.Int("users", summary.Users),
		slog.Int("processed", summary.Processed),
		slog.Int("skipped", summary.Skipped),
		slog.Int("crossings", summary.Crossings),
		slog.Int("completions", summary.Completions),
		slog.Int("interruptions", summary.Interruptions),
		slog.Duration("duration", summary.Duration),
	)

	return summary, nil
}
