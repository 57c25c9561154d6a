package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/courtsim/internal/config"
	"github.com/jstittsworth/courtsim/internal/engine"
	"github.com/jstittsworth/courtsim/internal/storage"
)

const defaultMaxAttempts = 2

// Runner fans a batch of identical matchups out over a worker pool. Each
// game gets its own deep-cloned teams and its own RNG seeded from the base
// seed plus the game index, so results do not depend on scheduling order.
type Runner struct {
	Games   int
	Workers int
	Seed    int64

	// MaxAttempts caps how many times one game is tried with a shifted
	// seed before it counts as failed. Zero means the default of 2.
	MaxAttempts int

	Store     *storage.Store
	Publisher Publisher
	Log       *logrus.Logger
}

func (r *Runner) maxAttempts() int {
	if r.MaxAttempts > 0 {
		return r.MaxAttempts
	}
	return defaultMaxAttempts
}

type job struct {
	index int
	seed  int64
}

type outcome struct {
	result *engine.MatchResult
	home   *engine.Team
	away   *engine.Team
	err    error
}

// Run simulates the batch and returns every completed result. Games that
// fail after retry are counted and skipped, not fatal. Cancellation stops
// new games between matches; in-flight games finish.
func (r *Runner) Run(ctx context.Context, home, away *engine.Team, cfg config.GameConfig) ([]*engine.MatchResult, error) {
	if r.Games <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", r.Games)
	}
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	runID := uuid.New().String()
	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{
			"run_id":  runID,
			"games":   r.Games,
			"workers": workers,
			"seed":    r.Seed,
		}).Info("Starting batch run")
	}

	jobs := make(chan job)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.worker(ctx, workerID, jobs, outcomes, home, away, cfg)
		}(w)
	}

	go func() {
		defer close(jobs)
		for i := 0; i < r.Games; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{index: i, seed: r.Seed + int64(i)}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var results []*engine.MatchResult
	failed := 0
	for out := range outcomes {
		if out.err != nil {
			failed++
			if r.Log != nil {
				r.Log.WithError(out.err).Warn("Game simulation failed")
			}
		} else {
			results = append(results, out.result)
			if r.Store != nil {
				if err := r.Store.SaveMatch(runID, out.result, out.home, out.away); err != nil {
					if r.Log != nil {
						r.Log.WithError(err).WithField("game_id", out.result.GameID).Error("Failed to persist match")
					}
				}
			}
		}
		r.publishProgress(ctx, runID, len(results), failed)
	}

	if err := ctx.Err(); err != nil && len(results) == 0 {
		return nil, fmt.Errorf("batch run cancelled before any game completed: %w", err)
	}
	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{
			"run_id":    runID,
			"completed": len(results),
			"failed":    failed,
		}).Info("Batch run finished")
	}
	return results, nil
}

func (r *Runner) worker(ctx context.Context, workerID int, jobs <-chan job, outcomes chan<- outcome, home, away *engine.Team, cfg config.GameConfig) {
	if r.Log != nil {
		r.Log.WithField("worker_id", workerID).Debug("Worker started")
	}
	for j := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		outcomes <- r.simulateOne(j, home, away, cfg)
	}
}

// simulateOne plays a single game on fresh clones, retrying once with a
// shifted seed if the engine rejects the setup.
func (r *Runner) simulateOne(j job, home, away *engine.Team, cfg config.GameConfig) outcome {
	attempts := r.maxAttempts()
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		h := engine.CloneTeam(home)
		a := engine.CloneTeam(away)
		rng := engine.NewRNG(j.seed + int64(attempt)*1_000_003)

		eng, err := engine.NewMatchEngine(h, a, cfg, engine.WithRNG(rng))
		if err != nil {
			lastErr = err
			continue
		}
		res := eng.Run(uuid.New().String())
		return outcome{result: res, home: h, away: a}
	}
	return outcome{err: fmt.Errorf("game %d failed after %d attempts: %w", j.index, attempts, lastErr)}
}

func (r *Runner) publishProgress(ctx context.Context, runID string, completed, failed int) {
	if r.Publisher == nil {
		return
	}
	update := ProgressUpdate{
		RunID:     runID,
		Completed: completed,
		Total:     r.Games,
		Failed:    failed,
		Timestamp: time.Now().UTC(),
	}
	if err := r.Publisher.Publish(ctx, update); err != nil && r.Log != nil {
		r.Log.WithError(err).Debug("Failed to publish progress update")
	}
}
