// Package scheduler runs render jobs across a bounded worker pool.
//
// Jobs are independent, so there is no dependency graph: the pool issues
// them in submission order, caps concurrency at the configured worker
// count, and isolates failures so one broken variant never stops the
// batch.
package scheduler

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"adforge/command"
	"adforge/models"
)

// Job is one schedulable render: a built command plus the identity the
// batch report needs.
type Job struct {
	ID    string // unique job identifier
	Index int    // position in the expanded combination sequence
	Name  string // deduplicated variant name
	Cmd   command.Command
}

// ProgressFunc is called after each job finishes, in completion order.
// completed counts finished jobs including the one just reported.
//
// Calls are serialized by the pool, so the callback may keep plain
// unsynchronized state.
type ProgressFunc func(completed, total int, result *models.RenderResult)

// Pool executes jobs with bounded concurrency.
type Pool struct {
	workers int
	logger  zerolog.Logger

	onProgress ProgressFunc
}

// NewPool creates a pool with the given worker count. Counts below one
// are clamped to one.
func NewPool(workers int, logger zerolog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, logger: logger}
}

// SetProgressCallback registers a per-completion callback.
func (p *Pool) SetProgressCallback(callback ProgressFunc) {
	p.onProgress = callback
}

// Run executes all jobs and returns one result per job, indexed by
// submission order regardless of completion order.
//
// A failing job records a failed result and the pool moves on. Context
// cancellation stops issuing new jobs; jobs never started are recorded
// as failures with the context's error.
func (p *Pool) Run(ctx context.Context, jobs []Job) []*models.RenderResult {
	results := make([]*models.RenderResult, len(jobs))

	var mu sync.Mutex
	completed := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			results[i], _ = models.NewRenderFailure(job.Index, job.Name, err)
			continue
		}

		i, job := i, job
		g.Go(func() error {
			p.logger.Debug().
				Str("job_id", job.ID).
				Str("name", job.Name).
				Msg("render started")

			var result *models.RenderResult
			if err := job.Cmd.Run(); err != nil {
				p.logger.Error().
					Str("job_id", job.ID).
					Str("name", job.Name).
					Err(err).
					Msg("render failed")
				result, _ = models.NewRenderFailure(job.Index, job.Name, err)
			} else {
				p.logger.Debug().
					Str("job_id", job.ID).
					Str("name", job.Name).
					Str("output", job.Cmd.GetOutputPath()).
					Msg("render finished")
				var buildErr error
				result, buildErr = models.NewRenderSuccess(job.Index, job.Name, job.Cmd.GetOutputPath())
				if buildErr != nil {
					result, _ = models.NewRenderFailure(job.Index, job.Name, buildErr)
				}
			}

			results[i] = result

			// The callback runs under the lock so completion reports
			// arrive one at a time, in completion order.
			mu.Lock()
			completed++
			if p.onProgress != nil {
				p.onProgress(completed, len(jobs), result)
			}
			mu.Unlock()

			// Failures are recorded per job, never propagated, so one
			// bad variant cannot cancel the group.
			return nil
		})
	}

	_ = g.Wait()

	return results
}
