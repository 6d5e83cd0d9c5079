package workers

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Workers runs its workers with at most limit of them at a time. A failing
// worker does not stop the others.
type Workers struct {
	workers []Worker
	limit   int
}

// NewWorkers creates a runner. A limit below 1 means sequential execution.
func NewWorkers(limit int, workers ...Worker) *Workers {
	if limit < 1 {
		limit = 1
	}
	return &Workers{workers: workers, limit: limit}
}

func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run starts every worker and waits for all of them. Workers not yet started
// when ctx is done are skipped with ctx.Err(). The returned error joins the
// errors of every failed worker.
func (w *Workers) Run(ctx context.Context) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(max(w.limit, 1))

	for _, worker := range w.workers {
		g.Go(func() error {
			err := ctx.Err()
			if err == nil {
				err = worker.Run(ctx)
			}
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}
