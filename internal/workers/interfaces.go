// Package workers runs independent units of work with bounded parallelism.
// The puller uses it to apply the pipelines of several logical roots at
// once.
package workers

import "context"

// Worker is one independent unit of work. Run must honor ctx and return
// when it is done.
//
// Example implementation:
//
//	type rootWorker struct{ plan models.RootPlan }
//
//	func (w *rootWorker) Run(ctx context.Context) error {
//	    // apply the plan
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a plain function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
