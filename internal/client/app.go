package client

import (
	"context"

	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/service"
	"github.com/MKhiriev/go-tree-sync/internal/workers"
	"github.com/MKhiriev/go-tree-sync/models"
)

type App struct {
	pull        service.PullService
	ui          UI
	parallelism int

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, cfg config.Workers, logger *logger.Logger) *App {
	return &App{
		pull:        services.PullService,
		ui:          ui,
		parallelism: cfg.Parallelism,
		logger:      logger,
	}
}

// Pull runs one pull over the roots selected by opts.
//
// Plans are shown and confirmed one root at a time, in key order. The
// accepted roots are then applied in parallel, bounded by the configured
// parallelism. The returned error is set only when nothing could be
// planned; per-root failures are carried in the report.
func (a *App) Pull(ctx context.Context, opts models.PullOptions) (models.PullReport, error) {
	plans, err := a.pull.Plan(ctx, opts)
	if err != nil {
		return models.PullReport{}, err
	}

	reports := make([]models.RootReport, len(plans))
	runner := workers.NewWorkers(a.parallelism)

	for i, p := range plans {
		a.ui.ShowPlan(p)

		if p.Err != nil || !p.Served || p.Plan.IsNoop() {
			reports[i] = a.pull.Apply(ctx, p)
			continue
		}

		if opts.DryRun {
			reports[i] = models.RootReport{Key: p.Key, Mode: p.Plan.Mode, Status: models.StatusDryRun}
			continue
		}

		if !opts.Force && !a.confirm(ctx, p.Key) {
			reports[i] = models.RootReport{Key: p.Key, Mode: p.Plan.Mode, Status: models.StatusSkipped}
			continue
		}

		runner.Add(workers.WorkerFunc(func(ctx context.Context) error {
			reports[i] = a.pull.Apply(ctx, p)
			return reports[i].Err
		}))
	}

	if err = runner.Run(ctx); err != nil {
		a.logger.Debug().Err(err).Msg("some roots failed")
	}

	// roots never started because ctx ended
	for i, p := range plans {
		if reports[i].Key == "" {
			reports[i] = models.RootReport{Key: p.Key, Mode: p.Plan.Mode, Status: models.StatusFailed, Err: service.ErrCancelled}
		}
	}

	report := models.PullReport{Roots: reports}
	for _, r := range reports {
		a.ui.ShowReport(r)
	}
	a.ui.ShowRun(report, opts.DryRun)

	return report, nil
}

// confirm asks the user about key. Without a terminal nothing can be
// confirmed, so the root is skipped.
func (a *App) confirm(ctx context.Context, key string) bool {
	if !a.ui.Interactive() {
		a.logger.Warn().Str("root", key).Msg("stdin is not a terminal, skipping; use --force to apply without confirmation")
		return false
	}

	accepted, err := a.ui.Confirm(ctx, key)
	if err != nil {
		a.logger.Warn().Err(err).Str("root", key).Msg("confirmation failed, skipping")
		return false
	}
	return accepted
}
