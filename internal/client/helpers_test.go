package client

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/models"
)

// stubPullService: ручная заглушка PullService
type stubPullService struct {
	plans   []models.RootPlan
	planErr error
	apply   func(ctx context.Context, p models.RootPlan) models.RootReport

	mu      sync.Mutex
	gotOpts models.PullOptions
	applied []string
}

func (s *stubPullService) Keys() []string {
	keys := make([]string, 0, len(s.plans))
	for _, p := range s.plans {
		keys = append(keys, p.Key)
	}
	return keys
}

func (s *stubPullService) Plan(_ context.Context, opts models.PullOptions) ([]models.RootPlan, error) {
	s.gotOpts = opts
	return s.plans, s.planErr
}

func (s *stubPullService) Apply(ctx context.Context, p models.RootPlan) models.RootReport {
	s.mu.Lock()
	s.applied = append(s.applied, p.Key)
	s.mu.Unlock()

	if s.apply != nil {
		return s.apply(ctx, p)
	}
	return defaultApply(p)
}

func (s *stubPullService) appliedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.applied...)
}

func defaultApply(p models.RootPlan) models.RootReport {
	switch {
	case p.Err != nil:
		return models.RootReport{Key: p.Key, Status: models.StatusFailed, Err: p.Err}
	case !p.Served:
		return models.RootReport{Key: p.Key, Status: models.StatusNotServed}
	case p.Plan.IsNoop():
		return models.RootReport{Key: p.Key, Status: models.StatusUpToDate}
	default:
		return models.RootReport{Key: p.Key, Mode: p.Plan.Mode, Status: models.StatusSynced}
	}
}

// stubUI: записывает всё, что показали пользователю
type stubUI struct {
	interactive bool
	answers     map[string]bool
	confirmErr  error

	asked   []string
	plans   []string
	reports []models.RootReport
	runs    int
	dryRun  bool
}

func (u *stubUI) Interactive() bool { return u.interactive }

func (u *stubUI) Confirm(_ context.Context, key string) (bool, error) {
	u.asked = append(u.asked, key)
	if u.confirmErr != nil {
		return false, u.confirmErr
	}
	return u.answers[key], nil
}

func (u *stubUI) ShowPlan(p models.RootPlan) { u.plans = append(u.plans, p.Key) }

func (u *stubUI) ShowReport(r models.RootReport) { u.reports = append(u.reports, r) }

func (u *stubUI) ShowRun(_ models.PullReport, dryRun bool) {
	u.runs++
	u.dryRun = dryRun
}

func newTestApp(pull *stubPullService, ui *stubUI, parallelism int) *App {
	return &App{
		pull:        pull,
		ui:          ui,
		parallelism: parallelism,
		logger:      logger.Nop(),
	}
}

func deltaPlan(key string) models.RootPlan {
	return models.RootPlan{
		Key:    key,
		Served: true,
		Diff:   models.DiffResult{New: []string{"a.txt"}},
		Plan:   models.TransferPlan{Mode: models.ModeDelta, FilesToFetch: []string{"a.txt"}, DownloadSize: 3},
	}
}

func noopPlan(key string) models.RootPlan {
	return models.RootPlan{Key: key, Served: true, Plan: models.TransferPlan{Mode: models.ModeNoop}}
}

func statuses(reports []models.RootReport) map[string]models.RootStatus {
	out := make(map[string]models.RootStatus, len(reports))
	for _, r := range reports {
		out[r.Key] = r.Status
	}
	return out
}
