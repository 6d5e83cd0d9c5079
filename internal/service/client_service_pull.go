package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/MKhiriev/go-tree-sync/internal/adapter"
	"github.com/MKhiriev/go-tree-sync/internal/archive"
	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/store"
	"github.com/MKhiriev/go-tree-sync/internal/validators"
	"github.com/MKhiriev/go-tree-sync/models"
)

type clientPullService struct {
	tree      store.TreeStorage
	adapter   adapter.OriginAdapter
	planner   SyncService
	extractor archive.Extractor
	validator validators.Validator

	roots   map[string]string
	keys    []string
	tempDir string

	logger *logger.Logger
}

func NewClientPullService(tree store.TreeStorage, originAdapter adapter.OriginAdapter, cfg config.Storage, logger *logger.Logger) PullService {
	keys := cfg.Keys()

	return &clientPullService{
		tree:      tree,
		adapter:   originAdapter,
		planner:   NewSyncService(),
		extractor: archive.NewExtractor(cfg.ArchivePrefix, logger),
		validator: validators.NewRequestValidator(keys),
		roots:     cfg.RootDirs(),
		keys:      keys,
		tempDir:   cfg.TempDir,
		logger:    logger,
	}
}

func (s *clientPullService) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s *clientPullService) Plan(ctx context.Context, opts models.PullOptions) ([]models.RootPlan, error) {
	if err := s.validator.Validate(ctx, opts, validators.FieldKeys); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	keys := s.selectKeys(opts.Keys)

	remote, err := s.adapter.FetchManifests(ctx, keys)
	if err != nil {
		return nil, classifyError(fmt.Errorf("fetch manifests: %w", err))
	}

	plans := make([]models.RootPlan, 0, len(keys))
	for _, key := range keys {
		rp := models.RootPlan{Key: key, TargetDir: s.roots[key]}

		manifest, served := remote[key]
		if !served {
			s.logger.WithRoot(key).Warn().Msg("origin does not serve this root")
			plans = append(plans, rp)
			continue
		}
		rp.Served = true

		if err = s.planRoot(ctx, &rp, manifest, opts.Full); err != nil {
			rp.Err = classifyError(err)
			s.logger.WithRoot(key).Error().Err(rp.Err).Msg("planning failed")
		}
		plans = append(plans, rp)
	}

	return plans, nil
}

// planRoot fills rp.Diff and rp.Plan from the remote manifest and the
// current content of the target.
func (s *clientPullService) planRoot(ctx context.Context, rp *models.RootPlan, remote models.Manifest, forceFull bool) error {
	local, err := s.tree.BuildManifest(ctx, rp.TargetDir)
	if err != nil {
		return fmt.Errorf("build local manifest: %w", err)
	}

	diff, err := s.planner.Diff(ctx, remote, local)
	if err != nil {
		return fmt.Errorf("diff manifests: %w", err)
	}

	rp.Diff = diff
	rp.Plan = s.planner.Plan(diff, remote, len(local) > 0, forceFull)

	s.logger.WithRoot(rp.Key).Debug().
		Str("mode", rp.Plan.Mode.String()).
		Int("new", len(diff.New)).
		Int("changed", len(diff.Changed)).
		Int("unchanged", len(diff.Unchanged)).
		Int("deleted", len(diff.Deleted)).
		Uint64("download_size", rp.Plan.DownloadSize).
		Msg("root planned")
	return nil
}

// selectKeys returns the requested keys deduplicated and sorted, or every
// configured key when none were requested.
func (s *clientPullService) selectKeys(requested []string) []string {
	if len(requested) == 0 {
		return s.Keys()
	}

	seen := make(map[string]struct{}, len(requested))
	keys := make([]string, 0, len(requested))
	for _, k := range requested {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *clientPullService) Apply(ctx context.Context, plan models.RootPlan) models.RootReport {
	report := models.RootReport{Key: plan.Key, Mode: plan.Plan.Mode}
	log := s.logger.WithRoot(plan.Key)

	switch {
	case plan.Err != nil:
		report.Status = models.StatusFailed
		report.Err = plan.Err
		return report
	case !plan.Served:
		report.Status = models.StatusNotServed
		return report
	case plan.Plan.IsNoop():
		report.Status = models.StatusUpToDate
		return report
	}

	if err := s.apply(ctx, plan, &report); err != nil {
		report.Status = models.StatusFailed
		report.Err = classifyError(err)
		log.Error().Err(report.Err).Str("mode", plan.Plan.Mode.String()).Msg("apply failed")
		return report
	}

	report.Status = models.StatusSynced
	log.Info().
		Str("mode", plan.Plan.Mode.String()).
		Int64("bytes", report.BytesTransferred).
		Int("extracted", report.FilesExtracted).
		Int("deleted", report.FilesDeleted).
		Int("pruned", report.DirsPruned).
		Msg("root synced")
	return report
}

// apply runs the transfer stages of one root under the target lock:
//
//   - Full:  download → verify → extract into staging → replace target
//   - Delta: download → verify → extract into staging → merge → reconcile
//
// Everything up to and including extraction happens outside target, so a
// failed, cancelled or corrupt transfer leaves it as it was. From the first
// change to target on, the commit runs to the end even if ctx is cancelled:
// it is local and made of renames and deletions.
func (s *clientPullService) apply(ctx context.Context, plan models.RootPlan, report *models.RootReport) error {
	unlocker, err := s.tree.Lock(plan.TargetDir)
	if err != nil {
		return fmt.Errorf("lock %s: %w", plan.TargetDir, err)
	}
	defer func() {
		if unlockErr := unlocker.Unlock(); unlockErr != nil {
			s.logger.WithRoot(plan.Key).Warn().Err(unlockErr).Msg("failed to release target lock")
		}
	}()

	needsArchive := plan.Plan.Mode == models.ModeFull || len(plan.Plan.FilesToFetch) > 0

	var staging string
	if needsArchive {
		archiveFile, err := s.download(ctx, plan, report)
		if archiveFile != nil {
			defer s.discard(plan.Key, archiveFile)
		}
		if err != nil {
			return err
		}

		if err = s.verify(ctx, archiveFile); err != nil {
			return err
		}

		staging, err = s.tree.Stage(plan.TargetDir)
		if err != nil {
			return fmt.Errorf("stage %s: %w", plan.TargetDir, err)
		}
		defer s.dropStage(plan.Key, staging)

		stats, err := s.extractor.Extract(ctx, archiveFile, staging)
		report.FilesExtracted = stats.Files
		if err != nil {
			return fmt.Errorf("extract for %s: %w", plan.TargetDir, err)
		}
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	return s.commit(context.WithoutCancel(ctx), plan, staging, report)
}

// commit applies the staged tree and the deletions to the target.
func (s *clientPullService) commit(ctx context.Context, plan models.RootPlan, staging string, report *models.RootReport) error {
	if plan.Plan.Mode == models.ModeFull {
		if err := s.tree.Replace(plan.TargetDir, staging); err != nil {
			return fmt.Errorf("replace %s: %w", plan.TargetDir, err)
		}
		return nil
	}

	if staging != "" {
		if _, err := s.tree.Merge(ctx, plan.TargetDir, staging); err != nil {
			return fmt.Errorf("merge into %s: %w", plan.TargetDir, err)
		}
	}

	if len(plan.Plan.FilesToDelete) > 0 {
		result, err := s.tree.Reconcile(ctx, plan.TargetDir, plan.Plan.FilesToDelete)
		report.FilesDeleted = result.FilesRemoved
		report.DirsPruned = result.DirsPruned
		if err != nil {
			return fmt.Errorf("reconcile %s: %w", plan.TargetDir, err)
		}
		if len(result.Skipped) > 0 {
			s.logger.WithRoot(plan.Key).Warn().Strs("paths", result.Skipped).Msg("unsafe paths left in place")
		}
	}

	return nil
}

// download streams the archive for plan into a temporary file and rewinds
// it. The returned file is non-nil whenever it was created, even on error,
// so the caller can always remove it.
func (s *clientPullService) download(ctx context.Context, plan models.RootPlan, report *models.RootReport) (*os.File, error) {
	f, err := os.CreateTemp(s.tempDir, "tree-sync-"+plan.Key+"-*.tar.gz")
	if err != nil {
		return nil, fmt.Errorf("create temp archive: %w", err)
	}

	var n int64
	switch plan.Plan.Mode {
	case models.ModeFull:
		n, err = s.adapter.DownloadArchive(ctx, plan.Key, f)
	default:
		req := models.PartialArchiveRequest{Path: plan.Key, Files: plan.Plan.FilesToFetch}
		n, err = s.adapter.DownloadPartialArchive(ctx, req, f)
	}
	report.BytesTransferred = n
	if err != nil {
		return f, err
	}

	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return f, fmt.Errorf("rewind temp archive: %w", err)
	}

	s.logger.WithRoot(plan.Key).Debug().Str("file", f.Name()).Int64("bytes", n).Msg("archive downloaded")
	return f, nil
}

// verify reads the downloaded archive once without extracting it and
// rewinds the file for extraction.
func (s *clientPullService) verify(ctx context.Context, f *os.File) error {
	if _, err := s.extractor.Verify(ctx, f); err != nil {
		return fmt.Errorf("verify archive: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind temp archive: %w", err)
	}
	return nil
}

func (s *clientPullService) dropStage(key, staging string) {
	if err := s.tree.DropStage(staging); err != nil {
		s.logger.WithRoot(key).Warn().Err(err).Str("staging", staging).Msg("failed to remove staging dir")
	}
}

func (s *clientPullService) discard(key string, f *os.File) {
	_ = f.Close()
	if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.WithRoot(key).Warn().Err(err).Str("file", f.Name()).Msg("failed to remove temp archive")
	}
}
