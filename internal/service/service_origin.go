// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-tree-sync/internal/archive"
	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/store"
	"github.com/MKhiriev/go-tree-sync/models"
)

// ArchiveJob is an archive whose content has been resolved but not written
// yet. Handlers inspect it to set response headers and then call Stream.
type ArchiveJob struct {
	// Key is the logical root the archive belongs to.
	Key string
	// Files is the number of resolved entries of a partial archive. It is
	// zero for full archives, whose content is only known while streaming.
	Files int

	write func(ctx context.Context, w io.Writer) (archive.Stats, error)
}

// NewArchiveJob builds an ArchiveJob around write.
func NewArchiveJob(key string, files int, write func(ctx context.Context, w io.Writer) (archive.Stats, error)) *ArchiveJob {
	return &ArchiveJob{Key: key, Files: files, write: write}
}

// FileName is the attachment name announced to the client.
func (j *ArchiveJob) FileName() string {
	return j.Key + ".tar.gz"
}

// Stream writes the archive to w.
func (j *ArchiveJob) Stream(ctx context.Context, w io.Writer) (archive.Stats, error) {
	return j.write(ctx, w)
}

type originService struct {
	roots    map[string]string
	keys     []string
	tree     store.TreeStorage
	packager archive.Packager

	logger *logger.Logger
}

// NewOriginService constructs an OriginService over the roots of cfg.
// Root directories are resolved once here; their existence is checked on
// every request.
func NewOriginService(tree store.TreeStorage, packager archive.Packager, cfg config.Storage, logger *logger.Logger) OriginService {
	return &originService{
		roots:    cfg.RootDirs(),
		keys:     cfg.Keys(),
		tree:     tree,
		packager: packager,
		logger:   logger,
	}
}

func (s *originService) Manifests(ctx context.Context, keys []string) (models.RootManifests, error) {
	if len(keys) == 0 {
		keys = s.keys
	}

	manifests := make(models.RootManifests, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir, ok := s.roots[key]
		if !ok {
			s.logger.Debug().Str("root", key).Msg("manifest requested for unknown root")
			continue
		}
		if _, dup := manifests[key]; dup {
			continue
		}

		if _, err := s.tree.RootDir(dir); err != nil {
			if errors.Is(err, store.ErrRootNotFound) {
				s.logger.Warn().Str("root", key).Str("dir", dir).Msg("root directory is absent")
				continue
			}
			return nil, fmt.Errorf("resolve root %s: %w", key, err)
		}

		manifest, err := s.tree.BuildManifest(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("build manifest of %s: %w", key, err)
		}
		manifests[key] = manifest
	}

	return manifests, nil
}

func (s *originService) FullArchive(ctx context.Context, key string) (*ArchiveJob, error) {
	dir, ok := s.roots[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoot, key)
	}

	realDir, err := s.tree.RootDir(dir)
	if err != nil {
		if errors.Is(err, store.ErrRootNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, key)
		}
		return nil, fmt.Errorf("resolve root %s: %w", key, err)
	}

	return NewArchiveJob(key, 0, func(ctx context.Context, w io.Writer) (archive.Stats, error) {
		return s.packager.WriteFull(ctx, realDir, w)
	}), nil
}

func (s *originService) PartialArchive(ctx context.Context, req models.PartialArchiveRequest) (*ArchiveJob, error) {
	dir, ok := s.roots[req.Path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoot, req.Path)
	}
	if len(req.Files) == 0 {
		return nil, ErrNoFilesRequested
	}

	entries := make([]archive.Entry, 0, len(req.Files))
	seen := make(map[string]struct{}, len(req.Files))
	for _, rel := range req.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, err := s.tree.ResolveFile(dir, rel)
		if err != nil {
			if errors.Is(err, store.ErrRootNotFound) {
				break
			}
			s.logger.Debug().Err(err).Str("root", req.Path).Str("path", rel).Msg("skipping requested file")
			continue
		}
		if _, dup := seen[file.Rel]; dup {
			continue
		}
		seen[file.Rel] = struct{}{}
		entries = append(entries, archive.Entry{Name: file.Rel, Path: file.Path})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %d requested from %s", ErrNoValidFiles, len(req.Files), req.Path)
	}

	if skipped := len(req.Files) - len(entries); skipped > 0 {
		s.logger.Info().Str("root", req.Path).Int("skipped", skipped).Msg("partial archive skips unresolved files")
	}

	return NewArchiveJob(req.Path, len(entries), func(ctx context.Context, w io.Writer) (archive.Stats, error) {
		return s.packager.WritePartial(ctx, entries, w)
	}), nil
}

func (s *originService) File(ctx context.Context, req models.FileRequest) (store.ResolvedFile, error) {
	dir, ok := s.roots[req.Key]
	if !ok {
		return store.ResolvedFile{}, fmt.Errorf("%w: %q", ErrUnknownRoot, req.Key)
	}
	if req.Path == "" {
		return store.ResolvedFile{}, fmt.Errorf("%w: file path is required", ErrInvalidRequest)
	}

	file, err := s.tree.ResolveFile(dir, req.Path)
	if err != nil {
		return store.ResolvedFile{}, fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	return file, nil
}
