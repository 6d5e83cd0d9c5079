package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tree-sync/internal/store"
	"github.com/MKhiriev/go-tree-sync/internal/validators"
	"github.com/MKhiriev/go-tree-sync/models"
)

// OriginValidationService rejects malformed requests before they reach the
// wrapped OriginService.
type OriginValidationService struct {
	inner     OriginService
	validator validators.Validator
}

func NewOriginValidationService(keys []string) OriginServiceWrapper {
	return &OriginValidationService{
		validator: validators.NewRequestValidator(keys),
	}
}

// Manifests is passed through: unknown keys are omitted, not rejected.
func (v *OriginValidationService) Manifests(ctx context.Context, keys []string) (models.RootManifests, error) {
	return v.inner.Manifests(ctx, keys)
}

func (v *OriginValidationService) FullArchive(ctx context.Context, key string) (*ArchiveJob, error) {
	if err := v.validator.Validate(ctx, models.FileRequest{Key: key}, validators.FieldRootKey); err != nil {
		return nil, fmt.Errorf("error during archive request validation: %w", mapValidationError(err))
	}

	return v.inner.FullArchive(ctx, key)
}

func (v *OriginValidationService) PartialArchive(ctx context.Context, req models.PartialArchiveRequest) (*ArchiveJob, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return nil, fmt.Errorf("error during partial archive request validation: %w", mapValidationError(err))
	}

	return v.inner.PartialArchive(ctx, req)
}

func (v *OriginValidationService) File(ctx context.Context, req models.FileRequest) (store.ResolvedFile, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return store.ResolvedFile{}, fmt.Errorf("error during file request validation: %w", mapValidationError(err))
	}

	return v.inner.File(ctx, req)
}

func (v *OriginValidationService) Wrap(wrapped OriginService) OriginService {
	v.inner = wrapped
	return v
}

// mapValidationError translates a validator error into the service error the
// handler maps to a status code.
func mapValidationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrEmptyRootKey), errors.Is(err, validators.ErrUnknownRootKey):
		return fmt.Errorf("%w: %w", ErrUnknownRoot, err)
	case errors.Is(err, validators.ErrEmptyFileList):
		return fmt.Errorf("%w: %w", ErrNoFilesRequested, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
}
