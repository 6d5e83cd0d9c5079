package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tree-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldRootKey targets the logical root key of a request.
	FieldRootKey = "root_key"
	// FieldFiles targets the file list of a partial archive request.
	FieldFiles = "files"
	// FieldFilePath targets the root-relative path of a single file request.
	FieldFilePath = "file_path"
	// FieldKeys targets the root selection of a pull.
	FieldKeys = "keys"
)

// RequestValidator validates requests against a fixed set of configured
// logical roots.
type RequestValidator struct {
	known map[string]struct{}
}

// NewRequestValidator returns a Validator that accepts only the given root
// keys.
func NewRequestValidator(keys []string) Validator {
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}
	return &RequestValidator{known: known}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PartialArchiveRequest:
		return v.validatePartialArchiveRequest(ctx, value, fields...)
	case *models.PartialArchiveRequest:
		return v.validatePartialArchiveRequest(ctx, *value, fields...)

	case models.FileRequest:
		return v.validateFileRequest(ctx, value, fields...)
	case *models.FileRequest:
		return v.validateFileRequest(ctx, *value, fields...)

	case models.PullOptions:
		return v.validatePullOptions(ctx, value, fields...)
	case *models.PullOptions:
		return v.validatePullOptions(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validatePartialArchiveRequest(ctx context.Context, request models.PartialArchiveRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRootKey, FieldFiles}
	}

	for _, f := range fields {
		switch f {
		case FieldRootKey:
			if err := v.checkKey(request.Path); err != nil {
				return err
			}
		case FieldFiles:
			if len(request.Files) == 0 {
				return ErrEmptyFileList
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateFileRequest(ctx context.Context, request models.FileRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRootKey, FieldFilePath}
	}

	for _, f := range fields {
		switch f {
		case FieldRootKey:
			if err := v.checkKey(request.Key); err != nil {
				return err
			}
		case FieldFilePath:
			if request.Path == "" {
				return ErrEmptyFilePath
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validatePullOptions(ctx context.Context, opts models.PullOptions, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKeys}
	}

	for _, f := range fields {
		switch f {
		case FieldKeys:
			for _, key := range opts.Keys {
				if err := v.checkKey(key); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) checkKey(key string) error {
	if key == "" {
		return ErrEmptyRootKey
	}
	if _, ok := v.known[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRootKey, key)
	}
	return nil
}
