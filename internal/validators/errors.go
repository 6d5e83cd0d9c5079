package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyRootKey   = errors.New("root key is required")
	ErrUnknownRootKey = errors.New("unknown root key")
	ErrEmptyFileList  = errors.New("files list cannot be empty")
	ErrEmptyFilePath  = errors.New("file path is required")
)
