package store

import (
	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
)

// Storages groups the storage components handed to the service layer.
type Storages struct {
	TreeStorage TreeStorage
}

// NewStorages builds the filesystem tree storage for cfg. It opens nothing:
// the origin and the puller both walk their trees on demand.
func NewStorages(cfg config.Storage, logger *logger.Logger) *Storages {
	logger.Debug().Str("lock_dir", cfg.LockDir).Msg("creating tree storage")

	return &Storages{
		TreeStorage: NewTreeStorage(cfg.LockDir, logger),
	}
}
