package service

import (
	"github.com/MKhiriev/go-tree-sync/internal/archive"
	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/store"
)

// Services groups the origin-side services handed to the HTTP handler.
type Services struct {
	OriginService  OriginService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	origin := NewOriginService(storages.TreeStorage, archive.NewPackager(logger), cfg.Storage, logger)

	return &Services{
		OriginService:  NewOriginValidationService(cfg.Storage.Keys()).Wrap(origin),
		AppInfoService: appInfo,
	}, nil
}
