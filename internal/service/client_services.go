package service

import (
	"github.com/MKhiriev/go-tree-sync/internal/adapter"
	"github.com/MKhiriev/go-tree-sync/internal/config"
	"github.com/MKhiriev/go-tree-sync/internal/logger"
	"github.com/MKhiriev/go-tree-sync/internal/store"
)

// ClientServices groups the puller-side services.
type ClientServices struct {
	PullService PullService
}

func NewClientServices(storages *store.Storages, originAdapter adapter.OriginAdapter, cfg config.Storage, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		PullService: NewClientPullService(storages.TreeStorage, originAdapter, cfg, logger),
	}
}
