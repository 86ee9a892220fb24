package scheduler

import (
	"context"

	"github.com/savedsphere/sphered/internal/logger"
	"github.com/savedsphere/sphered/internal/mirror"
)

// StoreSyncer loads the persisted collections into the mirror hub on
// startup, before the change listener takes over.
type StoreSyncer struct {
	hub    *mirror.Hub
	logger logger.Logger
}

func NewStoreSyncer(hub *mirror.Hub, log logger.Logger) *StoreSyncer {
	return &StoreSyncer{hub: hub, logger: log}
}

// Sync refreshes the hub from the store and logs what was loaded.
func (s *StoreSyncer) Sync(ctx context.Context) error {
	s.logger.Info("syncing collections from store to mirror")

	if err := s.hub.Refresh(ctx); err != nil {
		return err
	}

	s.logger.Info("synced collections from store",
		logger.Int("links", len(s.hub.Links())),
		logger.Int("folders", len(s.hub.Folders())),
		logger.Int("tags", len(s.hub.Tags())),
		logger.Int("trash", len(s.hub.DeletedLinks())))
	return nil
}
