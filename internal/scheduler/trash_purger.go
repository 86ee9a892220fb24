package scheduler

import (
	"context"
	"time"

	"github.com/savedsphere/sphered/internal/logger"
	"github.com/savedsphere/sphered/internal/repository"
)

// DefaultPurgeInterval is how often expired trash is swept when the
// config does not say otherwise.
const DefaultPurgeInterval = 24 * time.Hour

// TrashPurger periodically erases trashed links whose retention window
// has run out. The repository also purges lazily whenever the trash is
// read; this scheduler covers stores whose trash is never viewed.
type TrashPurger struct {
	repo     *repository.Repository
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

func NewTrashPurger(repo *repository.Repository, log logger.Logger, interval time.Duration) *TrashPurger {
	if interval <= 0 {
		interval = DefaultPurgeInterval
	}
	return &TrashPurger{
		repo:     repo,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one purge immediately, then sweeps on the interval until
// Stop is called or ctx is cancelled.
func (p *TrashPurger) Start(ctx context.Context) error {
	if err := p.Purge(ctx); err != nil {
		p.logger.Warn("initial trash purge failed", logger.Error(err))
	}

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := p.Purge(ctx); err != nil {
					p.logger.Error("trash purge failed", logger.Error(err))
				}
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the purge loop.
func (p *TrashPurger) Stop() {
	close(p.stopCh)
}

// Purge removes every expired trashed link.
func (p *TrashPurger) Purge(ctx context.Context) error {
	removed, err := p.repo.PurgeExpiredTrash(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		p.logger.Info("trash purge completed",
			logger.Int("links_removed", removed))
	} else {
		p.logger.Debug("no expired trash to purge")
	}
	return nil
}
