// Package mirror bridges the storage-backed repository to reactive
// consumers. The Hub keeps in-memory mirrors of the four link-related
// collections, refreshes them when the store signals a change
// (debounced, so bursts of writes coalesce into one re-read) and wraps
// every mutation in an optimistic-update protocol: patch the mirrors
// immediately, roll back to a snapshot if the repository mutation
// fails.
package mirror

import (
	"context"
	"sync"
	"time"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/logger"
	"github.com/savedsphere/sphered/internal/repository"
	"github.com/savedsphere/sphered/internal/store"
)

// DefaultDebounce is the delay between a change notification and the
// refresh it triggers.
const DefaultDebounce = 100 * time.Millisecond

type Hub struct {
	repo  *repository.Repository
	store store.Store
	log   logger.Logger

	debounce time.Duration

	mu      sync.RWMutex
	links   []domain.Link
	folders []domain.Folder
	tags    []domain.Tag
	deleted []domain.Link

	events chan struct{}
	stopCh chan struct{}
	unsub  func()
}

func NewHub(repo *repository.Repository, st store.Store, log logger.Logger, debounce time.Duration) *Hub {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Hub{
		repo:     repo,
		store:    st,
		log:      log,
		debounce: debounce,
		events:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}
}

// Start performs the initial refresh and begins listening for store
// changes. Change notifications are coalesced: the refresh runs once
// the debounce window has been quiet.
func (h *Hub) Start(ctx context.Context) error {
	if err := h.Refresh(ctx); err != nil {
		return err
	}

	h.unsub = h.store.Subscribe(func(string) {
		select {
		case h.events <- struct{}{}:
		default:
		}
	})

	go h.watch(ctx)
	return nil
}

// Stop cancels the change subscription and the watch loop.
func (h *Hub) Stop() {
	if h.unsub != nil {
		h.unsub()
	}
	close(h.stopCh)
}

func (h *Hub) watch(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.stopCh:
			return
		case <-h.events:
			if timer == nil {
				timer = time.NewTimer(h.debounce)
				fire = timer.C
			} else {
				timer.Reset(h.debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			if err := h.Refresh(ctx); err != nil {
				h.log.Warn("mirror refresh failed", logger.Error(err))
			}
		}
	}
}

// Refresh re-reads all four collections from the repository
// unconditionally.
func (h *Hub) Refresh(ctx context.Context) error {
	links, err := h.repo.GetLinks(ctx)
	if err != nil {
		return err
	}
	folders, err := h.repo.GetFolders(ctx)
	if err != nil {
		return err
	}
	tags, err := h.repo.GetTags(ctx)
	if err != nil {
		return err
	}
	deleted, err := h.repo.GetDeletedLinks(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.links = links
	h.folders = folders
	h.tags = tags
	h.deleted = deleted
	h.mu.Unlock()
	return nil
}

// Links returns a copy of the mirrored active links.
func (h *Hub) Links() []domain.Link {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]domain.Link(nil), h.links...)
}

// Folders returns a copy of the mirrored folders.
func (h *Hub) Folders() []domain.Folder {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]domain.Folder(nil), h.folders...)
}

// Tags returns a copy of the mirrored tags.
func (h *Hub) Tags() []domain.Tag {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]domain.Tag(nil), h.tags...)
}

// DeletedLinks returns a copy of the mirrored trash.
func (h *Hub) DeletedLinks() []domain.Link {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]domain.Link(nil), h.deleted...)
}

// snapshot captures the mirrors for rollback.
type snapshot struct {
	links   []domain.Link
	folders []domain.Folder
	tags    []domain.Tag
	deleted []domain.Link
}

// transact runs a mutation under the optimistic-update protocol:
// snapshot the mirrors, run the mutation (repository write plus
// in-memory patch), and restore the snapshot before propagating any
// error.
func (h *Hub) transact(mutate func() error) error {
	h.mu.RLock()
	snap := snapshot{
		links:   append([]domain.Link(nil), h.links...),
		folders: append([]domain.Folder(nil), h.folders...),
		tags:    append([]domain.Tag(nil), h.tags...),
		deleted: append([]domain.Link(nil), h.deleted...),
	}
	h.mu.RUnlock()

	if err := mutate(); err != nil {
		h.mu.Lock()
		h.links = snap.links
		h.folders = snap.folders
		h.tags = snap.tags
		h.deleted = snap.deleted
		h.mu.Unlock()
		return err
	}
	return nil
}

// reloadFoldersTags refreshes the two derived collections that most
// mutations touch as a side effect (counts, usage).
func (h *Hub) reloadFoldersTags(ctx context.Context) {
	folders, err := h.repo.GetFolders(ctx)
	if err == nil {
		h.mu.Lock()
		h.folders = folders
		h.mu.Unlock()
	}
	tags, err := h.repo.GetTags(ctx)
	if err == nil {
		h.mu.Lock()
		h.tags = tags
		h.mu.Unlock()
	}
}
