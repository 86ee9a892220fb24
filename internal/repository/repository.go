// Package repository is the sole authority over the persisted
// collections: links, folders, tags, preferences and the trash. It
// owns derived-field computation (folder paths, link counts, tag
// usage) and cross-entity consistency.
//
// Collections are persisted whole: every mutation reads the full
// collection, mutates it in memory and writes it back. A process-wide
// mutex serializes mutations, so writes from this process never
// interleave; concurrent writers in other processes remain last-write-
// wins at collection granularity.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/enrich"
	"github.com/savedsphere/sphered/internal/logger"
	"github.com/savedsphere/sphered/internal/store"
)

type Repository struct {
	mu      sync.Mutex
	store   store.Store
	fetcher *enrich.Fetcher
	log     logger.Logger

	// Injection points for tests.
	now   func() time.Time
	newID func() string
}

// New creates a repository over the given store. fetcher may be nil,
// which disables network enrichment.
func New(st store.Store, fetcher *enrich.Fetcher, log logger.Logger) *Repository {
	return &Repository{
		store:   st,
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (r *Repository) readJSON(ctx context.Context, key string, v interface{}) error {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (r *Repository) writeJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, data)
}

func (r *Repository) readLinks(ctx context.Context) ([]domain.Link, error) {
	var links []domain.Link
	err := r.readJSON(ctx, store.KeyLinks, &links)
	return links, err
}

func (r *Repository) writeLinks(ctx context.Context, links []domain.Link) error {
	return r.writeJSON(ctx, store.KeyLinks, links)
}

func (r *Repository) readDeleted(ctx context.Context) ([]domain.Link, error) {
	var links []domain.Link
	err := r.readJSON(ctx, store.KeyDeletedLinks, &links)
	return links, err
}

func (r *Repository) writeDeleted(ctx context.Context, links []domain.Link) error {
	return r.writeJSON(ctx, store.KeyDeletedLinks, links)
}

func (r *Repository) readFolders(ctx context.Context) ([]domain.Folder, error) {
	var folders []domain.Folder
	if err := r.readJSON(ctx, store.KeyFolders, &folders); err != nil {
		return nil, err
	}
	for i := range folders {
		if folders[i].ChildrenIDs == nil {
			folders[i].ChildrenIDs = []string{}
		}
	}
	return folders, nil
}

func (r *Repository) writeFolders(ctx context.Context, folders []domain.Folder) error {
	return r.writeJSON(ctx, store.KeyFolders, folders)
}

func (r *Repository) readTags(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.readJSON(ctx, store.KeyTags, &tags)
	return tags, err
}

func (r *Repository) writeTags(ctx context.Context, tags []domain.Tag) error {
	return r.writeJSON(ctx, store.KeyTags, tags)
}
