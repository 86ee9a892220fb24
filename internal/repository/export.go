package repository

import (
	"context"
	"time"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/store"
)

// ExportData is the full persisted data set as one portable document.
type ExportData struct {
	Links        []domain.Link      `json:"links"`
	Folders      []domain.Folder    `json:"folders"`
	Tags         []domain.Tag       `json:"tags"`
	DeletedLinks []domain.Link      `json:"deletedLinks"`
	Preferences  domain.Preferences `json:"preferences"`
	ExportedAt   time.Time          `json:"exportedAt"`
}

// Export snapshots every collection.
func (r *Repository) Export(ctx context.Context) (*ExportData, error) {
	links, err := r.readLinks(ctx)
	if err != nil {
		return nil, err
	}
	folders, err := r.readFolders(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := r.readTags(ctx)
	if err != nil {
		return nil, err
	}
	deleted, err := r.readDeleted(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := r.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Links:        links,
		Folders:      folders,
		Tags:         tags,
		DeletedLinks: deleted,
		Preferences:  prefs,
		ExportedAt:   r.now(),
	}, nil
}

// Import overwrites the provided collections wholesale. Nil slices are
// skipped, so a partial document only replaces what it carries.
func (r *Repository) Import(ctx context.Context, data *ExportData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if data.Links != nil {
		if err := r.writeLinks(ctx, data.Links); err != nil {
			return err
		}
	}
	if data.Folders != nil {
		if err := r.writeFolders(ctx, data.Folders); err != nil {
			return err
		}
	}
	if data.Tags != nil {
		if err := r.writeTags(ctx, data.Tags); err != nil {
			return err
		}
	}
	if data.DeletedLinks != nil {
		if err := r.writeDeleted(ctx, data.DeletedLinks); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll wipes every persisted key.
func (r *Repository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range store.DataKeys {
		if err := r.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
