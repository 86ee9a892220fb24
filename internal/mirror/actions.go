package mirror

import (
	"context"
	"time"

	"github.com/savedsphere/sphered/internal/domain"
)

// SaveLink persists a new link and appends it to the mirror.
func (h *Hub) SaveLink(ctx context.Context, form domain.LinkForm) (*domain.Link, error) {
	var saved *domain.Link
	err := h.transact(func() error {
		link, err := h.repo.SaveLink(ctx, form)
		if err != nil {
			return err
		}
		saved = link

		h.mu.Lock()
		h.links = append(h.links, *link)
		h.mu.Unlock()

		h.reloadFoldersTags(ctx)
		return nil
	})
	return saved, err
}

// UpdateLink applies a partial update and patches the mirror in place.
// Returns false when the id is unknown.
func (h *Hub) UpdateLink(ctx context.Context, id string, patch domain.LinkPatch) (bool, error) {
	found := false
	err := h.transact(func() error {
		updated, err := h.repo.UpdateLink(ctx, id, patch)
		if err != nil {
			return err
		}
		if updated == nil {
			return nil
		}
		found = true

		h.mu.Lock()
		for i := range h.links {
			if h.links[i].ID == id {
				h.links[i] = *updated
				break
			}
		}
		h.mu.Unlock()

		h.reloadFoldersTags(ctx)
		return nil
	})
	return found, err
}

// DeleteLink soft-deletes a link, moving it from the active mirror to
// the trash mirror.
func (h *Hub) DeleteLink(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := h.transact(func() error {
		ok, err := h.repo.DeleteLink(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		deleted = true

		now := time.Now()
		h.mu.Lock()
		kept := h.links[:0]
		for _, l := range h.links {
			if l.ID != id {
				kept = append(kept, l)
				continue
			}
			l.IsDeleted = true
			l.DeletedAt = &now
			l.UpdatedAt = now
			h.deleted = append(h.deleted, l)
		}
		h.links = kept
		h.mu.Unlock()

		h.reloadFoldersTags(ctx)
		return nil
	})
	return deleted, err
}

// RestoreLink moves a trashed link back to the active mirror.
func (h *Hub) RestoreLink(ctx context.Context, id string) (bool, error) {
	restored := false
	err := h.transact(func() error {
		ok, err := h.repo.RestoreLink(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		restored = true

		h.mu.Lock()
		kept := h.deleted[:0]
		for _, l := range h.deleted {
			if l.ID != id {
				kept = append(kept, l)
				continue
			}
			l.IsDeleted = false
			l.DeletedAt = nil
			h.links = append(h.links, l)
		}
		h.deleted = kept
		h.mu.Unlock()

		h.reloadFoldersTags(ctx)
		return nil
	})
	return restored, err
}

// ToggleFavorite flips a link's favorite flag in store and mirror.
func (h *Hub) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	toggled := false
	err := h.transact(func() error {
		ok, err := h.repo.ToggleFavorite(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		toggled = true

		h.mu.Lock()
		for i := range h.links {
			if h.links[i].ID == id {
				h.links[i].IsFavorite = !h.links[i].IsFavorite
				break
			}
		}
		h.mu.Unlock()
		return nil
	})
	return toggled, err
}

// PermanentlyDeleteLink erases a trashed link and drops it from the
// trash mirror.
func (h *Hub) PermanentlyDeleteLink(ctx context.Context, id string) (bool, error) {
	erased := false
	err := h.transact(func() error {
		ok, err := h.repo.PermanentlyDeleteLink(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		erased = true

		h.mu.Lock()
		kept := h.deleted[:0]
		for _, l := range h.deleted {
			if l.ID != id {
				kept = append(kept, l)
			}
		}
		h.deleted = kept
		h.mu.Unlock()

		h.reloadFoldersTags(ctx)
		return nil
	})
	return erased, err
}

// EmptyTrash erases every trashed link.
func (h *Hub) EmptyTrash(ctx context.Context) (int, error) {
	count := 0
	err := h.transact(func() error {
		n, err := h.repo.EmptyTrash(ctx)
		if err != nil {
			return err
		}
		count = n

		h.mu.Lock()
		h.deleted = nil
		h.mu.Unlock()

		h.reloadFoldersTags(ctx)
		return nil
	})
	return count, err
}

// Bulk runs a bulk operation and re-reads everything afterwards; the
// per-id patches are not worth mirroring one by one.
func (h *Hub) Bulk(ctx context.Context, op domain.BulkOperation) (domain.BulkResult, error) {
	result, err := h.repo.Bulk(ctx, op)
	if err != nil {
		return result, err
	}
	if err := h.Refresh(ctx); err != nil {
		return result, err
	}
	return result, nil
}
