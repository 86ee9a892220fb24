package repository

import (
	"context"
	"time"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/enrich"
	"github.com/savedsphere/sphered/internal/logger"
)

// GetLinks returns all non-deleted links. No side effects.
func (r *Repository) GetLinks(ctx context.Context) ([]domain.Link, error) {
	return r.readLinks(ctx)
}

// GetDeletedLinks returns the trash, dropping and rewriting any links
// whose retention window has run out (lazy garbage collection on
// read).
func (r *Repository) GetDeletedLinks(ctx context.Context) ([]domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept, _, err := r.purgeExpiredLocked(ctx)
	return kept, err
}

// PurgeExpiredTrash permanently drops every trashed link past the
// retention window and reports how many were removed.
func (r *Repository) PurgeExpiredTrash(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, removed, err := r.purgeExpiredLocked(ctx)
	return removed, err
}

func (r *Repository) purgeExpiredLocked(ctx context.Context) ([]domain.Link, int, error) {
	deleted, err := r.readDeleted(ctx)
	if err != nil {
		return nil, 0, err
	}

	now := r.now()
	kept := make([]domain.Link, 0, len(deleted))
	removed := 0
	for _, l := range deleted {
		if !l.ExpiredAt(now) {
			kept = append(kept, l)
			continue
		}
		// An expired link is gone for good, same as a permanent
		// delete, so its tag references are released here too.
		if err := r.applyTagDiff(ctx, nil, l.Tags); err != nil {
			return nil, 0, err
		}
		removed++
	}

	if removed > 0 {
		if err := r.writeDeleted(ctx, kept); err != nil {
			return nil, 0, err
		}
	}
	return kept, removed, nil
}

// SaveLink validates and persists a new link.
//
// If the URL matches an active link the save fails with a conflict
// naming where the duplicate lives. If it matches a trashed link, the
// trashed record is restored and returned instead of creating a
// duplicate. Otherwise the platform is detected from the URL, the link
// is auto-filed into the matching platform folder when no folder was
// chosen, and tag usage plus folder counts are updated.
func (r *Repository) SaveLink(ctx context.Context, form domain.LinkForm) (*domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	links, err := r.readLinks(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		if l.URL == form.URL {
			return nil, duplicateLinkError(l.FolderID)
		}
	}

	trash, _, err := r.purgeExpiredLocked(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range trash {
		if l.URL == form.URL {
			restored, _, err := r.restoreLocked(ctx, l.ID)
			return restored, err
		}
	}

	platform := domain.DetectPlatform(form.URL)

	folderID := form.FolderID
	if folderID == "" && domain.IsMainPlatform(platform) {
		folderID = domain.PlatformFolderID(platform)
	}

	folderPath := ""
	if folderID != "" {
		folders, err := r.readFolders(ctx)
		if err != nil {
			return nil, err
		}
		folderPath = folderPathOf(folders, folderID)
	}

	tags := form.Tags
	if tags == nil {
		tags = []string{}
	}

	now := r.now()
	link := domain.Link{
		ID:          r.newID(),
		URL:         form.URL,
		Title:       form.Title,
		Description: form.Description,
		Platform:    platform,
		Tags:        tags,
		FolderID:    folderID,
		FolderPath:  folderPath,
		IsFavorite:  form.IsFavorite,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if platform == domain.PlatformYouTube {
		link.Thumbnail = enrich.YouTubeThumbnail(form.URL)
	}

	links = append(links, link)
	if err := r.writeLinks(ctx, links); err != nil {
		return nil, err
	}

	if err := r.applyTagDiff(ctx, tags, nil); err != nil {
		return nil, err
	}
	if folderID != "" {
		if err := r.recountFolderLinks(ctx, folderID); err != nil {
			return nil, err
		}
	}

	// Instagram thumbnails need a network round trip; fetch after the
	// save so it never blocks or fails the primary operation.
	if platform == domain.PlatformInstagram && link.Thumbnail == "" && r.fetcher != nil {
		go r.patchInstagramThumbnail(link.ID, form.URL)
	}

	return &link, nil
}

// UpdateLink applies a partial update. It returns (nil, nil) when the
// id is unknown so callers can branch without an error path.
func (r *Repository) UpdateLink(ctx context.Context, id string, patch domain.LinkPatch) (*domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	links, err := r.readLinks(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range links {
		if links[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}
	old := links[idx]

	if patch.URL != nil && *patch.URL != old.URL {
		for _, l := range links {
			if l.URL == *patch.URL && l.ID != id {
				return nil, duplicateLinkError(l.FolderID)
			}
		}
	}

	updated := old
	if patch.URL != nil {
		updated.URL = *patch.URL
	}
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Tags != nil {
		updated.Tags = patch.Tags
	}
	if patch.IsFavorite != nil {
		updated.IsFavorite = *patch.IsFavorite
	}

	folderChanged := patch.FolderID != nil && *patch.FolderID != old.FolderID
	if folderChanged {
		updated.FolderID = *patch.FolderID
		updated.FolderPath = ""
		if updated.FolderID != "" {
			folders, err := r.readFolders(ctx)
			if err != nil {
				return nil, err
			}
			updated.FolderPath = folderPathOf(folders, updated.FolderID)
		}
	}

	updated.UpdatedAt = r.now()
	links[idx] = updated
	if err := r.writeLinks(ctx, links); err != nil {
		return nil, err
	}

	if patch.Tags != nil {
		if err := r.applyTagDiff(ctx, patch.Tags, old.Tags); err != nil {
			return nil, err
		}
	}
	if folderChanged {
		if old.FolderID != "" {
			if err := r.recountFolderLinks(ctx, old.FolderID); err != nil {
				return nil, err
			}
		}
		if updated.FolderID != "" {
			if err := r.recountFolderLinks(ctx, updated.FolderID); err != nil {
				return nil, err
			}
		}
	}

	return &updated, nil
}

// DeleteLink moves a link to the trash. Returns false when the id is
// not among active links.
func (r *Repository) DeleteLink(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	links, err := r.readLinks(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range links {
		if links[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	link := links[idx]
	now := r.now()
	link.IsDeleted = true
	link.DeletedAt = &now
	link.UpdatedAt = now

	links = append(links[:idx], links[idx+1:]...)
	if err := r.writeLinks(ctx, links); err != nil {
		return false, err
	}

	trash, _, err := r.purgeExpiredLocked(ctx)
	if err != nil {
		return false, err
	}
	trash = append(trash, link)
	if err := r.writeDeleted(ctx, trash); err != nil {
		return false, err
	}

	if link.FolderID != "" {
		if err := r.recountFolderLinks(ctx, link.FolderID); err != nil {
			return false, err
		}
	}
	return true, nil
}

// RestoreLink moves a trashed link back to the active collection,
// clearing its delete markers. Returns false when the id is not in the
// trash.
func (r *Repository) RestoreLink(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok, err := r.restoreLocked(ctx, id)
	return ok, err
}

func (r *Repository) restoreLocked(ctx context.Context, id string) (*domain.Link, bool, error) {
	trash, _, err := r.purgeExpiredLocked(ctx)
	if err != nil {
		return nil, false, err
	}

	idx := -1
	for i := range trash {
		if trash[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false, nil
	}

	link := trash[idx]
	link.IsDeleted = false
	link.DeletedAt = nil
	link.UpdatedAt = r.now()

	trash = append(trash[:idx], trash[idx+1:]...)
	if err := r.writeDeleted(ctx, trash); err != nil {
		return nil, false, err
	}

	links, err := r.readLinks(ctx)
	if err != nil {
		return nil, false, err
	}
	links = append(links, link)
	if err := r.writeLinks(ctx, links); err != nil {
		return nil, false, err
	}

	if link.FolderID != "" {
		if err := r.recountFolderLinks(ctx, link.FolderID); err != nil {
			return nil, false, err
		}
	}
	return &link, true, nil
}

// PermanentlyDeleteLink erases a trashed link for good and releases
// its tag references. Folder counts are untouched: they track active
// links only and were already adjusted by the soft delete.
func (r *Repository) PermanentlyDeleteLink(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trash, _, err := r.purgeExpiredLocked(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range trash {
		if trash[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	link := trash[idx]
	trash = append(trash[:idx], trash[idx+1:]...)
	if err := r.writeDeleted(ctx, trash); err != nil {
		return false, err
	}

	return true, r.applyTagDiff(ctx, nil, link.Tags)
}

// EmptyTrash permanently erases every trashed link, releasing tag
// references first. Returns how many links were erased.
func (r *Repository) EmptyTrash(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trash, err := r.readDeleted(ctx)
	if err != nil {
		return 0, err
	}

	for _, link := range trash {
		if err := r.applyTagDiff(ctx, nil, link.Tags); err != nil {
			return 0, err
		}
	}

	if err := r.writeDeleted(ctx, []domain.Link{}); err != nil {
		return 0, err
	}
	return len(trash), nil
}

// ToggleFavorite flips a link's favorite flag. Returns false when the
// id is not among active links.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	links, err := r.readLinks(ctx)
	if err != nil {
		return false, err
	}

	for i := range links {
		if links[i].ID == id {
			links[i].IsFavorite = !links[i].IsFavorite
			links[i].UpdatedAt = r.now()
			return true, r.writeLinks(ctx, links)
		}
	}
	return false, nil
}

// patchInstagramThumbnail runs outside the save path. If the link was
// deleted before the fetch resolved, the patch is silently dropped.
func (r *Repository) patchInstagramThumbnail(linkID, rawURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	thumb := r.fetcher.InstagramThumbnail(ctx, rawURL)
	if thumb == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	links, err := r.readLinks(ctx)
	if err != nil {
		return
	}
	for i := range links {
		if links[i].ID == linkID {
			links[i].Thumbnail = thumb
			links[i].UpdatedAt = r.now()
			if err := r.writeLinks(ctx, links); err != nil {
				r.log.Warn("failed to persist instagram thumbnail",
					logger.String("link_id", linkID),
					logger.Error(err))
			}
			return
		}
	}
}
