package repository

import (
	"context"
	"strings"
	"time"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/store"
)

const (
	defaultFolderColor = "#6B7280"
	defaultFolderIcon  = "Folder"
)

// GetFolders returns all folders.
func (r *Repository) GetFolders(ctx context.Context) ([]domain.Folder, error) {
	return r.readFolders(ctx)
}

// InitializePlatformFolders creates one system folder per main
// platform with deterministic ids of the form "platform-<name>". It is
// guarded by a persisted flag and safe to call on every start.
func (r *Repository) InitializePlatformFolders(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var initialized bool
	if err := r.readJSON(ctx, store.KeyPlatformInit, &initialized); err != nil {
		return err
	}
	if initialized {
		return nil
	}

	folders, err := r.readFolders(ctx)
	if err != nil {
		return err
	}

	existing := make(map[string]bool, len(folders))
	for _, f := range folders {
		existing[f.ID] = true
	}

	now := r.now()
	for _, p := range domain.MainPlatforms {
		id := domain.PlatformFolderID(p)
		if existing[id] {
			continue
		}
		meta := domain.PlatformMetadata[p]
		folders = append(folders, domain.Folder{
			ID:               id,
			Name:             meta.Name,
			Description:      "Links from " + meta.Name,
			Color:            meta.Color,
			Icon:             meta.Icon,
			Platform:         p,
			IsSystemFolder:   true,
			IsPlatformFolder: true,
			Path:             meta.Name,
			Depth:            0,
			ChildrenIDs:      []string{},
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	if err := r.writeFolders(ctx, folders); err != nil {
		return err
	}
	return r.writeJSON(ctx, store.KeyPlatformInit, true)
}

// SaveFolder creates a custom folder, computing its depth and path
// from the parent chain and registering it with its parent.
func (r *Repository) SaveFolder(ctx context.Context, form domain.FolderForm) (*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := r.readFolders(ctx)
	if err != nil {
		return nil, err
	}

	depth := 0
	path := form.Name
	if form.ParentID != "" {
		for _, f := range folders {
			if f.ID == form.ParentID {
				depth = f.Depth + 1
				parentPath := f.Path
				if parentPath == "" {
					parentPath = f.Name
				}
				path = parentPath + "/" + form.Name
				break
			}
		}
	}

	color := form.Color
	if color == "" {
		color = defaultFolderColor
	}
	icon := form.Icon
	if icon == "" {
		icon = defaultFolderIcon
	}

	now := r.now()
	folder := domain.Folder{
		ID:          r.newID(),
		Name:        form.Name,
		Description: form.Description,
		Color:       color,
		Icon:        icon,
		ParentID:    form.ParentID,
		Platform:    form.Platform,
		Path:        path,
		Depth:       depth,
		ChildrenIDs: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	folders = append(folders, folder)
	if form.ParentID != "" {
		for i := range folders {
			if folders[i].ID == form.ParentID {
				folders[i].ChildrenIDs = append(folders[i].ChildrenIDs, folder.ID)
				folders[i].UpdatedAt = now
				break
			}
		}
	}

	if err := r.writeFolders(ctx, folders); err != nil {
		return nil, err
	}
	return &folder, nil
}

// UpdateFolder applies a partial update. System folders are
// off-limits, and a reparent under the folder itself or one of its
// descendants fails with ErrFolderCycle. Renames and re-parenting
// cascade path recomputation to every descendant and to the links that
// reference an affected folder. Returns (nil, nil) when the id is
// unknown.
func (r *Repository) UpdateFolder(ctx context.Context, id string, patch domain.FolderPatch) (*domain.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := r.readFolders(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range folders {
		if folders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}
	if folders[idx].IsSystemFolder {
		return nil, ErrSystemFolder
	}

	now := r.now()
	renamed := false
	reparented := false

	if patch.Name != nil && *patch.Name != folders[idx].Name {
		folders[idx].Name = *patch.Name
		renamed = true
	}
	if patch.Description != nil {
		folders[idx].Description = *patch.Description
	}
	if patch.Color != nil {
		folders[idx].Color = *patch.Color
	}
	if patch.Icon != nil {
		folders[idx].Icon = *patch.Icon
	}
	if patch.ParentID != nil && *patch.ParentID != folders[idx].ParentID {
		oldParent := folders[idx].ParentID
		newParent := *patch.ParentID
		if newParent != "" {
			// The new parent's ancestor chain must not pass through
			// the folder being moved, or the tree gains a cycle.
			for _, a := range ancestorChain(folders, newParent) {
				if a.ID == id {
					return nil, ErrFolderCycle
				}
			}
		}
		folders[idx].ParentID = newParent
		removeChild(folders, oldParent, id, now)
		addChild(folders, newParent, id, now)
		reparented = true
	}
	folders[idx].UpdatedAt = now

	if renamed || reparented {
		if err := r.rebuildPathsLocked(ctx, folders, id); err != nil {
			return nil, err
		}
	}

	if err := r.writeFolders(ctx, folders); err != nil {
		return nil, err
	}
	out := folders[idx]
	return &out, nil
}

// DeleteFolder removes a folder, reassigning its child folders and its
// links to the deleted folder's parent (or to root). System folders
// are off-limits. Returns false when the id is unknown.
func (r *Repository) DeleteFolder(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := r.readFolders(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range folders {
		if folders[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	if folders[idx].IsSystemFolder {
		return false, ErrSystemFolder
	}

	parentID := folders[idx].ParentID
	now := r.now()

	var orphans []string
	for i := range folders {
		if folders[i].ParentID == id {
			folders[i].ParentID = parentID
			folders[i].UpdatedAt = now
			orphans = append(orphans, folders[i].ID)
			addChild(folders, parentID, folders[i].ID, now)
		}
	}

	removeChild(folders, parentID, id, now)
	folders = append(folders[:idx], folders[idx+1:]...)

	for _, orphan := range orphans {
		if err := r.rebuildPathsLocked(ctx, folders, orphan); err != nil {
			return false, err
		}
	}

	if err := r.writeFolders(ctx, folders); err != nil {
		return false, err
	}

	// Links that lived in the deleted folder move to its parent.
	links, err := r.readLinks(ctx)
	if err != nil {
		return false, err
	}
	moved := false
	for i := range links {
		if links[i].FolderID == id {
			links[i].FolderID = parentID
			links[i].FolderPath = ""
			if parentID != "" {
				links[i].FolderPath = folderPathOf(folders, parentID)
			}
			links[i].UpdatedAt = now
			moved = true
		}
	}
	if moved {
		if err := r.writeLinks(ctx, links); err != nil {
			return false, err
		}
	}

	if parentID != "" {
		if err := r.recountFolderLinks(ctx, parentID); err != nil {
			return false, err
		}
	}
	return true, nil
}

// rebuildPathsLocked recomputes path and depth for the given folder
// and every descendant, then refreshes FolderPath on affected links.
// folders is mutated in place; the caller persists it.
func (r *Repository) rebuildPathsLocked(ctx context.Context, folders []domain.Folder, rootID string) error {
	affected := map[string]bool{rootID: true}

	// Collect descendants breadth-first; the visited set doubles as a
	// cycle guard.
	queue := []string{rootID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i := range folders {
			if folders[i].ParentID == cur && !affected[folders[i].ID] {
				affected[folders[i].ID] = true
				queue = append(queue, folders[i].ID)
			}
		}
	}

	now := r.now()
	for i := range folders {
		if !affected[folders[i].ID] {
			continue
		}
		folders[i].Path = folderPathOf(folders, folders[i].ID)
		folders[i].Depth = folderDepthOf(folders, folders[i].ID)
		folders[i].UpdatedAt = now
	}

	links, err := r.readLinks(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range links {
		if links[i].FolderID != "" && affected[links[i].FolderID] {
			links[i].FolderPath = folderPathOf(folders, links[i].FolderID)
			links[i].UpdatedAt = now
			changed = true
		}
	}
	if changed {
		return r.writeLinks(ctx, links)
	}
	return nil
}

// recountFolderLinks refreshes the cached active-link count of one
// folder. Unknown folder ids are ignored.
func (r *Repository) recountFolderLinks(ctx context.Context, folderID string) error {
	folders, err := r.readFolders(ctx)
	if err != nil {
		return err
	}
	links, err := r.readLinks(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range folders {
		if folders[i].ID == folderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	count := 0
	for _, l := range links {
		if l.FolderID == folderID {
			count++
		}
	}
	folders[idx].LinkCount = count
	folders[idx].UpdatedAt = r.now()
	return r.writeFolders(ctx, folders)
}

// ancestorChain walks parent references from id to the root and
// returns the chain root-first. The walk is bounded by the total
// folder count and stops on revisits, so an accidental cycle degrades
// to a truncated chain instead of hanging the process.
func ancestorChain(folders []domain.Folder, id string) []*domain.Folder {
	byID := make(map[string]*domain.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	var chain []*domain.Folder
	seen := make(map[string]bool, len(folders))
	cur := id

	for steps := 0; steps <= len(folders); steps++ {
		f, ok := byID[cur]
		if !ok || seen[cur] {
			break
		}
		seen[cur] = true
		chain = append([]*domain.Folder{f}, chain...)
		if f.ParentID == "" {
			break
		}
		cur = f.ParentID
	}
	return chain
}

// folderPathOf joins ancestor names root-to-leaf, including the
// folder's own name. Unknown ids yield "".
func folderPathOf(folders []domain.Folder, id string) string {
	chain := ancestorChain(folders, id)
	names := make([]string, len(chain))
	for i, f := range chain {
		names[i] = f.Name
	}
	return strings.Join(names, "/")
}

// folderDepthOf is the number of ancestors (root = 0).
func folderDepthOf(folders []domain.Folder, id string) int {
	chain := ancestorChain(folders, id)
	if len(chain) == 0 {
		return 0
	}
	return len(chain) - 1
}

func addChild(folders []domain.Folder, parentID, childID string, now time.Time) {
	if parentID == "" {
		return
	}
	for i := range folders {
		if folders[i].ID == parentID {
			for _, c := range folders[i].ChildrenIDs {
				if c == childID {
					return
				}
			}
			folders[i].ChildrenIDs = append(folders[i].ChildrenIDs, childID)
			folders[i].UpdatedAt = now
			return
		}
	}
}

func removeChild(folders []domain.Folder, parentID, childID string, now time.Time) {
	if parentID == "" {
		return
	}
	for i := range folders {
		if folders[i].ID == parentID {
			kept := folders[i].ChildrenIDs[:0]
			for _, c := range folders[i].ChildrenIDs {
				if c != childID {
					kept = append(kept, c)
				}
			}
			folders[i].ChildrenIDs = kept
			folders[i].UpdatedAt = now
			return
		}
	}
}
