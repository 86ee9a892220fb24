package domain

import "time"

// Folder is a named container for links. Folders form a tree via
// ParentID; the five platform folders are system-created roots.
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`

	// ParentID references the parent folder, empty for roots.
	ParentID string `json:"parentId,omitempty"`

	// Platform tags a folder as belonging to one platform. Set on the
	// five system platform folders and optionally on custom folders.
	Platform Platform `json:"platform,omitempty"`

	// IsSystemFolder folders cannot be edited or deleted by the user.
	IsSystemFolder bool `json:"isSystemFolder,omitempty"`
	// IsPlatformFolder marks one of the five main platform folders.
	IsPlatformFolder bool `json:"isPlatformFolder,omitempty"`

	// Path is the slash-joined ancestor chain, root to leaf, including
	// this folder's own name. Kept consistent with ParentID by the
	// repository.
	Path string `json:"path,omitempty"`

	// Depth is the number of ancestors (root = 0).
	Depth int `json:"depth"`

	// ChildrenIDs lists direct child folders.
	ChildrenIDs []string `json:"childrenIds"`

	// LinkCount caches the number of active links directly inside.
	LinkCount int `json:"linkCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FolderForm carries the caller-supplied fields for creating a folder.
type FolderForm struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	ParentID    string   `json:"parentId,omitempty"`
	Platform    Platform `json:"platform,omitempty"`
}

// FolderPatch is a partial update for a folder. Nil fields are left
// untouched.
type FolderPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
}

// PlatformFolderID returns the deterministic ID used for the system
// folder of a main platform, e.g. "platform-youtube".
func PlatformFolderID(p Platform) string {
	return "platform-" + string(p)
}
