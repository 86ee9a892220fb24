package domain

import "time"

// TrashRetention is how long a soft-deleted link stays recoverable.
// Once DeletedAt is older than this, the link becomes eligible for
// permanent erasure.
const TrashRetention = 15 * 24 * time.Hour

// Link is a saved bookmark.
//
// A link belongs to at most one folder (weak reference by ID) and
// references tags by name. URL is unique across all non-deleted links.
type Link struct {
	// ID is the canonical unique identifier, generated at creation
	// and stable for the life of the record.
	ID string `json:"id"`

	// URL is the saved address. Unique among non-deleted links.
	URL string `json:"url"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Thumbnail is a best-effort preview image URL. May be filled in
	// after the initial save by asynchronous enrichment.
	Thumbnail string `json:"thumbnail,omitempty"`

	// Platform is derived from the URL's domain at save time.
	Platform Platform `json:"platform"`

	Tags []string `json:"tags"`

	// FolderID references the containing folder, empty for root.
	FolderID string `json:"folderId,omitempty"`

	// FolderPath is the denormalized slash-joined path of FolderID,
	// maintained by the repository on every folder change.
	FolderPath string `json:"folderPath,omitempty"`

	IsFavorite bool `json:"isFavorite"`

	// Duration is an optional video length in MM:SS form.
	Duration string `json:"duration,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// IsDeleted and DeletedAt mark a link sitting in the trash.
	IsDeleted bool       `json:"isDeleted,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// ExpiredAt reports whether the link's trash retention has run out at
// the given instant. Links without a delete marker never expire.
func (l *Link) ExpiredAt(now time.Time) bool {
	if l.DeletedAt == nil {
		return false
	}
	return now.Sub(*l.DeletedAt) > TrashRetention
}

// LinkForm carries the caller-supplied fields for creating a link.
type LinkForm struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	FolderID    string   `json:"folderId,omitempty"`
	IsFavorite  bool     `json:"isFavorite"`
}

// LinkPatch is a partial update for a link. Nil fields are left
// untouched; a pointer to the zero value clears the field.
type LinkPatch struct {
	URL         *string  `json:"url,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	FolderID    *string  `json:"folderId,omitempty"`
	IsFavorite  *bool    `json:"isFavorite,omitempty"`
}
