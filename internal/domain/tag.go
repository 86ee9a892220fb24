package domain

import "time"

// Tag is a reference-counted label. Tags are created on first use by
// any link and removed once no link references them anymore.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Color string `json:"color,omitempty"`

	// UsageCount is the number of links (active or trashed) currently
	// carrying this tag. Never negative; a tag at zero is removed.
	UsageCount int `json:"usageCount"`

	CreatedAt time.Time `json:"createdAt"`
}

// DefaultTagColor is assigned to tags created implicitly by link saves.
const DefaultTagColor = "#6B7280"
