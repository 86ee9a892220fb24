package domain

// Preferences is the singleton user-settings record. It is created
// with defaults on first read and updated by partial merge.
type Preferences struct {
	Theme              string    `json:"theme"`       // "light" | "dark" | "system"
	GridSize           string    `json:"gridSize"`    // "small" | "medium" | "large"
	DefaultView        string    `json:"defaultView"` // "grid" | "list"
	ShowThumbnails     bool      `json:"showThumbnails"`
	AutoDetectPlatform bool      `json:"autoDetectPlatform"`
	SortBy             SortOrder `json:"sortBy"`
	SidebarCollapsed   bool      `json:"sidebarCollapsed"`
	ExpandedFolders    []string  `json:"expandedFolders"`
}

// DefaultPreferences returns the settings used before the user has
// saved anything.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:              "system",
		GridSize:           "medium",
		DefaultView:        "grid",
		ShowThumbnails:     true,
		AutoDetectPlatform: true,
		SortBy:             SortNewest,
		ExpandedFolders:    []string{},
	}
}

// PreferencesPatch is a partial update for preferences. Nil fields are
// left untouched.
type PreferencesPatch struct {
	Theme              *string    `json:"theme,omitempty"`
	GridSize           *string    `json:"gridSize,omitempty"`
	DefaultView        *string    `json:"defaultView,omitempty"`
	ShowThumbnails     *bool      `json:"showThumbnails,omitempty"`
	AutoDetectPlatform *bool      `json:"autoDetectPlatform,omitempty"`
	SortBy             *SortOrder `json:"sortBy,omitempty"`
	SidebarCollapsed   *bool      `json:"sidebarCollapsed,omitempty"`
	ExpandedFolders    []string   `json:"expandedFolders,omitempty"`
}

// Merge applies the patch and returns the merged preferences.
func (p Preferences) Merge(patch PreferencesPatch) Preferences {
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.GridSize != nil {
		p.GridSize = *patch.GridSize
	}
	if patch.DefaultView != nil {
		p.DefaultView = *patch.DefaultView
	}
	if patch.ShowThumbnails != nil {
		p.ShowThumbnails = *patch.ShowThumbnails
	}
	if patch.AutoDetectPlatform != nil {
		p.AutoDetectPlatform = *patch.AutoDetectPlatform
	}
	if patch.SortBy != nil {
		p.SortBy = *patch.SortBy
	}
	if patch.SidebarCollapsed != nil {
		p.SidebarCollapsed = *patch.SidebarCollapsed
	}
	if patch.ExpandedFolders != nil {
		p.ExpandedFolders = patch.ExpandedFolders
	}
	return p
}
