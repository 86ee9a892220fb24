package seed

// File is the top-level structure of a seed YAML file. Links are
// grouped by folder name; links without a folder go under "All Links".
type File struct {
	Folders []FolderEntry `yaml:"folders,omitempty"`
	Links   []LinkEntry   `yaml:"links"`
}

// FolderEntry describes a folder to create before links are imported.
type FolderEntry struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
	Color  string `yaml:"color,omitempty"`
	Icon   string `yaml:"icon,omitempty"`
}

// LinkEntry contains the properties of one seeded link.
type LinkEntry struct {
	URL         string   `yaml:"url"`
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Folder      string   `yaml:"folder,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Favorite    bool     `yaml:"favorite,omitempty"`
}
