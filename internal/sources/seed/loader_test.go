package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "seed.yaml")

	yamlContent := `---
folders:
  - name: Dev
    color: "#FF0000"
  - name: Projects
    parent: Dev
links:
  - url: https://github.com/golang/go
    title: The Go Language
    folder: Projects
    tags: [golang, reference]
  - url: https://example.com/blog/post
    favorite: true
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	file, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(file.Folders) != 2 {
		t.Errorf("got %d folders, want 2", len(file.Folders))
	}
	if file.Folders[1].Parent != "Dev" {
		t.Errorf("Parent = %v, want Dev", file.Folders[1].Parent)
	}
	if len(file.Links) != 2 {
		t.Fatalf("got %d links, want 2", len(file.Links))
	}
	if file.Links[0].Folder != "Projects" || len(file.Links[0].Tags) != 2 {
		t.Errorf("first link = %+v", file.Links[0])
	}
	if !file.Links[1].Favorite {
		t.Error("second link should be favorite")
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() on missing file should fail")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "seed.yaml")
	if err := os.WriteFile(yamlPath, []byte("links: {not valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(yamlPath)
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() on invalid yaml should fail")
	}
}
