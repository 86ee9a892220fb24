package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/savedsphere/sphered/internal/domain"
)

func TestInitializePlatformFoldersIdempotent(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	if err := r.InitializePlatformFolders(ctx); err != nil {
		t.Fatal(err)
	}
	if err := r.InitializePlatformFolders(ctx); err != nil {
		t.Fatal(err)
	}

	folders, err := r.GetFolders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(folders) != len(domain.MainPlatforms) {
		t.Fatalf("got %d folders, want %d", len(folders), len(domain.MainPlatforms))
	}

	seen := make(map[string]bool)
	for _, f := range folders {
		if !f.IsSystemFolder || !f.IsPlatformFolder {
			t.Errorf("folder %s missing system/platform flags", f.ID)
		}
		if f.Depth != 0 {
			t.Errorf("folder %s Depth = %d, want 0", f.ID, f.Depth)
		}
		seen[f.ID] = true
	}
	for _, p := range domain.MainPlatforms {
		if !seen[domain.PlatformFolderID(p)] {
			t.Errorf("missing platform folder for %v", p)
		}
	}
}

func TestSaveFolderNestedPathAndDepth(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	root, err := r.SaveFolder(ctx, domain.FolderForm{Name: "Work"})
	if err != nil {
		t.Fatal(err)
	}
	if root.Path != "Work" || root.Depth != 0 {
		t.Errorf("root Path/Depth = %v/%d, want Work/0", root.Path, root.Depth)
	}
	if root.Color != defaultFolderColor || root.Icon != defaultFolderIcon {
		t.Errorf("defaults not applied: color=%v icon=%v", root.Color, root.Icon)
	}

	child, err := r.SaveFolder(ctx, domain.FolderForm{Name: "Projects", ParentID: root.ID})
	if err != nil {
		t.Fatal(err)
	}
	if child.Path != "Work/Projects" || child.Depth != 1 {
		t.Errorf("child Path/Depth = %v/%d, want Work/Projects/1", child.Path, child.Depth)
	}

	folders, _ := r.GetFolders(ctx)
	for _, f := range folders {
		if f.ID == root.ID {
			if len(f.ChildrenIDs) != 1 || f.ChildrenIDs[0] != child.ID {
				t.Errorf("parent ChildrenIDs = %v, want [%v]", f.ChildrenIDs, child.ID)
			}
		}
	}
}

func TestUpdateFolderSystemFolderRejected(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	if err := r.InitializePlatformFolders(ctx); err != nil {
		t.Fatal(err)
	}

	name := "Renamed"
	_, err := r.UpdateFolder(ctx, "platform-youtube", domain.FolderPatch{Name: &name})
	if !errors.Is(err, ErrSystemFolder) {
		t.Fatalf("update error = %v, want ErrSystemFolder", err)
	}

	_, err = r.DeleteFolder(ctx, "platform-youtube")
	if !errors.Is(err, ErrSystemFolder) {
		t.Fatalf("delete error = %v, want ErrSystemFolder", err)
	}
}

func TestUpdateFolderRenameCascadesPaths(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	root, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "Work"})
	child, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "Projects", ParentID: root.ID})
	link := mustSave(t, r, domain.LinkForm{URL: "https://example.com/a", FolderID: child.ID})
	if link.FolderPath != "Work/Projects" {
		t.Fatalf("link FolderPath = %v, want Work/Projects", link.FolderPath)
	}

	name := "Job"
	if _, err := r.UpdateFolder(ctx, root.ID, domain.FolderPatch{Name: &name}); err != nil {
		t.Fatal(err)
	}

	folders, _ := r.GetFolders(ctx)
	for _, f := range folders {
		if f.ID == child.ID && f.Path != "Job/Projects" {
			t.Errorf("child Path = %v, want Job/Projects", f.Path)
		}
	}

	links, _ := r.GetLinks(ctx)
	if links[0].FolderPath != "Job/Projects" {
		t.Errorf("link FolderPath = %v, want Job/Projects", links[0].FolderPath)
	}
}

func TestUpdateFolderReparentRecomputesDepth(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	a, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "A"})
	b, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "B"})
	c, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "C", ParentID: b.ID})

	if _, err := r.UpdateFolder(ctx, b.ID, domain.FolderPatch{ParentID: &a.ID}); err != nil {
		t.Fatal(err)
	}

	folders, _ := r.GetFolders(ctx)
	for _, f := range folders {
		switch f.ID {
		case b.ID:
			if f.Path != "A/B" || f.Depth != 1 {
				t.Errorf("B Path/Depth = %v/%d, want A/B/1", f.Path, f.Depth)
			}
		case c.ID:
			if f.Path != "A/B/C" || f.Depth != 2 {
				t.Errorf("C Path/Depth = %v/%d, want A/B/C/2", f.Path, f.Depth)
			}
		case a.ID:
			if len(f.ChildrenIDs) != 1 || f.ChildrenIDs[0] != b.ID {
				t.Errorf("A ChildrenIDs = %v, want [%v]", f.ChildrenIDs, b.ID)
			}
		}
	}
}

func TestUpdateFolderRejectsCycle(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	a, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "A"})
	b, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "B", ParentID: a.ID})
	c, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "C", ParentID: b.ID})

	// Under a descendant (grandchild).
	if _, err := r.UpdateFolder(ctx, a.ID, domain.FolderPatch{ParentID: &c.ID}); !errors.Is(err, ErrFolderCycle) {
		t.Fatalf("reparent under grandchild err = %v, want ErrFolderCycle", err)
	}

	// Under itself.
	if _, err := r.UpdateFolder(ctx, a.ID, domain.FolderPatch{ParentID: &a.ID}); !errors.Is(err, ErrFolderCycle) {
		t.Fatalf("reparent under self err = %v, want ErrFolderCycle", err)
	}

	// Nothing persisted.
	folders, _ := r.GetFolders(ctx)
	for _, f := range folders {
		if f.ID == a.ID && f.ParentID != "" {
			t.Errorf("A ParentID = %v, want root", f.ParentID)
		}
		if f.ID == c.ID && f.Path != "A/B/C" {
			t.Errorf("C Path = %v, want A/B/C", f.Path)
		}
	}
}

func TestDeleteFolderReassignsChildrenAndLinks(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	root, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "Root"})
	mid, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "Mid", ParentID: root.ID})
	leaf, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "Leaf", ParentID: mid.ID})
	mustSave(t, r, domain.LinkForm{URL: "https://example.com/a", FolderID: mid.ID})

	ok, err := r.DeleteFolder(ctx, mid.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteFolder() = %v, %v", ok, err)
	}

	folders, _ := r.GetFolders(ctx)
	if len(folders) != 2 {
		t.Fatalf("got %d folders, want 2", len(folders))
	}
	for _, f := range folders {
		switch f.ID {
		case leaf.ID:
			if f.ParentID != root.ID {
				t.Errorf("leaf ParentID = %v, want %v", f.ParentID, root.ID)
			}
			if f.Path != "Root/Leaf" || f.Depth != 1 {
				t.Errorf("leaf Path/Depth = %v/%d, want Root/Leaf/1", f.Path, f.Depth)
			}
		case root.ID:
			found := false
			for _, c := range f.ChildrenIDs {
				if c == leaf.ID {
					found = true
				}
				if c == mid.ID {
					t.Error("root still lists the deleted folder as a child")
				}
			}
			if !found {
				t.Error("root does not list the reassigned leaf as a child")
			}
			if f.LinkCount != 1 {
				t.Errorf("root LinkCount = %d, want 1", f.LinkCount)
			}
		}
	}

	links, _ := r.GetLinks(ctx)
	if links[0].FolderID != root.ID || links[0].FolderPath != "Root" {
		t.Errorf("link FolderID/Path = %v/%v, want %v/Root", links[0].FolderID, links[0].FolderPath, root.ID)
	}
}

func TestDeleteRootFolderMovesLinksToRoot(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	folder, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "Solo"})
	mustSave(t, r, domain.LinkForm{URL: "https://example.com/a", FolderID: folder.ID})

	if ok, err := r.DeleteFolder(ctx, folder.ID); err != nil || !ok {
		t.Fatalf("DeleteFolder() = %v, %v", ok, err)
	}

	links, _ := r.GetLinks(ctx)
	if links[0].FolderID != "" || links[0].FolderPath != "" {
		t.Errorf("link not moved to root: %+v", links[0])
	}
}

func TestAncestorChainCycleGuard(t *testing.T) {
	// A corrupted parent cycle must not hang the walk.
	folders := []domain.Folder{
		{ID: "a", Name: "A", ParentID: "b"},
		{ID: "b", Name: "B", ParentID: "a"},
	}

	chain := ancestorChain(folders, "a")
	if len(chain) == 0 || len(chain) > 2 {
		t.Errorf("cycle walk returned %d entries", len(chain))
	}
	// Path and depth still come back finite.
	_ = folderPathOf(folders, "a")
	if d := folderDepthOf(folders, "a"); d > 1 {
		t.Errorf("depth in cycle = %d", d)
	}
}
