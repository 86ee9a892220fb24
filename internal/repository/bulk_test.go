package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/savedsphere/sphered/internal/domain"
)

func TestBulkDeletePartialFailure(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	a := mustSave(t, r, domain.LinkForm{URL: "https://example.com/a"})
	b := mustSave(t, r, domain.LinkForm{URL: "https://example.com/b"})

	result, err := r.Bulk(ctx, domain.BulkOperation{
		Type:    domain.BulkDelete,
		LinkIDs: []string{a.ID, "missing", b.ID},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Success {
		t.Error("Success = true with a failing id")
	}
	if result.ProcessedCount != 2 {
		t.Errorf("ProcessedCount = %d, want 2", result.ProcessedCount)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "missing") {
		t.Errorf("Errors = %v, want one naming the missing id", result.Errors)
	}
	if !strings.Contains(result.Message, "2") || !strings.Contains(result.Message, "1") {
		t.Errorf("Message = %q, want counts", result.Message)
	}

	trash, _ := r.GetDeletedLinks(ctx)
	if len(trash) != 2 {
		t.Errorf("trash = %d links, want 2", len(trash))
	}
}

func TestBulkMoveRequiresTargetFolder(t *testing.T) {
	r := newTestRepo()

	result, err := r.Bulk(context.Background(), domain.BulkOperation{
		Type:    domain.BulkMove,
		LinkIDs: []string{"any"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || result.ProcessedCount != 0 {
		t.Errorf("move without target: %+v", result)
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "target folder") {
		t.Errorf("Errors = %v, want target folder complaint", result.Errors)
	}
}

func TestBulkMove(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	folder, _ := r.SaveFolder(ctx, domain.FolderForm{Name: "Dest"})
	a := mustSave(t, r, domain.LinkForm{URL: "https://example.com/a"})
	b := mustSave(t, r, domain.LinkForm{URL: "https://example.com/b"})

	result, err := r.Bulk(ctx, domain.BulkOperation{
		Type:           domain.BulkMove,
		LinkIDs:        []string{a.ID, b.ID},
		TargetFolderID: folder.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success || result.ProcessedCount != 2 {
		t.Fatalf("bulk move result: %+v", result)
	}

	links, _ := r.GetLinks(ctx)
	for _, l := range links {
		if l.FolderID != folder.ID {
			t.Errorf("link %s FolderID = %v, want %v", l.ID, l.FolderID, folder.ID)
		}
	}

	folders, _ := r.GetFolders(ctx)
	if folders[0].LinkCount != 2 {
		t.Errorf("folder LinkCount = %d, want 2", folders[0].LinkCount)
	}
}

func TestBulkFavoriteAndUnfavorite(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	a := mustSave(t, r, domain.LinkForm{URL: "https://example.com/a"})
	b := mustSave(t, r, domain.LinkForm{URL: "https://example.com/b", IsFavorite: true})

	result, err := r.Bulk(ctx, domain.BulkOperation{
		Type:    domain.BulkFavorite,
		LinkIDs: []string{a.ID, b.ID},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success {
		t.Fatalf("bulk favorite result: %+v", result)
	}

	links, _ := r.GetLinks(ctx)
	for _, l := range links {
		if !l.IsFavorite {
			t.Errorf("link %s not favorite after bulk favorite", l.ID)
		}
	}

	if _, err := r.Bulk(ctx, domain.BulkOperation{
		Type:    domain.BulkUnfavorite,
		LinkIDs: []string{a.ID, b.ID},
	}); err != nil {
		t.Fatal(err)
	}
	links, _ = r.GetLinks(ctx)
	for _, l := range links {
		if l.IsFavorite {
			t.Errorf("link %s still favorite after bulk unfavorite", l.ID)
		}
	}
}

func TestBulkRestore(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	a := mustSave(t, r, domain.LinkForm{URL: "https://example.com/a"})
	b := mustSave(t, r, domain.LinkForm{URL: "https://example.com/b"})
	for _, id := range []string{a.ID, b.ID} {
		if _, err := r.DeleteLink(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	result, err := r.Bulk(ctx, domain.BulkOperation{
		Type:    domain.BulkRestore,
		LinkIDs: []string{a.ID, b.ID},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Success || result.ProcessedCount != 2 {
		t.Fatalf("bulk restore result: %+v", result)
	}

	active, _ := r.GetLinks(ctx)
	if len(active) != 2 {
		t.Errorf("active links = %d, want 2", len(active))
	}
}

func TestBulkUnknownType(t *testing.T) {
	r := newTestRepo()

	result, err := r.Bulk(context.Background(), domain.BulkOperation{
		Type:    "sideways",
		LinkIDs: []string{"x"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || len(result.Errors) == 0 {
		t.Errorf("unknown type result: %+v", result)
	}
}
