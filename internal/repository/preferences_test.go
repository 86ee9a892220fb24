package repository

import (
	"context"
	"testing"

	"github.com/savedsphere/sphered/internal/domain"
)

func TestGetPreferencesDefaults(t *testing.T) {
	r := newTestRepo()

	prefs, err := r.GetPreferences(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := domain.DefaultPreferences()
	if prefs.Theme != want.Theme || prefs.GridSize != want.GridSize ||
		prefs.DefaultView != want.DefaultView || prefs.SortBy != want.SortBy {
		t.Errorf("defaults = %+v, want %+v", prefs, want)
	}
	if !prefs.ShowThumbnails || !prefs.AutoDetectPlatform {
		t.Error("boolean defaults should be true")
	}
}

func TestUpdatePreferencesMerges(t *testing.T) {
	r := newTestRepo()
	ctx := context.Background()

	theme := "dark"
	collapsed := true
	merged, err := r.UpdatePreferences(ctx, domain.PreferencesPatch{
		Theme:            &theme,
		SidebarCollapsed: &collapsed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if merged.Theme != "dark" || !merged.SidebarCollapsed {
		t.Errorf("merged = %+v", merged)
	}
	// Untouched fields keep their values.
	if merged.GridSize != "medium" {
		t.Errorf("GridSize = %v, want medium", merged.GridSize)
	}

	// A second partial update leaves the first one intact.
	view := "list"
	merged, err = r.UpdatePreferences(ctx, domain.PreferencesPatch{DefaultView: &view})
	if err != nil {
		t.Fatal(err)
	}
	if merged.Theme != "dark" || merged.DefaultView != "list" {
		t.Errorf("second merge = %+v", merged)
	}

	stored, err := r.GetPreferences(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Theme != merged.Theme || stored.DefaultView != merged.DefaultView {
		t.Errorf("stored = %+v, want %+v", stored, merged)
	}
}
