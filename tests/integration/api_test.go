package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/httpserver/deps"
	"github.com/savedsphere/sphered/internal/httpserver/routes"
	"github.com/savedsphere/sphered/internal/logger"
	"github.com/savedsphere/sphered/internal/mirror"
	"github.com/savedsphere/sphered/internal/repository"
	"github.com/savedsphere/sphered/internal/store/memstore"
)

type testAPI struct {
	srv  *httptest.Server
	repo *repository.Repository
	hub  *mirror.Hub
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	st := memstore.New()
	log := logger.New("error", false)
	repo := repository.New(st, nil, log)
	hub := mirror.NewHub(repo, st, log, time.Hour)

	ctx := context.Background()
	if err := repo.InitializePlatformFolders(ctx); err != nil {
		t.Fatal(err)
	}
	if err := hub.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(hub.Stop)

	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		Version:   "test",
		TimeNow:   time.Now,
		Repo:      repo,
		Hub:       hub,
		Store:     st,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testAPI{srv: srv, repo: repo, hub: hub}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestLinkLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	// Create.
	resp := api.do(t, http.MethodPost, "/api/links", map[string]any{
		"url":   "https://www.youtube.com/watch?v=abc123",
		"title": "Video",
		"tags":  []string{"watch"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created domain.Link
	decodeBody(t, resp, &created)
	if created.Platform != domain.PlatformYouTube {
		t.Errorf("Platform = %v, want youtube", created.Platform)
	}
	if created.FolderID != "platform-youtube" {
		t.Errorf("FolderID = %v, want platform-youtube", created.FolderID)
	}

	// Duplicate conflicts.
	resp = api.do(t, http.MethodPost, "/api/links", map[string]any{
		"url":   "https://www.youtube.com/watch?v=abc123",
		"title": "Video again",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	// List.
	resp = api.do(t, http.MethodGet, "/api/links", nil)
	var listing struct {
		Links []domain.Link `json:"links"`
		Total int           `json:"total"`
	}
	decodeBody(t, resp, &listing)
	if listing.Total != 1 {
		t.Fatalf("total = %d, want 1", listing.Total)
	}

	// Patch.
	resp = api.do(t, http.MethodPatch, "/api/links/"+created.ID, map[string]any{
		"title": "Renamed",
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("patch status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	// Favorite toggle.
	resp = api.do(t, http.MethodPost, "/api/links/"+created.ID+"/favorite", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("favorite status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	// Soft delete, then confirm it shows in the trash.
	resp = api.do(t, http.MethodDelete, "/api/links/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/trash", nil)
	var trash struct {
		Links []domain.Link `json:"links"`
		Total int           `json:"total"`
	}
	decodeBody(t, resp, &trash)
	if trash.Total != 1 || !trash.Links[0].IsDeleted {
		t.Fatalf("trash = %+v", trash)
	}

	// Restore.
	resp = api.do(t, http.MethodPost, "/api/trash/"+created.ID+"/restore", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("restore status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/links", nil)
	decodeBody(t, resp, &listing)
	if listing.Total != 1 {
		t.Errorf("total after restore = %d, want 1", listing.Total)
	}
}

func TestCreateLinkValidation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing url", map[string]any{"title": "No URL"}},
		{"blank url", map[string]any{"url": "   ", "title": "Blank URL"}},
		{"missing title", map[string]any{"url": "https://example.com/untitled"}},
		{"blank title", map[string]any{"url": "https://example.com/untitled", "title": "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.do(t, http.MethodPost, "/api/links", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("create status = %d, want 400", resp.StatusCode)
			}
			resp.Body.Close()
		})
	}

	// Nothing rejected may be persisted.
	resp := api.do(t, http.MethodGet, "/api/links", nil)
	var listing struct {
		Total int `json:"total"`
	}
	decodeBody(t, resp, &listing)
	if listing.Total != 0 {
		t.Errorf("total after rejected creates = %d, want 0", listing.Total)
	}
}

func TestLinkFiltersOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	for i, u := range []string{
		"https://github.com/user/alpha",
		"https://github.com/user/beta",
		"https://example.com/gamma",
	} {
		resp := api.do(t, http.MethodPost, "/api/links", map[string]any{
			"url":   u,
			"title": fmt.Sprintf("Link %d", i),
			"tags":  []string{"t"},
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed create status = %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp := api.do(t, http.MethodGet, "/api/links?platforms=github", nil)
	var listing struct {
		Links []domain.Link `json:"links"`
		Total int           `json:"total"`
	}
	decodeBody(t, resp, &listing)
	if listing.Total != 2 {
		t.Errorf("github filter total = %d, want 2", listing.Total)
	}

	resp = api.do(t, http.MethodGet, "/api/links?q=gamma", nil)
	decodeBody(t, resp, &listing)
	if listing.Total != 1 {
		t.Errorf("query filter total = %d, want 1", listing.Total)
	}
}

func TestFolderEndpoints(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/folders", map[string]any{"name": "Work"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create folder status = %d, want 201", resp.StatusCode)
	}
	var folder domain.Folder
	decodeBody(t, resp, &folder)

	// System folders reject edits.
	resp = api.do(t, http.MethodPatch, "/api/folders/platform-youtube", map[string]any{"name": "Nope"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("system folder patch status = %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.do(t, http.MethodPatch, "/api/folders/"+folder.ID, map[string]any{"name": "Job"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("folder patch status = %d, want 200", resp.StatusCode)
	}
	var patched domain.Folder
	decodeBody(t, resp, &patched)
	if patched.Name != "Job" || patched.Path != "Job" {
		t.Errorf("patched folder = %+v", patched)
	}

	resp = api.do(t, http.MethodDelete, "/api/folders/"+folder.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("folder delete status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestBulkEndpointPartialFailure(t *testing.T) {
	api := newTestAPI(t)

	var ids []string
	for _, u := range []string{"https://example.com/a", "https://example.com/b"} {
		resp := api.do(t, http.MethodPost, "/api/links", map[string]any{"url": u, "title": u})
		var l domain.Link
		decodeBody(t, resp, &l)
		ids = append(ids, l.ID)
	}

	resp := api.do(t, http.MethodPost, "/api/links/bulk", map[string]any{
		"type":    "delete",
		"linkIds": []string{ids[0], "missing", ids[1]},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bulk status = %d, want 200", resp.StatusCode)
	}
	var result domain.BulkResult
	decodeBody(t, resp, &result)
	if result.Success || result.ProcessedCount != 2 || len(result.Errors) != 1 {
		t.Errorf("bulk result = %+v", result)
	}
}

func TestPreferencesEndpoints(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/api/preferences", nil)
	var prefs domain.Preferences
	decodeBody(t, resp, &prefs)
	if prefs.Theme != "system" {
		t.Errorf("default theme = %v, want system", prefs.Theme)
	}

	resp = api.do(t, http.MethodPatch, "/api/preferences", map[string]any{"theme": "dark"})
	decodeBody(t, resp, &prefs)
	if prefs.Theme != "dark" {
		t.Errorf("patched theme = %v, want dark", prefs.Theme)
	}
	if prefs.GridSize != "medium" {
		t.Errorf("GridSize = %v, want untouched medium", prefs.GridSize)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/links", map[string]any{
		"url":   "https://example.com/a",
		"title": "A",
		"tags":  []string{"x"},
	})
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/export", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d, want 200", resp.StatusCode)
	}
	var doc repository.ExportData
	decodeBody(t, resp, &doc)
	if len(doc.Links) != 1 || len(doc.Tags) != 1 {
		t.Fatalf("export doc: links=%d tags=%d", len(doc.Links), len(doc.Tags))
	}

	// Wipe, then import the document back.
	resp = api.do(t, http.MethodDelete, "/api/data", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.do(t, http.MethodPost, "/api/import", doc)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("import status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/links", nil)
	var listing struct {
		Total int `json:"total"`
	}
	decodeBody(t, resp, &listing)
	if listing.Total != 1 {
		t.Errorf("total after import = %d, want 1", listing.Total)
	}
}

func TestHealthEndpoints(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/readyz", nil)
	var ready struct {
		Ready bool `json:"ready"`
	}
	decodeBody(t, resp, &ready)
	if !ready.Ready {
		t.Error("readyz reported not ready on memory store")
	}

	resp = api.do(t, http.MethodGet, "/api/infra", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("infra status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
}
