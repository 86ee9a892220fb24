package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/httpserver/deps"
)

type listLinksResponse struct {
	Links []domain.Link `json:"links"`
	Total int           `json:"total"`
}

// ListLinks serves the filtered, ordered view of active links. Filter
// criteria arrive as query parameters; absent parameters mean no
// filtering on that axis.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := parseFilters(r)
		links := domain.ApplyFilters(d.Hub.Links(), d.Hub.Folders(), filters)
		writeJSON(w, http.StatusOK, listLinksResponse{Links: links, Total: len(links)})
	}
}

func parseFilters(r *http.Request) domain.Filters {
	q := r.URL.Query()

	f := domain.Filters{
		Query:    q.Get("q"),
		FolderID: q.Get("folder"),
		Sort:     domain.SortOrder(q.Get("sort")),
	}
	if f.Sort == "" {
		f.Sort = domain.SortNewest
	}
	if raw := q.Get("tags"); raw != "" {
		f.Tags = splitCSV(raw)
	}
	if raw := q.Get("platforms"); raw != "" {
		for _, p := range splitCSV(raw) {
			f.Platforms = append(f.Platforms, domain.Platform(p))
		}
	}
	if fav, err := strconv.ParseBool(q.Get("favorites")); err == nil {
		f.FavoritesOnly = fav
	}
	return f
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// CreateLink saves a new link from the posted form.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.LinkForm
		if err := decodeJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(form.URL) == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		if strings.TrimSpace(form.Title) == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}

		link, err := d.Hub.SaveLink(r.Context(), form)
		if err != nil {
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, link)
	}
}

// UpdateLink applies a partial update to one link.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var patch domain.LinkPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		found, err := d.Hub.UpdateLink(r.Context(), id, patch)
		if err != nil {
			writeOpError(w, err)
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteLink moves a link to the trash.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		deleted, err := d.Hub.DeleteLink(r.Context(), id)
		if err != nil {
			writeOpError(w, err)
			return
		}
		if !deleted {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleFavorite flips a link's favorite flag.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		toggled, err := d.Hub.ToggleFavorite(r.Context(), id)
		if err != nil {
			writeOpError(w, err)
			return
		}
		if !toggled {
			writeError(w, http.StatusNotFound, "link not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// BulkLinks runs one operation over a set of link ids and reports
// per-link successes and failures.
func BulkLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var op domain.BulkOperation
		if err := decodeJSON(r, &op); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(op.LinkIDs) == 0 {
			writeError(w, http.StatusBadRequest, "linkIds is required")
			return
		}

		result, err := d.Hub.Bulk(r.Context(), op)
		if err != nil {
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
