package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/httpserver/deps"
)

type listTrashResponse struct {
	Links []domain.Link `json:"links"`
	Total int           `json:"total"`
}

type emptyTrashResponse struct {
	Removed int `json:"removed"`
}

// ListTrash serves the trashed links, expired entries already swept.
func ListTrash(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Read through the repository so expired entries are purged
		// before the mirror copy is served.
		links, err := d.Repo.GetDeletedLinks(r.Context())
		if err != nil {
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listTrashResponse{Links: links, Total: len(links)})
	}
}

// RestoreLink moves a trashed link back to the active collection.
func RestoreLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		restored, err := d.Hub.RestoreLink(r.Context(), id)
		if err != nil {
			writeOpError(w, err)
			return
		}
		if !restored {
			writeError(w, http.StatusNotFound, "link not found in trash")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PermanentlyDeleteLink erases a trashed link for good.
func PermanentlyDeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		erased, err := d.Hub.PermanentlyDeleteLink(r.Context(), id)
		if err != nil {
			writeOpError(w, err)
			return
		}
		if !erased {
			writeError(w, http.StatusNotFound, "link not found in trash")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// EmptyTrash erases every trashed link.
func EmptyTrash(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := d.Hub.EmptyTrash(r.Context())
		if err != nil {
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, emptyTrashResponse{Removed: removed})
	}
}
