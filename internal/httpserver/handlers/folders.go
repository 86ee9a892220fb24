package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/httpserver/deps"
)

type listFoldersResponse struct {
	Folders []domain.Folder `json:"folders"`
	Total   int             `json:"total"`
}

// ListFolders serves the full folder tree as a flat list.
func ListFolders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folders := d.Hub.Folders()
		writeJSON(w, http.StatusOK, listFoldersResponse{Folders: folders, Total: len(folders)})
	}
}

// CreateFolder creates a user folder, optionally nested under a parent.
func CreateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.FolderForm
		if err := decodeJSON(r, &form); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(form.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		folder, err := d.Repo.SaveFolder(r.Context(), form)
		if err != nil {
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, folder)
	}
}

// UpdateFolder renames, recolors or reparents a folder.
func UpdateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var patch domain.FolderPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		folder, err := d.Repo.UpdateFolder(r.Context(), id, patch)
		if err != nil {
			writeOpError(w, err)
			return
		}
		if folder == nil {
			writeError(w, http.StatusNotFound, "folder not found")
			return
		}
		writeJSON(w, http.StatusOK, folder)
	}
}

// DeleteFolder removes a folder; its subfolders and links are
// reassigned to the parent, never deleted with it.
func DeleteFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		deleted, err := d.Repo.DeleteFolder(r.Context(), id)
		if err != nil {
			writeOpError(w, err)
			return
		}
		if !deleted {
			writeError(w, http.StatusNotFound, "folder not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
