package handlers

import (
	"net/http"

	"github.com/savedsphere/sphered/internal/httpserver/deps"
	"github.com/savedsphere/sphered/internal/repository"
)

// ExportData serves every collection as one portable JSON document.
func ExportData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := d.Repo.Export(r.Context())
		if err != nil {
			writeOpError(w, err)
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="sphered-export.json"`)
		writeJSON(w, http.StatusOK, data)
	}
}

// ImportData replaces the stored collections with a previously
// exported document. Collections missing from the document are kept.
func ImportData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data repository.ExportData
		if err := decodeJSON(r, &data); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := d.Repo.Import(r.Context(), &data); err != nil {
			writeOpError(w, err)
			return
		}
		if err := d.Hub.Refresh(r.Context()); err != nil {
			writeOpError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearData wipes every stored collection.
func ClearData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Repo.ClearAll(r.Context()); err != nil {
			writeOpError(w, err)
			return
		}
		if err := d.Hub.Refresh(r.Context()); err != nil {
			writeOpError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
