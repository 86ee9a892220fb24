package handlers

import (
	"net/http"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/httpserver/deps"
)

// GetPreferences serves the stored preferences, defaults filled in.
func GetPreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefs, err := d.Repo.GetPreferences(r.Context())
		if err != nil {
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

// UpdatePreferences merges a partial preferences document into the
// stored one and returns the result.
func UpdatePreferences(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.PreferencesPatch
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		prefs, err := d.Repo.UpdatePreferences(r.Context(), patch)
		if err != nil {
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}
