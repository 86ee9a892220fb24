package handlers

import (
	"net/http"

	"github.com/savedsphere/sphered/internal/domain"
	"github.com/savedsphere/sphered/internal/httpserver/deps"
)

type listTagsResponse struct {
	Tags  []domain.Tag `json:"tags"`
	Total int          `json:"total"`
}

// ListTags serves the known tags with their usage counts.
func ListTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags := d.Hub.Tags()
		writeJSON(w, http.StatusOK, listTagsResponse{Tags: tags, Total: len(tags)})
	}
}
