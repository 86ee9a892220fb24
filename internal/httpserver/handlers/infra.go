package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/savedsphere/sphered/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Links   *int   `json:"links,omitempty"`
	Folders *int   `json:"folders,omitempty"`
	Tags    *int   `json:"tags,omitempty"`
	Trash   *int   `json:"trash,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the storage backend and the in-memory
// mirrors for dashboards and debugging.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		links := len(d.Hub.Links())
		folders := len(d.Hub.Folders())
		tags := len(d.Hub.Tags())
		trash := len(d.Hub.DeletedLinks())

		components := map[string]componentStatus{
			"mirror": {
				OK:      true,
				Links:   &links,
				Folders: &folders,
				Tags:    &tags,
				Trash:   &trash,
			},
			"store": checkStore(d),
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	if st, exists := components["store"]; exists && !st.OK {
		return "degraded"
	}
	return "ok"
}

func checkStore(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:   true,
			Mode: "memory",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "redis",
			Impact: "persistence-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{
		OK:   true,
		Mode: "redis",
	}
}
