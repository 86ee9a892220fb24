package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/savedsphere/sphered/internal/httpserver/deps"
	"github.com/savedsphere/sphered/internal/httpserver/handlers"
)

func init() { Register(registerPreferences) }

func registerPreferences(r chi.Router, d deps.Deps) {
	r.Route("/api/preferences", func(r chi.Router) {
		r.Get("/", handlers.GetPreferences(d))
		r.Patch("/", handlers.UpdatePreferences(d))
	})
}
