package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/savedsphere/sphered/internal/httpserver/deps"
	"github.com/savedsphere/sphered/internal/httpserver/handlers"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.Route("/api/links", func(r chi.Router) {
		r.Get("/", handlers.ListLinks(d))
		r.Post("/", handlers.CreateLink(d))
		r.Post("/bulk", handlers.BulkLinks(d))
		r.Patch("/{id}", handlers.UpdateLink(d))
		r.Delete("/{id}", handlers.DeleteLink(d))
		r.Post("/{id}/favorite", handlers.ToggleFavorite(d))
	})
}
