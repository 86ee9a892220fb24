package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/savedsphere/sphered/internal/httpserver/deps"
	"github.com/savedsphere/sphered/internal/httpserver/handlers"
)

func init() { Register(registerTrash) }

func registerTrash(r chi.Router, d deps.Deps) {
	r.Route("/api/trash", func(r chi.Router) {
		r.Get("/", handlers.ListTrash(d))
		r.Delete("/", handlers.EmptyTrash(d))
		r.Post("/{id}/restore", handlers.RestoreLink(d))
		r.Delete("/{id}", handlers.PermanentlyDeleteLink(d))
	})
}
