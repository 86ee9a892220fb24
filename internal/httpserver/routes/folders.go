package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/savedsphere/sphered/internal/httpserver/deps"
	"github.com/savedsphere/sphered/internal/httpserver/handlers"
)

func init() { Register(registerFolders) }

func registerFolders(r chi.Router, d deps.Deps) {
	r.Route("/api/folders", func(r chi.Router) {
		r.Get("/", handlers.ListFolders(d))
		r.Post("/", handlers.CreateFolder(d))
		r.Patch("/{id}", handlers.UpdateFolder(d))
		r.Delete("/{id}", handlers.DeleteFolder(d))
	})
}
