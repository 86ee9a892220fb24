package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/savedsphere/sphered/internal/httpserver/deps"
	"github.com/savedsphere/sphered/internal/httpserver/handlers"
)

func init() { Register(registerExport) }

func registerExport(r chi.Router, d deps.Deps) {
	r.Get("/api/export", handlers.ExportData(d))
	r.Post("/api/import", handlers.ImportData(d))
	r.Delete("/api/data", handlers.ClearData(d))
}
