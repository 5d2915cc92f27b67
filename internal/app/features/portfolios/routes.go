// internal/app/features/portfolios/routes.go
package portfolios

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the dashboard pages, mounted at /portfolios.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeIndex)
	r.Get("/{id}", h.ServeDashboard)

	// Chart pages loaded by the dashboard iframes
	r.Get("/{id}/charts/{chart}", h.ServeChart)

	// xlsx download of the filtered view
	r.Post("/{id}/export", h.HandleExport)

	return r
}

// APIRoutes returns the JSON router, mounted at /api/portfolios.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.APIList)
	r.Get("/{id}/summary", h.APISummary)

	return r
}
