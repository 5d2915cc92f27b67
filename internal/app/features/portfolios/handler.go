// internal/app/features/portfolios/handler.go
package portfolios

import (
	"net/http"
	"net/url"

	uierrors "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/features/errors"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/store/portfolio"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/charts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/formutil"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/metrics"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler owns the portfolio dashboard handlers.
type Handler struct {
	Catalog    *portfolio.Catalog
	Loader     *portfolio.Loader
	Location   string
	ChartColor string
	Metrics    *metrics.Metrics
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

// NewHandler creates a new portfolios Handler.
func NewHandler(catalog *portfolio.Catalog, loader *portfolio.Loader, location, chartColor string, m *metrics.Metrics, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if chartColor == "" {
		chartColor = charts.DefaultColor
	}
	return &Handler{
		Catalog:    catalog,
		Loader:     loader,
		Location:   location,
		ChartColor: chartColor,
		Metrics:    m,
		ErrLog:     errLog,
		Log:        logger,
	}
}

// ServeIndex redirects to the first portfolio of the catalog, or explains
// that the storage location holds no portfolio.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list portfolios")
	defer cancel()

	ids, err := h.Catalog.List(ctx)
	if err != nil {
		h.fail(w, r, "", err)
		return
	}
	if len(ids) == 0 {
		templates.Render(w, r, "portfolios/empty_catalog", emptyCatalogData{
			Base:     formutil.NewBase(r, "No portfolios"),
			Location: h.Location,
		})
		return
	}

	http.Redirect(w, r, "/portfolios/"+url.PathEscape(ids[0]), http.StatusSeeOther)
}

// ServeDashboard renders the dashboard of one portfolio with the criteria
// from the query string.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	out, err := h.run(r, id, r.URL.Query())
	if err != nil {
		h.fail(w, r, id, err)
		return
	}

	data := newDashboardData(formutil.NewBase(r, id), out)
	templates.Render(w, r, "portfolios/dashboard", data)
}

