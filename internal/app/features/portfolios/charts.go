// internal/app/features/portfolios/charts.go
package portfolios

import (
	"bytes"
	"net/http"

	uierrors "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/features/errors"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/charts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeChart renders one chart of the filtered view as a standalone page,
// for the dashboard's chart iframes.
func (h *Handler) ServeChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kind, ok := charts.ParseKind(chi.URLParam(r, "chart"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	out, err := h.run(r, id, r.URL.Query())
	if err != nil {
		h.fail(w, r, id, err)
		return
	}
	if out.Empty {
		uierrors.Blocking(w, r, http.StatusUnprocessableEntity, "No chart",
			"Portfolio "+id+" has no data.", "")
		return
	}

	var buf bytes.Buffer
	if err := charts.Render(&buf, kind, out.Summary, h.ChartColor); err != nil {
		h.ErrLog.LogWithFields(r, "chart render failed", err, zap.String("portfolio", id), zap.String("chart", string(kind)))
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Framed by the dashboard page.
	w.Header().Set("X-Frame-Options", "SAMEORIGIN")
	w.Write(buf.Bytes())
}
