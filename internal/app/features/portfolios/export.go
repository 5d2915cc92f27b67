// internal/app/features/portfolios/export.go
package portfolios

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	uierrors "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/features/errors"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/xlsxexport"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleExport writes the filtered view as an xlsx download. The criteria
// arrive as hidden fields of the export form.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	out, err := h.run(r, id, r.PostForm)
	if err != nil {
		h.fail(w, r, id, err)
		return
	}
	if out.Empty {
		uierrors.Blocking(w, r, http.StatusUnprocessableEntity, "Nothing to export",
			"Portfolio "+id+" has no data.", "/portfolios/"+url.PathEscape(id))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "export portfolio")
	defer cancel()

	// Nothing reaches w until the workbook is complete.
	var buf bytes.Buffer
	n, err := xlsxexport.Write(ctx, &buf, out.View)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.ErrLog.LogWithFields(r, "export timed out", err, zap.String("portfolio", id))
		http.Error(w, "Export timed out", http.StatusGatewayTimeout)
		return
	case err != nil:
		h.ErrLog.LogWithFields(r, "export failed", err, zap.String("portfolio", id))
		http.Error(w, "Failed to build export", http.StatusInternalServerError)
		return
	}

	exportID := uuid.NewString()
	h.Metrics.ObserveExport(n)
	h.Log.Info("portfolio exported",
		zap.String("export_id", exportID),
		zap.String("portfolio", id),
		zap.Int("rows", n),
		zap.Int("bytes", buf.Len()),
	)

	w.Header().Set("Content-Type", xlsxexport.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+xlsxexport.FileName(id)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Export-ID", exportID)
	w.Write(buf.Bytes())
}
