// internal/app/features/portfolios/pipeline.go
package portfolios

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"time"

	uierrors "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/features/errors"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/aggregate"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/filter"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/jsonutil"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/normalize"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"go.uber.org/zap"
)

// Pipeline stage names, as recorded in the stage duration histogram.
const (
	stageNormalize = "normalize"
	stageFilter    = "filter"
	stageAggregate = "aggregate"
)

// outcome is everything one request derives from a portfolio selection and
// a Criteria snapshot. It is built fresh for every request.
type outcome struct {
	ID       string
	IDs      []string // catalog, for the selector
	Empty    bool     // the portfolio file has no rows
	Choices  filter.Choices
	Criteria models.Criteria
	View     models.View
	Summary  aggregate.Summary
	Warnings []models.Warning
	Messages []string // submitted values that were dropped
}

// run loads portfolio id and takes it through normalize, filter and
// aggregate using the criteria encoded in vals.
//
// An empty portfolio short-circuits with an EmptyDataset warning: nothing
// is normalized or aggregated and the summary stays zero.
func (h *Handler) run(r *http.Request, id string, vals url.Values) (*outcome, error) {
	listCtx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list portfolios")
	ids, err := h.Catalog.List(listCtx)
	cancel()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(ids, id) {
		return nil, &models.NotFoundError{Kind: models.NotFoundPortfolio, Name: id}
	}

	loadCtx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Load(), h.Log, "load portfolio")
	frame, err := h.Loader.Load(loadCtx, id)
	cancel()
	if err != nil {
		return nil, err
	}

	out := &outcome{ID: id, IDs: ids}
	if frame.Len() == 0 {
		out.Empty = true
		out.Criteria = models.DefaultCriteria(models.DateRange{})
		out.Warnings = []models.Warning{models.EmptyDatasetWarning()}
		return out, nil
	}

	start := time.Now()
	p, err := normalize.Portfolio(id, frame)
	h.Metrics.ObserveStage(stageNormalize, time.Since(start))
	if err != nil {
		return nil, err
	}

	out.Choices = filter.ChoicesFor(p)
	out.Criteria, out.Messages = ParseCriteria(vals, out.Choices)

	start = time.Now()
	res, err := filter.Apply(p, out.Criteria)
	h.Metrics.ObserveStage(stageFilter, time.Since(start))
	if err != nil {
		return nil, err
	}
	out.View = res.View
	out.Warnings = res.Warnings

	start = time.Now()
	out.Summary = aggregate.Compute(out.View)
	h.Metrics.ObserveStage(stageAggregate, time.Since(start))

	return out, nil
}

// failure describes how a pipeline error is reported to the user.
type failure struct {
	Status  int
	Heading string
	Message string
}

// classify maps a pipeline error to its HTTP status and blocking message,
// and logs it. Storage and schema problems are expected conditions of the
// data and are logged at warn level; anything else is an error.
func (h *Handler) classify(r *http.Request, id string, err error) failure {
	var nf *models.NotFoundError
	var se *models.SchemaError

	switch {
	case errors.As(err, &nf) && nf.Kind == models.NotFoundStorage:
		h.Log.Warn("portfolio storage unavailable", zap.String("location", nf.Name))
		return failure{
			Status:  http.StatusServiceUnavailable,
			Heading: "Portfolio storage not found",
			Message: "The portfolio storage location could not be found. Check the dashboard configuration.",
		}
	case errors.As(err, &nf):
		return failure{
			Status:  http.StatusNotFound,
			Heading: "Portfolio not found",
			Message: "Portfolio " + id + " is not in the catalog.",
		}
	case errors.As(err, &se):
		h.Log.Warn("portfolio schema error",
			zap.String("portfolio", id),
			zap.String("column", se.Column),
			zap.Int("row", se.Row),
			zap.String("reason", se.Reason),
		)
		return failure{
			Status:  http.StatusUnprocessableEntity,
			Heading: "Portfolio data is invalid",
			Message: "Portfolio " + id + " cannot be shown: " + se.Error() + ".",
		}
	default:
		h.ErrLog.LogWithFields(r, "portfolio pipeline failed", err, zap.String("portfolio", id))
		return failure{
			Status:  http.StatusInternalServerError,
			Heading: "Something went wrong",
			Message: "The portfolio could not be processed. Please try again.",
		}
	}
}

// fail renders a blocking page for err.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, id string, err error) {
	f := h.classify(r, id, err)
	back := ""
	if f.Status != http.StatusServiceUnavailable {
		back = "/portfolios"
	}
	uierrors.Blocking(w, r, f.Status, f.Heading, f.Message, back)
}

// failJSON reports err as a JSON error body.
func (h *Handler) failJSON(w http.ResponseWriter, r *http.Request, id string, err error) {
	f := h.classify(r, id, err)
	jsonutil.Error(w, f.Status, f.Message)
}
