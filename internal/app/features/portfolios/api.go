// internal/app/features/portfolios/api.go
package portfolios

import (
	"net/http"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/aggregate"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/jsonutil"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type listResponse struct {
	Portfolios []string `json:"portfolios"`
}

type stateVPJSON struct {
	State string `json:"state"`
	VP    string `json:"vp"`
}

type benefitVPJSON struct {
	Code int64  `json:"code"`
	VP   string `json:"vp"`
}

type warningJSON struct {
	Kind    models.WarningKind `json:"kind"`
	Message string             `json:"message"`
}

// summaryResponse mirrors aggregate.Summary. Money is sent as decimal
// strings so no precision is lost in transit.
type summaryResponse struct {
	Portfolio   string          `json:"portfolio"`
	Count       int             `json:"count"`
	TotalVP     string          `json:"total_vp"`
	MeanAge     *float64        `json:"mean_age"`
	PercentMale float64         `json:"percent_male"`
	ByState     []stateVPJSON   `json:"by_state"`
	ByBenefit   []benefitVPJSON `json:"by_benefit"`
	UnstatedVP  string          `json:"unstated_vp"`
	UncodedVP   string          `json:"uncoded_vp"`
	Warnings    []warningJSON   `json:"warnings"`
	Ignored     []string        `json:"ignored,omitempty"`
}

// APIList returns the catalog.
func (h *Handler) APIList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.List(), h.Log, "list portfolios")
	defer cancel()

	ids, err := h.Catalog.List(ctx)
	if err != nil {
		h.failJSON(w, r, "", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	jsonutil.OK(w, listResponse{Portfolios: ids})
}

// APISummary returns the indicators of a portfolio for the criteria in the
// query string, using the same field names as the dashboard form.
func (h *Handler) APISummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	out, err := h.run(r, id, r.URL.Query())
	if err != nil {
		h.failJSON(w, r, id, err)
		return
	}

	jsonutil.OK(w, newSummaryResponse(id, out.Summary, out.Warnings, out.Messages))
}

func newSummaryResponse(id string, s aggregate.Summary, warnings []models.Warning, ignored []string) summaryResponse {
	resp := summaryResponse{
		Portfolio:   id,
		Count:       s.Count,
		TotalVP:     s.TotalVP.StringFixed(2),
		MeanAge:     s.MeanAge,
		PercentMale: s.PercentMale,
		ByState:     make([]stateVPJSON, 0, len(s.ByState)),
		ByBenefit:   make([]benefitVPJSON, 0, len(s.ByBenefit)),
		UnstatedVP:  s.UnstatedVP.StringFixed(2),
		UncodedVP:   s.UncodedVP.StringFixed(2),
		Warnings:    make([]warningJSON, 0, len(warnings)),
		Ignored:     ignored,
	}
	for _, g := range s.ByState {
		resp.ByState = append(resp.ByState, stateVPJSON{State: g.State, VP: g.VP.StringFixed(2)})
	}
	for _, g := range s.ByBenefit {
		resp.ByBenefit = append(resp.ByBenefit, benefitVPJSON{Code: g.Code, VP: g.VP.StringFixed(2)})
	}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, warningJSON{Kind: w.Kind, Message: w.Message})
	}
	return resp
}
