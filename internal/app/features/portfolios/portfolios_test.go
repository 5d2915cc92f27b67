package portfolios

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	uierrors "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/features/errors"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/store/portfolio"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/metrics"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/xlsxexport"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/testutil"
	"github.com/go-chi/chi/v5"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, dir string) (*Handler, *metrics.Metrics) {
	t.Helper()
	testutil.MustBootTemplates(t)

	src := portfolio.NewLocalSource(dir)
	m := metrics.New()
	logger := zap.NewNop()
	h := NewHandler(portfolio.NewCatalog(src), portfolio.NewLoader(src, m, logger), dir, "", m, uierrors.NewErrorLogger(logger), logger)
	return h, m
}

func newTestRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Mount("/portfolios", Routes(h))
	r.Mount("/api/portfolios", APIRoutes(h))
	return r
}

func serve(h http.Handler, req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// missingSEXO is a portfolio row without the SEXO column.
type missingSEXO struct {
	Date    string  `parquet:"DATA DESEMBOLSO"`
	State   string  `parquet:"ESTADO"`
	Benefit float64 `parquet:"CD BENEFICIO"`
	Table   float64 `parquet:"TABELA"`
	Op      string  `parquet:"tipo_operacao"`
	VP      float64 `parquet:"VP"`
	Age     float64 `parquet:"IDADE"`
}

func TestServeIndex_RedirectsToFirstPortfolio(t *testing.T) {
	h, _ := newTestHandler(t, testutil.PortfolioDir(t, "OUT_OF_RULES", "CESS_B", "CESS_A"))

	rec := serve(newTestRouter(h), testutil.NewRequest("GET", "/portfolios/"))

	rec.AssertRedirect(t, "/portfolios/CESS_A")
}

func TestServeIndex_EmptyCatalog(t *testing.T) {
	h, _ := newTestHandler(t, t.TempDir())

	rec := serve(newTestRouter(h), testutil.NewRequest("GET", "/portfolios/"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No portfolios")
}

func TestServeIndex_StorageMissing(t *testing.T) {
	h, _ := newTestHandler(t, filepath.Join(t.TempDir(), "absent"))

	rec := serve(newTestRouter(h), testutil.NewRequest("GET", "/portfolios/"))

	rec.AssertStatus(t, http.StatusServiceUnavailable)
}

func TestServeDashboard(t *testing.T) {
	dir := testutil.PortfolioDir(t, "CESS_A")
	testutil.WriteParquet(t, dir, "EMPTY", []testutil.ParquetRow{})
	testutil.WriteParquet(t, dir, "BROKEN", []missingSEXO{{Date: "10/01/2025", State: "SP", Op: "NEW", VP: 1}})
	h, _ := newTestHandler(t, dir)
	router := newTestRouter(h)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"default criteria", "/portfolios/CESS_A", http.StatusOK},
		{"submitted criteria", "/portfolios/CESS_A?filtered=1&estado=SP&tipo_operacao=NEW&tabela_modo=exclude&tabela=2", http.StatusOK},
		{"invalid values are dropped", "/portfolios/CESS_A?filtered=1&beneficio=abc&data_inicio=tomorrow", http.StatusOK},
		{"empty portfolio", "/portfolios/EMPTY", http.StatusOK},
		{"unknown portfolio", "/portfolios/CESS_Z", http.StatusNotFound},
		{"summary is never listed", "/portfolios/SUMMARY", http.StatusNotFound},
		{"missing required column", "/portfolios/BROKEN", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, testutil.NewRequest("GET", tt.target))
			rec.AssertStatus(t, tt.status)
		})
	}
}

func TestServeDashboard_EmptyPortfolioWarns(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteParquet(t, dir, "EMPTY", []testutil.ParquetRow{})
	h, _ := newTestHandler(t, dir)

	rec := serve(newTestRouter(h), testutil.NewRequest("GET", "/portfolios/EMPTY"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "No data available for this portfolio.")

	body := rec.Body.String()
	for _, absent := range []string{`class="indicators"`, "Contracts", "Total VP", "Mean age", "<iframe"} {
		if strings.Contains(body, absent) {
			t.Errorf("empty portfolio page contains %q", absent)
		}
	}
}

func TestServeChart_EmptyPortfolio(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteParquet(t, dir, "EMPTY", []testutil.ParquetRow{})
	h, _ := newTestHandler(t, dir)

	rec := serve(newTestRouter(h), testutil.NewRequest("GET", "/portfolios/EMPTY/charts/state"))

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	rec.AssertContains(t, "has no data")
}

func TestServeDashboard_ItemizesUngroupedVP(t *testing.T) {
	h, _ := newTestHandler(t, testutil.PortfolioDir(t, "CESS_A"))
	router := newTestRouter(h)

	// The RJ contract has no benefit code; every contract has a state.
	rec := serve(router, testutil.NewRequest("GET", "/portfolios/CESS_A"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `id="uncoded-vp"`)
	if strings.Contains(rec.Body.String(), `id="unstated-vp"`) {
		t.Error("unstated VP shown, want it hidden when zero")
	}

	// Only coded contracts remain: nothing to itemize.
	rec = serve(router, testutil.NewRequest("GET", "/portfolios/CESS_A?filtered=1&estado=SP"))
	rec.AssertStatus(t, http.StatusOK)
	if strings.Contains(rec.Body.String(), `class="chart-notes"`) {
		t.Error("chart notes shown, want none when every contract is grouped")
	}
}

func TestServeChart(t *testing.T) {
	h, _ := newTestHandler(t, testutil.PortfolioDir(t, "CESS_A"))
	router := newTestRouter(h)

	for _, chart := range []string{"state", "benefit"} {
		rec := serve(router, testutil.NewRequest("GET", "/portfolios/CESS_A/charts/"+chart+"?filtered=1&tipo_operacao=NEW"))
		rec.AssertStatus(t, http.StatusOK)
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: Content-Type = %q, want text/html", chart, ct)
		}
	}

	rec := serve(router, testutil.NewRequest("GET", "/portfolios/CESS_A/charts/pie"))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleExport(t *testing.T) {
	h, m := newTestHandler(t, testutil.PortfolioDir(t, "CESS_A"))

	form := url.Values{
		"filtered":      {"1"},
		"estado":        {"SP"},
		"tipo_operacao": {"NEW", "REFIN"},
		"tabela_modo":   {"none"},
	}
	rec := serve(newTestRouter(h), testutil.NewFormRequest("/portfolios/CESS_A/export", form))

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != xlsxexport.ContentType {
		t.Errorf("Content-Type = %q, want %q", ct, xlsxexport.ContentType)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "filtered_data_CESS_A.xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rec.Header().Get("X-Export-ID") == "" {
		t.Error("X-Export-ID header is empty")
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(xlsxexport.SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("rows = %d, want header + 2 SP contracts", len(rows))
	}

	if got := promtest.ToFloat64(m.ExportedRows); got != 2 {
		t.Errorf("exported rows metric = %v, want 2", got)
	}
}

func TestHandleExport_DeadlineExceeded(t *testing.T) {
	timeouts.Configure(timeouts.Config{Export: time.Nanosecond})
	t.Cleanup(timeouts.Reset)
	h, m := newTestHandler(t, testutil.PortfolioDir(t, "CESS_A"))

	rec := serve(newTestRouter(h), testutil.NewFormRequest("/portfolios/CESS_A/export", url.Values{"filtered": {"1"}}))

	rec.AssertStatus(t, http.StatusGatewayTimeout)
	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("timed out export still offered a download")
	}
	if got := promtest.ToFloat64(m.Exports); got != 0 {
		t.Errorf("exports = %v, want 0", got)
	}
}

func TestHandleExport_EmptyPortfolio(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteParquet(t, dir, "EMPTY", []testutil.ParquetRow{})
	h, _ := newTestHandler(t, dir)

	rec := serve(newTestRouter(h), testutil.NewFormRequest("/portfolios/EMPTY/export", url.Values{}))

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestAPIList(t *testing.T) {
	h, _ := newTestHandler(t, testutil.PortfolioDir(t, "OUT_OF_RULES", "CESS_B", "CESS_A"))

	rec := serve(newTestRouter(h), testutil.NewRequest("GET", "/api/portfolios/"))

	rec.AssertStatus(t, http.StatusOK)
	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"CESS_A", "CESS_B", "OUT_OF_RULES"}
	if strings.Join(resp.Portfolios, ",") != strings.Join(want, ",") {
		t.Errorf("portfolios = %v, want %v", resp.Portfolios, want)
	}
}

func TestAPISummary(t *testing.T) {
	h, _ := newTestHandler(t, testutil.PortfolioDir(t, "CESS_A"))
	router := newTestRouter(h)

	tests := []struct {
		name    string
		query   string
		count   int
		totalVP string
	}{
		{"defaults", "", 3, "350.00"},
		{"state SP", "?filtered=1&estado=SP&tipo_operacao=NEW&tipo_operacao=REFIN", 2, "150.00"},
		{"no operation type selected", "?filtered=1", 3, "350.00"},
		{"exclude table 1", "?filtered=1&tabela_modo=exclude&tabela=1", 2, "250.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, testutil.NewRequest("GET", "/api/portfolios/CESS_A/summary"+tt.query))
			rec.AssertStatus(t, http.StatusOK)

			var resp summaryResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Count != tt.count {
				t.Errorf("count = %d, want %d", resp.Count, tt.count)
			}
			if resp.TotalVP != tt.totalVP {
				t.Errorf("total_vp = %q, want %q", resp.TotalVP, tt.totalVP)
			}
		})
	}
}

func TestAPISummary_IncompleteRangeWarns(t *testing.T) {
	h, _ := newTestHandler(t, testutil.PortfolioDir(t, "CESS_A"))

	rec := serve(newTestRouter(h), testutil.NewRequest("GET", "/api/portfolios/CESS_A/summary?filtered=1&data_inicio=2025-02-01"))

	rec.AssertStatus(t, http.StatusOK)
	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Kind != "incomplete_range" {
		t.Errorf("warnings = %+v, want one incomplete_range", resp.Warnings)
	}
	if resp.Count != 3 {
		t.Errorf("count = %d, want 3 (date filter skipped)", resp.Count)
	}
}

func TestAPISummary_UnknownPortfolio(t *testing.T) {
	h, _ := newTestHandler(t, testutil.PortfolioDir(t, "CESS_A"))

	rec := serve(newTestRouter(h), testutil.NewRequest("GET", "/api/portfolios/NOPE/summary"))

	rec.AssertStatus(t, http.StatusNotFound)
}
