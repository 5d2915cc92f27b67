package testutil

import (
	"testing"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/normalize"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
)

// Row is a raw portfolio row in RequiredColumns order. Any field may be nil.
type Row struct {
	Date    any
	State   any
	Benefit any
	Table   any
	Op      any
	VP      any
	Age     any
	Sex     any
}

// Frame builds a raw frame with exactly the required columns.
func Frame(rows ...Row) *models.Frame {
	f := &models.Frame{Columns: append([]string(nil), models.RequiredColumns...)}
	for _, r := range rows {
		f.Rows = append(f.Rows, []any{r.Date, r.State, r.Benefit, r.Table, r.Op, r.VP, r.Age, r.Sex})
	}
	return f
}

// Portfolio normalizes rows into a portfolio, failing the test on error.
func Portfolio(t testing.TB, id string, rows ...Row) *models.Portfolio {
	t.Helper()
	p, err := normalize.Portfolio(id, Frame(rows...))
	if err != nil {
		t.Fatalf("normalize %s: %v", id, err)
	}
	return p
}

// ScenarioRows is the three-contract reference portfolio:
// SP/100/2025-01-10/code 1, SP/50/2025-02-01/code 2, RJ/200/2025-03-01/no code.
func ScenarioRows() []Row {
	return []Row{
		{Date: "10/01/2025", State: "SP", Benefit: 1.0, Table: 1.0, Op: models.OperationNew, VP: 100.0, Age: 60.0, Sex: "M"},
		{Date: "01/02/2025", State: "SP", Benefit: 2.0, Table: 2.0, Op: models.OperationRefin, VP: 50.0, Age: 70.0, Sex: "F"},
		{Date: "01/03/2025", State: "RJ", Benefit: nil, Table: nil, Op: models.OperationNew, VP: 200.0, Age: 65.0, Sex: "M"},
	}
}

// Day returns a pointer to midnight UTC of the given date.
func Day(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
