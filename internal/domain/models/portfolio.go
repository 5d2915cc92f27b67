// internal/domain/models/portfolio.go
package models

import "time"

// Column names referenced by the filter pipeline and the aggregator.
const (
	ColDisbursementDate = "DATA DESEMBOLSO"
	ColState            = "ESTADO"
	ColBenefitCode      = "CD BENEFICIO"
	ColTableCode        = "TABELA"
	ColOperationType    = "tipo_operacao"
	ColPresentValue     = "VP"
	ColAge              = "IDADE"
	ColSex              = "SEXO"
)

// RequiredColumns lists every column a portfolio must carry before it can be
// filtered or aggregated. Absence of any of them is a SchemaError.
var RequiredColumns = []string{
	ColDisbursementDate,
	ColState,
	ColBenefitCode,
	ColTableCode,
	ColOperationType,
	ColPresentValue,
	ColAge,
	ColSex,
}

// Known operation types. The values are matched verbatim against
// tipo_operacao. Files produced by the older dashboard pipeline label new
// operations "NOVO", not "NEW"; such rows match neither default and are
// filtered out until the files are relabeled.
const (
	OperationNew   = "NEW"
	OperationRefin = "REFIN"
)

// OperationTypes returns the known operation types, in picker order.
func OperationTypes() []string {
	return []string{OperationNew, OperationRefin}
}

// SexMale is the SEXO value counted by the percent-male indicator.
const SexMale = "M"

// Frame is a raw portfolio table as read from storage.
//
// Cell values are one of: nil (missing), string, int64, float64, bool or
// time.Time. A Frame is immutable once loaded; it is shared between requests
// through the loader cache.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Contract is one normalized portfolio row with typed fields.
// Pointer fields are nil when the source value is missing.
type Contract struct {
	Row int // index into Portfolio.Rows

	DisbursedOn   *time.Time
	State         *string
	BenefitCode   *int64
	TableCode     *int64
	OperationType *string
	PresentValue  *float64
	Age           *float64
	Sex           *string
}

// Portfolio is a normalized portfolio table.
//
// Rows keeps every source column in source order (with the coerced columns
// replaced by their normalized values) so the filtered view can be exported
// unchanged. Contracts holds the typed shape of the same rows, one per row.
type Portfolio struct {
	ID        string
	Columns   []string
	Rows      [][]any
	Contracts []Contract
}

// Len returns the number of contracts.
func (p *Portfolio) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Contracts)
}

// HasColumn reports whether the portfolio carries the named column.
func (p *Portfolio) HasColumn(name string) bool {
	for _, c := range p.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// View is the subset of a portfolio that satisfies a Criteria snapshot.
// It never copies or mutates the underlying rows.
type View struct {
	Portfolio *Portfolio
	Contracts []Contract
}

// Len returns the number of contracts in the view.
func (v View) Len() int { return len(v.Contracts) }

// Columns returns the view's column order, which is the portfolio's.
func (v View) Columns() []string {
	if v.Portfolio == nil {
		return nil
	}
	return v.Portfolio.Columns
}

// Rows returns the normalized source rows of the view, in view order.
func (v View) Rows() [][]any {
	rows := make([][]any, 0, len(v.Contracts))
	for _, c := range v.Contracts {
		rows = append(rows, v.Portfolio.Rows[c.Row])
	}
	return rows
}
