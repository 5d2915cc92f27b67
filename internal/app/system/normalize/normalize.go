// Package normalize coerces raw portfolio frames into typed portfolios.
//
// It is the only place where loosely-typed cell values are interpreted. The
// filter pipeline and the aggregator work on models.Contract and never look
// columns up by name.
package normalize

import (
	"strings"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
)

// Portfolio validates the required schema of a raw frame and coerces the
// typed columns. It never removes rows: the result has exactly f.Len()
// contracts, in source order.
//
// Dates that fail to parse become missing. Benefit and table codes are
// truncated toward zero; values that are not numeric fail with a
// *models.SchemaError, as do non-numeric VP or IDADE values.
func Portfolio(id string, f *models.Frame) (*models.Portfolio, error) {
	idx := make(map[string]int, len(models.RequiredColumns))
	for _, name := range models.RequiredColumns {
		i := f.ColumnIndex(name)
		if i < 0 {
			return nil, models.MissingColumn(name)
		}
		idx[name] = i
	}

	p := &models.Portfolio{
		ID:        id,
		Columns:   append([]string(nil), f.Columns...),
		Rows:      make([][]any, len(f.Rows)),
		Contracts: make([]models.Contract, len(f.Rows)),
	}

	for r, raw := range f.Rows {
		row := append([]any(nil), raw...)
		c := models.Contract{Row: r}

		dateCol := idx[models.ColDisbursementDate]
		c.DisbursedOn = Date(row[dateCol])
		if c.DisbursedOn != nil {
			row[dateCol] = *c.DisbursedOn
		} else {
			row[dateCol] = nil
		}

		var err error
		if c.BenefitCode, err = codeAt(row, idx[models.ColBenefitCode], models.ColBenefitCode, r); err != nil {
			return nil, err
		}
		if c.TableCode, err = codeAt(row, idx[models.ColTableCode], models.ColTableCode, r); err != nil {
			return nil, err
		}
		if c.PresentValue, err = numberAt(row, idx[models.ColPresentValue], models.ColPresentValue, r); err != nil {
			return nil, err
		}
		if c.Age, err = numberAt(row, idx[models.ColAge], models.ColAge, r); err != nil {
			return nil, err
		}

		c.State = Text(row[idx[models.ColState]])
		c.OperationType = Text(row[idx[models.ColOperationType]])
		c.Sex = Text(row[idx[models.ColSex]])

		p.Rows[r] = row
		p.Contracts[r] = c
	}

	return p, nil
}

// codeAt coerces a code cell in place: the normalized row carries the
// integer (or nil) so exports show codes without a decimal point.
func codeAt(row []any, col int, name string, r int) (*int64, error) {
	v, err := Code(row[col])
	if err != nil {
		return nil, &models.SchemaError{Column: name, Row: r, Value: row[col], Reason: err.Error()}
	}
	if v != nil {
		row[col] = *v
	} else {
		row[col] = nil
	}
	return v, nil
}

func numberAt(row []any, col int, name string, r int) (*float64, error) {
	v, err := Number(row[col])
	if err != nil {
		return nil, &models.SchemaError{Column: name, Row: r, Value: row[col], Reason: err.Error()}
	}
	return v, nil
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// QueryParams trims every value and drops the empty ones.
func QueryParams(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = QueryParam(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
