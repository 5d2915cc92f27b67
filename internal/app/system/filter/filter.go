// Package filter applies a Criteria snapshot to a normalized portfolio.
//
// Every active dimension contributes one predicate; a row is kept when all
// predicates accept it. Within a dimension, selected values are alternatives.
// Predicates only read the source contracts, so their order never matters.
package filter

import (
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
)

// Result is the filtered view plus any warnings raised while filtering.
type Result struct {
	View     models.View
	Warnings []models.Warning
}

type predicate func(c *models.Contract) bool

// Apply returns the contracts of p that satisfy c.
//
// An incomplete date range disables the date dimension and adds an
// IncompleteRange warning; all other dimensions still apply. A portfolio
// without a required column fails with *models.SchemaError and nothing is
// filtered.
func Apply(p *models.Portfolio, c models.Criteria) (Result, error) {
	for _, name := range models.RequiredColumns {
		if !p.HasColumn(name) {
			return Result{}, models.MissingColumn(name)
		}
	}

	var res Result
	preds := make([]predicate, 0, 5)

	if c.Dates.Complete() {
		preds = append(preds, dateBetween(*c.Dates.Start, *c.Dates.End))
	} else {
		res.Warnings = append(res.Warnings, models.IncompleteRangeWarning())
	}
	if len(c.States) > 0 {
		preds = append(preds, stringIn(c.States, func(k *models.Contract) *string { return k.State }))
	}
	if len(c.BenefitCodes) > 0 {
		preds = append(preds, codeIn(c.BenefitCodes, func(k *models.Contract) *int64 { return k.BenefitCode }))
	}
	if len(c.OperationTypes) > 0 {
		preds = append(preds, stringIn(c.OperationTypes, func(k *models.Contract) *string { return k.OperationType }))
	}
	if len(c.TableCodes) > 0 {
		tableCode := func(k *models.Contract) *int64 { return k.TableCode }
		switch c.TableMode {
		case models.TableModeInclude:
			preds = append(preds, codeIn(c.TableCodes, tableCode))
		case models.TableModeExclude:
			preds = append(preds, not(codeIn(c.TableCodes, tableCode)))
		}
	}

	kept := make([]models.Contract, 0, len(p.Contracts))
	for i := range p.Contracts {
		if all(preds, &p.Contracts[i]) {
			kept = append(kept, p.Contracts[i])
		}
	}

	res.View = models.View{Portfolio: p, Contracts: kept}
	return res, nil
}

func all(preds []predicate, c *models.Contract) bool {
	for _, ok := range preds {
		if !ok(c) {
			return false
		}
	}
	return true
}

// dateBetween accepts rows whose disbursement day lies in [start, end].
// Missing dates never match.
func dateBetween(start, end time.Time) predicate {
	from, to := day(start), day(end)
	return func(c *models.Contract) bool {
		if c.DisbursedOn == nil {
			return false
		}
		d := day(*c.DisbursedOn)
		return !d.Before(from) && !d.After(to)
	}
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// stringIn accepts rows whose field is one of values. Null never matches.
func stringIn(values []string, field func(*models.Contract) *string) predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(c *models.Contract) bool {
		v := field(c)
		if v == nil {
			return false
		}
		_, ok := set[*v]
		return ok
	}
}

// codeIn accepts rows whose code is one of codes. Null never matches.
func codeIn(codes []int64, field func(*models.Contract) *int64) predicate {
	set := make(map[int64]struct{}, len(codes))
	for _, v := range codes {
		set[v] = struct{}{}
	}
	return func(c *models.Contract) bool {
		v := field(c)
		if v == nil {
			return false
		}
		_, ok := set[*v]
		return ok
	}
}

func not(p predicate) predicate {
	return func(c *models.Contract) bool { return !p(c) }
}
