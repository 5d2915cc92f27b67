// internal/app/features/portfolios/criteria.go
package portfolios

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/filter"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/format"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/normalize"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
)

// Form field names shared by the filter form, chart URLs and the export form.
const (
	fieldStart     = "data_inicio"
	fieldEnd       = "data_fim"
	fieldState     = "estado"
	fieldBenefit   = "beneficio"
	fieldOperation = "tipo_operacao"
	fieldTableMode = "tabela_modo"
	fieldTable     = "tabela"

	// fieldFiltered marks a submitted filter form. Without it the page shows
	// the defaults, which is how an explicitly empty operation type
	// selection is told apart from a first visit.
	fieldFiltered = "filtered"
)

// ParseCriteria builds a Criteria snapshot from submitted form values.
//
// When the form was never submitted the defaults apply: the full date span
// of the portfolio and both operation types. Values that cannot be parsed
// are dropped and described in the returned messages.
func ParseCriteria(vals url.Values, ch filter.Choices) (models.Criteria, []string) {
	if vals.Get(fieldFiltered) == "" {
		return models.DefaultCriteria(ch.DateRange()), nil
	}

	var msgs []string
	c := models.Criteria{
		TableMode: models.ParseTableMode(normalize.QueryParam(vals.Get(fieldTableMode))),
		States:    normalize.QueryParams(vals[fieldState]),
	}

	c.Dates.Start, msgs = parseDate(vals.Get(fieldStart), "start date", msgs)
	c.Dates.End, msgs = parseDate(vals.Get(fieldEnd), "end date", msgs)

	c.BenefitCodes, msgs = parseCodes(vals[fieldBenefit], "benefit code", msgs)
	c.TableCodes, msgs = parseCodes(vals[fieldTable], "table code", msgs)

	known := models.OperationTypes()
	for _, op := range normalize.QueryParams(vals[fieldOperation]) {
		if !slices.Contains(known, op) {
			msgs = append(msgs, fmt.Sprintf("Ignored unknown operation type %q.", op))
			continue
		}
		if !slices.Contains(c.OperationTypes, op) {
			c.OperationTypes = append(c.OperationTypes, op)
		}
	}

	return c, msgs
}

// parseDate accepts the ISO value of a date input as well as dd/mm/yyyy.
// An empty value is not an error: it leaves the range incomplete.
func parseDate(s, label string, msgs []string) (*time.Time, []string) {
	s = normalize.QueryParam(s)
	if s == "" {
		return nil, msgs
	}
	d := normalize.Date(s)
	if d == nil {
		return nil, append(msgs, fmt.Sprintf("Ignored invalid %s %q.", label, s))
	}
	return d, msgs
}

func parseCodes(values []string, label string, msgs []string) ([]int64, []string) {
	var codes []int64
	for _, v := range normalize.QueryParams(values) {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("Ignored invalid %s %q.", label, v))
			continue
		}
		if !slices.Contains(codes, n) {
			codes = append(codes, n)
		}
	}
	return codes, msgs
}

// EncodeCriteria is the inverse of ParseCriteria. The result always carries
// the submitted marker so the receiver sees exactly c.
func EncodeCriteria(c models.Criteria) url.Values {
	vals := url.Values{}
	vals.Set(fieldFiltered, "1")
	if c.Dates.Start != nil {
		vals.Set(fieldStart, format.ISODate(c.Dates.Start))
	}
	if c.Dates.End != nil {
		vals.Set(fieldEnd, format.ISODate(c.Dates.End))
	}
	for _, s := range c.States {
		vals.Add(fieldState, s)
	}
	for _, n := range c.BenefitCodes {
		vals.Add(fieldBenefit, strconv.FormatInt(n, 10))
	}
	for _, op := range c.OperationTypes {
		vals.Add(fieldOperation, op)
	}
	mode := c.TableMode
	if mode == "" {
		mode = models.TableModeNone
	}
	vals.Set(fieldTableMode, string(mode))
	for _, n := range c.TableCodes {
		vals.Add(fieldTable, strconv.FormatInt(n, 10))
	}
	return vals
}
