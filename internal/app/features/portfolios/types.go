// internal/app/features/portfolios/types.go
package portfolios

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/charts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/format"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/formutil"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
)

// option is one entry of a picker.
type option struct {
	Value    string
	Label    string
	Selected bool
}

// indicatorsVM holds the formatted scalar indicators. UnstatedVP and
// UncodedVP are empty when no VP falls outside the chart groupings.
type indicatorsVM struct {
	Count       string
	TotalVP     string
	MeanAge     string
	PercentMale string
	UnstatedVP  string
	UncodedVP   string
}

// chartFrame is one chart iframe.
type chartFrame struct {
	Title string
	URL   string
}

// hiddenField carries the current criteria into the export form.
type hiddenField struct {
	Name  string
	Value string
}

// dashboardData is the view model of the dashboard page.
type dashboardData struct {
	formutil.Base

	PortfolioID string
	Portfolios  []option
	Warnings    []models.Warning
	Empty       bool

	DateStart string
	DateEnd   string
	DateMin   string
	DateMax   string

	States         []option
	Benefits       []option
	OperationTypes []option
	TableModes     []option
	Tables         []option
	ShowTables     bool

	Indicators   indicatorsVM
	Charts       []chartFrame
	ExportAction string
	ExportFields []hiddenField
}

// emptyCatalogData is the view model shown when storage holds no portfolio.
type emptyCatalogData struct {
	formutil.Base
	Location string
}

var tableModeLabels = []struct {
	Mode  models.TableMode
	Label string
}{
	{models.TableModeNone, "No table filter"},
	{models.TableModeInclude, "Only the selected tables"},
	{models.TableModeExclude, "All but the selected tables"},
}

// newDashboardData builds the dashboard view model from a pipeline outcome.
func newDashboardData(base formutil.Base, out *outcome) dashboardData {
	c := out.Criteria
	d := dashboardData{
		Base:        base,
		PortfolioID: out.ID,
		Warnings:    out.Warnings,
		Empty:       out.Empty,
		DateStart:   format.ISODate(c.Dates.Start),
		DateEnd:     format.ISODate(c.Dates.End),
		DateMin:     format.ISODate(out.Choices.FirstDate),
		DateMax:     format.ISODate(out.Choices.LastDate),
		ShowTables:  c.TableMode != models.TableModeNone,
		Indicators: indicatorsVM{
			Count:       strconv.Itoa(out.Summary.Count),
			TotalVP:     format.BRL(out.Summary.TotalVP),
			MeanAge:     format.Age(out.Summary.MeanAge),
			PercentMale: format.Percent(out.Summary.PercentMale),
		},
	}
	d.SetErrors(out.Messages)

	for _, id := range out.IDs {
		d.Portfolios = append(d.Portfolios, option{Value: id, Label: id, Selected: id == out.ID})
	}
	for _, s := range out.Choices.States {
		d.States = append(d.States, option{Value: s, Label: s, Selected: slices.Contains(c.States, s)})
	}
	d.Benefits = codeOptions(out.Choices.BenefitCodes, c.BenefitCodes)
	d.Tables = codeOptions(out.Choices.TableCodes, c.TableCodes)
	for _, op := range models.OperationTypes() {
		d.OperationTypes = append(d.OperationTypes, option{Value: op, Label: op, Selected: slices.Contains(c.OperationTypes, op)})
	}
	for _, m := range tableModeLabels {
		d.TableModes = append(d.TableModes, option{Value: string(m.Mode), Label: m.Label, Selected: m.Mode == c.TableMode})
	}

	if out.Empty {
		return d
	}

	if !out.Summary.UnstatedVP.IsZero() {
		d.Indicators.UnstatedVP = format.BRL(out.Summary.UnstatedVP)
	}
	if !out.Summary.UncodedVP.IsZero() {
		d.Indicators.UncodedVP = format.BRL(out.Summary.UncodedVP)
	}

	vals := EncodeCriteria(c)
	query := vals.Encode()
	for _, k := range charts.Kinds() {
		d.Charts = append(d.Charts, chartFrame{
			Title: k.Title(),
			URL:   chartURL(out.ID, k, query),
		})
	}
	d.ExportAction = "/portfolios/" + url.PathEscape(out.ID) + "/export"
	d.ExportFields = hiddenFields(vals)
	return d
}

func codeOptions(all, selected []int64) []option {
	opts := make([]option, 0, len(all))
	for _, n := range all {
		s := strconv.FormatInt(n, 10)
		opts = append(opts, option{Value: s, Label: s, Selected: slices.Contains(selected, n)})
	}
	return opts
}

func chartURL(id string, k charts.Kind, query string) string {
	return "/portfolios/" + url.PathEscape(id) + "/charts/" + string(k) + "?" + query
}

// hiddenFields flattens vals in a stable order.
func hiddenFields(vals url.Values) []hiddenField {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var fields []hiddenField
	for _, k := range keys {
		for _, v := range vals[k] {
			fields = append(fields, hiddenField{Name: k, Value: v})
		}
	}
	return fields
}
