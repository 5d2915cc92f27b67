// Package charts builds the dashboard bar charts with go-echarts.
//
// Each chart renders as a standalone HTML page; the dashboard embeds them in
// iframes so the chart scripts never mix with the page's own markup.
package charts

import (
	"fmt"
	"io"
	"strconv"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/aggregate"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Kind selects one of the dashboard charts.
type Kind string

const (
	ByState   Kind = "state"
	ByBenefit Kind = "benefit"
)

// Kinds lists the charts in page order.
func Kinds() []Kind { return []Kind{ByState, ByBenefit} }

// Title returns the chart heading.
func (k Kind) Title() string {
	switch k {
	case ByState:
		return "VP by state"
	case ByBenefit:
		return "VP by benefit code"
	}
	return string(k)
}

// ParseKind validates a chart name taken from a URL.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case ByState:
		return ByState, true
	case ByBenefit:
		return ByBenefit, true
	}
	return "", false
}

// DefaultColor is the bar color used when none is configured.
const DefaultColor = "#1f77b4"

// Bar builds the bar chart of kind k from s. Only keys present in the
// summary become bars; rows without a state or benefit code are not plotted.
func Bar(k Kind, s aggregate.Summary, color string) (*charts.Bar, error) {
	var (
		labels []string
		values []opts.BarData
	)
	switch k {
	case ByState:
		for _, g := range s.ByState {
			labels = append(labels, g.State)
			values = append(values, opts.BarData{Value: g.VP.Round(2).InexactFloat64()})
		}
	case ByBenefit:
		for _, g := range s.ByBenefit {
			labels = append(labels, strconv.FormatInt(g.Code, 10))
			values = append(values, opts.BarData{Value: g.VP.Round(2).InexactFloat64()})
		}
	default:
		return nil, fmt.Errorf("unknown chart %q", k)
	}

	if color == "" {
		color = DefaultColor
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: k.Title(),
			Width:     "100%",
			Height:    "360px",
		}),
		charts.WithTitleOpts(opts.Title{Title: k.Title()}),
	)
	bar.SetXAxis(labels).
		AddSeries("VP", values, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	return bar, nil
}

// Render writes the chart page of kind k to w.
func Render(w io.Writer, k Kind, s aggregate.Summary, color string) error {
	bar, err := Bar(k, s, color)
	if err != nil {
		return err
	}
	return bar.Render(w)
}
