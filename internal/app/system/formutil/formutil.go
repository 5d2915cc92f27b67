// Package formutil provides helpers for re-rendering a form page with the
// user's selections and a message about values that were not accepted.
//
// Example usage:
//
//	type dashboardData struct {
//		formutil.Base
//		States []option
//	}
//
//	data := dashboardData{Base: formutil.NewBase(r, "CESS_A")}
//	data.SetError("Ignored invalid benefit code: B41.")
//	templates.Render(w, r, "portfolios/dashboard", data)
package formutil

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
// It embeds viewdata.BaseVM for site settings and adds Error for rejected input.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// NewBase creates a fully populated Base for a form page.
func NewBase(r *http.Request, title string) Base {
	b := Base{BaseVM: viewdata.New(r)}
	if title != "" {
		b.Title = title
	}
	return b
}

// SetError sets the error message, escaping it for HTML.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// SetErrors joins several messages into one, one per line.
func (b *Base) SetErrors(msgs []string) {
	if len(msgs) == 0 {
		return
	}
	escaped := make([]string, len(msgs))
	for i, m := range msgs {
		escaped[i] = template.HTMLEscapeString(m)
	}
	b.Error = template.HTML(strings.Join(escaped, "<br>"))
}
