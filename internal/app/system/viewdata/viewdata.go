// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/format"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/htmlsanitize"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// Defaults used until Init is called.
const (
	DefaultSiteName = "Dashboard Cessionários"
	DefaultCaption  = "Cessão de Crédito INSS"
)

// Settings are the site-wide values shown on every page.
type Settings struct {
	SiteName   string
	Caption    string
	FooterHTML string // operator-supplied; sanitized before display

	// Location is the zone in which "today" is taken for the reference
	// date. Nil means UTC.
	Location *time.Location
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{BaseVM: viewdata.New(r)}
//	data.Title = "Page Title"
type BaseVM struct {
	// Site settings (from configuration)
	SiteName   string
	Caption    string
	FooterHTML template.HTML

	// Page context
	Title         string
	CurrentPath   string
	ReferenceDate string // today, dd/mm/yyyy

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

var (
	mu       sync.RWMutex
	settings = Settings{SiteName: DefaultSiteName, Caption: DefaultCaption}
	footer   template.HTML
	now      = time.Now
)

// Init sets the site settings used by New.
// Call this once at startup from bootstrap.
func Init(s Settings) {
	if s.SiteName == "" {
		s.SiteName = DefaultSiteName
	}
	mu.Lock()
	defer mu.Unlock()
	settings = s
	footer = htmlsanitize.PrepareForDisplay(s.FooterHTML)
}

// Current returns the active site settings.
func Current() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return settings
}

// New creates a BaseVM for the request.
func New(r *http.Request) BaseVM {
	mu.RLock()
	s, f := settings, footer
	mu.RUnlock()

	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	today := now().In(loc)
	return BaseVM{
		SiteName:      s.SiteName,
		Caption:       s.Caption,
		FooterHTML:    f,
		Title:         s.SiteName,
		CurrentPath:   httpnav.CurrentPath(r),
		ReferenceDate: format.Date(&today),
		CSRFToken:     csrf.Token(r),
	}
}
