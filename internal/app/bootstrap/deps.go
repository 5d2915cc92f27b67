// internal/app/bootstrap/deps.go
package bootstrap

import (
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/store/portfolio"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/metrics"
)

// Deps holds the backend dependencies of this WAFFLE app.
//
// It is created in ConnectDB and passed to the later lifecycle hooks:
// EnsureSchema, Startup, BuildHandler, and Shutdown. There is no database;
// the backend is the read-only location holding the portfolio files.
type Deps struct {
	// Source is the portfolio storage location (directory or bucket).
	Source portfolio.Source

	// Catalog lists the portfolio identifiers of Source.
	Catalog *portfolio.Catalog

	// Loader reads and caches raw portfolio frames for the process lifetime.
	Loader *portfolio.Loader

	// Metrics holds the Prometheus collectors. Nil when metrics are disabled.
	Metrics *metrics.Metrics
}
