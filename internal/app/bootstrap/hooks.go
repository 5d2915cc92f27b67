// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through storage setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
var Hooks = app.Hooks[AppConfig, Deps]{
	Name:           "cessionarios", // used only for logging/diagnostics
	LoadConfig:     LoadConfig,     // load core + app config
	ValidateConfig: ValidateConfig, // validate storage, color and time zone settings
	ConnectDB:      ConnectDB,      // build the portfolio source, loader cache and metrics
	EnsureSchema:   EnsureSchema,   // check that the storage location exists
	Startup:        Startup,        // shared templates, page settings, cache warming
	BuildHandler:   BuildHandler,   // build the HTTP router + middleware stack
	Shutdown:       Shutdown,       // stop background tasks
}
