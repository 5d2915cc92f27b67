// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/features/errors"
	healthfeature "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/features/health"
	portfoliosfeature "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/features/portfolios"
	appresources "github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/resources"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/apicors"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, storage setup and the Startup hook
// have completed. Routes:
//   - /portfolios: dashboard pages, chart frames and the xlsx export
//   - /api/portfolios: read-only JSON (no CSRF, API CORS)
//   - /health, /ready, /readyz, /livez: probes
//   - /metrics: Prometheus, when enabled
//   - /assets: embedded CSS and JS
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	portfoliosHandler := portfoliosfeature.NewHandler(
		deps.Catalog,
		deps.Loader,
		deps.Source.Location(),
		appCfg.ChartColor,
		deps.Metrics,
		errLog,
		logger,
	)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Panic recovery: render the 500 page for handler panics.
	r.Use(errorsHandler.Recover(errLog))

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(appCfg.RequestTimeout))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// ─────────────────────────────────────────────────────────────────────────────
	// JSON API (no CSRF: read-only, no cookies)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Route("/api", func(api chi.Router) {
		api.Use(apicors.Middleware(appCfg.APICORSOrigins...))
		api.Mount("/portfolios", portfoliosfeature.APIRoutes(portfoliosHandler))
	})

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Source, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// ─────────────────────────────────────────────────────────────────────────────
	// Web UI (CSRF-protected; the export form is the only POST)
	// ─────────────────────────────────────────────────────────────────────────────

	secure := coreCfg.Env == "prod"
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("cessionarios_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	r.Group(func(ui chi.Router) {
		ui.Use(csrfProtect)

		ui.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/portfolios", http.StatusSeeOther)
		})
		ui.Mount("/portfolios", portfoliosfeature.Routes(portfoliosHandler))
	})

	// 404 catch-all for unmatched routes
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
