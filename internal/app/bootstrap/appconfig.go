// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig holds everything specific to the dashboard: where the portfolio
// files live, how the pages are captioned, and operational knobs.
type AppConfig struct {
	// Portfolio storage
	PortfolioStorage  string // "local" or "s3"
	PortfolioDir      string // directory of the parquet files (local)
	PortfolioS3Region string // AWS region (s3)
	PortfolioS3Bucket string // bucket holding the parquet files (s3)
	PortfolioS3Prefix string // key prefix inside the bucket (s3), e.g. "parquet/"

	// Page settings
	SiteName    string // header title
	SiteCaption string // header caption
	FooterHTML  string // footer HTML, sanitized before display
	TimeZone    string // IANA zone for the reference date (e.g. America/Sao_Paulo)
	ChartColor  string // #rrggbb bar color

	// CSRF protection for the export form
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// JSON API
	APICORSOrigins []string // allowed origins for /api; empty means any

	// Operations
	MetricsEnabled   bool          // expose Prometheus metrics at /metrics
	CacheWarmEnabled bool          // load every portfolio in the background at startup
	CacheWarmEvery   time.Duration // how often to look for new portfolios to warm
	RequestTimeout   time.Duration // overall request deadline

	// Storage operation timeouts
	CheckTimeout  time.Duration
	ListTimeout   time.Duration
	LoadTimeout   time.Duration
	ExportTimeout time.Duration
}
