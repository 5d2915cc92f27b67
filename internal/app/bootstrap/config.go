// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/charts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/inputval"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "CESSIONARIOS"

// Portfolio storage backends.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: portfolio_dir, chart_color, etc.
//   - Environment variables: CESSIONARIOS_PORTFOLIO_DIR, CESSIONARIOS_CHART_COLOR, etc.
//   - Command-line flags: --portfolio_dir, --chart_color, etc.
var appConfigKeys = []config.AppKey{
	// Portfolio storage
	{Name: "portfolio_storage", Default: StorageLocal, Desc: "Portfolio storage backend: 'local' or 's3'"},
	{Name: "portfolio_dir", Default: "./parquet", Desc: "Directory holding the portfolio parquet files"},
	{Name: "portfolio_s3_region", Default: "", Desc: "AWS region of the portfolio bucket"},
	{Name: "portfolio_s3_bucket", Default: "", Desc: "S3 bucket holding the portfolio parquet files"},
	{Name: "portfolio_s3_prefix", Default: "", Desc: "S3 key prefix of the portfolio files (e.g., 'parquet/')"},

	// Page settings
	{Name: "site_name", Default: viewdata.DefaultSiteName, Desc: "Dashboard title"},
	{Name: "site_caption", Default: viewdata.DefaultCaption, Desc: "Caption shown under the title"},
	{Name: "footer_html", Default: "", Desc: "Footer HTML (sanitized)"},
	{Name: "timezone", Default: "America/Sao_Paulo", Desc: "Time zone of the reference date"},
	{Name: "chart_color", Default: charts.DefaultColor, Desc: "Bar chart color (#rrggbb)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	{Name: "api_cors_origins", Default: "", Desc: "Comma-separated origins allowed to call /api (blank allows any)"},

	// Operations
	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},
	{Name: "cache_warm_enabled", Default: false, Desc: "Load all portfolios in the background at startup"},
	{Name: "cache_warm_interval", Default: "10m", Desc: "How often to warm newly added portfolios"},
	{Name: "request_timeout", Default: "90s", Desc: "Overall request timeout"},

	// Storage operation timeouts
	{Name: "check_timeout", Default: "2s", Desc: "Storage health check timeout"},
	{Name: "list_timeout", Default: "5s", Desc: "Catalog listing timeout"},
	{Name: "load_timeout", Default: "30s", Desc: "Portfolio load timeout"},
	{Name: "export_timeout", Default: "60s", Desc: "xlsx export timeout"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CESSIONARIOS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		PortfolioStorage:  strings.ToLower(strings.TrimSpace(appValues.String("portfolio_storage"))),
		PortfolioDir:      appValues.String("portfolio_dir"),
		PortfolioS3Region: appValues.String("portfolio_s3_region"),
		PortfolioS3Bucket: appValues.String("portfolio_s3_bucket"),
		PortfolioS3Prefix: appValues.String("portfolio_s3_prefix"),

		SiteName:    appValues.String("site_name"),
		SiteCaption: appValues.String("site_caption"),
		FooterHTML:  appValues.String("footer_html"),
		TimeZone:    appValues.String("timezone"),
		ChartColor:  appValues.String("chart_color"),

		CSRFKey: appValues.String("csrf_key"),

		APICORSOrigins: splitList(appValues.String("api_cors_origins")),

		MetricsEnabled:   appValues.Bool("metrics_enabled"),
		CacheWarmEnabled: appValues.Bool("cache_warm_enabled"),
		CacheWarmEvery:   appValues.Duration("cache_warm_interval", 10*time.Minute),
		RequestTimeout:   appValues.Duration("request_timeout", 90*time.Second),

		CheckTimeout:  appValues.Duration("check_timeout", timeouts.DefaultCheck),
		ListTimeout:   appValues.Duration("list_timeout", timeouts.DefaultList),
		LoadTimeout:   appValues.Duration("load_timeout", timeouts.DefaultLoad),
		ExportTimeout: appValues.Duration("export_timeout", timeouts.DefaultExport),
	}

	return coreCfg, appCfg, nil
}

// settingsInput carries the operator-facing settings that have a fixed shape.
type settingsInput struct {
	Storage    string `validate:"required,oneof=local s3" label:"Portfolio storage"`
	ChartColor string `validate:"required,hexcolor" label:"Chart color"`
	TimeZone   string `validate:"required,timezone" label:"Time zone"`
	S3Prefix   string `validate:"keyprefix" label:"S3 prefix"`
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	res := inputval.Validate(settingsInput{
		Storage:    appCfg.PortfolioStorage,
		ChartColor: appCfg.ChartColor,
		TimeZone:   appCfg.TimeZone,
		S3Prefix:   appCfg.PortfolioS3Prefix,
	})
	if res.HasErrors() {
		logger.Error("invalid configuration", zap.String("errors", res.All()))
		return fmt.Errorf("invalid configuration: %s", res.All())
	}

	switch appCfg.PortfolioStorage {
	case StorageS3:
		if appCfg.PortfolioS3Bucket == "" {
			return errors.New("portfolio_s3_bucket is required when portfolio_storage is s3")
		}
	case StorageLocal:
		if strings.TrimSpace(appCfg.PortfolioDir) == "" {
			return errors.New("portfolio_dir is required when portfolio_storage is local")
		}
	}

	if coreCfg != nil && coreCfg.Env == "prod" && strings.HasPrefix(appCfg.CSRFKey, "dev-only") {
		logger.Warn("csrf_key is the development default; set a strong key in production")
	}

	return nil
}

// splitList splits a comma-separated value and drops blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
