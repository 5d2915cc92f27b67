// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/resources"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/tasks"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after the storage backend is built, but before the HTTP
// handler is built and requests are served.
//
// It registers the shared templates, installs the page settings, logs the
// catalog and, when enabled, starts warming the loader cache.
//
// Returning a non-nil error will abort startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	loc, err := time.LoadLocation(appCfg.TimeZone)
	if err != nil {
		logger.Error("failed to load time zone", zap.String("timezone", appCfg.TimeZone), zap.Error(err))
		return err
	}
	viewdata.Init(viewdata.Settings{
		SiteName:   appCfg.SiteName,
		Caption:    appCfg.SiteCaption,
		FooterHTML: appCfg.FooterHTML,
		Location:   loc,
	})

	listCtx, cancel := context.WithTimeout(ctx, timeouts.List())
	ids, err := deps.Catalog.List(listCtx)
	cancel()
	if err != nil {
		// Not fatal: the dashboard reports storage problems per request.
		logger.Warn("could not list portfolios at startup", zap.Error(err))
	} else {
		logger.Info("portfolio catalog", zap.Int("count", len(ids)), zap.Strings("portfolios", ids))
	}

	if appCfg.CacheWarmEnabled {
		startTaskRunner(deps, appCfg.CacheWarmEvery, logger)
	}

	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(deps Deps, every time.Duration, logger *zap.Logger) {
	taskRunner = tasks.New(logger)
	taskRunner.Register(tasks.CacheWarmJob(deps.Catalog, deps.Loader, every, logger))
	taskRunner.Start()
}
