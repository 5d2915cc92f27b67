// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/store/portfolio"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/metrics"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the portfolio storage backend.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. Nothing is read here: the source, the catalog and the loader cache
// are only constructed.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	timeouts.Configure(timeouts.Config{
		Check:  appCfg.CheckTimeout,
		List:   appCfg.ListTimeout,
		Load:   appCfg.LoadTimeout,
		Export: appCfg.ExportTimeout,
	})

	src, err := newSource(ctx, appCfg, logger)
	if err != nil {
		return Deps{}, err
	}

	var m *metrics.Metrics
	if appCfg.MetricsEnabled {
		m = metrics.New()
	}

	return Deps{
		Source:  src,
		Catalog: portfolio.NewCatalog(src),
		Loader:  portfolio.NewLoader(src, m, logger),
		Metrics: m,
	}, nil
}

func newSource(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (portfolio.Source, error) {
	switch appCfg.PortfolioStorage {
	case StorageS3:
		src, err := portfolio.NewS3Source(ctx, portfolio.S3Config{
			Region: appCfg.PortfolioS3Region,
			Bucket: appCfg.PortfolioS3Bucket,
			Prefix: appCfg.PortfolioS3Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 portfolio storage: %w", err)
		}
		logger.Info("using S3 portfolio storage",
			zap.String("bucket", appCfg.PortfolioS3Bucket),
			zap.String("prefix", appCfg.PortfolioS3Prefix),
		)
		return src, nil
	case StorageLocal, "":
		logger.Info("using local portfolio storage", zap.String("path", appCfg.PortfolioDir))
		return portfolio.NewLocalSource(appCfg.PortfolioDir), nil
	default:
		return nil, fmt.Errorf("unknown portfolio storage: %s", appCfg.PortfolioStorage)
	}
}

// EnsureSchema checks that the storage location exists.
//
// A missing location does not abort startup: the dashboard shows a blocking
// message until the location appears, so this only logs.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	checkCtx, cancel := context.WithTimeout(ctx, timeouts.Check())
	defer cancel()

	var nf *models.NotFoundError
	switch err := deps.Source.Check(checkCtx); {
	case err == nil:
		logger.Info("portfolio storage found", zap.String("location", deps.Source.Location()))
	case errors.As(err, &nf):
		logger.Warn("portfolio storage not found; the dashboard will report it until it exists",
			zap.String("location", deps.Source.Location()))
	default:
		logger.Warn("portfolio storage check failed", zap.String("location", deps.Source.Location()), zap.Error(err))
	}
	return nil
}
