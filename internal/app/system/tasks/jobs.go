// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"go.uber.org/zap"
)

// Catalog lists portfolio identifiers.
type Catalog interface {
	List(ctx context.Context) ([]string, error)
}

// Loader reads portfolios into its cache.
type Loader interface {
	Cached(id string) bool
	Load(ctx context.Context, id string) (*models.Frame, error)
}

// CacheWarmJob lists the catalog and loads every portfolio that is not yet
// cached, so the first visitor of a portfolio does not pay for the read.
// A portfolio that fails to load is logged and skipped; it is retried on
// the next run since failed loads are never cached.
func CacheWarmJob(catalog Catalog, loader Loader, interval time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "portfolio-cache-warm",
		Interval: interval,
		Run: func(ctx context.Context) error {
			listCtx, cancel := context.WithTimeout(ctx, timeouts.List())
			ids, err := catalog.List(listCtx)
			cancel()
			if err != nil {
				return err
			}

			warmed, failed := 0, 0
			for _, id := range ids {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if loader.Cached(id) {
					continue
				}
				loadCtx, cancel := context.WithTimeout(ctx, timeouts.Load())
				_, err := loader.Load(loadCtx, id)
				cancel()
				if err != nil {
					failed++
					logger.Warn("portfolio cache warm failed", zap.String("portfolio", id), zap.Error(err))
					continue
				}
				warmed++
			}

			if warmed > 0 || failed > 0 {
				logger.Info("portfolio cache warmed",
					zap.Int("portfolios", len(ids)),
					zap.Int("loaded", warmed),
					zap.Int("failed", failed))
			}
			return nil
		},
	}
}
