package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/metrics"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/timeouts"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader reads portfolio tables and caches them by identifier.
//
// Entries are never invalidated: portfolio files are static for the life of
// the process. Only successful reads are cached, so a failed selection can
// be retried. Concurrent first reads of one identifier share a single
// storage read, which a caller giving up does not cancel. Cached frames are shared and must not be modified.
type Loader struct {
	src     Source
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[string]*models.Frame
	group singleflight.Group
}

// NewLoader returns an empty loader over src. m may be nil.
func NewLoader(src Source, m *metrics.Metrics, logger *zap.Logger) *Loader {
	return &Loader{
		src:     src,
		metrics: m,
		logger:  logger,
		cache:   make(map[string]*models.Frame),
	}
}

// Load returns the table of portfolio id.
//
// Unknown or reserved identifiers fail with *models.NotFoundError (kind
// portfolio); a missing storage location with kind storage. A table with
// zero rows is a valid result.
func (l *Loader) Load(ctx context.Context, id string) (*models.Frame, error) {
	if id == SummaryID || validName(id+FileExt) != nil {
		return nil, &models.NotFoundError{Kind: models.NotFoundPortfolio, Name: id}
	}

	l.mu.RLock()
	f, ok := l.cache[id]
	l.mu.RUnlock()
	if ok {
		l.metrics.CacheHit()
		return f, nil
	}

	// The shared read outlives any one caller: it runs under the Load
	// deadline only, and each caller stops waiting when its own ctx ends.
	ch := l.group.DoChan(id, func() (any, error) {
		l.mu.RLock()
		f, ok := l.cache[id]
		l.mu.RUnlock()
		if ok {
			return f, nil
		}

		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Load())
		defer cancel()
		f, err := l.read(readCtx, id)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[id] = f
		l.mu.Unlock()
		return f, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Frame), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) read(ctx context.Context, id string) (*models.Frame, error) {
	start := time.Now()

	data, err := l.src.ReadFile(ctx, id+FileExt)
	if err != nil {
		var nf *models.NotFoundError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			l.metrics.ObserveLoad(metrics.ResultNotFound, 0)
			return nil, &models.NotFoundError{Kind: models.NotFoundPortfolio, Name: id}
		case errors.As(err, &nf):
			l.metrics.ObserveLoad(metrics.ResultNotFound, 0)
			return nil, err
		}
		l.metrics.ObserveLoad(metrics.ResultError, 0)
		return nil, fmt.Errorf("load portfolio %s: %w", id, err)
	}

	f, err := DecodeParquet(data)
	if err != nil {
		l.metrics.ObserveLoad(metrics.ResultError, 0)
		var se *models.SchemaError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, fmt.Errorf("decode portfolio %s: %w", id, err)
	}

	elapsed := time.Since(start)
	l.metrics.ObserveLoad(metrics.ResultOK, elapsed)
	l.logger.Info("portfolio loaded",
		zap.String("portfolio", id),
		zap.Int("rows", f.Len()),
		zap.Int("columns", len(f.Columns)),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", elapsed),
	)
	return f, nil
}

// Cached reports whether id is in the cache.
func (l *Loader) Cached(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[id]
	return ok
}
