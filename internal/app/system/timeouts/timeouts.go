// Package timeouts provides centralized timeout values for handler operations.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultCheck  = 2 * time.Second
	DefaultList   = 5 * time.Second
	DefaultLoad   = 30 * time.Second
	DefaultExport = 60 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	check  = DefaultCheck
	list   = DefaultList
	load   = DefaultLoad
	export = DefaultExport
)

// Check returns the timeout for storage health checks.
func Check() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return check
}

// List returns the timeout for listing the portfolio catalog.
func List() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return list
}

// Load returns the timeout for reading a portfolio from storage.
func Load() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return load
}

// Export returns the timeout for building a spreadsheet export.
func Export() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return export
}

// Config holds timeout configuration values.
type Config struct {
	Check  time.Duration
	List   time.Duration
	Load   time.Duration
	Export time.Duration
}

// Configure sets custom timeout values. Zero values keep the current ones.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Check > 0 {
		check = cfg.Check
	}
	if cfg.List > 0 {
		list = cfg.List
	}
	if cfg.Load > 0 {
		load = cfg.Load
	}
	if cfg.Export > 0 {
		export = cfg.Export
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	check = DefaultCheck
	list = DefaultList
	load = DefaultLoad
	export = DefaultExport
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Check: check, List: list, Load: load, Export: export}
}

// WithTimeout creates a context with timeout and logs when it expires.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
