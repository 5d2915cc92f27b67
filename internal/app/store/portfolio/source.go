// Package portfolio reads portfolio files from storage.
//
// A storage location holds one parquet file per portfolio identifier plus a
// reserved summary file. Catalog lists the identifiers and Loader reads and
// caches the tables. Both work over a Source, which is either a local
// directory or an S3 bucket prefix.
package portfolio

import (
	"context"
	"fmt"
	"strings"
)

// Source is a flat, read-only storage location.
//
// Check and Names return *models.NotFoundError (kind storage) when the
// location itself does not exist. ReadFile returns an error wrapping
// fs.ErrNotExist when the named file is absent.
type Source interface {
	Check(ctx context.Context) error
	Names(ctx context.Context) ([]string, error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
	Location() string
}

// validName rejects names that could escape the storage location.
func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}
