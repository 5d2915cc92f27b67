package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
)

// LocalSource reads portfolio files from a directory.
type LocalSource struct {
	dir string
}

// NewLocalSource returns a source over dir. The directory is not checked
// until first use.
func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir}
}

// Location returns the directory path.
func (s *LocalSource) Location() string { return s.dir }

// Check verifies that the directory exists.
func (s *LocalSource) Check(ctx context.Context) error {
	fi, err := os.Stat(s.dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &models.NotFoundError{Kind: models.NotFoundStorage, Name: s.dir}
	case err != nil:
		return fmt.Errorf("stat %s: %w", s.dir, err)
	case !fi.IsDir():
		return &models.NotFoundError{Kind: models.NotFoundStorage, Name: s.dir}
	}
	return nil
}

// Names lists the regular files of the directory.
func (s *LocalSource) Names(ctx context.Context) ([]string, error) {
	if err := s.Check(ctx); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ReadFile returns the contents of the named file.
func (s *LocalSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}
