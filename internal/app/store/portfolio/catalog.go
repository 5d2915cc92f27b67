package portfolio

import (
	"context"
	"slices"
	"strings"
)

const (
	// FileExt is the extension of portfolio files.
	FileExt = ".parquet"

	// SummaryID is the reserved summary file. It is never listed or loaded.
	SummaryID = "SUMMARY"

	// OutOfRulesID is the catch-all bucket for contracts that match no
	// cessionary's rules. It is always listed last.
	OutOfRulesID = "OUT_OF_RULES"
)

// Catalog lists the portfolio identifiers of a storage location.
type Catalog struct {
	src Source
}

// NewCatalog returns a catalog over src.
func NewCatalog(src Source) *Catalog {
	return &Catalog{src: src}
}

// List returns the identifiers in display order. It fails with
// *models.NotFoundError when the storage location is absent; no partial
// listing is returned.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	names, err := c.src.Names(ctx)
	if err != nil {
		return nil, err
	}
	return IDs(names), nil
}

// IDs derives identifiers from file names: keep portfolio files, strip the
// extension, drop SummaryID, sort ascending and move OutOfRulesID to the end.
func IDs(names []string) []string {
	ids := make([]string, 0, len(names))
	outOfRules := false
	for _, n := range names {
		id, ok := strings.CutSuffix(n, FileExt)
		if !ok || id == "" || id == SummaryID {
			continue
		}
		if id == OutOfRulesID {
			outOfRules = true
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	if outOfRules {
		ids = append(ids, OutOfRulesID)
	}
	return ids
}
