// internal/domain/models/errors.go
package models

import "fmt"

// NotFound kinds.
const (
	NotFoundStorage   = "storage"
	NotFoundPortfolio = "portfolio"
)

// NotFoundError reports a missing storage location or portfolio identifier.
type NotFoundError struct {
	Kind string // NotFoundStorage or NotFoundPortfolio
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Kind == NotFoundStorage {
		return fmt.Sprintf("portfolio storage location %q not found", e.Name)
	}
	return fmt.Sprintf("portfolio %q not found", e.Name)
}

// SchemaError reports a required column that is absent or holds a value that
// cannot be coerced to the column's type. Row is -1 for column-level errors.
type SchemaError struct {
	Column string
	Row    int
	Value  any
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("column %q row %d: %s (value %v)", e.Column, e.Row, e.Reason, e.Value)
}

// MissingColumn returns the SchemaError for an absent required column.
func MissingColumn(name string) *SchemaError {
	return &SchemaError{Column: name, Row: -1, Reason: "required column is missing"}
}

// WarningKind identifies a non-fatal condition shown to the user.
type WarningKind string

const (
	WarnEmptyDataset    WarningKind = "empty_dataset"
	WarnIncompleteRange WarningKind = "incomplete_range"
)

// Warning is a non-fatal condition. Warnings never stop the pipeline.
type Warning struct {
	Kind    WarningKind
	Message string
}

// EmptyDatasetWarning is raised when a portfolio has no rows.
func EmptyDatasetWarning() Warning {
	return Warning{Kind: WarnEmptyDataset, Message: "No data available for this portfolio."}
}

// IncompleteRangeWarning is raised when the date range has fewer than two bounds.
func IncompleteRangeWarning() Warning {
	return Warning{Kind: WarnIncompleteRange, Message: "Select both dates to apply the disbursement date filter."}
}
