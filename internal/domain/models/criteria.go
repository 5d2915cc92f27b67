// internal/domain/models/criteria.go
package models

import "time"

// TableMode selects how the table-code filter behaves.
type TableMode string

const (
	TableModeNone    TableMode = "none"    // no table filtering
	TableModeInclude TableMode = "include" // keep rows whose table code is chosen
	TableModeExclude TableMode = "exclude" // drop rows whose table code is chosen
)

// ParseTableMode maps a form value to a TableMode. Unknown values are NONE.
func ParseTableMode(s string) TableMode {
	switch TableMode(s) {
	case TableModeInclude:
		return TableModeInclude
	case TableModeExclude:
		return TableModeExclude
	default:
		return TableModeNone
	}
}

// DateRange is a disbursement date range. Either bound may be missing.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Complete reports whether both bounds are present.
func (d DateRange) Complete() bool {
	return d.Start != nil && d.End != nil
}

// Criteria is a snapshot of the user's filter selections.
//
// It is built fresh from every request and never persisted. Empty slices mean
// "no filtering" for that dimension.
type Criteria struct {
	Dates          DateRange
	States         []string
	BenefitCodes   []int64
	OperationTypes []string
	TableMode      TableMode
	TableCodes     []int64
}

// DefaultCriteria returns the selections shown on first visit: the given
// date range and both known operation types.
func DefaultCriteria(dates DateRange) Criteria {
	return Criteria{
		Dates:          dates,
		OperationTypes: OperationTypes(),
		TableMode:      TableModeNone,
	}
}
