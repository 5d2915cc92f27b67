package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	errNotNumeric = errors.New("value is not numeric")
	errInfinite   = errors.New("value is infinite")
	errOverflow   = errors.New("value overflows a 64-bit integer")
)

// dateLayouts are tried in order. Slash, dash and dot layouts are day-first;
// ISO layouts are year-first.
var dateLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006",
	"2-1-2006 15:04:05",
	"2.1.2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// Date parses a disbursement date day-first. It returns nil for missing or
// unparseable values; it never fails.
func Date(v any) *time.Time {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return &x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
	}
	return nil
}

// Code coerces a code cell to a nullable integer, truncating toward zero.
// Missing values (nil, NaN, blank strings) stay missing.
func Code(v any) (*int64, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case int64:
		return &x, nil
	case int:
		n := int64(x)
		return &n, nil
	case int32:
		n := int64(x)
		return &n, nil
	case float64:
		return truncate(x)
	case float32:
		return truncate(float64(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errNotNumeric
		}
		return truncate(f)
	default:
		return nil, fmt.Errorf("%w: %T", errNotNumeric, v)
	}
}

func truncate(f float64) (*int64, error) {
	switch {
	case math.IsNaN(f):
		return nil, nil
	case math.IsInf(f, 0):
		return nil, errInfinite
	case f >= math.MaxInt64 || f <= math.MinInt64:
		return nil, errOverflow
	}
	n := int64(math.Trunc(f))
	return &n, nil
}

// Number coerces a numeric cell to a nullable float.
func Number(v any) (*float64, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		if math.IsNaN(x) {
			return nil, nil
		}
		if math.IsInf(x, 0) {
			return nil, errInfinite
		}
		return &x, nil
	case float32:
		return Number(float64(x))
	case int64:
		f := float64(x)
		return &f, nil
	case int:
		f := float64(x)
		return &f, nil
	case int32:
		f := float64(x)
		return &f, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errNotNumeric
		}
		return Number(f)
	default:
		return nil, fmt.Errorf("%w: %T", errNotNumeric, v)
	}
}

// Text coerces a categorical cell to a nullable string. Values are kept
// verbatim; non-string values use their default formatting.
func Text(v any) *string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return &x
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		s := strconv.FormatFloat(x, 'f', -1, 64)
		return &s
	default:
		s := fmt.Sprint(x)
		return &s
	}
}
