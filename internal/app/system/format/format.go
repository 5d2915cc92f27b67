// Package format renders indicator values for display.
package format

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// NoData is shown for indicators that are undefined over the current view.
const NoData = "no data"

// DateLayout is the day-first display layout used across the dashboard.
const DateLayout = "02/01/2006"

// BRL renders an amount in Brazilian reais, rounded to the cent.
func BRL(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}

// Percent renders p with one decimal place.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Age renders a mean age, or NoData when undefined.
func Age(mean *float64) string {
	if mean == nil {
		return NoData
	}
	return fmt.Sprintf("%.1f years", *mean)
}

// Date renders t as dd/mm/yyyy, or an empty string when t is nil.
func Date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ISODate renders t as yyyy-mm-dd for HTML date inputs.
func ISODate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
