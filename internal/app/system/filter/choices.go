package filter

import (
	"slices"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
)

// Choices are the picker options offered for a portfolio. They always come
// from the full normalized portfolio, never from a filtered view.
type Choices struct {
	States       []string
	BenefitCodes []int64
	TableCodes   []int64
	FirstDate    *time.Time
	LastDate     *time.Time
}

// DateRange returns the full disbursement date span, the picker default.
func (c Choices) DateRange() models.DateRange {
	return models.DateRange{Start: c.FirstDate, End: c.LastDate}
}

// ChoicesFor collects the sorted distinct non-null values of the pickable
// columns and the disbursement date span.
func ChoicesFor(p *models.Portfolio) Choices {
	var ch Choices
	states := map[string]struct{}{}
	benefits := map[int64]struct{}{}
	tables := map[int64]struct{}{}

	for i := range p.Contracts {
		c := &p.Contracts[i]
		if c.State != nil {
			states[*c.State] = struct{}{}
		}
		if c.BenefitCode != nil {
			benefits[*c.BenefitCode] = struct{}{}
		}
		if c.TableCode != nil {
			tables[*c.TableCode] = struct{}{}
		}
		if d := c.DisbursedOn; d != nil {
			if ch.FirstDate == nil || d.Before(*ch.FirstDate) {
				ch.FirstDate = d
			}
			if ch.LastDate == nil || d.After(*ch.LastDate) {
				ch.LastDate = d
			}
		}
	}

	ch.States = sortedKeys(states)
	ch.BenefitCodes = sortedKeys(benefits)
	ch.TableCodes = sortedKeys(tables)
	return ch
}

func sortedKeys[K string | int64](m map[K]struct{}) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
