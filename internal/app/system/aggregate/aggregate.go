// Package aggregate derives the dashboard indicators from a filtered view.
package aggregate

import (
	"sort"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"github.com/shopspring/decimal"
)

// StateVP is the present value of the contracts of one state.
type StateVP struct {
	State string
	VP    decimal.Decimal
}

// BenefitVP is the present value of the contracts of one benefit code.
type BenefitVP struct {
	Code int64
	VP   decimal.Decimal
}

// Summary holds the scalar indicators and grouped sums of a view.
//
// ByState and ByBenefit only list keys present in the view, sorted by key.
// VP of rows with no state or no benefit code is itemized in UnstatedVP and
// UncodedVP, so each grouping plus its remainder always equals TotalVP.
type Summary struct {
	Count       int
	TotalVP     decimal.Decimal
	MeanAge     *float64 // nil when no contract in the view has an age
	PercentMale float64  // 0 for an empty view

	ByState    []StateVP
	ByBenefit  []BenefitVP
	UnstatedVP decimal.Decimal
	UncodedVP  decimal.Decimal
}

// Empty reports whether the summary was computed over zero contracts.
func (s Summary) Empty() bool { return s.Count == 0 }

// Compute aggregates v. Missing VP values count as zero.
func Compute(v models.View) Summary {
	s := Summary{Count: v.Len()}

	byState := map[string]decimal.Decimal{}
	byBenefit := map[int64]decimal.Decimal{}
	var (
		ageSum   float64
		ageCount int
		males    int
	)

	for i := range v.Contracts {
		c := &v.Contracts[i]

		vp := decimal.Zero
		if c.PresentValue != nil {
			vp = decimal.NewFromFloat(*c.PresentValue)
		}
		s.TotalVP = s.TotalVP.Add(vp)

		if c.State != nil {
			byState[*c.State] = byState[*c.State].Add(vp)
		} else {
			s.UnstatedVP = s.UnstatedVP.Add(vp)
		}
		if c.BenefitCode != nil {
			byBenefit[*c.BenefitCode] = byBenefit[*c.BenefitCode].Add(vp)
		} else {
			s.UncodedVP = s.UncodedVP.Add(vp)
		}

		if c.Age != nil {
			ageSum += *c.Age
			ageCount++
		}
		if c.Sex != nil && *c.Sex == models.SexMale {
			males++
		}
	}

	if ageCount > 0 {
		mean := ageSum / float64(ageCount)
		s.MeanAge = &mean
	}
	if s.Count > 0 {
		s.PercentMale = float64(males) / float64(s.Count) * 100
	}

	s.ByState = make([]StateVP, 0, len(byState))
	for k, vp := range byState {
		s.ByState = append(s.ByState, StateVP{State: k, VP: vp})
	}
	sort.Slice(s.ByState, func(i, j int) bool { return s.ByState[i].State < s.ByState[j].State })

	s.ByBenefit = make([]BenefitVP, 0, len(byBenefit))
	for k, vp := range byBenefit {
		s.ByBenefit = append(s.ByBenefit, BenefitVP{Code: k, VP: vp})
	}
	sort.Slice(s.ByBenefit, func(i, j int) bool { return s.ByBenefit[i].Code < s.ByBenefit[j].Code })

	return s
}
