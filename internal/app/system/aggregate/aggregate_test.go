package aggregate_test

import (
	"testing"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/aggregate"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/filter"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(t *testing.T, p *models.Portfolio, c models.Criteria) models.View {
	t.Helper()
	res, err := filter.Apply(p, c)
	require.NoError(t, err)
	return res.View
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_Scenario(t *testing.T) {
	p := testutil.Portfolio(t, "CESS_A", testutil.ScenarioRows()...)

	s := aggregate.Compute(view(t, p, models.Criteria{}))

	assert.Equal(t, 3, s.Count)
	assert.True(t, s.TotalVP.Equal(dec("350")), "TotalVP = %s", s.TotalVP)
	require.NotNil(t, s.MeanAge)
	assert.InDelta(t, 65.0, *s.MeanAge, 1e-9)
	assert.InDelta(t, 200.0/3.0, s.PercentMale, 1e-9)

	require.Len(t, s.ByState, 2)
	assert.Equal(t, "RJ", s.ByState[0].State)
	assert.True(t, s.ByState[0].VP.Equal(dec("200")))
	assert.Equal(t, "SP", s.ByState[1].State)
	assert.True(t, s.ByState[1].VP.Equal(dec("150")))

	require.Len(t, s.ByBenefit, 2)
	assert.Equal(t, int64(1), s.ByBenefit[0].Code)
	assert.Equal(t, int64(2), s.ByBenefit[1].Code)
	assert.True(t, s.UncodedVP.Equal(dec("200")), "UncodedVP = %s", s.UncodedVP)
}

func TestCompute_StateFilter(t *testing.T) {
	p := testutil.Portfolio(t, "CESS_A", testutil.ScenarioRows()...)

	s := aggregate.Compute(view(t, p, models.Criteria{States: []string{"SP"}}))

	assert.Equal(t, 2, s.Count)
	assert.True(t, s.TotalVP.Equal(dec("150")))
	require.Len(t, s.ByState, 1, "states without rows are omitted")
	assert.Equal(t, "SP", s.ByState[0].State)
	assert.True(t, s.ByState[0].VP.Equal(dec("150")))
}

func TestCompute_EmptyView(t *testing.T) {
	p := testutil.Portfolio(t, "CESS_A", testutil.ScenarioRows()...)

	s := aggregate.Compute(view(t, p, models.Criteria{States: []string{"MG"}}))

	assert.True(t, s.Empty())
	assert.Equal(t, 0.0, s.PercentMale)
	assert.Nil(t, s.MeanAge)
	assert.True(t, s.TotalVP.IsZero())
	assert.Empty(t, s.ByState)
	assert.Empty(t, s.ByBenefit)
}

func TestCompute_GroupingsPartitionTotal(t *testing.T) {
	p := testutil.Portfolio(t, "X",
		testutil.Row{Date: "01/01/2025", State: "SP", Benefit: 41.0, Op: "NEW", VP: 10.10, Sex: "M"},
		testutil.Row{Date: "01/01/2025", State: nil, Benefit: 41.0, Op: "NEW", VP: 20.20, Sex: "F"},
		testutil.Row{Date: "01/01/2025", State: "MG", Benefit: nil, Op: "REFIN", VP: 0.30},
		testutil.Row{Date: "01/01/2025", State: "MG", Benefit: 87.0, Op: "REFIN", VP: nil},
	)

	s := aggregate.Compute(view(t, p, models.Criteria{}))

	byState := s.UnstatedVP
	for _, g := range s.ByState {
		byState = byState.Add(g.VP)
	}
	byBenefit := s.UncodedVP
	for _, g := range s.ByBenefit {
		byBenefit = byBenefit.Add(g.VP)
	}

	assert.True(t, s.TotalVP.Equal(dec("30.6")), "TotalVP = %s", s.TotalVP)
	assert.True(t, byState.Equal(s.TotalVP), "state groups = %s", byState)
	assert.True(t, byBenefit.Equal(s.TotalVP), "benefit groups = %s", byBenefit)
	assert.True(t, s.UnstatedVP.Equal(dec("20.2")))
	assert.Nil(t, s.MeanAge, "no ages present")
	assert.InDelta(t, 25.0, s.PercentMale, 1e-9)
}

func TestCompute_MeanAgeSkipsMissing(t *testing.T) {
	p := testutil.Portfolio(t, "X",
		testutil.Row{State: "SP", Op: "NEW", VP: 1.0, Age: 40.0},
		testutil.Row{State: "SP", Op: "NEW", VP: 1.0, Age: nil},
		testutil.Row{State: "SP", Op: "NEW", VP: 1.0, Age: 60.0},
	)

	s := aggregate.Compute(view(t, p, models.Criteria{}))

	require.NotNil(t, s.MeanAge)
	assert.InDelta(t, 50.0, *s.MeanAge, 1e-9)
}
