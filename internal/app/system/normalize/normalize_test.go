package normalize

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
)

func TestDate(t *testing.T) {
	jan10 := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input any
		want  *time.Time
	}{
		{"day first slash", "10/01/2025", &jan10},
		{"single digits", "10/1/2025", &jan10},
		{"day first dash", "10-01-2025", &jan10},
		{"iso", "2025-01-10", &jan10},
		{"time value", jan10, &jan10},
		{"blank", "  ", nil},
		{"garbage", "not a date", nil},
		{"invalid day", "32/01/2025", nil},
		{"nil", nil, nil},
		{"number", int64(20250110), nil},
		{"zero time", time.Time{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Date(tt.input)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Date(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("Date(%v) = %v, want %v", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestDate_DayFirstIsNotMonthFirst(t *testing.T) {
	got := Date("02/03/2025")
	if got == nil {
		t.Fatal("Date returned nil")
	}
	if got.Day() != 2 || got.Month() != time.March {
		t.Errorf("Date(02/03/2025) = %v, want 2 March 2025", got)
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    *int64
		wantErr bool
	}{
		{"int64", int64(41), ptr(int64(41)), false},
		{"float truncates", 41.9, ptr(int64(41)), false},
		{"negative float truncates toward zero", -3.7, ptr(int64(-3)), false},
		{"numeric string", "87.0", ptr(int64(87)), false},
		{"nil", nil, nil, false},
		{"NaN", math.NaN(), nil, false},
		{"blank string", " ", nil, false},
		{"text", "abc", nil, true},
		{"bool", true, nil, true},
		{"infinite", math.Inf(1), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Code(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Code(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Code(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Code(%v) = %d, want %d", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    *float64
		wantErr bool
	}{
		{"float", 12.5, ptr(12.5), false},
		{"int", int64(3), ptr(3.0), false},
		{"string", "7.25", ptr(7.25), false},
		{"nil", nil, nil, false},
		{"NaN", math.NaN(), nil, false},
		{"text", "R$ 10", nil, true},
		{"time", time.Now(), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Number(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Number(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Number(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Number(%v) = %v, want %v", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestText(t *testing.T) {
	if got := Text(nil); got != nil {
		t.Errorf("Text(nil) = %q, want nil", *got)
	}
	if got := Text("SP"); got == nil || *got != "SP" {
		t.Errorf("Text(SP) = %v, want SP", got)
	}
	if got := Text(math.NaN()); got != nil {
		t.Errorf("Text(NaN) = %q, want nil", *got)
	}
	if got := Text(int64(35)); got == nil || *got != "35" {
		t.Errorf("Text(35) = %v, want 35", got)
	}
}

func TestPortfolio(t *testing.T) {
	f := &models.Frame{
		Columns: append([]string{"CONTRATO"}, models.RequiredColumns...),
		Rows: [][]any{
			{"c1", "10/01/2025", "SP", 41.0, 3.0, "NEW", 100.0, 60.0, "M"},
			{"c2", "bad date", "RJ", nil, math.NaN(), "REFIN", 50.0, nil, "F"},
		},
	}

	p, err := Portfolio("CESS_A", f)
	if err != nil {
		t.Fatalf("Portfolio() error = %v", err)
	}
	if p.ID != "CESS_A" {
		t.Errorf("ID = %q, want CESS_A", p.ID)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}

	c1 := p.Contracts[0]
	if c1.DisbursedOn == nil || c1.DisbursedOn.Day() != 10 {
		t.Errorf("row 0 date = %v, want 10 Jan", c1.DisbursedOn)
	}
	if c1.BenefitCode == nil || *c1.BenefitCode != 41 {
		t.Errorf("row 0 benefit = %v, want 41", c1.BenefitCode)
	}
	if got := p.Rows[0][3]; got != int64(41) {
		t.Errorf("normalized benefit cell = %#v, want int64(41)", got)
	}
	if _, ok := p.Rows[0][1].(time.Time); !ok {
		t.Errorf("normalized date cell = %#v, want time.Time", p.Rows[0][1])
	}

	c2 := p.Contracts[1]
	if c2.DisbursedOn != nil {
		t.Errorf("row 1 date = %v, want missing", c2.DisbursedOn)
	}
	if c2.BenefitCode != nil || c2.TableCode != nil {
		t.Errorf("row 1 codes = %v/%v, want missing", c2.BenefitCode, c2.TableCode)
	}
	if c2.Age != nil {
		t.Errorf("row 1 age = %v, want missing", *c2.Age)
	}
	if p.Rows[1][1] != nil {
		t.Errorf("normalized bad date cell = %#v, want nil", p.Rows[1][1])
	}

	// The source frame is left untouched.
	if f.Rows[0][3] != 41.0 {
		t.Errorf("source frame mutated: %#v", f.Rows[0][3])
	}
}

func TestPortfolio_MissingColumn(t *testing.T) {
	cols := []string{}
	for _, c := range models.RequiredColumns {
		if c != models.ColOperationType {
			cols = append(cols, c)
		}
	}
	_, err := Portfolio("X", &models.Frame{Columns: cols})

	var se *models.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if se.Column != models.ColOperationType {
		t.Errorf("Column = %q, want %q", se.Column, models.ColOperationType)
	}
}

func TestPortfolio_UnparseableCode(t *testing.T) {
	f := &models.Frame{
		Columns: models.RequiredColumns,
		Rows: [][]any{
			{"10/01/2025", "SP", 1.0, 2.0, "NEW", 1.0, 30.0, "M"},
			{"10/01/2025", "SP", "B41", 2.0, "NEW", 1.0, 30.0, "M"},
		},
	}
	_, err := Portfolio("X", f)

	var se *models.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if se.Column != models.ColBenefitCode || se.Row != 1 {
		t.Errorf("SchemaError = %+v, want column %q row 1", se, models.ColBenefitCode)
	}
}

func TestPortfolio_Empty(t *testing.T) {
	p, err := Portfolio("X", &models.Frame{Columns: models.RequiredColumns})
	if err != nil {
		t.Fatalf("Portfolio() error = %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestQueryParams(t *testing.T) {
	got := QueryParams([]string{" SP ", "", "  ", "RJ"})
	if len(got) != 2 || got[0] != "SP" || got[1] != "RJ" {
		t.Errorf("QueryParams() = %v, want [SP RJ]", got)
	}
}

func ptr[T any](v T) *T { return &v }
