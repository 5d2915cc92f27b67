package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
)

// ParquetRow is a portfolio row as pandas writes it, with an index column
// and one column outside the required schema.
type ParquetRow struct {
	Index    int64    `parquet:"__index_level_0__"`
	Contract string   `parquet:"CONTRATO"`
	Date     *string  `parquet:"DATA DESEMBOLSO"`
	State    *string  `parquet:"ESTADO"`
	Benefit  *float64 `parquet:"CD BENEFICIO"`
	Table    *float64 `parquet:"TABELA"`
	Op       *string  `parquet:"tipo_operacao"`
	VP       *float64 `parquet:"VP"`
	Age      *float64 `parquet:"IDADE"`
	Sex      *string  `parquet:"SEXO"`
}

// TimedRow stores the disbursement date as a parquet timestamp.
type TimedRow struct {
	Date    time.Time `parquet:"DATA DESEMBOLSO"`
	State   string    `parquet:"ESTADO"`
	Benefit int64     `parquet:"CD BENEFICIO"`
	Table   int64     `parquet:"TABELA"`
	Op      string    `parquet:"tipo_operacao"`
	VP      float64   `parquet:"VP"`
	Age     int32     `parquet:"IDADE"`
	Sex     string    `parquet:"SEXO"`
}

// ParquetRows converts fixture rows to their parquet shape.
func ParquetRows(rows ...Row) []ParquetRow {
	out := make([]ParquetRow, len(rows))
	for i, r := range rows {
		out[i] = ParquetRow{
			Index:    int64(i),
			Contract: "C" + string(rune('A'+i%26)),
			Date:     str(r.Date),
			State:    str(r.State),
			Benefit:  num(r.Benefit),
			Table:    num(r.Table),
			Op:       str(r.Op),
			VP:       num(r.VP),
			Age:      num(r.Age),
			Sex:      str(r.Sex),
		}
	}
	return out
}

// WriteParquet writes rows to dir/<id>.parquet and returns the path.
func WriteParquet[T any](t testing.TB, dir, id string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, id+".parquet")
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write parquet %s: %v", path, err)
	}
	return path
}

// PortfolioDir creates a storage directory holding the scenario portfolio
// under each of ids, plus a SUMMARY file and a stray non-parquet file.
func PortfolioDir(t testing.TB, ids ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, id := range append(ids, "SUMMARY") {
		WriteParquet(t, dir, id, ParquetRows(ScenarioRows()...))
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a portfolio"), 0o644); err != nil {
		t.Fatalf("write README: %v", err)
	}
	return dir
}

func str(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func num(v any) *float64 {
	switch x := v.(type) {
	case float64:
		return &x
	case int:
		f := float64(x)
		return &f
	}
	return nil
}
