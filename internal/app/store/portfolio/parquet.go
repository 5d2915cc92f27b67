package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/domain/models"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/deprecated"
	"github.com/parquet-go/parquet-go/format"
)

// pandasIndexPrefix marks the index columns pandas writes alongside data.
const pandasIndexPrefix = "__index_level_"

const readBatch = 256

// column describes one decoded leaf column.
type column struct {
	name  string
	leaf  int // leaf column index in the file
	kind  parquet.Kind
	logic *format.LogicalType
}

// DecodeParquet decodes a flat parquet file into a Frame.
//
// Columns keep the file schema order. Nested or repeated columns fail with
// *models.SchemaError. Cells decode to nil, string, int64, float64, bool or
// time.Time (DATE and TIMESTAMP logical types, and legacy INT96 timestamps).
func DecodeParquet(data []byte) (*models.Frame, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	schema := f.Schema()
	var cols []column
	for _, path := range schema.Columns() {
		if len(path) != 1 {
			return nil, &models.SchemaError{Column: strings.Join(path, "."), Row: -1, Reason: "nested columns are not supported"}
		}
		leaf, ok := schema.Lookup(path...)
		if !ok {
			return nil, fmt.Errorf("parquet column %q not found in schema", path[0])
		}
		if leaf.MaxRepetitionLevel > 0 {
			return nil, &models.SchemaError{Column: path[0], Row: -1, Reason: "repeated columns are not supported"}
		}
		if strings.HasPrefix(path[0], pandasIndexPrefix) {
			continue
		}
		t := leaf.Node.Type()
		cols = append(cols, column{name: path[0], leaf: leaf.ColumnIndex, kind: t.Kind(), logic: t.LogicalType()})
	}

	frame := &models.Frame{Columns: make([]string, len(cols)), Rows: make([][]any, 0, f.NumRows())}
	byLeaf := make(map[int]int, len(cols))
	for i, c := range cols {
		frame.Columns[i] = c.name
		byLeaf[c.leaf] = i
	}

	buf := make([]parquet.Row, readBatch)
	for _, rg := range f.RowGroups() {
		if err := readRowGroup(rg, cols, byLeaf, buf, frame); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func readRowGroup(rg parquet.RowGroup, cols []column, byLeaf map[int]int, buf []parquet.Row, frame *models.Frame) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			out := make([]any, len(cols))
			for _, v := range row {
				i, ok := byLeaf[v.Column()]
				if !ok {
					continue
				}
				out[i] = cell(v, cols[i])
			}
			frame.Rows = append(frame.Rows, out)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read parquet rows: %w", err)
		}
	}
}

// cell converts one parquet value to a Frame cell.
func cell(v parquet.Value, c column) any {
	if v.IsNull() {
		return nil
	}
	switch c.kind {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		if c.logic != nil && c.logic.Date != nil {
			return time.Unix(0, 0).UTC().AddDate(0, 0, int(v.Int32()))
		}
		return int64(v.Int32())
	case parquet.Int64:
		if c.logic != nil && c.logic.Timestamp != nil {
			return timestamp(v.Int64(), c.logic.Timestamp.Unit)
		}
		return v.Int64()
	case parquet.Int96:
		return int96Time(v.Int96())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return string(v.ByteArray())
	}
}

func timestamp(n int64, unit format.TimeUnit) time.Time {
	switch {
	case unit.Millis != nil:
		return time.UnixMilli(n).UTC()
	case unit.Micros != nil:
		return time.UnixMicro(n).UTC()
	default:
		return time.Unix(0, n).UTC()
	}
}

// julianUnixEpoch is the Julian day number of 1970-01-01.
const julianUnixEpoch = 2440588

// int96Time decodes the legacy Impala timestamp: nanoseconds of the day in
// the low 64 bits and the Julian day in the high 32 bits.
func int96Time(v deprecated.Int96) time.Time {
	nanos := int64(uint64(v[1])<<32 | uint64(v[0]))
	days := int64(v[2]) - julianUnixEpoch
	return time.Unix(days*86400, nanos).UTC()
}
