package storage

import (
	"database/sql"
	"strconv"
	"time"
)

// IntUnset is returned by GetInt when a cell is NULL, missing, or not
// numeric. Catalog readers treat it as "value not specified".
const IntUnset = -1

// RowSet is a fully materialized query result with column lookup by name and
// typed, sentinel-returning accessors. Rows and columns are addressed by
// index and name respectively.
type RowSet struct {
	columns []string
	index   map[string]int
	rows    [][]interface{}
}

func newRowSet(rows *sql.Rows) (*RowSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &RowSet{
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		rs.index[c] = i
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		// go-sqlite3 hands TEXT cells back as []byte; normalize so the
		// accessors only deal in native Go types.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.rows = append(rs.rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Len returns the number of rows.
func (rs *RowSet) Len() int { return len(rs.rows) }

// Columns returns the column names in result order.
func (rs *RowSet) Columns() []string { return rs.columns }

// ColumnIndex returns the index of a column, or -1 if absent.
func (rs *RowSet) ColumnIndex(name string) int {
	if i, ok := rs.index[name]; ok {
		return i
	}
	return -1
}

func (rs *RowSet) cell(row int, col string) (interface{}, bool) {
	if row < 0 || row >= len(rs.rows) {
		return nil, false
	}
	i, ok := rs.index[col]
	if !ok {
		return nil, false
	}
	v := rs.rows[row][i]
	if v == nil {
		return nil, false
	}
	return v, true
}

// HasValue reports whether the cell exists and is non-NULL.
func (rs *RowSet) HasValue(row int, col string) bool {
	_, ok := rs.cell(row, col)
	return ok
}

// GetString returns the cell as a string, or "" when NULL or missing.
func (rs *RowSet) GetString(row int, col string) string {
	v, ok := rs.cell(row, col)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// GetInt returns the cell as an int, or IntUnset when NULL, missing, or not
// numeric.
func (rs *RowSet) GetInt(row int, col string) int {
	v, ok := rs.cell(row, col)
	if !ok {
		return IntUnset
	}
	switch t := v.(type) {
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
		return IntUnset
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return IntUnset
	}
}

// GetFloat returns the cell as a float64 plus whether a numeric value was
// present.
func (rs *RowSet) GetFloat(row int, col string) (float64, bool) {
	v, ok := rs.cell(row, col)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
