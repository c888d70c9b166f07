//	Copyright 2025 ANALISTIC-DOC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dataset holds the in-memory tabular model shared by every
// pipeline stage: dynamically typed cells, ordered columns, merge and
// filter operations, column guessing and timezone normalization.
package dataset

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DisplayTimeLayout is the fixed display format for timestamps.
const DisplayTimeLayout = "02/01/2006 15:04:05"

// Kind discriminates the variants a cell can hold
type Kind int

// Cell kinds
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindTime
)

// Value is a tagged variant for a single cell. Exactly the fields for
// the active Kind are meaningful.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Time time.Time

	// Aware is set on KindTime values whose source carried an explicit
	// UTC offset. Values parsed from naive text are assumed UTC and stay
	// Aware=false until normalization converts them.
	Aware bool
}

// Null returns the null cell
func Null() Value { return Value{Kind: KindNull} }

// String returns a string cell
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number returns a numeric cell
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Time returns a timestamp cell
func Time(t time.Time, aware bool) Value {
	return Value{Kind: KindTime, Time: t, Aware: aware}
}

// IsNull reports whether the cell is null
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Display renders the cell for human-facing output. Timestamps use the
// fixed DD/MM/YYYY HH:MM:SS layout in the zone they carry.
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindTime:
		return v.Time.Format(DisplayTimeLayout)
	default:
		return ""
	}
}

// MarshalJSON renders null as null, numbers as numbers, timestamps in
// the display layout
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	case KindTime:
		return json.Marshal(v.Time.Format(DisplayTimeLayout))
	default:
		return []byte("null"), nil
	}
}

// ParseCell infers the cell type of a raw text field: numbers become
// KindNumber, empty text becomes null, everything else stays a string.
// Timestamp promotion is a column-level decision left to Normalize.
func ParseCell(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		// Leading-zero identifiers such as phone extensions are kept as
		// text; "0800" is not the number 800.
		if !strings.HasPrefix(trimmed, "0") || trimmed == "0" || strings.HasPrefix(trimmed, "0.") {
			return Number(f)
		}
	}
	return String(trimmed)
}

// Dataset is an ordered sequence of records. Column order is insertion
// order across merges; row order is upload order then within-file
// natural order.
type Dataset struct {
	Columns []string
	Rows    []map[string]Value
}

// New creates an empty dataset with the given column order
func New(columns ...string) *Dataset {
	return &Dataset{Columns: append([]string{}, columns...)}
}

// Append adds one record. Unknown columns are registered in encounter
// order.
func (d *Dataset) Append(row map[string]Value) {
	for _, col := range d.Columns {
		if _, ok := row[col]; !ok {
			row[col] = Null()
		}
	}
	for col := range row {
		if !d.HasColumn(col) {
			d.addColumn(col)
		}
	}
	d.Rows = append(d.Rows, row)
}

// Value returns the cell at (row, col), null when absent
func (d *Dataset) Value(row int, col string) Value {
	if row < 0 || row >= len(d.Rows) {
		return Null()
	}
	if v, ok := d.Rows[row][col]; ok {
		return v
	}
	return Null()
}

// RowCount returns the number of records
func (d *Dataset) RowCount() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// ColumnCount returns the number of columns
func (d *Dataset) ColumnCount() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

// HasColumn reports whether the column exists
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

func (d *Dataset) addColumn(col string) {
	d.Columns = append(d.Columns, col)
	for _, row := range d.Rows {
		if _, ok := row[col]; !ok {
			row[col] = Null()
		}
	}
}

// Clone returns a deep copy; pipeline stages that rewrite columns work
// on copies so the session's base dataset is never mutated in place.
func (d *Dataset) Clone() *Dataset {
	out := New(d.Columns...)
	for _, row := range d.Rows {
		copied := make(map[string]Value, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out.Rows = append(out.Rows, copied)
	}
	return out
}

// Merge concatenates datasets in upload order. The column set is the
// union in first-seen order; cells absent in a source are null.
func Merge(parts ...*Dataset) *Dataset {
	out := New()
	for _, part := range parts {
		if part == nil {
			continue
		}
		for _, col := range part.Columns {
			if !out.HasColumn(col) {
				out.addColumn(col)
			}
		}
		for _, row := range part.Rows {
			merged := make(map[string]Value, len(out.Columns))
			for _, col := range out.Columns {
				if v, ok := row[col]; ok {
					merged[col] = v
				} else {
					merged[col] = Null()
				}
			}
			out.Rows = append(out.Rows, merged)
		}
	}
	return out
}

// Filter keeps rows whose display value is whitelisted for every
// selected column. An empty selection keeps everything.
func (d *Dataset) Filter(selection map[string][]string) *Dataset {
	out := New(d.Columns...)
	for _, row := range d.Rows {
		if matchesSelection(row, selection) {
			copied := make(map[string]Value, len(row))
			for k, v := range row {
				copied[k] = v
			}
			out.Rows = append(out.Rows, copied)
		}
	}
	return out
}

func matchesSelection(row map[string]Value, selection map[string][]string) bool {
	for col, allowed := range selection {
		if len(allowed) == 0 {
			continue
		}
		display := row[col].Display()
		found := false
		for _, want := range allowed {
			if display == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// DistinctDisplay returns the distinct non-null display values of a
// column in first-seen order. Used to offer filter choices.
func (d *Dataset) DistinctDisplay(col string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range d.Rows {
		v := d.Value(i, col)
		if v.IsNull() {
			continue
		}
		display := v.Display()
		if !seen[display] {
			seen[display] = true
			out = append(out, display)
		}
	}
	return out
}
