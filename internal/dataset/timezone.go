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

package dataset

import (
	"strings"
	"time"
)

// timeLayouts are the timestamp shapes seen across provider exports.
// Aware layouts carry an explicit UTC offset; naive layouts are
// interpreted as UTC. Zone abbreviation layouts ("MST") are excluded:
// time.Parse resolves unknown abbreviations like "BRT" to offset zero,
// which would mark a misread stamp as aware.
var timeLayouts = []struct {
	layout string
	aware  bool
}{
	{time.RFC3339, true},
	{"2006-01-02T15:04:05Z0700", true},
	{"2006-01-02 15:04:05 -0700", true},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", false},
	{"02/01/2006 15:04:05", false},
	{"02/01/2006 15:04", false},
	{"02/01/2006", false},
	{"02-01-2006 15:04:05", false},
	{"02-01-2006", false},
}

// ParseTimestamp tries every known layout against s. Naive layouts are
// anchored to UTC so a later zone conversion is well-defined. The aware
// result reports whether the source carried explicit zone information.
func ParseTimestamp(s string) (t time.Time, aware bool, ok bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false, false
	}
	for _, candidate := range timeLayouts {
		if candidate.aware {
			if parsed, err := time.Parse(candidate.layout, trimmed); err == nil {
				return parsed, true, true
			}
			continue
		}
		if parsed, err := time.ParseInLocation(candidate.layout, trimmed, time.UTC); err == nil {
			return parsed, false, true
		}
	}
	return time.Time{}, false, false
}

// Normalize converts every timestamp column to the target zone and
// returns a new dataset; the input is never mutated.
//
// A text column is promoted to timestamps only when every non-null cell
// parses: a column is either fully converted or left completely
// untouched, never mixed. Columns already timestamp-typed are converted
// in place (values without explicit zone info were anchored to UTC at
// parse time). Numeric and mixed columns pass through unchanged, so
// applying Normalize twice equals applying it once.
func Normalize(d *Dataset, loc *time.Location) *Dataset {
	out := d.Clone()
	for _, col := range out.Columns {
		normalizeColumn(out, col, loc)
	}
	return out
}

func normalizeColumn(d *Dataset, col string, loc *time.Location) {
	if columnIsTimeTyped(d, col) {
		for _, row := range d.Rows {
			v := row[col]
			if v.Kind != KindTime {
				continue
			}
			row[col] = Time(v.Time.In(loc), v.Aware)
		}
		return
	}

	// Text columns: all-or-nothing promotion
	parsed := make([]Value, len(d.Rows))
	sawText := false
	for i, row := range d.Rows {
		v := row[col]
		if v.IsNull() {
			parsed[i] = v
			continue
		}
		if v.Kind != KindString {
			return
		}
		t, aware, ok := ParseTimestamp(v.Str)
		if !ok {
			return
		}
		parsed[i] = Time(t.In(loc), aware)
		sawText = true
	}
	if !sawText {
		return
	}
	for i, row := range d.Rows {
		row[col] = parsed[i]
	}
}
