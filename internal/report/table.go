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

package report

import (
	"sort"
	"time"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

// TableRow is one line of the canonical report table
type TableRow struct {
	TimeDisplay string `json:"time"`
	IPAddress   string `json:"ip_address"`

	when time.Time
}

// When exposes the true timestamp behind the display string
func (r TableRow) When() time.Time { return r.when }

// BuildTable produces the canonical (time, IP) table: source columns are
// guessed, the time column is converted to the target zone (UTC assumed
// when unmarked), rows missing either value are dropped, and the result
// is sorted most-recent-first with original order preserved among equal
// timestamps. A dataset without identifiable columns yields an empty
// table, which callers render as "insufficient data".
func BuildTable(d *dataset.Dataset, candidates []string, loc *time.Location) []TableRow {
	timeCol, ipCol := dataset.GuessColumns(d, candidates)
	if timeCol == "" || ipCol == "" {
		return nil
	}

	rows := make([]TableRow, 0, d.RowCount())
	for i := range d.Rows {
		when, ok := rowTime(d.Value(i, timeCol), loc)
		if !ok {
			continue
		}
		ip := d.Value(i, ipCol)
		if ip.IsNull() {
			continue
		}
		rows = append(rows, TableRow{
			TimeDisplay: when.Format(dataset.DisplayTimeLayout),
			IPAddress:   ip.Display(),
			when:        when,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].when.After(rows[j].when)
	})
	return rows
}

// coverageWindow finds the oldest and newest parseable timestamps of
// the guessed time column. Rows missing an IP address still count, so
// the window can be known even when the report table is empty.
func coverageWindow(d *dataset.Dataset, candidates []string, loc *time.Location) (start, end time.Time, known bool) {
	timeCol, _ := dataset.GuessColumns(d, candidates)
	if timeCol == "" {
		return time.Time{}, time.Time{}, false
	}
	for i := range d.Rows {
		when, ok := rowTime(d.Value(i, timeCol), loc)
		if !ok {
			continue
		}
		if !known {
			start, end, known = when, when, true
			continue
		}
		if when.Before(start) {
			start = when
		}
		if when.After(end) {
			end = when
		}
	}
	return start, end, known
}

func rowTime(v dataset.Value, loc *time.Location) (time.Time, bool) {
	switch v.Kind {
	case dataset.KindTime:
		return v.Time.In(loc), true
	case dataset.KindString:
		t, _, ok := dataset.ParseTimestamp(v.Str)
		if !ok {
			return time.Time{}, false
		}
		return t.In(loc), true
	default:
		return time.Time{}, false
	}
}
