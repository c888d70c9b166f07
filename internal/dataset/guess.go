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

import "strings"

// GuessColumns heuristically identifies which column holds timestamps
// and which holds IP addresses. Either result may be empty when no rule
// matches. The dataset is never mutated.
//
// Timestamp selection order:
//  1. a column literally named "time" (case-insensitive, trimmed)
//  2. a column whose values are already timestamp-typed
//  3. a column named in candidates whose values parse as timestamps for
//     at least one row
//
// IP selection order:
//  1. a column literally named "ip address"
//  2. the first column whose name contains "ip"
func GuessColumns(d *Dataset, candidates []string) (timeCol, ipCol string) {
	if d == nil {
		return "", ""
	}
	timeCol = guessTimeColumn(d, candidates)
	ipCol = guessIPColumn(d)
	return timeCol, ipCol
}

func guessTimeColumn(d *Dataset, candidates []string) string {
	for _, col := range d.Columns {
		if normalizeName(col) == "time" {
			return col
		}
	}
	for _, col := range d.Columns {
		if columnIsTimeTyped(d, col) {
			return col
		}
	}
	candidateSet := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidateSet[normalizeName(c)] = true
	}
	for _, col := range d.Columns {
		if !candidateSet[normalizeName(col)] {
			continue
		}
		if columnHasParseableTime(d, col) {
			return col
		}
	}
	return ""
}

func guessIPColumn(d *Dataset) string {
	for _, col := range d.Columns {
		if normalizeName(col) == "ip address" {
			return col
		}
	}
	for _, col := range d.Columns {
		if strings.Contains(normalizeName(col), "ip") {
			return col
		}
	}
	return ""
}

// columnIsTimeTyped reports whether the column already holds timestamp
// values: at least one non-null cell, all of them KindTime.
func columnIsTimeTyped(d *Dataset, col string) bool {
	seen := false
	for i := range d.Rows {
		v := d.Value(i, col)
		if v.IsNull() {
			continue
		}
		if v.Kind != KindTime {
			return false
		}
		seen = true
	}
	return seen
}

// columnHasParseableTime reports whether at least one text cell of the
// column parses as a timestamp.
func columnHasParseableTime(d *Dataset, col string) bool {
	for i := range d.Rows {
		v := d.Value(i, col)
		if v.Kind != KindString {
			continue
		}
		if _, _, ok := ParseTimestamp(v.Str); ok {
			return true
		}
	}
	return false
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
