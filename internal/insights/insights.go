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

// Package insights computes descriptive statistics over a dataset and
// renders them as report-ready sentences.
package insights

import (
	"fmt"
	"math"
	"strings"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

// Summarize renders the dataset's descriptive statistics as sentences:
// row/column summary first, then one sentence per numeric column (mean,
// two decimal places), then one per categorical column (most frequent
// value), preserving column order. A numeric column whose mean cannot be
// computed is skipped; a categorical column with only nulls reports the
// literal token "None".
func Summarize(d *dataset.Dataset) []string {
	sentences := []string{
		fmt.Sprintf("O conjunto de dados possui %d linhas e %d colunas.", d.RowCount(), d.ColumnCount()),
		fmt.Sprintf("As colunas disponíveis são: %s.", strings.Join(d.Columns, ", ")),
	}

	var numeric, categorical []string
	for _, col := range d.Columns {
		if isNumericColumn(d, col) {
			numeric = append(numeric, col)
		} else {
			categorical = append(categorical, col)
		}
	}

	if len(numeric) > 0 {
		sentences = append(sentences, fmt.Sprintf("Foram encontradas %d colunas numéricas.", len(numeric)))
		for _, col := range numeric {
			mean, ok := columnMean(d, col)
			if !ok {
				continue
			}
			sentences = append(sentences, fmt.Sprintf("A média da coluna '%s' é %.2f.", col, mean))
		}
	} else {
		sentences = append(sentences, "Não há colunas numéricas para calcular estatísticas básicas.")
	}

	if len(categorical) > 0 {
		sentences = append(sentences, fmt.Sprintf("Foram encontradas %d colunas categóricas.", len(categorical)))
		for _, col := range categorical {
			mode, ok := columnMode(d, col)
			if !ok {
				mode = "None"
			}
			sentences = append(sentences, fmt.Sprintf("Na coluna '%s', o valor mais frequente é '%s'.", col, mode))
		}
	}

	return sentences
}

// ColumnStats is one row of the describe table
type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe computes count/mean/std/min/max for every numeric column
func Describe(d *dataset.Dataset) []ColumnStats {
	var out []ColumnStats
	for _, col := range d.Columns {
		values := numericValues(d, col, false)
		if len(values) == 0 {
			continue
		}
		stats := ColumnStats{Column: col, Count: len(values)}
		stats.Mean = mean(values)
		stats.Std = std(values, stats.Mean)
		stats.Min, stats.Max = values[0], values[0]
		for _, v := range values[1:] {
			if v < stats.Min {
				stats.Min = v
			}
			if v > stats.Max {
				stats.Max = v
			}
		}
		out = append(out, stats)
	}
	return out
}

// Correlation computes the Pearson correlation matrix over numeric
// columns. With widenTime set, timestamp columns participate as epoch
// seconds. Requires at least two eligible columns; otherwise returns
// nils.
func Correlation(d *dataset.Dataset, widenTime bool) ([]string, [][]float64) {
	var cols []string
	series := make(map[string][]float64)
	for _, col := range d.Columns {
		values := numericValues(d, col, widenTime)
		if len(values) < 2 || len(values) != d.RowCount() {
			// Pairwise-complete handling is not worth it for a session
			// dashboard; columns with gaps are left out.
			continue
		}
		cols = append(cols, col)
		series[col] = values
	}
	if len(cols) < 2 {
		return nil, nil
	}

	matrix := make([][]float64, len(cols))
	for i, a := range cols {
		matrix[i] = make([]float64, len(cols))
		for j, b := range cols {
			matrix[i][j] = pearson(series[a], series[b])
		}
	}
	return cols, matrix
}

// isNumericColumn reports whether every non-null cell is a number and at
// least one exists.
func isNumericColumn(d *dataset.Dataset, col string) bool {
	seen := false
	for i := range d.Rows {
		v := d.Value(i, col)
		if v.IsNull() {
			continue
		}
		if v.Kind != dataset.KindNumber {
			return false
		}
		seen = true
	}
	return seen
}

func numericValues(d *dataset.Dataset, col string, widenTime bool) []float64 {
	var out []float64
	for i := range d.Rows {
		v := d.Value(i, col)
		switch v.Kind {
		case dataset.KindNumber:
			out = append(out, v.Num)
		case dataset.KindTime:
			if widenTime {
				out = append(out, float64(v.Time.Unix()))
			} else {
				return nil
			}
		case dataset.KindString:
			return nil
		}
	}
	return out
}

func columnMean(d *dataset.Dataset, col string) (float64, bool) {
	values := numericValues(d, col, false)
	if len(values) == 0 {
		return 0, false
	}
	return mean(values), true
}

// columnMode returns the most frequent non-null display value, ties
// broken by first appearance.
func columnMode(d *dataset.Dataset, col string) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for i := range d.Rows {
		v := d.Value(i, col)
		if v.IsNull() {
			continue
		}
		display := v.Display()
		if counts[display] == 0 {
			order = append(order, display)
		}
		counts[display]++
	}
	if len(order) == 0 {
		return "", false
	}
	best := order[0]
	for _, candidate := range order[1:] {
		if counts[candidate] > counts[best] {
			best = candidate
		}
	}
	return best, true
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func std(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func pearson(a, b []float64) float64 {
	ma, mb := mean(a), mean(b)
	var cov, va, vb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	if va == 0 || vb == 0 {
		return 0
	}
	return cov / math.Sqrt(va*vb)
}
