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

package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

const chartTopValues = 10

// HandleCharts renders the interactive dashboard page: events per day
// over the guessed time column, the most frequent values of the guessed
// IP column, and a histogram of the first numeric column. Charts whose
// source column is missing are simply omitted.
func (h *Handlers) HandleCharts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ds := dataset.Normalize(h.session.Filtered(), h.location())
	timeCol, ipCol := dataset.GuessColumns(ds, h.cfg.TimeColumnCandidates)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	if line := eventsPerDayChart(ds, timeCol); line != nil {
		page.AddCharts(line)
	}
	if bar := topValuesChart(ds, ipCol, "Endereços IP mais frequentes"); bar != nil {
		page.AddCharts(bar)
	}
	if hist := histogramChart(ds); hist != nil {
		page.AddCharts(hist)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		log.Printf("Error rendering charts page: %v", err)
	}
}

func eventsPerDayChart(ds *dataset.Dataset, timeCol string) *charts.Line {
	if timeCol == "" {
		return nil
	}

	counts := make(map[string]int)
	for i := range ds.Rows {
		v := ds.Value(i, timeCol)
		if v.Kind != dataset.KindTime {
			continue
		}
		counts[v.Time.Format(time.DateOnly)]++
	}
	if len(counts) == 0 {
		return nil
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	items := make([]opts.LineData, 0, len(days))
	for _, day := range days {
		items = append(items, opts.LineData{Value: counts[day]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Eventos por dia"}))
	line.SetXAxis(days).AddSeries("eventos", items)
	return line
}

func topValuesChart(ds *dataset.Dataset, col, title string) *charts.Bar {
	if col == "" {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for i := range ds.Rows {
		v := ds.Value(i, col)
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
		return nil
	}

	firstSeen := make(map[string]int, len(order))
	for i, value := range order {
		firstSeen[value] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := counts[order[i]], counts[order[j]]
		if ci != cj {
			return ci > cj
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if len(order) > chartTopValues {
		order = order[:chartTopValues]
	}

	items := make([]opts.BarData, 0, len(order))
	for _, value := range order {
		items = append(items, opts.BarData{Value: counts[value]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	bar.SetXAxis(order).AddSeries("ocorrências", items)
	return bar
}

// histogramChart bins the first numeric column into ten equal-width
// buckets.
func histogramChart(ds *dataset.Dataset) *charts.Bar {
	var col string
	var values []float64
	for _, candidate := range ds.Columns {
		values = values[:0]
		for i := range ds.Rows {
			v := ds.Value(i, candidate)
			if v.Kind == dataset.KindNumber {
				values = append(values, v.Num)
			}
		}
		if len(values) > 0 {
			col = candidate
			break
		}
	}
	if col == "" {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	const bins = 10
	width := (hi - lo) / bins
	if width == 0 {
		width = 1
	}
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	labels := make([]string, bins)
	items := make([]opts.BarData, bins)
	for i := 0; i < bins; i++ {
		labels[i] = fmt.Sprintf("%.2f", lo+width*float64(i))
		items[i] = opts.BarData{Value: counts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Histograma: " + col}))
	bar.SetXAxis(labels).AddSeries("frequência", items)
	return bar
}
