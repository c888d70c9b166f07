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
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// eventsPerDayPNG renders the per-day event count time series. Fewer
// than two distinct days cannot form a series; the chart is omitted
// (nil, nil) rather than treated as an error.
func eventsPerDayPNG(rows []TableRow) ([]byte, error) {
	buckets := make(map[time.Time]float64)
	for _, row := range rows {
		day := time.Date(row.when.Year(), row.when.Month(), row.when.Day(), 0, 0, 0, 0, row.when.Location())
		buckets[day]++
	}
	if len(buckets) < 2 {
		return nil, nil
	}

	days := make([]time.Time, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	counts := make([]float64, len(days))
	for i, day := range days {
		counts[i] = buckets[day]
	}

	graph := chart.Chart{
		Width:  900,
		Height: 360,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Eventos",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Eventos por dia",
				XValues: days,
				YValues: counts,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(64),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render time series chart: %w", err)
	}
	return buf.Bytes(), nil
}

// topIPsPNG renders the top-N IP frequency bar chart. An empty ranking
// omits the chart.
func topIPsPNG(top []IPCount) ([]byte, error) {
	if len(top) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(top))
	for _, entry := range top {
		bars = append(bars, chart.Value{
			Value: float64(entry.Count),
			Label: entry.IP,
		})
	}

	graph := chart.BarChart{
		Title:    "IPs mais frequentes",
		Width:    900,
		Height:   360,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}
