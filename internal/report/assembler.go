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

// Package report assembles the investigative report: the canonical
// time/IP table, coverage and frequency findings, chart images, and the
// TXT/HTML/DOCX/PDF renderings.
package report

import (
	"log"
	"sort"
	"time"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/config"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/insights"
)

// CoverageUnknown is printed when no time column could be identified
const CoverageUnknown = "não identificado"

// InsufficientData is the note rendered instead of an empty table
const InsufficientData = "Dados insuficientes: nenhuma coluna de data/hora e IP foi identificada nos arquivos carregados."

// methodologyNote is the fixed methodology section of every report
const methodologyNote = "Os arquivos fornecidos foram decodificados com detecção " +
	"automática de codificação, normalizados para o fuso horário alvo e " +
	"consolidados em uma tabela única de eventos (data/hora e endereço IP), " +
	"ordenada do registro mais recente para o mais antigo. Estatísticas " +
	"descritivas foram calculadas sobre o conjunto consolidado."

// Metadata is the report header block, captured once per request and
// immutable afterwards.
type Metadata struct {
	Organization string    `json:"organization"`
	Unit         string    `json:"unit"`
	CaseNumber   string    `json:"case_number"`
	Analyst      string    `json:"analyst"`
	Requester    string    `json:"requester"`
	TimezoneName string    `json:"timezone"`
	Observations string    `json:"observations,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// IPCount is one entry of the frequency ranking
type IPCount struct {
	IP    string `json:"ip"`
	Count int    `json:"count"`
}

// Assembly holds everything the renderers need: findings computed once,
// rendered per format on demand.
type Assembly struct {
	Meta     Metadata
	Caps     Capabilities
	Table    []TableRow
	Insights []string

	CoverageStart time.Time
	CoverageEnd   time.Time
	CoverageKnown bool

	DistinctIPs int
	TopIPs      []IPCount

	TimeSeriesPNG []byte
	TopIPsPNG     []byte
	Notices       []string

	letterheadPath string
	timezoneLabel  string
}

// NewAssembly computes the report findings over the filtered dataset,
// falling back to the base dataset when the filter selection removed
// everything. Charts are optional: a missing column or an empty series
// produces an omission notice, never an error.
func NewAssembly(base, filtered *dataset.Dataset, includeCharts bool, meta Metadata, caps Capabilities, cfg *config.Config) *Assembly {
	ds := filtered
	if ds.RowCount() == 0 {
		ds = base
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC: %v", cfg.TimezoneName, err)
		loc = time.UTC
	}

	a := &Assembly{
		Meta:           meta,
		Caps:           caps,
		Table:          BuildTable(ds, cfg.TimeColumnCandidates, loc),
		Insights:       insights.Summarize(ds),
		letterheadPath: cfg.LetterheadPath,
		timezoneLabel:  cfg.TimezoneLabel,
	}

	// Coverage comes from the time column itself, not the table: rows
	// dropped for lacking an IP address still bound the observed period.
	a.CoverageStart, a.CoverageEnd, a.CoverageKnown =
		coverageWindow(ds, cfg.TimeColumnCandidates, loc)

	a.TopIPs = topIPs(a.Table, cfg.ReportTopN)
	a.DistinctIPs = distinctIPs(a.Table)

	if includeCharts {
		a.buildCharts()
	}
	return a
}

func (a *Assembly) buildCharts() {
	series, err := eventsPerDayPNG(a.Table)
	if err != nil {
		log.Printf("Time series chart failed: %v", err)
		a.Notices = append(a.Notices, "Gráfico de eventos por dia omitido: falha na geração.")
	} else if series == nil {
		a.Notices = append(a.Notices, "Gráfico de eventos por dia omitido: dados insuficientes.")
	} else {
		a.TimeSeriesPNG = series
	}

	bar, err := topIPsPNG(a.TopIPs)
	if err != nil {
		log.Printf("Top IP chart failed: %v", err)
		a.Notices = append(a.Notices, "Gráfico de IPs mais frequentes omitido: falha na geração.")
	} else if bar == nil {
		a.Notices = append(a.Notices, "Gráfico de IPs mais frequentes omitido: dados insuficientes.")
	} else {
		a.TopIPsPNG = bar
	}
}

// CoverageDisplay formats the observed period, or the unknown marker
func (a *Assembly) CoverageDisplay() string {
	if !a.CoverageKnown {
		return CoverageUnknown
	}
	return a.CoverageStart.Format(dataset.DisplayTimeLayout) + " a " +
		a.CoverageEnd.Format(dataset.DisplayTimeLayout)
}

// topIPs ranks addresses by descending frequency, ties broken by first
// appearance in the table.
func topIPs(rows []TableRow, n int) []IPCount {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		if counts[row.IPAddress] == 0 {
			order = append(order, row.IPAddress)
		}
		counts[row.IPAddress]++
	}

	firstSeen := make(map[string]int, len(order))
	for i, ip := range order {
		firstSeen[ip] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := counts[order[i]], counts[order[j]]
		if ci != cj {
			return ci > cj
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	out := make([]IPCount, 0, len(order))
	for _, ip := range order {
		out = append(out, IPCount{IP: ip, Count: counts[ip]})
	}
	return out
}

func distinctIPs(rows []TableRow) int {
	seen := make(map[string]bool)
	for _, row := range rows {
		seen[row.IPAddress] = true
	}
	return len(seen)
}
