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
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

// RenderHTML produces the self-contained marked-up report. Chart images
// are embedded inline as base64 data URIs so the file has no external
// references.
func (a *Assembly) RenderHTML() []byte {
	var meta strings.Builder
	metaRow(&meta, "Órgão", a.Meta.Organization)
	metaRow(&meta, "Unidade/Setor", a.Meta.Unit)
	metaRow(&meta, "Procedimento", a.Meta.CaseNumber)
	metaRow(&meta, "Analista responsável", a.Meta.Analyst)
	metaRow(&meta, "Autoridade requisitante", a.Meta.Requester)
	metaRow(&meta, "Fuso horário", a.timezoneLabel)
	metaRow(&meta, "Gerado em", a.Meta.GeneratedAt.Format(dataset.DisplayTimeLayout))
	if a.Meta.Observations != "" {
		metaRow(&meta, "Observações", a.Meta.Observations)
	}

	var findings strings.Builder
	fmt.Fprintf(&findings, "<p><strong>Período analisado:</strong> %s</p>\n", html.EscapeString(a.CoverageDisplay()))
	fmt.Fprintf(&findings, "<p><strong>Endereços IP distintos:</strong> %d</p>\n", a.DistinctIPs)
	if len(a.TopIPs) > 0 {
		findings.WriteString("<ol>\n")
		for _, entry := range a.TopIPs {
			fmt.Fprintf(&findings, "<li>%s (%d ocorrências)</li>\n", html.EscapeString(entry.IP), entry.Count)
		}
		findings.WriteString("</ol>\n")
	}
	findings.WriteString("<ul>\n")
	for _, sentence := range a.Insights {
		fmt.Fprintf(&findings, "<li>%s</li>\n", html.EscapeString(sentence))
	}
	findings.WriteString("</ul>\n")

	var charts strings.Builder
	writeInlineChart(&charts, "Eventos por dia", a.TimeSeriesPNG)
	writeInlineChart(&charts, "IPs mais frequentes", a.TopIPsPNG)
	for _, notice := range a.Notices {
		fmt.Fprintf(&charts, "<p class=\"notice\">%s</p>\n", html.EscapeString(notice))
	}

	var table strings.Builder
	if len(a.Table) == 0 {
		fmt.Fprintf(&table, "<p class=\"notice\">%s</p>\n", html.EscapeString(InsufficientData))
	} else {
		table.WriteString("<table>\n<tr><th>Data/Hora</th><th>Endereço IP</th></tr>\n")
		for _, row := range a.Table {
			fmt.Fprintf(&table, "<tr><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(row.TimeDisplay), html.EscapeString(row.IPAddress))
		}
		table.WriteString("</table>\n")
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <title>Relatório de Análise Técnica</title>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
        .container { max-width: 1000px; margin: 0 auto; background-color: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 30px; }
        h1 { font-weight: 300; color: #333; }
        h2 { color: #0891b2; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        table { border-collapse: collapse; width: 100%%; }
        th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; }
        th { background-color: #f8f9fa; }
        .meta td:first-child { font-weight: bold; width: 240px; }
        .notice { color: #b45309; }
        img { max-width: 100%%; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Relatório de Análise Técnica</h1>
        <table class="meta">
%s        </table>

        <h2>1. Resumo dos achados</h2>
%s
        <h2>2. Metodologia</h2>
        <p>%s</p>

%s
        <h2>3. Registros (data/hora e IP)</h2>
%s    </div>
</body>
</html>`,
		meta.String(), findings.String(), html.EscapeString(methodologyNote),
		charts.String(), table.String())

	return []byte(page)
}

func metaRow(b *strings.Builder, label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td></tr>\n",
		html.EscapeString(label), html.EscapeString(value))
}

func writeInlineChart(b *strings.Builder, title string, png []byte) {
	if len(png) == 0 {
		return
	}
	fmt.Fprintf(b, "<h2>%s</h2>\n<img alt=\"%s\" src=\"data:image/png;base64,%s\">\n",
		html.EscapeString(title), html.EscapeString(title),
		base64.StdEncoding.EncodeToString(png))
}
