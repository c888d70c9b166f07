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
	"fmt"
	"strings"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

// RenderText produces the plain structured text report
func (a *Assembly) RenderText() []byte {
	var b strings.Builder

	b.WriteString("RELATÓRIO DE ANÁLISE TÉCNICA\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	writeMetaLine(&b, "Órgão", a.Meta.Organization)
	writeMetaLine(&b, "Unidade/Setor", a.Meta.Unit)
	writeMetaLine(&b, "Procedimento", a.Meta.CaseNumber)
	writeMetaLine(&b, "Analista responsável", a.Meta.Analyst)
	writeMetaLine(&b, "Autoridade requisitante", a.Meta.Requester)
	writeMetaLine(&b, "Fuso horário", a.timezoneLabel)
	writeMetaLine(&b, "Gerado em", a.Meta.GeneratedAt.Format(dataset.DisplayTimeLayout))
	if a.Meta.Observations != "" {
		writeMetaLine(&b, "Observações", a.Meta.Observations)
	}
	b.WriteString("\n")

	b.WriteString("1. RESUMO DOS ACHADOS\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Período analisado: %s\n", a.CoverageDisplay())
	fmt.Fprintf(&b, "Endereços IP distintos: %d\n", a.DistinctIPs)
	if len(a.TopIPs) > 0 {
		b.WriteString("IPs mais frequentes:\n")
		for i, entry := range a.TopIPs {
			fmt.Fprintf(&b, "  %d. %s (%d ocorrências)\n", i+1, entry.IP, entry.Count)
		}
	}
	for _, sentence := range a.Insights {
		b.WriteString(sentence + "\n")
	}
	b.WriteString("\n")

	b.WriteString("2. METODOLOGIA\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	b.WriteString(methodologyNote + "\n\n")

	b.WriteString("3. REGISTROS (DATA/HORA E IP)\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	if len(a.Table) == 0 {
		b.WriteString(InsufficientData + "\n")
	} else {
		fmt.Fprintf(&b, "%-22s %s\n", "Data/Hora", "Endereço IP")
		for _, row := range a.Table {
			fmt.Fprintf(&b, "%-22s %s\n", row.TimeDisplay, row.IPAddress)
		}
	}

	for _, notice := range a.Notices {
		b.WriteString("\nNota: " + notice + "\n")
	}

	return []byte(b.String())
}

func writeMetaLine(b *strings.Builder, label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Fprintf(b, "%-26s %s\n", label+":", value)
}
