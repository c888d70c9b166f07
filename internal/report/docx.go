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
	"log"

	docx "github.com/fumiama/go-docx"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

// RenderDOCX produces the editable report. The backend is optional: when
// the startup probe failed the caller gets an UnavailableError and is
// expected to offer the other formats instead.
func (a *Assembly) RenderDOCX() ([]byte, error) {
	if !a.Caps.DOCX {
		return nil, &UnavailableError{Feature: "relatório DOCX", Reason: a.Caps.DOCXReason}
	}

	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Relatório de Análise Técnica").Size("32").Bold()
	doc.AddParagraph()

	docxMetaLine(doc, "Órgão", a.Meta.Organization)
	docxMetaLine(doc, "Unidade/Setor", a.Meta.Unit)
	docxMetaLine(doc, "Procedimento", a.Meta.CaseNumber)
	docxMetaLine(doc, "Analista responsável", a.Meta.Analyst)
	docxMetaLine(doc, "Autoridade requisitante", a.Meta.Requester)
	docxMetaLine(doc, "Fuso horário", a.timezoneLabel)
	docxMetaLine(doc, "Gerado em", a.Meta.GeneratedAt.Format(dataset.DisplayTimeLayout))
	if a.Meta.Observations != "" {
		docxMetaLine(doc, "Observações", a.Meta.Observations)
	}
	doc.AddParagraph()

	docxSectionTitle(doc, "1. Resumo dos achados")
	doc.AddParagraph().AddText(fmt.Sprintf("Período analisado: %s", a.CoverageDisplay()))
	doc.AddParagraph().AddText(fmt.Sprintf("Endereços IP distintos: %d", a.DistinctIPs))
	for i, entry := range a.TopIPs {
		doc.AddParagraph().AddText(fmt.Sprintf("%d. %s (%d ocorrências)", i+1, entry.IP, entry.Count))
	}
	for _, sentence := range a.Insights {
		doc.AddParagraph().AddText(sentence)
	}
	doc.AddParagraph()

	docxSectionTitle(doc, "2. Metodologia")
	doc.AddParagraph().AddText(methodologyNote)
	doc.AddParagraph()

	docxChart(doc, "Eventos por dia", a.TimeSeriesPNG)
	docxChart(doc, "IPs mais frequentes", a.TopIPsPNG)
	for _, notice := range a.Notices {
		doc.AddParagraph().AddText("Nota: " + notice).Italic()
	}

	docxSectionTitle(doc, "3. Registros (data/hora e IP)")
	if len(a.Table) == 0 {
		doc.AddParagraph().AddText(InsufficientData)
	} else {
		table := doc.AddTable(len(a.Table)+1, 2, 0, nil)
		header := table.TableRows[0]
		header.TableCells[0].AddParagraph().AddText("Data/Hora").Bold()
		header.TableCells[1].AddParagraph().AddText("Endereço IP").Bold()
		for i, row := range a.Table {
			cells := table.TableRows[i+1].TableCells
			cells[0].AddParagraph().AddText(row.TimeDisplay)
			cells[1].AddParagraph().AddText(row.IPAddress)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render DOCX: %w", err)
	}
	return buf.Bytes(), nil
}

func docxMetaLine(doc *docx.Docx, label, value string) {
	if value == "" {
		value = "-"
	}
	p := doc.AddParagraph()
	p.AddText(label + ": ").Bold()
	p.AddText(value)
}

func docxSectionTitle(doc *docx.Docx, title string) {
	doc.AddParagraph().AddText(title).Size("28").Bold()
}

func docxChart(doc *docx.Docx, title string, png []byte) {
	if len(png) == 0 {
		return
	}
	docxSectionTitle(doc, title)
	if _, err := doc.AddParagraph().AddInlineDrawing(png); err != nil {
		log.Printf("Embedding %q chart in DOCX failed: %v", title, err)
	}
	doc.AddParagraph()
}
