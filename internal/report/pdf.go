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
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

// RenderPDF produces the page-oriented report. Unlike DOCX there is no
// degraded fallback: an unavailable backend is a hard error for this
// format.
func (a *Assembly) RenderPDF() ([]byte, error) {
	if !a.Caps.PDF {
		return nil, &UnavailableError{Feature: "relatório PDF", Reason: a.Caps.PDFReason}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Página %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	if _, err := os.Stat(a.letterheadPath); err == nil {
		pdf.ImageOptions(a.letterheadPath, 10, 10, 190, 0, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		pdf.Ln(30)
	}

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório de Análise Técnica"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdfMetaLine(pdf, tr, "Órgão", a.Meta.Organization)
	pdfMetaLine(pdf, tr, "Unidade/Setor", a.Meta.Unit)
	pdfMetaLine(pdf, tr, "Procedimento", a.Meta.CaseNumber)
	pdfMetaLine(pdf, tr, "Analista responsável", a.Meta.Analyst)
	pdfMetaLine(pdf, tr, "Autoridade requisitante", a.Meta.Requester)
	pdfMetaLine(pdf, tr, "Fuso horário", a.timezoneLabel)
	pdfMetaLine(pdf, tr, "Gerado em", a.Meta.GeneratedAt.Format(dataset.DisplayTimeLayout))
	if a.Meta.Observations != "" {
		pdfMetaLine(pdf, tr, "Observações", a.Meta.Observations)
	}
	pdf.Ln(4)

	pdfSectionTitle(pdf, tr, "1. Resumo dos achados")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Período analisado: %s", a.CoverageDisplay())), "", "L", false)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Endereços IP distintos: %d", a.DistinctIPs)), "", "L", false)
	for i, entry := range a.TopIPs {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("  %d. %s (%d ocorrências)", i+1, entry.IP, entry.Count)), "", "L", false)
	}
	for _, sentence := range a.Insights {
		pdf.MultiCell(0, 5, tr(sentence), "", "L", false)
	}
	pdf.Ln(2)

	pdfSectionTitle(pdf, tr, "2. Metodologia")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, tr(methodologyNote), "", "L", false)
	pdf.Ln(2)

	pdfChart(pdf, tr, "Eventos por dia", "chart_series", a.TimeSeriesPNG)
	pdfChart(pdf, tr, "IPs mais frequentes", "chart_bars", a.TopIPsPNG)
	for _, notice := range a.Notices {
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr("Nota: "+notice), "", "L", false)
	}

	pdfSectionTitle(pdf, tr, "3. Registros (data/hora e IP)")
	if len(a.Table) == 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(InsufficientData), "", "L", false)
	} else {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 7, tr("Data/Hora"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr("Endereço IP"), "1", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, row := range a.Table {
			pdf.CellFormat(60, 6, row.TimeDisplay, "1", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, tr(row.IPAddress), "1", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfMetaLine(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		value = "-"
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(55, 6, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}

func pdfSectionTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
}

func pdfChart(pdf *gofpdf.Fpdf, tr func(string) string, title, name string, png []byte) {
	if len(png) == 0 {
		return
	}
	pdfSectionTitle(pdf, tr, title)
	pdf.RegisterImageOptionsReader(name,
		gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(name, 10, pdf.GetY(), 190, 0, true,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.Ln(4)
}
