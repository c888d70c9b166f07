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
	"io"

	docx "github.com/fumiama/go-docx"
	"github.com/jung-kurt/gofpdf"
)

// Capabilities reports which optional document backends work in this
// runtime. Probed once at startup and consulted by the assembler; a
// backend that fails its probe is reported with an actionable reason
// instead of failing mid-report.
type Capabilities struct {
	DOCX       bool   `json:"docx"`
	PDF        bool   `json:"pdf"`
	DOCXReason string `json:"docx_reason,omitempty"`
	PDFReason  string `json:"pdf_reason,omitempty"`
}

// UnavailableError signals a missing optional capability, distinct from
// a data error.
type UnavailableError struct {
	Feature string
	Reason  string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("recurso indisponível: %s (%s)", e.Feature, e.Reason)
}

// ProbeCapabilities renders a minimal in-memory document with each
// backend once and records the outcome.
func ProbeCapabilities() Capabilities {
	caps := Capabilities{DOCX: true, PDF: true}

	if err := probeDOCX(); err != nil {
		caps.DOCX = false
		caps.DOCXReason = err.Error()
	}
	if err := probePDF(); err != nil {
		caps.PDF = false
		caps.PDFReason = err.Error()
	}
	return caps
}

func probeDOCX() error {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("probe")
	_, err := doc.WriteTo(io.Discard)
	return err
}

func probePDF() error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(10, 10, "probe")
	var buf bytes.Buffer
	return pdf.Output(&buf)
}
