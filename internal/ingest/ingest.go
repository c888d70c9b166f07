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

// Package ingest turns uploaded file bytes into datasets: tabular
// formats are parsed directly, unstructured exports go through the
// label-driven record extractor.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/config"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/detector"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/encoding"
)

// Canonical column names produced by record extraction
const (
	TimeColumn  = "Time"
	IPColumn    = "IP Address"
	PhoneColumn = "Telefone"
)

// NoticeNoData is the per-file notice when nothing extractable was found
const NoticeNoData = "nenhum dado encontrado"

// FileResult is the outcome of ingesting one uploaded file. A file that
// yields no data is a notice, not an error; Err is reserved for
// malformed containers (e.g. a corrupt spreadsheet).
type FileResult struct {
	Name    string
	Kind    string
	Charset string
	Dataset *dataset.Dataset
	Notice  string
	Err     error
}

// ReadFile ingests one uploaded file: detects its kind, decodes text
// formats, and parses a dataset out of it.
func ReadFile(name string, raw []byte, cfg *config.Config) FileResult {
	result := FileResult{Name: name, Kind: detector.DetectFileKind(name, raw)}

	switch result.Kind {
	case detector.FileKindXLSX:
		ds, err := parseXLSX(raw)
		result.Dataset, result.Err = ds, err
	case detector.FileKindCSV:
		text, charset := encoding.DetectAndDecode(raw)
		result.Charset = charset
		ds, err := parseCSV(text)
		result.Dataset, result.Err = ds, err
	case detector.FileKindHTML:
		text, charset := encoding.DetectAndDecode(raw)
		result.Charset = charset
		result.Dataset = parseHTML(text, cfg)
	case detector.FileKindText:
		text, charset := encoding.DetectAndDecode(raw)
		result.Charset = charset
		result.Dataset = extractDataset(text, cfg)
	default:
		result.Notice = fmt.Sprintf("tipo de arquivo não suportado: %s", name)
		return result
	}

	if result.Err == nil && result.Dataset.RowCount() == 0 && result.Notice == "" {
		result.Notice = NoticeNoData
	}
	return result
}

// parseXLSX reads the first sheet of a spreadsheet; the first row is the
// header.
func parseXLSX(raw []byte) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataset.New(), nil
	}
	return tableToDataset(rows[0], rows[1:]), nil
}

// parseCSV reads delimiter-inferred CSV text; the first record is the
// header.
func parseCSV(text string) (*dataset.Dataset, error) {
	delim := detector.DetectDelimiter(text)
	if delim == 0 {
		delim = ','
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return dataset.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		records = append(records, record)
	}
	return tableToDataset(header, records), nil
}

// parseHTML prefers the first <table> in the document; when there is
// none, the text falls through to record extraction.
func parseHTML(text string, cfg *config.Config) *dataset.Dataset {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return extractDataset(text, cfg)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return extractDataset(text, cfg)
	}

	var header []string
	var records [][]string
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		if header == nil {
			header = cells
			return
		}
		records = append(records, cells)
	})
	if header == nil {
		return extractDataset(text, cfg)
	}

	ds := tableToDataset(header, records)
	if ds.RowCount() == 0 {
		// A bare layout table carries no rows; the real data may still
		// be label/value text around it.
		if fallback := extractDataset(text, cfg); fallback.RowCount() > 0 {
			return fallback
		}
	}
	return ds
}

// extractDataset runs the label-driven extractor and, when that finds
// nothing, the older pattern scan for inline events and phone numbers.
func extractDataset(text string, cfg *config.Config) *dataset.Dataset {
	records := Extract(text, cfg.NoisePrefixes)
	if len(records) == 0 {
		records = ExtractIPEvents(text)
	}

	ds := dataset.New(TimeColumn, IPColumn)
	for _, rec := range records {
		ds.Append(map[string]dataset.Value{
			TimeColumn: dataset.String(rec.Time),
			IPColumn:   dataset.String(rec.IPAddress),
		})
	}

	if ds.RowCount() == 0 {
		if phones := ExtractPhones(text); len(phones) > 0 {
			phoneDS := dataset.New(PhoneColumn)
			for _, phone := range phones {
				phoneDS.Append(map[string]dataset.Value{
					PhoneColumn: dataset.String(phone),
				})
			}
			return phoneDS
		}
	}
	return ds
}

// tableToDataset converts a header plus records into a dataset. Rows
// shorter than the header are padded with nulls; extra cells are
// dropped.
func tableToDataset(header []string, records [][]string) *dataset.Dataset {
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		columns[i] = name
	}

	ds := dataset.New(columns...)
	for _, record := range records {
		row := make(map[string]dataset.Value, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = dataset.ParseCell(record[i])
			} else {
				row[col] = dataset.Null()
			}
		}
		ds.Append(row)
	}
	return ds
}
