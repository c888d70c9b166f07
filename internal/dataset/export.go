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

package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ToCSV encodes the dataset as UTF-8 CSV with a header row and no index
// column.
func ToCSV(d *Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(d.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(d.Columns))
	for i := range d.Rows {
		for j, col := range d.Columns {
			record[j] = d.Value(i, col).Display()
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ToJSON encodes the dataset as an array of row objects. Non-ASCII text
// is preserved as-is rather than escaped.
func ToJSON(d *Dataset) ([]byte, error) {
	rows := make([]map[string]Value, 0, len(d.Rows))
	for i := range d.Rows {
		row := make(map[string]Value, len(d.Columns))
		for _, col := range d.Columns {
			row[col] = d.Value(i, col)
		}
		rows = append(rows, row)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// ToXLSX encodes the dataset as a spreadsheet with a header row.
// Timestamp cells are written as naive wall-clock text in the zone they
// carry, because the spreadsheet format cannot represent zone info.
func ToXLSX(d *Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	for j, col := range d.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}
	for i := range d.Rows {
		for j, col := range d.Columns {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			v := d.Value(i, col)
			var cellValue interface{}
			switch v.Kind {
			case KindNumber:
				cellValue = v.Num
			case KindNull:
				continue
			default:
				cellValue = v.Display()
			}
			if err := f.SetCellValue(sheet, cell, cellValue); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
