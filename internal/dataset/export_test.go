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
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture() *Dataset {
	d := New("Time", "IP Address", "Tentativas")
	d.Append(map[string]Value{
		"Time":       Time(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), true),
		"IP Address": String("8.8.8.8"),
		"Tentativas": Number(3),
	})
	d.Append(map[string]Value{
		"Time":       Null(),
		"IP Address": String("187.10.2.1"),
		"Tentativas": Number(1.5),
	})
	return d
}

func TestToCSV(t *testing.T) {
	data, err := ToCSV(exportFixture())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Time", "IP Address", "Tentativas"}, records[0])
	assert.Equal(t, []string{"05/01/2024 10:00:00", "8.8.8.8", "3"}, records[1])
	assert.Equal(t, []string{"", "187.10.2.1", "1.5"}, records[2])
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(exportFixture())
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "05/01/2024 10:00:00", rows[0]["Time"])
	assert.Equal(t, "8.8.8.8", rows[0]["IP Address"])
	assert.Equal(t, float64(3), rows[0]["Tentativas"])
	assert.Nil(t, rows[1]["Time"])
}

func TestToXLSX(t *testing.T) {
	data, err := ToXLSX(exportFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Time", "IP Address", "Tentativas"}, rows[0])
	assert.Equal(t, "05/01/2024 10:00:00", rows[1][0])
	assert.Equal(t, "8.8.8.8", rows[1][1])
}
