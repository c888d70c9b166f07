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

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Error closing store: %v", err)
		}
	})
	return store
}

func TestStoreUploads(t *testing.T) {
	store := testStore(t)

	first := &Upload{
		OriginalName: "export.txt",
		FileKind:     "text",
		Charset:      "UTF-8",
		FileSize:     120,
		RowCount:     2,
		UploadTime:   time.Now(),
	}
	require.NoError(t, store.InsertUpload(first))
	assert.NotZero(t, first.ID)

	second := &Upload{
		OriginalName: "dados.csv",
		FileKind:     "csv",
		Charset:      "ISO-8859-1",
		FileSize:     80,
		RowCount:     1,
		Notice:       "nenhum dado encontrado",
		UploadTime:   time.Now(),
	}
	require.NoError(t, store.InsertUpload(second))

	uploads, err := store.ListUploads()
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.Equal(t, "export.txt", uploads[0].OriginalName)
	assert.Equal(t, "nenhum dado encontrado", uploads[1].Notice)

	require.NoError(t, store.ClearUploads())
	uploads, err = store.ListUploads()
	require.NoError(t, err)
	assert.Empty(t, uploads)
}

func TestStoreReports(t *testing.T) {
	store := testStore(t)

	record := &ReportRecord{
		Format:      "pdf",
		CreatedTime: time.Now(),
		Artifact:    []byte("%PDF-1.4 fake"),
	}
	require.NoError(t, store.InsertReport(record))
	require.NotZero(t, record.ID)

	loaded, err := store.GetReport(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "pdf", loaded.Format)
	assert.Equal(t, record.Artifact, loaded.Artifact)

	_, err = store.GetReport(9999)
	assert.Error(t, err)
}

func TestStoreSettings(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.InitializeSettings(map[string]string{"timezone": "America/Sao_Paulo"}))

	value, err := store.GetSetting("timezone")
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", value)

	// Defaults never overwrite an existing value
	require.NoError(t, store.SetSetting("timezone", "UTC"))
	require.NoError(t, store.InitializeSettings(map[string]string{"timezone": "America/Sao_Paulo"}))
	value, err = store.GetSetting("timezone")
	require.NoError(t, err)
	assert.Equal(t, "UTC", value)

	settings, err := store.ListSettings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"timezone": "UTC"}, settings)
}

func TestSessionState(t *testing.T) {
	sess := New(testStore(t))

	t.Run("Starts empty", func(t *testing.T) {
		assert.Equal(t, 0, sess.Dataset().RowCount())
	})

	t.Run("SetDataset replaces wholesale and drops filter", func(t *testing.T) {
		d := dataset.New("ip")
		d.Append(map[string]dataset.Value{"ip": dataset.String("1.1.1.1")})
		d.Append(map[string]dataset.Value{"ip": dataset.String("2.2.2.2")})
		sess.SetDataset(d)
		sess.SetFilter(map[string][]string{"ip": {"1.1.1.1"}})
		assert.Equal(t, 1, sess.Filtered().RowCount())

		replacement := dataset.New("ip")
		replacement.Append(map[string]dataset.Value{"ip": dataset.String("3.3.3.3")})
		sess.SetDataset(replacement)

		assert.Nil(t, sess.Filter())
		assert.Equal(t, 1, sess.Filtered().RowCount())
		assert.Equal(t, "3.3.3.3", sess.Filtered().Value(0, "ip").Str)
	})

	t.Run("Nil dataset resets to empty", func(t *testing.T) {
		sess.SetDataset(nil)
		assert.Equal(t, 0, sess.Dataset().RowCount())
	})

	t.Run("Dataset returns a snapshot", func(t *testing.T) {
		d := dataset.New("ip")
		d.Append(map[string]dataset.Value{"ip": dataset.String("1.1.1.1")})
		sess.SetDataset(d)

		snapshot := sess.Dataset()
		snapshot.Rows[0]["ip"] = dataset.String("mutated")
		assert.Equal(t, "1.1.1.1", sess.Dataset().Value(0, "ip").Str)
	})
}
