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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	t.Run("Empty text becomes null", func(t *testing.T) {
		assert.True(t, ParseCell("").IsNull())
		assert.True(t, ParseCell("   ").IsNull())
	})

	t.Run("Numbers become numeric", func(t *testing.T) {
		v := ParseCell("12.5")
		assert.Equal(t, KindNumber, v.Kind)
		assert.Equal(t, 12.5, v.Num)

		assert.Equal(t, KindNumber, ParseCell("0").Kind)
		assert.Equal(t, KindNumber, ParseCell("0.5").Kind)
		assert.Equal(t, KindNumber, ParseCell("-3").Kind)
	})

	t.Run("Leading-zero identifiers stay text", func(t *testing.T) {
		v := ParseCell("0800")
		assert.Equal(t, KindString, v.Kind)
		assert.Equal(t, "0800", v.Str)
	})

	t.Run("Text stays text", func(t *testing.T) {
		v := ParseCell(" login ")
		assert.Equal(t, KindString, v.Kind)
		assert.Equal(t, "login", v.Str)
	})
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "", Null().Display())
	assert.Equal(t, "abc", String("abc").Display())
	assert.Equal(t, "12.5", Number(12.5).Display())

	when := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/01/2024 10:00:00", Time(when, true).Display())
}

func TestAppend(t *testing.T) {
	t.Run("Unknown columns registered in encounter order", func(t *testing.T) {
		d := New("a")
		d.Append(map[string]Value{"a": Number(1), "b": String("x")})

		assert.Equal(t, []string{"a", "b"}, d.Columns)
	})

	t.Run("Missing cells padded with null", func(t *testing.T) {
		d := New("a", "b")
		d.Append(map[string]Value{"a": Number(1)})

		assert.True(t, d.Value(0, "b").IsNull())
	})

	t.Run("New column backfills null on old rows", func(t *testing.T) {
		d := New("a")
		d.Append(map[string]Value{"a": Number(1)})
		d.Append(map[string]Value{"a": Number(2), "b": String("x")})

		assert.True(t, d.Value(0, "b").IsNull())
		assert.Equal(t, "x", d.Value(1, "b").Str)
	})
}

func TestMerge(t *testing.T) {
	first := New("Time", "IP Address")
	first.Append(map[string]Value{"Time": String("t1"), "IP Address": String("1.1.1.1")})

	second := New("IP Address", "Evento")
	second.Append(map[string]Value{"IP Address": String("2.2.2.2"), "Evento": String("login")})

	merged := Merge(first, second)

	t.Run("Column union in first-seen order", func(t *testing.T) {
		assert.Equal(t, []string{"Time", "IP Address", "Evento"}, merged.Columns)
	})

	t.Run("Rows keep upload order", func(t *testing.T) {
		require.Equal(t, 2, merged.RowCount())
		assert.Equal(t, "1.1.1.1", merged.Value(0, "IP Address").Str)
		assert.Equal(t, "2.2.2.2", merged.Value(1, "IP Address").Str)
	})

	t.Run("Absent cells are null", func(t *testing.T) {
		assert.True(t, merged.Value(0, "Evento").IsNull())
		assert.True(t, merged.Value(1, "Time").IsNull())
	})

	t.Run("Nil parts ignored", func(t *testing.T) {
		assert.Equal(t, 2, Merge(nil, first, nil, second).RowCount())
	})

	t.Run("No parts yields empty dataset", func(t *testing.T) {
		empty := Merge()
		assert.Equal(t, 0, empty.RowCount())
		assert.Equal(t, 0, empty.ColumnCount())
	})
}

func TestFilter(t *testing.T) {
	d := New("ip", "evento")
	d.Append(map[string]Value{"ip": String("1.1.1.1"), "evento": String("login")})
	d.Append(map[string]Value{"ip": String("2.2.2.2"), "evento": String("login")})
	d.Append(map[string]Value{"ip": String("1.1.1.1"), "evento": String("logout")})

	t.Run("Whitelist keeps matching rows", func(t *testing.T) {
		out := d.Filter(map[string][]string{"ip": {"1.1.1.1"}})
		require.Equal(t, 2, out.RowCount())
		assert.Equal(t, "login", out.Value(0, "evento").Str)
		assert.Equal(t, "logout", out.Value(1, "evento").Str)
	})

	t.Run("Multiple columns intersect", func(t *testing.T) {
		out := d.Filter(map[string][]string{
			"ip":     {"1.1.1.1"},
			"evento": {"logout"},
		})
		assert.Equal(t, 1, out.RowCount())
	})

	t.Run("Empty value list places no restriction", func(t *testing.T) {
		out := d.Filter(map[string][]string{"ip": {}})
		assert.Equal(t, 3, out.RowCount())
	})

	t.Run("Empty selection keeps everything", func(t *testing.T) {
		assert.Equal(t, 3, d.Filter(nil).RowCount())
	})

	t.Run("Original is not mutated", func(t *testing.T) {
		out := d.Filter(map[string][]string{"ip": {"2.2.2.2"}})
		out.Rows[0]["ip"] = String("changed")
		assert.Equal(t, "2.2.2.2", d.Value(1, "ip").Str)
	})
}

func TestDistinctDisplay(t *testing.T) {
	d := New("ip")
	d.Append(map[string]Value{"ip": String("1.1.1.1")})
	d.Append(map[string]Value{"ip": String("2.2.2.2")})
	d.Append(map[string]Value{"ip": String("1.1.1.1")})
	d.Append(map[string]Value{"ip": Null()})

	assert.Equal(t, []string{"1.1.1.1", "2.2.2.2"}, d.DistinctDisplay("ip"))
}

func TestClone(t *testing.T) {
	d := New("a")
	d.Append(map[string]Value{"a": String("x")})

	clone := d.Clone()
	clone.Rows[0]["a"] = String("y")
	clone.Columns[0] = "b"

	assert.Equal(t, "x", d.Value(0, "a").Str)
	assert.Equal(t, "a", d.Columns[0])
}

func TestNilSafety(t *testing.T) {
	var d *Dataset
	assert.Equal(t, 0, d.RowCount())
	assert.Equal(t, 0, d.ColumnCount())
}
