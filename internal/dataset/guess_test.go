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
)

var guessCandidates = []string{"timestamp", "data", "datetime", "date", "hora", "data/hora"}

func TestGuessColumns(t *testing.T) {
	t.Run("Column named time wins regardless of content", func(t *testing.T) {
		d := New("Time", "Data")
		d.Append(map[string]Value{"Time": String("garbage"), "Data": String("2024-01-05T10:00:00Z")})

		timeCol, _ := GuessColumns(d, guessCandidates)
		assert.Equal(t, "Time", timeCol)
	})

	t.Run("Time-typed column picked second", func(t *testing.T) {
		d := New("Evento", "Quando")
		d.Append(map[string]Value{
			"Evento": String("login"),
			"Quando": Time(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), true),
		})

		timeCol, _ := GuessColumns(d, guessCandidates)
		assert.Equal(t, "Quando", timeCol)
	})

	t.Run("Candidate name needs at least one parseable row", func(t *testing.T) {
		d := New("Data")
		d.Append(map[string]Value{"Data": String("2024-01-05 10:00:00")})

		timeCol, _ := GuessColumns(d, guessCandidates)
		assert.Equal(t, "Data", timeCol)
	})

	t.Run("Candidate name with no parseable rows is rejected", func(t *testing.T) {
		d := New("Data")
		d.Append(map[string]Value{"Data": String("segunda-feira")})

		timeCol, _ := GuessColumns(d, guessCandidates)
		assert.Equal(t, "", timeCol)
	})

	t.Run("IP address name wins over contains rule", func(t *testing.T) {
		d := New("Equipamento", "IP Address")
		d.Append(map[string]Value{"Equipamento": String("router"), "IP Address": String("1.1.1.1")})

		_, ipCol := GuessColumns(d, guessCandidates)
		assert.Equal(t, "IP Address", ipCol)
	})

	t.Run("First column containing ip is the fallback", func(t *testing.T) {
		d := New("Evento", "Client IP")
		d.Append(map[string]Value{"Evento": String("login"), "Client IP": String("1.1.1.1")})

		_, ipCol := GuessColumns(d, guessCandidates)
		assert.Equal(t, "Client IP", ipCol)
	})

	t.Run("No match yields empty names", func(t *testing.T) {
		d := New("Evento")
		d.Append(map[string]Value{"Evento": String("login")})

		timeCol, ipCol := GuessColumns(d, guessCandidates)
		assert.Equal(t, "", timeCol)
		assert.Equal(t, "", ipCol)
	})

	t.Run("Nil dataset", func(t *testing.T) {
		timeCol, ipCol := GuessColumns(nil, guessCandidates)
		assert.Equal(t, "", timeCol)
		assert.Equal(t, "", ipCol)
	})
}
