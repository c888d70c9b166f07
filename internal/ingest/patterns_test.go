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

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIPEvents(t *testing.T) {
	t.Run("IPv4 followed by nearby timestamp", func(t *testing.T) {
		text := "login from 8.8.8.8 at 2024-01-05T10:00:00Z and later 187.10.2.1 at 2024-01-06T12:00:00Z"

		records := ExtractIPEvents(text)
		require.Len(t, records, 2)
		assert.Equal(t, Record{Time: "2024-01-05T10:00:00Z", IPAddress: "8.8.8.8"}, records[0])
		assert.Equal(t, Record{Time: "2024-01-06T12:00:00Z", IPAddress: "187.10.2.1"}, records[1])
	})

	t.Run("IPv6 addresses match too", func(t *testing.T) {
		text := "access 2001:0db8:85a3:0000:0000:8a2e:0370:7334 at 2024-01-05T10:00:00Z"

		records := ExtractIPEvents(text)
		require.Len(t, records, 1)
		assert.Equal(t, "2001:0db8:85a3:0000:0000:8a2e:0370:7334", records[0].IPAddress)
	})

	t.Run("Address without timestamp is ignored", func(t *testing.T) {
		assert.Empty(t, ExtractIPEvents("seen 8.8.8.8 yesterday"))
	})

	t.Run("Pairs spanning lines still match", func(t *testing.T) {
		text := "8.8.8.8\n2024-01-05T10:00:00Z"
		require.Len(t, ExtractIPEvents(text), 1)
	})
}

func TestExtractPhones(t *testing.T) {
	t.Run("Brazilian mobile formats", func(t *testing.T) {
		text := "contato: +55 11 91234-5678 ou (11) 91234-5678"

		phones := ExtractPhones(text)
		require.NotEmpty(t, phones)
		assert.Equal(t, "+55 11 91234-5678", phones[0])
	})

	t.Run("Duplicates collapse in first-seen order", func(t *testing.T) {
		text := "+55 11 91234-5678 e novamente +55 11 91234-5678"
		assert.Len(t, ExtractPhones(text), 1)
	})

	t.Run("No phones", func(t *testing.T) {
		assert.Empty(t, ExtractPhones("sem contatos"))
	})
}
