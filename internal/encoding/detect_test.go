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

package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAndDecode(t *testing.T) {
	t.Run("Empty input", func(t *testing.T) {
		text, charset := DetectAndDecode(nil)
		assert.Equal(t, "", text)
		assert.Equal(t, "UTF-8", charset)
	})

	t.Run("ASCII passes through", func(t *testing.T) {
		text, _ := DetectAndDecode([]byte("Time\n2024-01-05T10:00:00Z\n"))
		assert.Equal(t, "Time\n2024-01-05T10:00:00Z\n", text)
	})

	t.Run("UTF-8 accents survive", func(t *testing.T) {
		input := "Relatório de análise: endereço\n" + strings.Repeat("registro de operação em português brasileiro.\n", 20)
		text, _ := DetectAndDecode([]byte(input))
		assert.Contains(t, text, "Relatório")
		assert.Contains(t, text, "endereço")
	})

	t.Run("Latin-1 bytes are decoded, never dropped", func(t *testing.T) {
		// "análise" with 0xE1 for á, repeated so the detector has signal
		latin1 := []byte(strings.Repeat("an\xe1lise de endere\xe7o em portugu\xeas do Brasil\n", 30))
		text, charset := DetectAndDecode(latin1)

		assert.NotEmpty(t, charset)
		assert.NotContains(t, text, "\x00")
		// Whatever charset was guessed, decoding must not fail and the
		// ASCII majority of the text must be intact.
		assert.Contains(t, text, "lise de endere")
	})

	t.Run("Invalid bytes become replacement characters", func(t *testing.T) {
		text := decodeUTF8Lossy([]byte{0x61, 0xff, 0x62})
		assert.Equal(t, "a�b", text)
	})
}
