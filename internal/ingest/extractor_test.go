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

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/config"
)

func noisePrefixes() []string {
	return config.Default().NoisePrefixes
}

func TestExtract(t *testing.T) {
	t.Run("Label value pairs become records", func(t *testing.T) {
		text := "Time\n\n2024-01-05T10:00:00Z\nIP Address\n\n8.8.8.8\n" +
			"Time\n\n2024-01-06T11:00:00Z\nIP Addresses\n\n9.9.9.9\n"

		records := Extract(text, noisePrefixes())
		require.Len(t, records, 2)
		assert.Equal(t, Record{Time: "2024-01-05T10:00:00Z", IPAddress: "8.8.8.8"}, records[0])
		assert.Equal(t, Record{Time: "2024-01-06T11:00:00Z", IPAddress: "9.9.9.9"}, records[1])
	})

	t.Run("Boilerplate lines are skipped", func(t *testing.T) {
		text := "Service\nExample Provider\nAccount Identifier\n12345\n" +
			"Time\n2024-01-05T10:00:00Z\nIP\n8.8.8.8\n"

		records := Extract(text, noisePrefixes())
		require.Len(t, records, 1)
		assert.Equal(t, "8.8.8.8", records[0].IPAddress)
	})

	t.Run("Order of slots does not matter", func(t *testing.T) {
		text := "IP Address\n8.8.8.8\nTime\n2024-01-05T10:00:00Z\n"

		records := Extract(text, noisePrefixes())
		require.Len(t, records, 1)
		assert.Equal(t, "2024-01-05T10:00:00Z", records[0].Time)
	})

	t.Run("Incomplete trailing pair is dropped", func(t *testing.T) {
		text := "Time\n2024-01-05T10:00:00Z\nTime\n2024-01-06T11:00:00Z\n"
		assert.Empty(t, Extract(text, noisePrefixes()))
	})

	t.Run("Label at end of input without value", func(t *testing.T) {
		text := "IP Address\n8.8.8.8\nTime\n"
		assert.Empty(t, Extract(text, noisePrefixes()))
	})

	t.Run("Consumed value line is not re-read as label", func(t *testing.T) {
		// "IP Address" here is swallowed as the Time value, so the
		// address line that follows has no label and no record forms.
		text := "Time\nIP Address\n8.8.8.8\n"
		assert.Empty(t, Extract(text, noisePrefixes()))
	})

	t.Run("Labels are case-insensitive", func(t *testing.T) {
		text := "TIME\n2024-01-05T10:00:00Z\nip address\n8.8.8.8\n"
		require.Len(t, Extract(text, noisePrefixes()), 1)
	})

	t.Run("HTML markup is stripped first", func(t *testing.T) {
		text := "<html><body><div>Time</div><div>2024-01-05T10:00:00Z</div>" +
			"<div>IP Address</div><div>8.8.8.8</div></body></html>"

		records := Extract(text, noisePrefixes())
		require.Len(t, records, 1)
		assert.Equal(t, "8.8.8.8", records[0].IPAddress)
	})

	t.Run("Empty text yields no records", func(t *testing.T) {
		assert.Empty(t, Extract("", noisePrefixes()))
	})
}

func TestStripMarkup(t *testing.T) {
	t.Run("Plain text splits on newlines", func(t *testing.T) {
		lines := StripMarkup("a\r\nb\nc")
		assert.Equal(t, []string{"a", "b", "c"}, lines)
	})

	t.Run("Script and style content is dropped", func(t *testing.T) {
		lines := StripMarkup("<html><head><style>body{}</style></head>" +
			"<body><script>var x=1;</script><p>data</p></body></html>")

		assert.Contains(t, lines, "data")
		assert.NotContains(t, lines, "var x=1;")
		assert.NotContains(t, lines, "body{}")
	})
}
