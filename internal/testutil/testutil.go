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

package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/config"
)

// TestConfig creates a test configuration backed by an in-memory store
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.SessionDBPath = ":memory:"
	return cfg
}

// TargetLocation resolves the configured test timezone
func TargetLocation(t *testing.T) *time.Location {
	t.Helper()

	loc, err := TestConfig(t).Location()
	require.NoError(t, err)
	return loc
}

// TestFile represents a test file fixture
type TestFile struct {
	Name    string
	Content []byte
}

// SampleFiles provides common test file fixtures
var SampleFiles = map[string]TestFile{
	"label_export": {
		Name: "export.txt",
		Content: []byte("Service\nExample Provider\nTime\n\n2024-01-05T10:00:00Z\nIP Address\n\n8.8.8.8\n" +
			"Time\n\n2024-01-06 08:30:00\nIP Addresses\n\n187.10.2.1\n"),
	},
	"csv_semicolon": {
		Name:    "registros.csv",
		Content: []byte("Data;IP;Evento\n2024-01-05 10:00:00;8.8.8.8;login\n2024-01-06 08:30:00;187.10.2.1;logout\n"),
	},
	"html_table": {
		Name: "export.html",
		Content: []byte(`<html><body><table>
<tr><th>Timestamp</th><th>IP Address</th></tr>
<tr><td>2024-01-05T10:00:00Z</td><td>8.8.8.8</td></tr>
<tr><td>2024-01-06T12:00:00Z</td><td>187.10.2.1</td></tr>
</table></body></html>`),
	},
	"inline_events": {
		Name:    "inline.txt",
		Content: []byte("login from 8.8.8.8 at 2024-01-05T10:00:00Z and later 187.10.2.1 at 2024-01-06T12:00:00Z\n"),
	},
	"empty": {
		Name:    "vazio.txt",
		Content: []byte("nothing of interest here\n"),
	},
}
