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

package config

import "time"

// Config holds the runtime configuration for the dashboard service
type Config struct {
	Port string

	// SessionDBPath is the SQLite path for the session store. The default
	// ":memory:" keeps the store alive only for the lifetime of one
	// analyst session.
	SessionDBPath string

	// TimezoneName is the IANA name of the target zone used for all
	// display and report timestamps.
	TimezoneName string

	// TimezoneLabel is the human-readable label printed in reports.
	TimezoneLabel string

	// TimeColumnCandidates are column names (lowercase) that may hold
	// timestamps in real-world exports. Treated as configuration because
	// export formats vary between providers.
	TimeColumnCandidates []string

	// NoisePrefixes are boilerplate line prefixes (lowercase) discarded
	// before record extraction. These match the headers that law
	// enforcement export formats repeat between label/value pairs.
	NoisePrefixes []string

	// LetterheadPath is the relative path of the letterhead image placed
	// at the top of page-oriented reports when the file exists.
	LetterheadPath string

	// ReportTopN is how many most-frequent IPs the report lists.
	ReportTopN int

	// MaxUploadBytes caps the multipart form size per upload request.
	MaxUploadBytes int64
}

// Default returns the configuration used when no flag overrides it
func Default() *Config {
	return &Config{
		Port:          "8080",
		SessionDBPath: ":memory:",
		TimezoneName:  "America/Sao_Paulo",
		TimezoneLabel: "UTC-3 (America/Sao_Paulo)",
		TimeColumnCandidates: []string{
			"timestamp", "data", "datetime", "date", "hora", "data/hora",
		},
		NoisePrefixes: []string{
			"service",
			"account identifier",
			"account type",
			"generated",
			"date range",
			"definition",
			"preservation",
		},
		LetterheadPath: "assets/letterhead.png",
		ReportTopN:     5,
		MaxUploadBytes: 100 << 20,
	}
}

// Location resolves the configured target zone
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimezoneName)
}
