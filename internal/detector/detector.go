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

package detector

import (
	"bytes"
	"path/filepath"
	"strings"
)

// FileKind constants
const (
	FileKindXLSX    = "xlsx"
	FileKindCSV     = "csv"
	FileKindHTML    = "html"
	FileKindText    = "text"
	FileKindUnknown = "unknown"
)

// xlsxMagic is the ZIP local file header; .xlsx files are ZIP containers.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DetectFileKind detects the kind of an uploaded file based on content
// first, then filename extension as fallback.
func DetectFileKind(filename string, content []byte) string {
	if len(content) > 0 {
		if bytes.HasPrefix(content, xlsxMagic) {
			return FileKindXLSX
		}
		if looksLikeHTML(content) {
			return FileKindHTML
		}
		if looksLikeCSV(content) {
			return FileKindCSV
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FileKindXLSX
	case ".csv":
		return FileKindCSV
	case ".html", ".htm":
		return FileKindHTML
	case ".txt":
		return FileKindText
	}

	if len(content) > 0 {
		return FileKindText
	}
	return FileKindUnknown
}

// looksLikeHTML checks the first kilobyte for markup that identifies an
// HTML export.
func looksLikeHTML(content []byte) bool {
	head := strings.ToLower(string(content[:min(1024, len(content))]))
	head = strings.TrimSpace(head)
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<table") ||
		strings.Contains(head, "<body")
}

// looksLikeCSV checks whether the leading lines consistently repeat one
// of the candidate delimiters.
func looksLikeCSV(content []byte) bool {
	head := string(content[:min(2048, len(content))])
	lines := headerLines(head, 3)
	if len(lines) < 2 {
		return false
	}
	delim := DetectDelimiter(head)
	if delim == 0 {
		return false
	}
	for _, line := range lines {
		if strings.Count(line, string(delim)) == 0 {
			return false
		}
	}
	return true
}

// DetectDelimiter infers the field delimiter of a CSV-like text by
// counting candidate delimiters over the leading lines. Returns 0 when
// no candidate appears.
func DetectDelimiter(text string) rune {
	lines := headerLines(text, 5)
	if len(lines) == 0 {
		return 0
	}
	candidates := []rune{',', ';', '\t', '|'}
	bestCount := 0
	var best rune
	for _, c := range candidates {
		count := 0
		for _, line := range lines {
			count += strings.Count(line, string(c))
		}
		if count > bestCount {
			bestCount = count
			best = c
		}
	}
	return best
}

// headerLines returns up to n non-empty leading lines
func headerLines(text string, n int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
