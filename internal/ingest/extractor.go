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
	"strings"

	"golang.org/x/net/html"
)

// Record is one reconstructed (timestamp, IP) pair recovered from a
// semi-structured export.
type Record struct {
	Time      string `json:"time"`
	IPAddress string `json:"ip_address"`
}

// ipLabels are the marker tokens that announce an IP value on the next
// line. Matching is exact after lowercasing and trimming; provider
// exports interleave label and value on separate lines with no fixed
// offset, so a label-driven scan is the minimal robust strategy.
var ipLabels = map[string]bool{
	"ip address":   true,
	"ip addresses": true,
	"ipaddress":    true,
	"ip":           true,
}

// Extract recovers (Time, IPAddress) records from decoded text. Markup
// is stripped to a line stream first, then boilerplate and blank lines
// are discarded, and the remaining lines are scanned label by label: a
// "time" line fills the Time slot from the next line, an IP label fills
// the IPAddress slot, and the pair is emitted as soon as both slots are
// set. A line consumed as a value is never re-read as a label. Text with
// no completed pair yields an empty slice.
func Extract(text string, noisePrefixes []string) []Record {
	lines := cleanLines(StripMarkup(text), noisePrefixes)

	var out []Record
	var current Record
	i := 0
	for i < len(lines) {
		label := strings.ToLower(strings.TrimSpace(lines[i]))
		switch {
		case label == "time":
			if i+1 < len(lines) {
				current.Time = lines[i+1]
				i += 2
			} else {
				i++
			}
		case ipLabels[label]:
			if i+1 < len(lines) {
				current.IPAddress = lines[i+1]
				i += 2
			} else {
				i++
			}
		default:
			i++
		}
		if current.Time != "" && current.IPAddress != "" {
			out = append(out, current)
			current = Record{}
		}
	}
	return out
}

// StripMarkup renders possibly HTML-tagged text as a plain line
// sequence. Element boundaries become line breaks so label and value
// never share a line. Text without markup is split on newlines.
func StripMarkup(text string) []string {
	if !strings.Contains(text, "<") {
		return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	}

	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			// A text node may itself span several lines
			for _, line := range strings.Split(n.Data, "\n") {
				lines = append(lines, line)
			}
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return lines
}

// cleanLines trims every line and discards blanks and boilerplate
func cleanLines(lines []string, noisePrefixes []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isNoise(trimmed, noisePrefixes) {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func isNoise(line string, noisePrefixes []string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
