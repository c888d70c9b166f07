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
	"regexp"
	"strings"
)

// Pattern-based extraction predates the label-driven scan and survives
// as a fallback for exports that list addresses and timestamps inline
// instead of as label/value pairs.

var (
	phonePattern = regexp.MustCompile(`\+?\d{1,3}[\s\-]?\(?\d{2,3}\)?[\s\-]?\d{4,5}[\s\-]?\d{4}`)

	// An address followed within 40 characters by an ISO-8601 UTC
	// timestamp is taken as one access event.
	ipv4EventPattern = regexp.MustCompile(`((?:\d{1,3}\.){3}\d{1,3}).{0,40}?(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z)`)
	ipv6EventPattern = regexp.MustCompile(`(?i)((?:[A-F0-9]{1,4}:){7}[A-F0-9]{1,4}).{0,40}?(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z)`)
)

// ExtractIPEvents scans markup-stripped text for IPv4/IPv6 addresses
// paired with a nearby UTC timestamp.
func ExtractIPEvents(text string) []Record {
	flat := strings.Join(StripMarkup(text), " ")

	var out []Record
	for _, pattern := range []*regexp.Regexp{ipv4EventPattern, ipv6EventPattern} {
		for _, match := range pattern.FindAllStringSubmatch(flat, -1) {
			out = append(out, Record{Time: match[2], IPAddress: match[1]})
		}
	}
	return out
}

// ExtractPhones scans markup-stripped text for phone numbers,
// deduplicated in first-seen order.
func ExtractPhones(text string) []string {
	flat := strings.Join(StripMarkup(text), " ")

	seen := make(map[string]bool)
	var out []string
	for _, match := range phonePattern.FindAllString(flat, -1) {
		trimmed := strings.TrimSpace(match)
		if !seen[trimmed] {
			seen[trimmed] = true
			out = append(out, trimmed)
		}
	}
	return out
}
