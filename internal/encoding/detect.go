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

// Package encoding guesses the charset of uploaded byte buffers and
// decodes them to UTF-8 text. Decoding never fails: undecodable byte
// sequences become the replacement character.
package encoding

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/ianaindex"
)

// DetectAndDecode runs a statistical charset detector over raw and
// decodes with the guessed encoding. When detection or decoding fails it
// falls back to UTF-8 with replacement-character substitution. The
// returned charset is the IANA name actually used.
func DetectAndDecode(raw []byte) (text string, charset string) {
	if len(raw) == 0 {
		return "", "UTF-8"
	}

	detector := chardet.NewTextDetector()
	best, err := detector.DetectBest(raw)
	if err == nil && best != nil && best.Charset != "" {
		if decoded, ok := decodeAs(raw, best.Charset); ok {
			return decoded, best.Charset
		}
	}

	return decodeUTF8Lossy(raw), "UTF-8"
}

// decodeAs decodes raw using the named IANA charset. x/text decoders
// substitute undecodable sequences with U+FFFD instead of failing, which
// is exactly the replacement policy we want.
func decodeAs(raw []byte, name string) (string, bool) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", false
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

// decodeUTF8Lossy interprets raw as UTF-8, replacing invalid sequences
// with U+FFFD.
func decodeUTF8Lossy(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var b strings.Builder
	b.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		b.WriteRune(r)
		raw = raw[size:]
	}
	return b.String()
}
