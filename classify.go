// Copyright 2025 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package mdscan

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Options configures behavior that is not part of the serialized state.
type Options struct {
	// UnicodeClasses switches the emphasis flanking classifier from the
	// default ASCII character classes to [Unicode whitespace] and Unicode
	// punctuation-or-symbol. It only takes effect when the lexer can
	// decode full runes (implements [RuneLookaheader]); block structure
	// recognition stays byte-oriented either way.
	//
	// [Unicode whitespace]: https://spec.commonmark.org/0.30/#unicode-whitespace-character
	UnicodeClasses bool
}

// isASCIIPunctuation reports whether c is an [ASCII punctuation character].
//
// [ASCII punctuation character]: https://spec.commonmark.org/0.30/#ascii-punctuation-character
func isASCIIPunctuation(c byte) bool {
	return ('!' <= c && c <= '/') || (':' <= c && c <= '@') || ('[' <= c && c <= '`') || ('{' <= c && c <= '~')
}

// isASCIIWhitespace reports whether c is a space, tab, or line ending byte.
func isASCIIWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isSpaceTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isLineEnd(c byte) bool {
	return c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// punctOrSymbol is the union of the Unicode P and S categories,
// the classes the CommonMark flanking rules treat as punctuation.
var punctOrSymbol = rangetable.Merge(unicode.P, unicode.S)

func isUnicodePunctuation(r rune) bool {
	return unicode.Is(punctOrSymbol, r)
}

// isUnicodeWhitespace reports whether r is Unicode whitespace
// as CommonMark defines it: Zs plus tab, line feed, form feed,
// and carriage return.
func isUnicodeWhitespace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\f' || r == '\r' || unicode.Is(unicode.Zs, r)
}
