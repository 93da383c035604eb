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

// scanInline handles the mid-line phase: line endings, leftover virtual
// indentation, code span delimiters, and emphasis delimiter runs.
func (s *Scanner) scanInline(lex Lexer, valid *SymbolSet) bool {
	// Leftover indentation columns pay out one phantom space per call,
	// reconciling tab expansion with block content boundaries.
	if valid.Has(VirtualSpace) && s.indentation > 0 {
		s.indentation--
		lex.SetResultSymbol(VirtualSpace)
		return true
	}
	switch lex.Lookahead() {
	case '\r':
		if valid.Has(LineEnding) {
			s.advance(lex, true)
			if lex.Lookahead() == '\n' {
				s.advance(lex, true)
			}
			s.resetLine()
			lex.SetResultSymbol(LineEnding)
			return true
		}
	case '\n':
		if valid.Has(LineEnding) {
			s.advance(lex, true)
			s.resetLine()
			lex.SetResultSymbol(LineEnding)
			return true
		}
	case '`':
		return s.scanCodeSpanDelimiter(lex, valid)
	case '*':
		return s.scanEmphasis(lex, valid, '*', EmphasisOpenStar, EmphasisCloseStar)
	case '_':
		return s.scanEmphasis(lex, valid, '_', EmphasisOpenUnderscore, EmphasisCloseUnderscore)
	}
	return false
}

// scanCodeSpanDelimiter consumes a backtick run. A run whose length
// equals the pending span's opening run closes it; otherwise the run
// opens a new span and its length becomes the one to match.
func (s *Scanner) scanCodeSpanDelimiter(lex Lexer, valid *SymbolSet) bool {
	if !valid.Has(CodeSpanStart) && !valid.Has(CodeSpanClose) {
		return false
	}
	run := 0
	for lex.Lookahead() == '`' {
		s.advance(lex, false)
		run++
	}
	if run == s.codeSpanDelimiter && valid.Has(CodeSpanClose) {
		lex.SetResultSymbol(CodeSpanClose)
		return true
	}
	if valid.Has(CodeSpanStart) {
		s.codeSpanDelimiter = run
		lex.SetResultSymbol(CodeSpanStart)
		return true
	}
	return false
}

// scanEmphasis handles a run of identical emphasis delimiters. The first
// call consumes the whole run and classifies it as opening or closing
// via the flanking rules; the run then pays out one zero-width token per
// call, all with the polarity chosen at its head.
func (s *Scanner) scanEmphasis(lex Lexer, valid *SymbolSet, marker byte, open, close TokenType) bool {
	if s.emphasisDelimitersLeft > 0 {
		switch {
		case s.emphasisIsOpen && valid.Has(open):
			s.advance(lex, true)
			s.emphasisDelimitersLeft--
			lex.SetResultSymbol(open)
			return true
		case !s.emphasisIsOpen && valid.Has(close):
			s.advance(lex, true)
			s.emphasisDelimitersLeft--
			lex.SetResultSymbol(close)
			return true
		}
		return false
	}
	if !valid.Has(open) && !valid.Has(close) {
		return false
	}

	s.advance(lex, true)
	lex.MarkEnd()
	run := 1
	for lex.Lookahead() == marker {
		run++
		s.advance(lex, true)
	}
	s.emphasisDelimiters = run
	s.emphasisDelimitersLeft = run

	// The host reports the class of the previous inline token through
	// the mask; the class after the run comes from the lookahead.
	prevWhitespace := valid.Has(LastTokenWhitespace)
	prevPunct := valid.Has(LastTokenPunctuation)
	nextWhitespace, nextPunct := s.classifyLookahead(lex)
	left, right := flanking(prevWhitespace, prevPunct, nextWhitespace, nextPunct)

	mayOpen, mayClose := left, right
	if marker == '_' {
		// Intraword emphasis is forbidden for underscores.
		mayClose = right && (!left || nextPunct)
		mayOpen = left && (!right || prevPunct)
	}
	switch {
	case valid.Has(close) && mayClose:
		s.emphasisIsOpen = false
		s.emphasisDelimitersLeft--
		lex.SetResultSymbol(close)
		return true
	case valid.Has(open) && mayOpen:
		s.emphasisIsOpen = true
		s.emphasisDelimitersLeft--
		lex.SetResultSymbol(open)
		return true
	}
	return false
}

// flanking computes the CommonMark [left-flanking] and [right-flanking]
// classification of a delimiter run from the character classes on either
// side of it.
//
// [left-flanking]: https://spec.commonmark.org/0.30/#left-flanking-delimiter-run
// [right-flanking]: https://spec.commonmark.org/0.30/#right-flanking-delimiter-run
func flanking(prevWhitespace, prevPunct, nextWhitespace, nextPunct bool) (left, right bool) {
	left = !nextWhitespace && (!nextPunct || prevPunct || prevWhitespace)
	right = !prevWhitespace && (!prevPunct || nextPunct || nextWhitespace)
	return left, right
}

// classifyLookahead reports whether the lookahead is whitespace or
// punctuation for flanking purposes. The default classes are ASCII-only;
// Options.UnicodeClasses upgrades to Unicode classes when the lexer can
// decode runes.
func (s *Scanner) classifyLookahead(lex Lexer) (whitespace, punct bool) {
	if s.Options.UnicodeClasses {
		if rl, ok := lex.(RuneLookaheader); ok {
			r := rl.LookaheadRune()
			return isUnicodeWhitespace(r), isUnicodePunctuation(r)
		}
	}
	c := lex.Lookahead()
	return isASCIIWhitespace(c), isASCIIPunctuation(c)
}
