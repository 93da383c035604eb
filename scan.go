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

// Package mdscan implements the context-sensitive tokenizer that a
// generated incremental parser needs to split [CommonMark]-style Markdown
// into blocks and inline delimiters.
//
// The host parser owns the grammar; on each call it hands the scanner a
// one-byte-lookahead [Lexer] and a mask of the tokens it would currently
// accept. The scanner either emits exactly one token, usually a
// zero-width marker such as [BlockContinuation] or [EmphasisOpenStar],
// or declines. Everything context-sensitive lives here: the stack of open
// container blocks, tab-expanded column accounting, lazy continuation,
// and the flanking rules for emphasis delimiters.
//
// Scanner state round-trips through a compact byte image
// (see [Scanner.Serialize]) so the host can re-enter it at any
// incremental reparse boundary.
//
// [CommonMark]: https://commonmark.org/
package mdscan

// tabStopSize is the multiple of columns that a [tab] advances to.
//
// [tab]: https://spec.commonmark.org/0.30/#tabs
const tabStopSize = 4

// codeBlockIndent is the column width of the indent
// that starts or continues an indented code block.
const codeBlockIndent = 4

// linePhase tracks how far scanning has progressed into the current line.
type linePhase uint8

const (
	// phaseOpening: the whole line prefix (if any) matched;
	// new blocks may open here. This is the zero value so that a fresh
	// scanner starts a document in the opener phase.
	phaseOpening linePhase = iota
	// phaseMatching: reconsuming the opening syntax of each open block,
	// walking the stack from the outermost container. Only entered while
	// the stack is non-empty.
	phaseMatching
	// phaseInline: past the line start; only inline tokens remain.
	phaseInline
)

// A Scanner tokenizes the context-sensitive parts of a Markdown document
// on behalf of a host parser. The zero value is ready to use.
//
// A Scanner is not safe for concurrent use; the host serializes all calls.
type Scanner struct {
	// Options is configuration, not state: it is not part of the
	// serialized image and survives [Scanner.Deserialize].
	Options Options

	// openBlocks is the stack of open containers, outermost first.
	openBlocks []block
	// prefix is the stack index of the next block to match
	// while phase is phaseMatching.
	prefix int
	phase  linePhase

	// indentation counts leading columns of the current line that have
	// been consumed from the input but not yet claimed by a block.
	indentation int
	// column is the current tab-expanded column, reset at each line ending.
	column int

	// codeSpanDelimiter is the backtick run length of the pending
	// code span, if any.
	codeSpanDelimiter int

	// Emphasis delimiter runs are emitted one token per call;
	// these fields carry the run between calls.
	emphasisDelimiters     int
	emphasisDelimitersLeft int
	emphasisIsOpen         bool
}

// New returns a scanner with an empty block stack.
func New() *Scanner {
	return new(Scanner)
}

// Scan attempts to emit one token.
// It reports whether a token was produced;
// the token itself is delivered through lex's result symbol.
// Scan never emits a token whose entry in valid is unset, with one
// exception: the [BlockClose] and [BlockCloseLoose] tokens that pop open
// blocks at end of input, or when a line fails to match the block under
// the prefix cursor, are emitted without consulting valid.
func (s *Scanner) Scan(lex Lexer, valid *SymbolSet) bool {
	// At end of input any open blocks close first, one per call.
	if lex.EOF() {
		if len(s.openBlocks) == 0 {
			return false
		}
		s.popAndClose(lex)
		return true
	}

	if s.phase == phaseInline {
		return s.scanInline(lex, valid)
	}

	// Leading whitespace is consumed into the indentation budget
	// before any block matching on this line.
	if valid.Has(Indentation) && isSpaceTab(lex.Lookahead()) {
		for isSpaceTab(lex.Lookahead()) {
			s.indentation += s.advance(lex, true)
		}
		lex.SetResultSymbol(Indentation)
		return true
	}

	return s.scanLineStart(lex, valid)
}

// advance consumes one byte of lookahead and returns the number of
// columns consumed: a tab advances to the next tab stop, everything
// else is one column. skip excludes the byte from the token's extent.
func (s *Scanner) advance(lex Lexer, skip bool) int {
	size := 1
	if lex.Lookahead() == '\t' {
		size = tabStopSize - s.column%tabStopSize
	}
	s.column += size
	lex.Advance(skip)
	return size
}

// resetLine clears per-line state after a line ending.
func (s *Scanner) resetLine() {
	s.prefix = 0
	s.indentation = 0
	s.column = 0
	if len(s.openBlocks) == 0 {
		s.phase = phaseOpening
	} else {
		s.phase = phaseMatching
	}
}

// matchedContainer records that the container at the prefix cursor
// matched its continuation on this line.
func (s *Scanner) matchedContainer() {
	s.prefix++
	if s.prefix >= len(s.openBlocks) {
		s.prefix = len(s.openBlocks)
		s.phase = phaseOpening
	}
}

// matchedLeaf records that a leaf block (indented or fenced code)
// consumed the rest of the line-prefix walk; the opener phase
// must not run again for this line.
func (s *Scanner) matchedLeaf() {
	s.prefix = len(s.openBlocks)
	s.phase = phaseInline
}

// openContainer pushes a new container block; further blocks may still
// open on this line.
func (s *Scanner) openContainer(b block) {
	s.openBlocks = append(s.openBlocks, b)
	s.prefix = len(s.openBlocks)
	s.phase = phaseOpening
}

// openLeaf pushes a new leaf block; the rest of the line is its content.
func (s *Scanner) openLeaf(b block) {
	s.openBlocks = append(s.openBlocks, b)
	s.prefix = len(s.openBlocks)
	s.phase = phaseInline
}

// finishLineStart moves past the line-start phases without
// opening anything (a leaf marker token, MatchingDone, or
// lazy continuation was emitted).
func (s *Scanner) finishLineStart() {
	s.prefix = len(s.openBlocks)
	s.phase = phaseInline
}

// popAndClose removes the deepest open block and emits its close token.
func (s *Scanner) popAndClose(lex Lexer) {
	top := s.openBlocks[len(s.openBlocks)-1]
	s.openBlocks = s.openBlocks[:len(s.openBlocks)-1]
	if s.prefix > len(s.openBlocks) {
		s.prefix = len(s.openBlocks)
	}
	if s.phase == phaseMatching && s.prefix >= len(s.openBlocks) {
		s.prefix = len(s.openBlocks)
		s.phase = phaseOpening
	}
	if top.kind == listItem && top.loose {
		lex.SetResultSymbol(BlockCloseLoose)
	} else {
		lex.SetResultSymbol(BlockClose)
	}
}

// loosenListItems upgrades every tight list item on the stack to loose.
// Called when a blank line is emitted outside the line-prefix walk.
func (s *Scanner) loosenListItems() {
	for i := range s.openBlocks {
		if s.openBlocks[i].kind == listItem {
			s.openBlocks[i].loose = true
		}
	}
}

// matchedByte returns the serialized encoding of the prefix cursor and
// line phase: the prefix index while matching, the stack depth while
// opening, and one past the stack depth once the line start is done.
func (s *Scanner) matchedByte() byte {
	switch s.phase {
	case phaseMatching:
		return byte(s.prefix)
	case phaseOpening:
		return byte(len(s.openBlocks))
	default:
		return byte(len(s.openBlocks) + 1)
	}
}
