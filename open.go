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

// lineCursor consumes lookahead on behalf of the opener recognizers.
// The emit path points column at the scanner's own counter; the lazy
// probe points it at a local copy and suppresses end marks, so probing
// leaves scanner state untouched.
type lineCursor struct {
	lex    Lexer
	column *int
	mark   bool
}

func (s *Scanner) cursor(lex Lexer) *lineCursor {
	return &lineCursor{lex: lex, column: &s.column, mark: true}
}

func (c *lineCursor) lookahead() byte {
	return c.lex.Lookahead()
}

// advance consumes one byte into the token's extent,
// returning the columns consumed.
func (c *lineCursor) advance() int {
	size := 1
	if c.lex.Lookahead() == '\t' {
		size = tabStopSize - *c.column%tabStopSize
	}
	*c.column += size
	c.lex.Advance(false)
	return size
}

func (c *lineCursor) markEnd() {
	if c.mark {
		c.lex.MarkEnd()
	}
}

// dispatchLineStart recognizes block continuations and new block openings
// keyed on the lookahead byte. It returns false without emitting when the
// byte starts none of them; callers fall back to fence continuation,
// lazy continuation, block close, or MatchingDone.
func (s *Scanner) dispatchLineStart(lex Lexer, valid *SymbolSet, matching bool) bool {
	switch c := lex.Lookahead(); c {
	case '\n', '\r':
		if valid.Has(BlankLine) && !matching {
			s.finishLineStart()
			s.loosenListItems()
			lex.SetResultSymbol(BlankLine)
			return true
		}
	case '>':
		return s.scanBlockQuoteMarker(lex, valid, matching)
	case '~':
		return s.scanFence(lex, valid, matching, '~')
	case '`':
		return s.scanFence(lex, valid, matching, '`')
	case '#':
		return s.scanATXMarker(lex, valid, matching)
	case '=':
		return s.scanSetextH1(lex, valid, matching)
	case '+':
		return s.scanPlusListMarker(lex, valid, matching)
	case '-':
		return s.scanMinusLine(lex, valid, matching)
	case '*':
		return s.scanStarLine(lex, valid, matching)
	case '_':
		return s.scanUnderscoreLine(lex, valid, matching)
	default:
		if isDigit(c) {
			return s.scanOrderedListMarker(lex, valid, matching)
		}
	}
	return false
}

// scanBlockQuoteMarker consumes `>` plus up to one following space or
// tab, as a continuation of the block quote under the prefix cursor or
// as the opening of a new one. The consumed whitespace counts toward the
// quote's content, so the indentation budget restarts after it.
func (s *Scanner) scanBlockQuoteMarker(lex Lexer, valid *SymbolSet, matching bool) bool {
	opening := !matching && valid.Has(BlockQuoteStart) && s.indentation <= 3
	continuing := matching && valid.Has(BlockContinuation) && s.openBlocks[s.prefix].kind == blockQuote
	if !opening && !continuing {
		return false
	}
	s.advance(lex, false)
	s.indentation = 0
	if isSpaceTab(lex.Lookahead()) {
		s.indentation += s.advance(lex, true) - 1
	}
	if continuing {
		s.matchedContainer()
		lex.SetResultSymbol(BlockContinuation)
	} else {
		s.openContainer(block{kind: blockQuote})
		lex.SetResultSymbol(BlockQuoteStart)
	}
	return true
}

// scanFence handles a run of fence characters, either closing the open
// fenced code block under the prefix cursor or opening a new one.
func (s *Scanner) scanFence(lex Lexer, valid *SymbolSet, matching bool, marker byte) bool {
	kind := fenceTilde
	if marker == '`' {
		kind = fenceBacktick
	}
	opening := !matching && valid.Has(FencedCodeBlockStart) && s.indentation <= 3
	closing := matching && valid.Has(BlockClose) &&
		s.openBlocks[s.prefix].kind == fencedCode &&
		s.openBlocks[s.prefix].fence == kind &&
		s.indentation <= 3
	if !opening && !closing {
		return false
	}
	lex.MarkEnd()
	cur := s.cursor(lex)
	run := scanFenceRun(cur, marker)
	if closing {
		// A tilde fence closes only when nothing but the line ending
		// follows the run; backticks close on run length alone.
		if run < s.openBlocks[s.prefix].fenceLen {
			return false
		}
		if kind == fenceTilde && !isLineEnd(lex.Lookahead()) {
			return false
		}
		s.openBlocks = s.openBlocks[:len(s.openBlocks)-1]
		s.phase = phaseInline
		s.prefix = len(s.openBlocks)
		s.indentation = 0
		lex.MarkEnd()
		lex.SetResultSymbol(BlockClose)
		return true
	}
	if run < 3 {
		return false
	}
	lex.MarkEnd()
	if kind == fenceBacktick && !scanBacktickInfo(cur) {
		return false
	}
	s.openLeaf(block{kind: fencedCode, fence: kind, fenceLen: run})
	// The serialized image shares one byte between the pending code span
	// delimiter and the open fence's length; keep them in step.
	s.codeSpanDelimiter = run
	s.indentation = 0
	lex.SetResultSymbol(FencedCodeBlockStart)
	return true
}

// scanATXMarker recognizes 1–6 `#` followed by whitespace or a line
// ending. The marker for the observed level must itself be valid.
func (s *Scanner) scanATXMarker(lex Lexer, valid *SymbolSet, matching bool) bool {
	if matching || s.indentation > 3 || !valid.anyATXMarker() {
		return false
	}
	lex.MarkEnd()
	cur := s.cursor(lex)
	level, ok := scanATXPrefix(cur)
	if !ok || !valid.Has(atxMarker(level)) {
		return false
	}
	s.finishLineStart()
	s.indentation = 0
	lex.MarkEnd()
	lex.SetResultSymbol(atxMarker(level))
	return true
}

// scanSetextH1 recognizes a line of `=` followed only by whitespace.
func (s *Scanner) scanSetextH1(lex Lexer, valid *SymbolSet, matching bool) bool {
	if matching || s.indentation > 3 || !valid.Has(SetextH1Underline) {
		return false
	}
	lex.MarkEnd()
	for lex.Lookahead() == '=' {
		s.advance(lex, false)
	}
	for isSpaceTab(lex.Lookahead()) {
		s.advance(lex, true)
	}
	if !isLineEnd(lex.Lookahead()) {
		return false
	}
	s.finishLineStart()
	lex.MarkEnd()
	lex.SetResultSymbol(SetextH1Underline)
	return true
}

func (s *Scanner) scanPlusListMarker(lex Lexer, valid *SymbolSet, matching bool) bool {
	if matching || s.indentation > 3 || !valid.Has(ListMarkerPlus) {
		return false
	}
	lex.MarkEnd()
	cur := s.cursor(lex)
	cur.advance()
	spacing := scanMarkerSpacing(cur)
	if spacing < 1 {
		return false
	}
	s.pushListItem(1, spacing)
	lex.MarkEnd()
	lex.SetResultSymbol(ListMarkerPlus)
	return true
}

func (s *Scanner) scanOrderedListMarker(lex Lexer, valid *SymbolSet, matching bool) bool {
	if matching || s.indentation > 3 ||
		!(valid.Has(ListMarkerDot) || valid.Has(ListMarkerParenthesis)) {
		return false
	}
	lex.MarkEnd()
	cur := s.cursor(lex)
	digits, delim, ok := scanOrderedPrefix(cur)
	if !ok {
		return false
	}
	tok := ListMarkerDot
	if delim == ')' {
		tok = ListMarkerParenthesis
	}
	if !valid.Has(tok) {
		return false
	}
	spacing := scanMarkerSpacing(cur)
	if spacing < 1 {
		return false
	}
	s.pushListItem(digits+1, spacing)
	lex.MarkEnd()
	lex.SetResultSymbol(tok)
	return true
}

// scanMinusLine evaluates the three overlapping readings of a `-` line:
// thematic break, Setext H2 underline, and list marker. When a thematic
// break and an underline both apply and the combined token is valid, the
// combined token wins; an underline beats the list marker reading.
func (s *Scanner) scanMinusLine(lex Lexer, valid *SymbolSet, matching bool) bool {
	if matching || s.indentation > 3 ||
		!(valid.Has(ListMarkerMinus) || valid.Has(SetextH2Underline) ||
			valid.Has(SetextH2UnderlineOrThematicBreak) || valid.Has(ThematicBreak)) {
		return false
	}
	lex.MarkEnd()
	cur := s.cursor(lex)
	run := scanMarkerRun(cur, '-')
	thematic := run.count >= 3 && run.lineEnd
	underline := run.count >= 1 && !run.spacedMarker && run.lineEnd
	marker := run.count >= 1 && run.spacing >= 1
	switch {
	case thematic && underline && valid.Has(SetextH2UnderlineOrThematicBreak):
		s.finishLineStart()
		s.indentation = 0
		lex.MarkEnd()
		lex.SetResultSymbol(SetextH2UnderlineOrThematicBreak)
		return true
	case thematic && valid.Has(ThematicBreak) && !(underline && valid.Has(SetextH2Underline)):
		s.finishLineStart()
		s.indentation = 0
		lex.MarkEnd()
		lex.SetResultSymbol(ThematicBreak)
		return true
	case underline && valid.Has(SetextH2Underline):
		s.finishLineStart()
		s.indentation = 0
		lex.MarkEnd()
		lex.SetResultSymbol(SetextH2Underline)
		return true
	case marker && valid.Has(ListMarkerMinus):
		if run.count == 1 {
			lex.MarkEnd()
		}
		s.pushListItem(1, run.spacing)
		lex.SetResultSymbol(ListMarkerMinus)
		return true
	}
	return false
}

// scanStarLine evaluates `*` as a thematic break or a list marker;
// the break wins when both apply.
func (s *Scanner) scanStarLine(lex Lexer, valid *SymbolSet, matching bool) bool {
	if matching || s.indentation > 3 ||
		!(valid.Has(ListMarkerStar) || valid.Has(ThematicBreak)) {
		return false
	}
	lex.MarkEnd()
	cur := s.cursor(lex)
	run := scanMarkerRun(cur, '*')
	switch {
	case run.count >= 3 && run.lineEnd && valid.Has(ThematicBreak):
		s.finishLineStart()
		s.indentation = 0
		lex.MarkEnd()
		lex.SetResultSymbol(ThematicBreak)
		return true
	case run.count >= 1 && run.spacing >= 1 && valid.Has(ListMarkerStar):
		if run.count == 1 {
			lex.MarkEnd()
		}
		s.pushListItem(1, run.spacing)
		lex.SetResultSymbol(ListMarkerStar)
		return true
	}
	return false
}

// scanUnderscoreLine recognizes `_` thematic breaks; underscores are
// never list markers.
func (s *Scanner) scanUnderscoreLine(lex Lexer, valid *SymbolSet, matching bool) bool {
	if matching || s.indentation > 3 || !valid.Has(ThematicBreak) {
		return false
	}
	lex.MarkEnd()
	cur := s.cursor(lex)
	count, lineEnd := scanUnderscoreRun(cur)
	if count < 3 || !lineEnd {
		return false
	}
	s.finishLineStart()
	s.indentation = 0
	lex.MarkEnd()
	lex.SetResultSymbol(ThematicBreak)
	return true
}

// pushListItem opens a tight list item. markerWidth is the byte width of
// the marker (1 for bullets, digits plus delimiter for ordered markers);
// spacing is the column count of whitespace scanned after it. Up to four
// of those columns join the item's content indent; past four the marker
// claims a single column and the surplus returns to the indentation
// budget, which is how an indented code block can open as the first
// content of the item.
func (s *Scanner) pushListItem(markerWidth, spacing int) {
	var content int
	if spacing <= 4 {
		content = s.indentation + markerWidth + spacing
		s.indentation = 0
	} else {
		content = s.indentation + markerWidth + 1
		s.indentation = spacing - 1
	}
	if content > maxListIndent {
		content = maxListIndent
	}
	s.openContainer(block{kind: listItem, contentIndent: content})
}

// scanFenceRun consumes a run of the fence byte and returns its length.
func scanFenceRun(c *lineCursor, marker byte) int {
	run := 0
	for c.lookahead() == marker {
		c.advance()
		run++
	}
	return run
}

// scanBacktickInfo consumes the remainder of the line and reports
// whether it is a valid backtick-fence info string, i.e. contains no
// backtick before the line ending (or end of input).
func scanBacktickInfo(c *lineCursor) bool {
	for {
		b := c.lookahead()
		switch {
		case b == '`':
			return false
		case isLineEnd(b) || c.lex.EOF():
			return true
		}
		c.advance()
	}
}

// scanATXPrefix consumes the `#` run of an ATX heading and reports its
// level. ok is false if the run is longer than six or is not followed by
// whitespace or a line ending.
func scanATXPrefix(c *lineCursor) (level int, ok bool) {
	for c.lookahead() == '#' && level <= 6 {
		c.advance()
		level++
	}
	if level > 6 {
		return level, false
	}
	b := c.lookahead()
	return level, isSpaceTab(b) || isLineEnd(b)
}

// scanOrderedPrefix consumes the digit run and delimiter of an ordered
// list marker. ok is false when the digit run is longer than nine or the
// delimiter is missing.
func scanOrderedPrefix(c *lineCursor) (digits int, delim byte, ok bool) {
	for isDigit(c.lookahead()) {
		c.advance()
		digits++
	}
	if digits < 1 || digits > 9 {
		return digits, 0, false
	}
	switch c.lookahead() {
	case '.', ')':
		delim = c.lookahead()
		c.advance()
		return digits, delim, true
	}
	return digits, 0, false
}

// scanMarkerSpacing consumes whitespace after a list marker and returns
// its column count.
func scanMarkerSpacing(c *lineCursor) int {
	spacing := 0
	for isSpaceTab(c.lookahead()) {
		spacing += c.advance()
	}
	return spacing
}

// markerRun describes a line-start run of `-` or `*` interleaved with
// whitespace, the shared shape behind thematic breaks, Setext H2
// underlines, and bullet list markers.
type markerRun struct {
	// count is the number of marker bytes in the run.
	count int
	// spacing is the column count of whitespace directly after a single
	// leading marker, the part that would become list-item spacing.
	// A lone marker before a line ending counts one phantom column so it
	// can still read as an (empty) list item.
	spacing int
	// spacedMarker records that some marker beyond the first appeared
	// after whitespace, which rules out the underline reading.
	spacedMarker bool
	// lineEnd records that the run stopped at a line ending.
	lineEnd bool
}

// scanMarkerRun consumes marker bytes and whitespace until another byte
// or the line ending. While a single marker plus whitespace could still
// be a list marker, the token end is pinned there so that a longer run
// can leave the extra markers as item content.
func scanMarkerRun(c *lineCursor, marker byte) markerRun {
	var run markerRun
	sawWhitespace := false
	for {
		b := c.lookahead()
		switch {
		case b == marker:
			if run.count == 1 && run.spacing >= 1 {
				c.markEnd()
			}
			run.count++
			c.advance()
			run.spacedMarker = run.spacedMarker || sawWhitespace
		case isSpaceTab(b):
			if run.count == 1 {
				run.spacing += c.advance()
			} else {
				c.advance()
			}
			sawWhitespace = true
		default:
			run.lineEnd = isLineEnd(b)
			if run.count == 1 && run.lineEnd {
				run.spacing = 1
			}
			return run
		}
	}
}

// scanUnderscoreRun consumes underscores and whitespace until another
// byte or the line ending.
func scanUnderscoreRun(c *lineCursor) (count int, lineEnd bool) {
	for {
		b := c.lookahead()
		switch {
		case b == '_':
			count++
			c.advance()
		case isSpaceTab(b):
			c.advance()
		default:
			return count, isLineEnd(b)
		}
	}
}
