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

// scanLineStart handles both line-start phases: while matching, the open
// block at the prefix cursor must reconsume its opening syntax; once the
// prefix is fully matched, new blocks may open. Each call emits at most
// one token.
func (s *Scanner) scanLineStart(lex Lexer, valid *SymbolSet) bool {
	matching := s.phase == phaseMatching

	// Four columns of indentation continue an open indented code block
	// or open a fresh one.
	if (!matching && valid.Has(IndentedChunkStart)) ||
		(matching && valid.Has(BlockContinuation) && s.openBlocks[s.prefix].kind == indentedCodeBlock) {
		if s.indentation >= codeBlockIndent && !isLineEnd(lex.Lookahead()) {
			switch {
			case matching:
				s.indentation -= codeBlockIndent
				s.matchedLeaf()
				lex.SetResultSymbol(BlockContinuation)
				return true
			case !valid.Has(LazyContinuation):
				// An indented code block cannot interrupt a paragraph.
				s.openLeaf(block{kind: indentedCodeBlock})
				s.indentation -= codeBlockIndent
				lex.SetResultSymbol(IndentedChunkStart)
				return true
			}
		}
	}

	// A list item continues on sufficient indentation, or on a blank line
	// (which matches the item without claiming any columns).
	if matching && valid.Has(BlockContinuation) && s.openBlocks[s.prefix].kind == listItem {
		switch item := s.openBlocks[s.prefix]; {
		case s.indentation >= item.contentIndent:
			s.indentation -= item.contentIndent
			s.matchedContainer()
			lex.SetResultSymbol(BlockContinuation)
			return true
		case isLineEnd(lex.Lookahead()):
			s.indentation = 0
			s.matchedContainer()
			lex.SetResultSymbol(BlockContinuation)
			return true
		}
	}

	if s.dispatchLineStart(lex, valid, matching) {
		return true
	}

	// An open fenced code block swallows any line the dispatch did not
	// claim; the close-fence check has already run above.
	if matching && valid.Has(BlockContinuation) && s.openBlocks[s.prefix].kind == fencedCode {
		s.indentation = 0
		s.matchedLeaf()
		lex.SetResultSymbol(BlockContinuation)
		return true
	}

	if !matching {
		if !valid.Has(MatchingDone) {
			return false
		}
		s.finishLineStart()
		lex.SetResultSymbol(MatchingDone)
		return true
	}

	// The block at the prefix cursor failed to match. Either the line
	// lazily continues an open paragraph, or blocks close from the
	// deepest outward, one per call, until a match succeeds or the
	// stack is empty.
	lex.MarkEnd()
	if valid.Has(LazyContinuation) && !s.probeOpener(lex, valid) {
		s.indentation = 0
		s.finishLineStart()
		lex.SetResultSymbol(LazyContinuation)
		return true
	}
	s.popAndClose(lex)
	return true
}

// probeOpener reports whether any block opener would accept the current
// position; a lazy continuation is only possible when none would.
// Scanner state is never mutated, though lexer lookahead past the marked
// token end is consumed.
//
// Two openers never defeat a lazy continuation: indented code (it cannot
// interrupt a paragraph, and the probe only runs while LazyContinuation
// is valid) and a Setext H1 underline (mirroring the emit dispatch,
// which treats `=` lines purely as underline candidates).
func (s *Scanner) probeOpener(lex Lexer, valid *SymbolSet) bool {
	column := s.column
	cur := &lineCursor{lex: lex, column: &column}
	switch c := lex.Lookahead(); c {
	case '\n', '\r':
		return valid.Has(BlankLine)
	case '>':
		return valid.Has(BlockQuoteStart) && s.indentation <= 3
	case '~':
		if !valid.Has(FencedCodeBlockStart) || s.indentation > 3 {
			return false
		}
		return scanFenceRun(cur, '~') >= 3
	case '`':
		if !valid.Has(FencedCodeBlockStart) || s.indentation > 3 {
			return false
		}
		if scanFenceRun(cur, '`') < 3 {
			return false
		}
		return scanBacktickInfo(cur)
	case '#':
		if !valid.anyATXMarker() || s.indentation > 3 {
			return false
		}
		level, ok := scanATXPrefix(cur)
		return ok && valid.Has(atxMarker(level))
	case '+':
		if !valid.Has(ListMarkerPlus) || s.indentation > 3 {
			return false
		}
		cur.advance()
		return scanMarkerSpacing(cur) >= 1
	case '-':
		if s.indentation > 3 ||
			!(valid.Has(ListMarkerMinus) || valid.Has(SetextH2Underline) ||
				valid.Has(SetextH2UnderlineOrThematicBreak) || valid.Has(ThematicBreak)) {
			return false
		}
		run := scanMarkerRun(cur, '-')
		return (run.count >= 3 && run.lineEnd) ||
			(run.count >= 1 && !run.spacedMarker && run.lineEnd) ||
			(run.count >= 1 && run.spacing >= 1)
	case '*':
		if s.indentation > 3 || !(valid.Has(ListMarkerStar) || valid.Has(ThematicBreak)) {
			return false
		}
		run := scanMarkerRun(cur, '*')
		return (run.count >= 3 && run.lineEnd) ||
			(run.count >= 1 && run.spacing >= 1)
	case '_':
		if !valid.Has(ThematicBreak) || s.indentation > 3 {
			return false
		}
		count, lineEnd := scanUnderscoreRun(cur)
		return count >= 3 && lineEnd
	default:
		if isDigit(c) {
			if s.indentation > 3 || !(valid.Has(ListMarkerDot) || valid.Has(ListMarkerParenthesis)) {
				return false
			}
			_, delim, ok := scanOrderedPrefix(cur)
			if !ok {
				return false
			}
			tok := ListMarkerDot
			if delim == ')' {
				tok = ListMarkerParenthesis
			}
			return valid.Has(tok) && scanMarkerSpacing(cur) >= 1
		}
	}
	return false
}
