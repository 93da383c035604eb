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
	"fmt"
	"io"
	"unicode/utf8"
)

// Lexer is the cursor the scanner drives: single-byte lookahead,
// advance with optional exclusion from the token's extent, an end mark,
// and a slot for the result symbol of a successful scan.
type Lexer interface {
	// Lookahead returns the next byte without consuming it,
	// or zero at end of input.
	Lookahead() byte
	// Advance consumes the lookahead byte. When skip is true the byte is
	// treated as whitespace preceding the token rather than token content.
	Advance(skip bool)
	// MarkEnd pins the token's end at the current position; bytes
	// consumed afterwards are lookahead only.
	MarkEnd()
	// EOF reports whether the input is exhausted.
	EOF() bool
	// SetResultSymbol records the token a successful scan produced.
	SetResultSymbol(TokenType)
}

// RuneLookaheader is implemented by lexers that can decode a full rune
// of lookahead. [Options].UnicodeClasses has no effect without it.
type RuneLookaheader interface {
	LookaheadRune() rune
}

// A SourceLexer is a [Lexer] over an in-memory byte slice.
// It records the result token and its extent so a host (or test)
// can consume the token and resume after it.
type SourceLexer struct {
	source []byte

	pos        int
	tokenStart int
	markedEnd  int // -1 until MarkEnd

	result    TokenType
	hasResult bool
}

// NewSourceLexer returns a lexer positioned at the start of source.
func NewSourceLexer(source []byte) *SourceLexer {
	return &SourceLexer{source: source, markedEnd: -1}
}

func (l *SourceLexer) Lookahead() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

// LookaheadRune decodes the rune at the cursor, or zero at end of input.
func (l *SourceLexer) LookaheadRune() rune {
	if l.pos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.source[l.pos:])
	return r
}

func (l *SourceLexer) Advance(skip bool) {
	if l.pos >= len(l.source) {
		return
	}
	l.pos++
	if skip {
		l.tokenStart = l.pos
	}
}

func (l *SourceLexer) MarkEnd() {
	l.markedEnd = l.pos
}

func (l *SourceLexer) EOF() bool {
	return l.pos >= len(l.source)
}

func (l *SourceLexer) SetResultSymbol(t TokenType) {
	l.result = t
	l.hasResult = true
}

// Pos returns the cursor's byte offset.
func (l *SourceLexer) Pos() int {
	return l.pos
}

// Result returns the token recorded by the last successful scan and its
// extent in the source. If no end was marked, the token extends to the
// position where the scan stopped.
func (l *SourceLexer) Result() (tok TokenType, start, end int, ok bool) {
	if !l.hasResult {
		return 0, 0, 0, false
	}
	end = l.markedEnd
	if end < 0 {
		end = l.pos
	}
	start = l.tokenStart
	if end < start {
		end = start
	}
	return l.result, start, end, true
}

// Next finalizes the current token and repositions the cursor at its
// end, the way a host parser resumes after accepting a token. Bytes the
// scanner consumed past the marked end are handed back as lookahead.
func (l *SourceLexer) Next() {
	if l.hasResult && l.markedEnd >= 0 {
		l.pos = l.markedEnd
	}
	l.tokenStart = l.pos
	l.markedEnd = -1
	l.hasResult = false
}

// A ReaderLexer is a [Lexer] over an io.Reader, buffering input in
// chunks as lookahead demands it. The buffer is capped: input past the
// cap reads as end of input and the overflow is reported through Err.
type ReaderLexer struct {
	r   io.Reader
	err error // non-nil once no more data will be read into buf

	buf        []byte
	pos        int
	tokenStart int
	markedEnd  int

	result    TokenType
	hasResult bool
}

const (
	readChunkSize = 8 * 1024
	maxBufferSize = 1024 * 1024
)

// NewReaderLexer returns a lexer reading from r.
func NewReaderLexer(r io.Reader) *ReaderLexer {
	return &ReaderLexer{r: r, markedEnd: -1}
}

// ensure grows the buffer until want bytes of lookahead are available
// or no more input can be read.
func (l *ReaderLexer) ensure(want int) {
	for len(l.buf)-l.pos < want && l.err == nil {
		if len(l.buf) >= maxBufferSize {
			l.err = fmt.Errorf("markdown scan: input exceeds %d-byte buffer", maxBufferSize)
			return
		}
		newSize := len(l.buf) + readChunkSize
		if newSize > maxBufferSize {
			newSize = maxBufferSize
		}
		if cap(l.buf) < newSize {
			newbuf := make([]byte, len(l.buf), newSize)
			copy(newbuf, l.buf)
			l.buf = newbuf
		}
		var n int
		n, l.err = l.r.Read(l.buf[len(l.buf):newSize])
		l.buf = l.buf[:len(l.buf)+n]
	}
}

func (l *ReaderLexer) fill() {
	l.ensure(1)
}

func (l *ReaderLexer) Lookahead() byte {
	l.fill()
	if l.pos >= len(l.buf) {
		return 0
	}
	return l.buf[l.pos]
}

// LookaheadRune decodes the rune at the cursor, or zero at end of input.
// A rune can straddle a read boundary, so up to [utf8.UTFMax] bytes of
// lookahead are buffered.
func (l *ReaderLexer) LookaheadRune() rune {
	l.ensure(utf8.UTFMax)
	if l.pos >= len(l.buf) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.buf[l.pos:])
	return r
}

func (l *ReaderLexer) Advance(skip bool) {
	l.fill()
	if l.pos >= len(l.buf) {
		return
	}
	l.pos++
	if skip {
		l.tokenStart = l.pos
	}
}

func (l *ReaderLexer) MarkEnd() {
	l.markedEnd = l.pos
}

func (l *ReaderLexer) EOF() bool {
	l.fill()
	return l.pos >= len(l.buf)
}

func (l *ReaderLexer) SetResultSymbol(t TokenType) {
	l.result = t
	l.hasResult = true
}

// Err returns the first read error other than io.EOF,
// including the buffer-cap overflow error.
func (l *ReaderLexer) Err() error {
	if l.err == io.EOF {
		return nil
	}
	return l.err
}

// Result returns the token recorded by the last successful scan and its
// extent in the buffered input.
func (l *ReaderLexer) Result() (tok TokenType, start, end int, ok bool) {
	if !l.hasResult {
		return 0, 0, 0, false
	}
	end = l.markedEnd
	if end < 0 {
		end = l.pos
	}
	start = l.tokenStart
	if end < start {
		end = start
	}
	return l.result, start, end, true
}

// Next finalizes the current token and repositions the cursor at its end.
func (l *ReaderLexer) Next() {
	if l.hasResult && l.markedEnd >= 0 {
		l.pos = l.markedEnd
	}
	l.tokenStart = l.pos
	l.markedEnd = -1
	l.hasResult = false
}
