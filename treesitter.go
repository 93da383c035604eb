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

import "github.com/odvcencio/gotreesitter"

// TreeSitterScanner adapts [Scanner] to the external-scanner contract of
// the pure Go tree-sitter runtime: a method set the runtime invokes
// around each parse, with opaque per-parser payloads and a []bool
// valid-symbol mask indexed by external token.
//
// Base offsets the scanner's [TokenType] values onto the grammar's
// symbol IDs; the tokens must appear in the grammar's external token
// list in [TokenType] order.
type TreeSitterScanner struct {
	Base    gotreesitter.Symbol
	Options Options
}

// treeSitterLexer is the lexing surface the runtime's external lexer
// provides. Declaring it locally keeps the adapter decoupled from the
// runtime's concrete lexer type.
type treeSitterLexer interface {
	Lookahead() rune
	Advance(skip bool)
	MarkEnd()
	SetResultSymbol(sym gotreesitter.Symbol)
}

// Create returns a fresh scanner payload.
func (t TreeSitterScanner) Create() interface{} {
	return &Scanner{Options: t.Options}
}

// Destroy releases the payload. The scanner holds no resources beyond
// garbage-collected memory.
func (t TreeSitterScanner) Destroy(payload interface{}) {}

// Serialize writes the payload's state into buf.
func (t TreeSitterScanner) Serialize(payload interface{}, buf []byte) int {
	return payload.(*Scanner).Serialize(buf)
}

// Deserialize restores the payload's state from buf.
func (t TreeSitterScanner) Deserialize(payload interface{}, buf []byte) {
	payload.(*Scanner).Deserialize(buf)
}

// Scan runs one scanner step against the runtime's lexer.
func (t TreeSitterScanner) Scan(payload interface{}, lexer interface{}, validSymbols []bool) bool {
	inner, ok := lexer.(treeSitterLexer)
	if !ok {
		return false
	}
	return payload.(*Scanner).Scan(&runeLexer{inner: inner, base: t.Base}, SymbolSetFromSlice(validSymbols))
}

// runeLexer narrows the runtime's rune-oriented lexer to the scanner's
// byte-oriented [Lexer]. Runes outside ASCII present as 0x80, a byte the
// scanner classifies as neither whitespace nor punctuation, which is the
// ASCII-only core behavior. A zero rune reads as end of input.
type runeLexer struct {
	inner treeSitterLexer
	base  gotreesitter.Symbol
}

func (l *runeLexer) Lookahead() byte {
	r := l.inner.Lookahead()
	if r >= 0x80 {
		return 0x80
	}
	return byte(r)
}

// LookaheadRune exposes the runtime's full-rune lookahead, enabling
// [Options].UnicodeClasses.
func (l *runeLexer) LookaheadRune() rune {
	return l.inner.Lookahead()
}

func (l *runeLexer) Advance(skip bool) {
	l.inner.Advance(skip)
}

func (l *runeLexer) MarkEnd() {
	l.inner.MarkEnd()
}

func (l *runeLexer) EOF() bool {
	return l.inner.Lookahead() == 0
}

func (l *runeLexer) SetResultSymbol(tok TokenType) {
	l.inner.SetResultSymbol(l.base + gotreesitter.Symbol(tok))
}
