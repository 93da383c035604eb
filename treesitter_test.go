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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/odvcencio/gotreesitter"
)

// fakeTSLexer is a minimal stand-in for the runtime's external lexer.
type fakeTSLexer struct {
	src    []rune
	pos    int
	result gotreesitter.Symbol
	has    bool
}

func (l *fakeTSLexer) Lookahead() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *fakeTSLexer) Advance(skip bool) {
	if l.pos < len(l.src) {
		l.pos++
	}
}

func (l *fakeTSLexer) MarkEnd() {}

func (l *fakeTSLexer) SetResultSymbol(sym gotreesitter.Symbol) {
	l.result = sym
	l.has = true
}

func TestTreeSitterScanner(t *testing.T) {
	const base = 40
	ts := TreeSitterScanner{Base: base}
	payload := ts.Create()
	defer ts.Destroy(payload)

	valid := make([]bool, TokenCount)
	for _, tok := range validSets["linestart"] {
		valid[tok] = true
	}

	lex := &fakeTSLexer{src: []rune("# hi\n")}
	if !ts.Scan(payload, lex, valid) {
		t.Fatal("Scan = false; want a heading marker")
	}
	if !lex.has || lex.result != base+gotreesitter.Symbol(AtxH1Marker) {
		t.Errorf("result symbol = %d; want %d", lex.result, base+gotreesitter.Symbol(AtxH1Marker))
	}

	buf := make([]byte, MaxSerializedLen)
	n := ts.Serialize(payload, buf)
	restored := ts.Create()
	ts.Deserialize(restored, buf[:n])
	if diff := cmp.Diff(payload, restored, scannerCmpOpts); diff != "" {
		t.Errorf("state after round trip (-live +restored):\n%s", diff)
	}
}

func TestTreeSitterScannerNonASCIILookahead(t *testing.T) {
	ts := TreeSitterScanner{}
	payload := ts.Create()

	valid := make([]bool, TokenCount)
	valid[EmphasisOpenStar] = true
	valid[EmphasisCloseStar] = true

	// The run is followed by a non-ASCII letter: neither whitespace nor
	// punctuation under the ASCII classes, so the run closes
	// (the previous token ended in a word).
	lex := &fakeTSLexer{src: []rune("*δ")}
	payload.(*Scanner).phase = phaseInline
	if !ts.Scan(payload, lex, valid) {
		t.Fatal("Scan = false; want a delimiter token")
	}
	if lex.result != gotreesitter.Symbol(EmphasisCloseStar) {
		t.Errorf("result symbol = %d; want %d", lex.result, EmphasisCloseStar)
	}
}

func TestTreeSitterScannerRejectsForeignLexer(t *testing.T) {
	ts := TreeSitterScanner{}
	if ts.Scan(ts.Create(), struct{}{}, make([]bool, TokenCount)) {
		t.Error("Scan accepted a lexer without the external lexing surface")
	}
}
