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
)

func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		s    *Scanner
	}{
		{
			name: "fresh",
			s:    New(),
		},
		{
			name: "matching a block quote",
			s: &Scanner{
				openBlocks:  []block{{kind: blockQuote}},
				prefix:      0,
				phase:       phaseMatching,
				indentation: 2,
				column:      5,
			},
		},
		{
			name: "opening inside nested list items",
			s: &Scanner{
				openBlocks: []block{
					{kind: listItem, contentIndent: 4},
					{kind: listItem, contentIndent: 2, loose: true},
				},
				prefix:                 2,
				phase:                  phaseOpening,
				emphasisDelimiters:     3,
				emphasisDelimitersLeft: 2,
				emphasisIsOpen:         true,
			},
		},
		{
			name: "inside a tilde fence",
			s: &Scanner{
				openBlocks: []block{
					{kind: blockQuote},
					{kind: fencedCode, fence: fenceTilde, fenceLen: 5},
				},
				prefix:            2,
				phase:             phaseInline,
				codeSpanDelimiter: 5,
				column:            9,
			},
		},
		{
			name: "pending code span",
			s: &Scanner{
				phase:             phaseInline,
				codeSpanDelimiter: 2,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := make([]byte, MaxSerializedLen)
			n := test.s.Serialize(buf)
			if n > MaxSerializedLen {
				t.Fatalf("Serialize wrote %d bytes; max is %d", n, MaxSerializedLen)
			}
			restored := New()
			restored.Deserialize(buf[:n])
			if diff := cmp.Diff(test.s, restored, scannerCmpOpts); diff != "" {
				t.Errorf("state after round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSerializeTruncatesDeepStacks(t *testing.T) {
	s := &Scanner{phase: phaseMatching, prefix: 10}
	for i := 0; i < 300; i++ {
		s.openBlocks = append(s.openBlocks, block{kind: blockQuote})
	}
	buf := make([]byte, MaxSerializedLen)
	n := s.Serialize(buf)
	if n != MaxSerializedLen {
		t.Errorf("Serialize wrote %d bytes; want %d", n, MaxSerializedLen)
	}

	restored := New()
	restored.Deserialize(buf[:n])
	if got, want := len(restored.openBlocks), maxSerializedBlocks; got != want {
		t.Errorf("restored %d blocks; want %d", got, want)
	}
	if restored.phase != phaseMatching || restored.prefix != 10 {
		t.Errorf("restored phase %d prefix %d; want matching at 10", restored.phase, restored.prefix)
	}
	// The deepest tail is what gets dropped.
	if diff := cmp.Diff(s.openBlocks[:maxSerializedBlocks], restored.openBlocks, scannerCmpOpts); diff != "" {
		t.Errorf("outermost blocks changed (-want +got):\n%s", diff)
	}
}

func TestDeserializeEmptyResets(t *testing.T) {
	s := &Scanner{
		Options:           Options{UnicodeClasses: true},
		openBlocks:        []block{{kind: blockQuote}},
		phase:             phaseInline,
		indentation:       7,
		codeSpanDelimiter: 3,
	}
	s.Deserialize(nil)

	want := &Scanner{Options: Options{UnicodeClasses: true}}
	if diff := cmp.Diff(want, s, scannerCmpOpts); diff != "" {
		t.Errorf("state after empty deserialize (-want +got):\n%s", diff)
	}
}

func TestDeserializeShortBufferResets(t *testing.T) {
	s := &Scanner{openBlocks: []block{{kind: blockQuote}}, phase: phaseInline}
	s.Deserialize([]byte{1, 2, 3})
	if diff := cmp.Diff(New(), s, scannerCmpOpts); diff != "" {
		t.Errorf("state after short deserialize (-want +got):\n%s", diff)
	}
}

func TestDeserializeSaturatesUnknownTags(t *testing.T) {
	buf := make([]byte, serializedHeaderLen, serializedHeaderLen+3)
	buf = append(buf, 18, 200, 255)
	s := New()
	s.Deserialize(buf)
	if len(s.openBlocks) != 3 {
		t.Fatalf("restored %d blocks; want 3", len(s.openBlocks))
	}
	for i, b := range s.openBlocks {
		if b.kind != blockQuote {
			t.Errorf("openBlocks[%d].kind = %d; want block quote", i, b.kind)
		}
	}
}

func TestDeserializeRestoresFenceLength(t *testing.T) {
	s := New()
	lex := NewSourceLexer([]byte("````\ncode\n````\n"))
	valid := buildSet(t, "linestart", nil)
	if !s.Scan(lex, valid) {
		t.Fatal("fence did not open")
	}
	lex.Next()

	buf := make([]byte, MaxSerializedLen)
	n := s.Serialize(buf)
	restored := New()
	restored.Deserialize(buf[:n])

	if got := len(restored.openBlocks); got != 1 {
		t.Fatalf("restored %d blocks; want 1", got)
	}
	top := restored.openBlocks[0]
	if top.kind != fencedCode || top.fence != fenceBacktick || top.fenceLen != 4 {
		t.Errorf("restored top block = %+v; want backtick fence of length 4", top)
	}
}

func TestBlockTagRoundTrip(t *testing.T) {
	blocks := []block{
		{kind: blockQuote},
		{kind: indentedCodeBlock},
		{kind: fencedCode, fence: fenceTilde},
		{kind: fencedCode, fence: fenceBacktick},
	}
	for indent := minListIndent; indent <= maxListIndent; indent++ {
		blocks = append(blocks,
			block{kind: listItem, contentIndent: indent},
			block{kind: listItem, contentIndent: indent, loose: true},
		)
	}
	for _, b := range blocks {
		got := decodeBlock(b.encode())
		if diff := cmp.Diff(b, got, scannerCmpOpts); diff != "" {
			t.Errorf("tag %d round trip (-want +got):\n%s", b.encode(), diff)
		}
	}
}
