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

func TestProbeOpener(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		indentation int
		extra       []TokenType
		want        bool
	}{
		{name: "plain text", input: "x\n", want: false},
		{name: "list marker", input: "- a\n", want: true},
		{name: "empty list item", input: "-\n", want: true},
		{name: "minus without spacing", input: "-x\n", want: false},
		{name: "block quote", input: "> a\n", want: true},
		{name: "block quote too deep", input: "> a\n", indentation: 4, want: false},
		{name: "atx heading", input: "### x\n", want: true},
		{name: "overlong atx run", input: "####### x\n", want: false},
		{name: "backtick fence", input: "```\n", want: true},
		{name: "backtick fence with info", input: "```go\n", want: true},
		{name: "backtick fence with backtick info", input: "```a`b\n", want: false},
		{name: "short backtick run", input: "``\n", want: false},
		{name: "tilde fence", input: "~~~\n", want: true},
		{name: "thematic break stars", input: "* * *\n", want: true},
		{name: "underscore break", input: "___\n", want: true},
		{name: "short underscore run", input: "__\n", want: false},
		{name: "ordered marker", input: "12. x\n", want: true},
		{name: "ten digit marker", input: "1234567890. x\n", want: false},
		{name: "ordered without spacing", input: "12.x\n", want: false},
		{name: "blank line", input: "\n", want: true},
		// The emit dispatch treats `=` purely as an underline candidate,
		// so it never defeats a lazy continuation.
		{name: "equals line", input: "===\n", extra: []TokenType{SetextH1Underline}, want: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := &Scanner{
				openBlocks:  []block{{kind: blockQuote}},
				phase:       phaseMatching,
				indentation: test.indentation,
			}
			before := &Scanner{
				openBlocks:  []block{{kind: blockQuote}},
				phase:       phaseMatching,
				indentation: test.indentation,
			}
			valid := buildSet(t, "paragraph", test.extra)
			lex := NewSourceLexer([]byte(test.input))

			if got := s.probeOpener(lex, valid); got != test.want {
				t.Errorf("probeOpener(%q) = %t; want %t", test.input, got, test.want)
			}
			// The probe is speculative: scanner state must be untouched
			// no matter how much lookahead it consumed.
			if diff := cmp.Diff(before, s, scannerCmpOpts); diff != "" {
				t.Errorf("probeOpener(%q) mutated state (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

// TestCloseUnwindsToMatch verifies that a partially matching prefix
// closes inner blocks one call at a time until the line matches again.
func TestCloseUnwindsToMatch(t *testing.T) {
	runScanScript(t, "> - a\n> b\n", []scanStep{
		{set: "linestart", want: BlockQuoteStart},
		{set: "linestart", want: ListMarkerMinus},
		{set: "linestart", want: MatchingDone},
		{text: "a"},
		{set: "inline", want: LineEnding},
		{set: "linestart", want: BlockContinuation}, // the quote matches
		{set: "linestart", want: BlockClose},        // the list item does not
		{set: "linestart", want: MatchingDone},
		{text: "b"},
		{set: "inline", want: LineEnding},
		{set: "linestart", want: BlockClose},
		{set: "linestart", none: true},
	})
}
