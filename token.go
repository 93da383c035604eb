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

import "strconv"

// TokenType identifies a symbol the scanner can emit.
// Most tokens are zero-width markers that delimit regions
// the host parser assembles from its own lexing.
//
// The six ATX marker values are contiguous
// so that the marker for a heading of a given level
// can be computed by offset from [AtxH1Marker].
type TokenType uint8

const (
	LineEnding TokenType = iota
	Indentation
	VirtualSpace
	MatchingDone
	BlockClose
	BlockCloseLoose
	BlockContinuation
	LazyContinuation
	BlockQuoteStart
	IndentedChunkStart
	AtxH1Marker
	AtxH2Marker
	AtxH3Marker
	AtxH4Marker
	AtxH5Marker
	AtxH6Marker
	SetextH1Underline
	SetextH2Underline
	SetextH2UnderlineOrThematicBreak
	ThematicBreak
	ListMarkerMinus
	ListMarkerPlus
	ListMarkerStar
	ListMarkerParenthesis
	ListMarkerDot
	FencedCodeBlockStart
	BlankLine
	CodeSpanStart
	CodeSpanClose

	// LastTokenWhitespace and LastTokenPunctuation are never emitted.
	// The host sets them in the valid-symbol mask
	// to tell the scanner how the previous inline token ended,
	// which feeds the emphasis flanking rules.
	LastTokenWhitespace
	LastTokenPunctuation

	EmphasisOpenStar
	EmphasisOpenUnderscore
	EmphasisCloseStar
	EmphasisCloseUnderscore

	// TokenCount is the number of distinct token types.
	TokenCount
)

var tokenNames = [TokenCount]string{
	LineEnding:                       "LineEnding",
	Indentation:                      "Indentation",
	VirtualSpace:                     "VirtualSpace",
	MatchingDone:                     "MatchingDone",
	BlockClose:                       "BlockClose",
	BlockCloseLoose:                  "BlockCloseLoose",
	BlockContinuation:                "BlockContinuation",
	LazyContinuation:                 "LazyContinuation",
	BlockQuoteStart:                  "BlockQuoteStart",
	IndentedChunkStart:               "IndentedChunkStart",
	AtxH1Marker:                      "AtxH1Marker",
	AtxH2Marker:                      "AtxH2Marker",
	AtxH3Marker:                      "AtxH3Marker",
	AtxH4Marker:                      "AtxH4Marker",
	AtxH5Marker:                      "AtxH5Marker",
	AtxH6Marker:                      "AtxH6Marker",
	SetextH1Underline:                "SetextH1Underline",
	SetextH2Underline:                "SetextH2Underline",
	SetextH2UnderlineOrThematicBreak: "SetextH2UnderlineOrThematicBreak",
	ThematicBreak:                    "ThematicBreak",
	ListMarkerMinus:                  "ListMarkerMinus",
	ListMarkerPlus:                   "ListMarkerPlus",
	ListMarkerStar:                   "ListMarkerStar",
	ListMarkerParenthesis:            "ListMarkerParenthesis",
	ListMarkerDot:                    "ListMarkerDot",
	FencedCodeBlockStart:             "FencedCodeBlockStart",
	BlankLine:                        "BlankLine",
	CodeSpanStart:                    "CodeSpanStart",
	CodeSpanClose:                    "CodeSpanClose",
	LastTokenWhitespace:              "LastTokenWhitespace",
	LastTokenPunctuation:             "LastTokenPunctuation",
	EmphasisOpenStar:                 "EmphasisOpenStar",
	EmphasisOpenUnderscore:           "EmphasisOpenUnderscore",
	EmphasisCloseStar:                "EmphasisCloseStar",
	EmphasisCloseUnderscore:          "EmphasisCloseUnderscore",
}

// String returns the name of the token type.
func (t TokenType) String() string {
	if t >= TokenCount {
		return "TokenType(" + strconv.Itoa(int(t)) + ")"
	}
	return tokenNames[t]
}

// atxMarker returns the marker token for a heading level in 1..6.
func atxMarker(level int) TokenType {
	return AtxH1Marker + TokenType(level-1)
}

// A SymbolSet is the valid-symbol mask the host passes to [Scanner.Scan]:
// a token may only be emitted while its entry is set
// (the block-unwinding close tokens excepted; see [Scanner.Scan]).
type SymbolSet [TokenCount]bool

// NewSymbolSet returns a set containing the given tokens.
func NewSymbolSet(tokens ...TokenType) *SymbolSet {
	s := new(SymbolSet)
	for _, t := range tokens {
		s[t] = true
	}
	return s
}

// SymbolSetFromSlice converts a raw valid-symbol slice
// (the representation used by tree-sitter hosts) into a set.
// Entries beyond [TokenCount] are ignored.
func SymbolSetFromSlice(valid []bool) *SymbolSet {
	s := new(SymbolSet)
	copy(s[:], valid)
	return s
}

// Has reports whether the set contains the token.
func (s *SymbolSet) Has(t TokenType) bool {
	return s[t]
}

// Add inserts the given tokens into the set and returns it.
func (s *SymbolSet) Add(tokens ...TokenType) *SymbolSet {
	for _, t := range tokens {
		s[t] = true
	}
	return s
}

// anyATXMarker reports whether any of the six heading markers is valid.
func (s *SymbolSet) anyATXMarker() bool {
	for t := AtxH1Marker; t <= AtxH6Marker; t++ {
		if s[t] {
			return true
		}
	}
	return false
}
