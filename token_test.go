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

import "testing"

func TestATXMarkersAreContiguous(t *testing.T) {
	// Heading markers are computed by offset from the level.
	if AtxH6Marker != AtxH1Marker+5 {
		t.Fatalf("AtxH6Marker = %d; want %d", AtxH6Marker, AtxH1Marker+5)
	}
	for level := 1; level <= 6; level++ {
		want := "AtxH" + string(rune('0'+level)) + "Marker"
		if got := atxMarker(level).String(); got != want {
			t.Errorf("atxMarker(%d) = %s; want %s", level, got, want)
		}
	}
}

func TestTokenNames(t *testing.T) {
	for tok := TokenType(0); tok < TokenCount; tok++ {
		if tok.String() == "" {
			t.Errorf("token %d has no name", tok)
		}
	}
	if got := TokenType(200).String(); got != "TokenType(200)" {
		t.Errorf("TokenType(200).String() = %q", got)
	}
}

func TestSymbolSetFromSlice(t *testing.T) {
	valid := make([]bool, TokenCount+5)
	valid[LineEnding] = true
	valid[EmphasisCloseUnderscore] = true
	valid[TokenCount] = true // out of range, dropped

	set := SymbolSetFromSlice(valid)
	if !set.Has(LineEnding) || !set.Has(EmphasisCloseUnderscore) {
		t.Error("set is missing tokens from the slice")
	}
	for tok := TokenType(0); tok < TokenCount; tok++ {
		if tok != LineEnding && tok != EmphasisCloseUnderscore && set.Has(tok) {
			t.Errorf("set unexpectedly contains %v", tok)
		}
	}
}
