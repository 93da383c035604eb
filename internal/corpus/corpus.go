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

// Package corpus provides the scripted token-sequence examples
// exercised by the scanner tests.
package corpus

import (
	_ "embed"
	"encoding/json"
)

// Step is one host action in a script: either a scan attempt with a
// valid-symbol mask and an expected outcome, or a stretch of text the
// host consumes itself.
type Step struct {
	// Set names a predefined valid-symbol set known to the test harness.
	Set string `json:"set,omitempty"`
	// Extra lists token names added on top of Set.
	Extra []string `json:"extra,omitempty"`
	// Want is the name of the token the scan must emit.
	Want string `json:"want,omitempty"`
	// None expects the scan to decline instead.
	None bool `json:"none,omitempty"`
	// Text is input the host consumes itself; no scan happens.
	Text string `json:"text,omitempty"`
}

// Example is a single scripted scan of one input.
type Example struct {
	Name  string `json:"name"`
	Input string `json:"input"`
	Steps []Step `json:"steps"`
}

//go:embed corpus.json
var corpusData []byte

// Load returns the examples from the embedded corpus.
func Load() ([]Example, error) {
	var examples []Example
	if err := json.Unmarshal(corpusData, &examples); err != nil {
		return nil, err
	}
	return examples, nil
}
