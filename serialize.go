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

// Serialized layout: seven header bytes, then one tag byte per open
// block, outermost first. The delimiter byte holds the open fence's
// length when the top of the stack is a fenced code block, and the
// pending code span's otherwise; the two can never be live at once.
const (
	serializedHeaderLen = 7

	// MaxSerializedLen is the buffer size [Scanner.Serialize] requires.
	MaxSerializedLen = 255

	// maxSerializedBlocks is how many open blocks fit in the image.
	// A deeper stack loses its deepest entries.
	maxSerializedBlocks = MaxSerializedLen - serializedHeaderLen
)

// Serialize writes the scanner's state into buf and returns the number
// of bytes written, at most [MaxSerializedLen]. It panics if buf is
// shorter than the image.
func (s *Scanner) Serialize(buf []byte) int {
	delimiter := s.codeSpanDelimiter
	if n := len(s.openBlocks); n > 0 && s.openBlocks[n-1].kind == fencedCode {
		delimiter = s.openBlocks[n-1].fenceLen
	}
	buf[0] = s.matchedByte()
	buf[1] = byte(s.indentation)
	buf[2] = byte(s.column)
	buf[3] = byte(delimiter)
	buf[4] = byte(s.emphasisDelimiters)
	buf[5] = byte(s.emphasisDelimitersLeft)
	buf[6] = 0
	if s.emphasisIsOpen {
		buf[6] = 1
	}
	n := len(s.openBlocks)
	if n > maxSerializedBlocks {
		n = maxSerializedBlocks
	}
	for i := 0; i < n; i++ {
		buf[serializedHeaderLen+i] = s.openBlocks[i].encode()
	}
	return serializedHeaderLen + n
}

// Deserialize restores state from an image produced by [Serialize].
// An empty buffer resets the scanner to a fresh state.
// Options are configuration rather than state and are preserved.
//
// Unknown block tags decode as block quotes instead of failing:
// a truncated image is still usable minus its deepest blocks.
func (s *Scanner) Deserialize(buf []byte) {
	opts := s.Options
	*s = Scanner{Options: opts}
	if len(buf) < serializedHeaderLen {
		return
	}
	s.indentation = int(buf[1])
	s.column = int(buf[2])
	delimiter := int(buf[3])
	s.codeSpanDelimiter = delimiter
	s.emphasisDelimiters = int(buf[4])
	s.emphasisDelimitersLeft = int(buf[5])
	s.emphasisIsOpen = buf[6] != 0
	for _, tag := range buf[serializedHeaderLen:] {
		s.openBlocks = append(s.openBlocks, decodeBlock(tag))
	}
	if n := len(s.openBlocks); n > 0 && s.openBlocks[n-1].kind == fencedCode {
		s.openBlocks[n-1].fenceLen = delimiter
	}
	switch m := int(buf[0]); {
	case m < len(s.openBlocks):
		s.prefix = m
		s.phase = phaseMatching
	case m == len(s.openBlocks):
		s.prefix = len(s.openBlocks)
		s.phase = phaseOpening
	default:
		s.prefix = len(s.openBlocks)
		s.phase = phaseInline
	}
}
