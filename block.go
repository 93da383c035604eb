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

// blockKind classifies an open container block.
type blockKind uint8

const (
	blockQuote blockKind = iota
	indentedCodeBlock
	listItem
	fencedCode
)

// fenceKind distinguishes the two fenced code block delimiters.
type fenceKind uint8

const (
	fenceTilde fenceKind = iota
	fenceBacktick
)

// minListIndent and maxListIndent bound the content indent a list item
// can record: the single tag byte used at the serialization boundary
// reserves three bits for it.
const (
	minListIndent = 2
	maxListIndent = 8
)

// A block is one open container on the scanner's stack.
// Only the fields relevant to its kind are meaningful.
type block struct {
	kind blockKind

	// Fenced code blocks.
	fence    fenceKind
	fenceLen int

	// List items. contentIndent is the column count a continuation line
	// must reproduce; it is fixed when the item is opened.
	// loose flips to true when a blank line is seen while the item is open
	// and never flips back.
	contentIndent int
	loose         bool
}

// Serialized block tags.
// List items pack looseness and content indent into the tag value,
// mirroring the layout the host stores between incremental reparses.
const (
	tagBlockQuote         = 0
	tagIndentedCodeBlock  = 1
	tagTightListItem      = 2 // ..tagTightListItem+6, content indent 2..8
	tagLooseListItem      = 9 // ..tagLooseListItem+6
	tagFencedCodeTilde    = 16
	tagFencedCodeBacktick = 17
)

// encode packs the block into its single-byte serialized tag.
// A fenced code block's fence length is stored separately
// (see [Scanner.Serialize]); it does not fit in the tag.
func (b block) encode() byte {
	switch b.kind {
	case blockQuote:
		return tagBlockQuote
	case indentedCodeBlock:
		return tagIndentedCodeBlock
	case listItem:
		indent := b.contentIndent
		if indent < minListIndent {
			indent = minListIndent
		}
		if indent > maxListIndent {
			indent = maxListIndent
		}
		if b.loose {
			return byte(tagLooseListItem + indent - minListIndent)
		}
		return byte(tagTightListItem + indent - minListIndent)
	case fencedCode:
		if b.fence == fenceBacktick {
			return tagFencedCodeBacktick
		}
		return tagFencedCodeTilde
	}
	return tagBlockQuote
}

// decodeBlock unpacks a serialized tag byte.
// Out-of-range tags decode as a block quote:
// a truncated image may legitimately be missing stack bytes,
// so deserialization must not fail.
func decodeBlock(tag byte) block {
	switch {
	case tag == tagBlockQuote:
		return block{kind: blockQuote}
	case tag == tagIndentedCodeBlock:
		return block{kind: indentedCodeBlock}
	case tag >= tagTightListItem && tag < tagLooseListItem:
		return block{
			kind:          listItem,
			contentIndent: int(tag) - tagTightListItem + minListIndent,
		}
	case tag >= tagLooseListItem && tag < tagFencedCodeTilde:
		return block{
			kind:          listItem,
			contentIndent: int(tag) - tagLooseListItem + minListIndent,
			loose:         true,
		}
	case tag == tagFencedCodeTilde:
		return block{kind: fencedCode, fence: fenceTilde}
	case tag == tagFencedCodeBacktick:
		return block{kind: fencedCode, fence: fenceBacktick}
	}
	return block{kind: blockQuote}
}
