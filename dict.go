// SPDX-License-Identifier: GPL-2.0-only
// Source: sliding_window.go's slidingWindowDict (a byte buffer seeding match
// state ahead of the real input), generalized from LZO's dictionary-less
// format to zstd's raw-content dictionary (spec §4.9 "Dictionary_ID",
// SPEC_FULL.md's dictionary supplement).

package zstd

// Dictionary is raw dictionary content shared between an encoder and a
// decoder out of band. Its bytes seed the window's history before the
// first block, so early sequences can reference it exactly like content
// produced earlier in the same frame, and RepOffsets seeds the repeat-
// offset triple the same way a frame's own history would.
//
// This implementation only supports the "raw content" dictionary form:
// the entropy-tables dictionary variant (a Dictionary_ID magic followed by
// serialized Huffman/FSE tables, per the upstream format) is out of scope —
// every block still transmits its own tables.
type Dictionary struct {
	// ID is transmitted in frames built with this dictionary and checked
	// against on decode (spec §4.9's Dictionary_ID field). Zero means "no
	// ID", which a decoder accepts from any frame that itself carries no
	// Dictionary_ID.
	ID uint32
	// Content is prepended to a frame's window as history.
	Content []byte
	// RepOffsets seeds the repeat-offset triple instead of repInitial. A
	// zero value is invalid as a dictionary's own offsets (offsets are
	// 1-indexed distances); callers that don't want to override the
	// default history should leave this as repInitial's value.
	RepOffsets [3]uint32
}

// NewDictionary builds a Dictionary from raw content with the default
// repeat-offset seed, matching what an encoder uses when it starts a frame
// with no prior history.
func NewDictionary(id uint32, content []byte) *Dictionary {
	return &Dictionary{ID: id, Content: content, RepOffsets: repInitial}
}
