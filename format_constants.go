// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors
// Source: github.com/woozymasta/lzo (format_constants.go layout)

package zstd

// Wire-format constants for the current frame revision (spec §6). A clean
// reimplementation targets exactly this revision; any other magic is
// rejected with ErrPrefixUnknown rather than parsed.

const (
	// magicNumber is the 4-byte little-endian frame magic.
	magicNumber uint32 = 0xFD2FB528

	// magicSkippableStart/End bound the 16 skippable-frame magic numbers.
	magicSkippableStart uint32 = 0x184D2A50
	magicSkippableEnd   uint32 = 0x184D2A5F

	// minWindowLog/maxWindowLog bound window_log in the window descriptor.
	minWindowLog = 10
	maxWindowLog = 27

	// blockSizeMax is the largest number of source bytes one block may cover.
	blockSizeMax = 128 << 10

	// literalsCompressMin/Max bound literal-stream lengths eligible for
	// Huffman coding (spec §4.4 step 2).
	literalsCompressMin = 63
	literalsCompressMax = 128 << 10

	// fourStreamThreshold: literals streams at or above this length prefer
	// 4-stream Huffman over single-stream (spec §4.2).
	fourStreamThreshold = 1 << 10
)

// blockType identifies the payload encoding of one block.
type blockType uint8

const (
	blockRaw blockType = iota
	blockRLE
	blockCompressed
	blockReserved
)

// literalsType identifies the encoding of one block's literals section.
type literalsType uint8

const (
	litRaw literalsType = iota
	litRLE
	litCompressed
	litRepeat
)

// seqCompressionMode identifies how one of LL/OF/ML's FSE table was
// transmitted (or not transmitted, for predefined/repeat).
type seqCompressionMode uint8

const (
	seqPredefined seqCompressionMode = iota
	seqRLE
	seqFSECompressed
	seqRepeat
)

// repInitial is the repeat-offset state at the start of every frame (spec
// §3, §6), unless overridden by a dictionary's own rep triple.
var repInitial = [3]uint32{1, 4, 8}

// minMatch is the format-level minimum match length (spec §6).
const minMatch = 3

// maxLLCode/maxMLCode/maxOFCode bound the symbol alphabets of the three
// sequence-code FSE tables (spec §4.3, §6).
const (
	maxLLCode = 35
	maxMLCode = 52
	maxOFCode = 31 // unbounded upward in principle; windowLog bounds it in practice
)
