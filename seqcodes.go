// SPDX-License-Identifier: GPL-2.0-only
// Source: spec §4.3/§6 sequence-code tables (literal-length, match-length,
// offset); style grounded on format_constants.go's const-table layout.

package zstd

import "math/bits"

// llCodeTable maps a literal-length code (0..35) to its baseline value and
// extra-bit count (spec §6). Codes 16..35 use progressively wider extra
// fields; codes 0..15 map 1:1 to their baseline with no extra bits.
var llCodeTable = [maxLLCode + 1]struct {
	baseline uint32
	extra    uint8
}{
	{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0},
	{8, 0}, {9, 0}, {10, 0}, {11, 0}, {12, 0}, {13, 0}, {14, 0}, {15, 0},
	{16, 1}, {18, 1}, {20, 1}, {22, 1}, {24, 2}, {28, 2}, {32, 3}, {40, 3},
	{48, 4}, {64, 6}, {128, 7}, {256, 8}, {512, 9}, {1024, 10}, {2048, 11},
	{4096, 12}, {8192, 13}, {16384, 14}, {32768, 15}, {65536, 16},
}

// mlCodeTable maps a match-length code (0..52) to its baseline and
// extra-bit count (spec §6). Baselines start at 3, the format minimum
// match length.
var mlCodeTable = [maxMLCode + 1]struct {
	baseline uint32
	extra    uint8
}{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 0}, {12, 0}, {13, 0}, {14, 0}, {15, 0}, {16, 0}, {17, 0}, {18, 0},
	{19, 0}, {20, 0}, {21, 0}, {22, 0}, {23, 0}, {24, 0}, {25, 0}, {26, 0},
	{27, 0}, {28, 0}, {29, 0}, {30, 0}, {31, 0}, {32, 1}, {34, 1}, {36, 1},
	{38, 1}, {40, 2}, {44, 2}, {48, 3}, {56, 4}, {72, 4}, {88, 5}, {120, 7},
	{248, 8}, {504, 9}, {1016, 10}, {2040, 11}, {4088, 12}, {8184, 13},
	{16376, 14}, {32760, 15}, {65528, 16}, {131064, 17}, {262136, 18},
	{524280, 19}, {1048568, 20},
}

// literalLengthCode returns the code, extra-bit count and extra value for a
// literal-length value, scanning the table top-down since code widths grow
// monotonically with value.
func literalLengthCode(v uint32) (code uint8, extraBits uint8, extraValue uint32) {
	for c := maxLLCode; c >= 0; c-- {
		if v >= llCodeTable[c].baseline {
			return uint8(c), llCodeTable[c].extra, v - llCodeTable[c].baseline
		}
	}
	return 0, 0, v
}

// matchLengthCode is literalLengthCode's counterpart for match lengths.
func matchLengthCode(v uint32) (code uint8, extraBits uint8, extraValue uint32) {
	if v < 3 {
		v = 3
	}
	for c := maxMLCode; c >= 0; c-- {
		if v >= mlCodeTable[c].baseline {
			return uint8(c), mlCodeTable[c].extra, v - mlCodeTable[c].baseline
		}
	}
	return 0, 0, v - 3
}

// offsetCode returns the offset code (= floor(log2(offsetValue))) and its
// extra-bit count for a raw (already +3-biased, see block_encoder.go)
// offset value. The code's extra-bit value is offsetValue with its top bit
// cleared.
func offsetCode(offsetValue uint32) (code uint8, extraBits uint8, extraValue uint32) {
	if offsetValue == 0 {
		return 0, 0, 0
	}
	bl := uint8(31 - bits.LeadingZeros32(offsetValue))
	return bl, bl, offsetValue &^ (1 << bl)
}

// llBaseline/mlBaseline/ofBaseline decode a code back to its baseline value,
// used by the sequence executor once extra bits have been read.
func llBaseline(code uint8) (baseline uint32, extra uint8) {
	if int(code) >= len(llCodeTable) {
		return 0, 0
	}
	e := llCodeTable[code]
	return e.baseline, e.extra
}

func mlBaseline(code uint8) (baseline uint32, extra uint8) {
	if int(code) >= len(mlCodeTable) {
		return 0, 0
	}
	e := mlCodeTable[code]
	return e.baseline, e.extra
}

func ofBaseline(code uint8) (baseline uint32, extra uint8) {
	return 1 << code, code
}
