// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import "testing"

func TestSeqCodes_LiteralLengthRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 15, 16, 17, 63, 64, 65535, 100000} {
		code, extraBits, extraValue := literalLengthCode(v)
		baseline, extra := llBaseline(code)
		if extra != extraBits {
			t.Fatalf("literalLengthCode(%d): extraBits=%d, llBaseline(%d) reports extra=%d", v, extraBits, code, extra)
		}
		if got := baseline + extraValue; got != v {
			t.Fatalf("literalLengthCode(%d): baseline(%d)+extraValue(%d) = %d, want %d", v, baseline, extraValue, got, v)
		}
		if extraValue>>extraBits != 0 && extraBits < 32 {
			t.Fatalf("literalLengthCode(%d): extraValue %d doesn't fit in %d bits", v, extraValue, extraBits)
		}
	}
}

func TestSeqCodes_MatchLengthRoundTrip(t *testing.T) {
	for _, v := range []uint32{3, 4, 31, 32, 33, 1000, 1048568 + 20} {
		code, extraBits, extraValue := matchLengthCode(v)
		baseline, extra := mlBaseline(code)
		if extra != extraBits {
			t.Fatalf("matchLengthCode(%d): extraBits=%d, mlBaseline(%d) reports extra=%d", v, extraBits, code, extra)
		}
		if got := baseline + extraValue; got != v {
			t.Fatalf("matchLengthCode(%d): baseline(%d)+extraValue(%d) = %d, want %d", v, baseline, extraValue, got, v)
		}
	}
}

func TestSeqCodes_OffsetRoundTrip(t *testing.T) {
	for _, v := range []uint32{1, 2, 3, 4, 1023, 1024, 1 << 20, 1<<31 - 1} {
		code, extraBits, extraValue := offsetCode(v)
		baseline, extra := ofBaseline(code)
		if extra != extraBits {
			t.Fatalf("offsetCode(%d): extraBits=%d, ofBaseline(%d) reports extra=%d", v, extraBits, code, extra)
		}
		if got := baseline | extraValue; got != v {
			t.Fatalf("offsetCode(%d): baseline(%d)|extraValue(%d) = %d, want %d", v, baseline, extraValue, got, v)
		}
	}
}

func TestSeqCodes_MatchLengthBelowMinimumClampsToThree(t *testing.T) {
	code, _, extraValue := matchLengthCode(0)
	baseline, _ := mlBaseline(code)
	if baseline+extraValue != 3 {
		t.Fatalf("matchLengthCode(0) decodes to %d, want the format minimum 3", baseline+extraValue)
	}
}
