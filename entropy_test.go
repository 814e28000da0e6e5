// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestEntropy_LiteralsSection_Empty(t *testing.T) {
	data, _, _ := encodeLiteralsSection(nil, nil, nil)
	out, consumed, _, _, err := decodeLiteralsSection(data, nil, nil)
	if err != nil {
		t.Fatalf("decodeLiteralsSection failed: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(data))
	}
	if len(out) != 0 {
		t.Fatalf("expected no literals, got %d", len(out))
	}
}

func TestEntropy_LiteralsSection_RLE(t *testing.T) {
	lits := bytes.Repeat([]byte{0x42}, 500)
	data, _, _ := encodeLiteralsSection(lits, nil, nil)
	if literalsType(data[0]&0x3) != litRLE {
		t.Fatalf("expected litRLE for a single repeated byte, got type %d", data[0]&0x3)
	}
	out, consumed, _, _, err := decodeLiteralsSection(data, nil, nil)
	if err != nil {
		t.Fatalf("decodeLiteralsSection failed: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(data))
	}
	if !bytes.Equal(out, lits) {
		t.Fatal("RLE literals round-trip mismatch")
	}
}

func TestEntropy_LiteralsSection_RawBelowCompressMin(t *testing.T) {
	lits := []byte("abcdefgh") // short, below literalsCompressMin and not uniform
	data, _, _ := encodeLiteralsSection(lits, nil, nil)
	if literalsType(data[0]&0x3) != litRaw {
		t.Fatalf("expected litRaw for a short stream, got type %d", data[0]&0x3)
	}
	out, consumed, _, _, err := decodeLiteralsSection(data, nil, nil)
	if err != nil {
		t.Fatalf("decodeLiteralsSection failed: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(data))
	}
	if !bytes.Equal(out, lits) {
		t.Fatal("raw literals round-trip mismatch")
	}
}

func skewedLiterals(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, n)
	for i := range out {
		switch {
		case rng.Intn(10) < 6:
			out[i] = 'e'
		case rng.Intn(10) < 8:
			out[i] = 't'
		default:
			out[i] = byte(rng.Intn(256))
		}
	}
	return out
}

func TestEntropy_LiteralsSection_Compressed1X(t *testing.T) {
	lits := skewedLiterals(500, 1) // above literalsCompressMin, below fourStreamThreshold
	data, table, lengths := encodeLiteralsSection(lits, nil, nil)
	if literalsType(data[0]&0x3) != litCompressed {
		t.Fatalf("expected litCompressed for skewed 500-byte input, got type %d", data[0]&0x3)
	}
	if table == nil || lengths == nil {
		t.Fatal("expected a Huffman table to be returned for litCompressed")
	}
	out, consumed, _, _, err := decodeLiteralsSection(data, nil, nil)
	if err != nil {
		t.Fatalf("decodeLiteralsSection failed: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(data))
	}
	if !bytes.Equal(out, lits) {
		t.Fatal("compressed (1X) literals round-trip mismatch")
	}
}

func TestEntropy_LiteralsSection_Compressed4X(t *testing.T) {
	lits := skewedLiterals(5000, 2) // above fourStreamThreshold
	data, _, _ := encodeLiteralsSection(lits, nil, nil)
	if literalsType(data[0]&0x3) != litCompressed {
		t.Fatalf("expected litCompressed for skewed 5000-byte input, got type %d", data[0]&0x3)
	}
	out, consumed, _, _, err := decodeLiteralsSection(data, nil, nil)
	if err != nil {
		t.Fatalf("decodeLiteralsSection failed: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(data))
	}
	if !bytes.Equal(out, lits) {
		t.Fatal("compressed (4X) literals round-trip mismatch")
	}
}

func TestEntropy_LiteralsSection_RepeatReusesTable(t *testing.T) {
	first := skewedLiterals(500, 3)
	data1, ctable, lengths := encodeLiteralsSection(first, nil, nil)
	if literalsType(data1[0]&0x3) != litCompressed {
		t.Fatalf("expected litCompressed for the first block, got type %d", data1[0]&0x3)
	}
	_, _, dtable1, decLengths1, err := decodeLiteralsSection(data1, nil, nil)
	if err != nil {
		t.Fatalf("decoding the first block failed: %v", err)
	}

	second := skewedLiterals(500, 3) // same distribution/seed -> same Huffman lengths
	data2, _, _ := encodeLiteralsSection(second, ctable, lengths)
	if literalsType(data2[0]&0x3) != litRepeat {
		t.Fatalf("expected litRepeat when the distribution is unchanged, got type %d", data2[0]&0x3)
	}

	out, consumed, _, _, err := decodeLiteralsSection(data2, dtable1, decLengths1)
	if err != nil {
		t.Fatalf("decoding the litRepeat block failed: %v", err)
	}
	if consumed != len(data2) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(data2))
	}
	if !bytes.Equal(out, second) {
		t.Fatal("litRepeat literals round-trip mismatch")
	}
}
