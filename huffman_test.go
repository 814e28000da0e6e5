// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import (
	"bytes"
	"math/rand"
	"testing"
)

func countBytes(src []byte) *[256]uint32 {
	var counts [256]uint32
	for _, b := range src {
		counts[b]++
	}
	return &counts
}

func TestHuffman_Encode1XDecode1XRoundTrip(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again")
	counts := countBytes(src)
	ctable := buildHuffmanCTable(counts)

	lengths := make([]uint8, 256)
	copy(lengths, ctable.nbBits[:])
	dtable, err := buildHuffmanDTable(lengths)
	if err != nil {
		t.Fatalf("buildHuffmanDTable failed: %v", err)
	}

	encoded := huffmanEncode1X(ctable, src)
	decoded, err := huffmanDecode1X(dtable, encoded, len(src))
	if err != nil {
		t.Fatalf("huffmanDecode1X failed: %v", err)
	}
	if !bytes.Equal(decoded, src) {
		t.Fatalf("1X round-trip mismatch: got %q want %q", decoded, src)
	}
}

func TestHuffman_Encode4XDecode4XRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	src := make([]byte, 5000)
	for i := range src {
		// Skewed distribution so Huffman coding actually has something to do.
		switch {
		case rng.Intn(10) < 6:
			src[i] = 'a'
		case rng.Intn(10) < 8:
			src[i] = 'b'
		default:
			src[i] = byte(rng.Intn(256))
		}
	}
	counts := countBytes(src)
	ctable := buildHuffmanCTable(counts)
	lengths := make([]uint8, 256)
	copy(lengths, ctable.nbBits[:])
	dtable, err := buildHuffmanDTable(lengths)
	if err != nil {
		t.Fatalf("buildHuffmanDTable failed: %v", err)
	}

	segments := huffmanEncode4X(ctable, src)
	decoded, err := huffmanDecode4X(dtable, segments, len(src))
	if err != nil {
		t.Fatalf("huffmanDecode4X failed: %v", err)
	}
	if !bytes.Equal(decoded, src) {
		t.Fatal("4X round-trip mismatch")
	}
}

func TestHuffman_WeightsRoundTrip(t *testing.T) {
	lengths := []uint8{1, 2, 2, 3, 3, 3, 3, 0, 0, 4}
	var maxBits uint8
	for _, l := range lengths {
		if l > maxBits {
			maxBits = l
		}
	}
	encoded := writeHuffmanWeights(lengths, maxBits)
	got, _, err := readHuffmanWeights(encoded, maxBits)
	if err != nil {
		t.Fatalf("readHuffmanWeights failed: %v", err)
	}
	if len(got) < len(lengths) {
		t.Fatalf("decoded fewer weights (%d) than encoded (%d)", len(got), len(lengths))
	}
	for i, l := range lengths {
		if got[i] != l {
			t.Fatalf("weight mismatch at %d: got %d want %d", i, got[i], l)
		}
	}
}
