// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import (
	"bytes"
	"testing"
)

func TestCopyBackRef_NonOverlapping(t *testing.T) {
	dst := make([]byte, 20)
	copy(dst, []byte("ABCDEFGH"))
	// Copy "ABCD" (dist=8, length=4) to position 8.
	if err := copyBackRef(dst, 8, 8, 4); err != nil {
		t.Fatalf("copyBackRef failed: %v", err)
	}
	if got := string(dst[8:12]); got != "ABCD" {
		t.Fatalf("got %q, want %q", got, "ABCD")
	}
}

func TestCopyBackRef_OverlappingExpansion(t *testing.T) {
	// dist=1, length=6: classic RLE-style run expansion ("A" repeated).
	dst := make([]byte, 10)
	dst[0] = 'A'
	if err := copyBackRef(dst, 1, 1, 6); err != nil {
		t.Fatalf("copyBackRef failed: %v", err)
	}
	want := bytes.Repeat([]byte("A"), 7)
	if !bytes.Equal(dst[:7], want) {
		t.Fatalf("got %q, want %q", dst[:7], want)
	}
}

func TestCopyBackRef_PartialOverlap(t *testing.T) {
	// dist=3 < length=8: the source pattern "XYZ" must repeat, consuming
	// its own freshly-written output as it goes.
	dst := make([]byte, 12)
	copy(dst, []byte("XYZ"))
	if err := copyBackRef(dst, 3, 3, 8); err != nil {
		t.Fatalf("copyBackRef failed: %v", err)
	}
	want := "XYZXYZXYZXY"
	if got := string(dst[:11]); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCopyBackRef_DistanceExceedsOutputPosition(t *testing.T) {
	dst := make([]byte, 10)
	if err := copyBackRef(dst, 2, 5, 3); err == nil {
		t.Fatal("expected an error when dist exceeds outputPos")
	}
}

func TestCopyBackRef_OverrunsDestination(t *testing.T) {
	dst := make([]byte, 10)
	if err := copyBackRef(dst, 8, 4, 5); err == nil {
		t.Fatal("expected an error when the copy would overrun dst")
	}
}
