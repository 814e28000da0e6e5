// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import "testing"

func TestBitWriterReader_ReverseOrder(t *testing.T) {
	var w bitWriter
	values := []struct {
		v uint32
		n uint
	}{
		{0x3, 2},
		{0x7F, 7},
		{0x1, 1},
		{0xABCDE, 20},
		{0x0, 3},
		{0x15, 5},
	}
	for _, e := range values {
		w.addBits(e.v, e.n)
	}
	data := w.close()

	r, err := newBitReader(data)
	if err != nil {
		t.Fatalf("newBitReader failed: %v", err)
	}
	for i := len(values) - 1; i >= 0; i-- {
		got := r.readBits(values[i].n)
		if got != values[i].v {
			t.Fatalf("readBits(%d) at reverse index %d = %#x, want %#x", values[i].n, i, got, values[i].v)
		}
	}
	if !r.finished() {
		t.Fatal("expected reader to be exactly exhausted")
	}
}

func TestBitReader_EmptyOrZeroLastByteErrors(t *testing.T) {
	if _, err := newBitReader(nil); err == nil {
		t.Fatal("expected error on empty bitstream")
	}
	if _, err := newBitReader([]byte{0x01, 0x00}); err == nil {
		t.Fatal("expected error when the last byte carries no sentinel bit")
	}
}

func TestBitReader_PeekDoesNotConsume(t *testing.T) {
	var w bitWriter
	w.addBits(0x2A, 8)
	data := w.close()

	r, err := newBitReader(data)
	if err != nil {
		t.Fatalf("newBitReader failed: %v", err)
	}
	p1 := r.peekBits(8)
	p2 := r.peekBits(8)
	if p1 != p2 {
		t.Fatalf("peekBits not idempotent: %#x != %#x", p1, p2)
	}
	r.skipBits(8)
	if got := r.peekBits(8); got != 0 {
		t.Fatalf("expected zero-padding past end of stream, got %#x", got)
	}
}
