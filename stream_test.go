// SPDX-License-Identifier: GPL-2.0-only
// Source: compress_test.go's round-trip harness, generalized to exercise
// Writer/Reader's io.Writer/io.Reader surface instead of Compress/Decompress's
// one-shot buffers.

package zstd

import (
	"bytes"
	"io"
	"testing"
)

func TestStream_RoundTrip(t *testing.T) {
	for _, in := range testInputSet() {
		t.Run(in.name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := NewWriter(&buf, &EncoderParams{Level: 5, Checksum: true})
			if _, err := zw.Write(in.data); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if err := zw.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			zr := NewReader(&buf, nil)
			out, err := io.ReadAll(zr)
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if !bytes.Equal(out, in.data) && !(len(out) == 0 && len(in.data) == 0) {
				t.Fatalf("stream round-trip mismatch: got=%d want=%d", len(out), len(in.data))
			}
		})
	}
}

func TestStream_MultipleWritesSpanBlocks(t *testing.T) {
	chunk := bytes.Repeat([]byte("chunked-write-payload-"), 1000)
	var want bytes.Buffer
	var buf bytes.Buffer
	zw := NewWriter(&buf, nil)
	for i := 0; i < 20; i++ {
		if _, err := zw.Write(chunk); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
		want.Write(chunk)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	zr := NewReader(&buf, nil)
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(out, want.Bytes()) {
		t.Fatalf("multi-write round-trip mismatch: got=%d want=%d", len(out), want.Len())
	}
}

func TestStream_SmallReadBuffer(t *testing.T) {
	data := bytes.Repeat([]byte("small-read-buffer-test"), 500)
	var buf bytes.Buffer
	zw := NewWriter(&buf, nil)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	zr := NewReader(&buf, nil)
	var out bytes.Buffer
	small := make([]byte, 7)
	for {
		n, err := zr.Read(small)
		out.Write(small[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("small-buffer round-trip mismatch: got=%d want=%d", out.Len(), len(data))
	}
}

func TestStream_EmptyWriterProducesValidFrame(t *testing.T) {
	var buf bytes.Buffer
	zw := NewWriter(&buf, nil)
	if err := zw.Close(); err != nil {
		t.Fatalf("Close on an empty Writer failed: %v", err)
	}

	zr := NewReader(&buf, nil)
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(out))
	}
}
