// SPDX-License-Identifier: GPL-2.0-only
// Source: spec §4.11's compress_stream push-style interface, re-expressed
// as an io.WriteCloser the way idiomatic Go streaming codecs (flate,
// gzip) do it instead of the spec's explicit Cursor/Progress C API; the
// per-block drive loop is the same one frame_encoder.go's Compress runs,
// just fed one Write call's worth of bytes at a time instead of the whole
// input at once — grounded on compress9x.go's compress9x loop exactly as
// Compress is, since a stream is just that loop split across calls.

package zstd

import "io"

// Writer compresses bytes written to it into a single zstd frame written
// to the underlying io.Writer, buffering up to one block's worth of input
// between writes (spec §4.11's ZSTD_CStreamInSize = block_max).
type Writer struct {
	w      io.Writer
	params *EncoderParams
	cp     cParams

	win    *window
	m      matcher
	ldm    *ldmMatcher
	store  *seqStore
	est    *blockEncodeState
	hasher *contentChecksum

	pending []byte // buffered input not yet flushed as a block
	wrote   bool   // frame header already written
	closed  bool
	err     error // sticky error from a prior failed Write/Close
}

// NewWriter returns a Writer that streams a compressed frame to w. opts may
// be nil to use DefaultCompressionLevel with no checksum and no dictionary.
func NewWriter(w io.Writer, opts *EncoderParams) *Writer {
	cp := opts.cparams()
	win := newWindow(cp.windowLog)
	est := &blockEncodeState{rep: repInitial}
	var dictContent []byte
	if opts != nil && opts.Dictionary != nil {
		dictContent = opts.Dictionary.Content
		est.rep = opts.Dictionary.RepOffsets
	}
	win.reset(dictContent)
	return &Writer{
		w:      w,
		params: opts,
		cp:     cp,
		win:    win,
		m:      newMatcher(cp),
		store:  &seqStore{},
		est:    est,
	}
}

func (zw *Writer) writeFrameHeaderOnce() error {
	if zw.wrote {
		return nil
	}
	var hdr frameHeader
	hdr.windowLog = zw.cp.windowLog
	hdr.contentSize = -1
	if zw.params != nil {
		hdr.checksumFlag = zw.params.Checksum
		if zw.params.Dictionary != nil {
			hdr.dictionaryID = zw.params.Dictionary.ID
		}
	}
	if hdr.checksumFlag {
		zw.hasher = newContentChecksum()
	}
	if _, err := zw.w.Write(encodeFrameHeader(hdr)); err != nil {
		return err
	}
	zw.wrote = true
	return nil
}

// Write buffers p, flushing one or more complete blocks to the
// underlying writer whenever enough input has accumulated.
func (zw *Writer) Write(p []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	if err := zw.writeFrameHeaderOnce(); err != nil {
		zw.err = err
		return 0, err
	}
	n := len(p)
	zw.pending = append(zw.pending, p...)
	for len(zw.pending) >= blockSizeMax {
		if err := zw.flushBlock(zw.pending[:blockSizeMax], false); err != nil {
			zw.err = err
			return n - len(p), err
		}
		zw.pending = zw.pending[blockSizeMax:]
	}
	return n, nil
}

// flushBlock encodes chunk as one block (last marks it the frame's final
// block) and writes its header+body to the underlying writer.
func (zw *Writer) flushBlock(chunk []byte, last bool) error {
	if zw.hasher != nil {
		zw.hasher.write(chunk)
	}
	if zw.win.needsOverflowCorrection() {
		zw.win.trim()
	}
	pos := zw.win.append(chunk)
	zw.win.trim()

	typ, body := encodeBlock(zw.win, chunk, pos, zw.m, zw.ldm, zw.cp, zw.est, zw.store)
	if _, err := zw.w.Write(encodeBlockHeader(typ, len(body), last)); err != nil {
		return err
	}
	_, err := zw.w.Write(body)
	return err
}

// Close flushes any buffered input as the frame's final block (an empty
// final block if nothing is pending and nothing was ever written, so a
// Writer that's Closed without a Write still emits a valid empty frame)
// and writes the checksum trailer.
func (zw *Writer) Close() error {
	if zw.closed {
		return zw.err
	}
	zw.closed = true
	if zw.err != nil {
		return zw.err
	}
	if err := zw.writeFrameHeaderOnce(); err != nil {
		zw.err = err
		return err
	}
	if err := zw.flushBlock(zw.pending, true); err != nil {
		zw.err = err
		return err
	}
	zw.pending = nil
	if zw.hasher != nil {
		sum := zw.hasher.sum()
		if _, err := zw.w.Write(sum[:]); err != nil {
			zw.err = err
			return err
		}
	}
	return nil
}
