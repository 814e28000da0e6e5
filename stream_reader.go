// SPDX-License-Identifier: GPL-2.0-only
// Source: spec §4.11's decompress_stream push-style interface, re-expressed
// as an io.Reader the way idiomatic Go streaming codecs do it; block-by-
// block decode is the same decodeBlock frame_decoder.go's Decompress runs,
// just with one block's decoded output held back between Read calls
// instead of the whole frame decoded eagerly.

package zstd

import "io"

// Reader decompresses a single zstd frame read from the underlying
// io.Reader, satisfying io.Reader. Skippable frames preceding the real
// frame are consumed and skipped transparently, matching Decompress's
// tolerance for them.
type Reader struct {
	r      io.Reader
	params *DecoderParams

	hdr     frameHeader
	hdrRead bool
	st      *blockDecodeState
	hasher  *contentChecksum

	// buf is the decode destination decodeBlock appends to: a dictionary
	// content prefix (if any) followed by every content byte decoded so
	// far this frame, since back-references may reach into either. readPos
	// marks how much of buf (always >= dictLen) has already been handed to
	// the caller via Read.
	buf     []byte
	dictLen int
	readPos int
	decoded int64 // bytes of content produced so far, for contentSize checking

	done bool
	err  error
}

// NewReader returns a Reader over r. opts may be nil to accept any window
// size up to the format ceiling and use no dictionary.
func NewReader(r io.Reader, opts *DecoderParams) *Reader {
	return &Reader{r: r, params: opts}
}

func readFull(r io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readFrameHeader consumes magic numbers (skipping any skippable frames
// encountered first) and the frame header, per spec §4.9/§4.10.
func (zr *Reader) readFrameHeader() error {
	const op = "Reader.readFrameHeader"
	for {
		magicBytes, err := readFull(zr.r, 4)
		if err != nil {
			return err
		}
		magic := uint32(magicBytes[0]) | uint32(magicBytes[1])<<8 | uint32(magicBytes[2])<<16 | uint32(magicBytes[3])<<24

		if magic >= magicSkippableStart && magic <= magicSkippableEnd {
			sizeBytes, err := readFull(zr.r, 4)
			if err != nil {
				return err
			}
			size := int(uint32(sizeBytes[0]) | uint32(sizeBytes[1])<<8 | uint32(sizeBytes[2])<<16 | uint32(sizeBytes[3])<<24)
			if _, err := readFull(zr.r, size); err != nil {
				return err
			}
			continue
		}
		if magic != magicNumber {
			return wrapError(op, KindPrefixUnknown, ErrPrefixUnknown)
		}

		descByte, err := readFull(zr.r, 1)
		if err != nil {
			return err
		}
		descriptor := descByte[0]

		rest := 0
		if descriptor&(1<<5) == 0 { // !singleSegment: window descriptor present
			rest++
		}
		dictIDFlag := descriptor & 0x3
		rest += [4]int{0, 1, 2, 4}[dictIDFlag]
		fcsFlag := descriptor >> 6
		fcsLen := [4]int{0, 2, 4, 8}[fcsFlag]
		if descriptor&(1<<5) != 0 && fcsLen == 0 {
			fcsLen = 1
		}
		rest += fcsLen

		restBytes, err := readFull(zr.r, rest)
		if err != nil {
			return err
		}
		full := append([]byte{descriptor}, restBytes...)
		hdr, _, err := decodeFrameHeader(full)
		if err != nil {
			return err
		}
		maxLog := zr.params.maxWindowLog()
		if hdr.windowLog > maxLog {
			return wrapError(op, KindFrameParameterWindowTooLarge, ErrFrameParameterWindowTooLarge)
		}

		var dict *Dictionary
		if zr.params != nil {
			dict = zr.params.Dictionary
		}
		if hdr.dictionaryID != 0 && (dict == nil || dict.ID != hdr.dictionaryID) {
			return wrapError(op, KindDictionaryWrong, ErrDictionaryWrong)
		}

		zr.hdr = hdr
		zr.st = &blockDecodeState{rep: repInitial}
		if dict != nil {
			zr.st.rep = dict.RepOffsets
			zr.buf = append(zr.buf, dict.Content...)
			zr.dictLen = len(dict.Content)
			zr.readPos = zr.dictLen
		}
		if hdr.checksumFlag {
			zr.hasher = newContentChecksum()
		}
		zr.hdrRead = true
		return nil
	}
}

// readBlock reads and decodes the next block, appending its content to
// zr.buf, and reports whether it was the frame's last block.
func (zr *Reader) readBlock() (last bool, err error) {
	bh, err := readFull(zr.r, 3)
	if err != nil {
		return false, err
	}
	v := uint32(bh[0]) | uint32(bh[1])<<8 | uint32(bh[2])<<16
	last = v&1 != 0
	typ := blockType((v >> 1) & 0x3)
	size := int(v >> 3)

	body, err := readFull(zr.r, size)
	if err != nil {
		return false, err
	}

	before := len(zr.buf)
	zr.buf, err = decodeBlock(body, typ, size, zr.buf, zr.st)
	if err != nil {
		return false, err
	}
	produced := zr.buf[before:]
	zr.decoded += int64(len(produced))
	if zr.hasher != nil {
		zr.hasher.write(produced)
	}
	if last {
		if err := zr.finishFrame(); err != nil {
			return false, err
		}
	}
	return last, nil
}

func (zr *Reader) finishFrame() error {
	const op = "Reader.finishFrame"
	if zr.hdr.contentSize >= 0 && zr.decoded != zr.hdr.contentSize {
		return wrapError(op, KindCorruptionDetected, ErrCorruption)
	}
	if zr.hdr.checksumFlag {
		want, err := readFull(zr.r, 4)
		if err != nil {
			return err
		}
		sum := zr.hasher.sum()
		if decodeChecksumTrailer(want) != decodeChecksumTrailer(sum[:]) {
			return wrapError(op, KindChecksumWrong, ErrChecksumWrong)
		}
	}
	return nil
}

// Read implements io.Reader, decoding blocks on demand as the caller's
// buffer is drained.
func (zr *Reader) Read(p []byte) (int, error) {
	if zr.err != nil {
		return 0, zr.err
	}
	if !zr.hdrRead {
		if err := zr.readFrameHeader(); err != nil {
			zr.err = err
			return 0, err
		}
	}
	for zr.readPos == len(zr.buf) && !zr.done {
		last, err := zr.readBlock()
		if err != nil {
			zr.err = err
			return 0, err
		}
		if last {
			zr.done = true
		}
	}
	n := copy(p, zr.buf[zr.readPos:])
	zr.readPos += n
	if n == 0 && zr.done {
		return 0, io.EOF
	}
	return n, nil
}
