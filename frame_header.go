// SPDX-License-Identifier: GPL-2.0-only
// Source: spec §4.9 frame header layout; loop/dispatch style grounded on
// decompress.go's explicit state-field struct.

package zstd

import "math/bits"

// frameHeader is the decoded form of spec §4.9's frame header.
type frameHeader struct {
	windowLog     uint
	singleSegment bool
	contentSize   int64 // -1 if not present
	dictionaryID  uint32
	checksumFlag  bool
}

// encodeFrameHeader serializes hdr per spec §4.9: a descriptor byte,
// optional window descriptor, optional dictionary ID, optional content
// size, each present/sized according to the descriptor's bits.
func encodeFrameHeader(hdr frameHeader) []byte {
	out := make([]byte, 4, 16)
	m := uint32(magicNumber)
	out[0] = byte(m)
	out[1] = byte(m >> 8)
	out[2] = byte(m >> 16)
	out[3] = byte(m >> 24)

	var descriptor byte
	if hdr.checksumFlag {
		descriptor |= 1 << 2
	}
	if hdr.singleSegment {
		descriptor |= 1 << 5
	}

	dictIDBytes, dictIDFlag := encodeDictionaryID(hdr.dictionaryID)
	descriptor |= dictIDFlag

	fcsFlag, fcsBytes := encodeContentSize(hdr.contentSize, hdr.singleSegment)
	descriptor |= fcsFlag << 6

	out = append(out, descriptor)
	if !hdr.singleSegment {
		out = append(out, encodeWindowDescriptor(hdr.windowLog))
	}
	out = append(out, dictIDBytes...)
	out = append(out, fcsBytes...)
	return out
}

// encodeWindowDescriptor packs windowLog into spec §4.9's single-byte
// exponent+mantissa window descriptor.
func encodeWindowDescriptor(windowLog uint) byte {
	exponent := windowLog - 10
	mantissa := byte(0)
	return byte(exponent<<3) | mantissa
}

func decodeWindowDescriptor(b byte) uint {
	exponent := uint(b >> 3)
	windowLog := 10 + exponent
	return windowLog
}

// encodeDictionaryID returns the wire bytes for a dictionary ID and the
// 2-bit descriptor flag selecting their width (0 = absent, 1/2/4 bytes).
func encodeDictionaryID(id uint32) ([]byte, byte) {
	switch {
	case id == 0:
		return nil, 0
	case id < 1<<8:
		return []byte{byte(id)}, 1
	case id < 1<<16:
		return []byte{byte(id), byte(id >> 8)}, 2
	default:
		return []byte{byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24)}, 3
	}
}

// encodeContentSize returns the 2-bit Frame_Content_Size_Flag and the
// wire bytes for a known content size, per spec §4.9's field-width table
// (the single-segment case always carries at least 1 byte).
func encodeContentSize(size int64, singleSegment bool) (byte, []byte) {
	if size < 0 {
		return 0, nil
	}
	u := uint64(size)
	switch {
	case singleSegment && u < 256:
		return 0, []byte{byte(u)}
	case u >= 256 && u < 65536+256:
		v := u - 256
		return 1, []byte{byte(v), byte(v >> 8)}
	case u < 1<<32:
		return 2, []byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
	default:
		return 3, []byte{
			byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24),
			byte(u >> 32), byte(u >> 40), byte(u >> 48), byte(u >> 56),
		}
	}
}

// decodeFrameHeader parses a frame header (the 4-byte magic already
// consumed by the caller) from the front of data, returning the header and
// bytes consumed.
func decodeFrameHeader(data []byte) (frameHeader, int, error) {
	const op = "decodeFrameHeader"
	if len(data) < 1 {
		return frameHeader{}, 0, wrapErrf(op, KindCorruptionDetected, "missing frame descriptor")
	}
	descriptor := data[0]
	off := 1

	fcsFlag := descriptor >> 6
	singleSegment := descriptor&(1<<5) != 0
	checksumFlag := descriptor&(1<<2) != 0
	dictIDFlag := descriptor & 0x3

	hdr := frameHeader{contentSize: -1, singleSegment: singleSegment, checksumFlag: checksumFlag}

	if !singleSegment {
		if off >= len(data) {
			return frameHeader{}, 0, wrapErrf(op, KindCorruptionDetected, "missing window descriptor")
		}
		hdr.windowLog = decodeWindowDescriptor(data[off])
		off++
	}

	dictIDLen := [4]int{0, 1, 2, 4}[dictIDFlag]
	if dictIDLen > 0 {
		if off+dictIDLen > len(data) {
			return frameHeader{}, 0, wrapErrf(op, KindCorruptionDetected, "truncated dictionary ID")
		}
		var id uint32
		for k := 0; k < dictIDLen; k++ {
			id |= uint32(data[off+k]) << (8 * k)
		}
		hdr.dictionaryID = id
		off += dictIDLen
	}

	fcsLen := [4]int{0, 2, 4, 8}[fcsFlag]
	if singleSegment && fcsLen == 0 {
		fcsLen = 1
	}
	if fcsLen > 0 {
		if off+fcsLen > len(data) {
			return frameHeader{}, 0, wrapErrf(op, KindCorruptionDetected, "truncated content size")
		}
		var size uint64
		for k := 0; k < fcsLen; k++ {
			size |= uint64(data[off+k]) << (8 * k)
		}
		if fcsLen == 2 {
			size += 256
		}
		hdr.contentSize = int64(size)
		off += fcsLen
	}

	if singleSegment {
		hdr.windowLog = uint(bits.Len64(uint64(max(hdr.contentSize, 0)))) + 1
		if hdr.windowLog < minWindowLog {
			hdr.windowLog = minWindowLog
		}
	}

	return hdr, off, nil
}
