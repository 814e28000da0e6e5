// SPDX-License-Identifier: GPL-2.0-only
// Source: decompress.go's top-level for{} state dispatch, generalized
// from LZO's opcode-class switch to zstd's magic/header/block-loop/
// checksum pipeline (spec §4.9/§6).

package zstd

// DecompressOptions configures one call to Decompress (spec §7).
type DecompressOptions struct {
	Params *DecoderParams
}

// Decompress decodes a complete zstd frame (or a sequence of frames,
// optionally interspersed with skippable frames — spec §4.10) from src.
func Decompress(src []byte, opts *DecompressOptions) ([]byte, error) {
	var params *DecoderParams
	if opts != nil {
		params = opts.Params
	}

	var out []byte
	for len(src) > 0 {
		n, consumed, err := decodeOneFrame(src, params, &out)
		_ = n
		if err != nil {
			return nil, err
		}
		src = src[consumed:]
	}
	return out, nil
}

// decodeOneFrame decodes a single frame (or skips a single skippable
// frame) from the front of src, appending any decoded content bytes to
// *out, and returns how many bytes of src it consumed.
func decodeOneFrame(src []byte, params *DecoderParams, out *[]byte) (int, int, error) {
	const op = "decodeOneFrame"
	if len(src) < 4 {
		return 0, 0, wrapErrf(op, KindCorruptionDetected, "input too short for a frame magic")
	}
	magic := uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24

	if magic >= magicSkippableStart && magic <= magicSkippableEnd {
		if len(src) < 8 {
			return 0, 0, wrapErrf(op, KindCorruptionDetected, "truncated skippable frame size")
		}
		size := int(uint32(src[4]) | uint32(src[5])<<8 | uint32(src[6])<<16 | uint32(src[7])<<24)
		if 8+size > len(src) {
			return 0, 0, wrapErrf(op, KindCorruptionDetected, "truncated skippable frame content")
		}
		return 0, 8 + size, nil
	}
	if magic != magicNumber {
		return 0, 0, wrapError(op, KindPrefixUnknown, ErrPrefixUnknown)
	}

	hdr, hdrLen, err := decodeFrameHeader(src[4:])
	if err != nil {
		return 0, 0, err
	}
	maxLog := params.maxWindowLog()
	if hdr.windowLog > maxLog {
		return 0, 0, wrapError(op, KindFrameParameterWindowTooLarge, ErrFrameParameterWindowTooLarge)
	}

	var dict *Dictionary
	if params != nil {
		dict = params.Dictionary
	}
	if hdr.dictionaryID != 0 && (dict == nil || dict.ID != hdr.dictionaryID) {
		return 0, 0, wrapError(op, KindDictionaryWrong, ErrDictionaryWrong)
	}

	// frameDst carries the dictionary's content (if any) as a prefix so
	// back-references can reach into it exactly like any other history,
	// without a separate window abstraction on the decode side; the
	// prefix is stripped back off before returning.
	var dictContent []byte
	st := &blockDecodeState{rep: repInitial}
	if dict != nil {
		dictContent = dict.Content
		st.rep = dict.RepOffsets
	}
	frameDst := append([]byte(nil), dictContent...)
	dictLen := len(dictContent)

	pos := 4 + hdrLen
	var hasher *contentChecksum
	if hdr.checksumFlag {
		hasher = newContentChecksum()
	}

	for {
		if pos+3 > len(src) {
			return 0, 0, wrapErrf(op, KindCorruptionDetected, "truncated block header")
		}
		bh := uint32(src[pos]) | uint32(src[pos+1])<<8 | uint32(src[pos+2])<<16
		last := bh&1 != 0
		typ := blockType((bh >> 1) & 0x3)
		size := int(bh >> 3)
		pos += 3
		if pos+size > len(src) {
			return 0, 0, wrapErrf(op, KindCorruptionDetected, "truncated block body")
		}

		before := len(frameDst)
		frameDst, err = decodeBlock(src[pos:pos+size], typ, size, frameDst, st)
		if err != nil {
			return 0, 0, err
		}
		if hasher != nil {
			hasher.write(frameDst[before:])
		}

		pos += size
		if last {
			break
		}
	}

	content := frameDst[dictLen:]
	if hdr.contentSize >= 0 && int64(len(content)) != hdr.contentSize {
		return 0, 0, wrapError(op, KindCorruptionDetected, ErrCorruption)
	}

	if hdr.checksumFlag {
		if pos+4 > len(src) {
			return 0, 0, wrapErrf(op, KindCorruptionDetected, "truncated checksum trailer")
		}
		want := decodeChecksumTrailer(src[pos : pos+4])
		sum := hasher.sum()
		got := decodeChecksumTrailer(sum[:])
		if want != got {
			return 0, 0, wrapError(op, KindChecksumWrong, ErrChecksumWrong)
		}
		pos += 4
	}

	*out = append(*out, content...)
	return len(content), pos, nil
}
