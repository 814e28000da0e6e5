// SPDX-License-Identifier: GPL-2.0-only
// Source: compress9x.go's compress9x driving loop (carve input into
// chunks, emit each, append trailer), generalized from LZO's single-shot
// whole-buffer call to zstd's block loop plus checksum trailer.

package zstd

// CompressOptions configures one call to Compress (spec §4.9/§7).
type CompressOptions struct {
	Params *EncoderParams
}

// Compress encodes src as a complete zstd frame per opts (or
// DefaultCompressionLevel if opts/opts.Params is nil).
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	var params *EncoderParams
	if opts != nil {
		params = opts.Params
	}
	cp := params.cparams()

	var hdr frameHeader
	hdr.windowLog = cp.windowLog
	hdr.contentSize = -1
	if params != nil {
		hdr.checksumFlag = params.Checksum
		if params.ContentSize > 0 {
			hdr.contentSize = params.ContentSize
			if params.SingleSegment {
				hdr.singleSegment = true
			}
		}
		if params.Dictionary != nil {
			hdr.dictionaryID = params.Dictionary.ID
		}
	}

	out := encodeFrameHeader(hdr)

	w := newWindow(cp.windowLog)
	var dictContent []byte
	est := &blockEncodeState{rep: repInitial}
	if params != nil && params.Dictionary != nil {
		dictContent = params.Dictionary.Content
		est.rep = params.Dictionary.RepOffsets
	}
	w.reset(dictContent)

	m := acquireMatcher(cp)
	defer releaseMatcher(cp, m)
	store := acquireSeqStore()
	defer releaseSeqStore(store)

	var ldm *ldmMatcher
	if params != nil && params.EnableLongDistanceMatching && len(src) > 0 {
		ldm = newLDMMatcher(src, uint32(len(dictContent)))
	}

	var hasher *contentChecksum
	if hdr.checksumFlag {
		hasher = newContentChecksum()
	}

	if len(src) == 0 {
		out = append(out, encodeBlockHeader(blockRaw, 0, true)...)
	}
	for off := 0; off < len(src); {
		end := min(off+blockSizeMax, len(src))
		chunk := src[off:end]

		if hasher != nil {
			hasher.write(chunk)
		}

		if w.needsOverflowCorrection() {
			w.trim()
		}
		pos := w.append(chunk)
		w.trim()

		typ, body := encodeBlock(w, chunk, pos, m, ldm, cp, est, store)
		last := end == len(src)
		out = append(out, encodeBlockHeader(typ, len(body), last)...)
		out = append(out, body...)

		off = end
	}

	if hasher != nil {
		sum := hasher.sum()
		out = append(out, sum[:]...)
	}
	return out, nil
}

// encodeBlockHeader packs (blockType, blockSize, lastBlock) into spec
// §4.3's 3-byte little-endian block header.
func encodeBlockHeader(typ blockType, size int, last bool) []byte {
	var v uint32
	if last {
		v |= 1
	}
	v |= uint32(typ) << 1
	v |= uint32(size) << 3
	return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
}
