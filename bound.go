// SPDX-License-Identifier: GPL-2.0-only
// Source: compress_1x_999.go's maxCompressedSize, generalized from LZO's
// flat "input + input/16 + 64 + 3" fudge factor to zstd's block-structured
// worst case, where the raw-block fallback (block_encoder.go's
// encodeBlock) bounds per-block expansion to a fixed header cost rather
// than a percentage of the block.

package zstd

// CompressBound returns the largest size Compress can produce for an input
// of srcSize bytes at any EncoderParams, so callers that want to
// preallocate a destination buffer have an exact ceiling. Every block that
// would expand under compression falls back to blockRaw (src bytes plus a
// 3-byte header), so the only per-block overhead is that header; the
// total overhead is bounded by the number of blocks srcSize splits into,
// plus one frame header and one checksum trailer.
func CompressBound(srcSize int) int {
	if srcSize <= 0 {
		return frameHeaderMaxSize + blockHeaderSize + checksumTrailerSize
	}
	numBlocks := (srcSize + blockSizeMax - 1) / blockSizeMax
	return srcSize + numBlocks*blockHeaderSize + frameHeaderMaxSize + checksumTrailerSize
}

// frameHeaderMaxSize is the largest a frame header can be: 4-byte magic +
// 1-byte descriptor + 1-byte window descriptor + 4-byte dictionary ID +
// 8-byte content size (spec §4.9).
const frameHeaderMaxSize = 4 + 1 + 1 + 4 + 8

// blockHeaderSize is spec §4.3's fixed 3-byte block header.
const blockHeaderSize = 3

// checksumTrailerSize is the 4-byte truncated xxHash64 trailer spec §4.9
// appends when Checksum is enabled.
const checksumTrailerSize = 4
