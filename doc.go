// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo's package doc comment, restructured
// from LZO1X's match-type/terminator summary to zstd's frame/block model
// and one-shot-vs-streaming entry points.

/*
Package zstd implements a general-purpose lossless compressor modelled on
zstd: sliding-window LZ77 match finding, canonical Huffman and tabled-ANS
(FSE) entropy coding, and zstd's frame/block structure. The literals and
sequences sections use this package's own bit layouts, so the frames it
writes are read by this package's decoder, not by other zstd decoders.

# Compress

Options may be nil (default level 3):

	out, err := zstd.Compress(data, nil)
	out, err := zstd.Compress(data, &zstd.CompressOptions{
		Params: &zstd.EncoderParams{Level: 19, Checksum: true},
	})

For large or streamed input, use a Writer instead of buffering the whole
input:

	zw := zstd.NewWriter(dst, &zstd.EncoderParams{Level: 9})
	if _, err := io.Copy(zw, src); err != nil { ... }
	if err := zw.Close(); err != nil { ... }

# Decompress

	out, err := zstd.Decompress(compressed, nil)

From an io.Reader:

	zr := zstd.NewReader(src, nil)
	out, err := io.ReadAll(zr)

# Dictionaries

A Dictionary seeds an encoder's and decoder's window with shared content,
improving ratio on many small, similar payloads:

	d := zstd.NewDictionary(1, dictBytes)
	out, err := zstd.Compress(data, &zstd.CompressOptions{
		Params: &zstd.EncoderParams{Dictionary: d},
	})
	back, err := zstd.Decompress(out, &zstd.DecompressOptions{
		Params: &zstd.DecoderParams{Dictionary: d},
	})
*/
package zstd
