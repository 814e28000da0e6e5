// SPDX-License-Identifier: GPL-2.0-only
// Source: spec §4.9's content checksum field; no teacher file computes a
// running digest (LZO1X carries no checksum), so this wraps the pack's
// xxhash dependency in the teacher's small-helper-type style instead of
// calling it inline at each frame boundary.

package zstd

import "github.com/cespare/xxhash/v2"

// contentChecksum accumulates a frame's decompressed content to produce
// the 4-byte trailer spec §4.9 describes: the low 32 bits of the
// content's xxHash64.
type contentChecksum struct {
	h *xxhash.Digest
}

func newContentChecksum() *contentChecksum {
	return &contentChecksum{h: xxhash.New()}
}

func (c *contentChecksum) write(b []byte) {
	c.h.Write(b)
}

// sum returns the 4 little-endian trailer bytes for the content seen so far.
func (c *contentChecksum) sum() [4]byte {
	v := uint32(c.h.Sum64())
	return [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func decodeChecksumTrailer(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
