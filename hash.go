// SPDX-License-Identifier: GPL-2.0-only
// Source: sliding_window.go's head2/head3 multiplicative-hash idiom,
// generalized to the wider keys zstd's longer minMatch needs.

package zstd

import "encoding/binary"

// hash3 mixes the first 3 bytes of b into a key bounded by 1<<log.
func hash3(b []byte, log uint) uint32 {
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return (v * 506832829) >> (32 - log)
}

// hash4 mixes the first 4 bytes of b into a key bounded by 1<<log.
func hash4(b []byte, log uint) uint32 {
	v := binary.LittleEndian.Uint32(b)
	return (v * 2654435761) >> (32 - log)
}

// hash8 mixes the first 8 bytes of b into a key bounded by 1<<log,
// giving match_dfast.go a cheap long-range candidate alongside hash4's
// short one.
func hash8(b []byte, log uint) uint32 {
	v := binary.LittleEndian.Uint64(b)
	return uint32((v * 0x9E3779B185EBCA87) >> (64 - log))
}
