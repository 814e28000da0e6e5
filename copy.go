// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors
// Source: github.com/woozymasta/lzo (copy.go's copyBackRef; back-reference
// copy semantics — including the overlapping, dist<length expansion case —
// are identical between LZO and zstd, so this is adapted nearly verbatim,
// only retargeted at *Error/Kind instead of the LZO sentinel errors).

package zstd

// copyBackRef copies length bytes from dst[outputPos-dist:...] to
// dst[outputPos:...]. When dist < length, LZ semantics require the
// "forward" overlapping expansion where newly written bytes become valid
// source for the remainder of the match; this is done via repeated
// doubling rather than a byte-by-byte loop.
func copyBackRef(dst []byte, outputPos, dist, length int) error {
	const op = "copyBackRef"
	mPos := outputPos - dist
	if mPos < 0 {
		return wrapErrf(op, KindCorruptionDetected, "back-reference distance %d exceeds output position %d", dist, outputPos)
	}
	if outputPos+length > len(dst) {
		return wrapErrf(op, KindDstSizeTooSmall, "back-reference copy overruns destination buffer")
	}

	if dist >= length {
		copy(dst[outputPos:outputPos+length], dst[mPos:mPos+length])
		return nil
	}

	copy(dst[outputPos:outputPos+dist], dst[mPos:outputPos])
	copied := dist
	for copied < length {
		n := copy(dst[outputPos+copied:outputPos+length], dst[outputPos:outputPos+copied])
		copied += n
	}
	return nil
}
