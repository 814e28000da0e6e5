// SPDX-License-Identifier: GPL-2.0-only
// Source: decompress.go's explicit top-level state loop and
// copyBackRef/copyLiteralRun helpers, generalized from LZO's opcode
// dispatch to zstd's block-header + literals-section + sequences-section
// decode, per spec §4.4/§4.5.

package zstd

// blockDecodeState carries the parts of frame state a block decode needs
// to read and update: the destination buffer position, the repeat-offset
// triple, and the Huffman/FSE tables carried forward for Repeat_Mode.
type blockDecodeState struct {
	rep          [3]uint32
	litDTable    *huffmanDTable
	litLengths   []uint8
	seqTables    *seqRepeatState
}

// decodeBlock parses one block (header already stripped by the caller)
// from data, appending its decompressed content to dst, and returns the
// extended dst.
func decodeBlock(data []byte, typ blockType, blockSize int, dst []byte, st *blockDecodeState) ([]byte, error) {
	const op = "decodeBlock"
	switch typ {
	case blockRaw:
		if blockSize > len(data) {
			return nil, wrapErrf(op, KindCorruptionDetected, "raw block truncated")
		}
		return append(dst, data[:blockSize]...), nil
	case blockRLE:
		if blockSize > len(data) {
			return nil, wrapErrf(op, KindCorruptionDetected, "RLE block truncated")
		}
		if len(data) < 1 {
			return nil, wrapErrf(op, KindCorruptionDetected, "RLE block missing byte")
		}
		b := data[0]
		for i := 0; i < blockSize; i++ {
			dst = append(dst, b)
		}
		return dst, nil
	case blockCompressed:
		return decodeCompressedBlock(data[:blockSize], dst, st)
	default:
		return nil, wrapErrf(op, KindCorruptionDetected, "reserved block type")
	}
}

// decodeCompressedBlock decodes a compressed block's literals section then
// its sequences section, executing each sequence against dst (spec
// §4.3 "sequence execution").
func decodeCompressedBlock(data []byte, dst []byte, st *blockDecodeState) ([]byte, error) {
	const op = "decodeCompressedBlock"

	lits, n, litDTable, litLengths, err := decodeLiteralsSection(data, st.litDTable, st.litLengths)
	if err != nil {
		return nil, err
	}
	st.litDTable, st.litLengths = litDTable, litLengths
	rest := data[n:]

	seqs, _, seqTables, err := decodeSequencesSection(rest, st.seqTables)
	if err != nil {
		return nil, err
	}
	st.seqTables = seqTables

	litPos := 0
	for _, sq := range seqs {
		if litPos+int(sq.litLen) > len(lits) {
			return nil, wrapErrf(op, KindCorruptionDetected, "sequence literal length overruns literals section")
		}
		dst = append(dst, lits[litPos:litPos+int(sq.litLen)]...)
		litPos += int(sq.litLen)

		offsetValue, err := resolveOffset(sq.offsetValue, sq.litLen, &st.rep)
		if err != nil {
			return nil, err
		}

		outputPos := len(dst)
		dst = append(dst, make([]byte, sq.matchLen)...)
		if err := copyBackRef(dst, outputPos, int(offsetValue), int(sq.matchLen)); err != nil {
			return nil, err
		}
	}
	if litPos < len(lits) {
		dst = append(dst, lits[litPos:]...)
	}
	return dst, nil
}

// resolveOffset turns a sequence's wire offsetValue into an actual
// back-reference distance and updates rep, per spec §4.3's repeat-offset
// scheme: a raw offsetValue 1, 2 or 3 selects one of the three repeat
// offsets (offset 3 meaning "repeat[0]-1" when litLen==0, the single
// special case the format carves out), anything else is a new literal
// offset (offsetValue-3) that displaces the repeat history.
func resolveOffset(offsetValue, litLen uint32, rep *[3]uint32) (uint32, error) {
	if offsetValue > 3 {
		actual := offsetValue - 3
		rep[2] = rep[1]
		rep[1] = rep[0]
		rep[0] = actual
		return actual, nil
	}

	idx := int(offsetValue)
	if litLen == 0 {
		// Repeat-offset codes are 1-indexed against "the offset before the
		// most recent one" when no literals intervened (spec §3's repeat-
		// offset special case); code 1 means rep[1], not rep[0].
		idx++
	}
	if idx == 0 {
		idx = 1
	}

	var actual uint32
	switch idx {
	case 1:
		actual = rep[0]
	case 2:
		actual = rep[1]
		rep[1] = rep[0]
		rep[0] = actual
	case 3:
		actual = rep[2]
		rep[2] = rep[1]
		rep[1] = rep[0]
		rep[0] = actual
	default:
		if rep[0] <= 1 {
			return 0, wrapErrf("resolveOffset", KindCorruptionDetected, "repeat offset underflow")
		}
		actual = rep[0] - 1
		rep[2] = rep[1]
		rep[1] = rep[0]
		rep[0] = actual
	}
	if actual == 0 {
		return 0, wrapErrf("resolveOffset", KindCorruptionDetected, "zero back-reference offset")
	}
	return actual, nil
}
