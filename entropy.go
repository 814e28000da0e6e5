// SPDX-License-Identifier: GPL-2.0-only
// Source: compress9x.go's lenOfCodedMatch/minLazyMatchGain cost-comparison
// idiom ("is this worth it"), generalized from match-length gain to
// entropy-coding-mode gain; wire layout from spec §4.4/§4.5.

package zstd

// literalsSection is the decoded form of a block's literals section: its
// type and the raw literal bytes. The Huffman table a following litRepeat
// block reuses is passed separately, by encodeLiteralsSection's and
// decodeLiteralsSection's table results.
type literalsSection struct {
	typ     literalsType
	literal []byte
}

// encodeLiteralsSection chooses raw/RLE/compressed/repeat per spec §4.4 and
// returns the wire bytes plus the table and code lengths to remember for a
// possible following litRepeat (nil for raw and RLE sections; the previous
// table itself when litRepeat was chosen).
func encodeLiteralsSection(lits []byte, prevTable *huffmanCTable, prevLengths []uint8) ([]byte, *huffmanCTable, []uint8) {
	if len(lits) == 0 {
		return encodeLiteralsHeader(litRaw, 0, 0), nil, nil
	}
	if allSameByte(lits) {
		hdr := encodeLiteralsHeader(litRLE, len(lits), 1)
		return append(hdr, lits[0]), nil, nil
	}

	var counts [256]uint32
	for _, b := range lits {
		counts[b]++
	}

	if len(lits) >= literalsCompressMin {
		costBits, _ := estimateHuffmanCostBits(&counts)
		costBytes := int((costBits + 7) / 8)
		if costBytes < len(lits) {
			table := buildHuffmanCTable(&counts)
			lengths := tableLengths(table)

			if prevTable != nil && sameLengths(prevLengths, lengths) {
				payload := huffmanPayload(prevTable, lits)
				hdr := encodeLiteralsHeader(litRepeat, len(lits), len(payload))
				return append(hdr, payload...), prevTable, prevLengths
			}

			weights := writeHuffmanWeights(lengths, table.maxBits)
			payload := huffmanPayload(table, lits)
			body := make([]byte, 0, 1+len(weights)+len(payload))
			body = append(body, table.maxBits)
			body = append(body, weights...)
			body = append(body, payload...)
			hdr := encodeLiteralsHeader(litCompressed, len(lits), len(body))
			return append(hdr, body...), table, lengths
		}
	}

	hdr := encodeLiteralsHeader(litRaw, len(lits), 0)
	return append(hdr, lits...), nil, nil
}

// huffmanPayload picks single- vs. four-stream encoding by size (spec
// §4.2). With four streams it writes one header of three 3-byte
// little-endian lengths (for the first three segments) and then all four
// segments; the fourth runs to the end of the payload.
func huffmanPayload(table *huffmanCTable, lits []byte) []byte {
	if len(lits) < fourStreamThreshold {
		return huffmanEncode1X(table, lits)
	}
	segs := huffmanEncode4X(table, lits)
	out := make([]byte, 0)
	var lenHdr [3 * 4]byte
	off := 0
	for i := 0; i < 3; i++ {
		n := len(segs[i])
		lenHdr[off] = byte(n)
		lenHdr[off+1] = byte(n >> 8)
		lenHdr[off+2] = byte(n >> 16)
		off += 3
	}
	out = append(out, lenHdr[:off]...)
	for _, s := range segs {
		out = append(out, s...)
	}
	return out
}

func huffmanUnpack4(body []byte, outLen int) ([4][]byte, error) {
	const op = "huffmanUnpack4"
	if len(body) < 9 {
		return [4][]byte{}, wrapErrf(op, KindCorruptionDetected, "truncated 4-stream length header")
	}
	var lens [3]int
	off := 0
	for i := 0; i < 3; i++ {
		lens[i] = int(body[off]) | int(body[off+1])<<8 | int(body[off+2])<<16
		off += 3
	}
	var segs [4][]byte
	for i := 0; i < 3; i++ {
		if off+lens[i] > len(body) {
			return segs, wrapErrf(op, KindCorruptionDetected, "truncated 4-stream segment %d", i)
		}
		segs[i] = body[off : off+lens[i]]
		off += lens[i]
	}
	segs[3] = body[off:]
	return segs, nil
}

func tableLengths(t *huffmanCTable) []uint8 {
	out := make([]uint8, 256)
	copy(out, t.nbBits[:])
	return out
}

func sameLengths(a, b []uint8) bool {
	if a == nil || b == nil {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func allSameByte(b []byte) bool {
	for i := 1; i < len(b); i++ {
		if b[i] != b[0] {
			return false
		}
	}
	return true
}

// encodeLiteralsHeader packs (type, regeneratedSize, compressedSize) into
// the smallest literals-section header form that fits regeneratedSize:
// 1, 2 or 3 bytes for raw and RLE sections, 2, 4 or 6 bytes for compressed
// and repeat sections.
func encodeLiteralsHeader(typ literalsType, regenSize, compSize int) []byte {
	hasComp := typ == litCompressed || typ == litRepeat
	switch {
	case regenSize < (1 << 5):
		b0 := byte(typ) | byte(regenSize)<<3
		if !hasComp {
			return []byte{b0}
		}
		return []byte{b0, byte(compSize)}
	case regenSize < (1 << 12):
		b0 := byte(typ) | 1<<2 | byte(regenSize&0xF)<<4
		b1 := byte(regenSize >> 4)
		if !hasComp {
			return []byte{b0, b1}
		}
		return []byte{b0, b1, byte(compSize), byte(compSize >> 8)}
	default:
		b0 := byte(typ) | 3<<2 | byte(regenSize&0xF)<<4
		b1 := byte(regenSize >> 4)
		b2 := byte(regenSize >> 12)
		if !hasComp {
			return []byte{b0, b1, b2}
		}
		return []byte{b0, b1, b2, byte(compSize), byte(compSize >> 8), byte(compSize >> 16)}
	}
}

// decodeLiteralsSection parses a literals section from the front of data,
// returning the decoded literal bytes and how many bytes were consumed.
// prevTable/prevLengths carry the previous block's Huffman table forward
// for litRepeat.
func decodeLiteralsSection(data []byte, prevTable *huffmanDTable, prevLengths []uint8) ([]byte, int, *huffmanDTable, []uint8, error) {
	const op = "decodeLiteralsSection"
	if len(data) < 1 {
		return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "empty literals section")
	}
	typ := literalsType(data[0] & 0x3)
	sizeFormat := (data[0] >> 2) & 0x3

	var regenSize, hdrLen int
	switch {
	case typ == litRaw || typ == litRLE:
		if sizeFormat == 0 || sizeFormat == 2 {
			regenSize = int(data[0] >> 3)
			hdrLen = 1
		} else if sizeFormat == 1 {
			if len(data) < 2 {
				return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "truncated literals header")
			}
			regenSize = int(data[0]>>4) | int(data[1])<<4
			hdrLen = 2
		} else {
			if len(data) < 3 {
				return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "truncated literals header")
			}
			regenSize = int(data[0]>>4) | int(data[1])<<4 | int(data[2])<<12
			hdrLen = 3
		}
	default:
		switch sizeFormat {
		case 0, 1:
			if len(data) < 2 {
				return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "truncated literals header")
			}
			regenSize = int(data[0]>>4) | int(data[1])<<4
			hdrLen = 2
		default:
			if len(data) < 3 {
				return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "truncated literals header")
			}
			regenSize = int(data[0]>>4) | int(data[1])<<4 | int(data[2])<<12
			hdrLen = 3
		}
	}

	switch typ {
	case litRaw:
		if hdrLen+regenSize > len(data) {
			return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "truncated raw literals")
		}
		return append([]byte(nil), data[hdrLen:hdrLen+regenSize]...), hdrLen + regenSize, prevTable, prevLengths, nil
	case litRLE:
		if hdrLen+1 > len(data) {
			return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "truncated RLE literals")
		}
		out := make([]byte, regenSize)
		for i := range out {
			out[i] = data[hdrLen]
		}
		return out, hdrLen + 1, prevTable, prevLengths, nil
	case litCompressed, litRepeat:
		if len(data) < hdrLen+1 {
			return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "truncated compressed-literals header")
		}
		compSize := int(data[hdrLen])
		compSize |= int(data[hdrLen+1]) << 8
		if sizeFormat >= 2 {
			compSize |= int(data[hdrLen+2]) << 16
			hdrLen++
		}
		hdrLen += 2
		if hdrLen+compSize > len(data) {
			return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "truncated compressed literals body")
		}
		body := data[hdrLen : hdrLen+compSize]
		consumed := hdrLen + compSize

		dtable, lengths := prevTable, prevLengths
		payload := body
		if typ == litCompressed {
			if len(body) < 1 {
				return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "missing Huffman maxBits byte")
			}
			maxBits := body[0]
			ls, n, err := readHuffmanWeights(body[1:], maxBits)
			if err != nil {
				return nil, 0, nil, nil, err
			}
			dt, err := buildHuffmanDTable(ls)
			if err != nil {
				return nil, 0, nil, nil, err
			}
			dtable, lengths = dt, ls
			payload = body[1+n:]
		}
		if dtable == nil {
			return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "litRepeat with no prior Huffman table")
		}

		var out []byte
		var err error
		if regenSize < fourStreamThreshold {
			out, err = huffmanDecode1X(dtable, payload, regenSize)
		} else {
			var segs [4][]byte
			segs, err = huffmanUnpack4(payload, regenSize)
			if err == nil {
				out, err = huffmanDecode4X(dtable, segs, regenSize)
			}
		}
		if err != nil {
			return nil, 0, nil, nil, err
		}
		return out, consumed, dtable, lengths, nil
	}
	return nil, 0, nil, nil, wrapErrf(op, KindCorruptionDetected, "reserved literals type")
}
