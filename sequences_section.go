// SPDX-License-Identifier: GPL-2.0-only
// Source: spec §4.3/§4.5 sequences section; bit-interleaving order is a
// self-consistent simplification documented in DESIGN.md (this module is
// both the sole encoder and sole decoder of its own bitstream).

package zstd

// sequence is one decoded (or about-to-be-encoded) LZ sequence: litLen
// literal bytes precede a back-reference of length matchLen. offsetValue is
// the wire offset value: 1..3 select a repeat offset, larger values are the
// distance plus 3 (see encodeOffset and resolveOffset).
type sequence struct {
	litLen      uint32
	matchLen    uint32
	offsetValue uint32
}

// encodeNbSequences packs a sequence count into spec §4.5's 1/2/3-byte
// variable form.
func encodeNbSequences(n int) []byte {
	switch {
	case n == 0:
		return []byte{0}
	case n < 128:
		return []byte{byte(n)}
	case n < 0x7F00:
		return []byte{byte((n>>8)&0xFF) | 0x80, byte(n)}
	default:
		v := n - 0x7F00
		return []byte{0xFF, byte(v), byte(v >> 8)}
	}
}

func decodeNbSequences(data []byte) (n, consumed int, err error) {
	if len(data) < 1 {
		return 0, 0, wrapErrf("decodeNbSequences", KindCorruptionDetected, "empty sequences section")
	}
	b0 := data[0]
	switch {
	case b0 == 0:
		return 0, 1, nil
	case b0 < 128:
		return int(b0), 1, nil
	case b0 < 255:
		if len(data) < 2 {
			return 0, 0, wrapErrf("decodeNbSequences", KindCorruptionDetected, "truncated sequence count")
		}
		return (int(b0-0x80) << 8) | int(data[1]), 2, nil
	default:
		if len(data) < 3 {
			return 0, 0, wrapErrf("decodeNbSequences", KindCorruptionDetected, "truncated sequence count")
		}
		return (int(data[1]) | int(data[2])<<8) + 0x7F00, 3, nil
	}
}

// seqTableSet bundles the three code tables (decode side) or table-build
// inputs (encode side) for one block's sequences section.
type seqTableSet struct {
	llMode, ofMode, mlMode seqCompressionMode
	llC                    *fseCTable
	ofC                    *fseCTable
	mlC                    *fseCTable
	llD                    *fseDTable
	ofD                    *fseDTable
	mlD                    *fseDTable
	llNorm, ofNorm, mlNorm []int32
	llLog, ofLog, mlLog    uint8
}

// chooseSeqTable decides predefined vs. FSE-compressed for one symbol
// stream by comparing estimated bit costs (compress9x.go's
// "is this worth it" gain-comparison idiom, generalized from match gain to
// entropy-coding gain). The encoder never emits RLE or repeat modes — both
// are supported on decode for format completeness, but a one-shot,
// context-free block encoder has no cheap way to know a "previous block's
// table" is still a good fit, so always re-deriving a table is simpler and
// never wrong, only potentially a little larger (see DESIGN.md).
func chooseSeqTable(codes []uint8, alphabetSize int, predefined []int32, predefinedLog, maxLog uint8) (mode seqCompressionMode, norm []int32, log uint8) {
	var counts [256]uint32
	maxSym := 0
	for _, c := range codes {
		counts[c]++
		if int(c) > maxSym {
			maxSym = int(c)
		}
	}
	if len(codes) == 0 {
		return seqPredefined, predefined, predefinedLog
	}

	predefCost := entropyCostBits(counts[:alphabetSize], predefined, predefinedLog)

	customLog := chooseAccuracyLog(uint32(len(codes)), maxSym+1, maxLog)
	customNorm := normalizeCounts(counts[:alphabetSize], uint32(len(codes)), customLog)
	customCost := entropyCostBits(counts[:alphabetSize], customNorm, customLog) + float64(len(writeNormalizedCounts(customNorm, customLog)))*8

	if customCost < predefCost {
		return seqFSECompressed, customNorm, customLog
	}
	return seqPredefined, predefined, predefinedLog
}

// encodeSequencesSection packs seqs into spec §4.3/§4.5's wire form: a
// sequence count, a compression-modes byte, each stream's table (when
// compressed), then the interleaved bitstream.
func encodeSequencesSection(seqs []sequence) []byte {
	out := encodeNbSequences(len(seqs))
	if len(seqs) == 0 {
		return out
	}

	llCodes := make([]uint8, len(seqs))
	mlCodes := make([]uint8, len(seqs))
	ofCodes := make([]uint8, len(seqs))
	llExtraN := make([]uint8, len(seqs))
	mlExtraN := make([]uint8, len(seqs))
	ofExtraN := make([]uint8, len(seqs))
	llExtraV := make([]uint32, len(seqs))
	mlExtraV := make([]uint32, len(seqs))
	ofExtraV := make([]uint32, len(seqs))
	for i, s := range seqs {
		llCodes[i], llExtraN[i], llExtraV[i] = literalLengthCode(s.litLen)
		mlCodes[i], mlExtraN[i], mlExtraV[i] = matchLengthCode(s.matchLen)
		ofCodes[i], ofExtraN[i], ofExtraV[i] = offsetCode(s.offsetValue)
	}

	llMode, llNorm, llLog := chooseSeqTable(llCodes, maxLLCode+1, predefinedLLCounts, llDefaultAccuracyLog, llMaxAccuracyLog)
	mlMode, mlNorm, mlLog := chooseSeqTable(mlCodes, maxMLCode+1, predefinedMLCounts, mlDefaultAccuracyLog, mlMaxAccuracyLog)
	ofAlphabet := maxOFCode + 1
	ofMode, ofNorm, ofLog := chooseSeqTable(ofCodes, ofAlphabet, predefinedOFCounts, ofDefaultAccuracyLog, ofMaxAccuracyLog)

	modesByte := byte(llMode)<<6 | byte(ofMode)<<4 | byte(mlMode)<<2
	out = append(out, modesByte)

	if llMode == seqFSECompressed {
		out = append(out, writeNormalizedCounts(llNorm, llLog)...)
	}
	if ofMode == seqFSECompressed {
		out = append(out, writeNormalizedCounts(ofNorm, ofLog)...)
	}
	if mlMode == seqFSECompressed {
		out = append(out, writeNormalizedCounts(mlNorm, mlLog)...)
	}

	llCT := fseBuildCTable(llNorm, llLog)
	mlCT := fseBuildCTable(mlNorm, mlLog)
	ofCT := fseBuildCTable(ofNorm, ofLog)

	w := &bitWriter{}
	llEnc := newFSEEncoder(llCT)
	mlEnc := newFSEEncoder(mlCT)
	ofEnc := newFSEEncoder(ofCT)

	for i := len(seqs) - 1; i >= 0; i-- {
		ofEnc.encodeSymbol(w, ofCodes[i])
		mlEnc.encodeSymbol(w, mlCodes[i])
		llEnc.encodeSymbol(w, llCodes[i])
		w.addBits(llExtraV[i], uint(llExtraN[i]))
		w.addBits(mlExtraV[i], uint(mlExtraN[i]))
		w.addBits(ofExtraV[i], uint(ofExtraN[i]))
	}
	llEnc.flush(w)
	mlEnc.flush(w)
	ofEnc.flush(w)

	out = append(out, w.close()...)
	return out
}

// seqRepeatState carries the three sequence-code decode tables from one
// block to the next within a frame, so a following block's Repeat_Mode
// (spec §4.3) can reuse whichever table was actually in effect — whether
// that table arrived as predefined, RLE, FSE-compressed, or itself
// repeated.
type seqRepeatState struct {
	llD, ofD, mlD *fseDTable
}

// decodeSequencesSection is encodeSequencesSection's inverse. prev carries
// the repeat state from the previous block in this frame (nil at the start
// of a frame, where Repeat_Mode is invalid).
func decodeSequencesSection(data []byte, prev *seqRepeatState) ([]sequence, int, *seqRepeatState, error) {
	const op = "decodeSequencesSection"
	nbSeq, off, err := decodeNbSequences(data)
	if err != nil {
		return nil, 0, prev, err
	}
	if nbSeq == 0 {
		return nil, off, prev, nil
	}
	if off >= len(data) {
		return nil, 0, prev, wrapErrf(op, KindCorruptionDetected, "missing compression-modes byte")
	}
	modesByte := data[off]
	off++
	llMode := seqCompressionMode((modesByte >> 6) & 0x3)
	ofMode := seqCompressionMode((modesByte >> 4) & 0x3)
	mlMode := seqCompressionMode((modesByte >> 2) & 0x3)

	readTable := func(mode seqCompressionMode, predefined []int32, predefinedLog uint8, prevTable *fseDTable) (*fseDTable, error) {
		switch mode {
		case seqPredefined:
			return fseBuildDTable(predefined, predefinedLog), nil
		case seqRLE:
			if off >= len(data) {
				return nil, wrapErrf(op, KindCorruptionDetected, "truncated RLE sequence symbol")
			}
			sym := data[off]
			off++
			norm := make([]int32, int(sym)+1)
			norm[sym] = 1
			return fseBuildDTable(norm, 0), nil
		case seqFSECompressed:
			norm, log, n, err := readNormalizedCounts(data[off:], len(predefined)-1)
			if err != nil {
				return nil, err
			}
			off += n
			return fseBuildDTable(norm, log), nil
		default: // seqRepeat
			if prevTable == nil {
				return nil, wrapErrf(op, KindCorruptionDetected, "repeat mode with no prior sequence table")
			}
			return prevTable, nil
		}
	}

	var prevLL, prevOF, prevML *fseDTable
	if prev != nil {
		prevLL, prevOF, prevML = prev.llD, prev.ofD, prev.mlD
	}

	llD, err := readTable(llMode, predefinedLLCounts, llDefaultAccuracyLog, prevLL)
	if err != nil {
		return nil, 0, prev, err
	}
	ofD, err := readTable(ofMode, predefinedOFCounts, ofDefaultAccuracyLog, prevOF)
	if err != nil {
		return nil, 0, prev, err
	}
	mlD, err := readTable(mlMode, predefinedMLCounts, mlDefaultAccuracyLog, prevML)
	if err != nil {
		return nil, 0, prev, err
	}
	next := &seqRepeatState{llD: llD, ofD: ofD, mlD: mlD}

	r, err := newBitReader(data[off:])
	if err != nil {
		return nil, 0, prev, err
	}
	ofDec := newFSEDecoder(r, ofD)
	mlDec := newFSEDecoder(r, mlD)
	llDec := newFSEDecoder(r, llD)

	seqs := make([]sequence, nbSeq)
	for i := 0; i < nbSeq; i++ {
		llCode := llDec.peekSymbol()
		mlCode := mlDec.peekSymbol()
		ofCode := ofDec.peekSymbol()

		llBase, llExtra := llBaseline(llCode)
		mlBase, mlExtra := mlBaseline(mlCode)
		_, ofExtra := ofBaseline(ofCode)

		ofVal := r.readBits(uint(ofExtra))
		mlVal := r.readBits(uint(mlExtra))
		llVal := r.readBits(uint(llExtra))

		offsetValue := (uint32(1) << ofCode) | ofVal

		seqs[i] = sequence{
			litLen:      llBase + llVal,
			matchLen:    mlBase + mlVal,
			offsetValue: offsetValue,
		}

		llDec.advance(r)
		mlDec.advance(r)
		ofDec.advance(r)
	}
	if r.overrun {
		return nil, 0, prev, wrapErrf(op, KindCorruptionDetected, "sequences bitstream overrun")
	}
	return seqs, len(data), next, nil
}
