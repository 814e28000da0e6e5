// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import (
	"reflect"
	"testing"
)

func TestSequencesSection_RoundTrip(t *testing.T) {
	seqs := []sequence{
		{litLen: 3, matchLen: 5, offsetValue: 2},
		{litLen: 1, matchLen: 4, offsetValue: 5},
		{litLen: 10, matchLen: 200, offsetValue: 9000},
	}
	data := encodeSequencesSection(seqs)
	got, consumed, next, err := decodeSequencesSection(data, nil)
	if err != nil {
		t.Fatalf("decodeSequencesSection failed: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(data))
	}
	if !reflect.DeepEqual(got, seqs) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, seqs)
	}
	if next == nil {
		t.Fatal("expected a non-nil repeat state after decoding a sequences section")
	}
}

func TestSequencesSection_EmptyEncodesAsZeroCount(t *testing.T) {
	data := encodeSequencesSection(nil)
	got, consumed, next, err := decodeSequencesSection(data, nil)
	if err != nil {
		t.Fatalf("decodeSequencesSection failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no sequences, got %d", len(got))
	}
	if consumed != 1 {
		t.Fatalf("consumed %d bytes for an empty sequences section, want 1", consumed)
	}
	_ = next
}

// buildRepeatModeBlock hand-packs a second block's sequences section that
// selects Repeat_Mode for all three streams, reusing the predefined C
// tables directly — valid only when the previous block also used
// Predefined mode for LL/OF/ML, which decodeSequencesSection's prev
// argument must reflect.
func buildRepeatModeBlock(seqs []sequence) []byte {
	out := encodeNbSequences(len(seqs))
	modesByte := byte(seqRepeat)<<6 | byte(seqRepeat)<<4 | byte(seqRepeat)<<2
	out = append(out, modesByte)

	llCT, _ := predefinedLLTables()
	mlCT, _ := predefinedMLTables()
	ofCT, _ := predefinedOFTables()

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

func TestSequencesSection_RepeatModeReusesPriorTables(t *testing.T) {
	// A short sequence list so chooseSeqTable always prefers Predefined
	// mode (the table-transmission overhead never pays for itself).
	firstBlock := []sequence{
		{litLen: 2, matchLen: 3, offsetValue: 1},
	}
	data1 := encodeSequencesSection(firstBlock)
	_, _, repeatState, err := decodeSequencesSection(data1, nil)
	if err != nil {
		t.Fatalf("decoding the first block failed: %v", err)
	}

	secondBlock := []sequence{
		{litLen: 4, matchLen: 6, offsetValue: 3},
		{litLen: 0, matchLen: 3, offsetValue: 1},
	}
	data2 := buildRepeatModeBlock(secondBlock)

	got, consumed, _, err := decodeSequencesSection(data2, repeatState)
	if err != nil {
		t.Fatalf("decoding a Repeat_Mode block failed: %v", err)
	}
	if consumed != len(data2) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(data2))
	}
	if !reflect.DeepEqual(got, secondBlock) {
		t.Fatalf("Repeat_Mode round trip mismatch: got %+v want %+v", got, secondBlock)
	}
}

func TestSequencesSection_RepeatModeWithNoPriorStateErrors(t *testing.T) {
	data := buildRepeatModeBlock([]sequence{{litLen: 1, matchLen: 3, offsetValue: 1}})
	_, _, _, err := decodeSequencesSection(data, nil)
	if err == nil {
		t.Fatal("expected an error for Repeat_Mode with no prior sequences section")
	}
}
