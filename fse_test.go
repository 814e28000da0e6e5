// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import "testing"

func TestFSE_NormalizeWriteReadRoundTrip(t *testing.T) {
	counts := make([]uint32, 8)
	counts[0] = 40
	counts[1] = 20
	counts[2] = 10
	counts[5] = 1
	counts[7] = 1

	var total uint32
	for _, c := range counts {
		total += c
	}
	accuracyLog := chooseAccuracyLog(total, len(counts), 9)
	normalized := normalizeCounts(counts, total, accuracyLog)

	var sum int32
	for _, v := range normalized {
		if v == -1 {
			sum++
		} else {
			sum += v
		}
	}
	if want := int32(fseTableSize(accuracyLog)); sum != want {
		t.Fatalf("normalized counts sum to %d, want tableSize %d", sum, want)
	}

	encoded := writeNormalizedCounts(normalized, accuracyLog)
	gotNorm, gotLog, consumed, err := readNormalizedCounts(encoded, len(counts)-1)
	if err != nil {
		t.Fatalf("readNormalizedCounts failed: %v", err)
	}
	if consumed != len(encoded) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(encoded))
	}
	if gotLog != accuracyLog {
		t.Fatalf("accuracyLog mismatch: got %d want %d", gotLog, accuracyLog)
	}
	for i, v := range normalized {
		if gotNorm[i] != v {
			t.Fatalf("normalized count mismatch at %d: got %d want %d", i, gotNorm[i], v)
		}
	}
}

func TestFSE_EncodeDecodeRoundTrip(t *testing.T) {
	counts := make([]uint32, 6)
	counts[0] = 50
	counts[1] = 30
	counts[2] = 15
	counts[3] = 4
	counts[4] = 2
	counts[5] = 1

	var total uint32
	for _, c := range counts {
		total += c
	}
	accuracyLog := chooseAccuracyLog(total, len(counts), 9)
	normalized := normalizeCounts(counts, total, accuracyLog)

	ctable := fseBuildCTable(normalized, accuracyLog)
	dtable := fseBuildDTable(normalized, accuracyLog)

	symbols := []uint8{0, 1, 0, 2, 1, 0, 3, 0, 1, 4, 0, 5, 1, 0, 2}

	w := &bitWriter{}
	enc := newFSEEncoder(ctable)
	for i := len(symbols) - 1; i >= 0; i-- {
		enc.encodeSymbol(w, symbols[i])
	}
	enc.flush(w)
	data := w.close()

	r, err := newBitReader(data)
	if err != nil {
		t.Fatalf("newBitReader failed: %v", err)
	}
	dec := newFSEDecoder(r, dtable)
	got := make([]uint8, len(symbols))
	for i := range symbols {
		got[i] = dec.peekSymbol()
		dec.advance(r)
	}
	for i, s := range symbols {
		if got[i] != s {
			t.Fatalf("symbol mismatch at %d: got %d want %d", i, got[i], s)
		}
	}
	if r.overrun {
		t.Fatal("bit reader overran the stream")
	}
}

func TestFSE_PredefinedTablesConsistent(t *testing.T) {
	llCT, llDT := predefinedLLTables()
	mlCT, mlDT := predefinedMLTables()
	ofCT, ofDT := predefinedOFTables()

	cases := []struct {
		name string
		ct   *fseCTable
		dt   *fseDTable
	}{
		{"LL", llCT, llDT},
		{"ML", mlCT, mlDT},
		{"OF", ofCT, ofDT},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.ct.tableLog != c.dt.tableLog {
				t.Fatalf("%s: C/D tableLog mismatch: %d vs %d", c.name, c.ct.tableLog, c.dt.tableLog)
			}
			if len(c.dt.entries) != int(fseTableSize(c.dt.tableLog)) {
				t.Fatalf("%s: decode table has %d entries, want %d", c.name, len(c.dt.entries), fseTableSize(c.dt.tableLog))
			}
			if len(c.ct.nextState) != int(fseTableSize(c.ct.tableLog)) {
				t.Fatalf("%s: encode table nextState has %d entries, want %d", c.name, len(c.ct.nextState), fseTableSize(c.ct.tableLog))
			}
		})
	}
}
