// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo (sliding_window.go's index-table-as-
// plain-array convention; the tabled-ANS algorithm itself is built from
// spec §4.3 directly — no teacher or pack file builds an FSE table)

package zstd

import "math/bits"

// fseSymbolTransform holds the per-symbol constants an FSE encoder needs
// to step from one state to the next (spec §4.3 "Encoder table maps
// (symbol, state) → (new_state, n_bits_to_emit, value_to_emit)").
type fseSymbolTransform struct {
	deltaNbBits    uint32
	deltaFindState int32
}

// fseCTable is a built FSE encode table for one alphabet/accuracyLog.
type fseCTable struct {
	nextState []uint16 // size tableSize; the "spread" permutation, offset by tableSize
	symbolTT  []fseSymbolTransform
	tableLog  uint8
}

// fseDEntry is one decode-table row (spec §4.3 "Decoder table maps state →
// (symbol, n_bits_to_read, base_state)").
type fseDEntry struct {
	newStateBase uint16
	symbol       uint8
	nbBits       uint8
}

// fseDTable is a built FSE decode table.
type fseDTable struct {
	entries  []fseDEntry
	tableLog uint8
}

// fseTableSize returns 1<<accuracyLog as a plain uint32.
func fseTableSize(accuracyLog uint8) uint32 {
	return uint32(1) << accuracyLog
}

// fseSpread computes the state-spreading permutation spec §4.3 describes:
// low-probability (-1) symbols are placed from the table's high end
// downward first, then every other symbol's `count` occurrences are
// scattered at stride step = tableSize/2 + tableSize/8 + 3, skipping
// already-filled low-probability slots.
func fseSpread(normalized []int32, tableLog uint8) []uint16 {
	tableSize := fseTableSize(tableLog)
	tableMask := tableSize - 1
	step := (tableSize >> 1) + (tableSize >> 3) + 3
	highThreshold := tableSize - 1

	table := make([]uint16, tableSize)
	for s, c := range normalized {
		if c == -1 {
			table[highThreshold] = uint16(s)
			highThreshold--
		}
	}

	position := uint32(0)
	for s, c := range normalized {
		if c <= 0 {
			continue
		}
		for i := int32(0); i < c; i++ {
			table[position] = uint16(s)
			position = (position + step) & tableMask
			for position > highThreshold {
				position = (position + step) & tableMask
			}
		}
	}
	return table
}

// fseBuildDTable builds a decode table from normalized counts.
func fseBuildDTable(normalized []int32, tableLog uint8) *fseDTable {
	tableSize := fseTableSize(tableLog)
	spread := fseSpread(normalized, tableLog)

	nextState := make([]int32, len(normalized))
	for s, c := range normalized {
		switch {
		case c == -1:
			nextState[s] = 1
		case c > 0:
			nextState[s] = c
		}
	}

	entries := make([]fseDEntry, tableSize)
	for u := uint32(0); u < tableSize; u++ {
		s := spread[u]
		ns := nextState[s]
		nextState[s]++
		highBit := uint8(bits.Len32(uint32(ns)) - 1)
		nbBits := tableLog - highBit
		newStateBase := uint16((uint32(ns) << nbBits) - tableSize)
		entries[u] = fseDEntry{newStateBase: newStateBase, symbol: uint8(s), nbBits: nbBits}
	}
	return &fseDTable{entries: entries, tableLog: tableLog}
}

// fseBuildCTable builds an encode table from the same normalized counts a
// decode table would use.
func fseBuildCTable(normalized []int32, tableLog uint8) *fseCTable {
	tableSize := fseTableSize(tableLog)
	spread := fseSpread(normalized, tableLog)

	cumul := make([]int32, len(normalized)+1)
	highThreshold := int32(tableSize) - 1
	for s, c := range normalized {
		if c == -1 {
			cumul[s+1] = cumul[s] + 1
			highThreshold--
		} else {
			cumul[s+1] = cumul[s] + max(c, 0)
		}
	}

	nextStateTable := make([]uint16, tableSize)
	cursor := append([]int32(nil), cumul...)
	for u := uint32(0); u < tableSize; u++ {
		s := spread[u]
		nextStateTable[cursor[s]] = uint16(tableSize) + uint16(u)
		cursor[s]++
	}

	symbolTT := make([]fseSymbolTransform, len(normalized))
	total := int32(0)
	for s, c := range normalized {
		switch c {
		case 0:
			continue
		case -1, 1:
			symbolTT[s] = fseSymbolTransform{
				deltaNbBits:    (uint32(tableLog) << 16) - tableSize,
				deltaFindState: total - 1,
			}
			total++
		default:
			// highbit(c-1) = bits.Len32(c-1)-1; maxBitsOut = tableLog - highbit(c-1).
			maxBitsOut := uint32(tableLog) - uint32(bits.Len32(uint32(c-1))-1)
			minStatePlus := uint32(c) << maxBitsOut
			symbolTT[s] = fseSymbolTransform{
				deltaNbBits:    (maxBitsOut << 16) - minStatePlus,
				deltaFindState: total - c,
			}
			total += c
		}
	}

	return &fseCTable{nextState: nextStateTable, symbolTT: symbolTT, tableLog: tableLog}
}

// fseEncoder drives one FSE state through a sequence of encodeSymbol calls
// against a shared bitWriter, matching spec §4.3's "(symbol, state) →
// (new_state, n_bits, value)" encode table.
type fseEncoder struct {
	table *fseCTable
	state uint32
}

func newFSEEncoder(table *fseCTable) *fseEncoder {
	return &fseEncoder{table: table, state: fseTableSize(table.tableLog)}
}

// encodeSymbol steps the state machine for symbol s, emitting whatever
// bits that transition requires into w.
func (e *fseEncoder) encodeSymbol(w *bitWriter, s uint8) {
	tt := e.table.symbolTT[s]
	nbBitsOut := (uint32(e.state) + tt.deltaNbBits) >> 16
	w.addBits(uint32(e.state), uint(nbBitsOut))
	subStateIndex := int32(e.state>>nbBitsOut) + tt.deltaFindState
	e.state = uint32(e.table.nextState[subStateIndex])
}

// flush writes the encoder's final state verbatim (tableLog bits), which a
// decoder reads to initialize its own state.
func (e *fseEncoder) flush(w *bitWriter) {
	w.addBits(e.state, uint(e.table.tableLog))
}

// fseDecoder mirrors fseEncoder for decode, reading from a shared
// bitReader.
type fseDecoder struct {
	table *fseDTable
	state uint32
}

// newFSEDecoder initializes state by reading tableLog bits, the inverse of
// fseEncoder.flush.
func newFSEDecoder(r *bitReader, table *fseDTable) *fseDecoder {
	return &fseDecoder{table: table, state: r.readBits(uint(table.tableLog))}
}

// peekSymbol returns the symbol the current state decodes to, without
// advancing; callers combine this with the sequence-code tables (ll/ml/of)
// to learn how many extra raw bits follow before calling advance.
func (d *fseDecoder) peekSymbol() uint8 {
	return d.table.entries[d.state].symbol
}

// advance reads the current entry's nbBits from r and updates state,
// completing one decode step (spec §4.3).
func (d *fseDecoder) advance(r *bitReader) {
	e := d.table.entries[d.state]
	low := r.readBits(uint(e.nbBits))
	d.state = uint32(e.newStateBase) + low
}
