// SPDX-License-Identifier: GPL-2.0-only
// Source: sliding_window.go's ring-buffer position bookkeeping
// (positionToOffset, removeNode), generalized from a fixed-size LZO ring to
// an index-space model with rebasing; overflow correction grounded on the
// klauspost/compress zstd double-fast encoder's "shift table entries down,
// clamp negatives to zero" idiom (see other_examples/ enc_dfast.go excerpt).

package zstd

// window holds the bytes a match finder may reference: the bytes of the
// current block plus however much history windowLog allows, optionally
// seeded by a dictionary's content. Unlike sliding_window.go's literal
// ring buffer, history here is addressed by a monotonically increasing
// cursor (spec §3's MatchState.cursor) so hash-table entries never need
// translating except after an explicit correctOverflow pass.
type window struct {
	data      []byte // history + current block, contiguous
	dictLen   int    // bytes of data sourced from a dictionary's content
	cursor    uint32 // absolute position of data[0] in the logical stream
	windowLog uint
	maxDist   uint32
}

func newWindow(windowLog uint) *window {
	return &window{windowLog: windowLog, maxDist: uint32(1) << windowLog}
}

// reset clears accumulated history, optionally reseeding it from a
// dictionary's raw content (spec §9 "dictionary content seeds the
// window").
func (w *window) reset(dictContent []byte) {
	w.data = w.data[:0]
	if len(dictContent) > 0 {
		w.data = append(w.data, dictContent...)
	}
	w.dictLen = len(dictContent)
	w.cursor = 0
}

// append adds freshly-seen input bytes to the window, returning the
// absolute position of the first appended byte.
func (w *window) append(b []byte) uint32 {
	pos := w.cursor + uint32(len(w.data))
	w.data = append(w.data, b...)
	return pos
}

// size returns how many bytes of history+current data are buffered.
func (w *window) size() int { return len(w.data) }

// absolute returns the absolute stream position corresponding to a local
// index into w.data.
func (w *window) absolute(localIdx int) uint32 { return w.cursor + uint32(localIdx) }

// local returns the index into w.data for an absolute stream position,
// and whether that position is still in-window.
func (w *window) local(abs uint32) (int, bool) {
	if abs < w.cursor {
		return 0, false
	}
	idx := int(abs - w.cursor)
	return idx, idx < len(w.data)
}

// at returns the byte at absolute position abs.
func (w *window) at(abs uint32) byte {
	idx, _ := w.local(abs)
	return w.data[idx]
}

// slice returns w.data[from:to] addressed by absolute positions.
func (w *window) slice(from, to uint32) []byte {
	fi, _ := w.local(from)
	ti, _ := w.local(to)
	return w.data[fi:ti]
}

// trim drops the oldest history so that at most maxDist+blockSizeMax bytes
// stay resident (a full block plus maxDist bytes behind its start), keeping the window's resident set bounded the way sliding_window.go's
// ring buffer did implicitly via fixed size — here done explicitly since
// the window isn't a fixed-size ring.
func (w *window) trim() {
	excess := len(w.data) - int(w.maxDist) - blockSizeMax
	if excess <= 0 {
		return
	}
	// The dictionary-seeded prefix ages out like any other history: once a
	// back-reference distance exceeds maxDist, zstd's own offset encoding
	// can no longer address it anyway, dictionary or not.
	w.data = w.data[excess:]
	if excess < w.dictLen {
		w.dictLen -= excess
	} else {
		w.dictLen = 0
	}
	w.cursor += uint32(excess)
}

// correctOverflow rebases cursor and every absolute position held in hash
// tables when the running position approaches uint32 wraparound. Grounded
// on klauspost/compress's enc_dfast.go `e.cur` correction: positions below
// the rebase point are clamped to zero (treated as "no longer matchable")
// rather than negative, since a hash slot with no valid entry must read as
// empty, not as a stale small offset.
func correctOverflow(positions []uint32, rebaseBy uint32) {
	for i, p := range positions {
		if p < rebaseBy {
			positions[i] = 0
		} else {
			positions[i] = p - rebaseBy
		}
	}
}

// overflowCorrectionThreshold matches the klauspost encoder's margin: once
// cursor plus resident data approaches this bound, every hash table must
// be corrected before the next append, since match-finder code stores
// positions in uint32 and compares them without wraparound awareness.
const overflowCorrectionThreshold = uint32(1) << 30

// needsOverflowCorrection reports whether the window's absolute position
// range is close enough to uint32 overflow that correctOverflow must run
// before further appends.
func (w *window) needsOverflowCorrection() bool {
	return w.cursor+uint32(len(w.data)) >= overflowCorrectionThreshold
}
