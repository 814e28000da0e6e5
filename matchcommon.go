// SPDX-License-Identifier: GPL-2.0-only
// Source: sliding_window.go's searchBestMatch extend-match loop,
// generalized into a position-pair byte-compare helper shared by every
// strategy's match finder.

package zstd

// matchResult is a candidate back-reference: length bytes starting at pos
// match length bytes ending just before the cursor, offsetValue away.
type matchResult struct {
	length      uint32
	offsetValue uint32 // distance in bytes, 0 means "no match"
}

// matchLengthAt counts how many leading bytes of w's data starting at a
// and at b agree, capped by limit (the lookahead still available). Mirrors
// sliding_window.go's searchBestMatch inner extend loop, generalized from
// a fixed ring buffer to window's absolute-position addressing.
func matchLengthAt(w *window, a, b, limit uint32) uint32 {
	var n uint32
	ai, _ := w.local(a)
	bi, _ := w.local(b)
	data := w.data
	for n < limit && ai+int(n) < len(data) && bi+int(n) < len(data) && data[ai+int(n)] == data[bi+int(n)] {
		n++
	}
	return n
}

// bestRepMatch scans the three repeat offsets for the longest match at
// pos, returning the winning rep index (0..2) or -1 if none matches at
// all (spec §3 "repeat offsets are checked first, cheaper to code").
func bestRepMatch(w *window, pos uint32, rep [3]uint32, limit uint32) (repIdx int, length uint32) {
	repIdx = -1
	for i, off := range rep {
		if off == 0 || off > pos {
			continue
		}
		cand := pos - off
		l := matchLengthAt(w, pos, cand, limit)
		if l >= minMatch && l > length {
			length = l
			repIdx = i
		}
	}
	return repIdx, length
}

// matcher is the common interface block_encoder.go's parse loop drives,
// satisfied by fastMatcher, doubleFastMatcher, chainMatcher and
// btreeMatcher. search both looks up the best candidate at pos and
// records pos for future lookups; insert records pos without searching
// (used to skip ahead over bytes the parse loop already consumed as part
// of a match).
type matcher interface {
	insert(w *window, pos uint32)
	search(w *window, pos uint32, rep [3]uint32, limit uint32) matchResult
}

func newMatcher(cp cParams) matcher {
	switch cp.strategy {
	case StrategyFast:
		return newFastMatcher(cp.hashLog)
	case StrategyDoubleFast:
		return newDoubleFastMatcher(cp.hashLog, cp.chainLog)
	case StrategyBtLazy2, StrategyBtOpt, StrategyBtUltra:
		return newBtreeMatcher(cp.hashLog, cp.chainLog, cp.searchLog)
	default: // greedy, lazy, lazy2
		return newChainMatcher(cp.hashLog, cp.chainLog, cp.searchLog)
	}
}

// hashTable is a flat open-addressing-free "last writer wins" table:
// position+1 at each slot, 0 meaning empty. Grounded on sliding_window.go's
// hashHead2/hashHead3 arrays, generalized to a runtime-sized slice so
// hashLog can vary per compression level.
type hashTable struct {
	log   uint
	slots []uint32
}

func newHashTable(log uint) *hashTable {
	return &hashTable{log: log, slots: make([]uint32, 1<<log)}
}

func (h *hashTable) get(key uint32) (pos uint32, ok bool) {
	v := h.slots[key]
	if v == 0 {
		return 0, false
	}
	return v - 1, true
}

func (h *hashTable) set(key, pos uint32) {
	h.slots[key] = pos + 1
}

// reset clears the table; the matchers' reset() methods call it, which
// releaseMatcher does before a matcher goes back to the pool. Dropping
// entries is always safe (a match finder missing a candidate only costs ratio,
// never correctness).
func (h *hashTable) reset() {
	clear(h.slots)
}
