// SPDX-License-Identifier: GPL-2.0-only
// Source: sliding_window.go's hashHead3/chainNext/hashChainLen hash-chain
// core (head3/findBestMatch/searchBestMatch), generalized from a fixed
//48 KiB LZO ring to a runtime-sized chain table addressed by position
// modulo table size, and from a 3-byte key to zstd's hash4 key.

package zstd

// chainMatcher implements StrategyGreedy/StrategyLazy/StrategyLazy2: a
// hash-head table plus a per-position "next" chain, walked up to a
// configured depth. The greedy/lazy/lazy2 distinction (how far the parse
// loop looks ahead before committing to a match) lives in
// block_encoder.go; this type only ever answers "best match at pos".
type chainMatcher struct {
	head      *hashTable
	next      []uint32 // next[pos & mask] = previous position with the same hash4 key, +1; 0 = none
	mask      uint32
	searchLog uint
}

func newChainMatcher(hashLog, chainLog, searchLog uint) *chainMatcher {
	return &chainMatcher{
		head:      newHashTable(hashLog),
		next:      make([]uint32, 1<<chainLog),
		mask:      (uint32(1) << chainLog) - 1,
		searchLog: searchLog,
	}
}

func (m *chainMatcher) reset() {
	m.head.reset()
	clear(m.next)
}

// insert adds pos to its hash4 bucket's chain, pushing whatever was there
// before onto next.
func (m *chainMatcher) insert(w *window, pos uint32) {
	idx, ok := w.local(pos)
	if !ok || len(w.data)-idx < 4 {
		return
	}
	key := hash4(w.data[idx:], m.head.log)
	if prev, ok := m.head.get(key); ok {
		m.next[pos&m.mask] = prev + 1
	} else {
		m.next[pos&m.mask] = 0
	}
	m.head.set(key, pos)
}

// search walks the chain at pos up to 1<<searchLog candidates, returning
// the longest match found (ties broken toward the nearest/cheapest
// offset, matching sliding_window.go's "first candidate of a given length
// wins" discipline), or the best repeat-offset match if that's longer.
func (m *chainMatcher) search(w *window, pos uint32, rep [3]uint32, limit uint32) matchResult {
	var best matchResult
	if repIdx, l := bestRepMatch(w, pos, rep, limit); repIdx >= 0 {
		best = matchResult{length: l, offsetValue: rep[repIdx]}
	}

	idx, ok := w.local(pos)
	if !ok || len(w.data)-idx < 4 {
		return best
	}

	key := hash4(w.data[idx:], m.head.log)
	cand, ok := m.head.get(key)
	maxDepth := uint(1) << m.searchLog
	for depth := uint(0); ok && depth < maxDepth && cand < pos; depth++ {
		l := matchLengthAt(w, pos, cand, limit)
		if l >= minMatch && l > best.length {
			best = matchResult{length: l, offsetValue: pos - cand}
			if l >= limit {
				break
			}
		}
		nxt := m.next[cand&m.mask]
		if nxt == 0 {
			break
		}
		cand = nxt - 1
	}

	m.insert(w, pos)
	return best
}
