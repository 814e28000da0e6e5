// SPDX-License-Identifier: GPL-2.0-only
// Source: compress_1x_fast.go's single-hash, single-candidate parser,
// generalized from LZO's fixed 2-byte key to zstd's hash4 key and from a
// fixed ring buffer to window's absolute positions.

package zstd

// fastMatcher implements StrategyFast: one hash table, one candidate per
// position, no chain walk. Cheapest strategy, used at the lowest levels.
type fastMatcher struct {
	table *hashTable
}

func newFastMatcher(hashLog uint) *fastMatcher {
	return &fastMatcher{table: newHashTable(hashLog)}
}

func (m *fastMatcher) reset() { m.table.reset() }

func (m *fastMatcher) key(w *window, pos uint32) uint32 {
	idx, _ := w.local(pos)
	return hash4(w.data[idx:], m.table.log)
}

// insert records pos in the hash table, overwriting whatever candidate was
// there (compress_1x_fast.go's "latest position wins" discipline).
func (m *fastMatcher) insert(w *window, pos uint32) {
	if idx, ok := w.local(pos); ok && len(w.data)-idx >= 4 {
		m.table.set(m.key(w, pos), pos)
	}
}

// search returns the best of the hash table's single candidate and the
// repeat offsets, inserting pos before returning (so the next call sees
// it).
func (m *fastMatcher) search(w *window, pos uint32, rep [3]uint32, limit uint32) matchResult {
	var best matchResult

	if repIdx, l := bestRepMatch(w, pos, rep, limit); repIdx >= 0 {
		best = matchResult{length: l, offsetValue: rep[repIdx]}
	}

	if idx, ok := w.local(pos); ok && len(w.data)-idx >= 4 {
		key := m.key(w, pos)
		if cand, ok := m.table.get(key); ok && cand < pos {
			l := matchLengthAt(w, pos, cand, limit)
			if l >= minMatch && l > best.length {
				best = matchResult{length: l, offsetValue: pos - cand}
			}
		}
		m.table.set(key, pos)
	}
	return best
}
