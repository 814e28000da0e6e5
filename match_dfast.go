// SPDX-License-Identifier: GPL-2.0-only
// Source: other_examples/ grafana-k6 vendored klauspost/compress zstd
// enc_dfast.go excerpt — the two-table (short hash4 + long hash8) shape is
// taken directly from that encoder's dFastEncoder, re-expressed over
// window's absolute-position model instead of klauspost's own ring.

package zstd

// doubleFastMatcher implements StrategyDoubleFast: a short (4-byte) and a
// long (8-byte) hash table, each single-candidate, preferring whichever
// finds the longer match.
type doubleFastMatcher struct {
	short *hashTable
	long  *hashTable
}

func newDoubleFastMatcher(hashLog, chainLog uint) *doubleFastMatcher {
	return &doubleFastMatcher{short: newHashTable(hashLog), long: newHashTable(chainLog)}
}

func (m *doubleFastMatcher) reset() {
	m.short.reset()
	m.long.reset()
}

func (m *doubleFastMatcher) insert(w *window, pos uint32) {
	idx, ok := w.local(pos)
	if !ok {
		return
	}
	if len(w.data)-idx >= 4 {
		m.short.set(hash4(w.data[idx:], m.short.log), pos)
	}
	if len(w.data)-idx >= 8 {
		m.long.set(hash8(w.data[idx:], m.long.log), pos)
	}
}

func (m *doubleFastMatcher) search(w *window, pos uint32, rep [3]uint32, limit uint32) matchResult {
	var best matchResult
	if repIdx, l := bestRepMatch(w, pos, rep, limit); repIdx >= 0 {
		best = matchResult{length: l, offsetValue: rep[repIdx]}
	}

	idx, ok := w.local(pos)
	if !ok {
		return best
	}

	if len(w.data)-idx >= 8 {
		key := hash8(w.data[idx:], m.long.log)
		if cand, ok := m.long.get(key); ok && cand < pos {
			l := matchLengthAt(w, pos, cand, limit)
			if l >= minMatch && l > best.length {
				best = matchResult{length: l, offsetValue: pos - cand}
			}
		}
		m.long.set(key, pos)
	}
	if len(w.data)-idx >= 4 {
		key := hash4(w.data[idx:], m.short.log)
		if cand, ok := m.short.get(key); ok && cand < pos {
			l := matchLengthAt(w, pos, cand, limit)
			if l >= minMatch && l > best.length {
				best = matchResult{length: l, offsetValue: pos - cand}
			}
		}
		m.short.set(key, pos)
	}
	return best
}
