// SPDX-License-Identifier: GPL-2.0-only
// Source: sliding_window.go's chain-walk shape (findBestMatch/
// searchBestMatch), restructured as a binary search tree keyed by suffix
// order rather than a hash chain, which is how the reference
// implementation's btlazy2/btopt/btultra strategies trade chain-walk
// breadth for tree-walk depth at high compression levels.
package zstd

// btreeMatcher implements StrategyBtLazy2/StrategyBtOpt/StrategyBtUltra: a
// binary search tree over window positions, ordered by their suffixes, so
// a single walk down the tree both finds the best match among previously
// inserted positions and tells us where to insert pos as a new node. This
// finds longer matches per unit of search budget than a hash chain, at
// the cost of rebalancing work chain matching doesn't need — which is why
// higher compression levels (11+) pay for it and lower ones don't
// (levelTable in params.go only selects btreeMatcher from level 11 up).
//
// btlazy2 drives this tree through search/insert, the same single-best
// lazy-lookahead loop block_encoder.go uses for the hash-chain strategies.
// btopt/btultra instead drive it through searchAllMatches, which keeps
// every candidate a walk turns up rather than just the longest, and feed
// the result to optparse.go's forward price pass and reverse walk
// (zstd_opt.c's ZSTD_compressBlock_opt_generic) — the two strategies
// genuinely differ in parse strategy, not just in tree depth.
type btreeMatcher struct {
	head      *hashTable
	left      []uint32 // left child, +1-biased; 0 = none
	right     []uint32 // right child, +1-biased; 0 = none
	mask      uint32
	searchLog uint
}

func newBtreeMatcher(hashLog, chainLog, searchLog uint) *btreeMatcher {
	return &btreeMatcher{
		head:      newHashTable(hashLog),
		left:      make([]uint32, 1<<chainLog),
		right:     make([]uint32, 1<<chainLog),
		mask:      (uint32(1) << chainLog) - 1,
		searchLog: searchLog,
	}
}

func (m *btreeMatcher) reset() {
	m.head.reset()
	clear(m.left)
	clear(m.right)
}

func (m *btreeMatcher) insert(w *window, pos uint32) {
	m.walkTree(w, pos, func(uint32, uint32) {})
}

// walkTree descends the tree rooted at pos's hash bucket, comparing
// suffixes to decide left/right at each node and calling visit(cand,
// length) for every node it passes, then splices pos into the tree where
// the walk stopped (classic insert-while-searching BST match finder).
// This is the mechanics search and searchAllMatches share; they differ
// only in what visit does with each candidate.
func (m *btreeMatcher) walkTree(w *window, pos uint32, visit func(cand uint32, length uint32)) {
	idx, ok := w.local(pos)
	if !ok || len(w.data)-idx < 4 {
		return
	}
	key := hash4(w.data[idx:], m.head.log)
	root, has := m.head.get(key)
	m.head.set(key, pos)
	if !has {
		return
	}

	maxDepth := uint(1) << m.searchLog
	cand := root
	var lastLeft, lastRight uint32
	haveLeft, haveRight := false, false
	for depth := uint(0); depth < maxDepth && cand < pos; depth++ {
		l := matchLengthAt(w, pos, cand, ^uint32(0))
		visit(cand, l)

		candIdx, _ := w.local(cand)
		posIdx := idx
		var goLeft bool
		if posIdx+int(l) < len(w.data) && candIdx+int(l) < len(w.data) {
			goLeft = w.data[posIdx+int(l)] < w.data[candIdx+int(l)]
		} else {
			goLeft = len(w.data)-posIdx < len(w.data)-candIdx
		}

		if goLeft {
			lastLeft, haveLeft = cand, true
			nxt := m.left[cand&m.mask]
			if nxt == 0 {
				break
			}
			cand = nxt - 1
		} else {
			lastRight, haveRight = cand, true
			nxt := m.right[cand&m.mask]
			if nxt == 0 {
				break
			}
			cand = nxt - 1
		}
	}

	if haveLeft {
		m.left[lastLeft&m.mask] = 0
		m.right[pos&m.mask] = lastLeft + 1
	} else {
		m.right[pos&m.mask] = 0
	}
	if haveRight {
		m.right[lastRight&m.mask] = 0
		m.left[pos&m.mask] = lastRight + 1
	} else {
		m.left[pos&m.mask] = 0
	}
}

// search is btlazy2's entry point: the single longest candidate at pos,
// among the repeat offsets and whatever the tree walk turns up. With
// limit==0 the walk still runs (so pos is inserted and the tree stays
// ordered), but neither repeat offsets nor tree candidates are reported.
func (m *btreeMatcher) search(w *window, pos uint32, rep [3]uint32, limit uint32) matchResult {
	var best matchResult
	if limit > 0 {
		if repIdx, l := bestRepMatch(w, pos, rep, limit); repIdx >= 0 {
			best = matchResult{length: l, offsetValue: rep[repIdx]}
		}
	}

	m.walkTree(w, pos, func(cand uint32, l uint32) {
		if limit > 0 && l >= minMatch && l > best.length {
			best = matchResult{length: l, offsetValue: pos - cand}
		}
	})
	return best
}

// searchAllMatches is btopt/btultra's entry point: each candidate the tree
// walk turns up that is longer than minLen and than every candidate before
// it, so lengths come out strictly ascending, mirroring ZSTD_insertBtAndGetAllMatches. The optimal parser needs
// the whole ladder of lengths (not just the longest) so it can price a
// shorter match now against a longer one that costs more bits but saves a
// sequence later.
func (m *btreeMatcher) searchAllMatches(w *window, pos uint32, minLen uint32) []matchResult {
	var cands []matchResult
	best := minLen
	m.walkTree(w, pos, func(cand uint32, l uint32) {
		if l > best {
			best = l
			cands = append(cands, matchResult{length: l, offsetValue: pos - cand})
		}
	})
	return cands
}
