// SPDX-License-Identifier: MIT
// Copyright (c) 2026 gozstd contributors

package zstd

import "testing"

// driveMatcher feeds src through m byte-by-byte the way block_encoder.go's
// parse loop does: search at the current position, then insert/advance.
// It returns every match found at least minMatch long, keyed by position.
func driveMatcher(t *testing.T, m matcher, w *window, src []byte) map[uint32]matchResult {
	t.Helper()
	found := make(map[uint32]matchResult)
	base := w.append(src)
	for i := 0; i < len(src); i++ {
		pos := base + uint32(i)
		limit := uint32(len(src) - i)
		cand := m.search(w, pos, [3]uint32{}, limit)
		if cand.length >= minMatch {
			found[pos] = cand
		}
		m.insert(w, pos)
	}
	return found
}

func TestMatchFinders_FindRepeatedPattern(t *testing.T) {
	// "abcdXYZ" repeats; the second occurrence should find a match back to
	// the first for every strategy.
	src := []byte("abcdXYZ----abcdXYZ----abcdXYZ")

	newMatchers := map[string]func() matcher{
		"fast":       func() matcher { return newFastMatcher(10) },
		"doubleFast": func() matcher { return newDoubleFastMatcher(10, 12) },
		"chain":      func() matcher { return newChainMatcher(10, 12, 4) },
		"btree":      func() matcher { return newBtreeMatcher(10, 12, 4) },
	}

	for name, ctor := range newMatchers {
		t.Run(name, func(t *testing.T) {
			w := newWindow(20)
			w.reset(nil)
			m := ctor()

			found := driveMatcher(t, m, w, src)
			secondOccurrence := uint32(11) // index of the second "abcdXYZ"
			cand, ok := found[secondOccurrence]
			if !ok {
				t.Fatalf("%s: expected a match at position %d, found none", name, secondOccurrence)
			}
			if cand.length < 7 {
				t.Fatalf("%s: match length = %d, want at least 7 (\"abcdXYZ\")", name, cand.length)
			}
			if cand.offsetValue != 11 {
				t.Fatalf("%s: offset = %d, want 11 (distance back to the first occurrence)", name, cand.offsetValue)
			}
		})
	}
}

func TestMatchFinders_NoFalseMatchOnDistinctData(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog")

	newMatchers := map[string]func() matcher{
		"fast":       func() matcher { return newFastMatcher(10) },
		"doubleFast": func() matcher { return newDoubleFastMatcher(10, 12) },
		"chain":      func() matcher { return newChainMatcher(10, 12, 4) },
		"btree":      func() matcher { return newBtreeMatcher(10, 12, 4) },
	}

	for name, ctor := range newMatchers {
		t.Run(name, func(t *testing.T) {
			w := newWindow(20)
			w.reset(nil)
			m := ctor()
			found := driveMatcher(t, m, w, src)
			for pos, cand := range found {
				if cand.length > uint32(len(src)) {
					t.Fatalf("%s: implausible match length %d at %d in a %d-byte input", name, cand.length, pos, len(src))
				}
			}
		})
	}
}

func TestBtreeMatcher_SearchAllMatchesReturnsLengthLadder(t *testing.T) {
	// Three nested repeats of increasing overlap length so a walk at the
	// final position should turn up more than one candidate, strictly
	// increasing in length (optparse.go's DP needs the whole ladder, not
	// just the longest).
	src := []byte("XY" + "abcdefgh" + "----" + "abcd" + "----" + "abcdefgh")

	w := newWindow(20)
	w.reset(nil)
	base := w.append(src)
	m := newBtreeMatcher(10, 12, 8)

	for i := 0; i < len(src)-8; i++ {
		m.insert(w, base+uint32(i))
	}

	pos := base + uint32(len(src)-8)
	cands := m.searchAllMatches(w, pos, minMatch-1)
	if len(cands) == 0 {
		t.Fatalf("expected at least one candidate match, found none")
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].length <= cands[i-1].length {
			t.Fatalf("candidates not strictly increasing in length at index %d: %+v", i, cands)
		}
	}
	longest := cands[len(cands)-1]
	if longest.length < 8 {
		t.Fatalf("longest candidate length = %d, want at least 8 (\"abcdefgh\")", longest.length)
	}
}

// resettableMatcher is what pool.go's releaseMatcher expects every
// concrete matcher implementation to satisfy.
type resettableMatcher interface {
	matcher
	reset()
}

func TestMatchFinders_ResetClearsState(t *testing.T) {
	src := []byte("repeat-me-repeat-me-repeat-me")

	newMatchers := map[string]func() resettableMatcher{
		"fast":       func() resettableMatcher { return newFastMatcher(10) },
		"doubleFast": func() resettableMatcher { return newDoubleFastMatcher(10, 12) },
		"chain":      func() resettableMatcher { return newChainMatcher(10, 12, 4) },
		"btree":      func() resettableMatcher { return newBtreeMatcher(10, 12, 4) },
	}

	for name, ctor := range newMatchers {
		t.Run(name, func(t *testing.T) {
			w := newWindow(20)
			w.reset(nil)
			m := ctor()
			driveMatcher(t, m, w, src)
			m.reset()

			w2 := newWindow(20)
			w2.reset(nil)
			pos := w2.append(src)
			cand := m.search(w2, pos, [3]uint32{}, uint32(len(src)))
			if cand.length != 0 && cand.offsetValue >= pos {
				t.Fatalf("%s: search after reset returned a match referencing positions before the new window (offset=%d, pos=%d)", name, cand.offsetValue, pos)
			}
		})
	}
}
