// SPDX-License-Identifier: GPL-2.0-only
// Source: spec §9's "optional pluggable pre-sequencer" open question,
// decided in DESIGN.md as an off-by-default pre-pass; grounded on
// hash.go's hash8 mixing function (reused here at a wider log) and
// matchcommon.go's matchLengthAt shape, since the long-distance matcher is
// structurally "one more hash table with a coarser sampling rate", not a
// new kind of match finder.

package zstd

// ldmMinMatchLength is the shortest match the long-distance pre-pass
// bothers recording; below this length a normal strategy matcher already
// finds it more cheaply within its own window.
const ldmMinMatchLength = 64

// ldmSampleEvery bounds the pre-pass's own cost by only hashing every Nth
// position rather than every position, trading a chance of missing a
// short long-distance match for an O(n/ldmSampleEvery) pass over src.
const ldmSampleEvery = 4

// ldmHashLog sizes the pre-pass's table independent of the chosen
// cParams row, since long-distance matching is meant to help regardless
// of compression level.
const ldmHashLog = 20

// ldmMatcher finds matches reaching further back than a window's maxDist
// allows, by indexing the entire frame's source once before the normal
// block loop runs (spec §9's pre-sequencer idea) rather than maintaining
// its own sliding table the way the per-level strategies do. It never
// replaces the level's own matcher; block_encoder.go's parse loop
// consults it only when asked to and only takes its answer when longer.
type ldmMatcher struct {
	table map[uint32]uint32 // hash8 key -> src-local position
	src   []byte
	base  uint32 // absolute stream position corresponding to src[0]
}

// newLDMMatcher indexes src once, ahead of the block loop. base is the
// absolute position src[0] occupies in the frame's logical stream (i.e.
// the dictionary's length, if any), so offsets it reports line up with
// the positions the normal matchers already use.
func newLDMMatcher(src []byte, base uint32) *ldmMatcher {
	m := &ldmMatcher{
		src:   src,
		base:  base,
		table: make(map[uint32]uint32, len(src)/ldmSampleEvery+1),
	}
	for i := 0; i+8 <= len(src); i += ldmSampleEvery {
		// Keep the first occurrence of each key: the table is built once
		// over the whole frame, so a later query must be able to look back
		// to the earliest candidate rather than have it overwritten by
		// occurrences that are themselves still ahead of that query.
		key := hash8(src[i:], ldmHashLog)
		if _, seen := m.table[key]; !seen {
			m.table[key] = uint32(i)
		}
	}
	return m
}

// search looks up the position at absolute pos (which must satisfy
// pos >= base) against the pre-pass table, returning the longest match it
// can verify by direct byte comparison against src, capped by limit.
func (m *ldmMatcher) search(pos uint32, limit uint32) matchResult {
	local := int(pos - m.base)
	if local < 0 || local+8 > len(m.src) {
		return matchResult{}
	}
	key := hash8(m.src[local:], ldmHashLog)
	cand, ok := m.table[key]
	if !ok || int(cand) >= local {
		return matchResult{}
	}

	var n uint32
	for n < limit && local+int(n) < len(m.src) && m.src[cand+uint32(n)] == m.src[local+int(n)] {
		n++
	}
	if n < ldmMinMatchLength {
		return matchResult{}
	}
	return matchResult{length: n, offsetValue: uint32(local) - cand}
}
