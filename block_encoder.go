// SPDX-License-Identifier: GPL-2.0-only
// Source: compress9x.go's compress9x outer loop (scan for a match, flush
// pending literals, emit match, repeat), generalized from LZO's M2/M3/M4
// opcode selection to zstd's sequence model, with a lazy-matching lookahead
// adapted from compress_1x_999.go's best-offset-by-length bookkeeping.

package zstd

// blockEncodeState carries per-block parse output plus the frame-level
// state (repeat offsets, Huffman/FSE carry-forward) a block's encoding
// both reads and updates.
type blockEncodeState struct {
	rep        [3]uint32
	litCTable  *huffmanCTable
	litLengths []uint8
	opt        *optState // btopt/btultra only; carries price-model stats across blocks
}

// lazyLookahead returns how many extra candidate positions the parse loop
// compares before committing to a match, approximating the
// greedy/lazy/lazy2 strategy tiers (spec §3 "Strategy"): 0 commits to the
// first sufficient match found (greedy and the hash-only strategies), 1
// or 2 look that many positions ahead and give up the current match for
// one literal byte when a match d bytes ahead is longer than it by more
// than d (compress_1x_999.go's "is waiting one byte worth it" comparison,
// generalized from LZO's single m.len check to an arbitrary lookahead
// depth). btopt/btultra never reach this function; see optparse.go.
func lazyLookahead(s Strategy) int {
	switch s {
	case StrategyLazy:
		return 1
	case StrategyLazy2:
		return 2
	default:
		return 0
	}
}

// encodeBlockSequences runs the match-finder parse loop over src (one
// block's worth of source bytes, already appended to w), producing a
// seqStore. pos is src's absolute starting position in w. ldm, when
// non-nil (EncoderParams.EnableLongDistanceMatching), is consulted
// alongside m at each position and preferred whenever it reports a longer
// match than m's own window can reach. StrategyBtOpt/StrategyBtUltra are
// diverted to optparse.go's forward price pass and reverse walk instead
// of this lazy-lookahead loop (spec §4.5's defining behavior for those
// two strategies); everything else uses the loop below.
func encodeBlockSequences(w *window, src []byte, pos uint32, m matcher, ldm *ldmMatcher, cp cParams, st *blockEncodeState, store *seqStore) {
	store.reset()

	if cp.strategy == StrategyBtOpt || cp.strategy == StrategyBtUltra {
		if bm, ok := m.(*btreeMatcher); ok {
			if st.opt == nil {
				st.opt = &optState{}
			}
			optimalParse(w, src, pos, bm, ldm, st.opt, cp.strategy == StrategyBtUltra, uint32(cp.targetLen), st, store)
			return
		}
	}

	lookahead := lazyLookahead(cp.strategy)

	i := 0
	litStart := 0
	end := uint32(len(src))

	for i < len(src) {
		cur := pos + uint32(i)
		limit := end - uint32(i)
		if limit > blockSizeMax {
			limit = blockSizeMax
		}

		cand := m.search(w, cur, st.rep, limit)
		if ldm != nil {
			if ldmCand := ldm.search(cur, limit); ldmCand.length > cand.length {
				cand = ldmCand
			}
		}
		if cand.length < minMatch {
			m.insert(w, cur)
			i++
			continue
		}

		// Lazy lookahead: if a match d bytes ahead (d = 1..lookahead) is
		// longer than the current one by more than d, treat this position
		// as a literal and retry from the next one.
		deferred := false
		for d := 1; d <= lookahead && i+d < len(src); d++ {
			nextPos := cur + uint32(d)
			nextLimit := limit - uint32(d)
			nextCand := m.search(w, nextPos, st.rep, nextLimit)
			if nextCand.length > cand.length+uint32(d) {
				m.insert(w, cur)
				i++
				deferred = true
				break
			}
		}
		if deferred {
			continue
		}

		litLen := uint32(i - litStart)
		wire := encodeOffset(cand.offsetValue, litLen, &st.rep)
		store.addSequence(src[litStart:i], litLen, cand.length, wire)

		matchEnd := i + int(cand.length)
		for j := i; j < matchEnd && j < len(src); j++ {
			m.insert(w, pos+uint32(j))
		}
		i = matchEnd
		litStart = i
	}

	if litStart < len(src) {
		store.addFinalLiterals(src[litStart:])
	}
}

// encodeOffset maps an actual back-reference distance to its wire
// offsetValue and advances rep, by trying each repeat-offset code through
// resolveOffset and taking whichever reproduces the target distance —
// guaranteeing this stays the exact inverse of decodeBlock's
// resolveOffset without duplicating its branches.
func encodeOffset(actual uint32, litLen uint32, rep *[3]uint32) uint32 {
	for code := uint32(1); code <= 3; code++ {
		trial := *rep
		got, err := resolveOffset(code, litLen, &trial)
		if err == nil && got == actual {
			*rep = trial
			return code
		}
	}
	wire := actual + 3
	rep[2], rep[1], rep[0] = rep[1], rep[0], actual
	return wire
}

// encodeBlock runs the parse loop then serializes literals and sequences
// sections, choosing a raw fallback when compression doesn't shrink the
// block (spec §4.3 "raw block fallback").
func encodeBlock(w *window, src []byte, pos uint32, m matcher, ldm *ldmMatcher, cp cParams, st *blockEncodeState, store *seqStore) (blockType, []byte) {
	encodeBlockSequences(w, src, pos, m, ldm, cp, st, store)

	litBytes, litTable, litLengths := encodeLiteralsSection(store.literals, st.litCTable, st.litLengths)
	st.litCTable, st.litLengths = litTable, litLengths
	seqBytes := encodeSequencesSection(store.seqs)

	body := make([]byte, 0, len(litBytes)+len(seqBytes))
	body = append(body, litBytes...)
	body = append(body, seqBytes...)

	if len(body) >= len(src) {
		if allSameByte(src) && len(src) > 0 {
			return blockRLE, src[:1]
		}
		return blockRaw, src
	}
	return blockCompressed, body
}
