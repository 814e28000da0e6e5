// SPDX-License-Identifier: GPL-2.0-only
// Source: compress9x.go's lzoCompressor struct holding running encode
// state (pending literal run, output buffer) across the parse loop.

package zstd

// seqStore accumulates one block's parse output: the concatenated literal
// bytes (in the order they'll be emitted) and the sequence list referring
// into them, mirroring the reference implementation's seqStore_t.
type seqStore struct {
	literals []byte
	seqs     []sequence
}

func (s *seqStore) reset() {
	s.literals = s.literals[:0]
	s.seqs = s.seqs[:0]
}

// addSequence appends litLen literal bytes (copied from src) followed by a
// match reference, mirroring how compress9x.go's inner loop alternates
// "copy literal run" and "emit match op".
func (s *seqStore) addSequence(src []byte, litLen, matchLen, offsetValue uint32) {
	s.literals = append(s.literals, src[:litLen]...)
	s.seqs = append(s.seqs, sequence{litLen: litLen, matchLen: matchLen, offsetValue: offsetValue})
}

// addFinalLiterals appends a trailing literal run with no following match
// (the bytes after the last sequence's match, spec §4.3 "final literals").
func (s *seqStore) addFinalLiterals(src []byte) {
	s.literals = append(s.literals, src...)
}

// totalSequenceLiteralLen returns the sum of litLen across all sequences,
// i.e. how many of s.literals belong to in-sequence runs versus the final
// trailing run.
func (s *seqStore) totalSequenceLiteralLen() uint32 {
	var n uint32
	for _, sq := range s.seqs {
		n += sq.litLen
	}
	return n
}
