// SPDX-License-Identifier: GPL-2.0-only
// Source: sliding_window_pool.go's acquire/release pair around a sync.Pool,
// generalized from a single pooled dictionary type to the two scratch
// arenas a frame encode allocates per call (seqStore and matcher).

package zstd

import "sync"

var seqStorePool = sync.Pool{
	New: func() any { return &seqStore{} },
}

// acquireSeqStore returns a zeroed seqStore from the pool, for reuse across
// the many blocks one Compress call encodes.
func acquireSeqStore() *seqStore {
	s := seqStorePool.Get().(*seqStore)
	s.reset()
	return s
}

func releaseSeqStore(s *seqStore) {
	if s == nil {
		return
	}
	seqStorePool.Put(s)
}

// matcherPool caches matchers keyed by the cParams row that built them, so
// repeated Compress calls at the same level don't re-allocate hash tables
// every time. Matchers aren't safe for concurrent reuse across calls, only
// sequential reuse after release.
var matcherPool sync.Map // cParams -> *sync.Pool

func acquireMatcher(cp cParams) matcher {
	v, _ := matcherPool.LoadOrStore(cp, &sync.Pool{
		New: func() any { return newMatcher(cp) },
	})
	pool := v.(*sync.Pool)
	return pool.Get().(matcher)
}

func releaseMatcher(cp cParams, m matcher) {
	if m == nil {
		return
	}
	if mr, ok := m.(interface{ reset() }); ok {
		mr.reset()
	}
	v, ok := matcherPool.Load(cp)
	if !ok {
		return
	}
	v.(*sync.Pool).Put(m)
}
