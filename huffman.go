// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo (sliding_window.go's plain-struct-of-
// arrays convention; no teacher file does entropy coding, so the algorithm
// itself is built from spec §4.2 directly)

package zstd

import "container/heap"

// huffmanMaxBits is the format ceiling on a canonical Huffman code length
// (spec §4.2).
const huffmanMaxBits = 11

// huffmanCTable is a canonical Huffman encode table: code/nbBits per byte
// value, built by buildHuffmanCTable.
type huffmanCTable struct {
	code    [256]uint16
	nbBits  [256]uint8
	maxBits uint8
}

// huffmanDTable is a canonical Huffman decode table: a flat array of size
// 2^maxBits, indexed by the next maxBits bits of the stream, returning the
// symbol and how many of those bits it actually consumed.
type huffmanDTable struct {
	symbol  []byte
	nbBits  []uint8
	maxBits uint8
}

type huffmanNode struct {
	weight      uint32
	symbol      int // -1 for internal nodes
	left, right *huffmanNode
}

type huffmanHeap []*huffmanNode

func (h huffmanHeap) Len() int            { return len(h) }
func (h huffmanHeap) Less(i, j int) bool  { return h[i].weight < h[j].weight }
func (h huffmanHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *huffmanHeap) Push(x any)         { *h = append(*h, x.(*huffmanNode)) }
func (h *huffmanHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	*h = old[:n-1]
	return node
}

// huffmanCodeLengths derives per-symbol code lengths from byte-value
// frequencies by building a Huffman tree and measuring leaf depths, then
// clamping to huffmanMaxBits (spec §4.2 "if max_code_length ≤ 11 ...
// iteratively reduce").
func huffmanCodeLengths(counts *[256]uint32) []uint8 {
	lengths := make([]uint8, 256)

	used := 0
	var only int = -1
	h := make(huffmanHeap, 0, 256)
	for sym, c := range counts {
		if c == 0 {
			continue
		}
		used++
		only = sym
		h = append(h, &huffmanNode{weight: c, symbol: sym})
	}
	if used == 0 {
		return lengths
	}
	if used == 1 {
		lengths[only] = 1
		return lengths
	}

	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffmanNode)
		b := heap.Pop(&h).(*huffmanNode)
		heap.Push(&h, &huffmanNode{weight: a.weight + b.weight, symbol: -1, left: a, right: b})
	}
	root := h[0]

	var walk func(n *huffmanNode, depth uint8)
	walk = func(n *huffmanNode, depth uint8) {
		if n.left == nil && n.right == nil {
			if depth == 0 {
				depth = 1
			}
			lengths[n.symbol] = depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(root, 0)

	limitHuffmanLengths(lengths, counts, huffmanMaxBits)
	return lengths
}

// limitHuffmanLengths enforces a Kraft-inequality-satisfying assignment
// once lengths exceeding maxBits are clamped down (which can push the
// scaled Kraft sum over budget). It repeatedly lengthens the
// not-yet-at-maxBits symbol with the largest count, which concentrates the
// compression-ratio cost of the repair on whichever symbol the clamp
// affected most rather than spreading it across rare symbols.
func limitHuffmanLengths(lengths []uint8, counts *[256]uint32, maxBits uint8) {
	for i := range lengths {
		if lengths[i] > maxBits {
			lengths[i] = maxBits
		}
	}

	scale := func(l uint8) uint32 { return uint32(1) << (maxBits - l) }
	var total uint32
	for _, l := range lengths {
		if l > 0 {
			total += scale(l)
		}
	}
	budget := uint32(1) << maxBits

	for total > budget {
		best := -1
		for i, l := range lengths {
			if l == 0 || l >= maxBits {
				continue
			}
			if best == -1 || counts[i] > counts[best] {
				best = i
			}
		}
		if best == -1 {
			break
		}
		total -= scale(lengths[best])
		lengths[best]++
		total += scale(lengths[best])
	}
}

// assignCanonicalCodes builds the standard canonical-Huffman code for each
// symbol: symbols are numbered in increasing (length, symbol) order and
// assigned consecutive integers, widened by a left-shift whenever the
// length increases.
func assignCanonicalCodes(lengths []uint8) (codes [256]uint16, maxBits uint8) {
	var blCount [huffmanMaxBits + 2]int
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
			if l > maxBits {
				maxBits = l
			}
		}
	}

	var nextCode [huffmanMaxBits + 2]uint16
	code := 0
	for bits := 1; bits <= int(maxBits); bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = uint16(code)
	}
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = nextCode[l]
		nextCode[l]++
	}
	return
}

// buildHuffmanCTable builds an encode table from byte-value frequencies.
func buildHuffmanCTable(counts *[256]uint32) *huffmanCTable {
	lengths := huffmanCodeLengths(counts)
	codes, maxBits := assignCanonicalCodes(lengths)
	t := &huffmanCTable{code: codes, maxBits: maxBits}
	for i, l := range lengths {
		t.nbBits[i] = l
	}
	return t
}

// buildHuffmanDTable builds a decode table from the same per-symbol
// lengths an encoder would have produced (transmitted via the weights
// table on the wire; see writeHuffmanWeights/readHuffmanWeights below).
func buildHuffmanDTable(lengths []uint8) (*huffmanDTable, error) {
	codes, maxBits := assignCanonicalCodes(lengths)
	if maxBits == 0 {
		return nil, wrapErrf("buildHuffmanDTable", KindCorruptionDetected, "empty Huffman table")
	}
	size := 1 << maxBits
	d := &huffmanDTable{
		symbol:  make([]byte, size),
		nbBits:  make([]uint8, size),
		maxBits: maxBits,
	}
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		code := codes[sym]
		lo := int(code) << (maxBits - l)
		hi := lo + (1 << (maxBits - l))
		for i := lo; i < hi; i++ {
			d.symbol[i] = byte(sym)
			d.nbBits[i] = l
		}
	}
	return d, nil
}

// estimateHuffmanCostBits returns a lower-bound size in bits (payload plus
// an approximate weights-table header) used to decide raw vs compressed
// literals (spec §4.4 step 2, §4.2 estimate_cost).
func estimateHuffmanCostBits(counts *[256]uint32) (bits uint64, maxSymbol int) {
	lengths := huffmanCodeLengths(counts)
	maxSymbol = -1
	for sym, l := range lengths {
		if l > 0 {
			bits += uint64(counts[sym]) * uint64(l)
			maxSymbol = sym
		}
	}
	if maxSymbol < 0 {
		return 0, -1
	}
	// Header: one length byte plus a packed nibble per symbol 0..maxSymbol.
	bits += 8 + uint64(maxSymbol+1)*4
	return bits, maxSymbol
}

// huffmanEncode1X encodes src as a single reverse-read bitstream. Symbols
// are fed to the bit writer from the end of src backward so that the
// reader — which naturally serves the most-recently-written bits first —
// decodes src[0] first (spec §4.2).
func huffmanEncode1X(table *huffmanCTable, src []byte) []byte {
	w := &bitWriter{}
	for i := len(src) - 1; i >= 0; i-- {
		b := src[i]
		w.addBits(uint32(table.code[b]), uint(table.nbBits[b]))
	}
	return w.close()
}

// huffmanDecode1X decodes outLen bytes from a single reverse-read
// bitstream produced by huffmanEncode1X.
func huffmanDecode1X(dtable *huffmanDTable, bitstream []byte, outLen int) ([]byte, error) {
	if outLen == 0 {
		return nil, nil
	}
	r, err := newBitReader(bitstream)
	if err != nil {
		return nil, err
	}
	out := make([]byte, outLen)
	mb := uint(dtable.maxBits)
	for i := 0; i < outLen; i++ {
		peek := r.peekBits(mb)
		n := dtable.nbBits[peek]
		if n == 0 {
			return nil, wrapErrf("huffmanDecode1X", KindCorruptionDetected, "invalid Huffman code at byte %d", i)
		}
		out[i] = dtable.symbol[peek]
		r.skipBits(uint(n))
	}
	if r.overrun {
		return nil, wrapErrf("huffmanDecode1X", KindCorruptionDetected, "bitstream overrun")
	}
	return out, nil
}

// huffmanSplit4 returns the four literal-stream segment boundaries spec
// §4.2 defines: the first three sized ⌈n/4⌉, the last the remainder.
func huffmanSplit4(n int) [4]int {
	seg := (n + 3) / 4
	var sizes [4]int
	remaining := n
	for i := 0; i < 3; i++ {
		sizes[i] = min(seg, remaining)
		remaining -= sizes[i]
	}
	sizes[3] = remaining
	return sizes
}

// huffmanEncode4X encodes src as four independent reverse-read bitstreams
// (spec §4.2 four-stream mode), returning one compressed segment per
// quarter.
func huffmanEncode4X(table *huffmanCTable, src []byte) [4][]byte {
	sizes := huffmanSplit4(len(src))
	var out [4][]byte
	off := 0
	for i, sz := range sizes {
		out[i] = huffmanEncode1X(table, src[off:off+sz])
		off += sz
	}
	return out
}

// huffmanDecode4X decodes four independent segments back into outLen
// bytes. Real zstd interleaves the four streams through parallel register
// banks for throughput; this decodes them sequentially, which is
// functionally identical and simpler to reason about without a profiler.
func huffmanDecode4X(dtable *huffmanDTable, segments [4][]byte, outLen int) ([]byte, error) {
	sizes := huffmanSplit4(outLen)
	out := make([]byte, 0, outLen)
	for i, sz := range sizes {
		dec, err := huffmanDecode1X(dtable, segments[i], sz)
		if err != nil {
			return nil, err
		}
		out = append(out, dec...)
	}
	return out, nil
}

// Huffman table transmission. Spec §4.2 allows either an FSE-compressed
// weights stream or a packed nibble-per-weight table; this implementation
// always uses the simpler nibble-packed form (a valid, self-consistent
// choice within the format — nothing downstream requires the FSE-weights
// alternative ever be produced, only that a decoder handle what this
// encoder emits).

// huffmanWeight converts a code length to its transmitted weight
// (maxBits+1-length), the inverse of huffmanLengthFromWeight.
func huffmanWeight(l, maxBits uint8) byte {
	if l == 0 {
		return 0
	}
	return maxBits + 1 - l
}

func huffmanLengthFromWeight(w, maxBits uint8) uint8 {
	if w == 0 {
		return 0
	}
	return maxBits + 1 - w
}

// writeHuffmanWeights serializes lengths[0:maxSymbol+1] as a header byte
// (maxSymbol) followed by nibble-packed weights.
func writeHuffmanWeights(lengths []uint8, maxBits uint8) []byte {
	maxSymbol := 0
	for i, l := range lengths {
		if l > 0 {
			maxSymbol = i
		}
	}
	count := maxSymbol + 1
	out := make([]byte, 1, 1+(count+1)/2)
	out[0] = byte(maxSymbol)
	for i := 0; i < count; i += 2 {
		w0 := huffmanWeight(lengths[i], maxBits)
		var w1 byte
		if i+1 < count {
			w1 = huffmanWeight(lengths[i+1], maxBits)
		}
		out = append(out, (w0<<4)|w1)
	}
	return out
}

// readHuffmanWeights parses the format writeHuffmanWeights produces,
// returning the full 256-entry length table and the number of bytes
// consumed from data.
func readHuffmanWeights(data []byte, maxBits uint8) (lengths []uint8, consumed int, err error) {
	if len(data) < 1 {
		return nil, 0, wrapErrf("readHuffmanWeights", KindCorruptionDetected, "truncated Huffman header")
	}
	maxSymbol := int(data[0])
	count := maxSymbol + 1
	nbytes := (count + 1) / 2
	if len(data) < 1+nbytes {
		return nil, 0, wrapErrf("readHuffmanWeights", KindCorruptionDetected, "truncated Huffman weights")
	}
	lengths = make([]uint8, 256)
	for i := 0; i < count; i++ {
		b := data[1+i/2]
		var w byte
		if i%2 == 0 {
			w = b >> 4
		} else {
			w = b & 0xF
		}
		lengths[i] = huffmanLengthFromWeight(w, maxBits)
	}
	return lengths, 1 + nbytes, nil
}
