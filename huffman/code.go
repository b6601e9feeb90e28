// Package huffman implements canonical prefix codes and a container holding
// several independently compressed byte streams. Only the code lengths of
// each stream are stored, the codes themselves are derived canonically.
package huffman

import (
	"github.com/esimov/tambour"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// MaxBits is the longest code length the container can carry.
const MaxBits = 15

// Error kinds shared with the root package.
var (
	ErrTruncated = tambour.ErrTruncated
	ErrCorrupt   = tambour.ErrCorrupt
)

// Code is a canonical prefix code over a symbol alphabet.
type Code struct {
	lengths []uint8
	codes   []uint32

	// decoding state: number of codes per length and the symbols sorted
	// by (length, symbol).
	count  [MaxBits + 1]int
	sorted []int
}

type symFreq struct {
	sym  int
	freq int
}

// BuildLengths returns code lengths for the given symbol frequencies. No
// length exceeds maxBits and symbols with zero frequency get length zero.
// A single used symbol gets length one. The result only depends on the input.
func BuildLengths(freq []int, maxBits int) ([]uint8, error) {
	lengths := make([]uint8, len(freq))

	var used []symFreq
	for s, f := range freq {
		if f > 0 {
			used = append(used, symFreq{sym: s, freq: f})
		}
	}
	switch {
	case len(used) == 0:
		return lengths, nil
	case len(used) == 1:
		lengths[used[0].sym] = 1
		return lengths, nil
	case maxBits < 1 || maxBits > 30 || len(used) > 1<<maxBits:
		return nil, errors.Errorf("huffman: %d symbols cannot fit %d bits", len(used), maxBits)
	}

	// Most frequent first, ties by symbol, so that after the lengths are
	// known the shortest ones go to the most frequent symbols.
	slices.SortFunc(used, func(a, b symFreq) bool {
		if a.freq != b.freq {
			return a.freq > b.freq
		}
		return a.sym < b.sym
	})

	depths := treeDepths(used)
	deepest := 0
	for _, d := range depths {
		if d > deepest {
			deepest = d
		}
	}
	blCount := make([]int, deepest+1)
	for _, d := range depths {
		blCount[d]++
	}
	if len(blCount) <= maxBits {
		blCount = append(blCount, make([]int, maxBits+1-len(blCount))...)
	}
	limitLengths(blCount, maxBits)

	i := 0
	for l := 1; l <= maxBits; l++ {
		for n := 0; n < blCount[l]; n++ {
			lengths[used[i].sym] = uint8(l)
			i++
		}
	}
	return lengths, nil
}

// treeDepths builds an unrestricted Huffman tree with the two queue method
// and returns the depth of every leaf, in the order of used.
func treeDepths(used []symFreq) []int {
	type node struct {
		freq        int
		left, right int // -1 for leaves
	}
	n := len(used)
	nodes := make([]node, 0, 2*n-1)

	// Leaves in ascending frequency, ties by descending position so the
	// merge order is fixed.
	for i := n - 1; i >= 0; i-- {
		nodes = append(nodes, node{freq: used[i].freq, left: -1, right: -1})
	}

	leaf, inner := 0, n
	pick := func() int {
		if leaf < n && (inner >= len(nodes) || nodes[leaf].freq <= nodes[inner].freq) {
			leaf++
			return leaf - 1
		}
		inner++
		return inner - 1
	}
	for len(nodes) < 2*n-1 {
		a := pick()
		b := pick()
		nodes = append(nodes, node{freq: nodes[a].freq + nodes[b].freq, left: a, right: b})
	}

	depth := make([]int, len(nodes))
	for i := len(nodes) - 1; i >= n; i-- {
		depth[nodes[i].left] = depth[i] + 1
		depth[nodes[i].right] = depth[i] + 1
	}

	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = depth[i]
	}
	return out
}

// limitLengths moves codes longer than maxBits up the tree while keeping
// the Kraft sum at exactly one.
func limitLengths(blCount []int, maxBits int) {
	for l := len(blCount) - 1; l > maxBits; l-- {
		for blCount[l] > 0 {
			j := l - 2
			for j > 0 && blCount[j] == 0 {
				j--
			}
			// Two leaves at depth l become one at l-1, the freed slot
			// and a leaf at depth j become two leaves at depth j+1.
			blCount[l] -= 2
			blCount[l-1]++
			blCount[j+1] += 2
			blCount[j]--
		}
	}
}

// NewCode derives the canonical codes for the given lengths. Codes are
// assigned in order of increasing length, then symbol. It fails with
// ErrCorrupt when the lengths over-subscribe the code space.
func NewCode(lengths []uint8) (*Code, error) {
	c := &Code{
		lengths: slices.Clone(lengths),
		codes:   make([]uint32, len(lengths)),
	}
	for _, l := range lengths {
		if l > MaxBits {
			return nil, errors.Wrapf(ErrCorrupt, "code length %d", l)
		}
		c.count[l]++
	}
	c.count[0] = 0

	left := 1
	for l := 1; l <= MaxBits; l++ {
		left <<= 1
		left -= c.count[l]
		if left < 0 {
			return nil, errors.Wrap(ErrCorrupt, "over-subscribed code lengths")
		}
	}

	var next [MaxBits + 2]uint32
	code := uint32(0)
	for l := 1; l <= MaxBits; l++ {
		code = (code + uint32(c.count[l-1])) << 1
		next[l] = code
	}

	for l := 1; l <= MaxBits; l++ {
		for s, sl := range lengths {
			if int(sl) == l {
				c.codes[s] = next[l]
				next[l]++
				c.sorted = append(c.sorted, s)
			}
		}
	}
	return c, nil
}

// Len returns the code length of symbol s, zero when s has no code.
func (c *Code) Len(s int) uint8 { return c.lengths[s] }

// Bits returns the code of symbol s.
func (c *Code) Bits(s int) uint32 { return c.codes[s] }

// Lengths returns a copy of the code lengths.
func (c *Code) Lengths() []uint8 { return slices.Clone(c.lengths) }

// Empty reports whether no symbol has a code.
func (c *Code) Empty() bool { return len(c.sorted) == 0 }

// Encode writes the code of symbol s.
func (c *Code) Encode(w *BitWriter, s int) error {
	if s < 0 || s >= len(c.lengths) || c.lengths[s] == 0 {
		return errors.Errorf("huffman: symbol %d has no code", s)
	}
	w.WriteBits(c.codes[s], c.lengths[s])
	return nil
}

// Decode reads one symbol. It returns ErrTruncated when the input ends
// inside a code and ErrCorrupt for a bit sequence no symbol owns.
func (c *Code) Decode(r *BitReader) (int, error) {
	code, first, index := 0, 0, 0
	for l := 1; l <= MaxBits; l++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		code |= int(bit)
		n := c.count[l]
		if code-first < n {
			return c.sorted[index+code-first], nil
		}
		index += n
		first += n
		first <<= 1
		code <<= 1
	}
	return 0, tambour.OffsetError(ErrCorrupt, r.Offset(), "invalid code")
}
