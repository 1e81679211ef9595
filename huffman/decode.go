package huffman

import (
	"errors"

	"github.com/wii-tools/ash0/bitstream"
)

// ErrMalformedTree is returned when a serialized tree describes more
// internal nodes than an alphabet of the given width can have (at most
// alphabet-1), which a well-formed stream never does.
var ErrMalformedTree = errors.New("huffman: malformed tree")

// DecodedTree is the decoder-side reconstruction of a serialized Huffman
// tree: two index-addressed arrays form the walked tree. An index below
// Alphabet is a leaf (the index itself is the symbol); an index at or
// above Alphabet is internal, with children Left[idx]/Right[idx].
type DecodedTree struct {
	Left     []int
	Right    []int
	Root     int
	Alphabet int
}

// stack entries during deserialization: idx is the fresh internal node
// index this entry belongs to, right says whether it is that node's
// pending right (true) or left (false) child slot.
type pendingChild struct {
	idx   int
	right bool
}

// Deserialize reads a pre-order-serialized tree of the given width
// (sym_bits or dist_bits) from r, using the original algorithm's
// stack-free reconstruction (§4.4): internal node indices start at
// alphabet and grow upward as nodes are discovered, and a scratch stack
// tracks which parent slot each subtree, once completed, belongs to.
func Deserialize(r *bitstream.Reader, width int) (*DecodedTree, error) {
	alphabet := 1 << uint(width)
	t := &DecodedTree{
		Left:     make([]int, 2*alphabet-1),
		Right:    make([]int, 2*alphabet-1),
		Alphabet: alphabet,
	}

	var stack []pendingChild
	nextInternal := alphabet
	nPending := 0
	var symRoot int

	for {
		bit, err := r.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit == 1 {
			if nextInternal >= len(t.Left) {
				return nil, ErrMalformedTree
			}
			stack = append(stack, pendingChild{nextInternal, true}, pendingChild{nextInternal, false})
			nPending += 2
			nextInternal++
		} else {
			v, err := r.ReadBits(width)
			if err != nil {
				return nil, err
			}
			symRoot = int(v)
			for nPending > 0 {
				if len(stack) == 0 {
					return nil, ErrMalformedTree
				}
				e := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				nPending--
				if e.right {
					t.Right[e.idx] = symRoot
					symRoot = e.idx
				} else {
					t.Left[e.idx] = symRoot
					break
				}
			}
		}
		if nPending == 0 {
			break
		}
	}

	t.Root = symRoot
	return t, nil
}

// Decode walks the tree from the root, reading one bit per internal node
// (0 = left, 1 = right), until reaching a leaf index, and returns that
// leaf's symbol value.
func (t *DecodedTree) Decode(r *bitstream.Reader) (int, error) {
	idx := t.Root
	for idx >= t.Alphabet {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			idx = t.Left[idx]
		} else {
			idx = t.Right[idx]
		}
	}
	return idx, nil
}
