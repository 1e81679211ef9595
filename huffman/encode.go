package huffman

import "github.com/wii-tools/ash0/bitstream"

// HasSymbol reports whether sym lies within the subtree rooted at idx.
// The symMin/symMax range is a superset prune, not a membership oracle:
// a true range match still requires descending into the subtree (or
// being a matching leaf) to confirm membership.
func (t *Tree) HasSymbol(idx int, sym int) bool {
	n := &t.Nodes[idx]
	if n.isLeaf() {
		return n.Symbol == sym
	}
	if sym < n.SymMin || sym > n.SymMax {
		return false
	}
	return t.HasSymbol(n.Left, sym) || t.HasSymbol(n.Right, sym)
}

// EncodeSymbol writes sym's code into w by descending from the root: at
// each internal node, 0 is emitted and the left child taken if sym lies
// in the left subtree, otherwise 1 and the right child.
func (t *Tree) EncodeSymbol(w *bitstream.Writer, sym int) {
	idx := t.Root
	for {
		n := &t.Nodes[idx]
		if n.isLeaf() {
			return
		}
		if t.HasSymbol(n.Left, sym) {
			w.WriteBit(0)
			idx = n.Left
		} else {
			w.WriteBit(1)
			idx = n.Right
		}
	}
}

// Depth returns the code length (leaf depth) of sym, used by the
// retokenizer to weigh candidate tokens by their current encoded cost.
func (t *Tree) Depth(sym int) int {
	idx := t.Root
	depth := 0
	for {
		n := &t.Nodes[idx]
		if n.isLeaf() {
			if n.Symbol == sym {
				return depth
			}
			return -1
		}
		depth++
		if t.HasSymbol(n.Left, sym) {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}

// Serialize writes the tree in ASH0's pre-order bit format: a 1 bit for
// an internal node (recurse left, then right), or a 0 bit followed by
// the symbol as a width-bit big-endian field for a leaf. The reference
// implementation does this recursively (CxiAshWriteTree); the recursion
// depth here is bounded by the alphabet size, which is small enough
// (at most 2^16 under the codec's parameter limits) not to need the
// explicit-stack treatment §9 recommends for less forgiving host
// environments.
func (t *Tree) Serialize(w *bitstream.Writer, width int) {
	t.serialize(w, t.Root, width)
}

func (t *Tree) serialize(w *bitstream.Writer, idx int, width int) {
	n := &t.Nodes[idx]
	if n.isLeaf() {
		w.WriteBit(0)
		w.WriteBitsBE(uint32(n.Symbol), width)
		return
	}
	w.WriteBit(1)
	t.serialize(w, n.Left, width)
	t.serialize(w, n.Right, width)
}
