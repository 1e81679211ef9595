// Package huffman builds the canonical-shape Huffman trees used by ASH0
// and serializes/deserializes them in the container's pre-order bit
// format. The tree shape (package-merge over a descending-frequency
// sort, shallow-first child ordering) must match the reference encoder
// bit-for-bit, since the decoder reconstructs the same tree from the
// serialized form rather than from a canonical code table.
package huffman

import "errors"

// noChild marks a Node with no child on that side (i.e. a leaf).
const noChild = -1

// Node is one entry in a Tree's arena. On a leaf, Symbol is meaningful and
// Left == Right == noChild. On an internal node, SymMin/SymMax/NRepresent
// are aggregated from both children and Symbol is unused.
type Node struct {
	Symbol     int
	SymMin     int
	SymMax     int
	NRepresent int
	Freq       int
	Left       int
	Right      int
}

func (n *Node) isLeaf() bool { return n.Left == noChild && n.Right == noChild }

// Tree is a finalized Huffman tree: an arena of Nodes plus the index of
// the root. Arena capacity is 2*alphabetSize, matching the "build the
// arena size upfront" design note: the package-merge loop below adds at
// most alphabetSize-1 internal nodes, so it never allocates past that bound.
type Tree struct {
	Nodes []Node
	Root  int
}

// ErrNegativeFrequency is a programmer error: histograms are built
// internally and must never carry a negative count.
var ErrNegativeFrequency = errors.New("huffman: negative frequency")

// Build constructs a finalized Tree from a symbol frequency histogram.
// len(freq) is the alphabet size. Per §4.3's ensure-elements guard, if
// fewer than two symbols have nonzero frequency, zero-frequency symbols
// are promoted to frequency 1 in ascending symbol order until two are
// present, so the tree always has at least one internal node.
func Build(freq []int) (*Tree, error) {
	n := len(freq)
	nodes := make([]Node, n, 2*n)
	present := 0
	for sym, f := range freq {
		if f < 0 {
			return nil, ErrNegativeFrequency
		}
		nodes[sym] = Node{
			Symbol: sym, SymMin: sym, SymMax: sym,
			NRepresent: 1, Freq: f,
			Left: noChild, Right: noChild,
		}
		if f > 0 {
			present++
		}
	}

	// ensure-elements guard (§4.3 step 2)
	if present < 2 {
		for i := range nodes {
			if nodes[i].Freq == 0 {
				nodes[i].Freq = 1
				present++
				if present >= 2 {
					break
				}
			}
		}
	}

	roots := sortDescendingByFreq(nodes)
	// truncate at the first zero-frequency entry: only used symbols
	// participate in the merge (§4.3 step 3).
	for i, idx := range roots {
		if nodes[idx].Freq == 0 {
			roots = roots[:i]
			break
		}
	}
	if len(roots) == 0 {
		return nil, errors.New("huffman: no symbols to encode")
	}
	if len(roots) == 1 {
		// A single used symbol is impossible after the ensure-elements
		// guard above (it always promotes a second symbol), but guard
		// against it defensively rather than indexing out of bounds.
		roots = append(roots, roots[0])
	}

	// package-merge loop (§4.3 step 4): repeatedly merge the two
	// lowest-frequency roots (the tail of the descending-sorted slice)
	// until one root remains.
	for len(roots) > 1 {
		li, ri := roots[len(roots)-2], roots[len(roots)-1]
		left, right := nodes[li], nodes[ri]
		merged := Node{
			Symbol:     0,
			SymMin:     min(left.SymMin, right.SymMin),
			SymMax:     max(left.SymMax, right.SymMax),
			NRepresent: left.NRepresent + right.NRepresent,
			Freq:       left.Freq + right.Freq,
			Left:       li,
			Right:      ri,
		}
		nodes = append(nodes, merged)
		newIdx := len(nodes) - 1
		roots = roots[:len(roots)-2]
		roots = append(roots, newIdx)
		roots = sortDescendingByFreqIndices(nodes, roots)
	}

	t := &Tree{Nodes: nodes, Root: roots[0]}
	t.makeShallowFirst(t.Root)
	return t, nil
}

// makeShallowFirst enforces the invariant that at every internal node,
// the child with fewer represented leaves comes first (§4.3 step 5).
// This ordering is load-bearing: the decoder's pre-order tree layout is
// order-sensitive.
func (t *Tree) makeShallowFirst(idx int) {
	n := &t.Nodes[idx]
	if n.isLeaf() {
		return
	}
	if t.Nodes[n.Left].NRepresent > t.Nodes[n.Right].NRepresent {
		n.Left, n.Right = n.Right, n.Left
	}
	t.makeShallowFirst(n.Left)
	t.makeShallowFirst(n.Right)
}
