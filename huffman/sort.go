package huffman

import "sort"

// sortDescendingByFreq returns the indices of nodes sorted by descending
// frequency, mirroring the reference implementation's
// qsort(..., CxiHuffmanNodeComparator) which sorts the node array itself;
// here the nodes stay put and only an index permutation is produced, since
// later merges append to the arena rather than physically relocating nodes.
func sortDescendingByFreq(nodes []Node) []int {
	idx := make([]int, len(nodes))
	for i := range idx {
		idx[i] = i
	}
	return sortDescendingByFreqIndices(nodes, idx)
}

func sortDescendingByFreqIndices(nodes []Node, idx []int) []int {
	sort.SliceStable(idx, func(i, j int) bool {
		return nodes[idx[i]].Freq > nodes[idx[j]].Freq
	})
	return idx
}
