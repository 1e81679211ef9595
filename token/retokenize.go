package token

import (
	"github.com/wii-tools/ash0/huffman"
	"github.com/wii-tools/ash0/lzmatch"
)

// unseenSymbolCost stands in for a literal byte's code length when that
// byte has no leaf in the current tree. It must outrank every real code
// length (bounded by the alphabet width) so the DP only ever picks such a
// literal when no cheaper, actually-encodable option exists.
const unseenSymbolCost = 1 << 20

// valueTable is an ascending (value, code-length) table restricted to the
// length or distance symbols actually present in a Huffman tree: the
// retokenizer only ever proposes candidates the current trees can
// already encode without introducing a new symbol.
type valueTable struct {
	values []int
	depths []int
}

func lengthTable(symTree *huffman.Tree, symAlphabet int) valueTable {
	var tbl valueTable
	for sym := 0x100; sym < symAlphabet; sym++ {
		d := symTree.Depth(sym)
		if d < 0 {
			continue
		}
		tbl.values = append(tbl.values, SymToLength(sym))
		tbl.depths = append(tbl.depths, d)
	}
	return tbl
}

func distanceTable(distTree *huffman.Tree, distAlphabet int) valueTable {
	var tbl valueTable
	for sym := 0; sym < distAlphabet; sym++ {
		d := distTree.Depth(sym)
		if d < 0 {
			continue
		}
		tbl.values = append(tbl.values, SymToDistance(sym))
		tbl.depths = append(tbl.depths, d)
	}
	return tbl
}

// roundDown returns the largest entry <= value, and its index. Per §4.7:
// value == 0 rounds to 0 with index -1; if no entry is <= value, it
// rounds to 1 with index -1 (1 is always implicitly allowed, as the
// literal case).
func (tb valueTable) roundDown(value int) (rounded, index int) {
	if value == 0 {
		return 0, -1
	}
	idx := -1
	for i, v := range tb.values {
		if v <= value {
			idx = i
		} else {
			break
		}
	}
	if idx == -1 {
		return 1, -1
	}
	return tb.values[idx], idx
}

// Retokenize re-parses buf under the current sym/dist trees' code
// lengths (§4.7): a reverse dynamic-programming pass computes, for each
// position, the cheapest token and its cumulative cost to the end of the
// buffer, then a forward walk from position 0 reads off the resulting
// token stream.
func Retokenize(buf []byte, symTree, distTree *huffman.Tree, p Params) []Token {
	n := len(buf)
	lens := lengthTable(symTree, p.SymAlphabet())
	dists := distanceTable(distTree, p.DistAlphabet())

	weight := make([]int, n+1)
	chosenLength := make([]int, n) // 1 means literal
	chosenDistance := make([]int, n)

	for pos := n - 1; pos >= 0; pos-- {
		literalCost := symTree.Depth(int(buf[pos]))
		if literalCost < 0 {
			// buf[pos]'s value has no leaf in the current tree (every
			// prior occurrence was absorbed into a match): it is still
			// emittable as a literal, since the tree gets rebuilt from
			// whatever this pass chooses, but it must not look cheaper
			// than a real code length to the cost comparisons below.
			literalCost = unseenSymbolCost
		}
		if pos+1 <= n {
			literalCost += weight[pos+1]
		}

		bestCost := literalCost
		bestLen := 1
		bestDist := 0

		if len(lens.values) > 0 && len(dists.values) > 0 {
			maxLen := lens.values[len(lens.values)-1]
			length, dist := lzmatch.SearchRestricted(buf, pos, dists.values, maxLen)
			if length >= 3 {
				// Step 4: try every round-down candidate length at or
				// below the found match, keeping whichever minimizes
				// lengthDepth + successorWeight. A shorter length can
				// win when its code is much cheaper than the longest
				// match's, since the tail is re-encoded too.
				bestLenIdx := -1
				for candidate, idx := lens.roundDown(length); candidate >= 3; {
					if idx >= 0 {
						successor := 0
						if pos+candidate != n {
							successor = weight[pos+candidate]
						}
						cost := lens.depths[idx] + successor
						if cost < bestCost {
							bestCost = cost
							bestLen = candidate
							bestLenIdx = idx
						}
					}
					next, nextIdx := lens.roundDown(candidate - 1)
					if next >= candidate {
						break
					}
					candidate, idx = next, nextIdx
				}

				if bestLenIdx >= 0 {
					// Step 5: re-pick the distance for the chosen
					// length — the initial search's distance may not be
					// the cheapest one still able to confirm this match.
					_, initIdx := indexOfValue(dists, dist)
					chosenDCost := dists.depths[initIdx]
					for i, d := range dists.values {
						if d > pos {
							break
						}
						if dists.depths[i] < chosenDCost && lzmatch.ConfirmMatch(buf, pos, d, bestLen) {
							dist = d
							chosenDCost = dists.depths[i]
							break
						}
					}
					bestDist = dist

					successor := 0
					if pos+bestLen != n {
						successor = weight[pos+bestLen]
					}
					bestCost = lens.depths[bestLenIdx] + chosenDCost + successor
				} else {
					bestLen = 1
				}
			}
		}

		weight[pos] = bestCost
		chosenLength[pos] = bestLen
		chosenDistance[pos] = bestDist
	}

	var tokens []Token
	for pos := 0; pos < n; {
		length := chosenLength[pos]
		if length < 3 {
			tokens = append(tokens, Token{Literal: buf[pos]})
			pos++
			continue
		}
		tokens = append(tokens, Token{IsReference: true, Length: length, Distance: chosenDistance[pos]})
		pos += length
	}
	return tokens
}

func indexOfValue(tb valueTable, value int) (int, int) {
	for i, v := range tb.values {
		if v == value {
			return v, i
		}
	}
	return 0, -1
}
