// Package token turns a byte buffer into (and back from) the stream of
// LZ77 tokens ASH0 encodes: a greedy one-pass tokenizer that seeds the
// first Huffman pass, and an optimal reverse-scan retokenizer that
// improves on it using the current trees' code lengths as edge weights.
package token

// Params carries the two alphabet-size parameters that size every other
// piece of ASH0: the symbol alphabet (literal bytes plus length codes)
// and the distance alphabet. They are threaded explicitly rather than
// held in package state, so a single process can encode/decode streams
// built with different parameters concurrently.
type Params struct {
	SymBits  int
	DistBits int
}

// SymAlphabet is 2^SymBits: symbols [0,256) are literal bytes, symbols
// [256, SymAlphabet) are length codes.
func (p Params) SymAlphabet() int { return 1 << uint(p.SymBits) }

// DistAlphabet is 2^DistBits.
func (p Params) DistAlphabet() int { return 1 << uint(p.DistBits) }

// MaxLength is L_max = SymAlphabet - 1 - 0x100 + 3, the longest length a
// length code can represent.
func (p Params) MaxLength() int { return p.SymAlphabet() - 1 - 0x100 + 3 }

// MaxDistance is D_max = DistAlphabet.
func (p Params) MaxDistance() int { return p.DistAlphabet() }

// LengthToSym converts a decoded match length to its symbol code.
func LengthToSym(length int) int { return 0x100 + length - 3 }

// SymToLength converts a length-code symbol back to a match length.
func SymToLength(sym int) int { return sym - 0x100 + 3 }

// DistanceToSym converts a decoded distance to its symbol code.
func DistanceToSym(distance int) int { return distance - 1 }

// SymToDistance converts a distance symbol code back to a distance.
func SymToDistance(sym int) int { return sym + 1 }

// Token is either a literal byte or an LZ77 backreference.
type Token struct {
	IsReference bool
	Literal     byte
	Length      int
	Distance    int
}

// Histograms builds the sym and dist frequency tables a token stream
// implies: for a reference, sym[length-3+0x100]++ and dist[distance-1]++;
// for a literal, sym[byte]++.
func Histograms(tokens []Token, p Params) (sym, dist []int) {
	sym = make([]int, p.SymAlphabet())
	dist = make([]int, p.DistAlphabet())
	for _, tok := range tokens {
		if tok.IsReference {
			sym[LengthToSym(tok.Length)]++
			dist[DistanceToSym(tok.Distance)]++
		} else {
			sym[tok.Literal]++
		}
	}
	return sym, dist
}
