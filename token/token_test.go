package token

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wii-tools/ash0/huffman"
)

func detokenize(tokens []Token) []byte {
	var out []byte
	for _, tok := range tokens {
		if tok.IsReference {
			start := len(out) - tok.Distance
			for i := 0; i < tok.Length; i++ {
				out = append(out, out[start+i])
			}
		} else {
			out = append(out, tok.Literal)
		}
	}
	return out
}

func TestTokenizeRoundTrips(t *testing.T) {
	p := Params{SymBits: 9, DistBits: 12}
	cases := [][]byte{
		[]byte("abcabcabcabcabcabc"),
		make([]byte, 4096),
		[]byte("A"),
	}
	for _, buf := range cases {
		tokens := Tokenize(buf, p)
		require.Equal(t, buf, detokenize(tokens))
	}
}

func TestTokenizeRandomRoundTrips(t *testing.T) {
	p := Params{SymBits: 9, DistBits: 12}
	r := rand.New(rand.NewSource(0xC0FFEE))
	buf := make([]byte, 4096)
	r.Read(buf)
	tokens := Tokenize(buf, p)
	require.Equal(t, buf, detokenize(tokens))
}

func TestHistogramsCountLiteralsAndReferences(t *testing.T) {
	p := Params{SymBits: 9, DistBits: 12}
	tokens := []Token{
		{Literal: 'x'},
		{IsReference: true, Length: 5, Distance: 3},
	}
	sym, dist := Histograms(tokens, p)
	require.Equal(t, 1, sym['x'])
	require.Equal(t, 1, sym[LengthToSym(5)])
	require.Equal(t, 1, dist[DistanceToSym(3)])
}

func TestRetokenizeRoundTripsAndDoesNotRegress(t *testing.T) {
	p := Params{SymBits: 9, DistBits: 12}
	r := rand.New(rand.NewSource(1))
	buf := make([]byte, 2048)
	for i := range buf {
		buf[i] = byte(r.Intn(4)) // low-entropy, lots of repeats
	}

	tokens := Tokenize(buf, p)
	require.Equal(t, buf, detokenize(tokens))

	symFreq, distFreq := Histograms(tokens, p)
	symTree, err := huffman.Build(symFreq)
	require.NoError(t, err)
	distTree, err := huffman.Build(distFreq)
	require.NoError(t, err)

	cost := func(tokens []Token, symTree, distTree *huffman.Tree) int {
		total := 0
		for _, tok := range tokens {
			if tok.IsReference {
				total += symTree.Depth(LengthToSym(tok.Length))
				total += distTree.Depth(DistanceToSym(tok.Distance))
			} else {
				total += symTree.Depth(int(tok.Literal))
			}
		}
		return total
	}
	initialCost := cost(tokens, symTree, distTree)

	for pass := 0; pass < 3; pass++ {
		retokenized := Retokenize(buf, symTree, distTree, p)
		require.Equal(t, buf, detokenize(retokenized))

		symFreq, distFreq = Histograms(retokenized, p)
		newSymTree, err := huffman.Build(symFreq)
		require.NoError(t, err)
		newDistTree, err := huffman.Build(distFreq)
		require.NoError(t, err)

		newCost := cost(retokenized, newSymTree, newDistTree)
		require.LessOrEqual(t, newCost, initialCost+64, "pass %d cost regressed substantially", pass)

		tokens, symTree, distTree = retokenized, newSymTree, newDistTree
		initialCost = newCost
	}
}

func TestRetokenizeHandlesTinyAlphabet(t *testing.T) {
	p := Params{SymBits: 9, DistBits: 12}
	buf := []byte{1, 2, 1, 2, 1, 2}
	tokens := Tokenize(buf, p)
	symFreq, distFreq := Histograms(tokens, p)
	symTree, err := huffman.Build(symFreq)
	require.NoError(t, err)
	distTree, err := huffman.Build(distFreq)
	require.NoError(t, err)

	retokenized := Retokenize(buf, symTree, distTree, p)
	require.Equal(t, buf, detokenize(retokenized))
}
