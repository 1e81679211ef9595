package token

import "github.com/wii-tools/ash0/lzmatch"

// Tokenize is the greedy, one-pass seed tokenizer (§4.6): at each
// position it searches for the longest match over every distance in
// [1, MaxDistance] (no restricted distance set) and takes it whenever it is at least 3 bytes long,
// otherwise it emits the literal at that position. This deliberately
// takes every length-3 match even when a literal would encode more
// cheaply in bits; it only exists to produce an initial token stream
// that seeds the first Huffman histograms, a direct translation of the
// reference tool's CxiAshTokenize.
func Tokenize(buf []byte, p Params) []Token {
	var tokens []Token
	maxLen := p.MaxLength()
	maxDist := p.MaxDistance()

	for pos := 0; pos < len(buf); {
		length, distance := lzmatch.Search(buf, pos, 1, maxDist, maxLen)
		if length >= 3 {
			tokens = append(tokens, Token{IsReference: true, Length: length, Distance: distance})
			pos += length
		} else {
			tokens = append(tokens, Token{Literal: buf[pos]})
			pos++
		}
	}
	return tokens
}
