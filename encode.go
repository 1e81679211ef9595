package ash0

import (
	"github.com/wii-tools/ash0/bitstream"
	"github.com/wii-tools/ash0/huffman"
	"github.com/wii-tools/ash0/token"
)

// Encode compresses data into an ASH0 container under the given
// parameters, running passes rounds of retokenize-then-rebuild after
// the initial greedy parse (§4.8). passes = 0 reproduces the greedy
// parse's trees with no further improvement.
func Encode(data []byte, p Params, passes int) ([]byte, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if len(data) > MaxUncompressedSize {
		return nil, ErrSizeLimit
	}

	tokens := token.Tokenize(data, p)
	symFreq, distFreq := token.Histograms(tokens, p)
	symTree, err := huffman.Build(symFreq)
	if err != nil {
		return nil, err
	}
	distTree, err := huffman.Build(distFreq)
	if err != nil {
		return nil, err
	}

	for i := 0; i < passes; i++ {
		tokens = token.Retokenize(data, symTree, distTree, p)
		symFreq, distFreq = token.Histograms(tokens, p)
		symTree, err = huffman.Build(symFreq)
		if err != nil {
			return nil, err
		}
		distTree, err = huffman.Build(distFreq)
		if err != nil {
			return nil, err
		}
	}

	symWriter := bitstream.NewWriter(len(data))
	distWriter := bitstream.NewWriter(len(data) / 2)

	symTree.Serialize(symWriter, p.SymBits)
	distTree.Serialize(distWriter, p.DistBits)

	for _, tok := range tokens {
		if tok.IsReference {
			symTree.EncodeSymbol(symWriter, token.LengthToSym(tok.Length))
			distTree.EncodeSymbol(distWriter, token.DistanceToSym(tok.Distance))
		} else {
			symTree.EncodeSymbol(symWriter, int(tok.Literal))
		}
	}

	symBytes := symWriter.Finalize()
	distBytes := distWriter.Finalize()

	header := Header{
		UncompressedSize: uint32(len(data)),
		DistStreamOffset: uint32(HeaderSize + len(symBytes)),
	}

	out := make([]byte, 0, HeaderSize+len(symBytes)+len(distBytes))
	out = header.WriteTo(out)
	out = append(out, symBytes...)
	out = append(out, distBytes...)
	return out, nil
}
