package ash0

import (
	"errors"

	"github.com/wii-tools/ash0/bitstream"
	"github.com/wii-tools/ash0/huffman"
	"github.com/wii-tools/ash0/token"
)

// Decode expands an ASH0 container back to its original bytes. p must
// match the sym_bits/dist_bits the container was encoded with; ASH0
// carries no parameter fields of its own, so the caller is expected to
// know (or default to) the values used at encode time.
func Decode(src []byte, p Params) ([]byte, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	header, err := ReadHeader(src)
	if err != nil {
		return nil, err
	}

	symReader, err := bitstream.NewReader(src, HeaderSize)
	if err != nil {
		return nil, translateBitstreamErr(err)
	}
	distReader, err := bitstream.NewReader(src, int(header.DistStreamOffset))
	if err != nil {
		return nil, translateBitstreamErr(err)
	}

	symTree, err := huffman.Deserialize(symReader, p.SymBits)
	if err != nil {
		return nil, translateBitstreamErr(err)
	}
	distTree, err := huffman.Deserialize(distReader, p.DistBits)
	if err != nil {
		return nil, translateBitstreamErr(err)
	}

	// header.UncompressedSize is untrusted (a tiny malformed file can
	// claim close to the 16 MiB cap): cap the initial reservation and
	// let append's own growth handle a legitimately large, fully-backed
	// output instead of paying for an attacker's claim up front.
	prealloc := header.UncompressedSize
	const maxPrealloc = 1 << 20
	if prealloc > maxPrealloc {
		prealloc = maxPrealloc
	}
	out := make([]byte, 0, prealloc)
	for uint32(len(out)) < header.UncompressedSize {
		sym, err := symTree.Decode(symReader)
		if err != nil {
			return nil, translateBitstreamErr(err)
		}

		if sym < 0x100 {
			out = append(out, byte(sym))
			continue
		}

		length := token.SymToLength(sym)
		distSym, err := distTree.Decode(distReader)
		if err != nil {
			return nil, translateBitstreamErr(err)
		}
		distance := token.SymToDistance(distSym)

		if distance <= 0 || distance > len(out) {
			return nil, ErrInvalidBackReference
		}
		remaining := int(header.UncompressedSize) - len(out)
		if length > remaining {
			return nil, ErrInvalidBackReference
		}

		start := len(out) - distance
		for i := 0; i < length; i++ {
			out = append(out, out[start+i])
		}
	}

	return out, nil
}

func translateBitstreamErr(err error) error {
	if errors.Is(err, bitstream.ErrTruncated) {
		return ErrTruncatedInput
	}
	if errors.Is(err, huffman.ErrMalformedTree) {
		return ErrMalformedTree
	}
	return err
}
