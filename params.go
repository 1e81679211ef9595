package ash0

import (
	"errors"

	"github.com/wii-tools/ash0/token"
)

// Params is the pair of alphabet-size parameters (§3) that size every
// structure the codec builds. It is the same type the token package
// uses internally; re-exported here so callers need only import the
// root package for the common case.
type Params = token.Params

// DefaultParams matches the reference tool's defaults: sym_bits = 9,
// dist_bits = 11.
var DefaultParams = Params{SymBits: 9, DistBits: 11}

// ErrInvalidParams is returned when SymBits/DistBits fall outside the
// range the codec can operate on.
var ErrInvalidParams = errors.New("ash0: invalid params")

// minSymBits is the smallest sym_bits that still gives every literal
// byte value (0-255) a symbol slot; below it, sym_alphabet < 256 and a
// literal byte can fall outside the histogram/tree entirely.
const minSymBits = 8

// maxSymBits and maxDistBits bound the alphabet sizes to what the format
// actually exercises (§3 lists (9,11) and (9,15) as the supported pairs;
// L_max/D_max grow with these). huffman.Deserialize and Build both size
// arrays and sorts off 2^width up front, before any data is read, so an
// oversized width is a cheap way to force a huge allocation/sort out of a
// tiny input; these caps keep that worst case bounded to a few MB.
const maxSymBits = 12
const maxDistBits = 16

func validateParams(p Params) error {
	if p.SymBits < minSymBits || p.SymBits > maxSymBits {
		return ErrInvalidParams
	}
	if p.DistBits < 1 || p.DistBits > maxDistBits {
		return ErrInvalidParams
	}
	return nil
}
