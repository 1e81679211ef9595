package ash0

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the fixed size of an ASH0 container header.
const HeaderSize = 12

// magic identifies an ASH0 container. The encoder always writes it in
// full; the decoder requires an exact match rather than the looser
// "ASH"-prefix tolerance some reference decoders accept (§9 open
// question — this implementation adopts the strict variant).
var magic = [4]byte{'A', 'S', 'H', '0'}

// MaxUncompressedSize is the 24-bit cap on the uncompressed payload
// size the header can describe.
const MaxUncompressedSize = 1<<24 - 1

// ErrBadMagic is returned when a stream's first four bytes are not
// exactly "ASH0".
var ErrBadMagic = errors.New("ash0: bad magic")

// ErrMalformedHeader is returned when a header field is structurally
// impossible rather than merely describing a truncated payload — e.g. a
// distance-stream offset that overlaps the header or the symbol stream.
var ErrMalformedHeader = errors.New("ash0: malformed header")

// Header is the 12-byte prefix of every ASH0 container: a magic, the
// uncompressed size (low 24 bits meaningful), and the byte offset of
// the distance bitstream. The symbol bitstream always starts
// immediately after the header, at byte HeaderSize.
type Header struct {
	UncompressedSize uint32
	DistStreamOffset uint32
}

// WriteTo appends the header's 12 bytes to dst, returning the
// extended slice. Named after the teacher's io.Writer-based
// Header.WriteTo, but returning a slice directly since the header is
// always exactly 12 bytes and never streamed incrementally.
func (h Header) WriteTo(dst []byte) []byte {
	dst = append(dst, magic[:]...)
	var sizeBuf [4]byte
	binary.BigEndian.PutUint32(sizeBuf[:], h.UncompressedSize&MaxUncompressedSize)
	dst = append(dst, sizeBuf[:]...)
	var offBuf [4]byte
	binary.BigEndian.PutUint32(offBuf[:], h.DistStreamOffset)
	dst = append(dst, offBuf[:]...)
	return dst
}

// ReadHeader parses the 12-byte header from the start of src.
func ReadHeader(src []byte) (Header, error) {
	if len(src) < HeaderSize {
		return Header{}, ErrTruncatedInput
	}
	if src[0] != magic[0] || src[1] != magic[1] || src[2] != magic[2] || src[3] != magic[3] {
		return Header{}, ErrBadMagic
	}
	size := binary.BigEndian.Uint32(src[4:8]) & MaxUncompressedSize
	offset := binary.BigEndian.Uint32(src[8:12])
	// The distance stream always follows at least one word of symbol
	// stream, both of which are word-framed (§4.2): an offset that lands
	// at or before the header or isn't word-aligned cannot be the
	// encoder's own output and must not be handed to bitstream.NewReader
	// as if it were. An offset at or past the end of src is what a
	// stream cut off before its distance stream looks like, so it is
	// reported as truncation. Compared as uint64 so an
	// attacker-controlled offset near the top of the uint32 range can
	// never wrap negative when narrowed to a platform int.
	if offset <= HeaderSize || offset%4 != 0 {
		return Header{}, ErrMalformedHeader
	}
	if uint64(offset) >= uint64(len(src)) {
		return Header{}, ErrTruncatedInput
	}
	return Header{UncompressedSize: size, DistStreamOffset: offset}, nil
}
