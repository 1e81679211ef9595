package ash0

import "errors"

// Error kinds per §7. The codec core never attempts recovery: any of
// these aborts the current Encode/Decode call with no partial output.
var (
	// ErrTruncatedInput is returned when a bitstream refill would cross
	// the end of the input buffer.
	ErrTruncatedInput = errors.New("ash0: truncated input")

	// ErrSizeLimit is returned by Encode when the input exceeds the
	// 24-bit uncompressed size cap.
	ErrSizeLimit = errors.New("ash0: input exceeds 24-bit size limit")

	// ErrInvalidBackReference is returned by Decode when a decoded
	// (length, distance) pair would read before the output start or
	// write past the declared uncompressed size.
	ErrInvalidBackReference = errors.New("ash0: invalid back-reference")

	// ErrEmptyInput is returned by Encode for a zero-length input,
	// which the reference tool also rejects (§8 scenario 1).
	ErrEmptyInput = errors.New("ash0: empty input")

	// ErrMalformedTree is returned by Decode when a serialized Huffman
	// tree describes more internal nodes than its alphabet can hold.
	ErrMalformedTree = errors.New("ash0: malformed huffman tree")
)
