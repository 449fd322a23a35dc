// SPDX-License-Identifier: MIT

package lzoasym

import "errors"

// Sentinel errors returned by DecompressInto/Decompress and Compressor.Inbound.
// Callers should test with errors.Is; the partial byte count returned alongside
// any of these still reflects the decoder's progress at the point of failure.
var (
	// ErrEmptyInput is returned when the compressed input is empty.
	ErrEmptyInput = errors.New("lzoasym: empty input")

	// ErrEOFNotFound is returned when the main decode loop exhausts the input
	// without ever encountering the LZO1X end-of-stream instruction.
	ErrEOFNotFound = errors.New("lzoasym: eof not found")

	// ErrInputNotConsumed is returned when the end-of-stream instruction is
	// seen but bytes remain before the input end.
	ErrInputNotConsumed = errors.New("lzoasym: input not consumed")

	// ErrInputOverrun is returned when a read would extend past the input end.
	ErrInputOverrun = errors.New("lzoasym: input overrun")

	// ErrOutputOverrun is returned when a write would extend past the output end.
	ErrOutputOverrun = errors.New("lzoasym: output overrun")

	// ErrLookBehindOverrun is returned when a match's source address falls
	// outside the already-emitted output prefix.
	ErrLookBehindOverrun = errors.New("lzoasym: lookbehind overrun")

	// ErrAssertFailed is returned when an internal invariant is violated: an
	// end-of-stream instruction whose length is not the reserved value 3, or
	// a negative output length passed to Decompress.
	// It indicates either a decoder bug or malformed input that slipped past
	// a weaker check; callers should log it as unusual.
	ErrAssertFailed = errors.New("lzoasym: internal assertion failed")

	// ErrUnknownOpcode is returned by Compressor.Inbound when the leading
	// framing byte does not match any recognized tag.
	ErrUnknownOpcode = errors.New("lzoasym: unknown framing opcode")
)
