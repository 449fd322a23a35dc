// SPDX-License-Identifier: MIT

package lzoasym

// firstLiteralMatchBase is the extra backward-distance bias applied to the
// short match form immediately following a literal run (the "first literal
// run" context in spec terms). A short match reached any other way (after a
// previous match's trailing short-literal carry) uses no such bias — see
// the state==afterLiteralRun branch below.
const firstLiteralMatchBase = 1 + m2MaxOffset

// afterLiteralRun is a sentinel state value (distinct from the 1..3 a match's
// trailing short-literal carry can leave behind) marking "the previous
// instruction was a literal run". It selects the firstLiteralMatchBase bias
// for the next short match instruction.
const afterLiteralRun = 4

// Decompress decompresses an LZO1X bitstream from src into a freshly
// allocated buffer of length outLen. Returns ErrEmptyInput if src is empty.
// On success the returned slice is sized to the actual number of bytes
// decoded, which can be less than outLen if the stream's declared output is
// smaller than outLen.
func Decompress(src []byte, outLen int) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}
	if outLen < 0 {
		return nil, ErrAssertFailed
	}

	dst := make([]byte, outLen)
	n, err := DecompressInto(src, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// DecompressInto decompresses an LZO1X bitstream from src into dst, writing
// starting at dst[0]. It returns the number of bytes written — always set,
// even on error, reflecting progress at the point of failure — and a status
// error drawn from the taxonomy in errors.go (nil on success).
//
// src must be a complete, self-contained LZO1X bitstream: on success every
// byte of src has been consumed and the stream's end-of-stream instruction
// has been seen. There is no support for decoding back-to-back blocks from
// one buffer or for streaming input from an io.Reader — each call decodes
// exactly one bitstream.
func DecompressInto(src, dst []byte) (int, error) {
	if len(src) == 0 {
		return 0, ErrEmptyInput
	}

	var (
		inst      byte
		state     int
		nextState int
		matchLen  int
		matchDist int
		inPos     int
		outPos    int
	)

	inst, err := readByte(src, &inPos)
	if err != nil {
		return 0, err
	}

	// The opening byte can encode an initial literal run directly. A run of
	// exactly 1..4 bytes (inst in 18..21) leaves state equal to the run's own
	// length, which for length 4 happens to coincide with afterLiteralRun;
	// a longer run (inst >= 22) always leaves state == afterLiteralRun.
	switch {
	case inst >= 22:
		if err := copyLiteralRun(src, &inPos, dst, &outPos, int(inst)-17); err != nil {
			return outPos, err
		}
		state = afterLiteralRun

	case inst >= 18:
		nextState = int(inst) - 17
		if err := copyLiteralRun(src, &inPos, dst, &outPos, nextState); err != nil {
			return outPos, err
		}
		state = nextState
	}

	for {
		if inPos > 1 || state > 0 {
			if inPos >= len(src) {
				// Ran out of input looking for the next instruction, as
				// opposed to mid-instruction while reading a known-length
				// operand (which is always an input-overrun instead).
				return outPos, ErrEOFNotFound
			}
			inst = src[inPos]
			inPos++
		}

		switch {
		case inst >= markerM2:
			b, err := readByte(src, &inPos)
			if err != nil {
				return outPos, err
			}
			matchDist = (int(b) << 3) + ((int(inst) >> 2) & 7) + 1
			matchLen = (int(inst) >> 5) + 1
			nextState = int(inst & 3)

		case inst >= markerM3:
			matchLen = int(inst&31) + 2
			if matchLen == 2 {
				ext, err := readZeroRun(src, &inPos)
				if err != nil {
					return outPos, err
				}
				tail, err := readByte(src, &inPos)
				if err != nil {
					return outPos, err
				}
				matchLen += ext*255 + 31 + int(tail)
			}
			v16, err := readLE16(src, &inPos)
			if err != nil {
				return outPos, err
			}
			matchDist = (int(v16) >> 2) + 1
			nextState = int(v16 & 3)

		case inst >= markerM4:
			matchLen = int(inst&7) + 2
			if matchLen == 2 {
				ext, err := readZeroRun(src, &inPos)
				if err != nil {
					return outPos, err
				}
				tail, err := readByte(src, &inPos)
				if err != nil {
					return outPos, err
				}
				matchLen += ext*255 + 7 + int(tail)
			}
			v16, err := readLE16(src, &inPos)
			if err != nil {
				return outPos, err
			}
			baseDist := ((int(inst) & 8) << 11) + (int(v16) >> 2)
			if baseDist == 0 {
				// End-of-stream marker: the M4 family with offset 0 decodes
				// to match_src == output_cursor, which can never be a valid
				// back-reference, so LZO1X reserves it as the terminator.
				if matchLen != 3 {
					return outPos, ErrAssertFailed
				}
				switch {
				case inPos == len(src):
					return outPos, nil
				case inPos < len(src):
					return outPos, ErrInputNotConsumed
				default:
					return outPos, ErrInputOverrun
				}
			}
			matchDist = baseDist + 0x4000
			nextState = int(v16 & 3)

		default:
			if state == 0 {
				// A plain literal run: decode its length (with zero-run
				// extension for long runs) and copy it verbatim.
				runLen := int(inst) + 3
				if runLen == 3 {
					ext, err := readZeroRun(src, &inPos)
					if err != nil {
						return outPos, err
					}
					tail, err := readByte(src, &inPos)
					if err != nil {
						return outPos, err
					}
					runLen += ext*255 + 15 + int(tail)
				}
				if err := copyLiteralRun(src, &inPos, dst, &outPos, runLen); err != nil {
					return outPos, err
				}
				state = afterLiteralRun
				continue
			}

			// A short match. Immediately after a literal run this decodes
			// with the firstLiteralMatchBase bias and a fixed 3-byte copy;
			// any other time (the short trailing-literal carry left by a
			// previous match) it's a plain M1 match with a fixed 2-byte copy.
			tail, err := readByte(src, &inPos)
			if err != nil {
				return outPos, err
			}
			nextState = int(inst & 3)

			if state == afterLiteralRun {
				matchDist = firstLiteralMatchBase + (int(inst) >> 2) + (int(tail) << 2)
				matchLen = 3
			} else {
				matchDist = (int(inst) >> 2) + (int(tail) << 2) + 1
				matchLen = 2
			}
		}

		if err := copyMatch(dst, outPos, matchDist, matchLen); err != nil {
			return outPos, err
		}
		outPos += matchLen

		if nextState > 0 {
			if err := copyLiteralRun(src, &inPos, dst, &outPos, nextState); err != nil {
				return outPos, err
			}
		}
		state = nextState
	}
}

// readByte reads one byte from src at *inPos and advances *inPos.
func readByte(src []byte, inPos *int) (byte, error) {
	if *inPos >= len(src) {
		return 0, ErrInputOverrun
	}
	b := src[*inPos]
	*inPos++
	return b, nil
}

// readLE16 reads one little-endian uint16 from src at *inPos and advances
// *inPos by 2. LZO1X's 16-bit operand fields are always little-endian.
func readLE16(src []byte, inPos *int) (uint16, error) {
	if *inPos+2 > len(src) {
		return 0, ErrInputOverrun
	}
	lo := uint16(src[*inPos])
	hi := uint16(src[*inPos+1])
	*inPos += 2
	return lo | hi<<8, nil
}

// readZeroRun consumes consecutive zero bytes (the LZO1X length-extension
// encoding) and returns their count. Every byte consumed is individually
// bounds-checked, and the count is capped so that a pathological all-zero
// input cannot overflow the caller's length accumulation.
func readZeroRun(src []byte, inPos *int) (int, error) {
	start := *inPos
	for *inPos < len(src) && src[*inPos] == 0 {
		*inPos++
	}
	count := *inPos - start
	if count > maxZeroExtendedChunks {
		return 0, ErrInputOverrun
	}
	return count, nil
}
