// SPDX-License-Identifier: MIT

package lzoasym

// LZO1X match-instruction markers and bounds. The high bits of a command
// byte classify it into one of the four match families, or (below markerM4)
// a literal run when the decoder is not already inside a match's short
// trailing-literal context.
const (
	markerM2 = 64 // c >= 64: M2 match
	markerM3 = 32 // 32 <= c < 64: M3 match
	markerM4 = 16 // 16 <= c < 32: M4 match, or end-of-stream

	// m2MaxOffset is the maximum backward distance addressable by the
	// dedicated M2 instruction. The short match form that directly follows a
	// literal run starts its distances just past it, at m2MaxOffset+1.
	m2MaxOffset = 0x0800
)

// maxZeroExtendedChunks bounds the number of 255-valued zero-run bytes a
// length extension may consume, so that a pathological run of zero bytes
// cannot overflow the accumulated length.
const maxZeroExtendedChunks = int(^uint(0)/255) - 2

// Packet framing tags (spec §3). The two "no compress" values are fixed by
// the interoperating protocol; 0x66/0x67 are the normative LZO tags.
const (
	TagNoCompress      byte = 0xFA // uncompressed payload
	TagNoCompressSwap  byte = 0xFB // uncompressed payload, head/tail swapped
	TagLZOCompress     byte = 0x66 // LZO-compressed payload
	TagLZOCompressSwap byte = 0x67 // LZO-compressed payload, head/tail swapped
)
