// SPDX-License-Identifier: MIT

/*
Package lzoasym implements OpenVPN's asymmetric LZO compression scheme:
decompression of LZO1X-compressed packets, but never compression.

The package has two layers. The decoder (decompress.go, copy.go) is a
single-pass, bounded-memory implementation of lzo1x_decompress_safe: it
parses a possibly-adversarial LZO1X bitstream into a caller-supplied output
buffer without ever reading past the input, writing past the output, or
following a back-reference outside the already-emitted prefix. The framing
layer (framing.go) wraps one byte of per-packet tag around that decoder,
matching the wire format used by OpenVPN's "lzo-asym" compression method.

# Decoding

DecompressInto writes into a caller-owned buffer:

	n, err := lzoasym.DecompressInto(compressed, dst)

Decompress allocates the destination for you:

	out, err := lzoasym.Decompress(compressed, expectedLen)

# Framing

A Compressor owns one reusable scratch buffer and is bound to a single
session:

	c := lzoasym.NewCompressor(lzoasym.Config{SupportSwap: true}, 1<<16, nil)
	payload, err := c.Inbound(packet)
	wire := c.Outbound(payload, false)

This package never compresses. Outbound always tags its payload as
uncompressed; a peer that compressed on its own side is still decoded
correctly by Inbound.
*/
package lzoasym
