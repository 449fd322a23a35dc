// SPDX-License-Identifier: MIT

package lzoasym

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrorSink is notified whenever Compressor.Inbound drops a packet, either
// because the decoder failed or because the leading framing byte was not a
// recognized tag. It exists purely for observability — session statistics
// and metrics aggregation remain the caller's responsibility.
type ErrorSink interface {
	DroppedPacket(tag byte, err error)
}

type noopErrorSink struct{}

func (noopErrorSink) DroppedPacket(byte, error) {}

// LogErrorSink is a logrus-backed ErrorSink: it logs a warning with the tag
// byte and error, and does nothing else. If Logger is nil, logrus's
// standard logger is used. NewCompressor does not install it by default; a
// nil sink there means a no-op sink.
type LogErrorSink struct {
	Logger *logrus.Logger
}

// DroppedPacket logs the drop at warn level with structured fields.
func (s *LogErrorSink) DroppedPacket(tag byte, err error) {
	logger := logrus.StandardLogger()
	if s != nil && s.Logger != nil {
		logger = s.Logger
	}
	logger.WithFields(logrus.Fields{
		"tag": fmt.Sprintf("0x%02x", tag),
		"err": err,
	}).Warn("lzoasym: dropping packet")
}

// Config selects the packet framing layer's per-session behavior.
type Config struct {
	// SupportSwap negotiates head/tail swap framing on outbound packets.
	SupportSwap bool

	// Asym is accepted for wire compatibility with peers that negotiate a
	// symmetric/asymmetric flag, but has no effect: this implementation is
	// always decompress-only regardless of its value.
	Asym bool
}

// Compressor implements the "lzo-asym" packet framing layer: it peels or
// prepends the one-byte compression tag and, for compressed packets, drives
// the LZO1X decoder. It owns one reusable scratch buffer and is therefore
// bound to a single session — it is not safe for concurrent use by multiple
// goroutines.
type Compressor struct {
	cfg     Config
	sink    ErrorSink
	scratch []byte
}

// NewCompressor creates a Compressor configured per cfg, with a decode
// scratch buffer of scratchSize bytes (sized by the caller from the
// session's negotiated maximum packet size). A nil sink installs a no-op
// ErrorSink rather than a sink that logs to a default global logger, so an
// unconfigured caller sees no surprise log output.
func NewCompressor(cfg Config, scratchSize int, sink ErrorSink) *Compressor {
	if sink == nil {
		sink = noopErrorSink{}
	}
	return &Compressor{
		cfg:     cfg,
		sink:    sink,
		scratch: make([]byte, scratchSize),
	}
}

// Name returns the wire-protocol name of this compression method.
func (c *Compressor) Name() string {
	return "lzo-asym"
}

// Inbound peels the framing tag from buf and returns the payload. Empty
// packets are returned unchanged. Packets tagged as LZO-compressed are
// decoded through the scratch buffer; the returned slice in that case
// aliases the Compressor's internal buffer and is only valid until the
// next call to Inbound. An unrecognized tag, or a decoder failure, reports
// to the configured ErrorSink and returns ErrUnknownOpcode or the decoder's
// own error; the caller must drop the packet in either case.
func (c *Compressor) Inbound(buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		return buf, nil
	}

	tag := buf[0]
	payload := buf[1:]

	// NO_COMPRESS_SWAP and LZO_COMPRESS_SWAP unswap and then fall into the
	// shared NO_COMPRESS/LZO_COMPRESS handling — this mirrors the original
	// framing's intentional switch-fallthrough and is not a bug to "fix"
	// with an early return.
	switch tag {
	case TagNoCompressSwap:
		swapHeadTail(payload)
		return payload, nil

	case TagNoCompress:
		return payload, nil

	case TagLZOCompressSwap:
		swapHeadTail(payload)
		return c.decodeLZO(tag, payload)

	case TagLZOCompress:
		return c.decodeLZO(tag, payload)

	default:
		c.sink.DroppedPacket(tag, ErrUnknownOpcode)
		return nil, ErrUnknownOpcode
	}
}

// decodeLZO runs the LZO1X decoder on payload into the scratch buffer,
// reporting a failure to the error sink before returning it.
func (c *Compressor) decodeLZO(tag byte, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return payload, nil
	}

	n, err := DecompressInto(payload, c.scratch)
	if err != nil {
		c.sink.DroppedPacket(tag, err)
		return nil, err
	}

	return c.scratch[:n], nil
}

// Outbound prepends the framing tag for an uncompressed packet. hint is a
// compressibility hint from an upstream layer and is always ignored: this
// implementation never compresses, regardless of what hint says. Empty
// packets are returned unchanged.
func (c *Compressor) Outbound(buf []byte, hint bool) []byte {
	if len(buf) == 0 {
		return buf
	}

	if c.cfg.SupportSwap {
		swapHeadTail(buf)
		return prependTag(TagNoCompressSwap, buf)
	}

	return prependTag(TagNoCompress, buf)
}

// swapHeadTail exchanges the first and last byte of buf in place. It is its
// own inverse: calling it twice restores the original sequence. Buffers of
// length 0 or 1 are left unchanged.
func swapHeadTail(buf []byte) {
	if len(buf) < 2 {
		return
	}
	buf[0], buf[len(buf)-1] = buf[len(buf)-1], buf[0]
}

// prependTag returns a new slice holding tag followed by buf.
func prependTag(tag byte, buf []byte) []byte {
	out := make([]byte, len(buf)+1)
	out[0] = tag
	copy(out[1:], buf)
	return out
}
