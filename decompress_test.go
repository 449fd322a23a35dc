// SPDX-License-Identifier: MIT

package lzoasym

import (
	"bytes"
	"errors"
	"testing"
)

// fiveTwelveZeros is the canonical LZO1X stream for 512 zero bytes: a short
// literal run of one zero byte, an M3 match copying it back 511 times (with
// a zero-run length extension), and the end-of-stream marker.
var fiveTwelveZeros = []byte{0x12, 0x00, 0x20, 0x00, 0xdf, 0x00, 0x00, 0x11, 0x00, 0x00}

func TestDecompress_CanonicalZeroRun(t *testing.T) {
	out, err := Decompress(fiveTwelveZeros, 512)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if len(out) != 512 {
		t.Fatalf("len(out) = %d, want 512", len(out))
	}
	if !bytes.Equal(out, make([]byte, 512)) {
		t.Fatalf("output is not all zero bytes")
	}
}

func TestDecompress_EmptyInput(t *testing.T) {
	_, err := Decompress(nil, 0)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	_, err = DecompressInto(nil, make([]byte, 4))
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput from DecompressInto, got %v", err)
	}
}

func TestDecompress_EmptyStream(t *testing.T) {
	// An empty payload encodes as just the end-of-stream marker, with no
	// leading literal-run instruction at all.
	out, err := Decompress([]byte{markerM4 | 1, 0, 0}, 0)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0", len(out))
	}
}

func TestDecompress_LiteralRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("a"),
		[]byte("hello world"),
		bytes.Repeat([]byte("x"), 238),
		bytes.Repeat([]byte("y"), 239),
		bytes.Repeat([]byte("abcdefghij"), 100),
		bytes.Repeat([]byte{0x00, 0x01}, 4096),
	}

	for _, data := range cases {
		enc := encodeLiteralOnly(data)
		out, err := Decompress(enc, len(data))
		if err != nil {
			t.Fatalf("Decompress(%d bytes) failed: %v", len(data), err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("round trip mismatch for %d-byte input", len(data))
		}
	}
}

// TestDecompress_Overlap exercises the RLE (overlapping source) path in
// copyMatch: a single literal byte followed by a distance-1 match replicates
// it forward.
func TestDecompress_Overlap(t *testing.T) {
	// 0x12: first literal run of length 1 ('A'). Then an M2 match with
	// inst=0xE0, b=0x00: length=(0xE0>>5)+1=8, dist=(0<<3)+((0xE0>>2)&7)+1=1.
	// A distance-1, length-8 match replicates 'A' forward one byte at a
	// time, the classic RLE overlap case.
	src := []byte{0x12, 'A', 0xE0, 0x00, markerM4 | 1, 0, 0}
	out, err := Decompress(src, 9)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	want := bytes.Repeat([]byte{'A'}, 9)
	if !bytes.Equal(out, want) {
		t.Fatalf("out = %q, want %q", out, want)
	}
}

func TestDecompress_TruncatedInputAlwaysFails(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 64)
	enc := encodeLiteralOnly(data)

	for cut := 1; cut < len(enc); cut++ {
		truncated := enc[:len(enc)-cut]
		_, err := Decompress(truncated, len(data))
		if err == nil {
			t.Fatalf("expected error for cut=%d", cut)
		}
		if !errors.Is(err, ErrInputOverrun) &&
			!errors.Is(err, ErrEOFNotFound) &&
			!errors.Is(err, ErrOutputOverrun) &&
			!errors.Is(err, ErrInputNotConsumed) &&
			!errors.Is(err, ErrAssertFailed) {
			t.Fatalf("cut=%d: unexpected error type: %v", cut, err)
		}
	}
}

func TestDecompress_TrailingGarbageIsRejected(t *testing.T) {
	enc := encodeLiteralOnly([]byte("hello"))
	enc = append(enc, 0xff)

	_, err := Decompress(enc, 5)
	if !errors.Is(err, ErrInputNotConsumed) {
		t.Fatalf("expected ErrInputNotConsumed, got %v", err)
	}
}

func TestDecompress_LookBehindOverrun(t *testing.T) {
	// The opening byte 0x12 is a literal run of 1 byte (state becomes 1),
	// immediately followed by an M2 match (0xff, operand 0xff) whose distance
	// of 2048 reaches before the start of the output buffer.
	src := []byte{0x12, 'A', 0xff, 0xff}
	_, err := Decompress(src, 16)
	if !errors.Is(err, ErrLookBehindOverrun) {
		t.Fatalf("expected ErrLookBehindOverrun, got %v", err)
	}
}

func TestDecompress_OutputOverrun(t *testing.T) {
	enc := encodeLiteralOnly(bytes.Repeat([]byte("z"), 64))
	_, err := Decompress(enc, 32)
	if !errors.Is(err, ErrOutputOverrun) {
		t.Fatalf("expected ErrOutputOverrun, got %v", err)
	}
}

func TestDecompressInto_WritesIntoCallerBuffer(t *testing.T) {
	data := []byte("reused buffer contents, exercised repeatedly")
	enc := encodeLiteralOnly(data)

	dst := make([]byte, len(data)+64)
	n, err := DecompressInto(enc, dst)
	if err != nil {
		t.Fatalf("DecompressInto failed: %v", err)
	}
	if n != len(data) {
		t.Fatalf("n = %d, want %d", n, len(data))
	}
	if !bytes.Equal(dst[:n], data) {
		t.Fatalf("decoded mismatch")
	}
}

func FuzzDecompressInto_NeverPanics(f *testing.F) {
	f.Add(fiveTwelveZeros, 512)
	f.Add([]byte{markerM4 | 1, 0, 0}, 0)
	f.Add(encodeLiteralOnly([]byte("seed corpus entry")), len("seed corpus entry"))

	f.Fuzz(func(t *testing.T, src []byte, outLen int) {
		if outLen < 0 || outLen > 1<<20 {
			outLen = 0
		}
		// DecompressInto must never panic, regardless of how malformed src
		// is; a non-nil error is always an acceptable outcome.
		dst := make([]byte, outLen)
		_, _ = DecompressInto(src, dst)
	})
}

func FuzzDecompress_LiteralRoundTrip(f *testing.F) {
	f.Add([]byte("round trip this through the literal-only encoder"))
	f.Add([]byte{})
	f.Add(bytes.Repeat([]byte{0x00}, 300))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<16 {
			data = data[:1<<16]
		}
		enc := encodeLiteralOnly(data)
		out, err := Decompress(enc, len(data))
		if err != nil {
			t.Fatalf("Decompress failed on literal-only encoding: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("round trip mismatch")
		}
	})
}
