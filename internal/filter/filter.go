// Package filter handles transport-level decompression of FITS streams.
//
// Archives routinely ship FITS files gzip- or zlib-compressed. The codec
// itself only ever sees a plain buffer; this package sniffs the leading
// magic bytes of an input stream and, when a known wrapper is present,
// unwraps it with the standard library decompressors. It contains no FITS
// logic.
package filter

import (
	"bufio"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
)

// Decompress wraps r with the decompressor matching its leading magic
// bytes. Streams without a recognized wrapper pass through unchanged (the
// returned reader buffers the peeked bytes, so it replaces r).
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		// Too short to carry a wrapper; hand it through and let the
		// codec report the truncation.
		return br, nil
	}

	switch {
	case magic[0] == 0x1f && magic[1] == 0x8b:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return zr, nil
	case magic[0] == 0x78 && (magic[1] == 0x01 || magic[1] == 0x9c || magic[1] == 0xda):
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zlib reader: %w", err)
		}
		return zr, nil
	default:
		return br, nil
	}
}
