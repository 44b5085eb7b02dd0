package block

import (
	"errors"
	"fmt"
)

// ErrShortRead is returned when the stream ends in the middle of a card or
// data segment.
var ErrShortRead = errors.New("unexpected end of stream")

// Reader walks a FITS byte stream. It keeps an absolute position into the
// underlying buffer; segments are returned as sub-slices without copying.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader over the given buffer.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// EOF reports whether the stream is exhausted.
func (r *Reader) EOF() bool {
	return r.pos >= len(r.buf)
}

// ReadCard reads the next 80-byte card image as a string.
func (r *Reader) ReadCard() (string, error) {
	if r.Remaining() < CardSize {
		return "", fmt.Errorf("%w: %d bytes left, card needs %d", ErrShortRead, r.Remaining(), CardSize)
	}
	s := string(r.buf[r.pos : r.pos+CardSize])
	r.pos += CardSize
	return s, nil
}

// Segment returns the next n bytes as a sub-slice of the stream.
func (r *Reader) Segment(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fmt.Errorf("%w: %d bytes left, segment needs %d", ErrShortRead, r.Remaining(), n)
	}
	seg := r.buf[r.pos : r.pos+n]
	r.pos += n
	return seg, nil
}

// AlignBlock advances the position to the next block boundary. If already
// aligned, the position is unchanged. Alignment past the end of the buffer
// clamps to the end, so a stream with a truncated final padding block still
// terminates.
func (r *Reader) AlignBlock() {
	if rem := r.pos % Size; rem != 0 {
		r.pos += Size - rem
	}
	if r.pos > len(r.buf) {
		r.pos = len(r.buf)
	}
}
