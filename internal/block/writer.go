package block

// Writer assembles a FITS byte stream. Encoding sizes its output in a
// pre-pass, so the writer is created with the final capacity and never
// reallocates on the happy path; append keeps it correct if a caller
// undersizes.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with the given capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the assembled stream.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(p []byte) {
	w.buf = append(w.buf, p...)
}

// WriteCard appends one 80-byte card image. The text is space-padded or
// truncated to exactly CardSize bytes.
func (w *Writer) WriteCard(s string) {
	if len(s) > CardSize {
		s = s[:CardSize]
	}
	w.buf = append(w.buf, s...)
	for i := len(s); i < CardSize; i++ {
		w.buf = append(w.buf, ' ')
	}
}

// PadBlock appends zero bytes up to the next block boundary.
func (w *Writer) PadBlock() {
	rem := len(w.buf) % Size
	if rem == 0 {
		return
	}
	w.buf = append(w.buf, make([]byte, Size-rem)...)
}
