package fits

import (
	"fmt"
	"io"
	"os"

	"github.com/robert-malhotra/go-fits/internal/filter"
)

// Open reads a complete FITS stream from r and decodes it. Streams wrapped
// in gzip or zlib are decompressed transparently.
func Open(r io.Reader, opts ...Option) (*File, error) {
	rr, err := filter.Decompress(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing stream: %w", err)
	}
	buf, err := io.ReadAll(rr)
	if err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}
	return Decode(buf, opts...)
}

// ReadFile opens and decodes the FITS file at path.
func ReadFile(path string, opts ...Option) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer r.Close()
	return Open(r, opts...)
}

// WriteFile encodes f and writes the stream to path.
func WriteFile(path string, f *File, opts ...Option) error {
	buf, err := f.Encode(opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
