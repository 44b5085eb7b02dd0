// Package fits reads and writes the FITS astronomical data container
// format: a sequence of Header/Data Units (HDUs), each a fixed-record text
// header followed by a strictly typed big-endian data block, the whole
// stream padded to 2880-byte boundaries.
//
// [Decode] splits a byte stream into HDUs and [File.Encode] is its exact
// mirror; the two round-trip losslessly. Headers are exposed as ordered
// [Card] stores, image data as typed slices keyed by BITPIX, and binary
// tables as []Row keyed by column name:
//
//	f, err := fits.Decode(buf)
//	if err != nil { ... }
//	img := f.Primary()
//	fmt.Println(img.Shape(), img.Data)
//
// Streams are built either by decoding or from the [NewPrimaryHDU],
// [NewImageHDU] and [NewTableHDU] constructors plus [File.AddHDU].
//
// File and stream handling (including transparent gzip/zlib unwrapping)
// lives in [Open], [ReadFile] and [WriteFile]; the codec itself only ever
// touches in-memory buffers and is safe to run concurrently on distinct
// File instances.
package fits

import "fmt"

// File is an ordered container of HDUs. The first unit is the primary HDU;
// every later unit is an extension.
type File struct {
	hdus []*HDU
}

// NewFile creates an empty container.
func NewFile() *File {
	return &File{}
}

// NumHDUs returns the number of units in the container.
func (f *File) NumHDUs() int {
	return len(f.hdus)
}

// HDUs returns the units in container order. The slice is shared; callers
// must not modify it.
func (f *File) HDUs() []*HDU {
	return f.hdus
}

// HDU returns the i-th unit, or nil when i is out of range.
func (f *File) HDU(i int) *HDU {
	if i < 0 || i >= len(f.hdus) {
		return nil
	}
	return f.hdus[i]
}

// Primary returns the primary HDU, or nil for an empty container.
func (f *File) Primary() *HDU {
	if len(f.hdus) == 0 {
		return nil
	}
	return f.hdus[0]
}

// AddHDU appends a unit to the container. The primary HDU must exist
// before any extension can be appended, and only one primary is allowed;
// violations fail with ErrStructure. Appending the first extension injects
// EXTEND=true into the primary header.
func (f *File) AddHDU(h *HDU) error {
	if h.IsPrimary() {
		if len(f.hdus) > 0 {
			return fmt.Errorf("%w: primary HDU already defined", ErrStructure)
		}
		f.hdus = append(f.hdus, h)
		return nil
	}

	if len(f.hdus) == 0 {
		return fmt.Errorf("%w: primary HDU is not defined", ErrStructure)
	}
	if _, ok := f.hdus[0].Header.Get("EXTEND"); !ok {
		f.hdus[0].Header.Set("EXTEND", true, "extensions may be present")
	}
	f.hdus = append(f.hdus, h)
	return nil
}
