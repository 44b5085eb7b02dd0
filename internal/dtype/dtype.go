// Package dtype maps FITS BITPIX type codes to Go element codecs.
//
// BITPIX declares the binary encoding of every element in an image data
// block. The mapping is closed:
//
//	BITPIX | Go type  | bytes
//	-------|----------|------
//	     8 | uint8    | 1
//	    16 | int16    | 2
//	    32 | int32    | 4
//	    64 | int64    | 8
//	   -32 | float32  | 4
//	   -64 | float64  | 8
//
// All multi-byte values are big-endian ("network" order) on the wire.
// [Decode] turns a raw data segment into a typed slice, [Encode] is the
// mirror and applies the (raw-BZERO)/BSCALE transform before writing.
package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrUnknownBitpix is returned for BITPIX values outside the closed mapping.
var ErrUnknownBitpix = errors.New("unknown BITPIX value")

// ElementSize returns the byte width of one element for the given BITPIX.
// ok is false for values outside the mapping.
func ElementSize(bitpix int) (size int, ok bool) {
	switch bitpix {
	case 8:
		return 1, true
	case 16:
		return 2, true
	case 32, -32:
		return 4, true
	case 64, -64:
		return 8, true
	default:
		return 0, false
	}
}

// Decode converts a raw big-endian data segment into a typed slice:
// []uint8, []int16, []int32, []int64, []float32 or []float64 depending on
// bitpix. Trailing bytes short of a full element are ignored.
func Decode(raw []byte, bitpix int) (any, error) {
	size, ok := ElementSize(bitpix)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBitpix, bitpix)
	}
	n := len(raw) / size

	switch bitpix {
	case 8:
		p := make([]uint8, n)
		copy(p, raw)
		return p, nil
	case 16:
		p := make([]int16, n)
		for i := range p {
			p[i] = int16(binary.BigEndian.Uint16(raw[i*2:]))
		}
		return p, nil
	case 32:
		p := make([]int32, n)
		for i := range p {
			p[i] = int32(binary.BigEndian.Uint32(raw[i*4:]))
		}
		return p, nil
	case 64:
		p := make([]int64, n)
		for i := range p {
			p[i] = int64(binary.BigEndian.Uint64(raw[i*8:]))
		}
		return p, nil
	case -32:
		p := make([]float32, n)
		for i := range p {
			p[i] = math.Float32frombits(binary.BigEndian.Uint32(raw[i*4:]))
		}
		return p, nil
	default: // -64
		p := make([]float64, n)
		for i := range p {
			p[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[i*8:]))
		}
		return p, nil
	}
}

// Len returns the element count of a typed slice produced by Decode or
// supplied by a caller. Unknown types count as zero.
func Len(data any) int {
	switch d := data.(type) {
	case []uint8:
		return len(d)
	case []int16:
		return len(d)
	case []int32:
		return len(d)
	case []int64:
		return len(d)
	case []float32:
		return len(d)
	case []float64:
		return len(d)
	default:
		return 0
	}
}

// FloatAt returns element i of a typed slice as float64.
func FloatAt(data any, i int) float64 {
	switch d := data.(type) {
	case []uint8:
		return float64(d[i])
	case []int16:
		return float64(d[i])
	case []int32:
		return float64(d[i])
	case []int64:
		return float64(d[i])
	case []float32:
		return float64(d[i])
	case []float64:
		return d[i]
	default:
		return 0
	}
}

// IntAt returns element i of a typed slice as int64. Float elements are
// truncated.
func IntAt(data any, i int) int64 {
	switch d := data.(type) {
	case []uint8:
		return int64(d[i])
	case []int16:
		return int64(d[i])
	case []int32:
		return int64(d[i])
	case []int64:
		return d[i]
	case []float32:
		return int64(d[i])
	case []float64:
		return int64(d[i])
	default:
		return 0
	}
}
