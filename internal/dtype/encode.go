package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode converts a typed slice into its big-endian wire form. Each element
// is transformed as (raw-bzero)/bscale before encoding; the identity
// transform (bzero=0, bscale=1) takes a direct path that preserves full
// 64-bit integer precision.
//
// The slice type does not have to match bitpix: mismatched types go through
// float64 and are truncated into the target representation.
func Encode(data any, bitpix int, bzero, bscale float64) ([]byte, error) {
	size, ok := ElementSize(bitpix)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBitpix, bitpix)
	}
	if bscale == 0 {
		return nil, fmt.Errorf("BSCALE must be non-zero")
	}

	n := Len(data)
	buf := make([]byte, n*size)

	if bzero == 0 && bscale == 1 {
		if done := encodeDirect(buf, data, bitpix); done {
			return buf, nil
		}
	}

	for i := 0; i < n; i++ {
		v := (FloatAt(data, i) - bzero) / bscale
		putElement(buf[i*size:], bitpix, v)
	}
	return buf, nil
}

// encodeDirect handles the common case where the slice type already matches
// bitpix and no scaling applies. Returns false when the caller must fall
// back to the float64 path.
func encodeDirect(buf []byte, data any, bitpix int) bool {
	switch d := data.(type) {
	case []uint8:
		if bitpix != 8 {
			return false
		}
		copy(buf, d)
	case []int16:
		if bitpix != 16 {
			return false
		}
		for i, v := range d {
			binary.BigEndian.PutUint16(buf[i*2:], uint16(v))
		}
	case []int32:
		if bitpix != 32 {
			return false
		}
		for i, v := range d {
			binary.BigEndian.PutUint32(buf[i*4:], uint32(v))
		}
	case []int64:
		if bitpix != 64 {
			return false
		}
		for i, v := range d {
			binary.BigEndian.PutUint64(buf[i*8:], uint64(v))
		}
	case []float32:
		if bitpix != -32 {
			return false
		}
		for i, v := range d {
			binary.BigEndian.PutUint32(buf[i*4:], math.Float32bits(v))
		}
	case []float64:
		if bitpix != -64 {
			return false
		}
		for i, v := range d {
			binary.BigEndian.PutUint64(buf[i*8:], math.Float64bits(v))
		}
	default:
		return false
	}
	return true
}

// putElement writes one element in the representation declared by bitpix.
func putElement(buf []byte, bitpix int, v float64) {
	switch bitpix {
	case 8:
		buf[0] = uint8(v)
	case 16:
		binary.BigEndian.PutUint16(buf, uint16(int16(v)))
	case 32:
		binary.BigEndian.PutUint32(buf, uint32(int32(v)))
	case 64:
		binary.BigEndian.PutUint64(buf, uint64(int64(v)))
	case -32:
		binary.BigEndian.PutUint32(buf, math.Float32bits(float32(v)))
	case -64:
		binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	}
}
