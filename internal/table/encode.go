package table

import (
	"encoding/binary"
	"math"
)

// EncodeRows writes rows into their fixed-width wire form, rowWidth bytes
// per row. Text cells are space-padded (and truncated) to the declared
// repeat count; numeric cells default to zero when a value is missing or of
// an unexpected type. Cells past the declared columns stay zero.
func EncodeRows(rows []Row, cols []Column, rowWidth int) ([]byte, error) {
	buf := make([]byte, len(rows)*rowWidth)
	for r, row := range rows {
		base := r * rowWidth
		off := base
		for _, c := range cols {
			if off+c.Width() > base+rowWidth {
				break
			}
			encodeCell(buf[off:off+c.Width()], c, row[c.Name])
			off += c.Width()
		}
	}
	return buf, nil
}

// encodeCell writes one cell value.
func encodeCell(cell []byte, c Column, v any) {
	switch c.Code {
	case 'A':
		s, _ := v.(string)
		n := copy(cell, s)
		for i := n; i < len(cell); i++ {
			cell[i] = ' '
		}
	case 'I':
		for i, x := range cellInts(v, c.Repeat) {
			binary.BigEndian.PutUint16(cell[i*2:], uint16(x))
		}
	case 'E':
		for i, x := range cellFloats(v, c.Repeat) {
			binary.BigEndian.PutUint32(cell[i*4:], math.Float32bits(float32(x)))
		}
	default: // 'D'
		for i, x := range cellFloats(v, c.Repeat) {
			binary.BigEndian.PutUint64(cell[i*8:], math.Float64bits(x))
		}
	}
}

// cellInts coerces a cell value into n int16 elements, zero-filling
// whatever is missing.
func cellInts(v any, n int) []int16 {
	p := make([]int16, n)
	if n == 0 {
		return p
	}
	switch x := v.(type) {
	case []int16:
		copy(p, x)
	case []int:
		for i := 0; i < n && i < len(x); i++ {
			p[i] = int16(x[i])
		}
	default:
		p[0] = int16(scalarFloat(v))
	}
	return p
}

// cellFloats coerces a cell value into n float64 elements, zero-filling
// whatever is missing.
func cellFloats(v any, n int) []float64 {
	p := make([]float64, n)
	if n == 0 {
		return p
	}
	switch x := v.(type) {
	case []float64:
		copy(p, x)
	case []float32:
		for i := 0; i < n && i < len(x); i++ {
			p[i] = float64(x[i])
		}
	case []int:
		for i := 0; i < n && i < len(x); i++ {
			p[i] = float64(x[i])
		}
	default:
		p[0] = scalarFloat(v)
	}
	return p
}

// scalarFloat coerces a scalar cell value; anything unrecognized is zero.
func scalarFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return 0
	}
}
