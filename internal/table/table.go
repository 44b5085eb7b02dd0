// Package table implements the fixed-width binary-table codec.
//
// A binary table data block is NAXIS2 rows of NAXIS1 bytes. Each row holds
// TFIELDS cells laid out left to right; the TFORM{i} keyword declares each
// cell as (repeat)(code), where repeat defaults to 1 and code is one of:
//
//	code | cell element        | bytes
//	-----|---------------------|------
//	  A  | ASCII text          | 1 per character
//	  I  | int16, big-endian   | 2
//	  E  | float32, big-endian | 4
//	  D  | float64, big-endian | 8
//
// Text cells always decode to one string of repeat characters; numeric
// cells decode to a scalar when repeat is 1 and to a slice otherwise.
// Decoded rows are keyed by column name in file order.
package table

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownCode is returned for TFORM type codes outside A, I, E, D.
var ErrUnknownCode = errors.New("unrecognized TFORM type code")

// ErrRowOverflow is returned when the declared column widths exceed the
// declared row width.
var ErrRowOverflow = errors.New("column layout exceeds row width")

// Column describes one table field.
type Column struct {
	Name   string // TTYPE{i}, or the COL{i} default
	Repeat int    // element count per cell
	Code   byte   // A, I, E or D
}

// Width returns the cell width in bytes.
func (c Column) Width() int {
	switch c.Code {
	case 'A':
		return c.Repeat
	case 'I':
		return 2 * c.Repeat
	case 'E':
		return 4 * c.Repeat
	default: // 'D'
		return 8 * c.Repeat
	}
}

// ParseForm parses a TFORM value of the shape (repeat)(code). A missing
// repeat count defaults to 1.
func ParseForm(form string) (repeat int, code byte, err error) {
	form = strings.TrimSpace(form)
	if form == "" {
		return 0, 0, fmt.Errorf("%w: empty TFORM", ErrUnknownCode)
	}

	i := 0
	for i < len(form) && form[i] >= '0' && form[i] <= '9' {
		i++
	}
	repeat = 1
	if i > 0 {
		repeat, err = strconv.Atoi(form[:i])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrUnknownCode, form)
		}
	}
	if i >= len(form) {
		return 0, 0, fmt.Errorf("%w: %q has no type code", ErrUnknownCode, form)
	}

	code = form[i]
	switch code {
	case 'A', 'I', 'E', 'D':
		return repeat, code, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownCode, string(code))
	}
}

// Row is one decoded table row, cell values keyed by column name.
type Row map[string]any

// DecodeRows decodes raw table data into one Row per table row, in file
// order. rowWidth is NAXIS1; rows beyond the raw buffer are not decoded.
// Column widths that overrun the row width fail with ErrRowOverflow.
func DecodeRows(raw []byte, cols []Column, rows, rowWidth int) ([]Row, error) {
	out := make([]Row, 0, rows)
	for r := 0; r < rows; r++ {
		base := r * rowWidth
		if base+rowWidth > len(raw) {
			break
		}

		row := make(Row, len(cols))
		off := base
		for _, c := range cols {
			if off+c.Width() > base+rowWidth {
				return nil, fmt.Errorf("%w: column %q needs %d bytes of a %d-byte row",
					ErrRowOverflow, c.Name, c.Width(), rowWidth)
			}
			row[c.Name] = decodeCell(raw[off:off+c.Width()], c)
			off += c.Width()
		}
		out = append(out, row)
	}
	return out, nil
}

// decodeCell decodes one fixed-width cell.
func decodeCell(cell []byte, c Column) any {
	switch c.Code {
	case 'A':
		s := strings.TrimRight(string(cell), "\x00")
		return strings.TrimSpace(s)
	case 'I':
		if c.Repeat == 1 {
			return int16(binary.BigEndian.Uint16(cell))
		}
		p := make([]int16, c.Repeat)
		for i := range p {
			p[i] = int16(binary.BigEndian.Uint16(cell[i*2:]))
		}
		return p
	case 'E':
		if c.Repeat == 1 {
			return math.Float32frombits(binary.BigEndian.Uint32(cell))
		}
		p := make([]float32, c.Repeat)
		for i := range p {
			p[i] = math.Float32frombits(binary.BigEndian.Uint32(cell[i*4:]))
		}
		return p
	default: // 'D'
		if c.Repeat == 1 {
			return math.Float64frombits(binary.BigEndian.Uint64(cell))
		}
		p := make([]float64, c.Repeat)
		for i := range p {
			p[i] = math.Float64frombits(binary.BigEndian.Uint64(cell[i*8:]))
		}
		return p
	}
}

// RowWidth returns the total byte width of one row for the given columns.
func RowWidth(cols []Column) int {
	w := 0
	for _, c := range cols {
		w += c.Width()
	}
	return w
}
