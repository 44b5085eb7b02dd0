package fits

import (
	"fmt"

	"github.com/robert-malhotra/go-fits/internal/dtype"
	"github.com/robert-malhotra/go-fits/internal/table"
)

// Extension type names carried by the XTENSION keyword.
const (
	ExtensionImage    = "IMAGE"
	ExtensionTable    = "TABLE"
	ExtensionBinTable = "BINTABLE"
)

// Row is one decoded table row, cell values keyed by column name.
type Row map[string]any

// HDU is one Header/Data Unit: a header card store paired with an optional
// decoded data block. For image units Data is a typed slice ([]uint8,
// []int16, []int32, []int64, []float32 or []float64 matching BITPIX); for
// table units it is []Row.
//
// Shape, Width and Height are always recomputed from the current header
// state, never cached, so header mutation and data reinterpretation stay
// consistent.
type HDU struct {
	Header *Header
	Data   any

	primary  bool
	xtension string // IMAGE, TABLE or BINTABLE; empty for the primary unit
}

// IsPrimary reports whether this is the primary (SIMPLE) unit.
func (h *HDU) IsPrimary() bool {
	return h.primary
}

// IsTable reports whether the unit is a text or binary table extension.
func (h *HDU) IsTable() bool {
	return h.xtension == ExtensionTable || h.xtension == ExtensionBinTable
}

// Kind returns "PRIMARY" for the primary unit and the XTENSION name
// otherwise.
func (h *HDU) Kind() string {
	if h.primary {
		return "PRIMARY"
	}
	if h.xtension == "" {
		return ExtensionImage
	}
	return h.xtension
}

// Shape returns the logical dimensions derived live from the header. Table
// units yield [TFIELDS, NAXIS2] (columns x rows) when both keywords are
// present and nothing otherwise. Image units walk NAXIS1..NAXISk for
// k = NAXIS, stopping at the first absent axis keyword.
func (h *HDU) Shape() []int {
	if h.IsTable() {
		fields, ok1 := h.Header.GetInt("TFIELDS")
		rows, ok2 := h.Header.GetInt("NAXIS2")
		if !ok1 || !ok2 {
			return nil
		}
		return []int{fields, rows}
	}

	n, _ := h.Header.GetInt("NAXIS")
	shape := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		v, ok := h.Header.GetInt(axisKey(i))
		if !ok {
			break
		}
		shape = append(shape, v)
	}
	return shape
}

// Width returns NAXIS1.
func (h *HDU) Width() (int, bool) {
	return h.Header.GetInt("NAXIS1")
}

// Height returns NAXIS2.
func (h *HDU) Height() (int, bool) {
	return h.Header.GetInt("NAXIS2")
}

// Rows returns the decoded table rows. ok is false for non-table units.
func (h *HDU) Rows() (rows []Row, ok bool) {
	rows, ok = h.Data.([]Row)
	return rows, ok
}

// axisKey returns the NAXIS{n} keyword.
func axisKey(n int) string {
	return fmt.Sprintf("NAXIS%d", n)
}

// indexedKey returns keyword{n} for the 1-based table field keywords
// (TFORM1, TTYPE1, ...).
func indexedKey(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}

// NewPrimaryHDU creates a primary image unit over data with the given
// BITPIX and axis lengths. The header is populated with the mandatory
// SIMPLE, BITPIX and NAXIS* cards in standard order.
func NewPrimaryHDU(data any, bitpix int, dims ...int) (*HDU, error) {
	if _, ok := dtype.ElementSize(bitpix); !ok {
		return nil, fmt.Errorf("%w: BITPIX %d", ErrUnsupportedFormat, bitpix)
	}

	hdr := NewHeader()
	hdr.Set("SIMPLE", true, "conforms to FITS standard")
	hdr.Set("BITPIX", bitpix, "bits per data element")
	hdr.Set("NAXIS", len(dims), "number of data axes")
	for i, d := range dims {
		hdr.Set(axisKey(i+1), d)
	}

	return &HDU{Header: hdr, Data: data, primary: true}, nil
}

// NewImageHDU creates an IMAGE extension unit over data with the given
// BITPIX and axis lengths.
func NewImageHDU(data any, bitpix int, dims ...int) (*HDU, error) {
	if _, ok := dtype.ElementSize(bitpix); !ok {
		return nil, fmt.Errorf("%w: BITPIX %d", ErrUnsupportedFormat, bitpix)
	}

	hdr := NewHeader()
	hdr.Set("XTENSION", ExtensionImage, "image extension")
	hdr.Set("BITPIX", bitpix, "bits per data element")
	hdr.Set("NAXIS", len(dims), "number of data axes")
	for i, d := range dims {
		hdr.Set(axisKey(i+1), d)
	}
	hdr.Set("PCOUNT", 0)
	hdr.Set("GCOUNT", 1)

	return &HDU{Header: hdr, Data: data, xtension: ExtensionImage}, nil
}

// TableColumn declares one field of a new binary table: a column name and
// its TFORM value, such as "5A" or "1E".
type TableColumn struct {
	Name string
	Form string
}

// NewTableHDU creates a BINTABLE extension unit holding the given rows.
// Row byte width and the TFIELDS/TFORM{i}/TTYPE{i} cards are derived from
// the column declarations.
func NewTableHDU(cols []TableColumn, rows []Row) (*HDU, error) {
	parsed := make([]table.Column, len(cols))
	for i, c := range cols {
		repeat, code, err := table.ParseForm(c.Form)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %w", ErrUnsupportedFormat, i+1, err)
		}
		parsed[i] = table.Column{Name: c.Name, Repeat: repeat, Code: code}
	}

	hdr := NewHeader()
	hdr.Set("XTENSION", ExtensionBinTable, "binary table extension")
	hdr.Set("BITPIX", 8, "table data is raw bytes")
	hdr.Set("NAXIS", 2)
	hdr.Set(axisKey(1), table.RowWidth(parsed), "row width in bytes")
	hdr.Set(axisKey(2), len(rows), "number of rows")
	hdr.Set("PCOUNT", 0)
	hdr.Set("GCOUNT", 1)
	hdr.Set("TFIELDS", len(cols), "number of fields per row")
	for i, c := range cols {
		hdr.Set(indexedKey("TFORM", i+1), c.Form)
		if c.Name != "" {
			hdr.Set(indexedKey("TTYPE", i+1), c.Name)
		}
	}

	return &HDU{Header: hdr, Data: rows, xtension: ExtensionBinTable}, nil
}
