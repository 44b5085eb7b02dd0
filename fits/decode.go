package fits

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/robert-malhotra/go-fits/internal/block"
	"github.com/robert-malhotra/go-fits/internal/dtype"
	"github.com/robert-malhotra/go-fits/internal/table"
)

// Decode parses a complete FITS byte stream into a File. The stream must
// start with a SIMPLE primary header; every later unit must start with
// XTENSION. Decoding is fail-fast: the first structural problem aborts the
// call and no partial File is returned.
func Decode(buf []byte, opts ...Option) (*File, error) {
	o := applyOptions(opts)

	r := block.NewReader(buf)
	f := NewFile()
	for !r.EOF() {
		hdu, err := decodeHDU(r, o.logger)
		if err != nil {
			return nil, err
		}
		f.hdus = append(f.hdus, hdu)
	}

	o.logger.Info("decoded FITS stream", "bytes", len(buf), "hdus", len(f.hdus))
	return f, nil
}

// decodeHDU reads one header and its data block starting at the reader's
// current position.
func decodeHDU(r *block.Reader, log *slog.Logger) (*HDU, error) {
	start := r.Pos()

	hdr, cards, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}
	r.AlignBlock()

	keys := hdr.Keys()
	if start == 0 {
		if len(keys) == 0 || keys[0] != "SIMPLE" {
			return nil, fmt.Errorf("%w: missing SIMPLE", ErrFormat)
		}
	} else {
		if len(keys) == 0 || keys[0] != "XTENSION" {
			return nil, fmt.Errorf("%w: missing XTENSION", ErrFormat)
		}
		hdr.Set("EXTEND", true)
	}

	hdu := &HDU{Header: hdr, primary: start == 0}
	if !hdu.primary {
		x, _ := hdr.GetString("XTENSION")
		hdu.xtension = strings.ToUpper(strings.TrimSpace(x))
	}

	dataBytes, err := dataLength(hdr)
	if err != nil {
		return nil, err
	}
	log.Debug("decoded header",
		"offset", start, "kind", hdu.Kind(), "cards", cards, "dataBytes", dataBytes)

	if dataBytes > 0 {
		raw, err := r.Segment(dataBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: data block at offset %d: %v", ErrFormat, start, err)
		}
		r.AlignBlock()

		if hdu.IsTable() {
			rows, err := decodeTable(hdr, raw)
			if err != nil {
				return nil, err
			}
			hdu.Data = rows
		} else {
			bitpix, _ := hdr.GetInt("BITPIX")
			data, err := dtype.Decode(raw, bitpix)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
			}
			hdu.Data = data
		}
	}

	return hdu, nil
}

// decodeHeader reads 80-byte cards until the END marker, folding them into
// a header store. Blank filler cards and empty COMMENT/HISTORY cards carry
// no information and are dropped.
func decodeHeader(r *block.Reader) (*Header, int, error) {
	hdr := NewHeader()
	cards := 0
	for {
		rec, err := r.ReadCard()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: header card: %v", ErrFormat, err)
		}
		cards++

		if strings.HasPrefix(strings.TrimSpace(rec), keyEnd) {
			return hdr, cards, nil
		}

		key := strings.TrimSpace(rec[:8])
		switch key {
		case "":
			// blank filler card
		case KeyComment:
			if text := strings.TrimSpace(rec[8:]); text != "" {
				hdr.AddComment(text)
			}
		case KeyHistory:
			if text := strings.TrimSpace(rec[8:]); text != "" {
				hdr.AddHistory(text)
			}
		default:
			if rec[8:10] != "= " {
				hdr.Set(key, nil)
				continue
			}
			value, comment := parseValueText(rec[10:])
			if comment != "" {
				hdr.Set(key, value, comment)
			} else {
				hdr.Set(key, value)
			}
		}
	}
}

// dataLength computes the data block byte length declared by a header:
// |BITPIX| * GCOUNT * (PCOUNT + NAXIS1*...*NAXISn) / 8, zero when NAXIS
// is 0 or absent.
func dataLength(hdr *Header) (int, error) {
	naxis, _ := hdr.GetInt("NAXIS")
	if naxis <= 0 {
		return 0, nil
	}

	bitpix, ok := hdr.GetInt("BITPIX")
	if !ok {
		return 0, fmt.Errorf("%w: BITPIX", ErrMissingField)
	}

	prod := 1
	for i := 1; i <= naxis; i++ {
		v, ok := hdr.GetInt(axisKey(i))
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrMissingField, axisKey(i))
		}
		prod *= v
	}

	pcount, ok := hdr.GetInt("PCOUNT")
	if !ok {
		pcount = 0
	}
	gcount, ok := hdr.GetInt("GCOUNT")
	if !ok {
		gcount = 1
	}

	bits := bitpix
	if bits < 0 {
		bits = -bits
	}
	return bits * gcount * (pcount + prod) / 8, nil
}

// tableColumns builds the column layout declared by TFIELDS and the
// TFORM{i}/TTYPE{i} keyword families. A missing TFORM{i} is an error;
// a missing TTYPE{i} falls back to the COL{i} default name.
func tableColumns(hdr *Header) ([]table.Column, error) {
	fields, _ := hdr.GetInt("TFIELDS")
	cols := make([]table.Column, 0, fields)
	for i := 1; i <= fields; i++ {
		form, ok := hdr.GetString(indexedKey("TFORM", i))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, indexedKey("TFORM", i))
		}
		repeat, code, err := table.ParseForm(form)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrUnsupportedFormat, indexedKey("TFORM", i), form)
		}

		name, _ := hdr.GetString(indexedKey("TTYPE", i))
		name = strings.TrimSpace(name)
		if name == "" {
			name = indexedKey("COL", i)
		}
		cols = append(cols, table.Column{Name: name, Repeat: repeat, Code: code})
	}
	return cols, nil
}

// decodeTable decodes a table data block into rows keyed by column name.
func decodeTable(hdr *Header, raw []byte) ([]Row, error) {
	cols, err := tableColumns(hdr)
	if err != nil {
		return nil, err
	}

	width, _ := hdr.GetInt("NAXIS1")
	count, _ := hdr.GetInt("NAXIS2")
	decoded, err := table.DecodeRows(raw, cols, count, width)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	rows := make([]Row, len(decoded))
	for i, r := range decoded {
		rows[i] = Row(r)
	}
	return rows, nil
}
