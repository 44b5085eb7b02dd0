package fits

import (
	"fmt"
	"log/slog"

	"github.com/robert-malhotra/go-fits/internal/block"
	"github.com/robert-malhotra/go-fits/internal/dtype"
	"github.com/robert-malhotra/go-fits/internal/table"
)

// Encode serializes the container back into a FITS byte stream: for each
// HDU the header card images, then the data block, then zero padding to the
// next 2880-byte boundary. The output buffer is sized in a pre-pass, so a
// successful call performs exactly one allocation for the stream.
//
// An image HDU declaring NAXIS=1 whose buffer length disagrees with NAXIS1
// gets NAXIS1 corrected to the buffer length before serializing; any other
// shape/buffer mismatch is logged as a warning and encoded best-effort with
// the header left unchanged.
func (f *File) Encode(opts ...Option) ([]byte, error) {
	o := applyOptions(opts)

	// Pre-pass: reconcile shapes, render headers, size the stream.
	records := make([][]string, len(f.hdus))
	lengths := make([]int, len(f.hdus))
	total := 0
	for i, h := range f.hdus {
		reconcileShape(h, o.logger)

		n, err := dataLength(h.Header)
		if err != nil {
			return nil, err
		}
		records[i] = h.Header.Records()
		lengths[i] = n
		total += len(records[i])*block.CardSize + block.Padded(n)
	}

	w := block.NewWriter(total)
	for i, h := range f.hdus {
		for _, rec := range records[i] {
			w.WriteCard(rec)
		}
		if lengths[i] > 0 {
			if err := encodeData(w, h, lengths[i], o.logger); err != nil {
				return nil, err
			}
		}
	}

	o.logger.Info("encoded FITS stream", "bytes", w.Len(), "hdus", len(f.hdus))
	return w.Bytes(), nil
}

// reconcileShape compares an HDU's declared shape with its buffer before
// serialization. The one self-healing case is a 1-D image whose NAXIS1
// disagrees with the buffer length; everything else only warns.
func reconcileShape(h *HDU, log *slog.Logger) {
	if h.IsTable() {
		rows, _ := h.Rows()
		if declared, ok := h.Header.GetInt("NAXIS2"); ok && declared != len(rows) {
			log.Warn("table row count disagrees with NAXIS2",
				"naxis2", declared, "rows", len(rows))
		}
		return
	}

	naxis, _ := h.Header.GetInt("NAXIS")
	n := dtype.Len(h.Data)
	if naxis == 1 {
		if declared, ok := h.Header.GetInt(axisKey(1)); ok && declared != n {
			h.Header.Set(axisKey(1), n)
			log.Debug("corrected NAXIS1 to buffer length", "naxis1", declared, "len", n)
		}
		return
	}

	prod := 1
	for _, d := range h.Shape() {
		prod *= d
	}
	if naxis > 1 && prod != n {
		log.Warn("image buffer length disagrees with declared shape",
			"declared", prod, "len", n)
	}
}

// encodeData writes one HDU's data block, padded with zero bytes to the
// declared length and then to the block boundary. Buffers longer than the
// declared length are truncated.
func encodeData(w *block.Writer, h *HDU, declared int, log *slog.Logger) error {
	var raw []byte
	var err error
	if h.IsTable() {
		raw, err = encodeTable(h)
	} else {
		raw, err = encodeImage(h)
	}
	if err != nil {
		return err
	}

	if len(raw) > declared {
		log.Warn("data block exceeds declared length; truncating",
			"declared", declared, "len", len(raw))
		raw = raw[:declared]
	}
	w.WriteBytes(raw)
	if len(raw) < declared {
		w.WriteBytes(make([]byte, declared-len(raw)))
	}
	w.PadBlock()
	return nil
}

// encodeImage encodes a typed image buffer, applying the (raw-BZERO)/BSCALE
// transform declared by the header (identity by default).
func encodeImage(h *HDU) ([]byte, error) {
	bitpix, ok := h.Header.GetInt("BITPIX")
	if !ok {
		return nil, fmt.Errorf("%w: BITPIX", ErrMissingField)
	}
	bzero, ok := h.Header.GetFloat("BZERO")
	if !ok {
		bzero = 0
	}
	bscale, ok := h.Header.GetFloat("BSCALE")
	if !ok {
		bscale = 1
	}

	raw, err := dtype.Encode(h.Data, bitpix, bzero, bscale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return raw, nil
}

// encodeTable encodes table rows into their fixed-width wire form.
func encodeTable(h *HDU) ([]byte, error) {
	cols, err := tableColumns(h.Header)
	if err != nil {
		return nil, err
	}
	width, _ := h.Header.GetInt("NAXIS1")

	rows, _ := h.Rows()
	encodable := make([]table.Row, len(rows))
	for i, r := range rows {
		encodable[i] = table.Row(r)
	}
	return table.EncodeRows(encodable, cols, width)
}
