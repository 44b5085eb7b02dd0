package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForm(t *testing.T) {
	testCases := []struct {
		form   string
		repeat int
		code   byte
	}{
		{"5A", 5, 'A'},
		{"1E", 1, 'E'},
		{"E", 1, 'E'},
		{"I", 1, 'I'},
		{"12D", 12, 'D'},
		{" 3A ", 3, 'A'},
	}
	for _, tc := range testCases {
		repeat, code, err := ParseForm(tc.form)
		require.NoError(t, err, "form %q", tc.form)
		assert.Equal(t, tc.repeat, repeat, "form %q", tc.form)
		assert.Equal(t, tc.code, code, "form %q", tc.form)
	}
}

func TestParseFormRejectsUnknownCodes(t *testing.T) {
	for _, form := range []string{"", "5", "2X", "J", "1P", "Q"} {
		_, _, err := ParseForm(form)
		assert.ErrorIs(t, err, ErrUnknownCode, "form %q", form)
	}
}

func TestColumnWidth(t *testing.T) {
	assert.Equal(t, 5, Column{Repeat: 5, Code: 'A'}.Width())
	assert.Equal(t, 6, Column{Repeat: 3, Code: 'I'}.Width())
	assert.Equal(t, 8, Column{Repeat: 2, Code: 'E'}.Width())
	assert.Equal(t, 8, Column{Repeat: 1, Code: 'D'}.Width())

	cols := []Column{{Repeat: 5, Code: 'A'}, {Repeat: 1, Code: 'E'}}
	assert.Equal(t, 9, RowWidth(cols))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cols := []Column{
		{Name: "name", Repeat: 6, Code: 'A'},
		{Name: "flux", Repeat: 1, Code: 'E'},
		{Name: "counts", Repeat: 3, Code: 'I'},
		{Name: "ra", Repeat: 1, Code: 'D'},
	}
	width := RowWidth(cols)
	rows := []Row{
		{"name": "vega", "flux": float32(1.25), "counts": []int16{1, 2, 3}, "ra": 279.23},
		{"name": "deneb", "flux": float32(-0.5), "counts": []int16{-4, 0, 9}, "ra": 310.36},
	}

	raw, err := EncodeRows(rows, cols, width)
	require.NoError(t, err)
	require.Equal(t, 2*width, len(raw))

	back, err := DecodeRows(raw, cols, 2, width)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, rows[0], back[0])
	assert.Equal(t, rows[1], back[1])
}

func TestDecodeTextTrimming(t *testing.T) {
	cols := []Column{{Name: "s", Repeat: 8, Code: 'A'}}
	raw := []byte("ab  \x00\x00\x00\x00")

	rows, err := DecodeRows(raw, cols, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, "ab", rows[0]["s"])
}

func TestEncodeDefaultsMissingCells(t *testing.T) {
	cols := []Column{
		{Name: "s", Repeat: 3, Code: 'A'},
		{Name: "x", Repeat: 1, Code: 'I'},
	}
	width := RowWidth(cols)

	raw, err := EncodeRows([]Row{{}}, cols, width)
	require.NoError(t, err)
	assert.Equal(t, []byte("   \x00\x00"), raw)
}

func TestEncodeTruncatesLongText(t *testing.T) {
	cols := []Column{{Name: "s", Repeat: 3, Code: 'A'}}

	raw, err := EncodeRows([]Row{{"s": "abcdef"}}, cols, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), raw)
}

func TestEncodeCoercesNumericTypes(t *testing.T) {
	cols := []Column{{Name: "x", Repeat: 1, Code: 'E'}}

	for _, v := range []any{int(3), int16(3), int64(3), float64(3), float32(3)} {
		raw, err := EncodeRows([]Row{{"x": v}}, cols, 4)
		require.NoError(t, err)

		rows, err := DecodeRows(raw, cols, 1, 4)
		require.NoError(t, err)
		assert.Equal(t, float32(3), rows[0]["x"], "value %T", v)
	}
}

func TestDecodeRejectsOverflowingColumns(t *testing.T) {
	// Declared cell widths exceed the 2-byte row.
	cols := []Column{{Name: "x", Repeat: 8, Code: 'D'}}

	_, err := DecodeRows(make([]byte, 2), cols, 1, 2)
	assert.ErrorIs(t, err, ErrRowOverflow)
}

func TestEncodeZeroRepeatColumns(t *testing.T) {
	cols := []Column{
		{Name: "i", Repeat: 0, Code: 'I'},
		{Name: "e", Repeat: 0, Code: 'E'},
		{Name: "s", Repeat: 0, Code: 'A'},
	}

	// Absent cell values for zero-width columns encode to nothing.
	raw, err := EncodeRows([]Row{{}}, cols, RowWidth(cols))
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestDecodeStopsAtShortBuffer(t *testing.T) {
	cols := []Column{{Name: "x", Repeat: 1, Code: 'I'}}

	// Three rows declared, buffer holds two.
	rows, err := DecodeRows(make([]byte, 4), cols, 3, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
