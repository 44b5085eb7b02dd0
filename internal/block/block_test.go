package block

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadded(t *testing.T) {
	testCases := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 2880},
		{2880, 2880},
		{2881, 5760},
		{20000, 20160},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Padded(tc.n), "Padded(%d)", tc.n)
	}
}

func TestHeaderSize(t *testing.T) {
	assert.Equal(t, 2880, HeaderSize(1))
	assert.Equal(t, 2880, HeaderSize(36))
	assert.Equal(t, 5760, HeaderSize(37))
}

func TestReaderCards(t *testing.T) {
	buf := []byte(strings.Repeat("A", 80) + strings.Repeat("B", 80))
	r := NewReader(buf)

	card, err := r.ReadCard()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("A", 80), card)
	assert.Equal(t, 80, r.Pos())

	card, err = r.ReadCard()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("B", 80), card)

	_, err = r.ReadCard()
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestReaderSegment(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	r := NewReader(buf)

	seg, err := r.Segment(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, seg)
	assert.Equal(t, 2, r.Remaining())

	_, err = r.Segment(3)
	assert.ErrorIs(t, err, ErrShortRead)
}

func TestReaderAlignBlock(t *testing.T) {
	buf := make([]byte, 2*Size)
	r := NewReader(buf)

	r.Segment(80)
	r.AlignBlock()
	assert.Equal(t, Size, r.Pos())

	// Already aligned: position unchanged.
	r.AlignBlock()
	assert.Equal(t, Size, r.Pos())

	// Alignment clamps at the end of a truncated stream.
	r = NewReader(make([]byte, Size+100))
	r.Segment(Size + 50)
	r.AlignBlock()
	assert.Equal(t, Size+100, r.Pos())
	assert.True(t, r.EOF())
}

func TestWriterCardPadding(t *testing.T) {
	w := NewWriter(Size)
	w.WriteCard("SHORT")
	require.Equal(t, CardSize, w.Len())
	assert.Equal(t, "SHORT"+strings.Repeat(" ", 75), string(w.Bytes()))

	w.WriteCard(strings.Repeat("X", 100))
	assert.Equal(t, 2*CardSize, w.Len())
	assert.Equal(t, strings.Repeat("X", 80), string(w.Bytes()[CardSize:]))
}

func TestWriterPadBlock(t *testing.T) {
	w := NewWriter(Size)
	w.WriteBytes([]byte{0xAB})
	w.PadBlock()
	require.Equal(t, Size, w.Len())
	assert.Equal(t, byte(0xAB), w.Bytes()[0])
	assert.Equal(t, byte(0), w.Bytes()[1])

	// Aligned writer stays put.
	w.PadBlock()
	assert.Equal(t, Size, w.Len())
}
