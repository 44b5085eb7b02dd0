package fits

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderSetGet(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Set("SIMPLE", true))
	require.NoError(t, h.Set("BITPIX", 16, "bits per pixel"))
	require.NoError(t, h.Set("OBJECT", "vega"))
	require.NoError(t, h.Set("EXPTIME", 30.5))

	b, ok := h.GetBool("SIMPLE")
	require.True(t, ok)
	assert.True(t, b)

	i, ok := h.GetInt("BITPIX")
	require.True(t, ok)
	assert.Equal(t, 16, i)

	s, ok := h.GetString("OBJECT")
	require.True(t, ok)
	assert.Equal(t, "vega", s)

	f, ok := h.GetFloat("EXPTIME")
	require.True(t, ok)
	assert.Equal(t, 30.5, f)

	_, ok = h.Get("ABSENT")
	assert.False(t, ok)
}

func TestHeaderGetConversions(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Set("NAXIS1", 100))
	require.NoError(t, h.Set("BSCALE", 2.0))

	f, ok := h.GetFloat("NAXIS1")
	require.True(t, ok)
	assert.Equal(t, 100.0, f)

	i, ok := h.GetInt("BSCALE")
	require.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestHeaderSetNormalizesKeyAndValue(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Set(" bitpix ", int64(16)))

	v, ok := h.Get("BITPIX")
	require.True(t, ok)
	assert.Equal(t, 16, v)

	require.NoError(t, h.Set("GAIN", float32(1.5)))
	v, ok = h.Get("GAIN")
	require.True(t, ok)
	assert.Equal(t, 1.5, v)
}

func TestHeaderSetKeepsPosition(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Set("SIMPLE", true))
	require.NoError(t, h.Set("BITPIX", 16))
	require.NoError(t, h.Set("NAXIS", 0))

	require.NoError(t, h.Set("BITPIX", -32))

	assert.Equal(t, []string{"SIMPLE", "BITPIX", "NAXIS"}, h.Keys())
	i, _ := h.GetInt("BITPIX")
	assert.Equal(t, -32, i)
}

func TestHeaderSetRejectsReservedKeys(t *testing.T) {
	h := NewHeader()
	assert.ErrorIs(t, h.Set("COMMENT", "x"), ErrInvalidOperation)
	assert.ErrorIs(t, h.Set("HISTORY", "x"), ErrInvalidOperation)
	assert.ErrorIs(t, h.Set("END", nil), ErrInvalidOperation)
	assert.ErrorIs(t, h.Set("  ", 1), ErrInvalidOperation)
}

func TestHeaderCommentary(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Set("SIMPLE", true))
	h.AddComment("first")
	h.AddComment("second")
	h.AddHistory("processed")

	assert.Equal(t, []string{"SIMPLE", "COMMENT", "COMMENT", "HISTORY"}, h.Keys())
	assert.Equal(t, 4, h.Len())

	// Commentary keys never enter the lookup index.
	_, ok := h.Get("COMMENT")
	assert.False(t, ok)
}

func TestHeaderRemove(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Set("SIMPLE", true))
	require.NoError(t, h.Set("BITPIX", 16))
	require.NoError(t, h.Set("NAXIS", 0))

	h.Remove("BITPIX")
	assert.Equal(t, []string{"SIMPLE", "NAXIS"}, h.Keys())

	// Lookups after removal still hit the right cards.
	v, ok := h.GetInt("NAXIS")
	require.True(t, ok)
	assert.Equal(t, 0, v)

	h.Remove("ABSENT")
	assert.Equal(t, 2, h.Len())
}

func TestHeaderRecords(t *testing.T) {
	h := NewHeader()
	require.NoError(t, h.Set("SIMPLE", true))
	require.NoError(t, h.Set("BITPIX", 16))
	h.AddComment("calibrated")

	records := h.Records()
	require.Equal(t, 36, len(records))
	for _, rec := range records {
		assert.Len(t, rec, 80)
	}

	assert.Equal(t, "END", strings.TrimRight(records[3], " "))
	for _, rec := range records[4:] {
		assert.Equal(t, strings.Repeat(" ", 80), rec)
	}
}

func TestHeaderRecordsSpillBlock(t *testing.T) {
	h := NewHeader()
	for i := 0; i < 36; i++ {
		require.NoError(t, h.Set(cardKey("KEY", i), i))
	}

	// 36 cards plus END spill into a second block.
	records := h.Records()
	assert.Equal(t, 72, len(records))
}

func cardKey(prefix string, i int) string {
	return prefix + string(rune('A'+i/10)) + string(rune('0'+i%10))
}
