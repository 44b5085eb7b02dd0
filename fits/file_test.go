package fits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddHDUOrdering(t *testing.T) {
	f := NewFile()
	primary, err := NewPrimaryHDU(nil, 8)
	require.NoError(t, err)
	ext, err := NewImageHDU(nil, 8)
	require.NoError(t, err)

	require.NoError(t, f.AddHDU(primary))
	require.NoError(t, f.AddHDU(ext))

	assert.Equal(t, 2, f.NumHDUs())
	assert.Same(t, primary, f.Primary())
	assert.Same(t, ext, f.HDU(1))
	assert.Nil(t, f.HDU(2))
	assert.Nil(t, f.HDU(-1))
}

func TestAddHDUExtensionWithoutPrimary(t *testing.T) {
	f := NewFile()
	ext, err := NewImageHDU(nil, 8)
	require.NoError(t, err)

	err = f.AddHDU(ext)
	assert.ErrorIs(t, err, ErrStructure)
	assert.Equal(t, 0, f.NumHDUs())
}

func TestAddHDUSecondPrimary(t *testing.T) {
	f := NewFile()
	first, err := NewPrimaryHDU(nil, 8)
	require.NoError(t, err)
	second, err := NewPrimaryHDU(nil, 8)
	require.NoError(t, err)

	require.NoError(t, f.AddHDU(first))
	assert.ErrorIs(t, f.AddHDU(second), ErrStructure)
}

func TestAddHDUInjectsExtend(t *testing.T) {
	f := NewFile()
	primary, err := NewPrimaryHDU(nil, 8)
	require.NoError(t, err)
	require.NoError(t, f.AddHDU(primary))

	_, ok := primary.Header.Get("EXTEND")
	assert.False(t, ok)

	ext, err := NewImageHDU(nil, 8)
	require.NoError(t, err)
	require.NoError(t, f.AddHDU(ext))

	v, ok := primary.Header.GetBool("EXTEND")
	require.True(t, ok)
	assert.True(t, v)
}

func TestAddHDUKeepsExistingExtend(t *testing.T) {
	f := NewFile()
	primary, err := NewPrimaryHDU(nil, 8)
	require.NoError(t, err)
	require.NoError(t, primary.Header.Set("EXTEND", false))
	require.NoError(t, f.AddHDU(primary))

	ext, err := NewImageHDU(nil, 8)
	require.NoError(t, err)
	require.NoError(t, f.AddHDU(ext))

	v, ok := primary.Header.GetBool("EXTEND")
	require.True(t, ok)
	assert.False(t, v)
}

func TestEmptyFile(t *testing.T) {
	f := NewFile()
	assert.Nil(t, f.Primary())
	assert.Equal(t, 0, f.NumHDUs())
}
