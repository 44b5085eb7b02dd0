package fits

import (
	"bytes"
	"compress/gzip"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFile(t *testing.T) *File {
	t.Helper()
	h, err := NewPrimaryHDU([]int16{1, 2, 3, 4}, 16, 4)
	require.NoError(t, err)
	f := NewFile()
	require.NoError(t, f.AddHDU(h))
	return f
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fits")
	require.NoError(t, WriteFile(path, testFile(t)))

	f, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, f.NumHDUs())
	assert.Equal(t, []int16{1, 2, 3, 4}, f.Primary().Data)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.fits"))
	assert.Error(t, err)
}

func TestOpenGzipStream(t *testing.T) {
	buf, err := testFile(t).Encode()
	require.NoError(t, err)

	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err = zw.Write(buf)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	f, err := Open(&compressed)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 2, 3, 4}, f.Primary().Data)
}

func TestOpenPlainStream(t *testing.T) {
	buf, err := testFile(t).Encode()
	require.NoError(t, err)

	f, err := Open(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, 1, f.NumHDUs())
}
