package repeatfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	args := []string{"tgrep", "-e", "foo.*bar", "-p", "/some/path with spaces", ""}
	got, err := Decode(Encode(args))
	require.NoError(t, err)
	assert.Equal(t, args, got)
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repeat.bin")
	args := []string{"tgrep", "--select", "pattern"}

	require.NoError(t, Write(path, args))
	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, args, got)
}

func TestReadMissingFileReturnsNil(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.bin"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWriteReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repeat.bin")
	require.NoError(t, Write(path, []string{"first", "run"}))
	require.NoError(t, Write(path, []string{"second", "run", "longer-arg"}))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "run", "longer-arg"}, got)
}

func TestDecodeTruncatedRecordErrors(t *testing.T) {
	_, err := Decode([]byte{5, 0, 0, 0, 'a', 'b'})
	assert.Error(t, err)
}
