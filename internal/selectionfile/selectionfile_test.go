package selectionfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadWithLine(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sel")
	require.NoError(t, Write(file, "/a/b/c.go", 42, true))

	path, line, hasLine, err := Read(file)
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c.go", path)
	assert.Equal(t, 42, line)
	assert.True(t, hasLine)
}

func TestWriteReadWithoutLine(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sel")
	require.NoError(t, Write(file, "/a/b/c.go", 0, false))

	path, _, hasLine, err := Read(file)
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c.go", path)
	assert.False(t, hasLine)
}
