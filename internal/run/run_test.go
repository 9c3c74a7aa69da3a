package run

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/tgrep/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAndWriteResult(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world\nbye\n"), 0644))

	opts := options.Options{
		Root:     dir,
		Patterns: []string{"hello"},
		Searcher: options.SearcherTgrep,
		CharStyle: options.CharStyleAscii,
		NoColor:  true,
		TestMode: true,
	}

	r, err := Search(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Totals.Files)
	assert.Equal(t, 1, r.Totals.Matches)

	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, r, opts))
	assert.Contains(t, buf.String(), "a.txt")
}

func TestSearchWithHistoryComputesDigest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("needle\n"), 0644))

	opts := options.Options{
		Root:           dir,
		Patterns:       []string{"needle"},
		Searcher:       options.SearcherTgrep,
		CharStyle:      options.CharStyleAscii,
		HistoryEnabled: true,
	}

	r, err := Search(context.Background(), opts)
	require.NoError(t, err)
	assert.NotEmpty(t, r.Digest)
}
