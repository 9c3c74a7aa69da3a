package path

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeRejectsEmpty(t *testing.T) {
	_, err := Canonicalize("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCanonicalizeCleansRelativePath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	got, err := Canonicalize(".")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}

func TestFoldHomeCollapsesPrefix(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	target := filepath.Join(home, "notes", "todo.md")
	assert.Equal(t, filepath.Join("~", "notes", "todo.md"), FoldHome(target))
}

func TestFoldHomeLeavesUnrelatedPathAlone(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, "/etc/hosts", FoldHome("/etc/hosts"))
}
