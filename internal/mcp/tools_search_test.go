package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestGetStringReturnsDefaultWhenMissing(t *testing.T) {
	req := callToolRequest(map[string]any{})
	assert.Equal(t, "fallback", getString(req, "path", "fallback"))
}

func TestGetStringReturnsProvidedValue(t *testing.T) {
	req := callToolRequest(map[string]any{"path": "/tmp/x"})
	assert.Equal(t, "/tmp/x", getString(req, "path", "."))
}

func TestGetBoolDefaultsWhenMissingOrWrongType(t *testing.T) {
	req := callToolRequest(map[string]any{"hidden": "yes"})
	assert.True(t, getBool(req, "hidden", true))
	assert.False(t, getBool(callToolRequest(nil), "hidden", false))
}

func TestGetBoolReturnsProvidedValue(t *testing.T) {
	req := callToolRequest(map[string]any{"hidden": true})
	assert.True(t, getBool(req, "hidden", false))
}

func TestGetIntHandlesJSONNumberType(t *testing.T) {
	req := callToolRequest(map[string]any{"max_depth": float64(4)})
	assert.Equal(t, 4, getInt(req, "max_depth", 0))
}

func TestGetIntDefaultsWhenMissing(t *testing.T) {
	req := callToolRequest(map[string]any{})
	assert.Equal(t, 7, getInt(req, "max_depth", 7))
}

func TestGetStringSliceExtractsStringsOnly(t *testing.T) {
	req := callToolRequest(map[string]any{"glob": []any{"*.go", "!vendor/**", 5}})
	assert.Equal(t, []string{"*.go", "!vendor/**"}, getStringSlice(req, "glob"))
}

func TestGetStringSliceNilWhenMissing(t *testing.T) {
	req := callToolRequest(map[string]any{})
	assert.Nil(t, getStringSlice(req, "glob"))
}

func TestParseGlobStringsNegation(t *testing.T) {
	globs := parseGlobStrings([]string{"*.go", "!vendor/**"})
	require.Len(t, globs, 2)
	assert.False(t, globs[0].Negate)
	assert.True(t, globs[1].Negate)
	assert.Equal(t, "vendor/**", globs[1].Pattern)
}

func TestFindPathsSortsByModTimeDescending(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "older.txt")
	newer := filepath.Join(dir, "newer.txt")
	require.NoError(t, os.WriteFile(older, []byte("a"), 0644))
	require.NoError(t, os.WriteFile(newer, []byte("b"), 0644))

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now, now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	paths, err := findPaths(dir, "*.txt", "")
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "newer.txt", paths[0])
	assert.Equal(t, "older.txt", paths[1])
}

func TestFindPathsSkipsGitDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	paths, err := findPaths(dir, "**/*", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths)
}

func TestFindPathsFiltersByType(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a.txt"), []byte("a"), 0644))

	files, err := findPaths(dir, "**", "file")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("sub", "a.txt")}, files)

	dirs, err := findPaths(dir, "**", "directory")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub"}, dirs)
}

func TestFindPathsRejectsNonDirectoryRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0644))

	_, err := findPaths(file, "*", "")
	assert.Error(t, err)
}

func TestTgrepFindRejectsInvalidGlob(t *testing.T) {
	h := &handlers{}
	req := callToolRequest(map[string]any{"glob": "[", "path": t.TempDir()})

	result, err := h.tgrepFind(context.Background(), req)
	require.NoError(t, err)
	assertIsError(t, result)
}

func TestTgrepFindRejectsUnknownType(t *testing.T) {
	h := &handlers{}
	req := callToolRequest(map[string]any{"glob": "*", "path": t.TempDir(), "type": "socket"})

	result, err := h.tgrepFind(context.Background(), req)
	require.NoError(t, err)
	assertIsError(t, result)
}

func TestTgrepFindListsMatchingPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0644))

	h := &handlers{}
	req := callToolRequest(map[string]any{"glob": "*.go", "path": dir})

	result, err := h.tgrepFind(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, resultJSON(t, result), "a.go")
	assert.NotContains(t, resultJSON(t, result), "b.txt")
}

func TestTgrepSearchFindsMatches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("needle here\nno match\n"), 0644))

	h := &handlers{}
	req := callToolRequest(map[string]any{"pattern": "needle", "path": dir})

	result, err := h.tgrepSearch(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, resultJSON(t, result), "a.txt")
	assert.Contains(t, resultJSON(t, result), "matches=1")
}

func TestTgrepSearchRequiresPattern(t *testing.T) {
	h := &handlers{}
	req := callToolRequest(map[string]any{"path": t.TempDir()})

	result, err := h.tgrepSearch(context.Background(), req)
	require.NoError(t, err)
	assertIsError(t, result)
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	data, err := json.Marshal(result)
	require.NoError(t, err)
	return string(data)
}

func assertIsError(t *testing.T, result *mcp.CallToolResult) {
	t.Helper()
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
