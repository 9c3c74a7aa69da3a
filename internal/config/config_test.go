package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadScope(ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, DefaultCharStyle, cfg.CharStyle())
	assert.Equal(t, DefaultPrefixLen, cfg.PrefixLen())
	assert.Equal(t, DefaultLongBranchEach, cfg.LongBranchEach())
	assert.False(t, cfg.NoColor())
	assert.Equal(t, "tgrep", cfg.Searcher())
}

func TestSetGetRoundTrip(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Set("display.char_style", "ascii"))
	require.NoError(t, cfg.Set("display.prefix_len", "5"))
	require.NoError(t, cfg.Set("search.searcher", "rg"))
	require.NoError(t, cfg.Set("editor.command", "hx"))

	v, err := cfg.Get("display.char_style")
	require.NoError(t, err)
	assert.Equal(t, "ascii", v)

	v, err = cfg.Get("display.prefix_len")
	require.NoError(t, err)
	assert.Equal(t, "5", v)

	assert.True(t, cfg.IsSet("display.char_style"))
	assert.False(t, cfg.IsSet("display.no_bold"))
}

func TestSetRejectsInvalidCharStyle(t *testing.T) {
	cfg := &Config{}
	err := cfg.Set("display.char_style", "nonsense")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSetRejectsUnknownKey(t *testing.T) {
	cfg := &Config{}
	err := cfg.Set("nope.nope", "x")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestValidateRejectsOutOfBoundsPrefixLen(t *testing.T) {
	bad := 1000
	cfg := &Config{Display: Display{PrefixLen: &bad}}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidValue)
}

func TestSaveScopeAndLoadScopeRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{}
	require.NoError(t, cfg.Set("display.char_style", "double"))
	require.NoError(t, cfg.SaveScope(ScopeGlobal))

	assert.FileExists(t, filepath.Join(home, ".config", "tgrep", "config.yaml"))

	reloaded, err := LoadScope(ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, "double", reloaded.CharStyle())
}

func TestLocalPathIsProjectRelative(t *testing.T) {
	assert.Equal(t, filepath.Join(".tgrep", "config.yaml"), LocalPath())
}
