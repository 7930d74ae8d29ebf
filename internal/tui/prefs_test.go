package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrefs_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := LoadPrefs("")
	require.NoError(t, err)
	assert.Equal(t, defaultPrefs(), p)
}

func TestPrefs_RoundTripThroughHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	want := Prefs{Server: "admin.internal:8082", Theme: "Paper", LastKind: "VEHICLE", LastOwner: "v-42"}
	require.NoError(t, SavePrefs("", want))

	_, err := os.Stat(filepath.Join(home, ".config", "rental-admin", "faqedit.toml"))
	require.NoError(t, err)

	got, err := LoadPrefs("")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPrefs_FillsBlankAndUnknownValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqedit.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"\"\nlast_kind = \"PLAN\"\nlast_owner = \"b1\"\n"), 0o600))

	p, err := LoadPrefs(path)
	require.NoError(t, err)
	assert.Equal(t, defaultTheme, p.Theme)
	assert.Equal(t, defaultServer, p.Server)
	assert.Equal(t, "BRAND", p.LastKind)
	assert.Equal(t, "b1", p.LastOwner)
}

func TestLoadPrefs_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faqedit.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = [unterminated"), 0o600))

	p, err := LoadPrefs(path)
	assert.Error(t, err)
	assert.Equal(t, defaultTheme, p.Theme)
}
