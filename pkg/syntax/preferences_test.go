package syntax

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywords_SaveLoad(t *testing.T) {
	for _, name := range []string{"prefs.yaml", "prefs.yml", "prefs.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			k := DefaultKeywords()
			k.PreAlt = "if"
			k.PostAlt = "then"
			k.Not = "!"

			require.NoError(t, SaveKeywords(path, k))
			got, err := LoadKeywords(path)
			require.NoError(t, err)
			assert.Equal(t, k, got)
		})
	}
}

func TestLoadKeywords_PartialFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("pre_for: für\npost_for: bis\n"), 0644))
	k, err := LoadKeywords(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "für", k.PreFor)
	assert.Equal(t, "bis", k.PostFor)
	assert.Equal(t, "while", k.PreWhile)
	assert.Equal(t, ":=", k.Assign)

	tomlPath := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("pre_while = \"solange\"\nassign = \"\"\n"), 0644))
	k, err = LoadKeywords(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "solange", k.PreWhile)
	assert.Equal(t, ":=", k.Assign, "empty operators fall back to defaults")
}

func TestLoadKeywords_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadKeywords(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	ini := filepath.Join(dir, "prefs.ini")
	require.NoError(t, os.WriteFile(ini, []byte("x=1"), 0644))
	_, err = LoadKeywords(ini)
	assert.ErrorContains(t, err, "unsupported preferences format")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("pre_for = [\n"), 0644))
	_, err = LoadKeywords(bad)
	assert.ErrorContains(t, err, "TOML")

	assert.Error(t, SaveKeywords(filepath.Join(dir, "prefs.json"), DefaultKeywords()))
}
