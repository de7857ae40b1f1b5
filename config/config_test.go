package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOMLOverridesOnlyPresentKeys(t *testing.T) {
	path := writeFile(t, "arch.toml", "res_u = 32\nheight = 4.0\n")
	cfg := vault.DefaultArchConfig()
	require.NoError(t, Load(path, &cfg))

	want := vault.DefaultArchConfig()
	want.ResU = 32
	want.Height = 4
	assert.Equal(t, want, cfg)
}

func TestLoadYAMLOverridesOnlyPresentKeys(t *testing.T) {
	path := writeFile(t, "organic.yml", "seed: 42\nnum_peaks: 2\n")
	cfg := vault.DefaultOrganicConfig()
	require.NoError(t, Load(path, &cfg))

	want := vault.DefaultOrganicConfig()
	want.Seed = 42
	want.NumPeaks = 2
	assert.Equal(t, want, cfg)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	cfg := vault.DefaultOrganicConfig()
	require.NoError(t, Load(path, &cfg))
	assert.Equal(t, vault.DefaultOrganicConfig(), cfg)
}

func TestLoadUnknownKey(t *testing.T) {
	cfg := vault.DefaultArchConfig()
	assert.Error(t, Load(writeFile(t, "bad.toml", "no_such_key = 1\n"), &cfg))
	assert.Error(t, Load(writeFile(t, "bad.yaml", "no_such_key: 1\n"), &cfg))
}

func TestLoadUnknownFormat(t *testing.T) {
	cfg := vault.DefaultArchConfig()
	err := Load(writeFile(t, "arch.json", "{}"), &cfg)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := vault.DefaultArchConfig()
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.toml"), &cfg))
}

func TestRead(t *testing.T) {
	var cfg vault.ArchConfig
	require.NoError(t, Read(&cfg, strings.NewReader("angle = 45.0"), TOML))
	assert.Equal(t, 45.0, cfg.Angle)
}
