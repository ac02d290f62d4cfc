package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	APIKey string `json:"api_key"`
	DB     string `json:"db"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	err := os.WriteFile(name, []byte(`{
		// base config
		api_key: "abc",
		db: "snapshots.db",
	}`), 0o644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "abc", cfg.APIKey)
	require.Equal(t, "snapshots.db", cfg.DB)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	err := os.WriteFile(name, []byte(`{api_key: "abc", db: "snapshots.db"}`), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{api_key: "local-key"}`), 0o644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "local-key", cfg.APIKey)
	require.Equal(t, "snapshots.db", cfg.DB)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
